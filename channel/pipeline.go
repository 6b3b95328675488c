package channel

// RunSingleThreaded advances and renders every channel on the caller's
// goroutine, in order. This is the default scheduling mode (spec.md 4.2):
// simplest, and sufficient unless a pattern is expensive enough to
// warrant its own worker.
func RunSingleThreaded(channels []*Channel, dtMs float64) {
	for _, c := range channels {
		c.Loop(dtMs)
	}
}

// RunThreaded advances every channel concurrently on its own worker
// goroutine (lazily started on first use) and blocks until all have
// reported WORK_DONE. Channels not yet backed by a worker get one here.
func RunThreaded(channels []*Channel, dtMs float64) {
	for _, c := range channels {
		if c.worker == nil {
			c.worker = newWorker(c)
		}
		c.worker.ensureStarted()
		c.worker.requestWork(dtMs)
	}
	for _, c := range channels {
		if c.worker != nil {
			c.worker.waitForDone()
		}
	}
}

// StopWorker interrupts a channel's worker goroutine, if one was ever
// started. Safe to call on a channel that never went threaded.
func StopWorker(c *Channel) {
	if c.worker != nil {
		c.worker.interrupt()
	}
}
