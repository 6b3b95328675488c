package channel

import "sync"

// workerState is the per-channel worker's bounded state machine, per
// spec.md 4.2: IDLE -> WORK_REQUESTED -> WORKING -> WORK_DONE -> IDLE.
type workerState int

const (
	workerIdle workerState = iota
	workerRequested
	workerWorking
	workerDone
)

// worker runs one channel's Loop on its own goroutine, grounded on
// framesupplier/internal/worker_slot.go's WorkerSlot: a single mutex, a
// single sync.Cond, and a state field standing in for WorkerSlot's
// single-slot frame pointer. Exactly one scheduler goroutine calls
// requestWork/waitForDone; exactly one worker goroutine runs loop.
type worker struct {
	mu    sync.Mutex
	cond  *sync.Cond
	state workerState
	dt    float64

	channel *Channel

	started bool
	closed  bool
}

func newWorker(c *Channel) *worker {
	w := &worker{channel: c}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// ensureStarted lazily starts the worker goroutine on first use, per
// spec.md 4.2 ("a newly-created channel's thread is lazily started on
// first use").
func (w *worker) ensureStarted() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.started = true
	go w.loop()
}

// requestWork hands dt to the worker and wakes it, mirroring
// WorkerSlot.publishToSlot's lock/check-closed/assign/signal sequence.
func (w *worker) requestWork(dt float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.dt = dt
	w.state = workerRequested
	w.cond.Signal()
}

// waitForDone blocks until the worker reports WORK_DONE, then resets to
// IDLE for the next frame. Mirrors WorkerSlot's readFunc closure: a
// Wait loop guarded by the same condition the producer signals.
func (w *worker) waitForDone() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for w.state != workerDone && !w.closed {
		w.cond.Wait()
	}
	w.state = workerIdle
}

// loop is the worker goroutine body: wait for WORK_REQUESTED, run the
// channel's Loop, report WORK_DONE, repeat. Exits cleanly on interrupt.
func (w *worker) loop() {
	w.mu.Lock()
	for {
		for w.state != workerRequested && !w.closed {
			w.cond.Wait()
		}
		if w.closed {
			w.mu.Unlock()
			return
		}
		w.state = workerWorking
		dt := w.dt
		w.mu.Unlock()

		w.channel.Loop(dt)

		w.mu.Lock()
		w.state = workerDone
		w.cond.Signal()
	}
}

// interrupt cleanly ends the worker's loop at its next wait, per spec.md
// 5's "channel worker interruption cleanly ends its loop at the next
// wait."
func (w *worker) interrupt() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.cond.Broadcast()
}
