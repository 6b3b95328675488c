package task

import "sync"

// Queue lets any goroutine enqueue work to be run on the engine thread.
// Add is safe from any goroutine; Drain must only be called from the
// engine thread, once per frame, at a point before the channel
// pipeline runs.
//
// Grounded on LXEngine's threadSafeTaskQueue/engineThreadTaskQueue pair:
// producers append under a lock, and the consumer atomically swaps the
// whole slice out under that same lock before running anything, so a
// producer can keep enqueuing work for the *next* frame while this
// frame's tasks run unlocked.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

// Add enqueues fn to run on the engine thread at the next Drain. Safe
// to call from any goroutine, including the engine thread itself.
func (q *Queue) Add(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Drain swaps out the pending queue and runs every task in enqueue
// order. Must be called only from the engine thread.
func (q *Queue) Drain() {
	q.mu.Lock()
	tasks := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}
}
