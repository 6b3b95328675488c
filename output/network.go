package output

import (
	"context"
	"sync"

	"github.com/pidge/LX/color"
	"github.com/pidge/LX/doublebuffer"
)

// NetworkWorker is the optional network-threaded output variant
// (spec.md 4.5 "network thread variant"): a long-running goroutine that
// waits on a condition, and on Notify copies the published MAIN buffer
// into a private buffer under the double-buffer lock before dropping
// the lock and sending — so the engine can start the next frame
// concurrently with a slow send.
//
// Lifecycle grounded on modules/stream-capture's RTSPStream
// ctx/cancel/wg pattern; the wait/notify handoff is grounded on
// modules/framesupplier/internal/worker_slot.go's WorkerSlot.
type NetworkWorker struct {
	mu   sync.Mutex
	cond *sync.Cond

	buffers *doublebuffer.Set
	root    Sink

	pending bool
	private color.Buffer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started bool
}

// NewNetworkWorker creates a worker that sends frames to root whenever
// Notify is called, reading from buffers.
func NewNetworkWorker(buffers *doublebuffer.Set, root Sink, n int) *NetworkWorker {
	w := &NetworkWorker{
		buffers: buffers,
		root:    root,
		private: color.NewBuffer(n),
	}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// Start launches the worker goroutine. Calling Start twice is a no-op.
func (w *NetworkWorker) Start() {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	w.started = true
	w.ctx, w.cancel = context.WithCancel(context.Background())
	w.mu.Unlock()

	w.wg.Add(1)
	go w.loop()
}

// Stop cancels the worker and waits for its goroutine to exit.
func (w *NetworkWorker) Stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	w.started = false
	w.cancel()
	w.mu.Unlock()

	w.cond.Broadcast()
	w.wg.Wait()
}

// Notify wakes the worker to pick up the frame just published by the
// double buffer flip. Called from the engine thread at end-of-frame.
func (w *NetworkWorker) Notify() {
	w.mu.Lock()
	w.pending = true
	w.mu.Unlock()
	w.cond.Signal()
}

func (w *NetworkWorker) loop() {
	defer w.wg.Done()
	for {
		w.mu.Lock()
		for !w.pending && w.ctx.Err() == nil {
			w.cond.Wait()
		}
		if w.ctx.Err() != nil {
			w.mu.Unlock()
			return
		}
		w.pending = false
		w.mu.Unlock()

		w.buffers.CopyUIBuffer(w.private)
		w.root.Send(w.private)
	}
}
