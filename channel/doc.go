// Package channel implements the channel pipeline: leaf channels, groups,
// the master channel, and their per-frame advance+render contract,
// including the optional per-channel worker threads.
//
// The worker state machine (IDLE/WORK_REQUESTED/WORKING/WORK_DONE) is
// grounded directly on framesupplier/internal/worker_slot.go's WorkerSlot:
// one mutex, one sync.Cond, a state field in place of a mailbox slot. The
// scheduler's "request work, then wait for done" replaces WorkerSlot's
// "publish a frame, then block until consumed" — both are a single-slot
// handoff between exactly one producer goroutine and one consumer
// goroutine, guarded by the same mutex+cond discipline.
package channel
