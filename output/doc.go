// Package output implements the output stage described in spec.md 4.5:
// per-sink fps throttling, mode dispatch (NORMAL/WHITE/RAW/OFF), gamma
// and brightness correction, and recursive fan-out to child sinks.
//
// BaseSink.Send is grounded line-for-line on
// original_source/src/heronarts/lx/output/LXOutput.java's send(): same
// throttle check, same mode switch, same "apply correction once, fan
// out the corrected buffer to children" structure. NetworkWorker's
// notify-condition lifecycle is grounded on
// modules/framesupplier/internal/worker_slot.go's sync.Cond mailbox and
// modules/stream-capture's RTSPStream ctx/cancel/wg goroutine lifecycle.
package output
