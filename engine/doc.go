// Package engine assembles the frame scheduler, channel pipeline,
// mixer, double buffer, and output stage into the runnable core
// described by spec.md: one Run() call advances exactly one frame.
//
// The run-loop contract (spec.md 4.1), channel structural operations
// (addChannel/addGroup/removeChannel/moveChannel/ungroup), the
// cueA/cueB mutual-exclusion cascade, and scene launching are all
// grounded on original_source/src/heronarts/lx/LXEngine.java — ported
// from LXEngine's synchronized-block/EngineThread model to Go's
// mutex+goroutine idioms, and from its direct listener-callback cueA/B
// cascade to a deferred-apply event loop (spec.md 9's "implement as an
// event loop rather than synchronous re-entrancy to avoid infinite
// cascades").
package engine
