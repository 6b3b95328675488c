// Package task implements the engine's foreign-thread task queue and
// per-frame loop-task registry, grounded on
// original_source/src/heronarts/lx/LXEngine.java: threadSafeTaskQueue's
// "append under lock, then swap-and-drain on the engine thread" shape
// for Queue, and loopTasks' duplicate-rejecting slice for Registry.
package task
