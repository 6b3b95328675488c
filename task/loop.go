package task

import "errors"

// LoopTask is run once per frame, before the channel pipeline, fed the
// speed-scaled dt that modulation and palette also receive.
type LoopTask interface {
	Loop(dtMs float64)
}

// ErrDuplicateTask is returned by Registry.Add when the same task is
// registered twice — LXEngine.addLoopTask's "Cannot add task to engine
// twice" contract violation, as a value instead of a panic.
var ErrDuplicateTask = errors.New("task: loop task already registered")

// Registry holds the engine's per-frame loop tasks, rejecting duplicate
// registration.
type Registry struct {
	tasks []LoopTask
}

// Add registers t to run every frame. Returns ErrDuplicateTask if t is
// already registered.
func (r *Registry) Add(t LoopTask) error {
	for _, existing := range r.tasks {
		if existing == t {
			return ErrDuplicateTask
		}
	}
	r.tasks = append(r.tasks, t)
	return nil
}

// Remove deregisters t. No-op if t was never registered.
func (r *Registry) Remove(t LoopTask) {
	for i, existing := range r.tasks {
		if existing == t {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return
		}
	}
}

// RunAll invokes every registered task's Loop in registration order.
func (r *Registry) RunAll(dtMs float64) {
	for _, t := range r.tasks {
		t.Loop(dtMs)
	}
}
