package param

import (
	"errors"
	"reflect"
	"sync"
)

// Polarity describes how a parameter's range should be interpreted by a
// UI or modulation source: unipolar values run 0..1 (or min..max), bipolar
// values run symmetrically around a center.
type Polarity int

const (
	Unipolar Polarity = iota
	Bipolar
)

// ErrComponentAlreadySet is returned by SetComponent when called a second
// time on the same parameter — ownership assignment is one-shot.
var ErrComponentAlreadySet = errors.New("param: component already set")

// ErrComputedParameterReadOnly is returned by SetValue on a Functional
// parameter, which is computed rather than stored.
var ErrComputedParameterReadOnly = errors.New("param: computed parameter is read-only")

// Listener is notified synchronously, on the mutating goroutine, whenever
// a parameter's value changes (or Bang is called).
type Listener func(Parameter)

// Parameter is the common contract every parameter kind implements.
type Parameter interface {
	// GetValue returns the current value as a float64.
	GetValue() float64
	// GetValuef returns the current value as a float32.
	GetValuef() float32
	// SetValue clamps/quantizes v per the parameter's type and stores it.
	// Returns an error for computed (Functional) parameters.
	SetValue(v float64) error
	// Bang force-notifies listeners without changing the value.
	Bang()
	// AddListener registers l to be invoked on future changes.
	AddListener(l Listener)
	// RemoveListener unregisters a previously added listener.
	RemoveListener(l Listener)
	// SetComponent assigns this parameter's owner and path. May only be
	// called once; a second call returns ErrComponentAlreadySet.
	SetComponent(owner *Component, path string) error
	// Owner returns the owning component, or nil if unset.
	Owner() *Component
	// Path returns the parameter's stable path, or "" if unset.
	Path() string
	// Polarity returns the parameter's polarity metadata.
	Polarity() Polarity
	// Units returns the parameter's units metadata.
	Units() string
}

// base is embedded by every concrete parameter kind. It is not exported:
// callers only ever see the Parameter interface.
type base struct {
	mu        sync.Mutex
	listeners []Listener
	owner     *Component
	path      string
	polarity  Polarity
	units     string
}

func (b *base) AddListener(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, l)
}

func (b *base) RemoveListener(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	target := reflectPtr(l)
	for i, existing := range b.listeners {
		if reflectPtr(existing) == target {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

func (b *base) SetComponent(owner *Component, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.owner != nil {
		return ErrComponentAlreadySet
	}
	b.owner = owner
	b.path = path
	return nil
}

func (b *base) Owner() *Component { return b.owner }
func (b *base) Path() string      { return b.path }
func (b *base) Polarity() Polarity {
	return b.polarity
}
func (b *base) Units() string { return b.units }

// reflectPtr returns the code pointer behind a Listener, used by
// RemoveListener to find a previously added function value. Like any
// func-identity comparison in Go this only distinguishes distinct
// top-level functions/methods, not distinct closures created from the
// same literal — callers that need to remove one of several closures
// should keep their own handle instead of relying on this.
func reflectPtr(l Listener) uintptr {
	return reflect.ValueOf(l).Pointer()
}

// notify invokes every listener synchronously, on the caller's goroutine.
// Called by the concrete parameter kind's SetValue/Bang, outside of the
// value mutation's own lock; notify snapshots the listener slice under
// the lock and calls listeners after releasing it, to avoid holding a
// lock across arbitrary listener code.
func (b *base) notify(p Parameter) {
	b.mu.Lock()
	snapshot := make([]Listener, len(b.listeners))
	copy(snapshot, b.listeners)
	b.mu.Unlock()
	for _, l := range snapshot {
		l(p)
	}
}
