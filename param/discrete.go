package param

import "math"

// Discrete is an integer-valued parameter in [0,k).
type Discrete struct {
	base
	value int
	k     int
}

// NewDiscrete creates a discrete parameter over [0,k) with the given
// default, rounded and clamped into range at construction.
func NewDiscrete(k, defaultValue int) *Discrete {
	p := &Discrete{k: k}
	p.value = clampInt(defaultValue, 0, k-1)
	return p
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func (p *Discrete) GetValue() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return float64(p.value)
}

func (p *Discrete) GetValuef() float32 { return float32(p.GetValue()) }

// IntValue returns the current value as an int directly.
func (p *Discrete) IntValue() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

func (p *Discrete) SetValue(v float64) error {
	rounded := int(math.Round(v))
	p.mu.Lock()
	clamped := clampInt(rounded, 0, p.k-1)
	changed := clamped != p.value
	p.value = clamped
	p.mu.Unlock()
	if changed {
		p.notify(p)
	}
	return nil
}

func (p *Discrete) Bang() { p.notify(p) }

// SetRange changes the exclusive upper bound, clamping the current
// value into the new range. Mirrors DiscreteParameter.setRange, used by
// the engine to keep focusedChannel's range in step with channel count.
func (p *Discrete) SetRange(k int) {
	p.mu.Lock()
	p.k = k
	clamped := clampInt(p.value, 0, k-1)
	changed := clamped != p.value
	p.value = clamped
	p.mu.Unlock()
	if changed {
		p.notify(p)
	}
}

// Decrement subtracts one from the value, clamped at 0.
func (p *Discrete) Decrement() {
	p.mu.Lock()
	clamped := clampInt(p.value-1, 0, p.k-1)
	changed := clamped != p.value
	p.value = clamped
	p.mu.Unlock()
	if changed {
		p.notify(p)
	}
}
