package param

// Bounded is a real-valued parameter clamped to [min,max].
type Bounded struct {
	base
	value    float64
	min, max float64
}

// NewBounded creates a bounded parameter with the given default, clamped
// into [min,max] at construction.
func NewBounded(min, max, defaultValue float64) *Bounded {
	p := &Bounded{min: min, max: max}
	p.value = clamp(defaultValue, min, max)
	return p
}

// NewBoundedUnits is NewBounded plus units/polarity metadata.
func NewBoundedUnits(min, max, defaultValue float64, units string, polarity Polarity) *Bounded {
	p := NewBounded(min, max, defaultValue)
	p.units = units
	p.polarity = polarity
	return p
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func (p *Bounded) GetValue() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

func (p *Bounded) GetValuef() float32 { return float32(p.GetValue()) }

// Range returns the parameter's [min,max] bounds.
func (p *Bounded) Range() (min, max float64) { return p.min, p.max }

func (p *Bounded) SetValue(v float64) error {
	p.mu.Lock()
	clamped := clamp(v, p.min, p.max)
	changed := clamped != p.value
	p.value = clamped
	p.mu.Unlock()
	if changed {
		p.notify(p)
	}
	return nil
}

func (p *Bounded) Bang() { p.notify(p) }
