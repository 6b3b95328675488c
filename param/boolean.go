package param

// Boolean is a two-state parameter. Exactly 0 maps to false; anything
// else maps to true, matching the discrete parameters'
// "nearest valid value" quantization rule.
type Boolean struct {
	base
	value bool
}

// NewBoolean creates a boolean parameter with the given default.
func NewBoolean(defaultValue bool) *Boolean {
	return &Boolean{value: defaultValue}
}

func (p *Boolean) GetValue() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.value {
		return 1
	}
	return 0
}

func (p *Boolean) GetValuef() float32 { return float32(p.GetValue()) }

// IsOn returns the boolean value directly, avoiding the float round-trip.
func (p *Boolean) IsOn() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

func (p *Boolean) SetValue(v float64) error {
	return p.Set(v != 0)
}

// Set is the boolean-native form of SetValue.
func (p *Boolean) Set(v bool) error {
	p.mu.Lock()
	changed := v != p.value
	p.value = v
	p.mu.Unlock()
	if changed {
		p.notify(p)
	}
	return nil
}

func (p *Boolean) Bang() { p.notify(p) }
