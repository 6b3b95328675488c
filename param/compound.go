package param

import "sync"

// ModulationInput is one layered modulation source feeding a Compound
// parameter: a normalized [-1,1] or [0,1] source (itself a Parameter,
// typically an LFO or envelope owned by the modulation-graph collaborator)
// scaled by amount.
type ModulationInput struct {
	Source Parameter
	Amount float64
}

// Compound is a bounded real parameter with an additional stack of
// modulation inputs layered on top of its base value; GetValue returns
// the base value plus the sum of each input's (source value * amount),
// clamped into [min,max]. The engine's crossfader is a Compound
// parameter so that the modulation graph collaborator can drive it
// without displacing the operator's manual setting; channel faders are
// plain Bounded parameters.
type Compound struct {
	Bounded
	modMu       sync.Mutex
	modulations []ModulationInput
}

// NewCompound creates a compound parameter with no modulation inputs.
func NewCompound(min, max, defaultValue float64) *Compound {
	return &Compound{Bounded: *NewBounded(min, max, defaultValue)}
}

// AddModulation appends a modulation input. Order matters only for
// determinism of floating point summation, not semantics.
func (c *Compound) AddModulation(m ModulationInput) {
	c.modMu.Lock()
	defer c.modMu.Unlock()
	c.modulations = append(c.modulations, m)
}

// RemoveModulation removes the modulation whose Source matches src.
func (c *Compound) RemoveModulation(src Parameter) {
	c.modMu.Lock()
	defer c.modMu.Unlock()
	for i, m := range c.modulations {
		if m.Source == src {
			c.modulations = append(c.modulations[:i], c.modulations[i+1:]...)
			return
		}
	}
}

// GetValue returns the base value plus the sum of every modulation
// input's contribution, clamped into the parameter's range.
func (c *Compound) GetValue() float64 {
	base := c.Bounded.GetValue()
	c.modMu.Lock()
	defer c.modMu.Unlock()
	min, max := c.Bounded.Range()
	sum := base
	for _, m := range c.modulations {
		sum += m.Source.GetValue() * m.Amount
	}
	return clamp(sum, min, max)
}

func (c *Compound) GetValuef() float32 { return float32(c.GetValue()) }

// BaseValue returns the unmodulated value set via SetValue, bypassing the
// modulation stack — used by UIs that want to show the operator's manual
// setting distinct from the modulated result.
func (c *Compound) BaseValue() float64 { return c.Bounded.GetValue() }
