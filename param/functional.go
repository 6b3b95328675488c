package param

// Functional is a read-only parameter whose value is computed by a
// supplier function on every read, rather than stored — grounded on
// original_source's heronarts.lx.parameter.FunctionalParameter. SetValue
// always fails with ErrComputedParameterReadOnly; Bang still notifies
// listeners, letting a collaborator announce "my computed value may have
// changed" without the substrate needing to poll it every frame.
type Functional struct {
	base
	supplier func() float64
}

// NewFunctional wraps supplier as a read-only parameter.
func NewFunctional(supplier func() float64) *Functional {
	if supplier == nil {
		panic("param: functional parameter requires a non-nil supplier")
	}
	return &Functional{supplier: supplier}
}

func (p *Functional) GetValue() float64  { return p.supplier() }
func (p *Functional) GetValuef() float32 { return float32(p.supplier()) }

func (p *Functional) SetValue(v float64) error {
	return ErrComputedParameterReadOnly
}

func (p *Functional) Bang() { p.notify(p) }
