package channel

import (
	"time"

	"github.com/pidge/LX/color"
)

// Master is the distinguished channel with no patterns — only effects
// applied to the final mixed output. Its scene clips live in the
// embedded Channel's Clips array, same as any other channel.
type Master struct {
	*Channel
}

// NewMaster allocates the master channel with an N-pixel buffer.
func NewMaster(n int) *Master {
	return &Master{Channel: NewChannel(n)}
}

// Loop is called once per frame right after the channel pipeline
// (spec.md 4.2: "after channels, the master channel loops (it may
// advance clip time)"). The Clip capability exposes no tick hook of its
// own (only Trigger/Stop), so there is nothing to advance here yet —
// this is a placeholder for clip-time bookkeeping a future Clip
// implementation may need.
func (m *Master) Loop(dtMs float64) {}

// ApplyEffects runs the master's effects, in order, against buf — the
// separate "apply each master effect in order to the main render
// buffer" step (spec.md 4.1 step 11), which happens after the mixer has
// produced a buffer to apply them to.
func (m *Master) ApplyEffects(dtMs float64, buf color.Buffer) {
	start := time.Now()
	defer func() { m.ElapsedNanos = time.Since(start).Nanoseconds() }()

	for _, fx := range m.Effects {
		fx.Advance(dtMs)
		fx.Apply(buf)
	}
}
