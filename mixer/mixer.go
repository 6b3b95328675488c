package mixer

import (
	"github.com/pidge/LX/channel"
	"github.com/pidge/LX/color"
)

// ChannelView is the read-only surface the mixer needs from a top-level
// channel. channel.Channel (and, through embedding, channel.Group)
// satisfies it without channel importing mixer.
type ChannelView interface {
	IsEnabled() bool
	IsCueActive() bool
	Animating() bool
	FaderValue() float64
	Bus() channel.Bus
	Blend() color.BlendMode
	ColorBuffer() color.Buffer
}

// Mixer owns the four working buffers and the seed buffer described in
// spec.md 4.3, and the crossfader/cue parameters that drive them.
type Mixer struct {
	n int

	Main  color.Buffer
	Left  color.Buffer
	Right color.Buffer
	Cue   color.Buffer

	background color.Buffer

	Crossfader      float64
	CrossfaderBlend color.BlendMode
	CueA            bool
	CueB            bool
}

// New allocates a mixer for an N-pixel pipeline. Crossfader defaults to
// 0 (all-A) and the crossfader blend defaults to NORMAL (dissolve).
func New(n int) *Mixer {
	bg := color.NewBuffer(n)
	color.Fill(bg, color.Black)
	return &Mixer{
		n:               n,
		Main:            color.NewBuffer(n),
		Left:            color.NewBuffer(n),
		Right:           color.NewBuffer(n),
		Cue:             color.NewBuffer(n),
		background:      bg,
		CrossfaderBlend: color.Normal,
	}
}

// Composite runs the full bus-routing algorithm of spec.md 4.3 over the
// given top-level channels (sub-channels of groups must not be passed
// here — they're folded into their group's own buffer by CompositeGroup
// first, and the group itself is a top-level ChannelView).
func (m *Mixer) Composite(channels []ChannelView) {
	leftTouched := false
	rightTouched := false
	mainTouched := false
	cueTouched := false

	for _, c := range channels {
		bus := c.Bus()

		var dest, out *color.Buffer
		var active bool
		switch bus {
		case channel.BusA:
			if !leftTouched {
				dest = &m.background
			} else {
				dest = &m.Left
			}
			out = &m.Left
			active = m.Crossfader < 1 || m.CueA
		case channel.BusB:
			if !rightTouched {
				dest = &m.background
			} else {
				dest = &m.Right
			}
			out = &m.Right
			active = m.Crossfader > 0 || m.CueB
		default: // BusBypass
			if !mainTouched {
				dest = &m.background
			} else {
				dest = &m.Main
			}
			out = &m.Main
			active = true
		}

		if c.IsEnabled() && c.Animating() && active {
			if f := c.FaderValue(); f > 0 {
				c.Blend().Blend(*dest, c.ColorBuffer(), f, *out)
			} else if dest != out {
				color.Copy(*out, *dest)
			}
			switch bus {
			case channel.BusA:
				leftTouched = true
			case channel.BusB:
				rightTouched = true
			case channel.BusBypass:
				mainTouched = true
			}
		}

		if c.IsCueActive() {
			var cueDest color.Buffer
			if !cueTouched {
				cueDest = m.background
			} else {
				cueDest = m.Cue
			}
			color.Add.Blend(cueDest, c.ColorBuffer(), 1, m.Cue)
			cueTouched = true
		}
	}

	if m.CueA && leftTouched {
		color.Copy(m.Cue, m.Left)
	} else if m.CueB && rightTouched {
		color.Copy(m.Cue, m.Right)
	}

	m.crossfade(leftTouched, rightTouched, mainTouched)
}

// crossfade implements the final A/B combine into Main, per spec.md
// 4.3's "after all channels" step. mainTouched is true when a BYPASS
// channel already wrote directly into Main this frame — in that case
// the "nothing on A or B" default must leave Main alone instead of
// clearing it back to background.
func (m *Mixer) crossfade(leftTouched, rightTouched, mainTouched bool) {
	x := m.Crossfader

	// Like every other bus, Main reads from background on its first touch
	// this frame, so the additive step never stacks onto last frame's Main.
	mainDest := m.Main
	if !mainTouched {
		mainDest = m.background
	}

	switch {
	case leftTouched && rightTouched:
		var dest, src *color.Buffer
		var alpha float64
		if x <= 0.5 {
			dest, src = &m.Left, &m.Right
			alpha = min1(2 * x)
		} else {
			dest, src = &m.Right, &m.Left
			alpha = min1(2 * (1 - x))
		}
		m.CrossfaderBlend.Blend(*dest, *src, alpha, *dest)
		color.Add.Blend(mainDest, *dest, 1, m.Main)
	case leftTouched:
		color.Add.Blend(mainDest, m.Left, min1(2*(1-x)), m.Main)
	case rightTouched:
		color.Add.Blend(mainDest, m.Right, min1(2*x), m.Main)
	case mainTouched:
		// BYPASS already wrote into Main directly; nothing to add.
	default:
		color.Copy(m.Main, m.background)
	}
}

func min1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}

// CompositeGroup composites a group's children into the group's own
// buffer, exactly as the top-level Composite does but targeting the
// group's buffer instead of Main/Left/Right/Cue (spec.md 4.2: "a group
// iterates its sub-channel buffers in channel order, blending each into
// the group's own buffer per its fader and blend mode, exactly as the
// top-level Mixer does but targeting the group's buffer").
func CompositeGroup(g *channel.Group) {
	color.Fill(g.Colors, color.Black)
	for _, child := range g.Children {
		if !child.IsEnabled() || !child.Animating() {
			continue
		}
		f := child.FaderValue()
		if f <= 0 {
			continue
		}
		child.Blend().Blend(g.Colors, child.ColorBuffer(), f, g.Colors)
	}
}

// ApplyMasterEffects runs the master's effects on the mixer's Main
// buffer in order, in place; the master's own color buffer is not
// written (spec.md 4.1 step 11, 4.3's closing "run each master effect on
// blendOutputMain in order").
func (m *Mixer) ApplyMasterEffects(master *channel.Master, dtMs float64) {
	master.ApplyEffects(dtMs, m.Main)
}
