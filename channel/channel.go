package channel

import (
	"errors"
	"time"

	"github.com/pidge/LX/color"
	"github.com/pidge/LX/param"
)

// Bus is the crossfade-group assignment of a top-level channel.
type Bus int

const (
	BusA Bus = iota
	BusB
	BusBypass
)

func (b Bus) String() string {
	switch b {
	case BusA:
		return "A"
	case BusB:
		return "B"
	default:
		return "BYPASS"
	}
}

// Pattern is the pluggable per-channel generator capability. Pattern
// implementations are out of scope here — the core only ever calls
// Advance and Render.
type Pattern interface {
	Advance(dtMs float64)
	Render(out color.Buffer)
}

// Effect is the pluggable per-channel (or master) post-processing
// capability, applied in order after pattern rendering.
type Effect interface {
	Advance(dtMs float64)
	Apply(buf color.Buffer)
}

// Clip is a triggerable time-bound entity attached to a channel or the
// master. The core only ever calls Trigger/Stop.
type Clip interface {
	Trigger()
	Stop()
}

// NumScenes is the number of scene trigger slots (spec.md 4.7: buttons
// 1..5).
const NumScenes = 5

// ErrNotOwnedByChannel is returned when a caller attempts a channel-owned
// operation (e.g. ungrouping) against a channel that belongs to a
// different owner than the one assumed.
var ErrNotOwnedByChannel = errors.New("channel: not owned by expected channel/group")

// Channel is a leaf or group node producing a color buffer each frame.
type Channel struct {
	*param.Component

	Patterns       []Pattern
	activePattern  int
	pendingPattern int // -1 when no transition is in progress
	transitionP    float64
	transitionMs   float64 // total duration of an in-progress transition

	Effects []Effect

	Fader          *param.Bounded
	BlendMode      color.BlendMode
	CrossfadeGroup *param.Enum[Bus]
	Enabled        *param.Boolean
	CueActive      *param.Boolean
	Selected       bool
	IsAnimating    bool

	Colors color.Buffer

	// Clips are the five scene-trigger slots a channel (or the master,
	// via embedding) may own; nil entries are scenes with nothing bound.
	Clips [NumScenes]Clip

	group *Group // non-owning back-link; the engine owns all channels
	index int

	worker *worker

	// ElapsedNanos accumulates this channel's time spent in Loop, the
	// per-component frame timer supplemented from the original LX
	// engine's LXComponent.Timer mechanism.
	ElapsedNanos int64
}

// NewChannel allocates a channel with an N-pixel color buffer and default
// parameters (fader=1, NORMAL blend, BYPASS group, enabled).
func NewChannel(n int) *Channel {
	c := &Channel{
		Component:      param.NewComponent(),
		pendingPattern: -1,
		Fader:          param.NewBounded(0, 1, 1),
		BlendMode:      color.Normal,
		CrossfadeGroup: param.NewEnum([]Bus{BusA, BusB, BusBypass}),
		Enabled:        param.NewBoolean(true),
		CueActive:      param.NewBoolean(false),
		Colors:         color.NewBuffer(n),
	}
	c.CrossfadeGroup.Select(BusBypass)
	_ = c.Component.RegisterParameter("fader", c.Fader)
	_ = c.Component.RegisterParameter("enabled", c.Enabled)
	_ = c.Component.RegisterParameter("cueActive", c.CueActive)
	return c
}

// Index returns the channel's position in the engine's channel list (or
// the master's sentinel index, set by the engine on structural changes).
func (c *Channel) Index() int { return c.index }

// SetIndex is called by the engine after any structural change (add,
// remove, move) to keep Index() == channels.indexOf(channel).
func (c *Channel) SetIndex(i int) { c.index = i }

// Group returns the owning group, or nil if this is a top-level channel.
func (c *Channel) Group() *Group { return c.group }

func (c *Channel) setGroup(g *Group) { c.group = g }

// mixer.ChannelView implementation — a structural interface, not an
// explicit import, to avoid a channel<->mixer dependency cycle.

func (c *Channel) IsEnabled() bool           { return c.Enabled.IsOn() }
func (c *Channel) IsCueActive() bool         { return c.CueActive.IsOn() }
func (c *Channel) FaderValue() float64       { return c.Fader.GetValue() }
func (c *Channel) Bus() Bus                  { return c.CrossfadeGroup.Value() }
func (c *Channel) Blend() color.BlendMode    { return c.BlendMode }
func (c *Channel) ColorBuffer() color.Buffer { return c.Colors }
func (c *Channel) Animating() bool           { return c.IsAnimating }

// Clip returns the scene clip bound to slot i, or nil if none.
func (c *Channel) Clip(i int) Clip { return c.Clips[i] }

// SetPattern replaces the active pattern immediately, with no transition.
func (c *Channel) SetPattern(i int) error {
	if i < 0 || i >= len(c.Patterns) {
		return errors.New("channel: pattern index out of range")
	}
	c.activePattern = i
	c.pendingPattern = -1
	c.transitionP = 0
	return nil
}

// TransitionTo arms i as the pending pattern; Loop will cross-fade into it
// over durationMs.
func (c *Channel) TransitionTo(i int, durationMs float64) error {
	if i < 0 || i >= len(c.Patterns) {
		return errors.New("channel: pattern index out of range")
	}
	c.pendingPattern = i
	c.transitionMs = durationMs
	c.transitionP = 0
	return nil
}

// Loop is the per-channel tick contract (spec.md 4.2): advance the active
// (and, mid-transition, pending) pattern, mix by transition progress,
// apply effects in order, and mark whether this frame produced output.
func (c *Channel) Loop(dtMs float64) {
	start := time.Now()
	defer func() { c.ElapsedNanos = time.Since(start).Nanoseconds() }()

	c.IsAnimating = false
	if len(c.Patterns) == 0 {
		return
	}

	active := c.Patterns[c.activePattern]
	active.Advance(dtMs)

	if c.pendingPattern >= 0 {
		pending := c.Patterns[c.pendingPattern]
		pending.Advance(dtMs)

		activeBuf := make(color.Buffer, len(c.Colors))
		pendingBuf := make(color.Buffer, len(c.Colors))
		active.Render(activeBuf)
		pending.Render(pendingBuf)

		if c.transitionMs > 0 {
			c.transitionP += dtMs / c.transitionMs
		} else {
			c.transitionP = 1
		}
		if c.transitionP > 1 {
			c.transitionP = 1
		}

		color.Dissolve.Blend(activeBuf, pendingBuf, c.transitionP, c.Colors)

		if c.transitionP >= 1 {
			c.activePattern = c.pendingPattern
			c.pendingPattern = -1
			c.transitionP = 0
		}
	} else {
		active.Render(c.Colors)
	}

	for _, fx := range c.Effects {
		fx.Advance(dtMs)
		fx.Apply(c.Colors)
	}

	c.IsAnimating = true
}
