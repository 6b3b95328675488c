package output

import (
	"time"

	"github.com/pidge/LX/color"
	"github.com/pidge/LX/param"
)

// Mode selects how a sink transforms the buffer it was sent, per
// spec.md 4.5.
type Mode int

const (
	ModeNormal Mode = iota
	ModeWhite
	ModeRaw
	ModeOff
)

func (m Mode) String() string {
	switch m {
	case ModeWhite:
		return "WHITE"
	case ModeRaw:
		return "RAW"
	case ModeOff:
		return "OFF"
	default:
		return "NORMAL"
	}
}

// Sink is anything that can receive a corrected color buffer. A BaseSink
// handles throttling, mode dispatch, and correction; concrete sinks
// implement OnSend to actually transmit.
type Sink interface {
	Send(colors color.Buffer)
	OnSend(colors color.Buffer)
	AddChild(child Sink)
	RemoveChild(child Sink)
}

// BaseSink implements the common send pipeline (spec.md 4.5 steps 1-5).
// Embed it and provide OnSend to build a concrete sink.
type BaseSink struct {
	*param.Component

	Enabled         *param.Boolean
	Mode            *param.Enum[Mode]
	FramesPerSecond *param.Bounded
	GammaCorrection *param.Discrete
	Brightness      *param.Bounded

	children []Sink

	// impl, if set, receives the corrected buffer from Send. Concrete
	// sinks that embed BaseSink and don't override Send should set this
	// in their constructor.
	impl Sink

	lastFrame  time.Time
	allWhite   color.Buffer
	allOff     color.Buffer
	correction color.Buffer

	sent, dropped uint64
}

// Stats reports how many frames this sink has forwarded (sent) versus
// skipped by the throttle or disabled gate (dropped), and when it last
// forwarded a frame — the original LXOutput's per-child frame counters.
type Stats struct {
	Sent        uint64
	Dropped     uint64
	LastFrameAt time.Time
}

// Stats returns a snapshot of the sink's frame counters.
func (s *BaseSink) Stats() Stats {
	return Stats{Sent: s.sent, Dropped: s.dropped, LastFrameAt: s.lastFrame}
}

// NewBaseSink allocates a sink's scratch buffers for an N-pixel pipeline.
func NewBaseSink(n int) *BaseSink {
	s := &BaseSink{
		Component:       param.NewComponent(),
		Enabled:         param.NewBoolean(true),
		Mode:            param.NewEnum([]Mode{ModeNormal, ModeWhite, ModeRaw, ModeOff}),
		FramesPerSecond: param.NewBounded(0, 300, 0),
		GammaCorrection: param.NewDiscrete(4, 0),
		Brightness:      param.NewBounded(0, 1, 1),
		allWhite:        color.NewBuffer(n),
		allOff:          color.NewBuffer(n),
		correction:      color.NewBuffer(n),
	}
	_ = s.Component.RegisterParameter("enabled", s.Enabled)
	_ = s.Component.RegisterParameter("mode", s.Mode)
	_ = s.Component.RegisterParameter("fps", s.FramesPerSecond)
	_ = s.Component.RegisterParameter("gamma", s.GammaCorrection)
	_ = s.Component.RegisterParameter("brightness", s.Brightness)
	color.Fill(s.allOff, color.Black)
	return s
}

// SetImpl wires the concrete sink that should receive OnSend calls.
// Concrete sink constructors call this with themselves.
func (s *BaseSink) SetImpl(impl Sink) { s.impl = impl }

// AddChild appends a child sink to receive this sink's corrected output.
func (s *BaseSink) AddChild(child Sink) {
	s.children = append(s.children, child)
}

// RemoveChild detaches a previously-added child sink.
func (s *BaseSink) RemoveChild(child Sink) {
	for i, c := range s.children {
		if c == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}

// Send runs the throttle/mode/correction pipeline of spec.md 4.5 and
// fans the result out to children. A no-op if the sink is disabled.
func (s *BaseSink) Send(colors color.Buffer) {
	if !s.Enabled.IsOn() {
		s.dropped++
		return
	}

	now := time.Now()
	fps := s.FramesPerSecond.GetValue()
	if fps != 0 {
		interval := time.Duration(1000.0 / fps * float64(time.Millisecond))
		if !s.lastFrame.IsZero() && now.Sub(s.lastFrame) <= interval {
			s.dropped++
			return
		}
	}

	colorsToSend := s.choose(colors)

	if s.impl != nil {
		s.impl.OnSend(colorsToSend)
	}
	for _, child := range s.children {
		child.Send(colorsToSend)
	}
	s.sent++
	s.lastFrame = now
}

func (s *BaseSink) choose(colors color.Buffer) color.Buffer {
	switch s.Mode.Value() {
	case ModeWhite:
		color.WhiteBuffer(s.allWhite, s.Brightness.GetValue())
		return s.allWhite
	case ModeOff:
		return s.allOff
	case ModeRaw:
		return colors
	default:
		gamma := s.GammaCorrection.IntValue()
		brightness := s.Brightness.GetValue()
		if gamma > 0 || brightness < 1 {
			color.Copy(s.correction, colors)
			color.ApplyCorrection(s.correction, gamma, brightness)
			return s.correction
		}
		return colors
	}
}

// OnSend is the default no-op implementation; concrete sinks override
// it by embedding BaseSink and calling SetImpl(self) in their
// constructor, then defining their own OnSend.
func (s *BaseSink) OnSend(colors color.Buffer) {}
