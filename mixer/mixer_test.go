package mixer

import (
	"testing"

	"github.com/pidge/LX/channel"
	"github.com/pidge/LX/color"
)

type solidPattern struct{ c color.Point }

func (p *solidPattern) Advance(dtMs float64) {}
func (p *solidPattern) Render(out color.Buffer) {
	color.Fill(out, p.c)
}

func solidChannel(n int, bus channel.Bus, fader float64, c color.Point) *channel.Channel {
	ch := channel.NewChannel(n)
	ch.Patterns = []channel.Pattern{&solidPattern{c: c}}
	ch.CrossfadeGroup.Select(bus)
	_ = ch.Fader.SetValue(fader)
	ch.Loop(16)
	return ch
}

func TestZeroChannelsMainEqualsBackground(t *testing.T) {
	m := New(4)
	m.Composite(nil)
	for _, p := range m.Main {
		if p != color.Black {
			t.Fatalf("expected black background with zero channels, got %08X", p)
		}
	}
}

func TestBypassFaderZeroEqualsBackground(t *testing.T) {
	m := New(4)
	ch := solidChannel(4, channel.BusBypass, 0, color.ARGB(255, 255, 0, 0))
	m.Composite([]ChannelView{ch})
	for _, p := range m.Main {
		if p != color.Black {
			t.Fatalf("expected background at fader=0, got %08X", p)
		}
	}
}

func TestBypassFaderOneEqualsChannelBuffer(t *testing.T) {
	m := New(4)
	red := color.ARGB(255, 255, 0, 0)
	ch := solidChannel(4, channel.BusBypass, 1, red)
	m.Composite([]ChannelView{ch})
	for _, p := range m.Main {
		if p != red {
			t.Fatalf("expected solo channel at fader=1 to equal its own buffer, got %08X want %08X", p, red)
		}
	}
}

func TestSoloChannelOnMain(t *testing.T) {
	m := New(4)
	red := color.ARGB(255, 255, 0, 0)
	ch := solidChannel(4, channel.BusBypass, 1, red)
	m.Composite([]ChannelView{ch})

	for _, p := range m.Main {
		if p != red {
			t.Fatalf("main expected opaque red, got %08X", p)
		}
	}
	for _, p := range m.Cue {
		if p != color.Black {
			t.Fatalf("cue expected background (no cueActive channel), got %08X", p)
		}
	}
}

// At crossfader=0.25 the per-spec formula (x<=0.5: alpha=min(1,2x)) gives
// alpha=0.5, an even blend — the true midpoint of the dissolve is here,
// not at crossfader=0.5 (where alpha saturates to 1, see
// TestCrossfaderMidpointFavorsB below).
func TestTwoChannelsCrossfadingAtQuarter(t *testing.T) {
	m := New(1)
	m.Crossfader = 0.25
	m.CrossfaderBlend = color.Dissolve

	red := color.ARGB(255, 255, 0, 0)
	green := color.ARGB(255, 0, 255, 0)
	a := solidChannel(1, channel.BusA, 1, red)
	b := solidChannel(1, channel.BusB, 1, green)

	m.Composite([]ChannelView{a, b})

	_, r, g, _ := color.Components(m.Main[0])
	if r < 126 || r > 129 || g < 126 || g > 129 {
		t.Fatalf("expected ~50/50 red/green mix, got r=%d g=%d", r, g)
	}
}

// At x=0.5 exactly the spec's alpha=min(1,2x) saturates to 1, so the
// blend fully replaces left with right before the additive step —
// grounded on LXEngine.run's crossfadeAlpha computation (x<=0.5 branch).
func TestCrossfaderMidpointFavorsB(t *testing.T) {
	m := New(1)
	m.Crossfader = 0.5
	m.CrossfaderBlend = color.Dissolve

	red := color.ARGB(255, 255, 0, 0)
	green := color.ARGB(255, 0, 255, 0)
	a := solidChannel(1, channel.BusA, 1, red)
	b := solidChannel(1, channel.BusB, 1, green)

	m.Composite([]ChannelView{a, b})

	if m.Main[0] != green {
		t.Fatalf("expected x=0.5 boundary to saturate to full B, got %08X", m.Main[0])
	}
}

func TestCrossfaderZeroIsAllA(t *testing.T) {
	m := New(1)
	m.Crossfader = 0
	m.CrossfaderBlend = color.Dissolve

	red := color.ARGB(255, 255, 0, 0)
	green := color.ARGB(255, 0, 255, 0)
	a := solidChannel(1, channel.BusA, 1, red)
	b := solidChannel(1, channel.BusB, 1, green)

	m.Composite([]ChannelView{a, b})

	if m.Main[0] != red {
		t.Fatalf("crossfader=0 should equal A at full weight, got %08X", m.Main[0])
	}
}

func TestCrossfaderOneIsAllB(t *testing.T) {
	m := New(1)
	m.Crossfader = 1
	m.CrossfaderBlend = color.Dissolve

	red := color.ARGB(255, 255, 0, 0)
	green := color.ARGB(255, 0, 255, 0)
	a := solidChannel(1, channel.BusA, 1, red)
	b := solidChannel(1, channel.BusB, 1, green)

	m.Composite([]ChannelView{a, b})

	if m.Main[0] != green {
		t.Fatalf("crossfader=1 should equal B at full weight, got %08X", m.Main[0])
	}
}

func TestCuePreviewIndependentOfMain(t *testing.T) {
	m := New(1)
	blue := color.ARGB(255, 0, 0, 255)
	ch := channel.NewChannel(1)
	ch.Patterns = []channel.Pattern{&solidPattern{c: blue}}
	ch.CrossfadeGroup.Select(channel.BusBypass)
	_ = ch.CueActive.Set(true)
	ch.Loop(16)

	m.Composite([]ChannelView{ch})

	if m.Cue[0] != blue {
		t.Fatalf("expected cue bus to show blue preview, got %08X", m.Cue[0])
	}
	if m.Main[0] != blue {
		t.Fatalf("expected main to independently mix in the bypass channel too, got %08X", m.Main[0])
	}
}

func TestCompositeGroupFoldsChildrenIntoGroupBuffer(t *testing.T) {
	g := channel.NewGroup(1)
	red := color.ARGB(255, 255, 0, 0)
	child := channel.NewChannel(1)
	child.Patterns = []channel.Pattern{&solidPattern{c: red}}
	_ = child.Fader.SetValue(1)
	child.Loop(16)
	_ = g.AddChild(child)

	CompositeGroup(g)

	if g.Colors[0] != red {
		t.Fatalf("expected group buffer to equal its sole child's output, got %08X", g.Colors[0])
	}
}
