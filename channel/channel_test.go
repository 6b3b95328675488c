package channel

import (
	"testing"
	"time"

	"github.com/pidge/LX/color"
)

type solidPattern struct {
	c       color.Point
	renders int
}

func (p *solidPattern) Advance(dtMs float64) {}
func (p *solidPattern) Render(out color.Buffer) {
	p.renders++
	color.Fill(out, p.c)
}

type invertEffect struct{ applied int }

func (e *invertEffect) Advance(dtMs float64) {}
func (e *invertEffect) Apply(buf color.Buffer) {
	e.applied++
	for i, p := range buf {
		a, r, g, b := color.Components(p)
		buf[i] = color.ARGB(a, 255-r, 255-g, 255-b)
	}
}

func TestChannelLoopRendersActivePattern(t *testing.T) {
	c := NewChannel(4)
	p := &solidPattern{c: color.White}
	c.Patterns = []Pattern{p}

	c.Loop(16)

	if !c.IsAnimating {
		t.Fatalf("expected IsAnimating after a render with patterns present")
	}
	if p.renders != 1 {
		t.Fatalf("expected active pattern to render once, got %d", p.renders)
	}
	for _, px := range c.Colors {
		if px != color.White {
			t.Fatalf("expected white buffer, got %08X", px)
		}
	}
}

func TestChannelLoopNoPatternsNotAnimating(t *testing.T) {
	c := NewChannel(4)
	c.Loop(16)
	if c.IsAnimating {
		t.Fatalf("channel with no patterns must not report IsAnimating")
	}
}

func TestChannelLoopAppliesEffect(t *testing.T) {
	c := NewChannel(4)
	c.Patterns = []Pattern{&solidPattern{c: color.ARGB(255, 0, 0, 0)}}
	fx := &invertEffect{}
	c.Effects = []Effect{fx}

	c.Loop(16)

	if fx.applied != 1 {
		t.Fatalf("expected effect applied once, got %d", fx.applied)
	}
	_, r, g, b := color.Components(c.Colors[0])
	if r != 255 || g != 255 || b != 255 {
		t.Fatalf("expected inverted black -> white, got %d %d %d", r, g, b)
	}
}

func TestChannelTransitionDissolvesThenCommits(t *testing.T) {
	c := NewChannel(1)
	black := &solidPattern{c: color.ARGB(255, 0, 0, 0)}
	white := &solidPattern{c: color.ARGB(255, 255, 255, 255)}
	c.Patterns = []Pattern{black, white}
	c.SetPattern(0)

	if err := c.TransitionTo(1, 100); err != nil {
		t.Fatalf("TransitionTo: %v", err)
	}

	c.Loop(50)
	_, r, _, _ := color.Components(c.Colors[0])
	if r == 0 || r == 255 {
		t.Fatalf("expected a blended value mid-transition, got %d", r)
	}
	if c.activePattern != 0 || c.pendingPattern != 1 {
		t.Fatalf("transition should not have committed yet")
	}

	c.Loop(50)
	_, r, _, _ = color.Components(c.Colors[0])
	if r != 255 {
		t.Fatalf("expected fully white after transition completes, got %d", r)
	}
	if c.activePattern != 1 || c.pendingPattern != -1 {
		t.Fatalf("transition should have committed to pattern 1, got active=%d pending=%d", c.activePattern, c.pendingPattern)
	}
}

func TestSetPatternOutOfRange(t *testing.T) {
	c := NewChannel(1)
	c.Patterns = []Pattern{&solidPattern{}}
	if err := c.SetPattern(5); err == nil {
		t.Fatalf("expected error for out-of-range pattern index")
	}
}

func TestGroupAddChildEnforcesSingleOwnership(t *testing.T) {
	g1 := NewGroup(4)
	g2 := NewGroup(4)
	c := NewChannel(4)

	if err := g1.AddChild(c); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if c.Group() != g1 {
		t.Fatalf("expected channel's group back-link to be set")
	}
	if err := g2.AddChild(c); err != ErrNotOwnedByChannel {
		t.Fatalf("expected ErrNotOwnedByChannel adding an already-grouped channel to another group, got %v", err)
	}
}

func TestGroupRemoveChildClearsBackLink(t *testing.T) {
	g := NewGroup(4)
	c := NewChannel(4)
	_ = g.AddChild(c)

	if err := g.RemoveChild(c); err != nil {
		t.Fatalf("RemoveChild: %v", err)
	}
	if c.Group() != nil {
		t.Fatalf("expected back-link cleared after removal")
	}
	if err := g.RemoveChild(c); err != ErrNotOwnedByChannel {
		t.Fatalf("expected ErrNotOwnedByChannel removing a child twice, got %v", err)
	}
}

func TestMasterApplyEffectsAppliesEffect(t *testing.T) {
	m := NewMaster(2)
	buf := color.NewBuffer(2)
	color.Fill(buf, color.ARGB(255, 10, 10, 10))
	fx := &invertEffect{}
	m.Effects = []Effect{fx}

	m.ApplyEffects(16, buf)

	if fx.applied != 1 {
		t.Fatalf("expected master effect applied once")
	}
	_, r, _, _ := color.Components(buf[0])
	if r != 245 {
		t.Fatalf("expected inverted 10 -> 245, got %d", r)
	}
}

func TestMasterLoopIsPlaceholder(t *testing.T) {
	m := NewMaster(1)
	m.Loop(16) // must not panic; no effects applied without an explicit buffer
}

func TestRunThreadedMatchesSingleThreaded(t *testing.T) {
	single := NewChannel(3)
	single.Patterns = []Pattern{&solidPattern{c: color.White}}

	threaded := NewChannel(3)
	threaded.Patterns = []Pattern{&solidPattern{c: color.White}}

	RunSingleThreaded([]*Channel{single}, 16)
	RunThreaded([]*Channel{threaded}, 16)
	StopWorker(threaded)

	for i := range single.Colors {
		if single.Colors[i] != threaded.Colors[i] {
			t.Fatalf("threaded and single-threaded runs diverged at pixel %d", i)
		}
	}
}

func TestRunThreadedRunsChannelsConcurrently(t *testing.T) {
	const n = 8
	chans := make([]*Channel, n)
	for i := range chans {
		chans[i] = NewChannel(1)
		chans[i].Patterns = []Pattern{&solidPattern{c: color.White}}
	}

	done := make(chan struct{})
	go func() {
		RunThreaded(chans, 16)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("RunThreaded did not complete within timeout")
	}

	for _, c := range chans {
		StopWorker(c)
		if !c.IsAnimating {
			t.Fatalf("expected channel to have rendered")
		}
	}
}
