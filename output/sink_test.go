package output

import (
	"testing"
	"time"

	"github.com/pidge/LX/color"
)

type recordingSink struct {
	*BaseSink
	received []color.Buffer
}

func newRecordingSink(n int) *recordingSink {
	s := &recordingSink{BaseSink: NewBaseSink(n)}
	s.SetImpl(s)
	return s
}

func (s *recordingSink) OnSend(colors color.Buffer) {
	cp := make(color.Buffer, len(colors))
	color.Copy(cp, colors)
	s.received = append(s.received, cp)
}

func TestSendDisabledIsNoop(t *testing.T) {
	s := newRecordingSink(2)
	_ = s.Enabled.Set(false)
	s.Send(color.NewBuffer(2))
	if len(s.received) != 0 {
		t.Fatalf("expected disabled sink to receive nothing")
	}
}

func TestSendRawPassesThrough(t *testing.T) {
	s := newRecordingSink(2)
	s.Mode.Select(ModeRaw)
	in := color.NewBuffer(2)
	color.Fill(in, color.ARGB(255, 10, 20, 30))
	s.Send(in)
	if len(s.received) != 1 {
		t.Fatalf("expected one send")
	}
	if s.received[0][0] != color.ARGB(255, 10, 20, 30) {
		t.Fatalf("raw mode must not modify the buffer, got %08X", s.received[0][0])
	}
}

func TestSendOffSendsAllBlack(t *testing.T) {
	s := newRecordingSink(2)
	s.Mode.Select(ModeOff)
	in := color.NewBuffer(2)
	color.Fill(in, color.White)
	s.Send(in)
	if s.received[0][0] != color.Black {
		t.Fatalf("off mode must send black, got %08X", s.received[0][0])
	}
}

func TestSendWhiteScalesByBrightness(t *testing.T) {
	s := newRecordingSink(1)
	s.Mode.Select(ModeWhite)
	_ = s.Brightness.SetValue(0.5)
	s.Send(color.NewBuffer(1))
	_, r, g, b := color.Components(s.received[0][0])
	if r != g || g != b {
		t.Fatalf("white mode must be neutral gray, got %d %d %d", r, g, b)
	}
	if r == 0 || r == 255 {
		t.Fatalf("expected a half-brightness white, got %d", r)
	}
}

func TestSendNormalPassesThroughWithoutCorrection(t *testing.T) {
	s := newRecordingSink(1)
	in := color.NewBuffer(1)
	color.Fill(in, color.ARGB(255, 100, 150, 200))
	s.Send(in)
	if s.received[0][0] != color.ARGB(255, 100, 150, 200) {
		t.Fatalf("normal mode with gamma=0 and brightness=1 must pass through unchanged")
	}
}

func TestSendFansOutToChildren(t *testing.T) {
	parent := newRecordingSink(1)
	child := newRecordingSink(1)
	parent.AddChild(child)

	in := color.NewBuffer(1)
	color.Fill(in, color.ARGB(255, 1, 2, 3))
	parent.Send(in)

	if len(child.received) != 1 {
		t.Fatalf("expected child to receive the parent's already-corrected buffer")
	}
	if child.received[0][0] != parent.received[0][0] {
		t.Fatalf("child must receive exactly what the parent sent, not re-derive it")
	}
}

func TestSendThrottlesByFPS(t *testing.T) {
	s := newRecordingSink(1)
	_ = s.FramesPerSecond.SetValue(1000) // 1ms interval, easy to exceed in-test

	s.Send(color.NewBuffer(1))
	s.Send(color.NewBuffer(1))
	if len(s.received) != 1 {
		t.Fatalf("expected second send within the throttle window to be skipped, got %d sends", len(s.received))
	}

	time.Sleep(5 * time.Millisecond)
	s.Send(color.NewBuffer(1))
	if len(s.received) != 2 {
		t.Fatalf("expected a send after the throttle window elapses, got %d sends", len(s.received))
	}
}

func TestRemoveChildStopsFanout(t *testing.T) {
	parent := newRecordingSink(1)
	child := newRecordingSink(1)
	parent.AddChild(child)
	parent.RemoveChild(child)

	parent.Send(color.NewBuffer(1))
	if len(child.received) != 0 {
		t.Fatalf("expected removed child to receive nothing")
	}
}
