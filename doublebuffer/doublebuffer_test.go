package doublebuffer

import (
	"testing"

	"github.com/pidge/LX/color"
)

func TestFlipExposesRenderedFrame(t *testing.T) {
	s := NewSet(4)
	color.Fill(s.Main.Render(), color.White)
	s.Flip(false, false)

	got := make(color.Buffer, 4)
	s.CopyUIBuffer(got)
	for _, p := range got {
		if p != color.White {
			t.Fatalf("expected copy side to see the rendered white frame, got %08X", p)
		}
	}
}

func TestCueOnSelectsCueBuffer(t *testing.T) {
	s := NewSet(2)
	color.Fill(s.Main.Render(), color.ARGB(255, 1, 0, 0))
	color.Fill(s.Cue.Render(), color.ARGB(255, 0, 0, 1))
	s.Flip(true, false)

	got := make(color.Buffer, 2)
	s.CopyUIBuffer(got)
	for _, p := range got {
		_, r, _, b := color.Components(p)
		if r != 0 || b != 1 {
			t.Fatalf("expected cueOn to select the cue buffer, got r=%d b=%d", r, b)
		}
	}
}

func TestSyncAndFlipPromotesCurrentRenderBeforeFlip(t *testing.T) {
	s := NewSet(3)
	color.Fill(s.Main.Render(), color.White)
	s.SyncAndFlip()

	got := make(color.Buffer, 3)
	s.CopyUIBuffer(got)
	for _, p := range got {
		if p != color.White {
			t.Fatalf("expected sync-then-flip to expose the pre-transition frame, got %08X", p)
		}
	}
}

func TestUIBufferNonThreadSafeTracksCueFlag(t *testing.T) {
	s := NewSet(1)
	color.Fill(s.Main.Render(), color.ARGB(255, 9, 9, 9))
	s.Flip(false, false)
	if s.UIBufferNonThreadSafe()[0] != color.ARGB(255, 9, 9, 9) {
		t.Fatalf("expected non-thread-safe accessor to read main render side")
	}
}
