package color

import "testing"

func TestNewBufferIsOpaqueBlack(t *testing.T) {
	buf := NewBuffer(8)
	if len(buf) != 8 {
		t.Fatalf("len = %d, want 8", len(buf))
	}
	for i, p := range buf {
		if p != Black {
			t.Fatalf("buf[%d] = %#x, want Black", i, p)
		}
	}
}

func TestARGBRoundTrip(t *testing.T) {
	p := ARGB(0xFF, 0x11, 0x22, 0x33)
	a, r, g, b := Components(p)
	if a != 0xFF || r != 0x11 || g != 0x22 || b != 0x33 {
		t.Fatalf("got %02x%02x%02x%02x", a, r, g, b)
	}
}

func TestCopyPanicsOnLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on length mismatch")
		}
	}()
	Copy(make(Buffer, 2), make(Buffer, 3))
}

func TestNormalBlendFullAlphaIsSrc(t *testing.T) {
	dst := Buffer{ARGB(255, 255, 0, 0)}
	src := Buffer{ARGB(255, 0, 255, 0)}
	out := make(Buffer, 1)
	Normal.Blend(dst, src, 1.0, out)
	if out[0] != src[0] {
		t.Fatalf("out = %#x, want %#x", out[0], src[0])
	}
}

func TestNormalBlendZeroAlphaIsDst(t *testing.T) {
	dst := Buffer{ARGB(255, 255, 0, 0)}
	src := Buffer{ARGB(255, 0, 255, 0)}
	out := make(Buffer, 1)
	Normal.Blend(dst, src, 0.0, out)
	if out[0] != dst[0] {
		t.Fatalf("out = %#x, want %#x", out[0], dst[0])
	}
}

func TestDissolveHalfMix(t *testing.T) {
	dst := Buffer{ARGB(255, 255, 0, 0)}
	src := Buffer{ARGB(255, 0, 255, 0)} // red and green, 50/50
	out := make(Buffer, 1)
	Dissolve.Blend(dst, src, 0.5, out)
	_, r, g, b := Components(out[0])
	if r < 126 || r > 129 || g < 126 || g > 129 || b != 0 {
		t.Fatalf("got r=%d g=%d b=%d, want ~128/~128/0", r, g, b)
	}
}

func TestAddSaturates(t *testing.T) {
	dst := Buffer{ARGB(255, 200, 0, 0)}
	src := Buffer{ARGB(255, 200, 0, 0)}
	out := make(Buffer, 1)
	Add.Blend(dst, src, 1.0, out)
	_, r, _, _ := Components(out[0])
	if r != 255 {
		t.Fatalf("r = %d, want 255 (saturated)", r)
	}
}

func TestHSBRoundTrip(t *testing.T) {
	cases := [][3]uint8{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {128, 64, 200}, {0, 0, 0}, {255, 255, 255}}
	for _, c := range cases {
		h, s, v := RGBToHSB(c[0], c[1], c[2])
		r, g, b := HSBToRGB(h, s, v)
		if absDiff(r, c[0]) > 1 || absDiff(g, c[1]) > 1 || absDiff(b, c[2]) > 1 {
			t.Fatalf("round trip %v -> (%f,%f,%f) -> %d,%d,%d", c, h, s, v, r, g, b)
		}
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestApplyCorrectionZeroGammaFullBrightnessIsIdentity(t *testing.T) {
	buf := Buffer{ARGB(255, 100, 150, 200)}
	want := buf[0]
	ApplyCorrection(buf, 0, 1.0)
	if buf[0] != want {
		t.Fatalf("got %#x, want %#x (identity)", buf[0], want)
	}
}

func TestApplyCorrectionHalfBrightnessDims(t *testing.T) {
	buf := Buffer{ARGB(255, 200, 200, 200)}
	ApplyCorrection(buf, 0, 0.5)
	_, r, _, _ := Components(buf[0])
	if r >= 200 {
		t.Fatalf("r = %d, want dimmer than 200", r)
	}
}
