package color

import "math"

// RGBToHSB converts an 8-bit RGB triple into hue/saturation/brightness,
// each in [0,1]. No third-party color library appears anywhere in the
// retrieved pack (none of the example repos import one), so this is
// implemented directly against the standard HSB formula rather than a
// library — see DESIGN.md.
func RGBToHSB(r, g, b uint8) (h, s, v float64) {
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	v = max
	delta := max - min

	if max == 0 {
		return 0, 0, v
	}
	s = delta / max

	if delta == 0 {
		return 0, s, v
	}

	switch max {
	case rf:
		h = math.Mod((gf-bf)/delta, 6)
	case gf:
		h = (bf-rf)/delta + 2
	default:
		h = (rf-gf)/delta + 4
	}
	h /= 6
	if h < 0 {
		h += 1
	}
	return h, s, v
}

// HSBToRGB is the inverse of RGBToHSB.
func HSBToRGB(h, s, v float64) (r, g, b uint8) {
	if s <= 0 {
		c := clampByte(int32(v*255 + 0.5))
		return c, c, c
	}
	h = math.Mod(h, 1)
	if h < 0 {
		h += 1
	}
	hh := h * 6
	i := int(hh)
	f := hh - float64(i)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var rf, gf, bf float64
	switch i % 6 {
	case 0:
		rf, gf, bf = v, t, p
	case 1:
		rf, gf, bf = q, v, p
	case 2:
		rf, gf, bf = p, v, t
	case 3:
		rf, gf, bf = p, q, v
	case 4:
		rf, gf, bf = t, p, v
	default:
		rf, gf, bf = v, p, q
	}
	return clampByte(int32(rf*255 + 0.5)), clampByte(int32(gf*255 + 0.5)), clampByte(int32(bf*255 + 0.5))
}

// ApplyCorrection implements the per-pixel NORMAL-mode color correction
// from the output stage: convert to HSB, multiply the brightness channel
// by itself gamma times, then by brightness, and convert back. gamma <= 0
// and brightness >= 1 together are a no-op (callers should skip the call
// entirely in that case, matching spec.md 4.5 step 2).
func ApplyCorrection(buf Buffer, gamma int, brightness float64) {
	for i, p := range buf {
		a, r, g, b := Components(p)
		h, s, v := RGBToHSB(r, g, b)
		for n := 0; n < gamma; n++ {
			v *= v
		}
		v *= brightness
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		nr, ng, nb := HSBToRGB(h, s, v)
		buf[i] = ARGB(a, nr, ng, nb)
	}
}

// WhiteBuffer fills dst with HSB white (hue/sat 0) scaled by brightness,
// the WHITE output mode. The source's reusable scratch buffer for this
// is documented in design notes as non-constant — callers should treat
// dst as scratch and rewrite it every call, never cache its contents.
func WhiteBuffer(dst Buffer, brightness float64) {
	_, _, v := RGBToHSB(255, 255, 255)
	v *= brightness
	r, g, b := HSBToRGB(0, 0, v)
	Fill(dst, ARGB(255, r, g, b))
}
