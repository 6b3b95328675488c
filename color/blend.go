package color

// BlendMode is the pure "how do two buffers combine" capability every
// channel, group, and the crossfader select from. It is the Blendable
// capability named in the design notes: a function of (dst, src, alpha)
// producing out. dst and out may be the same buffer (in-place
// accumulation); src must not alias dst/out.
type BlendMode interface {
	// Name identifies the blend mode (used by persistence and UIs).
	Name() string

	// Blend combines src over dst at the given alpha (0..1), writing the
	// result into out. len(dst) == len(src) == len(out) is assumed; all
	// three come from the same fixed-N pool so this always holds.
	Blend(dst, src Buffer, alpha float64, out Buffer)
}

// BlendFunc adapts a plain function to BlendMode.
type BlendFunc struct {
	FuncName string
	Fn       func(dst, src Buffer, alpha float64, out Buffer)
}

func (f BlendFunc) Name() string { return f.FuncName }

func (f BlendFunc) Blend(dst, src Buffer, alpha float64, out Buffer) {
	f.Fn(dst, src, alpha, out)
}

// Normal alpha-composites src over dst (straight lerp per channel),
// equivalent to the LX "Dissolve" blend — grounded on the crossfade mix
// in arcaluminis's Engine.RenderOnce (Mix(out, bufA, bufB, alpha)).
var Normal = BlendFunc{FuncName: "NORMAL", Fn: lerpBlend}
var Dissolve = BlendFunc{FuncName: "DISSOLVE", Fn: lerpBlend}

func lerpBlend(dst, src Buffer, alpha float64, out Buffer) {
	for i := range out {
		da, dr, dg, db := Components(dst[i])
		sa, sr, sg, sb := Components(src[i])
		a := lerp8(da, sa, alpha)
		r := lerp8(dr, sr, alpha)
		g := lerp8(dg, sg, alpha)
		b := lerp8(db, sb, alpha)
		out[i] = ARGB(a, r, g, b)
	}
}

func lerp8(d, s uint8, alpha float64) uint8 {
	return uint8(float64(d)*(1-alpha) + float64(s)*alpha + 0.5)
}

// Add saturates dst + alpha*src per channel. Used for additive bus
// accumulation (cue bus, crossfaded result into MAIN) where the spec
// calls for "additively blend at alpha=1".
var Add = BlendFunc{FuncName: "ADD", Fn: addBlend}

func addBlend(dst, src Buffer, alpha float64, out Buffer) {
	for i := range out {
		da, dr, dg, db := Components(dst[i])
		sa, sr, sg, sb := Components(src[i])
		a := clampByte(int32(da) + int32(scale(sa, alpha)))
		r := clampByte(int32(dr) + int32(scale(sr, alpha)))
		g := clampByte(int32(dg) + int32(scale(sg, alpha)))
		b := clampByte(int32(db) + int32(scale(sb, alpha)))
		out[i] = ARGB(a, r, g, b)
	}
}

// Multiply blends src into dst by channel-wise multiplication, scaled by
// alpha via a lerp against the multiplied result.
var Multiply = BlendFunc{FuncName: "MULTIPLY", Fn: multiplyBlend}

func multiplyBlend(dst, src Buffer, alpha float64, out Buffer) {
	for i := range out {
		da, dr, dg, db := Components(dst[i])
		_, sr, sg, sb := Components(src[i])
		mr := uint8(uint16(dr) * uint16(sr) / 255)
		mg := uint8(uint16(dg) * uint16(sg) / 255)
		mb := uint8(uint16(db) * uint16(sb) / 255)
		out[i] = ARGB(da, lerp8(dr, mr, alpha), lerp8(dg, mg, alpha), lerp8(db, mb, alpha))
	}
}

// Screen blends using the screen formula (inverse-multiply of inverses).
var Screen = BlendFunc{FuncName: "SCREEN", Fn: screenBlend}

func screenBlend(dst, src Buffer, alpha float64, out Buffer) {
	for i := range out {
		da, dr, dg, db := Components(dst[i])
		_, sr, sg, sb := Components(src[i])
		sc := func(d, s uint8) uint8 {
			return uint8(255 - uint16(255-d)*uint16(255-s)/255)
		}
		out[i] = ARGB(da, lerp8(dr, sc(dr, sr), alpha), lerp8(dg, sc(dg, sg), alpha), lerp8(db, sc(db, sb), alpha))
	}
}

// Lightest keeps the brighter of dst/src per channel, lerped by alpha.
var Lightest = BlendFunc{FuncName: "LIGHTEST", Fn: lightestBlend}

func lightestBlend(dst, src Buffer, alpha float64, out Buffer) {
	for i := range out {
		da, dr, dg, db := Components(dst[i])
		_, sr, sg, sb := Components(src[i])
		out[i] = ARGB(da, lerp8(dr, max8(dr, sr), alpha), lerp8(dg, max8(dg, sg), alpha), lerp8(db, max8(db, sb), alpha))
	}
}

// Darkest keeps the dimmer of dst/src per channel, lerped by alpha.
var Darkest = BlendFunc{FuncName: "DARKEST", Fn: darkestBlend}

func darkestBlend(dst, src Buffer, alpha float64, out Buffer) {
	for i := range out {
		da, dr, dg, db := Components(dst[i])
		_, sr, sg, sb := Components(src[i])
		out[i] = ARGB(da, lerp8(dr, min8(dr, sr), alpha), lerp8(dg, min8(dg, sg), alpha), lerp8(db, min8(db, sb), alpha))
	}
}

func max8(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}

func min8(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}

// Modes lists the built-in blend modes by name, for UI/persistence lookup.
var Modes = map[string]BlendMode{
	Normal.Name():   Normal,
	Dissolve.Name(): Dissolve,
	Add.Name():      Add,
	Multiply.Name(): Multiply,
	Screen.Name():   Screen,
	Lightest.Name(): Lightest,
	Darkest.Name():  Darkest,
}
