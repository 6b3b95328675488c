// Package color implements the fixed-length ARGB color point buffer that
// every pattern, effect, mixer bus, and output sink in LX shares, plus the
// blend and gamma/brightness primitives that operate on it.
//
// All buffers in this package are plain []Point slices: there is no hidden
// synchronization here. Callers (channel, mixer, doublebuffer, output) are
// responsible for the aliasing and locking discipline the rest of the
// engine depends on.
package color
