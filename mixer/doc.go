// Package mixer implements the bus-routing compositor (spec.md 4.3):
// accumulating top-level channel output into MAIN/A/B buses, crossfading
// A against B into MAIN, and separately accumulating a CUE (preview)
// bus. It depends on channel for the Bus type and channel views, never
// the reverse — channel exposes only structural accessor methods so the
// two packages don't cycle.
//
// The crossfade/dissolve math is grounded on
// other_examples/coreman2200-funtimes-arcaluminis__engine.go's
// Engine.RenderOnce, which drives the same "mix two named buffers by a
// single scalar, write into a third" shape used here for A/B and for
// the final crossfade into MAIN.
package mixer
