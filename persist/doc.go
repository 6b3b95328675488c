// Package persist implements the opaque save/load key-value tree
// described in spec.md 4.6 ("save walks the component tree to a
// key-value tree; load walks it back, reconstructing channels by class
// name and then delegating to their load"), serialized with
// gopkg.in/yaml.v3 per the teacher's config-loading convention.
//
// The fixed key order load walks in is grounded on
// original_source/src/heronarts/lx/LXEngine.java's load(): channels,
// master, palette, tempo, audio, components, output, modulation (always
// present, defaulting to an empty tree), osc, midi — "later components
// assume earlier ones exist" (spec.md 9's global-init-ordering note).
package persist
