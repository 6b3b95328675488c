package doublebuffer

import (
	"sync"

	"github.com/pidge/LX/color"
)

// Pair is a render/copy buffer pair whose labels swap at frame
// boundaries (LXEngine.DoubleBuffer). The renderer always writes to
// Render(); consumers read the copy side through Set.CopyUIBuffer (or,
// single-threaded, Set.UIBufferNonThreadSafe).
type Pair struct {
	render color.Buffer
	copy   color.Buffer
}

// NewPair allocates a render/copy pair of N-pixel buffers, both
// initialized to black.
func NewPair(n int) *Pair {
	return &Pair{render: color.NewBuffer(n), copy: color.NewBuffer(n)}
}

// Render returns the buffer the renderer should write this frame's
// output into.
func (p *Pair) Render() color.Buffer { return p.render }

// flip swaps the render/copy labels. Caller must hold whatever lock
// protects this pair.
func (p *Pair) flip() {
	p.render, p.copy = p.copy, p.render
}

// sync copies render into copy, without flipping — used once before the
// first flip on a threading-mode transition so that the about-to-be-
// promoted copy side holds a valid frame (LXEngine.EngineBuffer.sync).
func (p *Pair) sync() {
	color.Copy(p.copy, p.render)
}

// copyInto copies this pair's copy-side buffer into dst.
func (p *Pair) copyInto(dst color.Buffer) {
	color.Copy(dst, p.copy)
}

// Set is the engine's pair of double buffers (MAIN and CUE) plus the
// cueOn flag that decides which one copyUIBuffer reads from — mirrors
// LXEngine.EngineBuffer exactly.
type Set struct {
	mu sync.Mutex

	Main *Pair
	Cue  *Pair

	cueOn bool
}

// NewSet allocates an N-pixel MAIN/CUE double-buffer set.
func NewSet(n int) *Set {
	return &Set{Main: NewPair(n), Cue: NewPair(n)}
}

// Flip swaps both pairs' render/copy labels and records whether this
// frame's cue bus had content (cueActive on any channel, or cueA/cueB).
// threaded selects whether the swap needs the lock: single-threaded
// operation sets the flag and swaps without locking, and consumers read
// the just-published side directly via UIBufferNonThreadSafe.
func (s *Set) Flip(cueOn bool, threaded bool) {
	if threaded {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	s.cueOn = cueOn
	s.Main.flip()
	s.Cue.flip()
}

// SyncAndFlip is called exactly once, when transitioning into a threaded
// mode (engine- or network-threaded): it copies render into copy for
// both pairs, then flips, so the newly-promoted consumer side is valid
// before the engine's next frame begins (LXEngine's "Synchronize the two
// buffers, flip so that the engine thread doesn't start rendering over
// the top of the buffer the UI thread might be currently working on").
func (s *Set) SyncAndFlip() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Main.sync()
	s.Cue.sync()
	s.Main.flip()
	s.Cue.flip()
}

// CopyUIBuffer copies the currently-published frame (cue bus if cueOn,
// else main) into dst, under lock.
func (s *Set) CopyUIBuffer(dst color.Buffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cueOn {
		s.Cue.copyInto(dst)
	} else {
		s.Main.copyInto(dst)
	}
}

// UIBufferNonThreadSafe returns direct access, without locking, to the
// buffer holding the last flipped frame (the copy side) selected by
// cueOn, for single-threaded operation where no consumer can race the
// renderer.
func (s *Set) UIBufferNonThreadSafe() color.Buffer {
	if s.cueOn {
		return s.Cue.copy
	}
	return s.Main.copy
}
