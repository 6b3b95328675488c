// Package doublebuffer implements the render/copy flip described in
// spec.md 4.4: a renderer writes to "render" every frame, and at frame
// boundaries — under lock, when any consumer thread may be reading — the
// render/copy labels swap so consumers always see a fully-written frame.
//
// Grounded directly on LXEngine.EngineBuffer/DoubleBuffer in
// original_source/src/heronarts/lx/LXEngine.java: Pair mirrors
// DoubleBuffer (render/copy label swap), and Set mirrors EngineBuffer
// (a MAIN pair, a CUE pair, and the shared cueOn flag, with sync()
// preceding the first flip on a threading-mode transition).
package doublebuffer
