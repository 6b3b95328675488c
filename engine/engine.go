package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pidge/LX/channel"
	"github.com/pidge/LX/color"
	"github.com/pidge/LX/doublebuffer"
	"github.com/pidge/LX/mixer"
	"github.com/pidge/LX/output"
	"github.com/pidge/LX/param"
	"github.com/pidge/LX/task"
)

// Node is a top-level entry in the engine's channel list: either a
// leaf *channel.Channel or a *channel.Group, both of which satisfy
// mixer.ChannelView and expose Index/SetIndex.
type Node interface {
	mixer.ChannelView
	Index() int
	SetIndex(int)
}

// Collaborator is any of the time-advancing external systems the
// engine ticks once per frame with unscaled or scaled delta
// (tempo/audio/modulation/palette — spec.md 3's "out of scope,
// referenced only through their contracts").
type Collaborator interface {
	Tick(dtMs float64)
}

var (
	// ErrUnknownChannel is returned by structural operations given a
	// channel the engine does not own.
	ErrUnknownChannel = errors.New("engine: channel not owned by this engine")
	// ErrNotGrouped is returned by Ungroup when the channel is not
	// currently inside any group.
	ErrNotGrouped = errors.New("engine: channel is not in a group")
)

// Engine is the runnable core: one Run() call advances exactly one
// frame through the full pipeline described in spec.md 4.1.
type Engine struct {
	*param.Component

	N int

	Nodes  []Node
	Master *channel.Master

	Mixer   *mixer.Mixer
	Buffers *doublebuffer.Set
	Output  *output.BaseSink
	network *output.NetworkWorker

	Crossfader          *param.Compound
	CrossfaderBlendName *param.Enum[string]
	CueA                *param.Boolean
	CueB                *param.Boolean
	Speed               *param.Bounded
	FramesPerSecond     *param.Bounded
	FocusedChannel      *param.Discrete
	Scenes              [channel.NumScenes]*param.Boolean

	EngineThreaded  *param.Boolean
	ChannelThreaded *param.Boolean
	NetworkThreaded *param.Boolean

	FixedDeltaMs float64
	Paused       bool

	Tasks     task.Queue
	LoopTasks task.Registry
	Listeners task.ListenerRegistry

	Tempo      Collaborator
	Audio      Collaborator
	Modulation Collaborator
	Palette    Collaborator

	MidiPump func()
	OSCPump  func()
	UIPump   func()

	FrameNanos int64

	mu        sync.Mutex // mode-transition lock
	lastTick  time.Time
	firstTick bool
	runCtx    context.Context
	runCancel context.CancelFunc
	runWG     sync.WaitGroup

	cueCascade []func() // deferred cueA/cueB reset intents, applied after unwinding
}

// New allocates an engine for an N-pixel pipeline, wiring parameters,
// buffers, and the master channel in the order the original engine's
// constructor does (spec.md 9: "buffers -> blends -> modulation ->
// master channel -> listeners").
func New(n int) *Engine {
	e := &Engine{
		Component:           param.NewComponent(),
		N:                   n,
		Mixer:               mixer.New(n),
		Buffers:             doublebuffer.NewSet(n),
		Output:              output.NewBaseSink(n),
		Crossfader:          param.NewCompound(0, 1, 0.5),
		CrossfaderBlendName: param.NewEnum([]string{"NORMAL", "DISSOLVE", "ADD", "MULTIPLY", "SCREEN", "LIGHTEST", "DARKEST"}),
		CueA:                param.NewBoolean(false),
		CueB:                param.NewBoolean(false),
		Speed:               param.NewBounded(0, 2, 1),
		FramesPerSecond:     param.NewBounded(0, 300, 60),
		FocusedChannel:      param.NewDiscrete(1, 0),
		EngineThreaded:      param.NewBoolean(false),
		ChannelThreaded:     param.NewBoolean(false),
		NetworkThreaded:     param.NewBoolean(false),
		firstTick:           true,
	}
	e.Component.SetPath("/lx/engine")

	_ = e.Component.RegisterParameter("crossfader", e.Crossfader)
	_ = e.Component.RegisterParameter("cueA", e.CueA)
	_ = e.Component.RegisterParameter("cueB", e.CueB)
	_ = e.Component.RegisterParameter("speed", e.Speed)
	_ = e.Component.RegisterParameter("framesPerSecond", e.FramesPerSecond)
	_ = e.Component.RegisterParameter("focusedChannel", e.FocusedChannel)
	_ = e.Component.RegisterParameter("engineThreaded", e.EngineThreaded)
	_ = e.Component.RegisterParameter("channelThreaded", e.ChannelThreaded)
	_ = e.Component.RegisterParameter("networkThreaded", e.NetworkThreaded)

	e.Master = channel.NewMaster(n)
	e.Master.SetParent(e.Component, "master")

	for i := range e.Scenes {
		idx := i
		s := param.NewBoolean(false)
		_ = e.Component.RegisterParameter(fmt.Sprintf("scene-%d", idx+1), s)
		s.AddListener(func(param.Parameter) {
			if s.IsOn() {
				e.LaunchScene(idx)
				_ = s.Set(false)
			}
		})
		e.Scenes[idx] = s
	}

	// cueA/cueB mutual exclusion: listeners record intent in a queue; the
	// first listener call drains it, and intents recorded while a reset
	// runs wait in the queue until that reset returns, so notification
	// chains never recurse (spec.md 9).
	e.CueA.AddListener(func(param.Parameter) {
		if e.CueA.IsOn() {
			e.deferCueCascade(func() {
				_ = e.CueB.Set(false)
				e.clearChannelCue()
			})
		}
	})
	e.CueB.AddListener(func(param.Parameter) {
		if e.CueB.IsOn() {
			e.deferCueCascade(func() {
				_ = e.CueA.Set(false)
				e.clearChannelCue()
			})
		}
	})

	return e
}

func (e *Engine) deferCueCascade(fn func()) {
	e.cueCascade = append(e.cueCascade, fn)
	if len(e.cueCascade) > 1 {
		return
	}
	for len(e.cueCascade) > 0 {
		e.cueCascade[0]()
		e.cueCascade = e.cueCascade[1:]
	}
}

func (e *Engine) clearChannelCue() {
	for _, n := range e.Nodes {
		if c, ok := n.(*channel.Channel); ok {
			_ = c.CueActive.Set(false)
		}
		if g, ok := n.(*channel.Group); ok {
			_ = g.CueActive.Set(false)
			for _, child := range g.Children {
				_ = child.CueActive.Set(false)
			}
		}
	}
}

// crossfaderBlend resolves the currently-selected crossfader blend mode.
func (e *Engine) crossfaderBlend() color.BlendMode {
	if bm, ok := color.Modes[e.CrossfaderBlendName.Value()]; ok {
		return bm
	}
	return color.Normal
}

func (e *Engine) allLeafChannels() []*channel.Channel {
	var leaves []*channel.Channel
	for _, n := range e.Nodes {
		switch v := n.(type) {
		case *channel.Group:
			leaves = append(leaves, v.Children...)
		case *channel.Channel:
			leaves = append(leaves, v)
		}
	}
	return leaves
}

func (e *Engine) topLevelViews() []mixer.ChannelView {
	views := make([]mixer.ChannelView, len(e.Nodes))
	for i, n := range e.Nodes {
		views[i] = n
	}
	return views
}

// Run advances exactly one frame, per spec.md 4.1's contract.
func (e *Engine) Run() {
	start := time.Now()

	now := start
	var dtMs float64
	if e.firstTick {
		dtMs = 16
		e.firstTick = false
	} else {
		dtMs = float64(now.Sub(e.lastTick).Microseconds()) / 1000.0
	}
	e.lastTick = now

	if e.FixedDeltaMs > 0 {
		dtMs = e.FixedDeltaMs
	}

	if e.Paused {
		e.FrameNanos = time.Since(start).Nanoseconds()
		return
	}

	if e.MidiPump != nil {
		e.MidiPump()
	}
	if e.OSCPump != nil {
		e.OSCPump()
	}
	if e.UIPump != nil {
		e.UIPump()
	}

	if e.Tempo != nil {
		e.Tempo.Tick(dtMs)
	}
	if e.Audio != nil {
		e.Audio.Tick(dtMs)
	}

	dtMs *= e.Speed.GetValue()

	if e.Modulation != nil {
		e.Modulation.Tick(dtMs)
	}
	if e.Palette != nil {
		e.Palette.Tick(dtMs)
	}
	e.LoopTasks.RunAll(dtMs)

	e.Tasks.Drain()

	leaves := e.allLeafChannels()
	if e.ChannelThreaded.IsOn() {
		channel.RunThreaded(leaves, dtMs)
	} else {
		channel.RunSingleThreaded(leaves, dtMs)
	}
	e.Master.Loop(dtMs)

	for _, n := range e.Nodes {
		if g, ok := n.(*channel.Group); ok {
			mixer.CompositeGroup(g)
		}
	}

	e.Mixer.Crossfader = e.Crossfader.GetValue()
	e.Mixer.CrossfaderBlend = e.crossfaderBlend()
	e.Mixer.CueA = e.CueA.IsOn()
	e.Mixer.CueB = e.CueB.IsOn()
	e.Mixer.Composite(e.topLevelViews())

	e.Master.ApplyEffects(dtMs, e.Mixer.Main)

	color.Copy(e.Buffers.Main.Render(), e.Mixer.Main)
	color.Copy(e.Buffers.Cue.Render(), e.Mixer.Cue)

	cueOn := e.CueA.IsOn() || e.CueB.IsOn()
	for _, n := range e.Nodes {
		if n.IsCueActive() {
			cueOn = true
		}
	}

	threaded := e.EngineThreaded.IsOn() || e.NetworkThreaded.IsOn()
	e.Buffers.Flip(cueOn, threaded)

	if e.NetworkThreaded.IsOn() && e.network != nil {
		e.network.Notify()
	} else {
		sendBuf := make(color.Buffer, e.N)
		e.Buffers.CopyUIBuffer(sendBuf)
		e.Output.Send(sendBuf)
	}

	e.FrameNanos = time.Since(start).Nanoseconds()
}

// SetFixedDeltaMs forces every subsequent frame to advance by exactly d
// milliseconds, for deterministic offline rendering. Zero disables it.
func (e *Engine) SetFixedDeltaMs(d float64) {
	e.FixedDeltaMs = d
}

// Start begins engine-threaded operation: a dedicated goroutine calls
// Run repeatedly, sleeping to honor FramesPerSecond. Mode transitions
// are serialized under mu, and the double buffers are synced before
// the new thread's first frame so no consumer observes a torn frame
// (spec.md 4.1).
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.runCancel != nil {
		return
	}
	e.Buffers.SyncAndFlip()
	e.runCtx, e.runCancel = context.WithCancel(context.Background())
	_ = e.EngineThreaded.Set(true)
	e.runWG.Add(1)
	go e.runLoop(e.runCtx)
}

// Stop ends engine-threaded operation and waits for the thread to exit.
func (e *Engine) Stop() {
	e.mu.Lock()
	cancel := e.runCancel
	e.runCancel = nil
	e.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	e.runWG.Wait()
	_ = e.EngineThreaded.Set(false)
}

func (e *Engine) runLoop(ctx context.Context) {
	defer e.runWG.Done()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		frameStart := time.Now()
		e.Run()
		fps := e.FramesPerSecond.GetValue()
		if fps > 0 {
			target := time.Duration(1000.0/fps) * time.Millisecond
			elapsed := time.Since(frameStart)
			if sleep := target - elapsed; sleep > 0 {
				time.Sleep(sleep)
			}
		}
	}
}

// AddTask enqueues fn to run on the engine thread at the start of the
// next frame. Safe to call from any goroutine.
func (e *Engine) AddTask(fn func()) { e.Tasks.Add(fn) }

// AddLoopTask registers t to run every frame. Returns
// task.ErrDuplicateTask if t is already registered.
func (e *Engine) AddLoopTask(t task.LoopTask) error { return e.LoopTasks.Add(t) }

// RemoveLoopTask deregisters t.
func (e *Engine) RemoveLoopTask(t task.LoopTask) { e.LoopTasks.Remove(t) }

// CopyUIBuffer copies the currently-published frame into dst, safe to
// call from any thread while the engine is running threaded.
func (e *Engine) CopyUIBuffer(dst color.Buffer) { e.Buffers.CopyUIBuffer(dst) }

// UIBufferNonThreadSafe returns direct access to the last published
// frame without locking; only safe when the engine is not threaded.
func (e *Engine) UIBufferNonThreadSafe() color.Buffer {
	return e.Buffers.UIBufferNonThreadSafe()
}

// AddOutput attaches sink as a child of the engine's root output sink.
func (e *Engine) AddOutput(sink output.Sink) {
	e.Output.AddChild(sink)
}

// EnableNetworkThread starts (or, with on=false, stops) the dedicated
// network output worker. Mirrors LXEngine's onParameterChanged hook on
// isNetworkMultithreaded, documented in spec.md 9 as a one-way latch in
// the original; this port adds the symmetric shutdown path the design
// notes flag as missing. Entering threaded output from fully
// single-threaded operation syncs and flips the buffers first.
func (e *Engine) EnableNetworkThread(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if on && !e.NetworkThreaded.IsOn() && !e.EngineThreaded.IsOn() {
		e.Buffers.SyncAndFlip()
	}
	_ = e.NetworkThreaded.Set(on)
	if on {
		if e.network == nil {
			e.network = output.NewNetworkWorker(e.Buffers, e.Output, e.N)
		}
		e.network.Start()
	} else if e.network != nil {
		e.network.Stop()
	}
}

// LaunchScene triggers the clip at index on every top-level channel,
// every grouped child, and the master.
func (e *Engine) LaunchScene(index int) error {
	if index < 0 || index >= channel.NumScenes {
		return fmt.Errorf("engine: scene index %d out of range", index)
	}
	for _, n := range e.Nodes {
		if c, ok := n.(*channel.Channel); ok {
			if clip := c.Clip(index); clip != nil {
				clip.Trigger()
			}
		}
		if g, ok := n.(*channel.Group); ok {
			if clip := g.Clip(index); clip != nil {
				clip.Trigger()
			}
			for _, child := range g.Children {
				if clip := child.Clip(index); clip != nil {
					clip.Trigger()
				}
			}
		}
	}
	if clip := e.Master.Clip(index); clip != nil {
		clip.Trigger()
	}
	return nil
}

// StopClips stops every clip on every channel, group, grouped child,
// and the master.
func (e *Engine) StopClips() {
	stopAll := func(c *channel.Channel) {
		for _, clip := range c.Clips {
			if clip != nil {
				clip.Stop()
			}
		}
	}
	for _, n := range e.Nodes {
		if c, ok := n.(*channel.Channel); ok {
			stopAll(c)
		}
		if g, ok := n.(*channel.Group); ok {
			stopAll(g.Channel)
			for _, child := range g.Children {
				stopAll(child)
			}
		}
	}
	stopAll(e.Master.Channel)
}
