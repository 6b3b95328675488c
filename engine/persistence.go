package engine

import (
	"log/slog"

	"github.com/pidge/LX/channel"
	"github.com/pidge/LX/color"
	"github.com/pidge/LX/persist"
)

// Save snapshots the engine into a persist.Tree, in the same key set
// Load reads back.
func (e *Engine) Save() (*persist.Tree, error) {
	channels := make([]any, 0, len(e.Nodes))
	for _, n := range e.Nodes {
		switch v := n.(type) {
		case *channel.Channel:
			channels = append(channels, saveChannel(v))
		case *channel.Group:
			group := saveChannel(v.Channel)
			group[persist.KeyClass] = "Group"
			children := make([]any, 0, len(v.Children))
			for _, child := range v.Children {
				children = append(children, saveChannel(child))
			}
			group["children"] = children
			channels = append(channels, group)
		}
	}

	t := persist.Tree{
		persist.KeyChannels:   channels,
		persist.KeyMaster:     saveChannel(e.Master.Channel),
		persist.KeyPalette:    persist.Tree{},
		persist.KeyTempo:      persist.Tree{},
		persist.KeyAudio:      persist.Tree{},
		persist.KeyComponents: persist.Tree{},
		persist.KeyOutput:     persist.Tree{},
		persist.KeyModulation: persist.Tree{},
		persist.KeyOSC:        persist.Tree{},
		persist.KeyMIDI:       persist.Tree{},
		"crossfader":          e.Crossfader.BaseValue(),
		"crossfaderBlend":     e.CrossfaderBlendName.Value(),
	}
	return &t, nil
}

func saveChannel(c *channel.Channel) persist.Tree {
	return persist.Tree{
		persist.KeyClass: "Channel",
		"fader":          c.Fader.GetValue(),
		"enabled":        c.Enabled.IsOn(),
		"bus":            c.Bus().String(),
		"blend":          c.BlendMode.Name(),
	}
}

// Load restores engine state from t, per spec.md 7's error-handling
// semantics: unknown keys are ignored, missing optional keys default,
// a missing "channels" key creates one default channel with fader 1,
// and an element missing "class" aborts loading that element only
// (the rest of the tree still loads).
func (e *Engine) Load(t *persist.Tree) error {
	tree := *t

	e.Nodes = nil
	if list, err := tree.List(persist.KeyChannels); err == nil {
		for _, raw := range list {
			elem, ok := raw.(map[string]any)
			if !ok {
				if sub, ok := raw.(persist.Tree); ok {
					elem = sub
				} else {
					continue
				}
			}
			e.loadChannelElement(persist.Tree(elem))
		}
	} else {
		c := e.AddChannel()
		_ = c.Fader.SetValue(1)
	}
	e.reindex()

	if master, err := tree.SubTree(persist.KeyMaster); err == nil {
		loadChannelFields(e.Master.Channel, master)
	}

	// palette/tempo/audio/components/output: collaborators out of scope
	// here, loaded only to validate the tree shape round-trips.
	for _, key := range []string{persist.KeyPalette, persist.KeyTempo, persist.KeyAudio, persist.KeyComponents, persist.KeyOutput} {
		_ = tree.SubTreeOrEmpty(key)
	}
	_ = tree.SubTreeOrEmpty(persist.KeyModulation)
	for _, key := range []string{persist.KeyOSC, persist.KeyMIDI} {
		_ = tree.SubTreeOrEmpty(key)
	}

	// The engine's own parameters load last.
	if x, err := tree.Float("crossfader"); err == nil {
		_ = e.Crossfader.SetValue(x)
	}
	if name, err := tree.String("crossfaderBlend"); err == nil {
		e.CrossfaderBlendName.Select(name)
	}

	return nil
}

func (e *Engine) loadChannelElement(elem persist.Tree) {
	class, err := elem.String(persist.KeyClass)
	if err != nil {
		slog.Warn("engine: skipping channel element", "error", persist.ErrMissingClass)
		return
	}

	switch class {
	case "Group":
		g := e.AddGroup()
		loadChannelFields(g.Channel, elem)
		if childList, err := elem.List("children"); err == nil {
			for _, raw := range childList {
				childElem, ok := raw.(map[string]any)
				if !ok {
					sub, isTree := raw.(persist.Tree)
					if !isTree {
						continue
					}
					childElem = sub
				}
				child := channel.NewChannel(e.N)
				loadChannelFields(child, persist.Tree(childElem))
				_ = g.AddChild(child)
			}
		}
	default:
		c := e.AddChannel()
		loadChannelFields(c, elem)
	}
}

func loadChannelFields(c *channel.Channel, t persist.Tree) {
	if fader, err := t.Float("fader"); err == nil {
		_ = c.Fader.SetValue(fader)
	}
	if enabled, err := t.Bool("enabled"); err == nil {
		_ = c.Enabled.Set(enabled)
	}
	if bus, err := t.String("bus"); err == nil {
		switch bus {
		case channel.BusA.String():
			c.CrossfadeGroup.Select(channel.BusA)
		case channel.BusB.String():
			c.CrossfadeGroup.Select(channel.BusB)
		default:
			c.CrossfadeGroup.Select(channel.BusBypass)
		}
	}
	if blend, err := t.String("blend"); err == nil {
		if bm, ok := color.Modes[blend]; ok {
			c.BlendMode = bm
		}
	}
}
