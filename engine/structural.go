package engine

import (
	"fmt"

	"github.com/pidge/LX/channel"
)

// reindex renumbers every top-level node's Index() to match its position
// in Nodes, mirroring LXEngine._reindexChannels.
func (e *Engine) reindex() {
	for i, n := range e.Nodes {
		n.SetIndex(i)
	}
	e.FocusedChannel.SetRange(len(e.Nodes))
}

// AddChannel appends a new empty top-level channel.
func (e *Engine) AddChannel() *channel.Channel {
	return e.AddChannelWithPatterns(nil)
}

// AddChannelWithPatterns appends a new top-level channel seeded with
// patterns, and fires ChannelAdded to registered listeners.
func (e *Engine) AddChannelWithPatterns(patterns []channel.Pattern) *channel.Channel {
	c := channel.NewChannel(e.N)
	c.Patterns = patterns
	c.SetParent(e.Component, fmt.Sprintf("channel-%d", len(e.Nodes)))
	e.Nodes = append(e.Nodes, c)
	e.reindex()
	e.Listeners.ChannelAdded(c)
	return c
}

// AddGroup appends a new empty group, and fires ChannelAdded.
func (e *Engine) AddGroup() *channel.Group {
	g := channel.NewGroup(e.N)
	g.SetParent(e.Component, fmt.Sprintf("group-%d", len(e.Nodes)))
	e.Nodes = append(e.Nodes, g)
	e.reindex()
	e.Listeners.ChannelAdded(g)
	return g
}

// RemoveChannel removes a top-level leaf channel, stopping its worker
// and firing ChannelRemoved. Groups are removed with RemoveGroup; grouped
// children are not addressable here — Ungroup them first.
func (e *Engine) RemoveChannel(c *channel.Channel) error {
	idx := -1
	for i, n := range e.Nodes {
		if leaf, ok := n.(*channel.Channel); ok && leaf == c {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrUnknownChannel
	}
	channel.StopWorker(c)
	e.Nodes = append(e.Nodes[:idx], e.Nodes[idx+1:]...)
	e.reindex()
	e.Listeners.ChannelRemoved(c)
	return nil
}

// RemoveGroup removes a top-level group (and, with it, ownership of its
// children — callers wanting to preserve children should Ungroup them
// first) and fires ChannelRemoved.
func (e *Engine) RemoveGroup(g *channel.Group) error {
	idx := -1
	for i, n := range e.Nodes {
		if grp, ok := n.(*channel.Group); ok && grp == g {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrUnknownChannel
	}
	for _, child := range g.Children {
		channel.StopWorker(child)
	}
	e.Nodes = append(e.Nodes[:idx], e.Nodes[idx+1:]...)
	e.reindex()
	e.Listeners.ChannelRemoved(g)
	return nil
}

// RemoveSelectedChannels removes every top-level channel whose Selected
// flag is set, in a single pass.
func (e *Engine) RemoveSelectedChannels() {
	kept := e.Nodes[:0]
	for _, n := range e.Nodes {
		if c, ok := n.(*channel.Channel); ok && c.Selected {
			channel.StopWorker(c)
			e.Listeners.ChannelRemoved(c)
			continue
		}
		if g, ok := n.(*channel.Group); ok && g.Selected {
			for _, child := range g.Children {
				channel.StopWorker(child)
			}
			e.Listeners.ChannelRemoved(g)
			continue
		}
		kept = append(kept, n)
	}
	e.Nodes = kept
	e.reindex()
}

// MoveChannel relocates a top-level leaf channel to index, clamped into
// range, and fires ChannelMoved. Groups are not matched.
func (e *Engine) MoveChannel(c *channel.Channel, index int) error {
	from := -1
	for i, n := range e.Nodes {
		if leaf, ok := n.(*channel.Channel); ok && leaf == c {
			from = i
			break
		}
	}
	if from < 0 {
		return ErrUnknownChannel
	}
	if index < 0 {
		index = 0
	}
	if index >= len(e.Nodes) {
		index = len(e.Nodes) - 1
	}
	node := e.Nodes[from]
	e.Nodes = append(e.Nodes[:from], e.Nodes[from+1:]...)
	e.Nodes = append(e.Nodes[:index], append([]Node{node}, e.Nodes[index:]...)...)
	e.reindex()
	e.Listeners.ChannelMoved(c)
	return nil
}

// Ungroup detaches c from its owning group and reinserts it as a
// top-level channel immediately after the group, per spec.md's group
// invariant 3 ("a channel belongs to at most one group").
func (e *Engine) Ungroup(c *channel.Channel) error {
	g := c.Group()
	if g == nil {
		return ErrNotGrouped
	}
	if err := g.RemoveChild(c); err != nil {
		return err
	}
	groupIdx := -1
	for i, n := range e.Nodes {
		if grp, ok := n.(*channel.Group); ok && grp == g {
			groupIdx = i
			break
		}
	}
	c.SetParent(e.Component, fmt.Sprintf("channel-%d", len(e.Nodes)))
	if groupIdx < 0 {
		e.Nodes = append(e.Nodes, c)
	} else {
		insertAt := groupIdx + 1
		e.Nodes = append(e.Nodes[:insertAt], append([]Node{c}, e.Nodes[insertAt:]...)...)
	}
	e.reindex()
	return nil
}

// SelectChannel exclusively selects c among all top-level channels and
// groups (spec.md's UI-focus convenience), also updating FocusedChannel.
func (e *Engine) SelectChannel(c *channel.Channel) {
	for i, n := range e.Nodes {
		switch v := n.(type) {
		case *channel.Channel:
			v.Selected = v == c
			if v == c {
				e.FocusedChannel.SetValue(float64(i))
			}
		case *channel.Group:
			v.Selected = false
		}
	}
}
