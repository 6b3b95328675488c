package channel

// Group is a channel specialization that owns an ordered list of
// sub-channels and composites them into its own buffer before the
// top-level mixer blends it. The group holds non-owning references to its
// children — the engine owns every channel, including grouped ones (see
// design notes: cyclic references modeled as arena-style back-links).
type Group struct {
	*Channel
	Children []*Channel
}

// NewGroup allocates an empty group with an N-pixel buffer of its own.
func NewGroup(n int) *Group {
	return &Group{Channel: NewChannel(n)}
}

// AddChild appends c to the group, setting c's group back-link. c must
// not already belong to a group (invariant 3: a channel belongs to at
// most one group).
func (g *Group) AddChild(c *Channel) error {
	if c.group != nil {
		return ErrNotOwnedByChannel
	}
	c.setGroup(g)
	g.Children = append(g.Children, c)
	return nil
}

// RemoveChild detaches c from the group without destroying it (the
// engine retains ownership); c becomes a top-level channel again.
func (g *Group) RemoveChild(c *Channel) error {
	for i, ch := range g.Children {
		if ch == c {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			c.setGroup(nil)
			return nil
		}
	}
	return ErrNotOwnedByChannel
}
