package param

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Component is a named, addressable node with a string-keyed parameter
// map, a parent back-link, and a stable id. Channels, groups, the master
// channel, and the engine itself all embed Component.
type Component struct {
	mu     sync.RWMutex
	id     uuid.UUID
	path   string
	parent *Component
	params map[string]Parameter
}

// NewComponent allocates an unattached component (no parent, no path).
// Callers give it a path via SetParent (children) or by registering it as
// the engine root directly.
func NewComponent() *Component {
	return &Component{
		id:     uuid.New(),
		params: make(map[string]Parameter),
	}
}

// ID returns the component's stable, engine-lifetime-unique id.
func (c *Component) ID() uuid.UUID { return c.id }

// Path returns the component's slash-separated address.
func (c *Component) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.path
}

// Parent returns the component's parent, or nil at the tree root.
func (c *Component) Parent() *Component {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.parent
}

// SetParent attaches c under parent at the given local path segment,
// deriving c's full path from the parent's. Root components (the engine)
// call SetPath instead.
func (c *Component) SetParent(parent *Component, segment string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.parent = parent
	if parent == nil {
		c.path = segment
		return
	}
	c.path = parent.Path() + "/" + segment
}

// SetPath sets an absolute path directly. Used for the engine root, whose
// path (/lx/engine) has no parent.
func (c *Component) SetPath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.path = path
}

// RegisterParameter adds p under key, assigning it this component as
// owner. The key must be unique within the component and the parameter
// must not already have an owner (SetComponent is one-shot); either
// violation is a contract error returned to the caller.
func (c *Component) RegisterParameter(key string, p Parameter) error {
	c.mu.Lock()
	if _, exists := c.params[key]; exists {
		c.mu.Unlock()
		return fmt.Errorf("param: key %q already registered on component %s", key, c.path)
	}
	c.params[key] = p
	path := c.path
	c.mu.Unlock()

	if err := p.SetComponent(c, path+"/"+key); err != nil {
		c.mu.Lock()
		delete(c.params, key)
		c.mu.Unlock()
		return fmt.Errorf("param: registering %q: %w", key, err)
	}
	return nil
}

// Parameter looks up a previously registered parameter by key.
func (c *Component) Parameter(key string) (Parameter, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.params[key]
	return p, ok
}

// Parameters returns a snapshot of all registered key/parameter pairs.
func (c *Component) Parameters() map[string]Parameter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Parameter, len(c.params))
	for k, v := range c.params {
		out[k] = v
	}
	return out
}
