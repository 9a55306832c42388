package teximage

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/teximage/driver"
)

// HeadlessContext is the name of the context Ensure creates when no
// context factory is registered.
const HeadlessContext = "headless"

// Context is an opaque rendering context. Texture bindings are tracked per
// context; switching contexts forces the next bind to reach the driver.
type Context struct {
	id   driver.ContextID
	name string
}

// ID returns the driver-level identifier of the context.
func (c *Context) ID() driver.ContextID {
	if c == nil {
		return 0
	}
	return c.id
}

// Name returns the name the context was created with.
func (c *Context) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// String implements fmt.Stringer.
func (c *Context) String() string {
	if c == nil {
		return "context(none)"
	}
	return fmt.Sprintf("context(%d %s)", c.id, c.name)
}

// ContextRegistry tracks the current rendering context.
//
// Windowing integrations register factories with RegisterFactory; Ensure
// uses the highest-priority factory to create a context on first use, or a
// headless context when none is registered.
//
// ContextRegistry is not safe for concurrent use. GPU work is confined to a
// single goroutine.
type ContextRegistry struct {
	factories *gpucontext.Registry[*Context]
	nextID    driver.ContextID
	current   *Context
}

// NewContextRegistry creates a registry with no current context. Factories
// named in priority are preferred by Ensure in the given order.
func NewContextRegistry(priority ...string) *ContextRegistry {
	return &ContextRegistry{
		factories: gpucontext.NewRegistry[*Context](gpucontext.WithPriority(priority...)),
	}
}

// NewContext allocates a context with a fresh ID. It does not make it
// current.
func (r *ContextRegistry) NewContext(name string) *Context {
	r.nextID++
	return &Context{id: r.nextID, name: name}
}

// RegisterFactory registers a context factory under name. The factory
// typically wraps a window's GL or WebGPU context and obtains its Context
// from NewContext.
func (r *ContextRegistry) RegisterFactory(name string, factory func() *Context) {
	r.factories.Register(name, factory)
}

// UnregisterFactory removes the factory registered under name.
func (r *ContextRegistry) UnregisterFactory(name string) {
	r.factories.Unregister(name)
}

// Factories returns the number of registered factories.
func (r *ContextRegistry) Factories() int {
	return r.factories.Count()
}

// Current returns the current context, or nil.
func (r *ContextRegistry) Current() *Context {
	return r.current
}

// MakeCurrent sets the current context. Passing nil clears it.
func (r *ContextRegistry) MakeCurrent(c *Context) {
	r.current = c
}

// Ensure returns the current context, creating and selecting one first if
// there is none.
func (r *ContextRegistry) Ensure() *Context {
	if r.current != nil {
		return r.current
	}
	c := r.factories.Best()
	if c == nil {
		c = r.NewContext(HeadlessContext)
	}
	r.current = c
	Logger().Debug("teximage: context created", "context", c.String())
	return c
}
