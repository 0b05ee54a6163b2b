package component

import (
	"fmt"
	"sync/atomic"

	"github.com/lamina-ui/lamina/pkg/dom"
	"github.com/lamina-ui/lamina/pkg/vdom"
)

// RenderFunc produces a component's output for one pass. It receives the
// current input and the placeholder node to append output to, and must
// describe exactly the declared child count for every container it opens.
type RenderFunc func(input any, out *vdom.Node)

// Hooks are the lifecycle callbacks a component can register. Callbacks
// run synchronously during a reconciliation pass and must not mutate the
// tree being walked.
type Hooks struct {
	OnCreate  func(*Instance)
	OnUpdate  func(*Instance)
	OnDestroy func(*Instance)
}

// Instance is a long-lived stateful component. It survives across renders
// while its id keeps appearing in new trees, and is destroyed when it no
// longer does (unless explicitly preserved).
type Instance struct {
	id       string
	typeName string

	// Input is the component's current input.
	Input any

	// State is the component's mutable state, owned by the application.
	State any

	render RenderFunc
	hooks  Hooks

	dirty     atomic.Bool
	destroyed bool

	// startMarker/endMarker delimit the instance's committed output in
	// the live tree (the fragment boundary pair).
	startMarker dom.Node
	endMarker   dom.Node

	// roots maps reconciliation keys to realized root nodes. A key may
	// hold several nodes when it is a repeated/array key.
	roots map[string][]dom.Node
}

var _ vdom.ComponentRef = (*Instance)(nil)

// ComponentID implements vdom.ComponentRef.
func (c *Instance) ComponentID() string {
	return c.id
}

// TypeName returns the component's registered type name.
func (c *Instance) TypeName() string {
	return c.typeName
}

// Render builds a component placeholder populated with this instance's
// output for input.
func (c *Instance) Render() *vdom.Node {
	out := vdom.NewComponent(c, "@"+c.id).WithOwner(c)
	if c.render != nil {
		c.render(c.Input, out)
	}
	return out
}

// MarkDirty flags the component as needing re-render.
func (c *Instance) MarkDirty() {
	c.dirty.CompareAndSwap(false, true)
}

// IsDirty returns whether the component needs re-rendering.
func (c *Instance) IsDirty() bool {
	return c.dirty.Load()
}

// ClearDirty clears the dirty flag.
func (c *Instance) ClearDirty() {
	c.dirty.Store(false)
}

// Destroyed reports whether Destroy has run.
func (c *Instance) Destroyed() bool {
	return c.destroyed
}

// SetHost records the boundary markers delimiting this instance's output.
func (c *Instance) SetHost(start, end dom.Node) {
	c.startMarker, c.endMarker = start, end
}

// Host returns the boundary markers, nil before the first commit.
func (c *Instance) Host() (start, end dom.Node) {
	return c.startMarker, c.endMarker
}

// Mounted reports whether the instance has committed output in a live tree.
func (c *Instance) Mounted() bool {
	return c.startMarker != nil
}

// Created fires the create lifecycle event.
func (c *Instance) Created() {
	if c.hooks.OnCreate != nil {
		c.hooks.OnCreate(c)
	}
}

// Updated fires the update lifecycle event.
func (c *Instance) Updated() {
	if c.hooks.OnUpdate != nil {
		c.hooks.OnUpdate(c)
	}
}

// Destroy tears the instance down: fires the destroy event, drops the key
// table and host markers. It is idempotent; the event fires once.
func (c *Instance) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	if c.hooks.OnDestroy != nil {
		c.hooks.OnDestroy(c)
	}
	c.roots = nil
	c.startMarker, c.endMarker = nil, nil
}

// SetKeyedRoot records n as the sole root for key.
func (c *Instance) SetKeyedRoot(key string, n dom.Node) {
	if c.roots == nil {
		c.roots = make(map[string][]dom.Node)
	}
	c.roots[key] = []dom.Node{n}
}

// AppendKeyedRoot records n as an additional root under a repeated key.
func (c *Instance) AppendKeyedRoot(key string, n dom.Node) {
	if c.roots == nil {
		c.roots = make(map[string][]dom.Node)
	}
	c.roots[key] = append(c.roots[key], n)
}

// KeyedRoot returns the first root recorded for key.
func (c *Instance) KeyedRoot(key string) (dom.Node, bool) {
	ns := c.roots[key]
	if len(ns) == 0 {
		return nil, false
	}
	return ns[0], true
}

// KeyedRoots returns every root recorded for key.
func (c *Instance) KeyedRoots(key string) []dom.Node {
	return c.roots[key]
}

// RemoveKeyedRoot forgets n under key. Removing the last root drops the key.
func (c *Instance) RemoveKeyedRoot(key string, n dom.Node) {
	ns := c.roots[key]
	for i, cand := range ns {
		if cand == n {
			ns = append(ns[:i], ns[i+1:]...)
			break
		}
	}
	if len(ns) == 0 {
		delete(c.roots, key)
	} else {
		c.roots[key] = ns
	}
}

// DropKey forgets every root recorded for key.
func (c *Instance) DropKey(key string) {
	delete(c.roots, key)
}

// String implements fmt.Stringer for debug output.
func (c *Instance) String() string {
	return fmt.Sprintf("%s#%s", c.typeName, c.id)
}
