package morph

import (
	"strconv"

	"github.com/lamina-ui/lamina/internal/errors"
	"github.com/lamina-ui/lamina/pkg/component"
	"github.com/lamina-ui/lamina/pkg/dom"
	"github.com/lamina-ui/lamina/pkg/vdom"
)

// Context carries everything one live root needs across reconciliation
// passes: the node factory, the component registry, the side tables mapping
// live nodes to their last-committed virtual snapshots, and the per-pass
// bookkeeping. It is an explicit object, not ambient state, so independent
// roots and tests never share tables.
//
// A Context is single-writer: passes for the same root must be serialized
// by the caller. Starting a pass while one is in flight panics.
type Context struct {
	// Doc materializes new live nodes.
	Doc dom.Document

	// Registry resolves component instances by stable id. Optional;
	// only needed when trees contain component placeholders.
	Registry *component.Registry

	// OnNodeAdded, when set, is called once for every element committed
	// to the live tree, letting an event-delegation layer register
	// handlers. Callbacks must not mutate the tree being walked.
	OnNodeAdded func(dom.Node)

	// Metrics, when set, receives per-pass observations.
	Metrics *Metrics

	// meta maps a live node to what the last pass knew about it. Entries
	// are evicted explicitly when a node is permanently detached.
	meta map[dom.Node]*nodeMeta

	// autoKeys maps a structural parent to its auto-key table.
	autoKeys map[dom.Node]map[string]dom.Node

	inFlight bool

	// Per-pass state, reset by beginPass.
	stillPresent map[string]bool
	keyCounters  map[keyScope]int
	detached     map[dom.Node]dom.Node            // detached keyed node -> old parent
	holders      map[dom.Node]dom.Node            // detached keyed range start -> holder
	parked       map[*component.Instance]dom.Node // unmatched component -> holder
}

// nodeMeta is the side-table record for one live node.
type nodeMeta struct {
	// vnode is the virtual snapshot from the last committed render.
	vnode *vdom.Node

	// key is the resolved reconciliation key, "" if unkeyed.
	key string

	// owner is the component whose key table holds this node.
	owner *component.Instance

	// comp is set on a component host's start marker.
	comp *component.Instance

	// fragEnd is set on a fragment or component start marker: the
	// matching end marker.
	fragEnd dom.Node
}

// keyScope disambiguates repeated key literals: one counter per
// (scope, literal) pair per pass, in document order.
type keyScope struct {
	scope any // *component.Instance or structural parent dom.Node
	key   string
}

// NewContext creates a reconciliation context for one live root.
func NewContext(doc dom.Document, registry *component.Registry) *Context {
	return &Context{
		Doc:      doc,
		Registry: registry,
		meta:     make(map[dom.Node]*nodeMeta),
		autoKeys: make(map[dom.Node]map[string]dom.Node),
	}
}

func (c *Context) beginPass() {
	if c.inFlight {
		panic(errors.New("E101"))
	}
	c.inFlight = true
	c.stillPresent = make(map[string]bool)
	c.keyCounters = make(map[keyScope]int)
	c.detached = make(map[dom.Node]dom.Node)
	c.holders = make(map[dom.Node]dom.Node)
	c.parked = make(map[*component.Instance]dom.Node)
}

// endPass resolves deferred teardown: every node detached during the pass
// that was never reclaimed is evicted from the side tables, and every
// parked component whose id is absent from the new tree is destroyed.
func (c *Context) endPass() {
	for inst, holder := range c.parked {
		if c.stillPresent[inst.ComponentID()] {
			// Present in the new tree but its placeholder never
			// reclaimed the host (preserved subtree boundary).
			// Keep the instance alive, unmounted.
			continue
		}
		for child := holder.FirstChild(); child != nil; child = child.NextSibling() {
			c.evictSubtree(child)
		}
		inst.Destroy()
	}
	for n := range c.detached {
		c.evictSubtree(n)
	}
	for _, holder := range c.holders {
		for child := holder.FirstChild(); child != nil; child = child.NextSibling() {
			c.evictSubtree(child)
		}
	}
	c.inFlight = false
}

// metaOf returns the side-table record for n, nil if n was never committed
// by this context.
func (c *Context) metaOf(n dom.Node) *nodeMeta {
	if n == nil {
		return nil
	}
	return c.meta[n]
}

// remember records or replaces the side-table entry for n.
func (c *Context) remember(n dom.Node, m *nodeMeta) {
	c.meta[n] = m
}

// evictSubtree removes n and its descendants from every side table and
// destroys any component instances rooted in them that the new tree no
// longer references.
func (c *Context) evictSubtree(n dom.Node) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		c.evictSubtree(child)
	}

	m := c.meta[n]
	if m == nil {
		delete(c.autoKeys, n)
		return
	}
	if m.key != "" {
		if m.owner != nil {
			m.owner.RemoveKeyedRoot(m.key, n)
		} else if parent := n.Parent(); parent != nil {
			c.dropAutoKey(parent, m.key, n)
		} else {
			// Detached: the old parent's table may still point here.
			for _, table := range c.autoKeys {
				if table[m.key] == n {
					delete(table, m.key)
				}
			}
		}
	}
	if m.comp != nil && !c.stillPresent[m.comp.ComponentID()] {
		m.comp.Destroy()
	}
	delete(c.meta, n)
	delete(c.autoKeys, n)
}

// resolveKey turns a literal key into its pass-unique resolved form:
// the first occurrence in a scope keeps the bare literal, later repeats
// get a numeric suffix, deterministically in document order.
func (c *Context) resolveKey(scope any, literal string) string {
	ks := keyScope{scope: scope, key: literal}
	n := c.keyCounters[ks]
	c.keyCounters[ks]++
	if n == 0 {
		return literal
	}
	return literal + ":" + strconv.Itoa(n)
}

// lookupKeyed finds the live node committed under a resolved key, either in
// the owning component's table (explicit keys) or the structural parent's
// auto-key table.
func (c *Context) lookupKeyed(owner *component.Instance, parent dom.Node, key string) (dom.Node, bool) {
	if owner != nil {
		return owner.KeyedRoot(key)
	}
	table := c.autoKeys[parent]
	n, ok := table[key]
	return n, ok
}

// registerKeyed records a freshly committed node under its resolved key.
func (c *Context) registerKeyed(owner *component.Instance, parent dom.Node, key string, n dom.Node) {
	if owner != nil {
		owner.SetKeyedRoot(key, n)
		return
	}
	table := c.autoKeys[parent]
	if table == nil {
		table = make(map[string]dom.Node)
		c.autoKeys[parent] = table
	}
	table[key] = n
}

func (c *Context) dropAutoKey(parent dom.Node, key string, n dom.Node) {
	if table := c.autoKeys[parent]; table[key] == n {
		delete(table, key)
	}
}
