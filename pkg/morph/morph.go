package morph

import (
	"time"

	"github.com/lamina-ui/lamina/internal/errors"
	"github.com/lamina-ui/lamina/pkg/component"
	"github.com/lamina-ui/lamina/pkg/dom"
	"github.com/lamina-ui/lamina/pkg/vdom"
)

// Morph converges root's children to target's children, mutating the live
// tree in place with minimal operations. target is typically a fragment or
// element whose children describe root's desired content; root itself is
// never replaced.
//
// Success is observable only through the resulting live tree and the
// lifecycle events emitted along the way. Structural contract violations
// (unknown node kinds, corrupted boundaries) panic; "no match found" is
// never an error, it resolves to insert or replace.
func (c *Context) Morph(root dom.Node, target *vdom.Node) {
	start := time.Now()
	c.beginPass()
	defer func() {
		c.endPass()
		if c.Metrics != nil {
			c.Metrics.ObservePass(time.Since(start))
		}
	}()

	c.collectPresent(target)
	owner := ownerInstance(target)
	c.morphChildren(root, root.FirstChild(), nil, target.Children(), owner)
}

// collectPresent records every component id referenced anywhere in the new
// tree, so a component that moved position is relocated rather than
// destroyed and recreated.
func (c *Context) collectPresent(v *vdom.Node) {
	if v == nil {
		return
	}
	if v.Kind == vdom.KindComponent && v.Comp != nil {
		c.stillPresent[v.Comp.ComponentID()] = true
	}
	for _, child := range v.Children() {
		c.collectPresent(child)
	}
}

// morphChildren walks the target children against the live siblings
// starting at cur, stopping at the exclusive boundary end (nil means the
// end of parent's child list). Live nodes left over after all targets are
// consumed are detached.
func (c *Context) morphChildren(parent dom.Node, cur, end dom.Node, children []*vdom.Node, owner *component.Instance) {
	for _, vchild := range children {
		if vchild == nil {
			continue
		}
		cur = c.morphChild(parent, cur, end, vchild, owner)
	}

	// Tail cleanup.
	for cur != nil && cur != end {
		next := c.consumeRange(cur, c.metaOf(cur))
		c.detachChild(parent, cur)
		cur = next
	}
}

// morphChild converges one target child, consuming zero or more live
// siblings starting at cur. It returns the new cursor: the first live node
// not yet consumed.
func (c *Context) morphChild(parent dom.Node, cur, end dom.Node, vchild *vdom.Node, owner *component.Instance) dom.Node {
	switch vchild.Kind {
	case vdom.KindComponent:
		return c.morphComponent(parent, cur, end, vchild, owner)
	case vdom.KindElement, vdom.KindText, vdom.KindComment, vdom.KindFragment:
		if vchild.IsKeyed() {
			return c.morphKeyed(parent, cur, end, vchild, owner)
		}
		return c.morphUnkeyed(parent, cur, end, vchild, owner)
	default:
		panic(errors.New("E002"))
	}
}

// --- component placeholders -------------------------------------------------

func (c *Context) morphComponent(parent dom.Node, cur, end dom.Node, vchild *vdom.Node, owner *component.Instance) dom.Node {
	inst := instanceOf(vchild.Comp)
	if inst == nil {
		panic(errors.New("E002").WithDetail("component placeholder without an instance"))
	}

	if !inst.Mounted() {
		// First render: commit a fresh host before the cursor.
		startM, endM := c.commitComponent(parent, cur, vchild, inst)
		inst.SetHost(startM, endM)
		if vchild.Key != "" {
			keyOwner := owner
			if !vchild.HasExplicitKey() {
				keyOwner = nil
			}
			key := c.resolveKey(keyScopeOf(keyOwner, parent), vchild.Key)
			c.registerKeyed(keyOwner, parent, key, startM)
			c.meta[startM].key = key
			c.meta[startM].owner = keyOwner
		}
		inst.Created()
		inst.ClearDirty()
		return cur
	}

	startM, endM := inst.Host()

	if holder, ok := c.parked[inst]; ok {
		// Detached earlier this pass; bring the whole host back.
		c.moveRange(parent, cur, holder.FirstChild(), nil)
		delete(c.parked, inst)
	} else if startM != cur {
		// Mounted elsewhere: relocate the host range to the cursor.
		c.moveRange(parent, cur, startM, afterNode(endM))
	}

	if !vchild.Preserve {
		c.morphChildren(parent, startM.NextSibling(), endM, vchild.Children(), inst)
		inst.Updated()
	}
	inst.ClearDirty()
	return afterNode(endM)
}

// commitComponent materializes a component's boundary markers and children
// before ref and returns the marker pair.
func (c *Context) commitComponent(parent, ref dom.Node, vchild *vdom.Node, inst *component.Instance) (startM, endM dom.Node) {
	id := inst.ComponentID()
	startM = c.Doc.CreateComment("^" + id)
	endM = c.Doc.CreateComment("/" + id)
	parent.InsertBefore(startM, ref)
	parent.InsertBefore(endM, ref)
	c.remember(startM, &nodeMeta{vnode: vchild, comp: inst, fragEnd: endM})
	c.remember(endM, &nodeMeta{vnode: vchild})

	for _, child := range vchild.Children() {
		if child != nil {
			c.insertChild(parent, endM, child, inst)
		}
	}
	return startM, endM
}

// --- keyed matching ---------------------------------------------------------

func (c *Context) morphKeyed(parent dom.Node, cur, end dom.Node, vchild *vdom.Node, owner *component.Instance) dom.Node {
	keyOwner := owner
	if !vchild.HasExplicitKey() {
		// Auto keys are scoped to the structural parent.
		keyOwner = nil
	}
	key := c.resolveKey(keyScopeOf(keyOwner, parent), vchild.Key)

	curMeta := c.metaOf(cur)
	if curMeta != nil && curMeta.key == key {
		if compatible(cur, curMeta, vchild) {
			// Fast path: same key, same shape; patch in place.
			next := c.consumeRange(cur, curMeta)
			c.patchInPlace(parent, cur, curMeta, vchild, owner, key, keyOwner)
			return next
		}
		// Same key, incompatible node: replace.
		next := c.consumeRange(cur, curMeta)
		c.detachChild(parent, cur)
		c.insertKeyed(parent, next, vchild, owner, key, keyOwner)
		return next
	}

	matched, ok := c.lookupKeyed(keyOwner, parent, key)
	if !ok {
		// New key: materialize before the cursor.
		c.insertKeyed(parent, cur, vchild, owner, key, keyOwner)
		return cur
	}

	// The key exists elsewhere in this scope: relocate it to the cursor.
	matchedMeta := c.metaOf(matched)
	switch {
	case c.holders[matched] != nil:
		// Detached fragment range, still intact in its holder.
		holder := c.holders[matched]
		delete(c.holders, matched)
		c.moveRange(parent, cur, holder.FirstChild(), nil)
	case matchedMeta != nil && matchedMeta.fragEnd != nil:
		c.moveRange(parent, cur, matched, afterNode(matchedMeta.fragEnd))
	default:
		delete(c.detached, matched)
		parent.InsertBefore(matched, cur)
	}
	c.patchInPlace(parent, matched, matchedMeta, vchild, owner, key, keyOwner)
	return cur
}

// insertKeyed materializes a keyed target before ref and registers it.
func (c *Context) insertKeyed(parent, ref dom.Node, vchild *vdom.Node, owner *component.Instance, key string, keyOwner *component.Instance) {
	n := c.insertVNode(parent, ref, vchild, owner)
	m := c.metaOf(n)
	m.key = key
	m.owner = keyOwner
	c.registerKeyed(keyOwner, parent, key, n)
}

// --- unkeyed matching -------------------------------------------------------

func (c *Context) morphUnkeyed(parent dom.Node, cur, end dom.Node, vchild *vdom.Node, owner *component.Instance) dom.Node {
	// Scan forward for the first compatible, unkeyed candidate. Anything
	// passed over on the way is detached.
	scan := cur
	for scan != nil && scan != end {
		m := c.metaOf(scan)
		if (m == nil || m.key == "") && compatible(scan, m, vchild) {
			break
		}
		next := c.consumeRange(scan, m)
		c.detachChild(parent, scan)
		scan = next
	}

	if scan == nil || scan == end {
		// Candidates exhausted: append as new.
		c.insertVNode(parent, end, vchild, owner)
		return scan
	}

	m := c.metaOf(scan)
	next := c.consumeRange(scan, m)
	c.patchInPlace(parent, scan, m, vchild, owner, "", nil)
	return next
}

// --- in-place patching ------------------------------------------------------

// patchInPlace converges an existing compatible live node to vchild.
func (c *Context) patchInPlace(parent, n dom.Node, m *nodeMeta, vchild *vdom.Node, owner *component.Instance, key string, keyOwner *component.Instance) {
	var prev *vdom.Node
	if m != nil {
		prev = m.vnode
	}

	switch vchild.Kind {
	case vdom.KindText, vdom.KindComment:
		if n.Data() != vchild.Text {
			n.SetData(vchild.Text)
		}

	case vdom.KindElement:
		if prev != nil && prev.ConstID != "" && prev.ConstID == vchild.ConstID {
			// Static identity: by contract the subtree is unchanged.
			break
		}
		c.morphAttrs(n, prev, vchild)
		c.morphChildren(n, n.FirstChild(), nil, vchild.Children(), childOwner(vchild, owner))

	case vdom.KindFragment:
		endM := m.fragEnd
		if endM == nil {
			panic(errors.New("E003"))
		}
		c.morphChildren(parent, n.NextSibling(), endM, vchild.Children(), childOwner(vchild, owner))
	}

	c.remember(n, &nodeMeta{
		vnode:   vchild,
		key:     key,
		owner:   keyOwner,
		fragEnd: fragEndOf(m),
	})
}

// --- detachment -------------------------------------------------------------

// detachChild removes n (and, for boundary markers, the whole delimited
// range) from parent. Keyed nodes stay in their key table and may be
// reclaimed later in the pass; components are parked rather than destroyed,
// and torn down at end of pass only if the new tree no longer references
// them.
func (c *Context) detachChild(parent, n dom.Node) {
	m := c.metaOf(n)

	if m != nil && m.comp != nil {
		// Component host: park the whole range, markers included.
		holder := c.Doc.CreateElement("template")
		c.moveRangeInto(holder, n, afterNode(m.fragEnd))
		c.parked[m.comp] = holder
		return
	}

	if m != nil && m.fragEnd != nil {
		if m.key != "" {
			// Keyed fragment: keep the range intact for possible
			// reclamation later in the pass.
			holder := c.Doc.CreateElement("template")
			c.moveRangeInto(holder, n, afterNode(m.fragEnd))
			c.holders[n] = holder
			return
		}
		// Anonymous fragment: drop the whole range.
		endM := m.fragEnd
		node := n
		for node != nil {
			next := node.NextSibling()
			parent.RemoveChild(node)
			c.markDetached(node, parent, c.metaOf(node))
			if node == endM {
				break
			}
			node = next
		}
		return
	}

	parent.RemoveChild(n)
	c.markDetached(n, parent, m)
}

func (c *Context) markDetached(n, parent dom.Node, m *nodeMeta) {
	if m != nil && m.key != "" {
		// Reclaimable until the pass ends.
		c.detached[n] = parent
		return
	}
	c.evictSubtree(n)
}

// --- range helpers ----------------------------------------------------------

// consumeRange returns the cursor position after n: for boundary markers
// the node after the delimited range, otherwise n's next sibling.
func (c *Context) consumeRange(n dom.Node, m *nodeMeta) dom.Node {
	if m != nil && m.fragEnd != nil {
		return m.fragEnd.NextSibling()
	}
	return n.NextSibling()
}

// moveRange re-inserts the sibling run [first, end) before ref under
// parent. The run is collected first, since moving breaks sibling links.
func (c *Context) moveRange(parent, ref, first, end dom.Node) {
	var run []dom.Node
	for n := first; n != nil && n != end; n = n.NextSibling() {
		run = append(run, n)
	}
	for _, n := range run {
		parent.InsertBefore(n, ref)
	}
}

// moveRangeInto appends the sibling run [first, end) to holder.
func (c *Context) moveRangeInto(holder, first, end dom.Node) {
	c.moveRange(holder, nil, first, end)
}

// --- compatibility and small helpers ----------------------------------------

// compatible reports whether live node n can be patched in place into
// vchild without being replaced.
func compatible(n dom.Node, m *nodeMeta, vchild *vdom.Node) bool {
	if m != nil && m.comp != nil {
		// Component hosts are only consumed by their own placeholder.
		return false
	}
	isFragment := m != nil && m.fragEnd != nil
	switch vchild.Kind {
	case vdom.KindElement:
		return !isFragment && n.Type() == dom.ElementNode &&
			n.TagName() == vchild.Tag && n.Namespace() == vchild.Namespace
	case vdom.KindText:
		return n.Type() == dom.TextNode
	case vdom.KindComment:
		return !isFragment && n.Type() == dom.CommentNode
	case vdom.KindFragment:
		return isFragment
	default:
		return false
	}
}

func fragEndOf(m *nodeMeta) dom.Node {
	if m == nil {
		return nil
	}
	return m.fragEnd
}

func afterNode(n dom.Node) dom.Node {
	if n == nil {
		return nil
	}
	return n.NextSibling()
}

// keyScopeOf picks the key table scope: the owning component for explicit
// keys, the structural parent for auto keys.
func keyScopeOf(owner *component.Instance, parent dom.Node) any {
	if owner != nil {
		return owner
	}
	return parent
}

func ownerInstance(v *vdom.Node) *component.Instance {
	if v == nil {
		return nil
	}
	return instanceOf(v.Owner)
}

func childOwner(v *vdom.Node, fallback *component.Instance) *component.Instance {
	if inst := instanceOf(v.Owner); inst != nil {
		return inst
	}
	return fallback
}

func instanceOf(ref vdom.ComponentRef) *component.Instance {
	if ref == nil {
		return nil
	}
	inst, _ := ref.(*component.Instance)
	return inst
}
