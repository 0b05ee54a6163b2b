package morph

import (
	"github.com/lamina-ui/lamina/internal/errors"
	"github.com/lamina-ui/lamina/pkg/component"
	"github.com/lamina-ui/lamina/pkg/dom"
	"github.com/lamina-ui/lamina/pkg/vdom"
)

// insertVNode materializes vchild as a live subtree and inserts it into
// parent before ref (nil appends). It returns the committed node; for
// fragments and components that is the start boundary marker. The caller
// owns key registration for the returned node; nested keyed descendants
// are registered here.
func (c *Context) insertVNode(parent, ref dom.Node, vchild *vdom.Node, owner *component.Instance) dom.Node {
	switch vchild.Kind {
	case vdom.KindText:
		n := c.Doc.CreateTextNode(vchild.Text)
		parent.InsertBefore(n, ref)
		c.remember(n, &nodeMeta{vnode: vchild})
		return n

	case vdom.KindComment:
		n := c.Doc.CreateComment(vchild.Text)
		parent.InsertBefore(n, ref)
		c.remember(n, &nodeMeta{vnode: vchild})
		return n

	case vdom.KindElement:
		var n dom.Node
		if vchild.Namespace != "" {
			n = c.Doc.CreateElementNS(vchild.Namespace, vchild.Tag)
		} else {
			n = c.Doc.CreateElement(vchild.Tag)
		}
		c.applyAttrs(n, vchild)
		childScope := childOwner(vchild, owner)
		for _, child := range vchild.Children() {
			if child != nil {
				c.insertChild(n, nil, child, childScope)
			}
		}
		parent.InsertBefore(n, ref)
		// Live state is written after attachment so a mutation
		// observer sees insert before property writes.
		c.applyProps(n, vchild)
		c.remember(n, &nodeMeta{vnode: vchild})
		if c.OnNodeAdded != nil {
			c.OnNodeAdded(n)
		}
		return n

	case vdom.KindFragment:
		startM := c.Doc.CreateComment("^")
		endM := c.Doc.CreateComment("/")
		parent.InsertBefore(startM, ref)
		parent.InsertBefore(endM, ref)
		c.remember(startM, &nodeMeta{vnode: vchild, fragEnd: endM})
		c.remember(endM, &nodeMeta{vnode: vchild})
		childScope := childOwner(vchild, owner)
		for _, child := range vchild.Children() {
			if child != nil {
				c.insertChild(parent, endM, child, childScope)
			}
		}
		return startM

	case vdom.KindComponent:
		inst := instanceOf(vchild.Comp)
		if inst == nil {
			panic(errors.New("E002").WithDetail("component placeholder without an instance"))
		}
		startM, endM := c.commitComponent(parent, ref, vchild, inst)
		inst.SetHost(startM, endM)
		inst.Created()
		inst.ClearDirty()
		return startM

	default:
		panic(errors.New("E002"))
	}
}

// insertChild materializes a nested child, registering its key if it has
// one. Used below the nodes morphChild dispatches on.
func (c *Context) insertChild(parent, ref dom.Node, vchild *vdom.Node, owner *component.Instance) dom.Node {
	n := c.insertVNode(parent, ref, vchild, owner)
	if vchild.Key != "" {
		keyOwner := owner
		if !vchild.HasExplicitKey() {
			keyOwner = nil
		}
		key := c.resolveKey(keyScopeOf(keyOwner, parent), vchild.Key)
		m := c.metaOf(n)
		m.key = key
		m.owner = keyOwner
		c.registerKeyed(keyOwner, parent, key, n)
	}
	return n
}
