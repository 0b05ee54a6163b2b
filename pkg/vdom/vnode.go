package vdom

import "strings"

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement   Kind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindComment               // Comment node
	KindFragment              // Grouping without wrapper
	KindComponent             // Nested component placeholder
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Attrs holds element attributes. Values may be string, bool, or numeric;
// the reconciler stringifies them when writing to the live tree.
type Attrs map[string]any

// ComponentRef is a reference to a long-lived component instance. The
// virtual tree only needs the stable identity; the concrete type lives in
// the component package.
type ComponentRef interface {
	ComponentID() string
}

// Node is a virtual node: an immutable-per-render description of one output
// unit. A fresh tree is built every render pass and discarded after the
// reconciler has converged the live tree to it.
type Node struct {
	Kind      Kind
	Tag       string // Element tag name (e.g., "div")
	Attrs     Attrs  // Element attributes
	Namespace string // Element namespace URI, "" for HTML
	Key       string // Reconciliation key, "" for positional matching
	ConstID   string // Static-identity token; equal non-empty tokens skip diffing
	Text      string // Payload for KindText and KindComment

	Owner ComponentRef // Component that rendered this node
	Comp  ComponentRef // For KindComponent: the referenced instance

	// Preserve, on a KindComponent node, means "do not re-diff this
	// subtree this pass".
	Preserve bool

	children []*Node
	sealed   bool
}

// NewElement creates an element node with room for exactly childCap
// children. Appending beyond childCap is a structural contract violation.
func NewElement(tag string, attrs Attrs, childCap int) *Node {
	return &Node{
		Kind:     KindElement,
		Tag:      tag,
		Attrs:    attrs,
		children: make([]*Node, 0, childCap),
		sealed:   true,
	}
}

// NewElementNS creates a namespaced element node (e.g., SVG).
func NewElementNS(ns, tag string, attrs Attrs, childCap int) *Node {
	n := NewElement(tag, attrs, childCap)
	n.Namespace = ns
	return n
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{Kind: KindText, Text: text, sealed: true}
}

// NewComment creates a comment node.
func NewComment(text string) *Node {
	return &Node{Kind: KindComment, Text: text, sealed: true}
}

// NewFragment creates a fragment node with room for exactly childCap
// children.
func NewFragment(childCap int) *Node {
	return &Node{
		Kind:     KindFragment,
		children: make([]*Node, 0, childCap),
		sealed:   true,
	}
}

// NewComponent creates a component placeholder referencing inst. Its child
// list is unsealed: the length is determined by the instance's render
// function when the placeholder is committed.
func NewComponent(inst ComponentRef, key string) *Node {
	return &Node{Kind: KindComponent, Comp: inst, Key: key}
}

// AppendChild appends a child to an element or fragment node.
// It panics if the node's declared child capacity is exhausted, or if the
// node kind cannot hold children; both indicate a bug in the tree producer.
func (n *Node) AppendChild(child *Node) *Node {
	if n.Kind != KindElement && n.Kind != KindFragment && n.Kind != KindComponent {
		panic("vdom: " + n.Kind.String() + " node cannot hold children")
	}
	if n.sealed && len(n.children) == cap(n.children) {
		panic("vdom: declared child count exceeded for <" + n.Tag + ">")
	}
	n.children = append(n.children, child)
	return n
}

// Children returns the node's child list. Callers must not mutate it.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

// ChildCount returns the number of committed children.
func (n *Node) ChildCount() int {
	if n == nil {
		return 0
	}
	return len(n.children)
}

// WithKey sets the reconciliation key and returns the node.
func (n *Node) WithKey(key string) *Node {
	n.Key = key
	return n
}

// WithConstID sets the static-identity token and returns the node.
func (n *Node) WithConstID(id string) *Node {
	n.ConstID = id
	return n
}

// WithOwner sets the owning component and returns the node.
func (n *Node) WithOwner(owner ComponentRef) *Node {
	n.Owner = owner
	return n
}

// IsKeyed reports whether the node carries a reconciliation key.
func (n *Node) IsKeyed() bool {
	return n != nil && n.Key != ""
}

// HasExplicitKey reports whether the node's key is component-scoped.
// Explicit keys are "@"-prefixed; auto-generated keys are scoped to the
// structural parent instead.
func (n *Node) HasExplicitKey() bool {
	return n != nil && strings.HasPrefix(n.Key, "@")
}
