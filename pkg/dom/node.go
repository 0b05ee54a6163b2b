package dom

// NodeType is the live node type discriminator.
type NodeType uint8

const (
	ElementNode NodeType = iota
	TextNode
	CommentNode
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Node is the capability interface the reconciler needs from a live tree.
// Implementations must be comparable (pointer-identity) so they can serve
// as keys in the reconciler's side tables. The in-memory implementation in
// this package satisfies it; test doubles and non-browser backends can
// provide their own.
type Node interface {
	// Type returns the node type.
	Type() NodeType

	// TagName returns the element tag name, "" for non-elements.
	TagName() string

	// Namespace returns the element namespace URI, "" for HTML.
	Namespace() string

	// Parent returns the parent node, nil at the root.
	Parent() Node

	// FirstChild returns the first child, nil if there are none.
	FirstChild() Node

	// LastChild returns the last child, nil if there are none.
	LastChild() Node

	// NextSibling returns the following sibling, nil at the end.
	NextSibling() Node

	// PrevSibling returns the preceding sibling, nil at the start.
	PrevSibling() Node

	// InsertBefore inserts newChild before ref. A nil ref appends.
	// If newChild is already attached elsewhere it is detached first.
	InsertBefore(newChild, ref Node)

	// AppendChild appends child as the last child.
	AppendChild(child Node)

	// RemoveChild detaches child from this node.
	RemoveChild(child Node)

	// Attr returns the named attribute and whether it is present.
	Attr(name string) (string, bool)

	// SetAttr sets the named attribute.
	SetAttr(name, value string)

	// RemoveAttr removes the named attribute.
	RemoveAttr(name string)

	// AttrNames returns the attribute names currently present, in
	// insertion order.
	AttrNames() []string

	// Data returns the payload of a text or comment node.
	Data() string

	// SetData replaces the payload of a text or comment node.
	SetData(data string)

	// Prop returns a live property (value, checked, selected, disabled).
	// Unlike attributes, properties reflect current state, not markup.
	Prop(name string) any

	// SetProp sets a live property.
	SetProp(name string, value any)
}

// Document is the node factory interface the reconciler materializes
// new nodes with.
type Document interface {
	CreateElement(tag string) Node
	CreateElementNS(ns, tag string) Node
	CreateTextNode(data string) Node
	CreateComment(data string) Node
}
