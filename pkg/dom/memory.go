package dom

// MemoryDocument is the in-memory Document implementation. It backs
// server-side rendering, the CLI, and tests. Every mutation made through
// nodes it created is counted and optionally reported to an observer.
type MemoryDocument struct {
	counters Counters
	observer func(Mutation)
}

// NewMemoryDocument creates an empty in-memory document.
func NewMemoryDocument() *MemoryDocument {
	return &MemoryDocument{}
}

// Observe registers fn to receive every mutation made through this
// document's nodes. A nil fn disables observation.
func (d *MemoryDocument) Observe(fn func(Mutation)) {
	d.observer = fn
}

// Counters returns the mutation counters accumulated so far.
func (d *MemoryDocument) Counters() Counters {
	return d.counters
}

// ResetCounters zeroes the mutation counters.
func (d *MemoryDocument) ResetCounters() {
	d.counters = Counters{}
}

func (d *MemoryDocument) emit(m Mutation) {
	d.counters.record(m)
	if d.observer != nil {
		d.observer(m)
	}
}

// CreateElement creates a detached element node.
func (d *MemoryDocument) CreateElement(tag string) Node {
	return &memNode{doc: d, typ: ElementNode, tag: tag}
}

// CreateElementNS creates a detached namespaced element node.
func (d *MemoryDocument) CreateElementNS(ns, tag string) Node {
	return &memNode{doc: d, typ: ElementNode, tag: tag, ns: ns}
}

// CreateTextNode creates a detached text node.
func (d *MemoryDocument) CreateTextNode(data string) Node {
	return &memNode{doc: d, typ: TextNode, data: data}
}

// CreateComment creates a detached comment node.
func (d *MemoryDocument) CreateComment(data string) Node {
	return &memNode{doc: d, typ: CommentNode, data: data}
}

// memNode is the concrete in-memory node. Sibling links form a doubly
// linked list under each parent.
type memNode struct {
	doc *MemoryDocument
	typ NodeType
	tag string
	ns  string

	parent, first, last *memNode
	next, prev          *memNode

	attrs     map[string]string
	attrOrder []string
	data      string
	props     map[string]any
}

var _ Node = (*memNode)(nil)

func (n *memNode) Type() NodeType    { return n.typ }
func (n *memNode) TagName() string   { return n.tag }
func (n *memNode) Namespace() string { return n.ns }

func (n *memNode) Parent() Node      { return liftNode(n.parent) }
func (n *memNode) FirstChild() Node  { return liftNode(n.first) }
func (n *memNode) LastChild() Node   { return liftNode(n.last) }
func (n *memNode) NextSibling() Node { return liftNode(n.next) }
func (n *memNode) PrevSibling() Node { return liftNode(n.prev) }

// liftNode converts a possibly-nil *memNode to a Node interface value
// without producing a non-nil interface around a nil pointer.
func liftNode(n *memNode) Node {
	if n == nil {
		return nil
	}
	return n
}

func (n *memNode) InsertBefore(newChild, ref Node) {
	child := newChild.(*memNode)
	var refNode *memNode
	if ref != nil {
		refNode = ref.(*memNode)
		if refNode.parent != n {
			panic("dom: InsertBefore reference node is not a child of this node")
		}
	}

	op := OpInsert
	if child.parent != nil {
		// Emit before unlinking so observers can still compute the
		// node's source position.
		n.doc.emit(Mutation{Op: OpMove, Target: child, Parent: n, Ref: ref})
		child.parent.detach(child)
		op = OpMove
	}

	child.parent = n
	if refNode == nil {
		child.prev = n.last
		child.next = nil
		if n.last != nil {
			n.last.next = child
		} else {
			n.first = child
		}
		n.last = child
	} else {
		child.prev = refNode.prev
		child.next = refNode
		if refNode.prev != nil {
			refNode.prev.next = child
		} else {
			n.first = child
		}
		refNode.prev = child
	}

	if op == OpInsert {
		n.doc.emit(Mutation{Op: OpInsert, Target: child, Parent: n, Ref: ref})
	}
}

func (n *memNode) AppendChild(child Node) {
	n.InsertBefore(child, nil)
}

func (n *memNode) RemoveChild(child Node) {
	c := child.(*memNode)
	if c.parent != n {
		panic("dom: RemoveChild target is not a child of this node")
	}
	// Emit before detaching so the observer can still address the node.
	n.doc.emit(Mutation{Op: OpRemove, Target: c, Parent: n})
	n.detach(c)
}

// detach unlinks c from n without emitting a mutation.
func (n *memNode) detach(c *memNode) {
	if c.prev != nil {
		c.prev.next = c.next
	} else {
		n.first = c.next
	}
	if c.next != nil {
		c.next.prev = c.prev
	} else {
		n.last = c.prev
	}
	c.parent, c.next, c.prev = nil, nil, nil
}

func (n *memNode) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

func (n *memNode) SetAttr(name, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	if old, ok := n.attrs[name]; ok && old == value {
		return
	} else if !ok {
		n.attrOrder = append(n.attrOrder, name)
	}
	n.attrs[name] = value
	n.doc.emit(Mutation{Op: OpSetAttr, Target: n, Name: name, Value: value})
}

func (n *memNode) RemoveAttr(name string) {
	if _, ok := n.attrs[name]; !ok {
		return
	}
	delete(n.attrs, name)
	for i, name2 := range n.attrOrder {
		if name2 == name {
			n.attrOrder = append(n.attrOrder[:i], n.attrOrder[i+1:]...)
			break
		}
	}
	n.doc.emit(Mutation{Op: OpRemoveAttr, Target: n, Name: name})
}

func (n *memNode) AttrNames() []string {
	return n.attrOrder
}

func (n *memNode) Data() string {
	return n.data
}

func (n *memNode) SetData(data string) {
	if n.data == data {
		return
	}
	n.data = data
	n.doc.emit(Mutation{Op: OpSetText, Target: n, Value: data})
}

func (n *memNode) Prop(name string) any {
	return n.props[name]
}

func (n *memNode) SetProp(name string, value any) {
	if n.props == nil {
		n.props = make(map[string]any)
	}
	if old, ok := n.props[name]; ok && old == value {
		return
	}
	n.props[name] = value
	n.doc.emit(Mutation{Op: OpSetProp, Target: n, Name: name, Prop: value})
}
