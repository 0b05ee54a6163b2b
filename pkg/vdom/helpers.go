package vdom

import "fmt"

// Text creates a text node.
func Text(content string) *Node {
	return NewText(content)
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *Node {
	return NewText(fmt.Sprintf(format, args...))
}

// Comment creates a comment node.
func Comment(content string) *Node {
	return NewComment(content)
}

// Fragment groups children without a wrapper element. In the live tree a
// fragment is delimited by two marker nodes.
func Fragment(children ...any) *Node {
	var collected []*Node
	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *Node:
			if v != nil {
				collected = append(collected, v)
			}
		case []*Node:
			for _, c := range v {
				if c != nil {
					collected = append(collected, c)
				}
			}
		case string:
			collected = append(collected, NewText(v))
		case ComponentRef:
			collected = append(collected, NewComponent(v, ""))
		}
	}

	node := NewFragment(len(collected))
	for _, c := range collected {
		node.AppendChild(c)
	}
	return node
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *Node) *Node {
	if condition {
		return node
	}
	return nil
}

// IfElse returns the first node if condition is true, the second otherwise.
func IfElse(condition bool, ifTrue, ifFalse *Node) *Node {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When is like If but with lazy evaluation.
// The function is only called if condition is true.
func When(condition bool, fn func() *Node) *Node {
	if condition {
		return fn()
	}
	return nil
}

// Range maps a slice to virtual nodes.
func Range[T any](items []T, fn func(item T, index int) *Node) []*Node {
	result := make([]*Node, 0, len(items))
	for i, item := range items {
		node := fn(item, i)
		if node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Repeat creates n nodes using the given function.
func Repeat(n int, fn func(i int) *Node) []*Node {
	if n <= 0 {
		return nil
	}
	result := make([]*Node, 0, n)
	for i := 0; i < n; i++ {
		node := fn(i)
		if node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Key creates an explicit, component-scoped reconciliation key.
// The value is converted to a string and "@"-prefixed.
func Key(key any) Attr {
	return attr("key", fmt.Sprintf("@%v", key))
}

// AutoKey creates a parent-scoped reconciliation key, as emitted by
// template compilers for repeated structures. Repeated literals are
// disambiguated by the reconciler in document order.
func AutoKey(key any) Attr {
	return attr("key", fmt.Sprintf("%v", key))
}

// ConstID marks an element as statically identical across renders.
// Two renders carrying the same non-empty token skip attribute and child
// diffing for that element entirely; producers must not vary content under
// a shared token.
func ConstID(token string) Attr {
	return attr("constId", token)
}

// Nothing returns nil, useful for conditional rendering.
func Nothing() *Node {
	return nil
}

// Either returns first if it's not nil, otherwise second.
func Either(first, second *Node) *Node {
	if first != nil {
		return first
	}
	return second
}
