// Package vdom provides the virtual node model for Lamina.
//
// A virtual tree is an immutable-per-render description of desired output.
// Node is a closed tagged variant: Element, Text, Comment, Fragment, and
// Component placeholder. A fresh tree is built every render pass and
// discarded once the reconciler (package morph) has converged the live tree
// to it.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	)
//
// The low-level constructors (NewElement, NewFragment) declare an exact
// child capacity up front; appending past it panics. The factory functions
// derive the capacity from their arguments and seal the list.
//
// # Keys
//
// Key produces an explicit "@"-prefixed key scoped to the node's owning
// component. AutoKey produces a parent-scoped key; repeated literals are
// disambiguated deterministically by the reconciler in document order.
//
// # Static identity
//
// ConstID marks a subtree as render-invariant: when the previous and next
// element carry the same non-empty token, the reconciler skips the subtree
// without diffing attributes or children.
package vdom
