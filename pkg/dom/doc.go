// Package dom provides the live (real) node tree the reconciler mutates.
//
// The reconciler only depends on the small Node and Document capability
// interfaces, so any backend with insertBefore/removeChild/sibling
// traversal can host it. MemoryDocument is the reference implementation:
// a server-side tree with attribute maps, live properties (value, checked,
// selected, disabled), per-document mutation counters, and an optional
// mutation observer used for patch streaming.
//
// Fragments have no node of their own in this package; the reconciler
// represents them as two comment marker nodes with the fragment's real
// children between them.
//
// ParseFragment and Render bridge to HTML text via golang.org/x/net/html,
// which is how initial server-rendered payloads enter and leave the tree.
package dom
