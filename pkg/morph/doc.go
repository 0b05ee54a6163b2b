// Package morph converges a live node tree toward a freshly rendered
// virtual tree, in place, with the smallest set of mutations it can find
// in a single forward pass.
//
// The entry point is Context.Morph. A Context is created once per live
// root and reused across passes; it owns the side tables that map live
// nodes back to their last committed virtual snapshots, the key tables
// used for stable reordering, and the component registry wiring. Nothing
// about a pass is ambient: two Contexts never interfere.
//
// Matching follows three regimes. Keyed children (explicit "@" keys scoped
// to their owning component, auto keys scoped to their structural parent)
// are moved rather than rebuilt. Unkeyed children match the first
// compatible live sibling by a forward scan and are replaced on mismatch.
// Component placeholders relocate their whole marker-delimited host range
// and are destroyed only when a pass ends without referencing them.
package morph
