package protocol

import (
	"fmt"

	"github.com/lamina-ui/lamina/pkg/dom"
)

// Recorder translates a live-tree mutation stream into path-addressed
// patches a remote mirror of the tree can replay. Wire it to a document
// with Document.Observe and flush once per reconciliation pass.
//
// Mutations outside the recorded root are filtered: a subtree assembled
// detached arrives as a single Insert carrying its serialized HTML, a node
// parked in off-tree scaffolding reads as a Remove, and a node reclaimed
// from it reads as an Insert.
type Recorder struct {
	root    dom.Node
	patches []Patch
	seq     uint64
}

// NewRecorder creates a recorder addressing patches relative to root.
func NewRecorder(root dom.Node) *Recorder {
	return &Recorder{root: root}
}

// Record consumes one mutation. Pass it to Document.Observe.
func (r *Recorder) Record(m dom.Mutation) {
	switch m.Op {
	case dom.OpInsert:
		// Children built under a detached parent are covered by their
		// subtree root's Insert.
		path, ok := dom.Path(r.root, m.Target)
		if !ok {
			return
		}
		r.patches = append(r.patches, Patch{
			Op:   PatchInsert,
			Path: path,
			HTML: dom.RenderString(m.Target),
		})

	case dom.OpRemove:
		// Emitted before unlinking, so the old position is still
		// addressable.
		path, ok := dom.Path(r.root, m.Target)
		if !ok {
			return
		}
		r.patches = append(r.patches, Patch{Op: PatchRemove, Path: path})

	case dom.OpMove:
		from, fromOK := dom.Path(r.root, m.Target)
		_, toOK := dom.Path(r.root, m.Parent)
		switch {
		case fromOK && toOK:
			r.patches = append(r.patches, Patch{
				Op:   PatchMove,
				Path: r.destPath(m),
				From: from,
			})
		case fromOK:
			// Parked off-tree: a removal as far as the mirror knows.
			r.patches = append(r.patches, Patch{Op: PatchRemove, Path: from})
		case toOK:
			// Reclaimed from off-tree scaffolding.
			r.patches = append(r.patches, Patch{
				Op:   PatchInsert,
				Path: r.destPath(m),
				HTML: dom.RenderString(m.Target),
			})
		}

	case dom.OpSetAttr:
		if path, ok := dom.Path(r.root, m.Target); ok {
			r.patches = append(r.patches, Patch{
				Op:    PatchSetAttr,
				Path:  path,
				Name:  m.Name,
				Value: m.Value,
			})
		}

	case dom.OpRemoveAttr:
		if path, ok := dom.Path(r.root, m.Target); ok {
			r.patches = append(r.patches, Patch{
				Op:   PatchRemoveAttr,
				Path: path,
				Name: m.Name,
			})
		}

	case dom.OpSetText:
		if path, ok := dom.Path(r.root, m.Target); ok {
			r.patches = append(r.patches, Patch{
				Op:    PatchSetText,
				Path:  path,
				Value: m.Value,
			})
		}

	case dom.OpSetProp:
		path, ok := dom.Path(r.root, m.Target)
		if !ok {
			return
		}
		p := Patch{Op: PatchSetProp, Path: path, Name: m.Name}
		switch v := m.Prop.(type) {
		case bool:
			p.Bool = v
		case string:
			p.Value = v
		default:
			p.Value = fmt.Sprint(v)
		}
		r.patches = append(r.patches, p)
	}
}

// destPath computes the position a moved node occupies after the move,
// with the node itself not counted at its old slot.
func (r *Recorder) destPath(m dom.Mutation) []int {
	parentPath, ok := dom.Path(r.root, m.Parent)
	if !ok {
		return nil
	}
	idx := 0
	for c := m.Parent.FirstChild(); c != nil; c = c.NextSibling() {
		if m.Ref != nil && c == m.Ref {
			break
		}
		if c == m.Target {
			continue
		}
		idx++
	}
	return append(parentPath, idx)
}

// Pending returns the number of patches recorded since the last flush.
func (r *Recorder) Pending() int {
	return len(r.patches)
}

// Flush returns the recorded patches as a sequenced frame and resets the
// recorder for the next pass. Flushing with nothing recorded still
// advances the sequence.
func (r *Recorder) Flush() *PatchFrame {
	pf := &PatchFrame{Seq: r.seq, Patches: r.patches}
	r.seq++
	r.patches = nil
	return pf
}
