package protocol_test

import (
	"testing"

	"github.com/lamina-ui/lamina/pkg/component"
	"github.com/lamina-ui/lamina/pkg/dom"
	"github.com/lamina-ui/lamina/pkg/morph"
	"github.com/lamina-ui/lamina/pkg/protocol"
	"github.com/lamina-ui/lamina/pkg/vdom"
)

// mirror is the replay side of a recorded session: an independent document
// that only ever sees patch frames.
type mirror struct {
	doc  *dom.MemoryDocument
	root dom.Node
}

func newMirror() *mirror {
	doc := dom.NewMemoryDocument()
	return &mirror{doc: doc, root: doc.CreateElement("div")}
}

func (m *mirror) apply(t *testing.T, pf *protocol.PatchFrame) {
	t.Helper()
	if err := protocol.ApplyPatchFrame(m.doc, m.root, pf); err != nil {
		t.Fatalf("ApplyPatchFrame: %v", err)
	}
}

func roundTrip(t *testing.T, pf *protocol.PatchFrame) *protocol.PatchFrame {
	t.Helper()
	got, err := protocol.DecodePatchFrame(protocol.EncodePatchFrame(pf))
	if err != nil {
		t.Fatalf("frame round trip: %v", err)
	}
	return got
}

func TestRecorderMirrorsMorph(t *testing.T) {
	src := dom.NewMemoryDocument()
	root := src.CreateElement("div")
	ctx := morph.NewContext(src, component.NewRegistry())

	rec := protocol.NewRecorder(root)
	src.Observe(rec.Record)
	m := newMirror()

	view := func(title string, items []string) *vdom.Node {
		return vdom.Fragment(
			vdom.H1(title),
			vdom.Ul(vdom.Range(items, func(s string, _ int) *vdom.Node {
				return vdom.Li(vdom.AutoKey(s), s)
			})),
		)
	}

	// Initial render.
	ctx.Morph(root, view("Inbox", []string{"a", "b", "c"}))
	m.apply(t, roundTrip(t, rec.Flush()))
	if got, want := dom.RenderString(m.root), dom.RenderString(root); got != want {
		t.Fatalf("mirror diverged after initial render:\nsrc    %s\nmirror %s", want, got)
	}

	// Reorder, retitle, drop an item.
	ctx.Morph(root, view("Archive", []string{"c", "a"}))
	m.apply(t, roundTrip(t, rec.Flush()))
	if got, want := dom.RenderString(m.root), dom.RenderString(root); got != want {
		t.Fatalf("mirror diverged after update:\nsrc    %s\nmirror %s", want, got)
	}
}

func TestRecorderSequenceAdvances(t *testing.T) {
	doc := dom.NewMemoryDocument()
	root := doc.CreateElement("div")
	rec := protocol.NewRecorder(root)

	if seq := rec.Flush().Seq; seq != 0 {
		t.Errorf("first Seq = %d, want 0", seq)
	}
	if seq := rec.Flush().Seq; seq != 1 {
		t.Errorf("second Seq = %d, want 1", seq)
	}
}

func TestRecorderFiltersOffTreeMutations(t *testing.T) {
	doc := dom.NewMemoryDocument()
	root := doc.CreateElement("div")
	rec := protocol.NewRecorder(root)
	doc.Observe(rec.Record)

	// Mutations on a subtree never attached to root are invisible.
	scratch := doc.CreateElement("section")
	scratch.AppendChild(doc.CreateTextNode("off tree"))
	scratch.SetAttr("class", "x")

	if n := rec.Pending(); n != 0 {
		t.Errorf("recorded %d off-tree patches", n)
	}
}

func TestRecorderComponentParkingReadsAsRemoval(t *testing.T) {
	src := dom.NewMemoryDocument()
	root := src.CreateElement("div")
	reg := component.NewRegistry()
	ctx := morph.NewContext(src, reg)

	inst := reg.NewInstance("Panel", nil, func(_ any, out *vdom.Node) {
		out.AppendChild(vdom.P("content"))
	}, component.Hooks{})

	rec := protocol.NewRecorder(root)
	src.Observe(rec.Record)
	m := newMirror()

	ctx.Morph(root, vdom.Fragment(inst.Render()))
	m.apply(t, rec.Flush())

	ctx.Morph(root, vdom.Fragment())
	m.apply(t, rec.Flush())

	if m.root.FirstChild() != nil {
		t.Errorf("mirror kept nodes after component removal: %s", dom.RenderString(m.root))
	}
	if got, want := dom.RenderString(m.root), dom.RenderString(root); got != want {
		t.Errorf("mirror diverged:\nsrc    %s\nmirror %s", want, got)
	}
}
