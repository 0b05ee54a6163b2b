package morph_test

import (
	"testing"

	"github.com/lamina-ui/lamina/pkg/component"
	"github.com/lamina-ui/lamina/pkg/dom"
	"github.com/lamina-ui/lamina/pkg/morph"
	"github.com/lamina-ui/lamina/pkg/vdom"
)

func newTestContext() (*morph.Context, *dom.MemoryDocument, dom.Node) {
	doc := dom.NewMemoryDocument()
	root := doc.CreateElement("div")
	return morph.NewContext(doc, component.NewRegistry()), doc, root
}

func TestMorphIdempotent(t *testing.T) {
	ctx, doc, root := newTestContext()
	render := func() *vdom.Node {
		return vdom.Fragment(
			vdom.H1(vdom.ID("title"), "Hello"),
			vdom.Ul(
				vdom.Li(vdom.AutoKey("a"), "alpha"),
				vdom.Li(vdom.AutoKey("b"), "beta"),
			),
			vdom.Input(vdom.Type("text"), vdom.Value("x")),
		)
	}

	ctx.Morph(root, render())
	before := dom.RenderString(root)

	doc.ResetCounters()
	ctx.Morph(root, render())

	if got := doc.Counters(); got != (dom.Counters{}) {
		t.Errorf("second identical pass mutated the tree: %+v", got)
	}
	if after := dom.RenderString(root); after != before {
		t.Errorf("tree changed across identical passes:\nbefore %s\nafter  %s", before, after)
	}
}

func TestKeyedReorderMovesNodes(t *testing.T) {
	ctx, doc, root := newTestContext()
	list := func(keys ...string) *vdom.Node {
		return vdom.Fragment(vdom.Ul(
			vdom.Range(keys, func(k string, _ int) *vdom.Node {
				return vdom.Li(vdom.AutoKey(k), k)
			}),
		))
	}

	ctx.Morph(root, list("a", "b", "c"))
	ul := root.FirstChild()
	liA := ul.FirstChild()
	liB := liA.NextSibling()
	liC := liB.NextSibling()

	doc.ResetCounters()
	ctx.Morph(root, list("c", "a", "b"))

	if ul.FirstChild() != liC || liC.NextSibling() != liA || liA.NextSibling() != liB {
		t.Fatalf("keyed reorder did not preserve node identity")
	}
	got := doc.Counters()
	if got.Inserts != 0 || got.Removes != 0 {
		t.Errorf("keyed reorder rebuilt nodes: %+v", got)
	}
	if got.Moves != 1 {
		t.Errorf("Moves = %d, want 1 (single relocation of c)", got.Moves)
	}
}

func TestKeyedSwapIsSingleMove(t *testing.T) {
	ctx, doc, root := newTestContext()
	list := func(keys ...string) *vdom.Node {
		return vdom.Fragment(vdom.Range(keys, func(k string, _ int) *vdom.Node {
			return vdom.Span(vdom.AutoKey(k), k)
		}))
	}

	ctx.Morph(root, list("a", "b"))
	a, b := root.FirstChild(), root.LastChild()

	doc.ResetCounters()
	ctx.Morph(root, list("b", "a"))

	if root.FirstChild() != b || root.LastChild() != a {
		t.Fatalf("swap did not preserve identity")
	}
	if got := doc.Counters(); got.Moves != 1 || got.Inserts != 0 || got.Removes != 0 {
		t.Errorf("swap should be one move: %+v", got)
	}
}

func TestUnkeyedMismatchReplaces(t *testing.T) {
	ctx, doc, root := newTestContext()

	ctx.Morph(root, vdom.Fragment(vdom.Div("x")))
	old := root.FirstChild()

	doc.ResetCounters()
	ctx.Morph(root, vdom.Fragment(vdom.Span("x")))

	n := root.FirstChild()
	if n == old {
		t.Fatalf("incompatible unkeyed node was reused")
	}
	if n.TagName() != "span" {
		t.Fatalf("TagName = %q, want span", n.TagName())
	}
	got := doc.Counters()
	if got.Removes != 1 {
		t.Errorf("Removes = %d, want 1", got.Removes)
	}
}

// A keyed node passed over by an unkeyed scan is detached but stays
// reclaimable for the rest of the pass.
func TestDetachedKeyedNodeReclaimedLaterInPass(t *testing.T) {
	ctx, _, root := newTestContext()

	ctx.Morph(root, vdom.Fragment(
		vdom.Span(vdom.AutoKey("s"), "keep me"),
		vdom.Div("filler"),
	))
	span := root.FirstChild()

	ctx.Morph(root, vdom.Fragment(
		vdom.Div("filler"),
		vdom.Span(vdom.AutoKey("s"), "keep me"),
	))

	if root.LastChild() != span {
		t.Fatalf("keyed node was rebuilt instead of reclaimed")
	}
	if root.FirstChild().TagName() != "div" {
		t.Fatalf("unkeyed div missing from front")
	}
}

func TestAttrDiffTouchesOnlyChanges(t *testing.T) {
	ctx, doc, root := newTestContext()
	render := func(class string) *vdom.Node {
		return vdom.Fragment(vdom.Div(
			vdom.ID("panel"),
			vdom.Class(class),
			vdom.TitleAttr("panel"),
			"body",
		))
	}

	ctx.Morph(root, render("open"))
	doc.ResetCounters()
	ctx.Morph(root, render("closed"))

	got := doc.Counters()
	if got.AttrSets != 1 {
		t.Errorf("AttrSets = %d, want 1", got.AttrSets)
	}
	if got.AttrRemoves != 0 {
		t.Errorf("AttrRemoves = %d, want 0", got.AttrRemoves)
	}
	if cls, _ := root.FirstChild().Attr("class"); cls != "closed" {
		t.Errorf("class = %q, want closed", cls)
	}
}

func TestAttrRemovedWhenRenderOmitsIt(t *testing.T) {
	ctx, doc, root := newTestContext()

	ctx.Morph(root, vdom.Fragment(vdom.A(vdom.Href("/"), vdom.Target("_blank"), "home")))
	doc.ResetCounters()
	ctx.Morph(root, vdom.Fragment(vdom.A(vdom.Href("/"), "home")))

	a := root.FirstChild()
	if _, present := a.Attr("target"); present {
		t.Errorf("target attribute survived its omission")
	}
	if got := doc.Counters(); got.AttrRemoves != 1 || got.AttrSets != 0 {
		t.Errorf("removal should be one AttrRemove: %+v", got)
	}
}

func TestFormStateThroughProperties(t *testing.T) {
	ctx, _, root := newTestContext()

	ctx.Morph(root, vdom.Fragment(vdom.Input(vdom.Type("checkbox"), vdom.Checked())))
	input := root.FirstChild()

	if _, present := input.Attr("checked"); present {
		t.Errorf("checked written as an attribute")
	}
	if v, _ := input.Prop("checked").(bool); !v {
		t.Errorf("checked property not set")
	}

	ctx.Morph(root, vdom.Fragment(vdom.Input(vdom.Type("checkbox"))))
	if v, _ := input.Prop("checked").(bool); v {
		t.Errorf("checked property not cleared when render omits it")
	}
}

func TestInputValueThroughProperty(t *testing.T) {
	ctx, _, root := newTestContext()

	ctx.Morph(root, vdom.Fragment(vdom.Input(vdom.Type("text"), vdom.Value("hi"))))
	input := root.FirstChild()

	if _, present := input.Attr("value"); present {
		t.Errorf("value written as an attribute")
	}
	if v, _ := input.Prop("value").(string); v != "hi" {
		t.Errorf("value property = %q, want hi", v)
	}
}

func TestConstIDSkipsSubtree(t *testing.T) {
	ctx, doc, root := newTestContext()
	render := func(label string) *vdom.Node {
		return vdom.Fragment(vdom.Nav(
			vdom.ConstID("site-nav"),
			vdom.A(vdom.Href("/"), label),
		))
	}

	ctx.Morph(root, render("Home"))
	doc.ResetCounters()
	ctx.Morph(root, render("CHANGED"))

	if got := doc.Counters(); got != (dom.Counters{}) {
		t.Errorf("const subtree was touched: %+v", got)
	}
	if got := root.FirstChild().FirstChild().FirstChild().Data(); got != "Home" {
		t.Errorf("link text = %q, want the original Home", got)
	}
}

func TestTextPatchInPlace(t *testing.T) {
	ctx, doc, root := newTestContext()

	ctx.Morph(root, vdom.Fragment(vdom.P("one")))
	text := root.FirstChild().FirstChild()

	doc.ResetCounters()
	ctx.Morph(root, vdom.Fragment(vdom.P("two")))

	if root.FirstChild().FirstChild() != text {
		t.Fatalf("text node replaced instead of patched")
	}
	if text.Data() != "two" {
		t.Errorf("Data = %q, want two", text.Data())
	}
	if got := doc.Counters(); got.TextSets != 1 || got.Inserts != 0 {
		t.Errorf("text update should be one TextSet: %+v", got)
	}
}

func TestFragmentMarkersDelimitChildren(t *testing.T) {
	ctx, _, root := newTestContext()
	render := func(items ...string) *vdom.Node {
		return vdom.Fragment(
			vdom.H2("list"),
			vdom.Fragment(vdom.Range(items, func(s string, _ int) *vdom.Node {
				return vdom.Li(vdom.AutoKey(s), s)
			})),
			vdom.P("after"),
		)
	}

	ctx.Morph(root, render("a", "b"))

	startM := root.FirstChild().NextSibling()
	if startM.Type() != dom.CommentNode {
		t.Fatalf("fragment start marker missing, got %v", startM.Type())
	}
	liA := startM.NextSibling()
	liB := liA.NextSibling()
	if liB.NextSibling().Type() != dom.CommentNode {
		t.Fatalf("fragment end marker missing")
	}
	if root.LastChild().TagName() != "p" {
		t.Fatalf("sibling after fragment missing")
	}

	ctx.Morph(root, render("b", "a"))

	if startM.NextSibling() != liB || liB.NextSibling() != liA {
		t.Errorf("keyed reorder inside fragment lost node identity")
	}
	if root.LastChild().TagName() != "p" {
		t.Errorf("fragment reorder disturbed following sibling")
	}
}

func TestComponentLifecycle(t *testing.T) {
	doc := dom.NewMemoryDocument()
	root := doc.CreateElement("div")
	reg := component.NewRegistry()
	ctx := morph.NewContext(doc, reg)

	var created, updated, destroyed int
	inst := reg.NewInstance("Counter", 0, func(input any, out *vdom.Node) {
		out.AppendChild(vdom.P(vdom.Textf("%d", input.(int))))
	}, component.Hooks{
		OnCreate:  func(*component.Instance) { created++ },
		OnUpdate:  func(*component.Instance) { updated++ },
		OnDestroy: func(*component.Instance) { destroyed++ },
	})

	ctx.Morph(root, vdom.Fragment(inst.Render()))
	if created != 1 || updated != 0 || destroyed != 0 {
		t.Fatalf("after mount: created=%d updated=%d destroyed=%d", created, updated, destroyed)
	}

	inst.Input = 1
	ctx.Morph(root, vdom.Fragment(inst.Render()))
	if updated != 1 {
		t.Fatalf("after update: updated = %d, want 1", updated)
	}
	if got := root.FirstChild().NextSibling().FirstChild().Data(); got != "1" {
		t.Errorf("component output = %q, want 1", got)
	}

	ctx.Morph(root, vdom.Fragment())
	if destroyed != 1 {
		t.Fatalf("after removal: destroyed = %d, want 1", destroyed)
	}
	if !inst.Destroyed() {
		t.Errorf("instance not marked destroyed")
	}

	// Destruction fires exactly once.
	ctx.Morph(root, vdom.Fragment())
	if destroyed != 1 {
		t.Errorf("destroy fired again: %d", destroyed)
	}
}

func TestComponentMoveIsNotDestroy(t *testing.T) {
	doc := dom.NewMemoryDocument()
	root := doc.CreateElement("div")
	reg := component.NewRegistry()
	ctx := morph.NewContext(doc, reg)

	var destroyed int
	hooks := component.Hooks{OnDestroy: func(*component.Instance) { destroyed++ }}
	render := func(input any, out *vdom.Node) {
		out.AppendChild(vdom.Span(input.(string)))
	}
	a := reg.NewInstance("Widget", "a", render, hooks)
	b := reg.NewInstance("Widget", "b", render, hooks)

	ctx.Morph(root, vdom.Fragment(a.Render(), b.Render()))
	aStart, _ := a.Host()

	ctx.Morph(root, vdom.Fragment(b.Render(), a.Render()))

	if destroyed != 0 {
		t.Fatalf("reorder destroyed components: %d", destroyed)
	}
	if gotStart, _ := a.Host(); gotStart != aStart {
		t.Errorf("reorder rebuilt component host markers")
	}
	bStart, _ := b.Host()
	if root.FirstChild() != bStart {
		t.Errorf("component b not relocated to the front")
	}
}

func TestPreserveSkipsComponentSubtree(t *testing.T) {
	doc := dom.NewMemoryDocument()
	root := doc.CreateElement("div")
	reg := component.NewRegistry()
	ctx := morph.NewContext(doc, reg)

	inst := reg.NewInstance("Editor", "v1", func(input any, out *vdom.Node) {
		out.AppendChild(vdom.Pre(input.(string)))
	}, component.Hooks{})

	ctx.Morph(root, vdom.Fragment(inst.Render()))
	pre := root.FirstChild().NextSibling()

	inst.Input = "v2"
	placeholder := inst.Render()
	placeholder.Preserve = true
	ctx.Morph(root, vdom.Fragment(placeholder))

	if got := pre.FirstChild().Data(); got != "v1" {
		t.Errorf("preserved subtree was rewritten: %q", got)
	}
	if inst.Destroyed() {
		t.Errorf("preserved component was destroyed")
	}
}

func TestReentrantMorphPanics(t *testing.T) {
	doc := dom.NewMemoryDocument()
	root := doc.CreateElement("div")
	reg := component.NewRegistry()
	ctx := morph.NewContext(doc, reg)

	inst := reg.NewInstance("Evil", nil, func(any, *vdom.Node) {}, component.Hooks{
		OnCreate: func(*component.Instance) {
			ctx.Morph(root, vdom.Fragment())
		},
	})

	defer func() {
		if recover() == nil {
			t.Fatalf("re-entrant pass did not panic")
		}
	}()
	ctx.Morph(root, vdom.Fragment(inst.Render()))
}

func TestOnNodeAddedFiresPerElement(t *testing.T) {
	ctx, _, root := newTestContext()

	var added []string
	ctx.OnNodeAdded = func(n dom.Node) { added = append(added, n.TagName()) }

	ctx.Morph(root, vdom.Fragment(vdom.Ul(vdom.Li("a"), vdom.Li("b"))))

	if len(added) != 3 {
		t.Fatalf("OnNodeAdded fired %d times, want 3 (%v)", len(added), added)
	}

	added = added[:0]
	ctx.Morph(root, vdom.Fragment(vdom.Ul(vdom.Li("a"), vdom.Li("b"))))
	if len(added) != 0 {
		t.Errorf("OnNodeAdded fired for reused nodes: %v", added)
	}
}
