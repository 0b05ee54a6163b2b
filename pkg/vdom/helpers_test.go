package vdom

import "testing"

func TestFragmentCollectsChildren(t *testing.T) {
	f := Fragment("a", Span("b"), []*Node{NewText("c"), nil}, nil)

	if f.Kind != KindFragment {
		t.Fatalf("Kind = %s", f.Kind)
	}
	if f.ChildCount() != 3 {
		t.Fatalf("ChildCount = %d, want 3", f.ChildCount())
	}
}

func TestIfElse(t *testing.T) {
	yes, no := Span("y"), Span("n")
	if IfElse(true, yes, no) != yes {
		t.Error("IfElse(true) should return first node")
	}
	if IfElse(false, yes, no) != no {
		t.Error("IfElse(false) should return second node")
	}
}

func TestWhenLazy(t *testing.T) {
	called := false
	When(false, func() *Node {
		called = true
		return nil
	})
	if called {
		t.Error("When(false) must not call fn")
	}
}

func TestRangeSkipsNil(t *testing.T) {
	nodes := Range([]string{"a", "", "c"}, func(s string, i int) *Node {
		if s == "" {
			return nil
		}
		return Li(AutoKey(i), s)
	})
	if len(nodes) != 2 {
		t.Fatalf("len = %d, want 2", len(nodes))
	}
	if nodes[1].Key != "2" {
		t.Errorf("Key = %q, want 2", nodes[1].Key)
	}
}

func TestRepeat(t *testing.T) {
	nodes := Repeat(3, func(i int) *Node { return Textf("%d", i) })
	if len(nodes) != 3 || nodes[2].Text != "2" {
		t.Errorf("Repeat output wrong: %v", nodes)
	}
	if Repeat(0, func(i int) *Node { return nil }) != nil {
		t.Error("Repeat(0) should be nil")
	}
}

func TestClassesMerging(t *testing.T) {
	a := Classes("base", []string{"x", ""}, map[string]bool{"active": true, "off": false})
	got, _ := a.Value.(string)
	// Map iteration order is unspecified; only "active" can come from the map.
	if got != "base x active" {
		t.Errorf("Classes = %q, want %q", got, "base x active")
	}
}

func TestAttrIf(t *testing.T) {
	if a := AttrIf(false, ID("x")); !a.IsEmpty() {
		t.Error("AttrIf(false) should be empty")
	}
	if a := AttrIf(true, ID("x")); a.Key != "id" {
		t.Error("AttrIf(true) should pass through")
	}
}

func TestEither(t *testing.T) {
	n := Span("x")
	if Either(nil, n) != n {
		t.Error("Either should fall back to second")
	}
	if Either(n, nil) != n {
		t.Error("Either should prefer first")
	}
}
