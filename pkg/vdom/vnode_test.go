package vdom

import "testing"

func TestKindString(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindComment, "Comment"},
		{KindFragment, "Fragment"},
		{KindComponent, "Component"},
		{Kind(99), "Unknown"},
	}
	for _, tc := range cases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestNewElementCapacity(t *testing.T) {
	n := NewElement("ul", nil, 2)
	n.AppendChild(NewText("a"))
	n.AppendChild(NewText("b"))

	if n.ChildCount() != 2 {
		t.Fatalf("ChildCount = %d, want 2", n.ChildCount())
	}
}

func TestAppendBeyondCapacityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when exceeding declared child count")
		}
	}()

	n := NewElement("div", nil, 1)
	n.AppendChild(NewText("a"))
	n.AppendChild(NewText("b"))
}

func TestAppendToTextPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when appending to a text node")
		}
	}()

	NewText("x").AppendChild(NewText("y"))
}

func TestExplicitKeyDetection(t *testing.T) {
	explicit := NewElement("li", nil, 0).WithKey("@row-1")
	auto := NewElement("li", nil, 0).WithKey("row-1")
	unkeyed := NewElement("li", nil, 0)

	if !explicit.IsKeyed() || !explicit.HasExplicitKey() {
		t.Error("explicit key not detected")
	}
	if !auto.IsKeyed() || auto.HasExplicitKey() {
		t.Error("auto key misclassified as explicit")
	}
	if unkeyed.IsKeyed() {
		t.Error("unkeyed node reported as keyed")
	}
}

func TestNewElementNS(t *testing.T) {
	n := NewElementNS("http://www.w3.org/2000/svg", "circle", nil, 0)
	if n.Namespace != "http://www.w3.org/2000/svg" {
		t.Errorf("Namespace = %q", n.Namespace)
	}
	if n.Tag != "circle" {
		t.Errorf("Tag = %q", n.Tag)
	}
}

func TestComponentChildrenUnsealed(t *testing.T) {
	n := NewComponent(nil, "@c1")

	// Component output length is only known at commit time.
	n.AppendChild(NewText("a"))
	n.AppendChild(NewText("b"))
	n.AppendChild(NewText("c"))

	if n.ChildCount() != 3 {
		t.Fatalf("ChildCount = %d, want 3", n.ChildCount())
	}
}
