package syntax

import "testing"

func TestGreenNodeLeaf(t *testing.T) {
	leaf := Leaf(IDENT, "foo")
	if !leaf.IsLeaf() {
		t.Error("Leaf().IsLeaf() = false, want true")
	}
	if leaf.Kind() != IDENT {
		t.Errorf("Kind() = %v, want IDENT", leaf.Kind())
	}
	if leaf.Text() != "foo" {
		t.Errorf("Text() = %q, want %q", leaf.Text(), "foo")
	}
	if leaf.Len() != 3 {
		t.Errorf("Len() = %d, want 3", leaf.Len())
	}
	if leaf.Children() != nil {
		t.Errorf("Children() = %v, want nil", leaf.Children())
	}
}

func TestGreenNodeInnerLenIsSumOfChildren(t *testing.T) {
	a := Leaf(IDENT, "x")
	b := Leaf(EQ, "=")
	c := Leaf(INT, "1")
	inner := Inner(BINARY_EXPR, []*GreenNode{a, b, c})
	if inner.IsLeaf() {
		t.Error("Inner().IsLeaf() = true, want false")
	}
	if got, want := inner.Len(), a.Len()+b.Len()+c.Len(); got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
	if len(inner.Children()) != 3 {
		t.Errorf("len(Children()) = %d, want 3", len(inner.Children()))
	}
}

func TestGreenNodeSourceReconstructsText(t *testing.T) {
	a := Leaf(IDENT, "x")
	b := Leaf(WHITESPACE, " ")
	c := Leaf(EQ, "=")
	d := Leaf(WHITESPACE, " ")
	e := Leaf(INT, "1")
	inner := Inner(BINARY_EXPR, []*GreenNode{a, b, c, d, e})
	if got, want := inner.Source(), "x = 1"; got != want {
		t.Errorf("Source() = %q, want %q", got, want)
	}
}

func TestGreenNodeSourceNested(t *testing.T) {
	lit := Inner(LITERAL, []*GreenNode{Leaf(INT, "42")})
	file := Inner(FILE, []*GreenNode{lit, Leaf(NEWLINE, "\n")})
	if got, want := file.Source(), "42\n"; got != want {
		t.Errorf("Source() = %q, want %q", got, want)
	}
}

func TestGreenNodeEqualIdentity(t *testing.T) {
	n := Leaf(IDENT, "x")
	if !n.Equal(n) {
		t.Error("a node does not equal itself")
	}
}

func TestGreenNodeEqualNil(t *testing.T) {
	n := Leaf(IDENT, "x")
	if n.Equal(nil) {
		t.Error("node equals nil")
	}
	var nilNode *GreenNode
	if nilNode.Equal(n) {
		t.Error("nil equals non-nil node")
	}
	if !nilNode.Equal(nil) {
		t.Error("nil does not equal nil")
	}
}

func TestGreenNodeEqualStructural(t *testing.T) {
	build := func() *GreenNode {
		return Inner(BINARY_EXPR, []*GreenNode{
			Leaf(IDENT, "x"),
			Leaf(PLUS, "+"),
			Leaf(INT, "1"),
		})
	}
	a, b := build(), build()
	if a == b {
		t.Fatal("test setup: a and b should be distinct allocations")
	}
	if !a.Equal(b) {
		t.Error("structurally identical trees built separately should be Equal")
	}
}

func TestGreenNodeEqualDiffersByKind(t *testing.T) {
	a := Leaf(IDENT, "x")
	b := Leaf(STRING, "x")
	if a.Equal(b) {
		t.Error("leaves with different kinds should not be Equal")
	}
}

func TestGreenNodeEqualDiffersByText(t *testing.T) {
	a := Leaf(IDENT, "x")
	b := Leaf(IDENT, "y")
	if a.Equal(b) {
		t.Error("leaves with different text should not be Equal")
	}
}

func TestGreenNodeEqualDiffersByChildCount(t *testing.T) {
	a := Inner(BINARY_EXPR, []*GreenNode{Leaf(IDENT, "x")})
	b := Inner(BINARY_EXPR, []*GreenNode{Leaf(IDENT, "x"), Leaf(PLUS, "+")})
	if a.Equal(b) {
		t.Error("inner nodes with different child counts should not be Equal")
	}
}

func TestGreenNodeEqualLeafVsInner(t *testing.T) {
	leaf := Leaf(BINARY_EXPR, "")
	inner := Inner(BINARY_EXPR, nil)
	if leaf.Equal(inner) {
		t.Error("a leaf and an inner node of the same kind should not be Equal")
	}
}

func TestGreenNodeStringLeaf(t *testing.T) {
	n := Leaf(IDENT, "x")
	if got, want := n.String(), IDENT.Name()+": "+`"x"`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestGreenNodeStringInner(t *testing.T) {
	n := Inner(FILE, nil)
	if got, want := n.String(), FILE.Name(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
