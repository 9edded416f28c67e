package syntax

import "testing"

// buildAssignTree builds the green tree for "x = 1" as a FILE wrapping one
// SIMPLE_STMT wrapping one ASSIGN_STMT of five leaves (three tokens and two
// WHITESPACE).
func buildAssignTree() *GreenNode {
	assign := Inner(ASSIGN_STMT, []*GreenNode{
		Leaf(IDENT, "x"),
		Leaf(WHITESPACE, " "),
		Leaf(EQ, "="),
		Leaf(WHITESPACE, " "),
		Leaf(INT, "1"),
	})
	stmt := Inner(SIMPLE_STMT, []*GreenNode{assign, Leaf(NEWLINE, "\n")})
	return Inner(FILE, []*GreenNode{stmt})
}

func TestRedCursorRootOffsets(t *testing.T) {
	root := NewRedCursor(buildAssignTree())
	if root.Kind() != FILE {
		t.Errorf("root.Kind() = %v, want FILE", root.Kind())
	}
	if root.Parent() != nil {
		t.Error("root.Parent() should be nil")
	}
	if start, end := root.Range(); start != 0 || end != root.Green().Len() {
		t.Errorf("root.Range() = (%d, %d), want (0, %d)", start, end, root.Green().Len())
	}
}

func TestRedCursorChildOffsetsAreCumulative(t *testing.T) {
	root := NewRedCursor(buildAssignTree())
	stmt := root.Children()[0]
	assign := stmt.Children()[0]
	kids := assign.Children()

	wantStarts := []int{0, 1, 2, 3, 4}
	for i, k := range kids {
		if k.Start() != wantStarts[i] {
			t.Errorf("child %d (%v) Start() = %d, want %d", i, k.Kind(), k.Start(), wantStarts[i])
		}
	}
	if got, want := kids[len(kids)-1].End(), len("x = 1"); got != want {
		t.Errorf("last child End() = %d, want %d", got, want)
	}
}

func TestRedCursorTextReconstructsSource(t *testing.T) {
	root := NewRedCursor(buildAssignTree())
	if got, want := root.Text(), "x = 1\n"; got != want {
		t.Errorf("root.Text() = %q, want %q", got, want)
	}
}

func TestRedCursorChildrenIncludeTrivia(t *testing.T) {
	root := NewRedCursor(buildAssignTree())
	assign := root.Children()[0].Children()[0]
	kids := assign.Children()
	if len(kids) != 5 {
		t.Fatalf("len(Children()) = %d, want 5 (trivia included)", len(kids))
	}
	if kids[1].Kind() != WHITESPACE {
		t.Errorf("kids[1].Kind() = %v, want WHITESPACE", kids[1].Kind())
	}
}

func TestRedCursorIndex(t *testing.T) {
	root := NewRedCursor(buildAssignTree())
	assign := root.Children()[0].Children()[0]
	for i, k := range assign.Children() {
		if k.Index() != i {
			t.Errorf("child %d has Index() = %d", i, k.Index())
		}
	}
}

func TestRedCursorNextPrevSibling(t *testing.T) {
	root := NewRedCursor(buildAssignTree())
	assign := root.Children()[0].Children()[0]
	kids := assign.Children()

	if kids[0].PrevSibling() != nil {
		t.Error("first child's PrevSibling() should be nil")
	}
	if kids[len(kids)-1].NextSibling() != nil {
		t.Error("last child's NextSibling() should be nil")
	}
	next := kids[0].NextSibling()
	if next == nil || next.Kind() != WHITESPACE {
		t.Errorf("kids[0].NextSibling() = %v, want WHITESPACE", next)
	}
	prev := kids[2].PrevSibling()
	if prev == nil || prev.Kind() != WHITESPACE {
		t.Errorf("kids[2].PrevSibling() = %v, want WHITESPACE", prev)
	}
}

func TestRedCursorSiblingsOnRootAreNil(t *testing.T) {
	root := NewRedCursor(buildAssignTree())
	if root.NextSibling() != nil {
		t.Error("root.NextSibling() should be nil")
	}
	if root.PrevSibling() != nil {
		t.Error("root.PrevSibling() should be nil")
	}
}

func TestRedCursorPreorderVisitsEveryNodeOnce(t *testing.T) {
	root := NewRedCursor(buildAssignTree())
	events := root.Preorder()

	enters, leaves := 0, 0
	for _, e := range events {
		if e.Enter {
			enters++
		} else {
			leaves++
		}
	}
	// FILE, SIMPLE_STMT, ASSIGN_STMT, 5 leaves under ASSIGN_STMT, NEWLINE = 9 nodes.
	if enters != 9 || leaves != 9 {
		t.Errorf("Preorder() gave %d enters, %d leaves, want 9 and 9", enters, leaves)
	}
	if !events[0].Enter || events[0].Node.Kind() != FILE {
		t.Errorf("first event should be Enter(FILE), got %+v", events[0])
	}
	last := events[len(events)-1]
	if last.Enter || last.Node.Kind() != FILE {
		t.Errorf("last event should be Leave(FILE), got %+v", last)
	}
}

func TestRedCursorFirstChildOfKind(t *testing.T) {
	root := NewRedCursor(buildAssignTree())
	assign := root.Children()[0].Children()[0]
	got := assign.FirstChildOfKind(EQ)
	if got == nil || got.Kind() != EQ {
		t.Errorf("FirstChildOfKind(EQ) = %v, want a node of kind EQ", got)
	}
	if assign.FirstChildOfKind(STRING) != nil {
		t.Error("FirstChildOfKind(STRING) should be nil: no STRING child present")
	}
}

func TestRedCursorTokenAfter(t *testing.T) {
	root := NewRedCursor(buildAssignTree())
	assign := root.Children()[0].Children()[0]
	got := assign.TokenAfter(EQ)
	if got == nil || got.Kind() != WHITESPACE {
		t.Errorf("TokenAfter(EQ) = %v, want the WHITESPACE following it", got)
	}
	if assign.TokenAfter(INT) != nil {
		t.Error("TokenAfter(INT) should be nil: INT is the last child")
	}
}

func TestRedCursorLeafHasNoChildren(t *testing.T) {
	root := NewRedCursor(buildAssignTree())
	assign := root.Children()[0].Children()[0]
	leaf := assign.Children()[0]
	if leaf.Children() != nil {
		t.Errorf("leaf.Children() = %v, want nil", leaf.Children())
	}
}
