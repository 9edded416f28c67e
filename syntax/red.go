// This file is a Go translation, generalized to the lossless-CST contract
// of spec.md §4.3, of the LinkedNode cursor in typst-syntax/src/node.go
// (itself from node.rs in the original Typst compiler). Typst's LinkedNode
// skips trivia when walking siblings/leaves; this cursor does not, since
// spec.md's red cursor contract calls for plain in-order children and
// trivia attachment is purely positional (§4.2.1, §9), not a thing callers
// filter out implicitly.
package syntax

// RedCursor is a lazy, cheap view over a GreenNode that additionally
// knows its parent chain and its cumulative byte offset in the source
// (§3, §4.3). Constructing a child cursor is O(1): it just adds the
// preceding siblings' lengths to the parent's offset. A cursor never
// mutates the green node it views.
type RedCursor struct {
	green  *GreenNode
	parent *RedCursor
	index  int // this node's index among its parent's children
	offset int // absolute byte offset of this node's start
}

// NewRedCursor starts a cursor at the root of a green tree.
func NewRedCursor(root *GreenNode) *RedCursor {
	return &RedCursor{green: root, parent: nil, index: 0, offset: 0}
}

// Kind returns the kind of the node this cursor views.
func (c *RedCursor) Kind() SyntaxKind { return c.green.Kind() }

// Green returns the underlying green node.
func (c *RedCursor) Green() *GreenNode { return c.green }

// Start returns the absolute byte offset where this node begins.
func (c *RedCursor) Start() int { return c.offset }

// End returns the absolute byte offset where this node ends (exclusive).
func (c *RedCursor) End() int { return c.offset + c.green.Len() }

// Range returns [Start(), End()).
func (c *RedCursor) Range() (start, end int) { return c.Start(), c.End() }

// Text returns the full text spanned by this node, reconstructed from its
// token leaves.
func (c *RedCursor) Text() string { return c.green.Source() }

// Parent returns the cursor's parent, or nil at the root.
func (c *RedCursor) Parent() *RedCursor { return c.parent }

// Index returns this node's position among its parent's children.
func (c *RedCursor) Index() int { return c.index }

// Children returns cursors over this node's children, in tree order,
// including trivia and token leaves — the red layer never filters.
func (c *RedCursor) Children() []*RedCursor {
	kids := c.green.Children()
	if len(kids) == 0 {
		return nil
	}
	out := make([]*RedCursor, len(kids))
	offset := c.offset
	for i, k := range kids {
		out[i] = &RedCursor{green: k, parent: c, index: i, offset: offset}
		offset += k.Len()
	}
	return out
}

// NextSibling returns the cursor's next sibling, or nil if it is the last
// child (or the root).
func (c *RedCursor) NextSibling() *RedCursor {
	if c.parent == nil {
		return nil
	}
	siblings := c.parent.Children()
	if c.index+1 >= len(siblings) {
		return nil
	}
	return siblings[c.index+1]
}

// PrevSibling returns the cursor's previous sibling, or nil if it is the
// first child (or the root).
func (c *RedCursor) PrevSibling() *RedCursor {
	if c.parent == nil || c.index == 0 {
		return nil
	}
	siblings := c.parent.Children()
	return siblings[c.index-1]
}

// PreorderEvent is yielded by Preorder: either entering or leaving a node.
type PreorderEvent struct {
	Node  *RedCursor
	Enter bool
}

// Preorder walks the subtree rooted at c, yielding Enter(node)/Leave(node)
// events in tree order (§4.3).
func (c *RedCursor) Preorder() []PreorderEvent {
	var events []PreorderEvent
	var walk func(n *RedCursor)
	walk = func(n *RedCursor) {
		events = append(events, PreorderEvent{Node: n, Enter: true})
		for _, child := range n.Children() {
			walk(child)
		}
		events = append(events, PreorderEvent{Node: n, Enter: false})
	}
	walk(c)
	return events
}

// FirstChildOfKind returns the first direct child with the given kind, or
// nil. This is the accessor pattern a typed AST façade is built from
// (§4.3's "derived view" note) — it is provided here as the one mechanical
// helper the spec mandates, not a full typed wrapper layer.
func (c *RedCursor) FirstChildOfKind(kind SyntaxKind) *RedCursor {
	for _, child := range c.Children() {
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// TokenAfter returns the child immediately following the first child of
// kind marker, trivia included, or nil if no child has that kind or it is
// the last child.
func (c *RedCursor) TokenAfter(marker SyntaxKind) *RedCursor {
	children := c.Children()
	seen := false
	for _, child := range children {
		if seen {
			return child
		}
		if child.Kind() == marker {
			seen = true
		}
	}
	return nil
}
