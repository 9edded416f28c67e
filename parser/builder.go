// This file replaces boergens/gotypst's direct marker splicing — wrap()
// and wrapError() in syntax/parser.go operate on one flat []*SyntaxNode
// and splice a contiguous run into a single Inner node — with an explicit
// Open/Close stack generalizing the same idea (§4.2.2, §9 "retroactive
// wrapping"): both a plain Open(kind)/Close() pair and a
// Checkpoint()/OpenAt(checkpoint, kind) pair reduce to "collapse a
// contiguous run of the flat node list into one Inner node", the only
// difference being whether the run's start was known up front.
package parser

import "github.com/star-ls/star-ls-go/syntax"

// Checkpoint is an opaque position in the builder's flat node list,
// returned by Checkpoint and later consumed by OpenAt.
type Checkpoint int

type frame struct {
	kind  syntax.SyntaxKind
	start int
}

// Builder assembles a GreenNode tree from a flat, append-only sequence of
// already-built children plus a stack of pending Open() frames. Every
// Open/OpenAt eventually needs a matching Close.
type Builder struct {
	nodes []*syntax.GreenNode
	stack []frame
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Token appends a leaf token to the flat node list.
func (b *Builder) Token(kind syntax.SyntaxKind, text string) {
	b.nodes = append(b.nodes, syntax.Leaf(kind, text))
}

// Open starts a new node: everything appended (via Token, nested
// Open/Close, or OpenAt/Close) until the matching Close becomes its
// children.
func (b *Builder) Open(kind syntax.SyntaxKind) {
	b.stack = append(b.stack, frame{kind: kind, start: len(b.nodes)})
}

// Checkpoint captures the current end of the flat node list, to be
// reopened later by OpenAt.
func (b *Builder) Checkpoint() Checkpoint {
	return Checkpoint(len(b.nodes))
}

// OpenAt retroactively starts a new node whose children begin at a
// checkpoint taken earlier: nodes already emitted since the checkpoint
// become the new node's leading children without being moved or rebuilt,
// and further Token/Open/OpenAt calls before the matching Close add
// trailing children (the rhs and operator of a freshly-recognized binary
// expression, for instance).
func (b *Builder) OpenAt(cp Checkpoint, kind syntax.SyntaxKind) {
	b.stack = append(b.stack, frame{kind: kind, start: int(cp)})
}

// Close finishes the innermost open frame, collapsing every node emitted
// since it was opened into a single Inner node.
func (b *Builder) Close() {
	n := len(b.stack)
	f := b.stack[n-1]
	b.stack = b.stack[:n-1]
	children := make([]*syntax.GreenNode, len(b.nodes)-f.start)
	copy(children, b.nodes[f.start:])
	b.nodes = append(b.nodes[:f.start], syntax.Inner(f.kind, children))
}

// Finish completes the build. There must be exactly one root node and no
// open frames remaining.
func (b *Builder) Finish() *syntax.GreenNode {
	if len(b.nodes) == 1 {
		return b.nodes[0]
	}
	// A malformed grammar invocation left more or less than one top-level
	// node; wrap defensively rather than panic, since the parser must
	// never abort (§7).
	return syntax.Inner(syntax.FILE, b.nodes)
}
