// This file generalizes boergens/gotypst's syntax/parser.go Parser
// struct — current()/at()/atSet()/eat()/expect()/wrap() over a lexer fed
// lazily one token at a time — to Starlark's two-stream model (§4.2.1):
// here the full token vector (with trivia) is lexed up front, a second
// "significant" index is derived from it, and all predicates operate on
// the significant view while all tree construction operates on the full
// one, flushing preceding trivia before every attached token.
package parser

import (
	"github.com/star-ls/star-ls-go/lexer"
	"github.com/star-ls/star-ls-go/syntax"
)

// Parser consumes a fully-lexed token stream and builds a green tree,
// emitting Diagnostics but never aborting (§4.2, §7).
type Parser struct {
	full     []lexer.Token
	tokStart []int // byte offset of each full[i], prefix-summed once up front
	sig      []int // indices into full of the non-trivia tokens, in order

	fullPos int // next full[] index not yet attached to the tree
	sigPos  int // index into sig of the current significant token

	b           *Builder
	diagnostics []*syntax.Diagnostic
}

// New lexes text completely and prepares a Parser over it.
func New(text string) *Parser {
	l := lexer.NewLexer(text)
	var full []lexer.Token
	for {
		tok := l.Next()
		if tok.Kind == syntax.EOF {
			break
		}
		full = append(full, tok)
	}

	tokStart := make([]int, len(full)+1)
	for i, t := range full {
		tokStart[i+1] = tokStart[i] + len(t.Text)
	}

	var sig []int
	var diags []*syntax.Diagnostic
	for i, t := range full {
		if t.Diagnostic != nil {
			diags = append(diags, t.Diagnostic)
		}
		if !t.Kind.IsTrivia() {
			sig = append(sig, i)
		}
	}

	return &Parser{
		full:        full,
		tokStart:    tokStart,
		sig:         sig,
		b:           NewBuilder(),
		diagnostics: diags,
	}
}

// current returns the kind of the current significant token, or EOF past
// the end of the stream.
func (p *Parser) current() syntax.SyntaxKind {
	if p.sigPos >= len(p.sig) {
		return syntax.EOF
	}
	return p.full[p.sig[p.sigPos]].Kind
}

// nth returns the kind of the significant token k positions ahead of
// current (nth(0) == current()).
func (p *Parser) nth(k int) syntax.SyntaxKind {
	i := p.sigPos + k
	if i >= len(p.sig) {
		return syntax.EOF
	}
	return p.full[p.sig[i]].Kind
}

// currentText returns the text of the current significant token.
func (p *Parser) currentText() string {
	if p.sigPos >= len(p.sig) {
		return ""
	}
	return p.full[p.sig[p.sigPos]].Text
}

// at reports whether the current significant token has the given kind.
func (p *Parser) at(kind syntax.SyntaxKind) bool {
	return p.current() == kind
}

// atSet reports whether the current significant token belongs to set.
func (p *Parser) atSet(set syntax.KindSet) bool {
	return set.Contains(p.current())
}

// atEnd reports whether the significant stream is exhausted.
func (p *Parser) atEnd() bool {
	return p.sigPos >= len(p.sig)
}

// currentOffset returns the byte offset the current significant token
// starts at (where a diagnostic about it should be anchored), or the end
// of the file if the stream is exhausted.
func (p *Parser) currentOffset() int {
	if p.sigPos >= len(p.sig) {
		return p.tokStart[len(p.full)]
	}
	return p.tokStart[p.sig[p.sigPos]]
}

// flushTrivia attaches every WHITESPACE/COMMENT token preceding the
// current significant token (or, at end of stream, preceding EOF) to
// whichever node is currently open, in original position (§4.2.1).
func (p *Parser) flushTrivia() {
	limit := len(p.full)
	if p.sigPos < len(p.sig) {
		limit = p.sig[p.sigPos]
	}
	for p.fullPos < limit {
		t := p.full[p.fullPos]
		p.b.Token(t.Kind, t.Text)
		p.fullPos++
	}
}

// eat attaches the current significant token (after flushing its
// preceding trivia) and advances.
func (p *Parser) eat() {
	p.flushTrivia()
	t := p.full[p.sig[p.sigPos]]
	p.b.Token(t.Kind, t.Text)
	p.fullPos = p.sig[p.sigPos] + 1
	p.sigPos++
}

// eatIf eats the current token if it has the given kind.
func (p *Parser) eatIf(kind syntax.SyntaxKind) bool {
	if p.at(kind) {
		p.eat()
		return true
	}
	return false
}

// expect eats the current token if it matches kind; otherwise records a
// diagnostic and leaves the token unconsumed (§4.2.4 rule 1).
func (p *Parser) expect(kind syntax.SyntaxKind) bool {
	if p.at(kind) {
		p.eat()
		return true
	}
	p.diag(p.currentOffset(), "expected "+kind.Name())
	return false
}

// diag records a diagnostic at the given byte offset.
func (p *Parser) diag(offset int, message string) {
	p.diagnostics = append(p.diagnostics, syntax.NewDiagnostic(offset, message))
}

// Finish flushes any trailing trivia and returns the completed tree plus
// its diagnostics, sorted by offset is the caller's (serialize.go's)
// responsibility.
func (p *Parser) Finish() (*syntax.GreenNode, []*syntax.Diagnostic) {
	p.flushTrivia()
	return p.b.Finish(), p.diagnostics
}
