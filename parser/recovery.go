// Error recovery helpers implementing §4.2.4. Grounded on boergens/gotypst's
// wrapError/unexpected (syntax/parser.go), reshaped around an explicit
// ERROR node and the KindSet recovery sets declared in syntax/set.go.
package parser

import "github.com/star-ls/star-ls-go/syntax"

// recoverTo consumes significant tokens (and their trivia) into an open
// ERROR node until one in set is reached or the stream ends.
func (p *Parser) recoverTo(set syntax.KindSet) {
	p.b.Open(syntax.ERROR)
	for !p.atEnd() && !p.atSet(set) {
		p.eat()
	}
	p.b.Close()
}

// expectExpression records "expected expression" and recovers to set
// (§4.2.4 rule 2).
func (p *Parser) expectExpression(set syntax.KindSet) {
	p.diag(p.currentOffset(), "expected expression")
	p.recoverTo(set)
}

// expectStatement records "expected statement" and recovers to the
// statement-level recovery set.
func (p *Parser) expectStatement() {
	p.diag(p.currentOffset(), "expected statement")
	p.recoverTo(syntax.StmtRecoverySet)
}

// expectClosing consumes the closing bracket kind, or emits its
// diagnostic before recovering to the statement recovery set so the
// reported position is accurate (§4.2.4 rule 3).
func (p *Parser) expectClosing(kind syntax.SyntaxKind) {
	if p.eatIf(kind) {
		return
	}
	p.diag(p.currentOffset(), "expected "+kind.Name())
	p.recoverTo(syntax.StmtRecoverySet)
}

// unexpected records "unexpected token" at the current position and wraps
// the tokens from there up to (not including) the next NEWLINE in an ERROR
// node — used when a small statement starts with a token that begins
// nothing valid (§4.2.4 rule 4): the line is not discarded, only the
// offending remainder is wrapped.
func (p *Parser) unexpected() {
	p.diag(p.currentOffset(), "unexpected token")
	p.recoverTo(syntax.SmallStmtRecoverySet)
}
