// This file implements the statement-level grammar of §4.2.3 (File down
// through SmallStmt and Suite), grounded on the statement-dispatch switch
// of boergens/gotypst's syntax/parser_code.go (codeExprs / the per-keyword
// branches of codeExpr) generalized from Typst's statement set to
// Starlark's.
package parser

import "github.com/star-ls/star-ls-go/syntax"

// Parse lexes and parses a complete Starlark source file, returning the
// green tree and accumulated diagnostics (lexer diagnostics first, in
// token order, followed by parser diagnostics in the order encountered;
// sorting by offset is serialize.go's job, not the parser's).
func Parse(text string) (*syntax.GreenNode, []*syntax.Diagnostic) {
	p := New(text)
	p.b.Open(syntax.FILE)
	for !p.atEnd() {
		p.parseStatement()
	}
	p.b.Close()
	return p.Finish()
}

// parseStatement parses one Statement production.
func (p *Parser) parseStatement() {
	switch p.current() {
	case syntax.DEF:
		p.parseDefStmt()
	case syntax.IF:
		p.parseIfStmt()
	case syntax.FOR:
		p.parseForStmt()
	case syntax.NEWLINE:
		p.eat()
	default:
		p.parseSimpleStmt()
	}
}

// parseDefStmt parses `'def' IDENT '(' [Parameters [',']] ')' ':' Suite`.
func (p *Parser) parseDefStmt() {
	p.b.Open(syntax.DEF_STMT)
	p.eat() // 'def'
	p.expect(syntax.IDENT)
	p.expect(syntax.LPAREN)
	if !p.at(syntax.RPAREN) {
		p.parseParameters(syntax.KindSetOf(syntax.RPAREN))
		p.eatIf(syntax.COMMA)
	}
	p.expectClosing(syntax.RPAREN)
	p.expect(syntax.COLON)
	p.parseSuite()
	p.b.Close()
}

// parseIfStmt parses
// `'if' Test ':' Suite {'elif' Test ':' Suite} ['else' ':' Suite]`.
func (p *Parser) parseIfStmt() {
	p.b.Open(syntax.IF_STMT)
	p.eat() // 'if'
	p.parseTest(syntax.KindSetOf(syntax.COLON))
	p.expect(syntax.COLON)
	p.parseSuite()
	for p.at(syntax.ELIF) {
		p.eat()
		p.parseTest(syntax.KindSetOf(syntax.COLON))
		p.expect(syntax.COLON)
		p.parseSuite()
	}
	if p.at(syntax.ELSE) {
		p.eat()
		p.expect(syntax.COLON)
		p.parseSuite()
	}
	p.b.Close()
}

// parseForStmt parses `'for' LoopVars 'in' Test ':' Suite`.
func (p *Parser) parseForStmt() {
	p.b.Open(syntax.FOR_STMT)
	p.eat() // 'for'
	p.parseLoopVariables(syntax.KindSetOf(syntax.IN))
	p.expect(syntax.IN)
	p.parseTest(syntax.KindSetOf(syntax.COLON))
	p.expect(syntax.COLON)
	p.parseSuite()
	p.b.Close()
}

// parseSuite parses `NEWLINE INDENT {Statement} DEDENT | SimpleStmt`.
func (p *Parser) parseSuite() {
	if p.at(syntax.NEWLINE) {
		p.b.Open(syntax.SUITE)
		p.eat()
		if p.expect(syntax.INDENT) {
			for !p.at(syntax.DEDENT) && !p.atEnd() {
				p.parseStatement()
			}
			p.expect(syntax.DEDENT)
		}
		p.b.Close()
		return
	}
	p.parseSimpleStmt()
}

// parseSimpleStmt parses `SmallStmt {';' SmallStmt} [';'] NEWLINE`.
func (p *Parser) parseSimpleStmt() {
	p.b.Open(syntax.SIMPLE_STMT)
	p.parseSmallStmt()
	for p.at(syntax.SEMI) {
		p.eat()
		if p.at(syntax.NEWLINE) || p.atEnd() {
			break
		}
		p.parseSmallStmt()
	}
	p.expect(syntax.NEWLINE)
	p.b.Close()
}

// parseSmallStmt parses one SmallStmt alternative.
func (p *Parser) parseSmallStmt() {
	switch p.current() {
	case syntax.RETURN:
		p.b.Open(syntax.RETURN_STMT)
		p.eat()
		if p.atSet(syntax.TestStartSet) {
			p.parseTestListAsExpr(syntax.StmtRecoverySet)
		}
		p.b.Close()
	case syntax.BREAK:
		p.b.Open(syntax.BREAK_STMT)
		p.eat()
		p.b.Close()
	case syntax.CONTINUE:
		p.b.Open(syntax.CONTINUE_STMT)
		p.eat()
		p.b.Close()
	case syntax.PASS:
		p.b.Open(syntax.PASS_STMT)
		p.eat()
		p.b.Close()
	case syntax.LOAD:
		p.parseLoadStmt()
	default:
		if p.atSet(syntax.TestStartSet) {
			p.parseAssignOrExpr()
		} else {
			p.unexpected()
		}
	}
}

// parseTestListAsExpr parses an ExprList directly as the child sequence
// of whatever node is currently open (used by 'return', which wraps its
// operand the same way AssignOrExpr's left-hand ExprList does).
func (p *Parser) parseTestListAsExpr(recovery syntax.KindSet) {
	cp := p.b.Checkpoint()
	count, trailingComma := p.parseExprList(recovery)
	if count > 1 || trailingComma {
		p.b.OpenAt(cp, syntax.TUPLE_EXPR)
		p.b.Close()
	}
}

// parseLoadStmt parses a load statement: `'load' '(' STRING
// {',' (STRING | IDENT '=' STRING)} [','] ')'`.
func (p *Parser) parseLoadStmt() {
	p.b.Open(syntax.LOAD_STMT)
	p.eat() // 'load'
	p.expect(syntax.LPAREN)
	recovery := syntax.KindSetOf(syntax.RPAREN)
	if !p.at(syntax.RPAREN) {
		p.parseLoadArg(recovery)
		for p.eatIf(syntax.COMMA) {
			if p.at(syntax.RPAREN) {
				break
			}
			p.parseLoadArg(recovery)
		}
	}
	p.expectClosing(syntax.RPAREN)
	p.b.Close()
}

func (p *Parser) parseLoadArg(recovery syntax.KindSet) {
	if p.at(syntax.IDENT) && p.nth(1) == syntax.EQ {
		p.eat()
		p.eat()
		p.expect(syntax.STRING)
		return
	}
	p.expect(syntax.STRING)
}

// parseAssignOrExpr parses `ExprList [AssignOp ExprList]`, wrapping the
// whole thing in ASSIGN_STMT when an AssignOp is present.
func (p *Parser) parseAssignOrExpr() {
	cp := p.b.Checkpoint()
	count, trailingComma := p.parseExprList(syntax.StmtRecoverySet)
	if count > 1 || trailingComma {
		p.b.OpenAt(cp, syntax.TUPLE_EXPR)
		p.b.Close()
	}
	if p.atSet(syntax.AssignOpSet) {
		p.b.OpenAt(cp, syntax.ASSIGN_STMT)
		p.eat()
		rcp := p.b.Checkpoint()
		rcount, rtrailing := p.parseExprList(syntax.StmtRecoverySet)
		if rcount > 1 || rtrailing {
			p.b.OpenAt(rcp, syntax.TUPLE_EXPR)
			p.b.Close()
		}
		p.b.Close()
	}
}
