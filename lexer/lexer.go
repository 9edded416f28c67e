// This file generalizes the switch-on-rune, iterator-style lexer of
// boergens/gotypst's syntax/lexer.go (itself from the Typst compiler's
// lexer.rs) from Typst's three lexing modes to Starlark's single mode,
// and replaces its mode dispatch with the significant-indentation state
// machine (indent-column stack + paren-depth counter) this grammar needs
// in its place.
package lexer

import (
	"strings"
	"unicode"

	"github.com/star-ls/star-ls-go/syntax"
)

// Lexer is a streaming, non-restartable tokenizer: one is constructed per
// parse and consumed exactly once (§4.1). Next returns one token at a
// time; internally it may queue several (WHITESPACE plus INDENT/DEDENT)
// from a single indentation scan and drain them before reading further.
type Lexer struct {
	s           *scanner
	parenDepth  int
	indentStack []int
	lineStart   bool
	pending     []Token
	finished    bool
}

// NewLexer constructs a lexer over text.
func NewLexer(text string) *Lexer {
	return &Lexer{
		s:           newScanner(text),
		indentStack: []int{0},
		lineStart:   true,
	}
}

// Next returns the next token, or a Token{Kind: syntax.EOF} once the
// stream (including the synthesized closing DEDENTs) is exhausted.
func (l *Lexer) Next() Token {
	if len(l.pending) > 0 {
		return l.popPending()
	}
	if l.finished {
		return Token{Kind: syntax.EOF}
	}
	if l.lineStart && !l.s.Done() {
		blank := l.scanIndentation()
		if !blank {
			l.lineStart = false
		}
		if len(l.pending) > 0 {
			return l.popPending()
		}
	}
	if l.s.Done() {
		return l.finalize()
	}
	return l.lexOne()
}

func (l *Lexer) popPending() Token {
	t := l.pending[0]
	l.pending = l.pending[1:]
	return t
}

// scanIndentation implements §4.1.2's indentation comparison. It consumes
// leading spaces/tabs, classifies the line as blank or real, and queues
// WHITESPACE plus any INDENT/DEDENT tokens the comparison produces. It
// returns whether the line turned out to be blank (in which case lineStart
// must remain true for the caller).
func (l *Lexer) scanIndentation() bool {
	start := l.s.Cursor()
	col := 0
	for {
		switch l.s.Peek() {
		case ' ':
			col++
			l.s.Eat()
			continue
		case '\t':
			col += 8
			l.s.Eat()
			continue
		}
		break
	}
	text := l.s.From(start)

	next := l.s.Peek()
	if next == 0 || next == '\n' || next == '\r' || next == '#' {
		if text != "" {
			l.pending = append(l.pending, Token{Kind: syntax.WHITESPACE, Text: text})
		}
		return true
	}

	if text != "" {
		l.pending = append(l.pending, Token{Kind: syntax.WHITESPACE, Text: text})
	}

	top := l.indentStack[len(l.indentStack)-1]
	switch {
	case col > top:
		l.indentStack = append(l.indentStack, col)
		l.pending = append(l.pending, Token{Kind: syntax.INDENT})
	case col == top:
		// no layout tokens
	default:
		for len(l.indentStack) > 1 && l.indentStack[len(l.indentStack)-1] > col {
			l.indentStack = l.indentStack[:len(l.indentStack)-1]
			l.pending = append(l.pending, Token{Kind: syntax.DEDENT})
		}
		if l.indentStack[len(l.indentStack)-1] != col {
			last := &l.pending[len(l.pending)-1]
			last.Diagnostic = syntax.NewDiagnostic(l.s.Cursor(),
				"Dedent amount does not match previous indentation")
		}
	}
	return false
}

// finalize drains the end-of-file layout tokens: a synthetic NEWLINE if
// the file didn't already end on one, then one DEDENT per open indent
// level (§4.1.2).
func (l *Lexer) finalize() Token {
	if !l.lineStart {
		l.pending = append(l.pending, Token{Kind: syntax.NEWLINE})
		l.lineStart = true
	}
	for len(l.indentStack) > 1 {
		l.indentStack = l.indentStack[:len(l.indentStack)-1]
		l.pending = append(l.pending, Token{Kind: syntax.DEDENT})
	}
	l.finished = true
	if len(l.pending) > 0 {
		return l.popPending()
	}
	return Token{Kind: syntax.EOF}
}

// lexOne scans exactly one real (non-layout) token starting at the
// scanner's current position.
func (l *Lexer) lexOne() Token {
	start := l.s.Cursor()
	c := l.s.Eat()

	switch {
	case c == '\n':
		return l.newline(start)
	case c == ' ' || c == '\t' || c == '\r':
		l.s.EatWhile(func(r rune) bool { return r == ' ' || r == '\t' || r == '\r' })
		return Token{Kind: syntax.WHITESPACE, Text: l.s.From(start)}
	case c == '#':
		l.s.EatUntil(func(r rune) bool { return r == '\n' || r == '\r' })
		return Token{Kind: syntax.COMMENT, Text: l.s.From(start)}
	case c == '(' || c == '[' || c == '{':
		l.parenDepth++
		return Token{Kind: bracketKind(c), Text: l.s.From(start)}
	case c == ')' || c == ']' || c == '}':
		if l.parenDepth > 0 {
			l.parenDepth--
		}
		return Token{Kind: bracketKind(c), Text: l.s.From(start)}
	case isStringPrefixLetter(c):
		return l.maybePrefixedString(start, c)
	case isIdentStart(c):
		return l.ident(start)
	case isDigit(c):
		return l.number(start)
	case c == '\'' || c == '"':
		l.s.jump(start) // stringLiteral consumes the opening quote itself
		return l.stringLiteral(start, "")
	default:
		return l.operator(start, c)
	}
}

// newline classifies the '\n' already consumed by lexOne, per §4.1.2:
// inside brackets it is non-significant WHITESPACE; otherwise it is a
// significant NEWLINE that arms the next call's indentation scan. A
// preceding '\r' has already been folded into the prior WHITESPACE token
// by the ' '/'\t'/'\r' case in lexOne, matching original_source's lexer
// (`\r` groups with space/tab, only `\n` drives the line-start state).
func (l *Lexer) newline(start int) Token {
	text := l.s.From(start)
	if l.parenDepth > 0 {
		return Token{Kind: syntax.WHITESPACE, Text: text}
	}
	l.lineStart = true
	return Token{Kind: syntax.NEWLINE, Text: text}
}

func bracketKind(c rune) syntax.SyntaxKind {
	switch c {
	case '(':
		return syntax.LPAREN
	case ')':
		return syntax.RPAREN
	case '[':
		return syntax.LBRACK
	case ']':
		return syntax.RBRACK
	case '{':
		return syntax.LBRACE
	default:
		return syntax.RBRACE
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentCont(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isStringPrefixLetter(r rune) bool {
	switch r {
	case 'r', 'R', 'b', 'B':
		return true
	}
	return false
}

// ident scans an identifier or keyword (§4.1.1). Strings with an `r`/`b`/
// `rb`/`br` prefix never reach it: lexOne routes those letters through
// maybePrefixedString first, which falls back to ident when no quote follows.
func (l *Lexer) ident(start int) Token {
	l.s.EatWhile(isIdentCont)
	text := l.s.From(start)
	if kind, ok := syntax.LookupKeyword(text); ok {
		return Token{Kind: kind, Text: text}
	}
	return Token{Kind: syntax.IDENT, Text: text}
}

// maybePrefixedString handles the `r`, `b`, `rb`, `br` string prefixes:
// if what looked like the start of an identifier is actually a one- or
// two-letter prefix directly followed by a quote, it is folded into the
// string token; otherwise it's an ordinary identifier.
func (l *Lexer) maybePrefixedString(start int, first rune) Token {
	save := l.s.Clone()
	prefix := string(first)
	if n := l.s.Peek(); isStringPrefixLetter(n) && isPrefixPair(first, n) {
		l.s.Eat()
		prefix += string(n)
	}
	if l.s.Peek() == '\'' || l.s.Peek() == '"' {
		return l.stringLiteral(start, strings.ToLower(prefix))
	}
	*l.s = *save
	return l.ident(start)
}

func isPrefixPair(a, b rune) bool {
	lowerA, lowerB := unicode.ToLower(a), unicode.ToLower(b)
	return (lowerA == 'r' && lowerB == 'b') || (lowerA == 'b' && lowerB == 'r')
}

// stringLiteral scans a single- or triple-quoted string/bytes literal
// (§4.1.1). prefix is the already-consumed lowercase prefix, if any; an
// `r` in it disables escape processing (a distinction this lexer, which
// does not interpret escapes at all, need not act on beyond recognizing
// where the literal ends).
func (l *Lexer) stringLiteral(start int, prefix string) Token {
	quote := l.s.Eat()
	triple := l.s.At(string(quote) + string(quote))
	if triple {
		l.s.Advance(2)
	}

	closer := string(quote)
	if triple {
		closer = strings.Repeat(string(quote), 3)
	}
	raw := strings.Contains(prefix, "r")

	for {
		if l.s.Done() {
			text := l.s.From(start)
			return Token{
				Kind: syntax.STRING,
				Text: text,
				Diagnostic: syntax.NewDiagnostic(start,
					"Unterminated string literal"),
			}
		}
		if !raw && l.s.Peek() == '\\' {
			l.s.Eat()
			if !l.s.Done() {
				l.s.Eat()
			}
			continue
		}
		if l.s.At(closer) {
			l.s.Advance(len(closer))
			return Token{Kind: syntax.STRING, Text: l.s.From(start)}
		}
		c := l.s.Peek()
		if !triple && (c == '\n' || c == '\r' || c == 0) {
			text := l.s.From(start)
			return Token{
				Kind: syntax.STRING,
				Text: text,
				Diagnostic: syntax.NewDiagnostic(start,
					"Unterminated string literal"),
			}
		}
		l.s.Eat()
	}
}

// number scans an integer or float literal (§4.1.1: the minimal core
// accepts decimal integers; floats are recognized when a `.` or exponent
// follows the digit run).
func (l *Lexer) number(start int) Token {
	l.s.EatWhile(isDigit)
	isFloat := false
	if l.s.Peek() == '.' && isDigit(l.s.Scout(1)) {
		isFloat = true
		l.s.Eat()
		l.s.EatWhile(isDigit)
	}
	if l.s.Peek() == 'e' || l.s.Peek() == 'E' {
		save := l.s.Clone()
		l.s.Eat()
		if l.s.Peek() == '+' || l.s.Peek() == '-' {
			l.s.Eat()
		}
		if isDigit(l.s.Peek()) {
			isFloat = true
			l.s.EatWhile(isDigit)
		} else {
			*l.s = *save
		}
	}
	kind := syntax.INT
	if isFloat {
		kind = syntax.FLOAT
	}
	return Token{Kind: kind, Text: l.s.From(start)}
}

// operator scans punctuation and operators, including the compound
// assignment and doubled forms of §4.1.1. Lookahead never exceeds two
// characters (§4.1.4).
func (l *Lexer) operator(start int, c rune) Token {
	kind, ok := l.operatorKind(c)
	if !ok {
		return Token{
			Kind: syntax.ERROR_TOKEN,
			Text: l.s.From(start),
			Diagnostic: syntax.NewDiagnostic(start,
				"Unexpected character"),
		}
	}
	return Token{Kind: kind, Text: l.s.From(start)}
}

func (l *Lexer) operatorKind(c rune) (syntax.SyntaxKind, bool) {
	switch c {
	case '+':
		if l.s.EatIf('=') {
			return syntax.PLUSEQ, true
		}
		return syntax.PLUS, true
	case '-':
		if l.s.EatIf('=') {
			return syntax.MINUSEQ, true
		}
		if l.s.EatIf('>') {
			return syntax.ARROW, true
		}
		return syntax.MINUS, true
	case '*':
		if l.s.EatIf('*') {
			return syntax.STARSTAR, true
		}
		if l.s.EatIf('=') {
			return syntax.STAREQ, true
		}
		return syntax.STAR, true
	case '/':
		if l.s.EatIf('/') {
			if l.s.EatIf('=') {
				return syntax.SLASHSLASHEQ, true
			}
			return syntax.SLASHSLASH, true
		}
		if l.s.EatIf('=') {
			return syntax.SLASHEQ, true
		}
		return syntax.SLASH, true
	case '%':
		if l.s.EatIf('=') {
			return syntax.PERCENTEQ, true
		}
		return syntax.PERCENT, true
	case '~':
		return syntax.TILDE, true
	case '&':
		if l.s.EatIf('=') {
			return syntax.AMPEQ, true
		}
		return syntax.AMP, true
	case '|':
		if l.s.EatIf('=') {
			return syntax.PIPEEQ, true
		}
		return syntax.PIPE, true
	case '^':
		if l.s.EatIf('=') {
			return syntax.CARETEQ, true
		}
		return syntax.CARET, true
	case '<':
		if l.s.EatIf('<') {
			if l.s.EatIf('=') {
				return syntax.LTLTEQ, true
			}
			return syntax.LTLT, true
		}
		if l.s.EatIf('=') {
			return syntax.LE, true
		}
		return syntax.LT, true
	case '>':
		if l.s.EatIf('>') {
			if l.s.EatIf('=') {
				return syntax.GTGTEQ, true
			}
			return syntax.GTGT, true
		}
		if l.s.EatIf('=') {
			return syntax.GE, true
		}
		return syntax.GT, true
	case '.':
		return syntax.DOT, true
	case ',':
		return syntax.COMMA, true
	case ':':
		return syntax.COLON, true
	case ';':
		return syntax.SEMI, true
	case '=':
		if l.s.EatIf('=') {
			return syntax.EQEQ, true
		}
		return syntax.EQ, true
	case '!':
		if l.s.EatIf('=') {
			return syntax.NE, true
		}
		return syntax.EOF, false
	default:
		return syntax.EOF, false
	}
}
