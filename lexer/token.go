package lexer

import "github.com/star-ls/star-ls-go/syntax"

// Token is one lexical unit: a kind, the text it spans, and an optional
// diagnostic raised while producing it (§4.1.3). Layout tokens (INDENT,
// DEDENT) carry an empty Text — they are zero-length by construction.
type Token struct {
	Kind       syntax.SyntaxKind
	Text       string
	Diagnostic *syntax.Diagnostic
}
