package lexer

import (
	"testing"

	"github.com/star-ls/star-ls-go/syntax"
)

func tokenKinds(text string) []syntax.SyntaxKind {
	l := NewLexer(text)
	var kinds []syntax.SyntaxKind
	for {
		tok := l.Next()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == syntax.EOF {
			break
		}
	}
	return kinds
}

func roundTrip(t *testing.T, text string) {
	t.Helper()
	l := NewLexer(text)
	var got string
	for {
		tok := l.Next()
		if tok.Kind == syntax.EOF {
			break
		}
		got += tok.Text
	}
	if got != text {
		t.Errorf("round trip mismatch:\n got  %q\n want %q", got, text)
	}
}

func TestLexerEmptyFile(t *testing.T) {
	kinds := tokenKinds("")
	if len(kinds) != 1 || kinds[0] != syntax.EOF {
		t.Errorf("empty file: got %v, want [EOF]", kinds)
	}
}

func TestLexerRoundTripSimple(t *testing.T) {
	roundTrip(t, "x = 1\n")
	roundTrip(t, "def f(x):\n    return x\n")
	roundTrip(t, "(1, 2, 3)")
	roundTrip(t, "[x for x in y if x]\n")
}

func TestLexerRoundTripNoTrailingNewline(t *testing.T) {
	roundTrip(t, "x = 1")
}

func TestLexerRoundTripBlankLines(t *testing.T) {
	roundTrip(t, "x = 1\n\n\ny = 2\n")
}

func TestLexerRoundTripComment(t *testing.T) {
	roundTrip(t, "# just a comment")
}

func TestLexerRoundTripUnterminatedString(t *testing.T) {
	roundTrip(t, "'unterminated")
}

func TestLexerKeywordVsIdent(t *testing.T) {
	l := NewLexer("def deferred")
	first := l.Next()
	if first.Kind != syntax.DEF {
		t.Errorf("first token kind = %v, want DEF", first.Kind)
	}
	// consume the whitespace
	ws := l.Next()
	if ws.Kind != syntax.WHITESPACE {
		t.Fatalf("expected whitespace, got %v", ws.Kind)
	}
	second := l.Next()
	if second.Kind != syntax.IDENT || second.Text != "deferred" {
		t.Errorf("second token = %v %q, want IDENT \"deferred\"", second.Kind, second.Text)
	}
}

func TestLexerIndentDedent(t *testing.T) {
	kinds := tokenKinds("if x:\n    y\n")
	wantContains := []syntax.SyntaxKind{syntax.INDENT, syntax.DEDENT}
	for _, w := range wantContains {
		found := false
		for _, k := range kinds {
			if k == w {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected kind %v in token stream %v", w, kinds)
		}
	}
}

func TestLexerNestedIndentMismatchDiagnostic(t *testing.T) {
	// Dedent to a column that doesn't match any entry on the stack.
	l := NewLexer("if x:\n        y\n    z\n")
	var diag *syntax.Diagnostic
	for {
		tok := l.Next()
		if tok.Diagnostic != nil {
			diag = tok.Diagnostic
		}
		if tok.Kind == syntax.EOF {
			break
		}
	}
	if diag == nil {
		t.Error("expected a dedent-mismatch diagnostic, got none")
	}
}

func TestLexerParenSuppressesNewline(t *testing.T) {
	kinds := tokenKinds("(1,\n2)\n")
	for _, k := range kinds {
		if k == syntax.INDENT || k == syntax.DEDENT {
			t.Errorf("layout token %v should not appear inside parens", k)
		}
	}
}

func TestLexerTripleQuotedStringWithNewline(t *testing.T) {
	text := "x = \"\"\"a\nb\"\"\"\n"
	l := NewLexer(text)
	var stringTok Token
	for {
		tok := l.Next()
		if tok.Kind == syntax.STRING {
			stringTok = tok
		}
		if tok.Kind == syntax.EOF {
			break
		}
	}
	if stringTok.Diagnostic != nil {
		t.Errorf("triple-quoted string should not be unterminated, got %v", stringTok.Diagnostic)
	}
	if stringTok.Text != "\"\"\"a\nb\"\"\"" {
		t.Errorf("string text = %q", stringTok.Text)
	}
}

func TestLexerRawStringPrefix(t *testing.T) {
	l := NewLexer(`r'\n'`)
	tok := l.Next()
	if tok.Kind != syntax.STRING || tok.Text != `r'\n'` {
		t.Errorf("got %v %q, want STRING %q", tok.Kind, tok.Text, `r'\n'`)
	}
}

func TestLexerOperators(t *testing.T) {
	kinds := tokenKinds("+= -= ** // == != <= >= << >>")
	want := []syntax.SyntaxKind{
		syntax.PLUSEQ, syntax.WHITESPACE, syntax.MINUSEQ, syntax.WHITESPACE,
		syntax.STARSTAR, syntax.WHITESPACE, syntax.SLASHSLASH, syntax.WHITESPACE,
		syntax.EQEQ, syntax.WHITESPACE, syntax.NE, syntax.WHITESPACE,
		syntax.LE, syntax.WHITESPACE, syntax.GE, syntax.WHITESPACE,
		syntax.LTLT, syntax.WHITESPACE, syntax.GTGT, syntax.NEWLINE, syntax.EOF,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kind[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestLexerUnexpectedCharacter(t *testing.T) {
	l := NewLexer("$")
	tok := l.Next()
	if tok.Kind != syntax.ERROR_TOKEN {
		t.Errorf("got %v, want ERROR_TOKEN", tok.Kind)
	}
	if tok.Diagnostic == nil {
		t.Error("expected a diagnostic for an unexpected character")
	}
}

func TestLexerCommentOnlyAtEOF(t *testing.T) {
	kinds := tokenKinds("# trailing, no newline")
	last := kinds[len(kinds)-1]
	if last != syntax.EOF {
		t.Errorf("last kind = %v, want EOF", last)
	}
}
