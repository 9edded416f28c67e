package syntax

import "fmt"

// Diagnostic is a single lexer- or parser-reported problem, attached to a
// byte offset in the source text (§3). Lexer diagnostics are attached at
// the offset of the token that surfaced them; parser diagnostics at the
// parser's current offset when the problem was detected.
type Diagnostic struct {
	Message string
	Offset  int
}

// NewDiagnostic creates a diagnostic at the given byte offset.
func NewDiagnostic(offset int, message string) *Diagnostic {
	return &Diagnostic{Message: message, Offset: offset}
}

// Error implements the error interface so Diagnostic can be used wherever
// a plain error is expected (golden-file comparisons, for instance).
func (d *Diagnostic) Error() string {
	return d.Message
}

// String implements fmt.Stringer, matching the "<offset>:<message>" shape
// the §6 debug serialization format uses for the diagnostic trailer.
func (d *Diagnostic) String() string {
	return fmt.Sprintf("%d:%s", d.Offset, d.Message)
}
