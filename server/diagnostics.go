// This file converts internal syntax.Diagnostic values into the outbound
// publish_diagnostics shape of §6 ("Diagnostic = {severity: Error, range:
// {start: {line, col}, end: {line, col}}, message}"), using
// syntax.LineIndex for the byte-offset-to-(line,col) conversion.
package server

import "github.com/star-ls/star-ls-go/syntax"

// Severity names a diagnostic's severity. The core only ever produces
// Error-severity diagnostics (§6); the type exists so a richer transport
// layered on top of this core has somewhere to grow.
type Severity int

// SeverityError is the only severity this core emits.
const SeverityError Severity = 0

// Position is a 0-indexed (line, column) pair, column counted in UTF-8
// characters (§6, §8 property 4).
type Position struct {
	Line   int
	Column int
}

// Range is a half-open [Start, End) position pair.
type Range struct {
	Start Position
	End   Position
}

// PublishedDiagnostic is the outbound shape §6 specifies. Since
// syntax.Diagnostic carries only a point offset (not a span — no pack
// example or spec.md definition gives the lexer/parser a span-producing
// API), Start and End are always equal: a zero-width range anchored at the
// offending byte.
type PublishedDiagnostic struct {
	Severity Severity
	Range    Range
	Message  string
}

// ToPublished converts one diagnostic using lines for offset conversion.
func ToPublished(d *syntax.Diagnostic, lines *syntax.LineIndex) PublishedDiagnostic {
	line, col := lines.ByteToLineColumn(d.Offset)
	pos := Position{Line: line, Column: col}
	return PublishedDiagnostic{Severity: SeverityError, Range: Range{Start: pos, End: pos}, Message: d.Message}
}

// ToPublishedAll converts a diagnostic slice, preserving order.
func ToPublishedAll(diags []*syntax.Diagnostic, lines *syntax.LineIndex) []PublishedDiagnostic {
	out := make([]PublishedDiagnostic, len(diags))
	for i, d := range diags {
		out[i] = ToPublished(d, lines)
	}
	return out
}
