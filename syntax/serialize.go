// This file implements the debug tree-dump format of spec.md §6: a
// human-readable, script-diffable rendering of a parsed file, grounded on
// the `Dump`-style debug writers conventional in this corpus's parsers
// (see opal-lang-opal's AST printers) but shaped to the tree-plus-
// diagnostics-trailer layout §6 specifies exactly.
package syntax

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Dump writes the §6 debug serialization of a parsed file to w: one line
// per node, `<Kind>@<start>..<end>` for an inner node and
// `<Kind>@<start>..<end> "<token-text>"` for a leaf, indented two spaces
// per tree level, followed by a blank line and one `<offset>:<message>`
// line per diagnostic, sorted by offset.
func Dump(w io.Writer, root *GreenNode, diagnostics []*Diagnostic) error {
	cursor := NewRedCursor(root)
	if err := dumpNode(w, cursor, 0); err != nil {
		return err
	}
	if len(diagnostics) == 0 {
		return nil
	}
	sorted := make([]*Diagnostic, len(diagnostics))
	copy(sorted, diagnostics)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	for _, d := range sorted {
		if _, err := fmt.Fprintf(w, "%s\n", d.String()); err != nil {
			return err
		}
	}
	return nil
}

func dumpNode(w io.Writer, c *RedCursor, depth int) error {
	indent := strings.Repeat("  ", depth)
	start, end := c.Range()
	if c.Green().IsLeaf() {
		_, err := fmt.Fprintf(w, "%s%s@%d..%d %s\n", indent, c.Kind().Tag(), start, end, quote(c.Text()))
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%s@%d..%d\n", indent, c.Kind().Tag(), start, end); err != nil {
		return err
	}
	for _, child := range c.Children() {
		if err := dumpNode(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// DumpString renders Dump's output as a string, for golden-file comparison
// in tests.
func DumpString(root *GreenNode, diagnostics []*Diagnostic) string {
	var sb strings.Builder
	_ = Dump(&sb, root, diagnostics)
	return sb.String()
}
