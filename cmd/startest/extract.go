// Package main implements the fixture-extraction tool of §6: it scans
// source files for `// test <name>` / `// test_err <name>` annotated
// blocks and writes each block's code to test_data/ok|err/<name>.star plus
// its parsed debug dump to <name>.star.ast. Grounded on
// tests/harness.go's LoadFixture (bufio.Scanner line walk, regexp-matched
// directive lines, one TestCase per delimiter run) re-targeted at spec.md
// §6's comment-prefix format instead of Typst's `--- name attrs ---`
// delimiters.
package main

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// directiveRegex matches a `// test name` or `// test_err name` line.
var directiveRegex = regexp.MustCompile(`^//\s*test(_err)?\s+([a-zA-Z0-9_-]+)\s*$`)

// Case is one extracted fixture: a name, whether it is expected to produce
// diagnostics (err) or not (ok), and its Starlark source.
type Case struct {
	Name string
	Err  bool
	Code string
}

// Extract scans r for directive-delimited blocks and returns one Case per
// directive encountered, in file order. A block's code runs from the line
// after its directive up to (but not including) the next directive line or
// end of file, with leading/trailing blank lines trimmed.
func Extract(r io.Reader) ([]Case, error) {
	scanner := bufio.NewScanner(r)
	var cases []Case
	var current *Case
	var code strings.Builder

	flush := func() {
		if current == nil {
			return
		}
		current.Code = strings.Trim(code.String(), "\n")
		cases = append(cases, *current)
	}

	for scanner.Scan() {
		line := scanner.Text()
		if m := directiveRegex.FindStringSubmatch(line); m != nil {
			flush()
			current = &Case{Name: m[2], Err: m[1] == "_err"}
			code.Reset()
			continue
		}
		if current != nil {
			code.WriteString(line)
			code.WriteString("\n")
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("startest: scanning fixture: %w", err)
	}
	return cases, nil
}
