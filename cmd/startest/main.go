// Command startest extracts `// test` / `// test_err` annotated fixtures
// from one or more source files, writes each case's Starlark source under
// test_data/ok or test_data/err, parses it, and writes its debug tree dump
// alongside as a golden `.ast` file (§6). Grounded on cmd/gotypst/main.go's
// flag-based subcommand-free CLI shell (a single `flag.FlagSet`, no
// subcommands needed since this tool does exactly one thing).
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/star-ls/star-ls-go/parser"
	"github.com/star-ls/star-ls-go/syntax"
)

func main() {
	outDir := flag.String("out", "test_data", "output directory for extracted fixtures")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: startest [-out DIR] <fixture-file>...")
		os.Exit(1)
	}

	total := 0
	for _, path := range flag.Args() {
		n, err := processFile(path, *outDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		total += n
	}
	fmt.Printf("extracted %d fixture(s) into %s\n", total, *outDir)
}

func processFile(path, outDir string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	cases, err := Extract(f)
	if err != nil {
		return 0, err
	}

	for _, c := range cases {
		if err := writeCase(c, outDir); err != nil {
			return 0, err
		}
	}
	return len(cases), nil
}

func writeCase(c Case, outDir string) error {
	sub := "ok"
	if c.Err {
		sub = "err"
	}
	dir := filepath.Join(outDir, sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	srcPath := filepath.Join(dir, c.Name+".star")
	if err := os.WriteFile(srcPath, []byte(c.Code), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", srcPath, err)
	}

	tree, diags := parser.Parse(c.Code)
	astPath := srcPath + ".ast"
	if err := os.WriteFile(astPath, []byte(syntax.DumpString(tree, diags)), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", astPath, err)
	}
	return nil
}
