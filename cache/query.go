// This file declares the closed query set of §4.4.1 ("parse(file) -> Parse
// and lines(file) -> LineIndex suffice for the core") plus typed
// convenience wrappers over Snapshot.Force, grounded on
// original_source/crates/star_db/src/lib.rs's `#[salsa::tracked] fn parse`
// / `fn lines` query functions.
package cache

import (
	"fmt"

	"github.com/star-ls/star-ls-go/parser"
	"github.com/star-ls/star-ls-go/syntax"
)

// queryID names one of the closed set of derived queries the cache knows
// how to compute and memoize.
type queryID uint8

const (
	queryParse queryID = iota
	queryLines
)

// memoKey identifies one memo table entry: a query id, the path it was run
// against, and the file revision it was produced from. Folding the
// "produced-at-revision" check into the key itself (rather than storing it
// alongside the value and comparing) means a stale entry is simply never
// looked up again, rather than invalidated — the memo table grows but is
// never explicitly evicted, which is acceptable for the process lifetime
// semantics §3 specifies.
type memoKey struct {
	query    queryID
	path     string
	revision uint64
}

// ParseResult is the memoized value of the parse(file) query.
type ParseResult struct {
	Tree        *syntax.GreenNode
	Diagnostics []*syntax.Diagnostic
}

func runQuery(query queryID, text string) (any, error) {
	switch query {
	case queryParse:
		tree, diags := parser.Parse(text)
		return &ParseResult{Tree: tree, Diagnostics: diags}, nil
	case queryLines:
		return syntax.NewLineIndex(text), nil
	default:
		return nil, fmt.Errorf("cache: unknown query id %d", query)
	}
}

// Parse forces the parse(file) query for path.
func (s *Snapshot) Parse(path string) (*ParseResult, error) {
	v, err := s.Force(queryParse, path)
	if err != nil {
		return nil, err
	}
	return v.(*ParseResult), nil
}

// Lines forces the lines(file) query for path.
func (s *Snapshot) Lines(path string) (*syntax.LineIndex, error) {
	v, err := s.Force(queryLines, path)
	if err != nil {
		return nil, err
	}
	return v.(*syntax.LineIndex), nil
}
