// This file is a Go translation, extended per SPEC_FULL.md §C.1, of the
// Lines acceleration structure in typst-syntax/src/source.go (itself from
// source.rs in the original Typst compiler, and from star_ide::lines in
// the Starlark original this spec distills — see original_source/crates/
// star_ide/src/lines.rs).
package syntax

import (
	"unicode/utf16"
	"unicode/utf8"
)

// LineIndex is a sorted vector of line start offsets for a source text:
// 0, then the offset just past every '\n' (§3). It supports O(log n) conversion from a byte offset to
// a (line, column) pair, with column counted in UTF-8 characters per §8
// property 4; ByteToUTF16Column additionally counts in UTF-16 code units,
// since a real LSP transport (external to this spec, §1) reports
// positions that way.
type LineIndex struct {
	text       string
	lineStarts []int // byte offset of the start of each line; lineStarts[0] == 0
}

// NewLineIndex builds a LineIndex over text.
func NewLineIndex(text string) *LineIndex {
	li := &LineIndex{text: text, lineStarts: []int{0}}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			li.lineStarts = append(li.lineStarts, i+1)
		}
	}
	return li
}

// LineCount returns the number of lines.
func (li *LineIndex) LineCount() int { return len(li.lineStarts) }

// LineStart returns the byte offset where the given 0-indexed line begins.
func (li *LineIndex) LineStart(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(li.lineStarts) {
		return len(li.text)
	}
	return li.lineStarts[line]
}

// LineEnd returns the byte offset where the given 0-indexed line ends
// (exclusive of its trailing newline, or end-of-text for the last line).
func (li *LineIndex) LineEnd(line int) int {
	if line < 0 {
		return 0
	}
	if line+1 >= len(li.lineStarts) {
		return len(li.text)
	}
	end := li.lineStarts[line+1] - 1
	if end < li.LineStart(line) {
		end = li.LineStart(line)
	}
	return end
}

// ByteToLine returns the 0-indexed line containing the byte offset.
func (li *LineIndex) ByteToLine(offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= len(li.text) {
		return len(li.lineStarts) - 1
	}
	lo, hi := 0, len(li.lineStarts)
	for lo < hi {
		mid := lo + (hi-lo)/2
		if li.lineStarts[mid] <= offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo - 1
}

// ByteToLineColumn converts a byte offset to a 0-indexed (line, column)
// pair, column counted in UTF-8 characters (§8 property 4).
func (li *LineIndex) ByteToLineColumn(offset int) (line, column int) {
	line = li.ByteToLine(offset)
	start := li.lineStarts[line]
	if offset < start {
		offset = start
	}
	if offset > len(li.text) {
		offset = len(li.text)
	}
	column = utf8.RuneCountInString(li.text[start:offset])
	return
}

// ByteToUTF16Column converts a byte offset to its 0-indexed column counted
// in UTF-16 code units, for consumers (an LSP transport, external to this
// spec) that report positions that way.
func (li *LineIndex) ByteToUTF16Column(offset int) int {
	line := li.ByteToLine(offset)
	start := li.lineStarts[line]
	if offset < start {
		offset = start
	}
	if offset > len(li.text) {
		offset = len(li.text)
	}
	units := 0
	for _, r := range li.text[start:offset] {
		units += len(utf16.Encode([]rune{r}))
	}
	return units
}

// LineColumnToByte converts a 0-indexed (line, column) pair (column in
// UTF-8 characters) back to a byte offset. Returns -1 for an invalid line.
func (li *LineIndex) LineColumnToByte(line, column int) int {
	if line < 0 || line >= len(li.lineStarts) {
		return -1
	}
	start := li.LineStart(line)
	end := li.LineEnd(line)
	lineText := li.text[start:end]
	byteOffset := 0
	charCount := 0
	for _, r := range lineText {
		if charCount >= column {
			break
		}
		byteOffset += utf8.RuneLen(r)
		charCount++
	}
	return start + byteOffset
}
