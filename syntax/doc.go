// Package syntax provides the lossless concrete syntax tree (CST) for
// Starlark source: the SyntaxKind enumeration, the KindSet bitset used for
// parser predict/recovery sets, the green/red tree pair, and the line index
// used to convert byte offsets to line/column positions.
package syntax
