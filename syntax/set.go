package syntax

// KindSet is a set of syntax kinds implemented as a bitset. It can hold
// kinds with discriminator values less than 128, which every SyntaxKind
// satisfies (the enum is a uint8 with well under 128 entries).
//
// Based on rust-analyzer's TokenSet:
// https://github.com/rust-lang/rust-analyzer/blob/master/crates/parser/src/token_set.rs
// (by way of boergens/gotypst's SyntaxSet, the same idea applied to Typst).
type KindSet struct {
	lo uint64 // bits 0-63
	hi uint64 // bits 64-127
}

const maxSetBit = 128

// NewKindSet creates a new empty set.
func NewKindSet() KindSet {
	return KindSet{}
}

// KindSetOf creates a set containing the given kinds.
func KindSetOf(kinds ...SyntaxKind) KindSet {
	s := KindSet{}
	for _, k := range kinds {
		s = s.Add(k)
	}
	return s
}

// Add inserts a syntax kind into the set and returns the new set.
func (s KindSet) Add(kind SyntaxKind) KindSet {
	if kind < 64 {
		s.lo |= 1 << kind
	} else {
		s.hi |= 1 << (kind - 64)
	}
	return s
}

// Remove removes a syntax kind from the set and returns the new set.
func (s KindSet) Remove(kind SyntaxKind) KindSet {
	if kind < 64 {
		s.lo &^= 1 << kind
	} else {
		s.hi &^= 1 << (kind - 64)
	}
	return s
}

// Union combines two kind sets.
func (s KindSet) Union(other KindSet) KindSet {
	return KindSet{lo: s.lo | other.lo, hi: s.hi | other.hi}
}

// Contains returns true if the set contains the given syntax kind.
func (s KindSet) Contains(kind SyntaxKind) bool {
	if kind >= maxSetBit {
		return false
	}
	if kind < 64 {
		return (s.lo & (1 << kind)) != 0
	}
	return (s.hi & (1 << (kind - 64))) != 0
}

// IsEmpty returns true if the set contains no kinds.
func (s KindSet) IsEmpty() bool {
	return s.lo == 0 && s.hi == 0
}

// Predefined kind sets used by the parser (§4.2.4).

// StmtRecoverySet is the recovery set at statement level (§4.2.4): parsing
// resynchronizes by consuming tokens until one of these is reached.
var StmtRecoverySet = KindSetOf(NEWLINE, EOF, DEDENT)

// ExprBracketRecoverySet extends the statement recovery set with the
// closing tokens of the bracketed context currently open.
var ExprBracketRecoverySet = StmtRecoverySet.Add(RPAREN).Add(RBRACK).Add(RBRACE).Add(COLON)

// AssignOpSet contains the compound and plain assignment operators.
var AssignOpSet = KindSetOf(
	EQ, PLUSEQ, MINUSEQ, STAREQ, SLASHEQ, SLASHSLASHEQ, PERCENTEQ,
	AMPEQ, PIPEEQ, CARETEQ, LTLTEQ, GTGTEQ,
)

// UnaryOpSet contains the unary prefix operators.
var UnaryOpSet = KindSetOf(PLUS, MINUS, TILDE)

// AtomStartSet contains the kinds that can begin an AtomExpr (§4.2.3),
// used to decide whether an expression is present at all.
var AtomStartSet = KindSetOf(
	IDENT, INT, FLOAT, STRING, LPAREN, LBRACK, LBRACE, MINUS, PLUS, TILDE,
	NOT, LAMBDA,
)

// TestStartSet is the same set as AtomStartSet, which already includes the
// `lambda` and unary `not` forms that only appear at the Test level.
var TestStartSet = AtomStartSet

// SmallStmtRecoverySet is the set a bad character inside a small statement
// recovers to (§4.2.4 rule 4): it does not discard the whole line, only
// resynchronizes at the next NEWLINE.
var SmallStmtRecoverySet = KindSetOf(NEWLINE, EOF)
