package form

import (
	"cmp"
	"strings"
)

// Compare returns an integer comparing two nodes. The result is 0 if
// a == b, -1 if a < b, and +1 if a > b. Nodes order first by type,
// then by content; nil sorts before everything.
//
// Maps compare entry by entry in insertion order, so two maps holding
// the same entries in different orders are unequal.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	if c := cmp.Compare(rank(a.Type), rank(b.Type)); c != 0 {
		return c
	}

	switch a.Type {
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case IntType:
		return cmp.Compare(a.Int, b.Int)
	case FloatType:
		return cmp.Compare(a.Float, b.Float)
	case StringType:
		return strings.Compare(a.Str, b.Str)
	case ListType:
		return compareLists(a, b)
	case MapType:
		return compareMaps(a, b)
	}
	return 0
}

// Equal reports whether a and b hold structurally identical trees.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

// rank returns the sorting rank of a type.
// Order: Invalid < Null < Bool < Int < Float < String < List < Map
func rank(t Type) int {
	switch t {
	case InvalidType:
		return 0
	case NullType:
		return 1
	case BoolType:
		return 2
	case IntType:
		return 3
	case FloatType:
		return 4
	case StringType:
		return 5
	case ListType:
		return 6
	case MapType:
		return 7
	}
	return 100
}

func compareLists(a, b *Node) int {
	minLen := min(len(a.Values), len(b.Values))
	for i := 0; i < minLen; i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a.Values), len(b.Values))
}

func compareMaps(a, b *Node) int {
	minLen := min(len(a.Fields), len(b.Fields))
	for i := 0; i < minLen; i++ {
		if c := strings.Compare(a.Fields[i], b.Fields[i]); c != 0 {
			return c
		}
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a.Fields), len(b.Fields))
}
