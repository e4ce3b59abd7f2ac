package form

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Type identifies the kind of value a Node holds.
type Type uint8

const (
	InvalidType Type = iota
	NullType
	BoolType
	IntType
	FloatType
	StringType
	ListType
	MapType
)

func (t Type) String() string {
	switch t {
	case InvalidType:
		return "invalid"
	case NullType:
		return "null"
	case BoolType:
		return "bool"
	case IntType:
		return "int"
	case FloatType:
		return "float"
	case StringType:
		return "string"
	case ListType:
		return "list"
	case MapType:
		return "map"
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Node is one value in a form tree.
//
// The tree works as a recursive tagged union: the Type field says
// which of the other fields carry the value. Scalars live in Str,
// Bool, Int, or Float. Lists keep their elements in Values. Maps keep
// keys in Fields and the value for Fields[i] at Values[i], preserving
// insertion order.
//
// The zero value has InvalidType; use the constructors.
type Node struct {
	Type Type

	// Fields holds map keys, parallel to Values. Unused for other
	// node types.
	Fields []string
	// Values holds list elements, or map values parallel to Fields.
	Values []*Node

	Str   string
	Bool  bool
	Int   int64
	Float float64
}

// Null returns a null node.
func Null() *Node {
	return &Node{Type: NullType}
}

// FromString returns a string node holding v.
func FromString(v string) *Node {
	return &Node{Type: StringType, Str: v}
}

// FromBool returns a bool node holding v.
func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

// FromInt returns an int node holding v.
func FromInt(v int64) *Node {
	return &Node{Type: IntType, Int: v}
}

// FromFloat returns a float node holding v.
func FromFloat(v float64) *Node {
	return &Node{Type: FloatType, Float: v}
}

// List returns an empty list node. Elements are added with Append.
func List() *Node {
	return &Node{Type: ListType}
}

// Map returns an empty map node. Entries are added with Set.
func Map() *Node {
	return &Node{Type: MapType}
}

// FromSlice returns a list node holding elems. The slice is used
// directly, not copied.
func FromSlice(elems []*Node) *Node {
	return &Node{Type: ListType, Values: elems}
}

// FromMap returns a map node with m's entries in sorted key order.
func FromMap(m map[string]*Node) *Node {
	res := &Node{
		Type:   MapType,
		Fields: make([]string, 0, len(m)),
		Values: make([]*Node, 0, len(m)),
	}
	for _, key := range slices.Sorted(maps.Keys(m)) {
		res.Fields = append(res.Fields, key)
		res.Values = append(res.Values, m[key])
	}
	return res
}

// KeyVal pairs a map key with its value.
type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals returns a map node holding kvs in the given order.
func FromKeyVals(kvs ...KeyVal) *Node {
	res := &Node{
		Type:   MapType,
		Fields: make([]string, len(kvs)),
		Values: make([]*Node, len(kvs)),
	}
	for i, kv := range kvs {
		res.Fields[i] = kv.Key
		res.Values[i] = kv.Val
	}
	return res
}

// Get returns the value stored under field, or nil when n is not a
// map node or has no such entry.
func (n *Node) Get(field string) *Node {
	if n == nil || n.Type != MapType {
		return nil
	}
	for i := range n.Fields {
		if n.Fields[i] == field {
			return n.Values[i]
		}
	}
	return nil
}

// Set stores val under field, replacing an existing entry in place
// and otherwise appending a new one. n must be a map node. It returns
// n for chaining.
func (n *Node) Set(field string, val *Node) *Node {
	for i := range n.Fields {
		if n.Fields[i] == field {
			n.Values[i] = val
			return n
		}
	}
	n.Fields = append(n.Fields, field)
	n.Values = append(n.Values, val)
	return n
}

// Append adds elements to a list node and returns n for chaining.
func (n *Node) Append(elems ...*Node) *Node {
	n.Values = append(n.Values, elems...)
	return n
}

// Index returns the i'th element of a list node, or nil when n is not
// a list or i is out of range.
func (n *Node) Index(i int) *Node {
	if n == nil || n.Type != ListType || i < 0 || i >= len(n.Values) {
		return nil
	}
	return n.Values[i]
}

// Lookup resolves a dotted path like "spec.containers[0].name"
// against the tree. Path segments name map fields; a segment may be
// followed by one or more [i] list indexes, and a path may start with
// an index into a root list (e.g. "[2].id"). Lookup returns nil when
// any step does not resolve. The empty path returns n.
func (n *Node) Lookup(path string) *Node {
	res := n
	if path == "" {
		return res
	}
	for _, seg := range strings.Split(path, ".") {
		field, rest := seg, ""
		if i := strings.IndexByte(seg, '['); i >= 0 {
			field, rest = seg[:i], seg[i:]
		}
		if field == "" && rest == "" {
			return nil
		}
		if field != "" {
			res = res.Get(field)
			if res == nil {
				return nil
			}
		}
		for rest != "" {
			end := strings.IndexByte(rest, ']')
			if rest[0] != '[' || end < 0 {
				return nil
			}
			idx, err := strconv.Atoi(rest[1:end])
			if err != nil {
				return nil
			}
			res = res.Index(idx)
			if res == nil {
				return nil
			}
			rest = rest[end+1:]
		}
	}
	return res
}

// Clone returns a deep copy of the tree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	res := &Node{
		Type:  n.Type,
		Str:   n.Str,
		Bool:  n.Bool,
		Int:   n.Int,
		Float: n.Float,
	}
	if n.Fields != nil {
		res.Fields = slices.Clone(n.Fields)
	}
	if n.Values != nil {
		res.Values = make([]*Node, len(n.Values))
		for i, v := range n.Values {
			res.Values[i] = v.Clone()
		}
	}
	return res
}

// ToAny converts the tree to plain Go values: nil, bool, int64,
// float64, string, []any, and map[string]any. Map insertion order is
// lost. Invalid nodes convert to nil.
func (n *Node) ToAny() any {
	if n == nil {
		return nil
	}
	switch n.Type {
	case BoolType:
		return n.Bool
	case IntType:
		return n.Int
	case FloatType:
		return n.Float
	case StringType:
		return n.Str
	case ListType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = v.ToAny()
		}
		return res
	case MapType:
		res := make(map[string]any, len(n.Fields))
		for i, f := range n.Fields {
			res[f] = n.Values[i].ToAny()
		}
		return res
	default:
		return nil
	}
}

// FromAny converts plain Go values to a tree. It accepts the kinds
// produced by encoding/json and go-yaml: nil, bool, string, all int,
// uint, and float kinds, json.Number, []any, map[string]any, and
// map[any]any with string keys. Map entries are taken in sorted key
// order.
func FromAny(v any) (*Node, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(t), nil
	case string:
		return FromString(t), nil
	case int:
		return FromInt(int64(t)), nil
	case int8:
		return FromInt(int64(t)), nil
	case int16:
		return FromInt(int64(t)), nil
	case int32:
		return FromInt(int64(t)), nil
	case int64:
		return FromInt(t), nil
	case uint:
		return fromUint(uint64(t))
	case uint8:
		return FromInt(int64(t)), nil
	case uint16:
		return FromInt(int64(t)), nil
	case uint32:
		return FromInt(int64(t)), nil
	case uint64:
		return fromUint(t)
	case float32:
		return FromFloat(float64(t)), nil
	case float64:
		return FromFloat(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return FromInt(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", t.String())
		}
		return FromFloat(f), nil
	case []any:
		res := List()
		for i, el := range t {
			n, err := FromAny(el)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			res.Append(n)
		}
		return res, nil
	case map[string]any:
		res := Map()
		for _, key := range slices.Sorted(maps.Keys(t)) {
			n, err := FromAny(t[key])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			res.Set(key, n)
		}
		return res, nil
	case map[any]any:
		m := make(map[string]any, len(t))
		for key, val := range t {
			s, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("map key %v is not a string", key)
			}
			m[s] = val
		}
		return FromAny(m)
	default:
		return nil, fmt.Errorf("cannot convert %T to a node", v)
	}
}

func fromUint(v uint64) (*Node, error) {
	if v > math.MaxInt64 {
		return nil, fmt.Errorf("integer %d overflows int64", v)
	}
	return FromInt(int64(v)), nil
}
