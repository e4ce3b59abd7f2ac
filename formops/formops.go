// Package formops implements codec.Ops over *form.Node trees. It is
// the framework's reference form: strict extractors, insertion-order
// map views, and no key compression.
package formops

import (
	"fmt"
	"slices"

	"github.com/anyform/go-anyform/codec"
	"github.com/anyform/go-anyform/form"
	"github.com/anyform/go-anyform/result"
)

// Default is the Ops singleton over *form.Node.
var Default codec.Ops[*form.Node] = ops{}

type ops struct{}

func (ops) Empty() *form.Node { return form.Null() }

func (ops) IsEmpty(n *form.Node) bool {
	return n == nil || n.Type == form.NullType
}

func (ops) CreateString(s string) *form.Node { return form.FromString(s) }

func (ops) StringValue(n *form.Node) result.Result[string] {
	if n != nil && n.Type == form.StringType {
		return result.Success(n.Str)
	}
	return result.Errorf[string]("not a string: %v", n)
}

func (ops) CreateBool(b bool) *form.Node { return form.FromBool(b) }

func (ops) BoolValue(n *form.Node) result.Result[bool] {
	if n != nil && n.Type == form.BoolType {
		return result.Success(n.Bool)
	}
	return result.Errorf[bool]("not a bool: %v", n)
}

func (ops) CreateInt(i int64) *form.Node { return form.FromInt(i) }

func (ops) IntValue(n *form.Node) result.Result[int64] {
	if n != nil && n.Type == form.IntType {
		return result.Success(n.Int)
	}
	return result.Errorf[int64]("not an int: %v", n)
}

func (ops) CreateFloat(f float64) *form.Node { return form.FromFloat(f) }

func (ops) FloatValue(n *form.Node) result.Result[float64] {
	if n != nil {
		switch n.Type {
		case form.FloatType:
			return result.Success(n.Float)
		case form.IntType:
			return result.Success(float64(n.Int))
		}
	}
	return result.Errorf[float64]("not a number: %v", n)
}

func (ops) CreateList(values []*form.Node) *form.Node {
	return form.FromSlice(slices.Clone(values))
}

func (ops) ListValue(n *form.Node) result.Result[[]*form.Node] {
	if n != nil && n.Type == form.ListType {
		return result.Success(slices.Clone(n.Values))
	}
	return result.Errorf[[]*form.Node]("not a list: %v", n)
}

func (ops) CreateMap(entries []codec.MapEntry[*form.Node]) *form.Node {
	res := form.Map()
	for _, e := range entries {
		if e.Key != nil && e.Key.Type == form.StringType {
			res.Set(e.Key.Str, e.Value)
		}
	}
	return res
}

func (ops) MapValue(n *form.Node) result.Result[codec.MapLike[*form.Node]] {
	if n == nil || n.Type != form.MapType {
		return result.Errorf[codec.MapLike[*form.Node]]("not a map: %v", n)
	}
	return result.Success[codec.MapLike[*form.Node]](mapLike{node: n})
}

func (o ops) MergeToMap(target *form.Node, entries []codec.MapEntry[*form.Node]) result.Result[*form.Node] {
	var out *form.Node
	switch {
	case o.IsEmpty(target):
		out = form.Map()
	case target.Type == form.MapType:
		out = &form.Node{
			Type:   form.MapType,
			Fields: slices.Clone(target.Fields),
			Values: slices.Clone(target.Values),
		}
	default:
		return result.ErrorPartial(fmt.Sprintf("cannot merge entries into %v: not a map", target), target)
	}
	for _, e := range entries {
		if e.Key == nil || e.Key.Type != form.StringType {
			return result.ErrorPartial(fmt.Sprintf("key %v is not a string", e.Key), out)
		}
		out.Set(e.Key.Str, e.Value)
	}
	return result.Success(out)
}

func (o ops) MapBuilder() codec.RecordBuilder[*form.Node] {
	return codec.NewMapBuilder[*form.Node](o)
}

func (ops) CompressMaps() bool { return false }

// mapLike serves map entries in the node's field order.
type mapLike struct {
	node *form.Node
}

func (m mapLike) Get(key *form.Node) (*form.Node, bool) {
	if key == nil || key.Type != form.StringType {
		return nil, false
	}
	return m.GetString(key.Str)
}

func (m mapLike) GetString(key string) (*form.Node, bool) {
	for i, f := range m.node.Fields {
		if f == key {
			return m.node.Values[i], true
		}
	}
	return nil, false
}

func (m mapLike) Entries() []codec.MapEntry[*form.Node] {
	entries := make([]codec.MapEntry[*form.Node], 0, len(m.node.Fields))
	for i, f := range m.node.Fields {
		entries = append(entries, codec.MapEntry[*form.Node]{
			Key:   form.FromString(f),
			Value: m.node.Values[i],
		})
	}
	return entries
}
