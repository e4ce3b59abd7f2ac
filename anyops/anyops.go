// Package anyops implements codec.Ops over plain any trees, the shape
// encoding/json and go-yaml produce: nil, bool, numbers, string,
// []any, and map[string]any.
//
// Numbers are loose on the way out, matching JSON's single number
// type: IntValue accepts any integral numeric value and FloatValue
// any numeric value. Map entries iterate in sorted key order, so
// encoding is deterministic even though Go maps are not.
package anyops

import (
	"fmt"
	"math"
	"sort"

	"github.com/anyform/go-anyform/codec"
	"github.com/anyform/go-anyform/result"
)

var (
	// Default is the Ops singleton over any trees.
	Default codec.Ops[any] = ops{}
	// Compressed is Default with key compression: map-shaped codecs
	// read and write positional lists instead of keyed maps.
	Compressed codec.Ops[any] = ops{compressed: true}
)

type ops struct{ compressed bool }

func (ops) Empty() any         { return nil }
func (ops) IsEmpty(v any) bool { return v == nil }

func (ops) CreateString(s string) any { return s }

func (ops) StringValue(v any) result.Result[string] {
	if s, ok := v.(string); ok {
		return result.Success(s)
	}
	return result.Errorf[string]("not a string: %v", v)
}

func (ops) CreateBool(b bool) any { return b }

func (ops) BoolValue(v any) result.Result[bool] {
	if b, ok := v.(bool); ok {
		return result.Success(b)
	}
	return result.Errorf[bool]("not a bool: %v", v)
}

func (ops) CreateInt(i int64) any { return i }

func (ops) IntValue(v any) result.Result[int64] {
	switch n := v.(type) {
	case int64:
		return result.Success(n)
	case int:
		return result.Success(int64(n))
	case uint64:
		if n <= math.MaxInt64 {
			return result.Success(int64(n))
		}
	case float64:
		if n == float64(int64(n)) {
			return result.Success(int64(n))
		}
	}
	return result.Errorf[int64]("not an int: %v", v)
}

func (ops) CreateFloat(f float64) any { return f }

func (ops) FloatValue(v any) result.Result[float64] {
	switch n := v.(type) {
	case float64:
		return result.Success(n)
	case int64:
		return result.Success(float64(n))
	case int:
		return result.Success(float64(n))
	case uint64:
		return result.Success(float64(n))
	}
	return result.Errorf[float64]("not a number: %v", v)
}

func (ops) CreateList(items []any) any {
	return append([]any(nil), items...)
}

func (ops) ListValue(v any) result.Result[[]any] {
	if l, ok := v.([]any); ok {
		return result.Success(append([]any(nil), l...))
	}
	return result.Errorf[[]any]("not a list: %v", v)
}

func (ops) CreateMap(entries []codec.MapEntry[any]) any {
	m := make(map[string]any, len(entries))
	for _, e := range entries {
		if k, ok := e.Key.(string); ok {
			m[k] = e.Value
		}
	}
	return m
}

func (o ops) MapValue(v any) result.Result[codec.MapLike[any]] {
	m, ok := v.(map[string]any)
	if !ok {
		return result.Errorf[codec.MapLike[any]]("not a map: %v", v)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return result.Success(codec.StringMapLike[any](o, keys, m))
}

func (o ops) MergeToMap(target any, entries []codec.MapEntry[any]) result.Result[any] {
	var out map[string]any
	switch t := target.(type) {
	case nil:
		out = make(map[string]any, len(entries))
	case map[string]any:
		out = make(map[string]any, len(t)+len(entries))
		for k, v := range t {
			out[k] = v
		}
	default:
		return result.ErrorPartial(fmt.Sprintf("cannot merge entries into %v: not a map", target), target)
	}
	for _, e := range entries {
		k, ok := e.Key.(string)
		if !ok {
			return result.ErrorPartial[any](fmt.Sprintf("key %v is not a string", e.Key), out)
		}
		out[k] = e.Value
	}
	return result.Success[any](out)
}

func (o ops) MapBuilder() codec.RecordBuilder[any] {
	return codec.NewMapBuilder[any](o)
}

func (o ops) CompressMaps() bool { return o.compressed }
