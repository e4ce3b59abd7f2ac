package codec

import (
	"fmt"
	"sort"
	"testing"

	"github.com/anyform/go-anyform/result"
)

// testOps is a minimal Ops over plain any trees for exercising codecs
// without pulling in the shipped ops packages.
type testOps struct{ compressed bool }

var (
	testDefault    Ops[any] = testOps{}
	testCompressed Ops[any] = testOps{compressed: true}
)

func (o testOps) Empty() any         { return nil }
func (o testOps) IsEmpty(v any) bool { return v == nil }

func (o testOps) CreateString(s string) any { return s }

func (o testOps) StringValue(v any) result.Result[string] {
	if s, ok := v.(string); ok {
		return result.Success(s)
	}
	return result.Errorf[string]("not a string: %v", v)
}

func (o testOps) CreateBool(b bool) any { return b }

func (o testOps) BoolValue(v any) result.Result[bool] {
	if b, ok := v.(bool); ok {
		return result.Success(b)
	}
	return result.Errorf[bool]("not a bool: %v", v)
}

func (o testOps) CreateInt(i int64) any { return i }

func (o testOps) IntValue(v any) result.Result[int64] {
	switch n := v.(type) {
	case int64:
		return result.Success(n)
	case int:
		return result.Success(int64(n))
	case float64:
		if n == float64(int64(n)) {
			return result.Success(int64(n))
		}
	}
	return result.Errorf[int64]("not an int: %v", v)
}

func (o testOps) CreateFloat(f float64) any { return f }

func (o testOps) FloatValue(v any) result.Result[float64] {
	switch n := v.(type) {
	case float64:
		return result.Success(n)
	case int64:
		return result.Success(float64(n))
	case int:
		return result.Success(float64(n))
	}
	return result.Errorf[float64]("not a number: %v", v)
}

func (o testOps) CreateList(items []any) any {
	return append([]any(nil), items...)
}

func (o testOps) ListValue(v any) result.Result[[]any] {
	if l, ok := v.([]any); ok {
		return result.Success(append([]any(nil), l...))
	}
	return result.Errorf[[]any]("not a list: %v", v)
}

func (o testOps) CreateMap(entries []MapEntry[any]) any {
	m := make(map[string]any, len(entries))
	for _, e := range entries {
		if k, ok := e.Key.(string); ok {
			m[k] = e.Value
		}
	}
	return m
}

func (o testOps) MapValue(v any) result.Result[MapLike[any]] {
	m, ok := v.(map[string]any)
	if !ok {
		return result.Errorf[MapLike[any]]("not a map: %v", v)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return result.Success(StringMapLike[any](o, keys, m))
}

func (o testOps) MergeToMap(target any, entries []MapEntry[any]) result.Result[any] {
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

func (o testOps) MapBuilder() RecordBuilder[any] { return NewMapBuilder[any](o) }

func (o testOps) CompressMaps() bool { return o.compressed }

// mapView extracts the MapLike over m, failing the test when m is not a map.
func mapView(t *testing.T, ops Ops[any], m map[string]any) MapLike[any] {
	t.Helper()
	view, ok := ops.MapValue(m).Value()
	if !ok {
		t.Fatalf("MapValue(%v) failed", m)
	}
	return view
}

// keyNames resolves keys to their string images.
func keyNames(t *testing.T, ops Ops[any], keys []any) []string {
	t.Helper()
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		s, ok := ops.StringValue(k).Value()
		if !ok {
			t.Fatalf("key %v has no string image", k)
		}
		names = append(names, s)
	}
	return names
}
