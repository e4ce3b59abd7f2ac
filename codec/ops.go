package codec

import (
	"github.com/anyform/go-anyform/result"
)

// MapEntry is one key-value pair of a map-shaped value.
type MapEntry[T any] struct {
	Key   T
	Value T
}

// Ops describes a serialized form with value type T. Codecs are written
// against this interface and never against a concrete form, which is what
// makes them format polymorphic.
//
// Constructors are total. Extractors return a failed result when the input
// has the wrong shape, and they are strict: StringValue on a list fails,
// IntValue on a fractional number fails. Implementations must not mutate
// their inputs; MergeToMap copies.
//
// Implementations are expected to be exported singletons. Compressor caches
// and conversion helpers key on interface identity.
type Ops[T any] interface {
	// Empty returns the form's null value. IsEmpty recognizes it.
	Empty() T
	IsEmpty(input T) bool

	CreateString(value string) T
	StringValue(input T) result.Result[string]

	CreateBool(value bool) T
	BoolValue(input T) result.Result[bool]

	CreateInt(value int64) T
	IntValue(input T) result.Result[int64]

	CreateFloat(value float64) T
	FloatValue(input T) result.Result[float64]

	CreateList(values []T) T
	ListValue(input T) result.Result[[]T]

	CreateMap(entries []MapEntry[T]) T
	MapValue(input T) result.Result[MapLike[T]]

	// MergeToMap adds entries to target, which must be a map or Empty. On
	// failure the unmodified target rides along as the partial value.
	MergeToMap(target T, entries []MapEntry[T]) result.Result[T]

	// MapBuilder returns a fresh record builder for this form.
	MapBuilder() RecordBuilder[T]

	// CompressMaps reports whether map-shaped codecs should read and write
	// key-compressed positional lists instead of keyed maps.
	CompressMaps() bool
}

// MapLike is a read-only key-value view over a map-shaped value.
type MapLike[T any] interface {
	// Get returns the value for key. The second return is false only when
	// the mapping genuinely lacks the key.
	Get(key T) (T, bool)
	GetString(key string) (T, bool)
	// Entries returns a freshly built slice on every call.
	Entries() []MapEntry[T]
}

// StringMapLike builds a MapLike over string-keyed storage. keys fixes the
// iteration order of Entries.
func StringMapLike[T any](ops Ops[T], keys []string, values map[string]T) MapLike[T] {
	return &stringMapLike[T]{ops: ops, keys: keys, values: values}
}

type stringMapLike[T any] struct {
	ops    Ops[T]
	keys   []string
	values map[string]T
}

func (m *stringMapLike[T]) Get(key T) (T, bool) {
	s, ok := m.ops.StringValue(key).Value()
	if !ok {
		var zero T
		return zero, false
	}
	return m.GetString(s)
}

func (m *stringMapLike[T]) GetString(key string) (T, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *stringMapLike[T]) Entries() []MapEntry[T] {
	entries := make([]MapEntry[T], 0, len(m.keys))
	for _, k := range m.keys {
		v, ok := m.values[k]
		if !ok {
			continue
		}
		entries = append(entries, MapEntry[T]{Key: m.ops.CreateString(k), Value: v})
	}
	return entries
}
