package codec

import (
	"fmt"

	"github.com/anyform/go-anyform/result"
)

// Field reads and writes one required field of a map-shaped value. A missing
// key is a decode error.
func Field[T, A any](name string, c Codec[T, A]) MapCodec[T, A] {
	return MapCodec[T, A]{
		name: fmt.Sprintf("Field[%s: %s]", name, c.name),
		keys: func(ops Ops[T]) []T { return StringKeys(ops, name) },
		encode: func(ops Ops[T], value A, b RecordBuilder[T]) RecordBuilder[T] {
			return b.AddResult(name, c.EncodeStart(ops, value))
		},
		decode: func(ops Ops[T], input MapLike[T]) result.Result[A] {
			v, ok := input.GetString(name)
			if !ok {
				return result.Errorf[A]("no key %q in map", name)
			}
			return c.Parse(ops, v)
		},
		comp: newCompressorCache[T](),
	}
}

// OptionalField reads a field that may be absent. Absent decodes to nil and
// nil encodes to nothing. A present value must decode cleanly; its failures
// are not swallowed.
func OptionalField[T, A any](name string, c Codec[T, A]) MapCodec[T, *A] {
	return MapCodec[T, *A]{
		name: fmt.Sprintf("OptionalField[%s: %s]", name, c.name),
		keys: func(ops Ops[T]) []T { return StringKeys(ops, name) },
		encode: func(ops Ops[T], value *A, b RecordBuilder[T]) RecordBuilder[T] {
			if value == nil {
				return b
			}
			return b.AddResult(name, c.EncodeStart(ops, *value))
		},
		decode: func(ops Ops[T], input MapLike[T]) result.Result[*A] {
			v, ok := input.GetString(name)
			if !ok {
				return result.Success[*A](nil)
			}
			return result.Map(c.Parse(ops, v), func(a A) *A { return &a })
		},
		comp: newCompressorCache[T](),
	}
}
