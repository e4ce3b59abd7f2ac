package codec

import (
	"github.com/anyform/go-anyform/result"
)

// Encoder turns values of type A into serialized form T, merging the output
// onto a prefix value.
type Encoder[T, A any] struct {
	name   string
	encode func(ops Ops[T], value A, prefix T) result.Result[T]
}

// NewEncoder wraps fn. The name shows up in String and in combinators built
// on top.
func NewEncoder[T, A any](name string, fn func(ops Ops[T], value A, prefix T) result.Result[T]) Encoder[T, A] {
	return Encoder[T, A]{name: name, encode: fn}
}

// Encode serializes value onto prefix.
func (e Encoder[T, A]) Encode(ops Ops[T], value A, prefix T) result.Result[T] {
	return e.encode(ops, value, prefix)
}

// EncodeStart serializes value onto the empty prefix.
func (e Encoder[T, A]) EncodeStart(ops Ops[T], value A) result.Result[T] {
	return e.encode(ops, value, ops.Empty())
}

func (e Encoder[T, A]) String() string { return e.name }
