package codec

import (
	"github.com/anyform/go-anyform/result"
)

// Decoder reads values of type A out of serialized form T. Decode pairs the
// value with the input it was read from; inputs are never mutated.
type Decoder[T, A any] struct {
	name   string
	decode func(ops Ops[T], input T) result.Result[Pair[A, T]]
}

func NewDecoder[T, A any](name string, fn func(ops Ops[T], input T) result.Result[Pair[A, T]]) Decoder[T, A] {
	return Decoder[T, A]{name: name, decode: fn}
}

func (d Decoder[T, A]) Decode(ops Ops[T], input T) result.Result[Pair[A, T]] {
	return d.decode(ops, input)
}

// Parse decodes and drops the serialized half of the pair.
func (d Decoder[T, A]) Parse(ops Ops[T], input T) result.Result[A] {
	return result.Map(d.decode(ops, input), func(p Pair[A, T]) A { return p.First })
}

func (d Decoder[T, A]) String() string { return d.name }
