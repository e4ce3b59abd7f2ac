package codec

import (
	"fmt"
	"strings"

	"github.com/anyform/go-anyform/result"
)

// Codec pairs an encoder and a decoder for the same value type A over
// serialized form T. Codecs are immutable values; combinators return new
// codecs and never modify their receiver.
type Codec[T, A any] struct {
	name   string
	encode func(ops Ops[T], value A, prefix T) result.Result[T]
	decode func(ops Ops[T], input T) result.Result[Pair[A, T]]
}

// NewCodec pairs both halves under a name.
func NewCodec[T, A any](name string, enc Encoder[T, A], dec Decoder[T, A]) Codec[T, A] {
	return Codec[T, A]{name: name, encode: enc.encode, decode: dec.decode}
}

func newCodec[T, A any](
	name string,
	encode func(ops Ops[T], value A, prefix T) result.Result[T],
	decode func(ops Ops[T], input T) result.Result[Pair[A, T]],
) Codec[T, A] {
	return Codec[T, A]{name: name, encode: encode, decode: decode}
}

func (c Codec[T, A]) Encode(ops Ops[T], value A, prefix T) result.Result[T] {
	return c.encode(ops, value, prefix)
}

func (c Codec[T, A]) EncodeStart(ops Ops[T], value A) result.Result[T] {
	return c.encode(ops, value, ops.Empty())
}

func (c Codec[T, A]) Decode(ops Ops[T], input T) result.Result[Pair[A, T]] {
	return c.decode(ops, input)
}

// Parse decodes and drops the serialized half of the pair.
func (c Codec[T, A]) Parse(ops Ops[T], input T) result.Result[A] {
	return result.Map(c.decode(ops, input), func(p Pair[A, T]) A { return p.First })
}

func (c Codec[T, A]) Encoder() Encoder[T, A] {
	return Encoder[T, A]{name: c.name, encode: c.encode}
}

func (c Codec[T, A]) Decoder() Decoder[T, A] {
	return Decoder[T, A]{name: c.name, decode: c.decode}
}

func (c Codec[T, A]) String() string { return c.name }

// WithLifecycle overrides the lifecycle of every result the codec produces.
func (c Codec[T, A]) WithLifecycle(lc result.Lifecycle) Codec[T, A] {
	inner := c
	return newCodec(c.name,
		func(ops Ops[T], value A, prefix T) result.Result[T] {
			return inner.encode(ops, value, prefix).SetLifecycle(lc)
		},
		func(ops Ops[T], input T) result.Result[Pair[A, T]] {
			return inner.decode(ops, input).SetLifecycle(lc)
		},
	)
}

func (c Codec[T, A]) Stable() Codec[T, A] {
	return c.WithLifecycle(result.Stable())
}

func (c Codec[T, A]) Deprecated(since int) Codec[T, A] {
	return c.WithLifecycle(result.Deprecated(since))
}

// mergeValue merges a freshly created value onto prefix. Only an empty
// prefix accepts it; the created value rides along as the partial.
func mergeValue[T any](ops Ops[T], prefix, value T) result.Result[T] {
	if !ops.IsEmpty(prefix) {
		return result.ErrorPartial(fmt.Sprintf("cannot append %v to non-empty prefix %v", value, prefix), value)
	}
	return result.Success(value)
}

// MergeValue merges a freshly created whole value onto prefix. It is the
// merge step the primitive codecs use: an empty prefix accepts the value,
// anything else is an error carrying the value as the partial. Custom
// encoders that produce complete values rather than map entries should
// finish with it.
func MergeValue[T any](ops Ops[T], prefix, value T) result.Result[T] {
	return mergeValue(ops, prefix, value)
}

// String is the codec for string values.
func String[T any]() Codec[T, string] {
	return newCodec[T, string]("String",
		func(ops Ops[T], value string, prefix T) result.Result[T] {
			return mergeValue(ops, prefix, ops.CreateString(value))
		},
		func(ops Ops[T], input T) result.Result[Pair[string, T]] {
			return result.Map(ops.StringValue(input), func(v string) Pair[string, T] {
				return PairOf(v, input)
			})
		},
	)
}

// Bool is the codec for boolean values.
func Bool[T any]() Codec[T, bool] {
	return newCodec[T, bool]("Bool",
		func(ops Ops[T], value bool, prefix T) result.Result[T] {
			return mergeValue(ops, prefix, ops.CreateBool(value))
		},
		func(ops Ops[T], input T) result.Result[Pair[bool, T]] {
			return result.Map(ops.BoolValue(input), func(v bool) Pair[bool, T] {
				return PairOf(v, input)
			})
		},
	)
}

// Int is the codec for int64 values.
func Int[T any]() Codec[T, int64] {
	return newCodec[T, int64]("Int",
		func(ops Ops[T], value int64, prefix T) result.Result[T] {
			return mergeValue(ops, prefix, ops.CreateInt(value))
		},
		func(ops Ops[T], input T) result.Result[Pair[int64, T]] {
			return result.Map(ops.IntValue(input), func(v int64) Pair[int64, T] {
				return PairOf(v, input)
			})
		},
	)
}

// Float is the codec for float64 values.
func Float[T any]() Codec[T, float64] {
	return newCodec[T, float64]("Float",
		func(ops Ops[T], value float64, prefix T) result.Result[T] {
			return mergeValue(ops, prefix, ops.CreateFloat(value))
		},
		func(ops Ops[T], input T) result.Result[Pair[float64, T]] {
			return result.Map(ops.FloatValue(input), func(v float64) Pair[float64, T] {
				return PairOf(v, input)
			})
		},
	)
}

// Unit decodes to a constant without reading input and encodes to the prefix
// unchanged.
func Unit[T, A any](value A) Codec[T, A] {
	return newCodec[T, A](fmt.Sprintf("Unit[%v]", value),
		func(ops Ops[T], _ A, prefix T) result.Result[T] {
			return result.Success(prefix)
		},
		func(ops Ops[T], input T) result.Result[Pair[A, T]] {
			return result.Success(PairOf(value, input))
		},
	)
}

// List lifts an element codec to slices. Element failures do not stop the
// rest of the list: messages accumulate in element order and the elements
// that did decode (or encode) form the partial value.
func List[T, A any](elem Codec[T, A]) Codec[T, []A] {
	name := fmt.Sprintf("List[%s]", elem.name)
	return newCodec[T, []A](name,
		func(ops Ops[T], values []A, prefix T) result.Result[T] {
			out := make([]T, 0, len(values))
			var msgs []string
			lc := result.Stable()
			for _, v := range values {
				r := elem.encode(ops, v, ops.Empty())
				lc = lc.Add(r.Lifecycle())
				if r.IsError() {
					msgs = append(msgs, r.Message())
				}
				if ev, ok := r.ResultOrPartial(nil); ok {
					out = append(out, ev)
				}
			}
			merged := mergeValue(ops, prefix, ops.CreateList(out)).SetLifecycle(lc)
			if len(msgs) > 0 {
				merged = merged.MapError(func(m string) string {
					return strings.Join(append(msgs, m), "; ")
				})
				if !merged.IsError() {
					v, _ := merged.Value()
					merged = result.ErrorPartial(strings.Join(msgs, "; "), v).SetLifecycle(lc)
				}
			}
			return merged
		},
		func(ops Ops[T], input T) result.Result[Pair[[]A, T]] {
			items := ops.ListValue(input).SetLifecycle(result.Stable())
			return result.FlatMap(items, func(list []T) result.Result[Pair[[]A, T]] {
				values := make([]A, 0, len(list))
				var msgs []string
				lc := result.Stable()
				for _, item := range list {
					r := elem.decode(ops, item)
					lc = lc.Add(r.Lifecycle())
					if r.IsError() {
						msgs = append(msgs, r.Message())
					}
					if p, ok := r.ResultOrPartial(nil); ok {
						values = append(values, p.First)
					}
				}
				pair := PairOf(values, input)
				if len(msgs) > 0 {
					return result.ErrorPartial(strings.Join(msgs, "; "), pair).SetLifecycle(lc)
				}
				return result.Success(pair).SetLifecycle(lc)
			})
		},
	)
}

// Xmap converts a codec between value types with a total mapping in each
// direction.
func Xmap[T, A, S any](c Codec[T, A], to func(A) S, from func(S) A) Codec[T, S] {
	return newCodec[T, S](c.name+"[xmapped]",
		func(ops Ops[T], value S, prefix T) result.Result[T] {
			return c.encode(ops, from(value), prefix)
		},
		func(ops Ops[T], input T) result.Result[Pair[S, T]] {
			return result.Map(c.decode(ops, input), func(p Pair[A, T]) Pair[S, T] {
				return PairOf(to(p.First), p.Second)
			})
		},
	)
}

// FlatXmap is Xmap where either direction may fail.
func FlatXmap[T, A, S any](c Codec[T, A], to func(A) result.Result[S], from func(S) result.Result[A]) Codec[T, S] {
	return newCodec[T, S](c.name+"[flatXmapped]",
		func(ops Ops[T], value S, prefix T) result.Result[T] {
			return result.FlatMap(from(value), func(a A) result.Result[T] {
				return c.encode(ops, a, prefix)
			})
		},
		func(ops Ops[T], input T) result.Result[Pair[S, T]] {
			return result.FlatMap(c.decode(ops, input), func(p Pair[A, T]) result.Result[Pair[S, T]] {
				return result.Map(to(p.First), func(s S) Pair[S, T] {
					return PairOf(s, p.Second)
				})
			})
		},
	)
}

// Validated runs fn over every decoded value and every value about to be
// encoded.
func Validated[T, A any](c Codec[T, A], fn func(A) result.Result[A]) Codec[T, A] {
	v := FlatXmap(c, fn, fn)
	v.name = c.name + "[validated]"
	return v
}
