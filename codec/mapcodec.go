package codec

import (
	"fmt"

	"github.com/anyform/go-anyform/result"
)

// MapEncoder writes the fields of a value into a RecordBuilder. Unlike
// Encoder it produces map entries rather than a whole value, so several map
// encoders can contribute fields to one record.
type MapEncoder[T, A any] struct {
	name   string
	keys   func(ops Ops[T]) []T
	encode func(ops Ops[T], value A, b RecordBuilder[T]) RecordBuilder[T]
	comp   *compressorCache[T]
}

func NewMapEncoder[T, A any](
	name string,
	keys func(ops Ops[T]) []T,
	fn func(ops Ops[T], value A, b RecordBuilder[T]) RecordBuilder[T],
) MapEncoder[T, A] {
	return MapEncoder[T, A]{name: name, keys: keys, encode: fn, comp: newCompressorCache[T]()}
}

func (e MapEncoder[T, A]) Keys(ops Ops[T]) []T { return e.keys(ops) }

func (e MapEncoder[T, A]) Compressor(ops Ops[T]) *KeyCompressor[T] {
	return e.comp.get(ops, e.keys)
}

func (e MapEncoder[T, A]) EncodeMap(ops Ops[T], value A, b RecordBuilder[T]) RecordBuilder[T] {
	return e.encode(ops, value, b)
}

// Encoder adapts to a whole-value encoder, building through a keyed or
// compressed builder as ops requires.
func (e MapEncoder[T, A]) Encoder() Encoder[T, A] {
	return NewEncoder(e.name, func(ops Ops[T], value A, prefix T) result.Result[T] {
		return e.encode(ops, value, builderFor[T](ops, e)).Build(prefix)
	})
}

func (e MapEncoder[T, A]) String() string { return e.name }

// MapDecoder reads a value out of a key-value view. DecodeMap sees only the
// fields; CompressedDecode handles the serialized outer value.
type MapDecoder[T, A any] struct {
	name   string
	keys   func(ops Ops[T]) []T
	decode func(ops Ops[T], input MapLike[T]) result.Result[A]
	comp   *compressorCache[T]
}

func NewMapDecoder[T, A any](
	name string,
	keys func(ops Ops[T]) []T,
	fn func(ops Ops[T], input MapLike[T]) result.Result[A],
) MapDecoder[T, A] {
	return MapDecoder[T, A]{name: name, keys: keys, decode: fn, comp: newCompressorCache[T]()}
}

func (d MapDecoder[T, A]) Keys(ops Ops[T]) []T { return d.keys(ops) }

func (d MapDecoder[T, A]) Compressor(ops Ops[T]) *KeyCompressor[T] {
	return d.comp.get(ops, d.keys)
}

func (d MapDecoder[T, A]) DecodeMap(ops Ops[T], input MapLike[T]) result.Result[A] {
	return d.decode(ops, input)
}

// CompressedDecode decodes from a serialized value: a positional list when
// ops compresses maps, a keyed map otherwise. Extraction of the map view is
// forced Stable so only the decoder's own lifecycle shows through.
func (d MapDecoder[T, A]) CompressedDecode(ops Ops[T], input T) result.Result[A] {
	if ops.CompressMaps() {
		entries, ok := ops.ListValue(input).Value()
		if !ok {
			return result.Error[A]("input is not a list")
		}
		return d.decode(ops, compressedView(ops, d.Compressor(ops), entries))
	}
	view := ops.MapValue(input).SetLifecycle(result.Stable())
	return result.FlatMap(view, func(m MapLike[T]) result.Result[A] {
		return d.decode(ops, m)
	})
}

// Decoder adapts to a whole-value decoder; the pair carries the input back.
func (d MapDecoder[T, A]) Decoder() Decoder[T, A] {
	return NewDecoder(d.name, func(ops Ops[T], input T) result.Result[Pair[A, T]] {
		return result.Map(d.CompressedDecode(ops, input), func(a A) Pair[A, T] {
			return PairOf(a, input)
		})
	})
}

func (d MapDecoder[T, A]) String() string { return d.name }

// ApDecoder applies a decoded function to a decoded value, both read from
// the same input. Keys are the concatenation value-then-function, duplicates
// preserved.
func ApDecoder[T, A, E any](d MapDecoder[T, A], f MapDecoder[T, func(A) E]) MapDecoder[T, E] {
	return NewMapDecoder(
		fmt.Sprintf("Ap[%s, %s]", d.name, f.name),
		concatKeys(d.keys, f.keys),
		func(ops Ops[T], input MapLike[T]) result.Result[E] {
			return result.Ap(d.decode(ops, input), f.decode(ops, input))
		},
	)
}

// MapDecode transforms the decoded value.
func MapDecode[T, A, S any](d MapDecoder[T, A], f func(A) S) MapDecoder[T, S] {
	return NewMapDecoder(d.name+"[mapped]", d.keys,
		func(ops Ops[T], input MapLike[T]) result.Result[S] {
			return result.Map(d.decode(ops, input), f)
		},
	)
}

// FlatMapDecode transforms the decoded value through a result-producing
// function.
func FlatMapDecode[T, A, S any](d MapDecoder[T, A], f func(A) result.Result[S]) MapDecoder[T, S] {
	return NewMapDecoder(d.name+"[flatMapped]", d.keys,
		func(ops Ops[T], input MapLike[T]) result.Result[S] {
			return result.FlatMap(d.decode(ops, input), f)
		},
	)
}

// MapCodec reads and writes a value as a set of map fields. The serialized
// boundary (keyed map or key-compressed positional list) is crossed by
// Codec.
type MapCodec[T, A any] struct {
	name   string
	keys   func(ops Ops[T]) []T
	encode func(ops Ops[T], value A, b RecordBuilder[T]) RecordBuilder[T]
	decode func(ops Ops[T], input MapLike[T]) result.Result[A]
	comp   *compressorCache[T]
}

// MapOf pairs a map encoder and decoder. Keys are the concatenation
// encoder-then-decoder.
func MapOf[T, A any](enc MapEncoder[T, A], dec MapDecoder[T, A]) MapCodec[T, A] {
	return MapOfNamed(fmt.Sprintf("MapCodec[%s %s]", enc.name, dec.name), enc, dec)
}

func MapOfNamed[T, A any](name string, enc MapEncoder[T, A], dec MapDecoder[T, A]) MapCodec[T, A] {
	return MapCodec[T, A]{
		name:   name,
		keys:   concatKeys(enc.keys, dec.keys),
		encode: enc.encode,
		decode: dec.decode,
		comp:   newCompressorCache[T](),
	}
}

// UnitMap decodes to a constant and writes no fields.
func UnitMap[T, A any](value A) MapCodec[T, A] {
	return MapCodec[T, A]{
		name: fmt.Sprintf("UnitMap[%v]", value),
		keys: noKeys[T],
		encode: func(ops Ops[T], _ A, b RecordBuilder[T]) RecordBuilder[T] {
			return b
		},
		decode: func(ops Ops[T], _ MapLike[T]) result.Result[A] {
			return result.Success(value)
		},
		comp: newCompressorCache[T](),
	}
}

func (mc MapCodec[T, A]) Keys(ops Ops[T]) []T { return mc.keys(ops) }

func (mc MapCodec[T, A]) Compressor(ops Ops[T]) *KeyCompressor[T] {
	return mc.comp.get(ops, mc.keys)
}

func (mc MapCodec[T, A]) EncodeMap(ops Ops[T], value A, b RecordBuilder[T]) RecordBuilder[T] {
	return mc.encode(ops, value, b)
}

func (mc MapCodec[T, A]) DecodeMap(ops Ops[T], input MapLike[T]) result.Result[A] {
	return mc.decode(ops, input)
}

func (mc MapCodec[T, A]) CompressedDecode(ops Ops[T], input T) result.Result[A] {
	return mc.MapDecoder().CompressedDecode(ops, input)
}

// MapEncoder returns the encoder half. The compressor cache is shared with
// the codec.
func (mc MapCodec[T, A]) MapEncoder() MapEncoder[T, A] {
	return MapEncoder[T, A]{name: mc.name, keys: mc.keys, encode: mc.encode, comp: mc.comp}
}

// MapDecoder returns the decoder half. The compressor cache is shared with
// the codec.
func (mc MapCodec[T, A]) MapDecoder() MapDecoder[T, A] {
	return MapDecoder[T, A]{name: mc.name, keys: mc.keys, decode: mc.decode, comp: mc.comp}
}

// Codec crosses the serialized boundary: decode reads a keyed map or, under
// compressing ops, a positional list; encode builds one.
func (mc MapCodec[T, A]) Codec() Codec[T, A] {
	return NewCodec(mc.name, mc.MapEncoder().Encoder(), mc.MapDecoder().Decoder())
}

// FieldOf nests the whole record under a single field.
func (mc MapCodec[T, A]) FieldOf(name string) MapCodec[T, A] {
	return Field(name, mc.Codec())
}

// WithLifecycle overrides the lifecycle of decode results and of the builder
// after encoding.
func (mc MapCodec[T, A]) WithLifecycle(lc result.Lifecycle) MapCodec[T, A] {
	inner := mc
	out := mc
	out.encode = func(ops Ops[T], value A, b RecordBuilder[T]) RecordBuilder[T] {
		return inner.encode(ops, value, b).SetLifecycle(lc)
	}
	out.decode = func(ops Ops[T], input MapLike[T]) result.Result[A] {
		return inner.decode(ops, input).SetLifecycle(lc)
	}
	return out
}

func (mc MapCodec[T, A]) Stable() MapCodec[T, A] {
	return mc.WithLifecycle(result.Stable())
}

func (mc MapCodec[T, A]) Deprecated(since int) MapCodec[T, A] {
	return mc.WithLifecycle(result.Deprecated(since))
}

func (mc MapCodec[T, A]) String() string { return mc.name }

// MapXmap converts a map codec between value types with a total mapping in
// each direction.
func MapXmap[T, A, S any](mc MapCodec[T, A], to func(A) S, from func(S) A) MapCodec[T, S] {
	return MapCodec[T, S]{
		name: mc.name + "[xmapped]",
		keys: mc.keys,
		encode: func(ops Ops[T], value S, b RecordBuilder[T]) RecordBuilder[T] {
			return mc.encode(ops, from(value), b)
		},
		decode: func(ops Ops[T], input MapLike[T]) result.Result[S] {
			return result.Map(mc.decode(ops, input), to)
		},
		comp: mc.comp,
	}
}

// MapFlatXmap is MapXmap where either direction may fail. A failed encode
// conversion still writes its partial value, then records the error on the
// builder.
func MapFlatXmap[T, A, S any](mc MapCodec[T, A], to func(A) result.Result[S], from func(S) result.Result[A]) MapCodec[T, S] {
	return MapCodec[T, S]{
		name: mc.name + "[flatXmapped]",
		keys: mc.keys,
		encode: func(ops Ops[T], value S, b RecordBuilder[T]) RecordBuilder[T] {
			r := from(value)
			if a, ok := r.Value(); ok {
				return mc.encode(ops, a, b)
			}
			if p, ok := r.Partial(); ok {
				b = mc.encode(ops, p, b)
			}
			return b.WithError(r.Message())
		},
		decode: func(ops Ops[T], input MapLike[T]) result.Result[S] {
			return result.FlatMap(mc.decode(ops, input), to)
		},
		comp: mc.comp,
	}
}

// ResultFunction post-processes a map codec's results in both directions.
// Apply sees the decode outcome, CoApply the builder after encoding.
type ResultFunction[T, A any] interface {
	Apply(ops Ops[T], input MapLike[T], decoded result.Result[A]) result.Result[A]
	CoApply(ops Ops[T], value A, encoded RecordBuilder[T]) RecordBuilder[T]
}

// MapResult hooks fn into both directions of mc.
func MapResult[T, A any](mc MapCodec[T, A], fn ResultFunction[T, A]) MapCodec[T, A] {
	return MapCodec[T, A]{
		name: fmt.Sprintf("%s[mapResult %v]", mc.name, fn),
		keys: mc.keys,
		encode: func(ops Ops[T], value A, b RecordBuilder[T]) RecordBuilder[T] {
			return fn.CoApply(ops, value, mc.encode(ops, value, b))
		},
		decode: func(ops Ops[T], input MapLike[T]) result.Result[A] {
			return fn.Apply(ops, input, mc.decode(ops, input))
		},
		comp: mc.comp,
	}
}

// Defaulted absorbs decode failures: the failed decode's partial value is
// recovered when present, the default value otherwise. The decode side never
// errors. onError observes the original message and may be nil. Encoding
// passes through.
func Defaulted[T, A any](mc MapCodec[T, A], value A, onError func(string)) MapCodec[T, A] {
	return DefaultedFn(mc, func() A { return value }, onError)
}

// DefaultedFn is Defaulted with a lazily evaluated default.
func DefaultedFn[T, A any](mc MapCodec[T, A], supplier func() A, onError func(string)) MapCodec[T, A] {
	return MapResult(mc, defaultedFn[T, A]{supplier: supplier, onError: onError})
}

type defaultedFn[T, A any] struct {
	supplier func() A
	onError  func(string)
}

func (d defaultedFn[T, A]) Apply(ops Ops[T], _ MapLike[T], decoded result.Result[A]) result.Result[A] {
	if !decoded.IsError() {
		return decoded
	}
	if d.onError != nil {
		d.onError(decoded.Message())
	}
	if p, ok := decoded.Partial(); ok {
		return result.Success(p).SetLifecycle(decoded.Lifecycle())
	}
	return result.Success(d.supplier()).SetLifecycle(decoded.Lifecycle())
}

func (d defaultedFn[T, A]) CoApply(_ Ops[T], _ A, encoded RecordBuilder[T]) RecordBuilder[T] {
	return encoded
}

func (d defaultedFn[T, A]) String() string { return "Defaulted" }

// DependentMap encodes and decodes a value whose trailing fields depend on
// the value itself. splitter extracts the dependent part and the codec to
// use for it; combiner folds a decoded dependent part back in. initial
// supplies the dependent key universe. Both directions are unconditionally
// Experimental: the shape of the output varies with the value, so no
// stability can be promised.
func DependentMap[T, A, E any](
	mc MapCodec[T, A],
	initial MapCodec[T, E],
	splitter func(A) Pair[E, MapCodec[T, E]],
	combiner func(A, E) A,
) MapCodec[T, A] {
	return MapCodec[T, A]{
		name: fmt.Sprintf("Dependent[%s, %s]", mc.name, initial.name),
		keys: concatKeys(mc.keys, initial.keys),
		encode: func(ops Ops[T], value A, b RecordBuilder[T]) RecordBuilder[T] {
			b = mc.encode(ops, value, b)
			part := splitter(value)
			b = part.Second.encode(ops, part.First, b)
			return b.SetLifecycle(result.Experimental())
		},
		decode: func(ops Ops[T], input MapLike[T]) result.Result[A] {
			r := result.FlatMap(mc.decode(ops, input), func(a A) result.Result[A] {
				part := splitter(a)
				return result.Map(part.Second.decode(ops, input), func(e E) A {
					return combiner(a, e)
				})
			})
			return r.SetLifecycle(result.Experimental())
		},
		comp: newCompressorCache[T](),
	}
}

// builderFor picks the record builder implied by ops: the form's own keyed
// builder, or a positional builder over c's compressor.
func builderFor[T any](ops Ops[T], c Compressable[T]) RecordBuilder[T] {
	if ops.CompressMaps() {
		return newCompressedBuilder(ops, c.Compressor(ops))
	}
	return ops.MapBuilder()
}

func noKeys[T any](Ops[T]) []T { return nil }

func concatKeys[T any](fns ...func(Ops[T]) []T) func(Ops[T]) []T {
	return func(ops Ops[T]) []T {
		var keys []T
		for _, fn := range fns {
			keys = append(keys, fn(ops)...)
		}
		return keys
	}
}
