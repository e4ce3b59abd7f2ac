package codec

import (
	"fmt"
	"strings"

	"github.com/anyform/go-anyform/result"
)

// RecordField binds one field of a record type O: how to read the field
// value F out of a complete record, how to encode it, and how to decode it.
// Build fields with ForGetter and assemble records with Group1..Group6.
type RecordField[T, O, F any] struct {
	getter  func(O) F
	encoder func(O) MapEncoder[T, F]
	decoder MapDecoder[T, F]
}

// ForGetter binds mc to the record field read by getter.
func ForGetter[T, O, F any](mc MapCodec[T, F], getter func(O) F) RecordField[T, O, F] {
	enc := mc.MapEncoder()
	return RecordField[T, O, F]{
		getter:  getter,
		encoder: func(O) MapEncoder[T, F] { return enc },
		decoder: mc.MapDecoder(),
	}
}

// PointField injects a constant: it writes no fields and decodes to value.
func PointField[T, O, F any](value F) RecordField[T, O, F] {
	return RecordField[T, O, F]{
		getter:  func(O) F { return value },
		encoder: func(O) MapEncoder[T, F] { return emptyEncoder[T, F]() },
		decoder: unitDecoder[T](value),
	}
}

// PointFieldWith is PointField carrying a lifecycle on both halves.
func PointFieldWith[T, O, F any](value F, lc result.Lifecycle) RecordField[T, O, F] {
	enc := NewMapEncoder("EmptyEncoder", noKeys[T],
		func(_ Ops[T], _ F, b RecordBuilder[T]) RecordBuilder[T] {
			return b.SetLifecycle(lc)
		})
	dec := NewMapDecoder(fmt.Sprintf("Unit[%v]", value), noKeys[T],
		func(Ops[T], MapLike[T]) result.Result[F] {
			return result.Success(value).SetLifecycle(lc)
		})
	return RecordField[T, O, F]{
		getter:  func(O) F { return value },
		encoder: func(O) MapEncoder[T, F] { return enc },
		decoder: dec,
	}
}

func StableField[T, O, F any](value F) RecordField[T, O, F] {
	return PointFieldWith[T, O](value, result.Stable())
}

func DeprecatedField[T, O, F any](value F, since int) RecordField[T, O, F] {
	return PointFieldWith[T, O](value, result.Deprecated(since))
}

// DependentField reads a record field whose codec depends on another already
// decoded field: base's value selects the decoder via decoderFor, against
// the same input. The encoder and key set come from enc.
func DependentField[T, O, F, E any](
	base RecordField[T, O, F],
	enc MapEncoder[T, E],
	getter func(O) E,
	decoderFor func(F) MapDecoder[T, E],
) RecordField[T, O, E] {
	dec := NewMapDecoder(fmt.Sprintf("Dependent[%s]", enc.name), enc.keys,
		func(ops Ops[T], input MapLike[T]) result.Result[E] {
			return result.FlatMap(base.decoder.DecodeMap(ops, input), func(f F) result.Result[E] {
				return decoderFor(f).DecodeMap(ops, input)
			})
		})
	return RecordField[T, O, E]{
		getter:  getter,
		encoder: func(O) MapEncoder[T, E] { return enc },
		decoder: dec,
	}
}

func emptyEncoder[T, F any]() MapEncoder[T, F] {
	return NewMapEncoder("EmptyEncoder", noKeys[T],
		func(_ Ops[T], _ F, b RecordBuilder[T]) RecordBuilder[T] {
			return b
		})
}

func unitDecoder[T, F any](value F) MapDecoder[T, F] {
	return NewMapDecoder(fmt.Sprintf("Unit[%v]", value), noKeys[T],
		func(Ops[T], MapLike[T]) result.Result[F] {
			return result.Success(value)
		})
}

func recordName(fieldNames ...string) string {
	return "Record[" + strings.Join(fieldNames, ", ") + "]"
}

// Group1 assembles a record from one field. Group2..Group6 extend the same
// scheme: every field decodes from the same input and the results merge with
// the corresponding result.MapN, so messages of failing fields join in
// declaration order and a partial record exists only when every field
// produced a value. Encoding writes fields in declaration order.
func Group1[T, O, F1 any](f1 RecordField[T, O, F1], combine func(F1) O) MapCodec[T, O] {
	return MapCodec[T, O]{
		name: recordName(f1.decoder.name),
		keys: concatKeys(f1.decoder.keys),
		encode: func(ops Ops[T], o O, b RecordBuilder[T]) RecordBuilder[T] {
			return f1.encoder(o).EncodeMap(ops, f1.getter(o), b)
		},
		decode: func(ops Ops[T], input MapLike[T]) result.Result[O] {
			return result.Map(f1.decoder.DecodeMap(ops, input), combine)
		},
		comp: newCompressorCache[T](),
	}
}

func Group2[T, O, F1, F2 any](
	f1 RecordField[T, O, F1],
	f2 RecordField[T, O, F2],
	combine func(F1, F2) O,
) MapCodec[T, O] {
	return MapCodec[T, O]{
		name: recordName(f1.decoder.name, f2.decoder.name),
		keys: concatKeys(f1.decoder.keys, f2.decoder.keys),
		encode: func(ops Ops[T], o O, b RecordBuilder[T]) RecordBuilder[T] {
			b = f1.encoder(o).EncodeMap(ops, f1.getter(o), b)
			b = f2.encoder(o).EncodeMap(ops, f2.getter(o), b)
			return b
		},
		decode: func(ops Ops[T], input MapLike[T]) result.Result[O] {
			return result.Map2(
				f1.decoder.DecodeMap(ops, input),
				f2.decoder.DecodeMap(ops, input),
				combine,
			)
		},
		comp: newCompressorCache[T](),
	}
}

func Group3[T, O, F1, F2, F3 any](
	f1 RecordField[T, O, F1],
	f2 RecordField[T, O, F2],
	f3 RecordField[T, O, F3],
	combine func(F1, F2, F3) O,
) MapCodec[T, O] {
	return MapCodec[T, O]{
		name: recordName(f1.decoder.name, f2.decoder.name, f3.decoder.name),
		keys: concatKeys(f1.decoder.keys, f2.decoder.keys, f3.decoder.keys),
		encode: func(ops Ops[T], o O, b RecordBuilder[T]) RecordBuilder[T] {
			b = f1.encoder(o).EncodeMap(ops, f1.getter(o), b)
			b = f2.encoder(o).EncodeMap(ops, f2.getter(o), b)
			b = f3.encoder(o).EncodeMap(ops, f3.getter(o), b)
			return b
		},
		decode: func(ops Ops[T], input MapLike[T]) result.Result[O] {
			return result.Map3(
				f1.decoder.DecodeMap(ops, input),
				f2.decoder.DecodeMap(ops, input),
				f3.decoder.DecodeMap(ops, input),
				combine,
			)
		},
		comp: newCompressorCache[T](),
	}
}

func Group4[T, O, F1, F2, F3, F4 any](
	f1 RecordField[T, O, F1],
	f2 RecordField[T, O, F2],
	f3 RecordField[T, O, F3],
	f4 RecordField[T, O, F4],
	combine func(F1, F2, F3, F4) O,
) MapCodec[T, O] {
	return MapCodec[T, O]{
		name: recordName(f1.decoder.name, f2.decoder.name, f3.decoder.name, f4.decoder.name),
		keys: concatKeys(f1.decoder.keys, f2.decoder.keys, f3.decoder.keys, f4.decoder.keys),
		encode: func(ops Ops[T], o O, b RecordBuilder[T]) RecordBuilder[T] {
			b = f1.encoder(o).EncodeMap(ops, f1.getter(o), b)
			b = f2.encoder(o).EncodeMap(ops, f2.getter(o), b)
			b = f3.encoder(o).EncodeMap(ops, f3.getter(o), b)
			b = f4.encoder(o).EncodeMap(ops, f4.getter(o), b)
			return b
		},
		decode: func(ops Ops[T], input MapLike[T]) result.Result[O] {
			return result.Map4(
				f1.decoder.DecodeMap(ops, input),
				f2.decoder.DecodeMap(ops, input),
				f3.decoder.DecodeMap(ops, input),
				f4.decoder.DecodeMap(ops, input),
				combine,
			)
		},
		comp: newCompressorCache[T](),
	}
}

func Group5[T, O, F1, F2, F3, F4, F5 any](
	f1 RecordField[T, O, F1],
	f2 RecordField[T, O, F2],
	f3 RecordField[T, O, F3],
	f4 RecordField[T, O, F4],
	f5 RecordField[T, O, F5],
	combine func(F1, F2, F3, F4, F5) O,
) MapCodec[T, O] {
	return MapCodec[T, O]{
		name: recordName(f1.decoder.name, f2.decoder.name, f3.decoder.name, f4.decoder.name, f5.decoder.name),
		keys: concatKeys(f1.decoder.keys, f2.decoder.keys, f3.decoder.keys, f4.decoder.keys, f5.decoder.keys),
		encode: func(ops Ops[T], o O, b RecordBuilder[T]) RecordBuilder[T] {
			b = f1.encoder(o).EncodeMap(ops, f1.getter(o), b)
			b = f2.encoder(o).EncodeMap(ops, f2.getter(o), b)
			b = f3.encoder(o).EncodeMap(ops, f3.getter(o), b)
			b = f4.encoder(o).EncodeMap(ops, f4.getter(o), b)
			b = f5.encoder(o).EncodeMap(ops, f5.getter(o), b)
			return b
		},
		decode: func(ops Ops[T], input MapLike[T]) result.Result[O] {
			return result.Map5(
				f1.decoder.DecodeMap(ops, input),
				f2.decoder.DecodeMap(ops, input),
				f3.decoder.DecodeMap(ops, input),
				f4.decoder.DecodeMap(ops, input),
				f5.decoder.DecodeMap(ops, input),
				combine,
			)
		},
		comp: newCompressorCache[T](),
	}
}

func Group6[T, O, F1, F2, F3, F4, F5, F6 any](
	f1 RecordField[T, O, F1],
	f2 RecordField[T, O, F2],
	f3 RecordField[T, O, F3],
	f4 RecordField[T, O, F4],
	f5 RecordField[T, O, F5],
	f6 RecordField[T, O, F6],
	combine func(F1, F2, F3, F4, F5, F6) O,
) MapCodec[T, O] {
	return MapCodec[T, O]{
		name: recordName(f1.decoder.name, f2.decoder.name, f3.decoder.name, f4.decoder.name, f5.decoder.name, f6.decoder.name),
		keys: concatKeys(f1.decoder.keys, f2.decoder.keys, f3.decoder.keys, f4.decoder.keys, f5.decoder.keys, f6.decoder.keys),
		encode: func(ops Ops[T], o O, b RecordBuilder[T]) RecordBuilder[T] {
			b = f1.encoder(o).EncodeMap(ops, f1.getter(o), b)
			b = f2.encoder(o).EncodeMap(ops, f2.getter(o), b)
			b = f3.encoder(o).EncodeMap(ops, f3.getter(o), b)
			b = f4.encoder(o).EncodeMap(ops, f4.getter(o), b)
			b = f5.encoder(o).EncodeMap(ops, f5.getter(o), b)
			b = f6.encoder(o).EncodeMap(ops, f6.getter(o), b)
			return b
		},
		decode: func(ops Ops[T], input MapLike[T]) result.Result[O] {
			return result.Map6(
				f1.decoder.DecodeMap(ops, input),
				f2.decoder.DecodeMap(ops, input),
				f3.decoder.DecodeMap(ops, input),
				f4.decoder.DecodeMap(ops, input),
				f5.decoder.DecodeMap(ops, input),
				f6.decoder.DecodeMap(ops, input),
				combine,
			)
		},
		comp: newCompressorCache[T](),
	}
}
