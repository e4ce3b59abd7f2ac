package bind

import (
	"fmt"
	"reflect"

	"github.com/anyform/go-anyform/codec"
	"github.com/anyform/go-anyform/form"
	"github.com/anyform/go-anyform/formops"
	"github.com/anyform/go-anyform/result"
)

// NodeCodec derives a codec for A over *form.Node values using the
// reflection rules of ToNode and FromNode. Struct tags apply as documented
// on this package. The derived codec composes with everything in codec:
// it can be a record field, a list element, or validated.
func NodeCodec[A any]() codec.Codec[*form.Node, A] {
	name := boundName[A]()
	return codec.NewCodec(name,
		codec.NewEncoder(name, func(ops codec.Ops[*form.Node], value A, prefix *form.Node) result.Result[*form.Node] {
			n, err := ToNode(value)
			if err != nil {
				return result.Error[*form.Node](err.Error())
			}
			return codec.MergeValue(ops, prefix, n)
		}),
		codec.NewDecoder(name, func(ops codec.Ops[*form.Node], input *form.Node) result.Result[codec.Pair[A, *form.Node]] {
			var a A
			if err := FromNode(input, &a); err != nil {
				return result.Error[codec.Pair[A, *form.Node]](err.Error())
			}
			return result.Success(codec.PairOf(a, input))
		}))
}

// CodecVia derives a codec for A over an arbitrary serialized form T.
// Values pass through *form.Node: encoding reflects A into a node and
// converts it to T with codec.Convert, decoding converts T to a node and
// reflects it back. T's Ops must be able to represent the node's shape.
func CodecVia[T, A any]() codec.Codec[T, A] {
	name := boundName[A]()
	return codec.NewCodec(name,
		codec.NewEncoder(name, func(ops codec.Ops[T], value A, prefix T) result.Result[T] {
			n, err := ToNode(value)
			if err != nil {
				return result.Error[T](err.Error())
			}
			return codec.MergeValue(ops, prefix, codec.Convert(formops.Default, ops, n))
		}),
		codec.NewDecoder(name, func(ops codec.Ops[T], input T) result.Result[codec.Pair[A, T]] {
			n := codec.Convert(ops, formops.Default, input)
			var a A
			if err := FromNode(n, &a); err != nil {
				return result.Error[codec.Pair[A, T]](err.Error())
			}
			return result.Success(codec.PairOf(a, input))
		}))
}

func boundName[A any]() string {
	return fmt.Sprintf("Bound[%s]", reflect.TypeFor[A]().String())
}
