package codec

import (
	"fmt"

	"github.com/anyform/go-anyform/result"
)

// RecordBuilder accumulates the fields of a map-shaped value and carries
// error state, so one bad field does not stop the rest of a record from
// being written. Builders are single-use accumulators and are not safe for
// concurrent use.
//
// A fresh builder starts Stable; lifecycles of added results fold in.
type RecordBuilder[T any] interface {
	Ops() Ops[T]
	// Add appends an entry under a string key.
	Add(key string, value T) RecordBuilder[T]
	// AddValue appends an entry with an already-built key.
	AddValue(key, value T) RecordBuilder[T]
	// AddResult appends the value inside r. When r failed, its message joins
	// the builder's error state and its partial value, if any, is still
	// written.
	AddResult(key string, r result.Result[T]) RecordBuilder[T]
	// WithError merges an error message into the builder's error state.
	WithError(message string) RecordBuilder[T]
	SetLifecycle(lc result.Lifecycle) RecordBuilder[T]
	// MapError transforms the error state accumulated so far.
	MapError(f func(string) string) RecordBuilder[T]
	// Build merges the accumulated entries into prefix. With error state the
	// result is an error whose partial value is the map built from the
	// surviving entries.
	Build(prefix T) result.Result[T]
}

// NewMapBuilder returns the standard keyed builder for ops.
func NewMapBuilder[T any](ops Ops[T]) RecordBuilder[T] {
	return &mapBuilder[T]{ops: ops}
}

type mapBuilder[T any] struct {
	ops       Ops[T]
	entries   []MapEntry[T]
	message   string
	failed    bool
	lifecycle result.Lifecycle
}

func (b *mapBuilder[T]) Ops() Ops[T] { return b.ops }

func (b *mapBuilder[T]) Add(key string, value T) RecordBuilder[T] {
	return b.AddValue(b.ops.CreateString(key), value)
}

func (b *mapBuilder[T]) AddValue(key, value T) RecordBuilder[T] {
	b.entries = append(b.entries, MapEntry[T]{Key: key, Value: value})
	return b
}

func (b *mapBuilder[T]) AddResult(key string, r result.Result[T]) RecordBuilder[T] {
	b.lifecycle = b.lifecycle.Add(r.Lifecycle())
	if v, ok := r.Value(); ok {
		return b.Add(key, v)
	}
	b.WithError(r.Message())
	if p, ok := r.Partial(); ok {
		b.Add(key, p)
	}
	return b
}

func (b *mapBuilder[T]) WithError(message string) RecordBuilder[T] {
	if b.failed {
		b.message = b.message + "; " + message
		return b
	}
	b.failed = true
	b.message = message
	return b
}

func (b *mapBuilder[T]) SetLifecycle(lc result.Lifecycle) RecordBuilder[T] {
	b.lifecycle = lc
	return b
}

func (b *mapBuilder[T]) MapError(f func(string) string) RecordBuilder[T] {
	if b.failed {
		b.message = f(b.message)
	}
	return b
}

func (b *mapBuilder[T]) Build(prefix T) result.Result[T] {
	merged := b.ops.MergeToMap(prefix, b.entries)
	if !b.failed {
		return merged.SetLifecycle(b.lifecycle)
	}
	msg := b.message
	if merged.Message() != "" {
		msg = msg + "; " + merged.Message()
	}
	if v, ok := merged.Value(); ok {
		return result.ErrorPartial(msg, v).SetLifecycle(b.lifecycle)
	}
	if p, ok := merged.Partial(); ok {
		return result.ErrorPartial(msg, p).SetLifecycle(b.lifecycle)
	}
	return result.Error[T](msg).SetLifecycle(b.lifecycle)
}

// newCompressedBuilder returns a positional builder writing into slots
// indexed by comp. Unset slots stay Empty.
func newCompressedBuilder[T any](ops Ops[T], comp *KeyCompressor[T]) RecordBuilder[T] {
	slots := make([]T, comp.Size())
	for i := range slots {
		slots[i] = ops.Empty()
	}
	return &compressedBuilder[T]{ops: ops, comp: comp, slots: slots}
}

type compressedBuilder[T any] struct {
	ops       Ops[T]
	comp      *KeyCompressor[T]
	slots     []T
	message   string
	failed    bool
	lifecycle result.Lifecycle
}

func (b *compressedBuilder[T]) Ops() Ops[T] { return b.ops }

func (b *compressedBuilder[T]) Add(key string, value T) RecordBuilder[T] {
	return b.set(b.comp.CompressString(key), fmt.Sprintf("%q", key), value)
}

func (b *compressedBuilder[T]) AddValue(key, value T) RecordBuilder[T] {
	return b.set(b.comp.Compress(key), fmt.Sprintf("%v", key), value)
}

func (b *compressedBuilder[T]) set(id int, key string, value T) RecordBuilder[T] {
	if id < 0 || id >= len(b.slots) {
		return b.WithError(fmt.Sprintf("unknown key %s in compressed record", key))
	}
	b.slots[id] = value
	return b
}

func (b *compressedBuilder[T]) AddResult(key string, r result.Result[T]) RecordBuilder[T] {
	b.lifecycle = b.lifecycle.Add(r.Lifecycle())
	if v, ok := r.Value(); ok {
		return b.Add(key, v)
	}
	b.WithError(r.Message())
	if p, ok := r.Partial(); ok {
		b.Add(key, p)
	}
	return b
}

func (b *compressedBuilder[T]) WithError(message string) RecordBuilder[T] {
	if b.failed {
		b.message = b.message + "; " + message
		return b
	}
	b.failed = true
	b.message = message
	return b
}

func (b *compressedBuilder[T]) SetLifecycle(lc result.Lifecycle) RecordBuilder[T] {
	b.lifecycle = lc
	return b
}

func (b *compressedBuilder[T]) MapError(f func(string) string) RecordBuilder[T] {
	if b.failed {
		b.message = f(b.message)
	}
	return b
}

func (b *compressedBuilder[T]) Build(prefix T) result.Result[T] {
	if !b.ops.IsEmpty(prefix) {
		return result.Error[T]("cannot merge compressed record into non-empty prefix").SetLifecycle(b.lifecycle)
	}
	list := b.ops.CreateList(b.slots)
	if !b.failed {
		return result.Success(list).SetLifecycle(b.lifecycle)
	}
	return result.ErrorPartial(b.message, list).SetLifecycle(b.lifecycle)
}
