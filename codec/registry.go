package codec

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/anyform/go-anyform/result"
)

// Registry holds named map codecs for one value family, typically the
// variants of an interface type. Register and Lookup are safe for
// concurrent use.
type Registry[T, A any] struct {
	mu     sync.RWMutex
	byName map[string]MapCodec[T, A]
}

func NewRegistry[T, A any]() *Registry[T, A] {
	return &Registry[T, A]{byName: map[string]MapCodec[T, A]{}}
}

// Register adds mc under name. Registering a name twice is an error.
func (r *Registry[T, A]) Register(name string, mc MapCodec[T, A]) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("codec %q already registered", name)
	}
	r.byName[name] = mc
	return nil
}

func (r *Registry[T, A]) Lookup(name string) (MapCodec[T, A], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	mc, ok := r.byName[name]
	return mc, ok
}

// Names returns the registered names, sorted.
func (r *Registry[T, A]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch routes between registered codecs on a string type field. nameOf
// extracts the registry name from a value for encoding; decoding reads the
// type field and then the payload fields flat beside it from the same input.
// Unknown names fail with the sorted known-name list in the message.
func Dispatch[T, A any](reg *Registry[T, A], typeKey string, nameOf func(A) string) MapCodec[T, A] {
	return MapCodec[T, A]{
		name: fmt.Sprintf("Dispatch[%s]", typeKey),
		keys: func(ops Ops[T]) []T { return StringKeys(ops, typeKey) },
		encode: func(ops Ops[T], value A, b RecordBuilder[T]) RecordBuilder[T] {
			name := nameOf(value)
			b = b.Add(typeKey, ops.CreateString(name))
			mc, ok := reg.Lookup(name)
			if !ok {
				return b.WithError(unknownName(reg, typeKey, name))
			}
			return mc.EncodeMap(ops, value, b)
		},
		decode: func(ops Ops[T], input MapLike[T]) result.Result[A] {
			v, ok := input.GetString(typeKey)
			if !ok {
				return result.Errorf[A]("no key %q in map", typeKey)
			}
			return result.FlatMap(ops.StringValue(v), func(name string) result.Result[A] {
				mc, ok := reg.Lookup(name)
				if !ok {
					return result.Error[A](unknownName(reg, typeKey, name))
				}
				return mc.DecodeMap(ops, input)
			})
		},
		comp: newCompressorCache[T](),
	}
}

func unknownName[T, A any](reg *Registry[T, A], typeKey, name string) string {
	return fmt.Sprintf("unknown %s %q (known: %s)", typeKey, name, strings.Join(reg.Names(), ", "))
}
