package codec

import (
	"sync"
)

// Keyable exposes the finite key set of a map-shaped codec. Keys returns a
// freshly built slice on every call.
type Keyable[T any] interface {
	Keys(ops Ops[T]) []T
}

// Compressable is a Keyable whose keys can be compressed to dense ids.
type Compressable[T any] interface {
	Keyable[T]
	Compressor(ops Ops[T]) *KeyCompressor[T]
}

// StringKeys builds key values for names in order.
func StringKeys[T any](ops Ops[T], names ...string) []T {
	keys := make([]T, 0, len(names))
	for _, n := range names {
		keys = append(keys, ops.CreateString(n))
	}
	return keys
}

// KeyCompressor maps a fixed key set to dense ids 0..Size()-1 and back.
// Ids follow first-seen order; duplicate keys (by string image) are ignored
// so the first occurrence fixes the id. Immutable after construction.
type KeyCompressor[T any] struct {
	ops      Ops[T]
	byIndex  []T
	byString map[string]int
}

// NewKeyCompressor consumes keys exactly once. Keys without a string image
// still occupy an id for positional decompression but can never be
// compressed.
func NewKeyCompressor[T any](ops Ops[T], keys []T) *KeyCompressor[T] {
	kc := &KeyCompressor[T]{ops: ops, byString: map[string]int{}}
	for _, key := range keys {
		if s, ok := ops.StringValue(key).Value(); ok {
			if _, seen := kc.byString[s]; seen {
				continue
			}
			kc.byString[s] = len(kc.byIndex)
		}
		kc.byIndex = append(kc.byIndex, key)
	}
	return kc
}

// Compress returns the id for key, or -1 when the key is unknown.
func (kc *KeyCompressor[T]) Compress(key T) int {
	s, ok := kc.ops.StringValue(key).Value()
	if !ok {
		return -1
	}
	return kc.CompressString(s)
}

// CompressString returns the id for a string key, or -1 when unknown.
func (kc *KeyCompressor[T]) CompressString(key string) int {
	id, ok := kc.byString[key]
	if !ok {
		return -1
	}
	return id
}

// Decompress returns the key for id. The second return is false when id is
// out of range.
func (kc *KeyCompressor[T]) Decompress(id int) (T, bool) {
	if id < 0 || id >= len(kc.byIndex) {
		var zero T
		return zero, false
	}
	return kc.byIndex[id], true
}

func (kc *KeyCompressor[T]) Size() int { return len(kc.byIndex) }

// compressorCache holds one KeyCompressor per ops identity. Each map-shaped
// codec value owns a cache; compute-if-absent runs under the mutex so at
// most one compressor is ever observable per ops.
type compressorCache[T any] struct {
	mu    sync.Mutex
	byOps map[Ops[T]]*KeyCompressor[T]
}

func newCompressorCache[T any]() *compressorCache[T] {
	return &compressorCache[T]{}
}

func (c *compressorCache[T]) get(ops Ops[T], keys func(Ops[T]) []T) *KeyCompressor[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if kc, ok := c.byOps[ops]; ok {
		return kc
	}
	if c.byOps == nil {
		c.byOps = map[Ops[T]]*KeyCompressor[T]{}
	}
	kc := NewKeyCompressor(ops, keys(ops))
	c.byOps[ops] = kc
	return kc
}

// compressedView is the MapLike over a positional entry list. Empty slots
// are absent: Get misses them and Entries omits them.
func compressedView[T any](ops Ops[T], comp *KeyCompressor[T], entries []T) MapLike[T] {
	return &compressedMapLike[T]{ops: ops, comp: comp, entries: entries}
}

type compressedMapLike[T any] struct {
	ops     Ops[T]
	comp    *KeyCompressor[T]
	entries []T
}

func (m *compressedMapLike[T]) Get(key T) (T, bool) {
	return m.at(m.comp.Compress(key))
}

func (m *compressedMapLike[T]) GetString(key string) (T, bool) {
	return m.at(m.comp.CompressString(key))
}

func (m *compressedMapLike[T]) at(id int) (T, bool) {
	if id < 0 || id >= len(m.entries) {
		var zero T
		return zero, false
	}
	v := m.entries[id]
	if m.ops.IsEmpty(v) {
		var zero T
		return zero, false
	}
	return v, true
}

func (m *compressedMapLike[T]) Entries() []MapEntry[T] {
	entries := make([]MapEntry[T], 0, len(m.entries))
	for id, v := range m.entries {
		if m.ops.IsEmpty(v) {
			continue
		}
		key, ok := m.comp.Decompress(id)
		if !ok {
			continue
		}
		entries = append(entries, MapEntry[T]{Key: key, Value: v})
	}
	return entries
}
