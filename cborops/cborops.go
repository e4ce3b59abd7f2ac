// Package cborops implements codec.Ops over raw CBOR values.
//
// Values are cbor.RawMessage: containers hold their children as
// still-encoded sub-messages, so codecs can walk a document without
// decoding the parts they do not touch. Encoding uses Core
// Deterministic Encoding (RFC 8949 §4.2), so the same logical data
// always produces identical bytes.
//
// The Compressed singleton writes records as positional CBOR arrays
// instead of string-keyed maps, which is where key compression pays
// off in a binary format.
package cborops

import (
	"fmt"
	"math"
	"sort"

	"github.com/fxamacker/cbor/v2"

	"github.com/anyform/go-anyform/codec"
	"github.com/anyform/go-anyform/result"
)

var (
	// Default is the Ops singleton over raw CBOR values.
	Default codec.Ops[cbor.RawMessage] = ops{}
	// Compressed is Default with key compression.
	Compressed codec.Ops[cbor.RawMessage] = ops{compressed: true}
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cborops: encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("cborops: decoder initialization failed: " + err.Error())
	}
}

const nullByte = 0xf6

type ops struct{ compressed bool }

func (ops) Empty() cbor.RawMessage { return cbor.RawMessage{nullByte} }

func (ops) IsEmpty(v cbor.RawMessage) bool {
	return len(v) == 0 || (len(v) == 1 && v[0] == nullByte)
}

func (ops) CreateString(s string) cbor.RawMessage { return mustMarshal(s) }

func (ops) StringValue(v cbor.RawMessage) result.Result[string] {
	if s, ok := probe(v).(string); ok {
		return result.Success(s)
	}
	return result.Errorf[string]("not a string: %s", diag(v))
}

func (ops) CreateBool(b bool) cbor.RawMessage { return mustMarshal(b) }

func (ops) BoolValue(v cbor.RawMessage) result.Result[bool] {
	if b, ok := probe(v).(bool); ok {
		return result.Success(b)
	}
	return result.Errorf[bool]("not a bool: %s", diag(v))
}

func (ops) CreateInt(i int64) cbor.RawMessage { return mustMarshal(i) }

func (ops) IntValue(v cbor.RawMessage) result.Result[int64] {
	switch n := probe(v).(type) {
	case int64:
		return result.Success(n)
	case uint64:
		if n <= math.MaxInt64 {
			return result.Success(int64(n))
		}
	}
	return result.Errorf[int64]("not an int: %s", diag(v))
}

func (ops) CreateFloat(f float64) cbor.RawMessage { return mustMarshal(f) }

func (ops) FloatValue(v cbor.RawMessage) result.Result[float64] {
	switch n := probe(v).(type) {
	case float64:
		return result.Success(n)
	case float32:
		return result.Success(float64(n))
	case int64:
		return result.Success(float64(n))
	case uint64:
		return result.Success(float64(n))
	}
	return result.Errorf[float64]("not a number: %s", diag(v))
}

func (ops) CreateList(items []cbor.RawMessage) cbor.RawMessage {
	if items == nil {
		items = []cbor.RawMessage{}
	}
	return mustMarshal(items)
}

func (ops) ListValue(v cbor.RawMessage) result.Result[[]cbor.RawMessage] {
	var items []cbor.RawMessage
	if majorType(v) != majorArray || decMode.Unmarshal(v, &items) != nil {
		return result.Errorf[[]cbor.RawMessage]("not a list: %s", diag(v))
	}
	if items == nil {
		items = []cbor.RawMessage{}
	}
	return result.Success(items)
}

func (ops) CreateMap(entries []codec.MapEntry[cbor.RawMessage]) cbor.RawMessage {
	m := make(map[string]cbor.RawMessage, len(entries))
	for _, e := range entries {
		var k string
		if err := decMode.Unmarshal(e.Key, &k); err == nil {
			m[k] = e.Value
		}
	}
	return mustMarshal(m)
}

func (o ops) MapValue(v cbor.RawMessage) result.Result[codec.MapLike[cbor.RawMessage]] {
	m, err := mapOf(v)
	if err != nil {
		return result.Errorf[codec.MapLike[cbor.RawMessage]]("not a map: %s", diag(v))
	}
	return result.Success(codec.StringMapLike[cbor.RawMessage](o, sortedKeys(m), m))
}

func (o ops) MergeToMap(target cbor.RawMessage, entries []codec.MapEntry[cbor.RawMessage]) result.Result[cbor.RawMessage] {
	var out map[string]cbor.RawMessage
	if o.IsEmpty(target) {
		out = make(map[string]cbor.RawMessage, len(entries))
	} else {
		var err error
		out, err = mapOf(target)
		if err != nil {
			return result.ErrorPartial(fmt.Sprintf("cannot merge entries into %s: not a map", diag(target)), target)
		}
	}
	for _, e := range entries {
		var k string
		if err := decMode.Unmarshal(e.Key, &k); err != nil {
			return result.ErrorPartial(fmt.Sprintf("key %s is not a string", diag(e.Key)), mustMarshal(out))
		}
		out[k] = e.Value
	}
	return result.Success(mustMarshal(out))
}

func (o ops) MapBuilder() codec.RecordBuilder[cbor.RawMessage] {
	return codec.NewMapBuilder[cbor.RawMessage](o)
}

func (o ops) CompressMaps() bool { return o.compressed }

// probe decodes v into its natural Go shape, or nil when v is not
// well-formed CBOR.
func probe(v cbor.RawMessage) any {
	var out any
	if err := decMode.Unmarshal(v, &out); err != nil {
		return nil
	}
	return out
}

// CBOR major types (RFC 8949 §3).
const (
	majorArray = 4
	majorMap   = 5
)

func majorType(v cbor.RawMessage) byte {
	if len(v) == 0 {
		return 0xff
	}
	return v[0] >> 5
}

func mapOf(v cbor.RawMessage) (map[string]cbor.RawMessage, error) {
	if majorType(v) != majorMap {
		return nil, fmt.Errorf("major type %d is not a map", majorType(v))
	}
	var m map[string]cbor.RawMessage
	if err := decMode.Unmarshal(v, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]cbor.RawMessage{}
	}
	return m, nil
}

func sortedKeys(m map[string]cbor.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func mustMarshal(v any) cbor.RawMessage {
	out, err := encMode.Marshal(v)
	if err != nil {
		panic("cborops: marshal failed: " + err.Error())
	}
	return out
}

// diag renders v in CBOR diagnostic notation for error messages.
func diag(v cbor.RawMessage) string {
	if len(v) == 0 {
		return "empty"
	}
	s, err := cbor.Diagnose(v)
	if err != nil {
		return fmt.Sprintf("%x", []byte(v))
	}
	return s
}
