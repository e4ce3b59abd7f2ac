package bind

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/anyform/go-anyform/form"
)

// ToNode converts a Go value to a form tree by reflection.
//
// String, bool, integer, and float kinds map to the matching scalar
// nodes; uint values beyond the int64 range are errors. Nil pointers,
// maps, slices, and interfaces map to null. Slices and arrays map to
// lists, string-keyed maps map to map nodes in sorted key order, and
// structs map to map nodes in field declaration order, honoring
// anyform struct tags. Types implementing encoding.TextMarshaler map
// to string nodes, and *form.Node values are cloned into the output
// as-is.
func ToNode(v any) (*form.Node, error) {
	if v == nil {
		return form.Null(), nil
	}
	visited := make(map[uintptr]string)
	return toNode(reflect.ValueOf(v), "", visited)
}

func toNode(val reflect.Value, path string, visited map[uintptr]string) (*form.Node, error) {
	if !val.IsValid() {
		return form.Null(), nil
	}

	if val.Type() == nodeType {
		n := val.Interface().(*form.Node)
		if n == nil {
			return form.Null(), nil
		}
		return n.Clone(), nil
	}

	kind := val.Kind()
	if kind == reflect.Pointer {
		if val.IsNil() {
			return form.Null(), nil
		}
		if tm, ok := val.Interface().(encoding.TextMarshaler); ok {
			return textToNode(tm, path)
		}
		addr := val.Pointer()
		if prev, seen := visited[addr]; seen {
			return nil, &MarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("circular reference via %s", prev),
			}
		}
		visited[addr] = path
		node, err := toNode(val.Elem(), path, visited)
		delete(visited, addr)
		return node, err
	}

	if tm, ok := val.Interface().(encoding.TextMarshaler); ok {
		return textToNode(tm, path)
	}
	if val.CanAddr() {
		if tm, ok := val.Addr().Interface().(encoding.TextMarshaler); ok {
			return textToNode(tm, path)
		}
	}

	switch kind {
	case reflect.String:
		return form.FromString(val.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return form.FromInt(val.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := val.Uint()
		if u > math.MaxInt64 {
			return nil, &MarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("value %d overflows int64", u),
			}
		}
		return form.FromInt(int64(u)), nil

	case reflect.Float32, reflect.Float64:
		return form.FromFloat(val.Float()), nil

	case reflect.Bool:
		return form.FromBool(val.Bool()), nil

	case reflect.Slice, reflect.Array:
		return sliceToNode(val, path, visited)

	case reflect.Map:
		return mapToNode(val, path, visited)

	case reflect.Struct:
		return structToNode(val, path, visited)

	case reflect.Interface:
		if val.IsNil() {
			return form.Null(), nil
		}
		return toNode(val.Elem(), path, visited)

	default:
		return nil, &MarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("unsupported type: %s", val.Type()),
		}
	}
}

var nodeType = reflect.TypeOf((*form.Node)(nil))

func textToNode(tm encoding.TextMarshaler, path string) (*form.Node, error) {
	text, err := tm.MarshalText()
	if err != nil {
		return nil, &MarshalError{FieldPath: path, Message: err.Error(), Err: err}
	}
	return form.FromString(string(text)), nil
}

func sliceToNode(val reflect.Value, path string, visited map[uintptr]string) (*form.Node, error) {
	if val.Kind() == reflect.Slice {
		if val.IsNil() {
			return form.Null(), nil
		}
		addr := val.Pointer()
		if prev, seen := visited[addr]; seen {
			return nil, &MarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("circular reference via %s", prev),
			}
		}
		visited[addr] = path
		defer delete(visited, addr)
	}

	res := form.List()
	for i := 0; i < val.Len(); i++ {
		node, err := toNode(val.Index(i), indexPath(path, i), visited)
		if err != nil {
			return nil, err
		}
		res.Append(node)
	}
	return res, nil
}

func mapToNode(val reflect.Value, path string, visited map[uintptr]string) (*form.Node, error) {
	if val.IsNil() {
		return form.Null(), nil
	}
	if val.Type().Key().Kind() != reflect.String {
		return nil, &MarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("map keys must be strings, got %s", val.Type().Key()),
		}
	}

	addr := val.Pointer()
	if prev, seen := visited[addr]; seen {
		return nil, &MarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("circular reference via %s", prev),
		}
	}
	visited[addr] = path
	defer delete(visited, addr)

	keys := make([]string, 0, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key().String())
	}
	sort.Strings(keys)

	res := form.Map()
	for _, key := range keys {
		node, err := toNode(val.MapIndex(reflect.ValueOf(key).Convert(val.Type().Key())), joinPath(path, key), visited)
		if err != nil {
			return nil, err
		}
		res.Set(key, node)
	}
	return res, nil
}

func structToNode(val reflect.Value, path string, visited map[uintptr]string) (*form.Node, error) {
	fields, err := flatFields(val.Type())
	if err != nil {
		return nil, &MarshalError{FieldPath: path, Message: err.Error()}
	}

	res := form.Map()
	for _, f := range fields {
		node, err := toNode(val.FieldByIndex(f.index), joinPath(path, f.name), visited)
		if err != nil {
			return nil, err
		}
		res.Set(f.name, node)
	}
	return res, nil
}
