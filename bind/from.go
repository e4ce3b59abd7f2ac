package bind

import (
	"encoding"
	"fmt"
	"reflect"

	"github.com/anyform/go-anyform/form"
)

// FromNode converts a form tree to the Go value pointed to by v.
//
// Decoding is strict: a string node only fills string kinds, an int
// node integer kinds, and so on, with int nodes also accepted by
// float kinds. Null fills any target with its zero value. Struct
// decoding honors anyform tags; a missing field errors unless the
// field is tagged optional or has a nilable type, and a field tagged
// required errors when missing regardless of type. Targets
// implementing encoding.TextUnmarshaler are filled from string nodes,
// and *form.Node targets receive a clone of the subtree.
func FromNode(n *form.Node, v any) error {
	if v == nil {
		return &UnmarshalError{Message: "destination value cannot be nil"}
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer {
		return &UnmarshalError{Message: "destination value must be a pointer"}
	}
	if val.IsNil() {
		return &UnmarshalError{Message: "destination pointer cannot be nil"}
	}
	return fromNode(n, val.Elem(), "")
}

func fromNode(n *form.Node, val reflect.Value, path string) error {
	if n == nil {
		return &UnmarshalError{FieldPath: path, Message: "node is nil"}
	}

	if val.Type() == nodeType {
		val.Set(reflect.ValueOf(n.Clone()))
		return nil
	}

	if val.Kind() == reflect.Pointer {
		if n.Type == form.NullType {
			val.Set(reflect.Zero(val.Type()))
			return nil
		}
		if val.IsNil() {
			val.Set(reflect.New(val.Type().Elem()))
		}
		return fromNode(n, val.Elem(), path)
	}

	if n.Type == form.NullType {
		val.Set(reflect.Zero(val.Type()))
		return nil
	}

	if val.CanAddr() {
		if tu, ok := val.Addr().Interface().(encoding.TextUnmarshaler); ok {
			if n.Type != form.StringType {
				return &UnmarshalError{
					FieldPath: path,
					Message:   fmt.Sprintf("expected string, got %s", n.Type),
				}
			}
			if err := tu.UnmarshalText([]byte(n.Str)); err != nil {
				return &UnmarshalError{FieldPath: path, Message: err.Error(), Err: err}
			}
			return nil
		}
	}

	switch val.Kind() {
	case reflect.String:
		if n.Type != form.StringType {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("expected string, got %s", n.Type),
			}
		}
		val.SetString(n.Str)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n.Type != form.IntType {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("expected int, got %s", n.Type),
			}
		}
		if val.OverflowInt(n.Int) {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("value %d overflows %s", n.Int, val.Type()),
			}
		}
		val.SetInt(n.Int)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n.Type != form.IntType {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("expected int, got %s", n.Type),
			}
		}
		if n.Int < 0 {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("negative value %d for %s", n.Int, val.Type()),
			}
		}
		if val.OverflowUint(uint64(n.Int)) {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("value %d overflows %s", n.Int, val.Type()),
			}
		}
		val.SetUint(uint64(n.Int))
		return nil

	case reflect.Float32, reflect.Float64:
		var f float64
		switch n.Type {
		case form.FloatType:
			f = n.Float
		case form.IntType:
			f = float64(n.Int)
		default:
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("expected number, got %s", n.Type),
			}
		}
		if val.OverflowFloat(f) {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("value %v overflows %s", f, val.Type()),
			}
		}
		val.SetFloat(f)
		return nil

	case reflect.Bool:
		if n.Type != form.BoolType {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("expected bool, got %s", n.Type),
			}
		}
		val.SetBool(n.Bool)
		return nil

	case reflect.Slice:
		if n.Type != form.ListType {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("expected list, got %s", n.Type),
			}
		}
		out := reflect.MakeSlice(val.Type(), len(n.Values), len(n.Values))
		for i, el := range n.Values {
			if err := fromNode(el, out.Index(i), indexPath(path, i)); err != nil {
				return err
			}
		}
		val.Set(out)
		return nil

	case reflect.Array:
		if n.Type != form.ListType {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("expected list, got %s", n.Type),
			}
		}
		if len(n.Values) != val.Len() {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("array length mismatch: expected %d, got %d", val.Len(), len(n.Values)),
			}
		}
		for i, el := range n.Values {
			if err := fromNode(el, val.Index(i), indexPath(path, i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Map:
		return mapFromNode(n, val, path)

	case reflect.Struct:
		return structFromNode(n, val, path)

	case reflect.Interface:
		if val.Type().NumMethod() != 0 {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("unsupported type: %s", val.Type()),
			}
		}
		if a := n.ToAny(); a != nil {
			val.Set(reflect.ValueOf(a))
		} else {
			val.Set(reflect.Zero(val.Type()))
		}
		return nil

	default:
		return &UnmarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("unsupported type: %s", val.Type()),
		}
	}
}

func mapFromNode(n *form.Node, val reflect.Value, path string) error {
	if n.Type != form.MapType {
		return &UnmarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("expected map, got %s", n.Type),
		}
	}
	typ := val.Type()
	if typ.Key().Kind() != reflect.String {
		return &UnmarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("map keys must be strings, got %s", typ.Key()),
		}
	}

	out := reflect.MakeMapWithSize(typ, len(n.Fields))
	for i, key := range n.Fields {
		elem := reflect.New(typ.Elem()).Elem()
		if err := fromNode(n.Values[i], elem, joinPath(path, key)); err != nil {
			return err
		}
		out.SetMapIndex(reflect.ValueOf(key).Convert(typ.Key()), elem)
	}
	val.Set(out)
	return nil
}

func structFromNode(n *form.Node, val reflect.Value, path string) error {
	if n.Type != form.MapType {
		return &UnmarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("expected map, got %s", n.Type),
		}
	}
	fields, err := flatFields(val.Type())
	if err != nil {
		return &UnmarshalError{FieldPath: path, Message: err.Error()}
	}

	for _, f := range fields {
		fn := n.Get(f.name)
		if fn == nil {
			if f.required || (!f.optional && !nilable(f.typ)) {
				return &UnmarshalError{
					FieldPath: path,
					Message:   fmt.Sprintf("missing field %q", f.name),
				}
			}
			continue
		}
		if err := fromNode(fn, val.FieldByIndex(f.index), joinPath(path, f.name)); err != nil {
			return err
		}
	}
	return nil
}
