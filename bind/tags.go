package bind

import (
	"fmt"
	"reflect"
	"strings"
)

// TagName is the struct tag key this package reads.
const TagName = "anyform"

type fieldTag struct {
	name     string
	omit     bool
	optional bool
	required bool
}

// parseTag parses a comma-separated anyform tag: "field=name" renames,
// "-" or "omit" skips, "optional" lets the field be absent on decode,
// "required" makes absence an error even for nilable types.
func parseTag(tag string) fieldTag {
	var ft fieldTag
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "-" || part == "omit":
			ft.omit = true
		case part == "optional":
			ft.optional = true
		case part == "required":
			ft.required = true
		case strings.HasPrefix(part, "field="):
			ft.name = strings.TrimPrefix(part, "field=")
		}
	}
	return ft
}

// flatField is one bindable field of a struct, with anonymous struct
// fields flattened into their parent.
type flatField struct {
	name     string
	index    []int
	typ      reflect.Type
	optional bool
	required bool
}

// flatFields lists the bindable fields of a struct type in declaration
// order. Unexported fields and omitted fields are dropped; anonymous
// struct fields without a rename tag are descended into.
func flatFields(typ reflect.Type) ([]flatField, error) {
	var out []flatField
	seen := map[string]bool{}
	var walk func(t reflect.Type, index []int) error
	walk = func(t reflect.Type, index []int) error {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			ft := parseTag(f.Tag.Get(TagName))
			if ft.omit {
				continue
			}
			idx := append(append([]int(nil), index...), i)
			// Embedded structs contribute their exported fields even
			// when the embedded type itself is unexported.
			if f.Anonymous && f.Type.Kind() == reflect.Struct && ft.name == "" {
				if err := walk(f.Type, idx); err != nil {
					return err
				}
				continue
			}
			if !f.IsExported() {
				continue
			}
			name := f.Name
			if ft.name != "" {
				name = ft.name
			}
			if seen[name] {
				return fmt.Errorf("duplicate field %q", name)
			}
			seen[name] = true
			out = append(out, flatField{
				name:     name,
				index:    idx,
				typ:      f.Type,
				optional: ft.optional,
				required: ft.required,
			})
		}
		return nil
	}
	if err := walk(typ, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// nilable reports whether a type has a natural absent value, making a
// missing field acceptable without an optional tag.
func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	}
	return false
}

func joinPath(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
