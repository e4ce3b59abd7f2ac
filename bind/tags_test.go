package bind

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag  string
		want fieldTag
	}{
		{"", fieldTag{}},
		{"field=host", fieldTag{name: "host"}},
		{"-", fieldTag{omit: true}},
		{"omit", fieldTag{omit: true}},
		{"optional", fieldTag{optional: true}},
		{"required", fieldTag{required: true}},
		{"field=host,optional", fieldTag{name: "host", optional: true}},
		{"field=host, required", fieldTag{name: "host", required: true}},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := parseTag(tt.tag); got != tt.want {
				t.Errorf("parseTag(%q) = %+v, want %+v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestFlatFields(t *testing.T) {
	type meta struct {
		Name   string `anyform:"field=name"`
		Labels map[string]string
	}
	type object struct {
		meta
		Kind    string `anyform:"field=kind"`
		private int
		Skipped string `anyform:"-"`
	}

	fields, err := flatFields(reflect.TypeOf(object{}))
	if err != nil {
		t.Fatalf("flatFields() error = %v", err)
	}

	var names []string
	for _, f := range fields {
		names = append(names, f.name)
	}
	want := []string{"name", "Labels", "kind"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("field names = %v, want %v", names, want)
	}
}

func TestFlatFieldsDuplicate(t *testing.T) {
	type a struct {
		Name string `anyform:"field=name"`
	}
	type b struct {
		a
		Name string `anyform:"field=name"`
	}

	_, err := flatFields(reflect.TypeOf(b{}))
	if err == nil {
		t.Fatal("expected error for duplicate field name")
	}
	if !strings.Contains(err.Error(), `duplicate field "name"`) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNilable(t *testing.T) {
	tests := []struct {
		typ  reflect.Type
		want bool
	}{
		{reflect.TypeOf(""), false},
		{reflect.TypeOf(0), false},
		{reflect.TypeOf(struct{}{}), false},
		{reflect.TypeOf([0]int{}), false},
		{reflect.TypeOf((*int)(nil)), true},
		{reflect.TypeOf([]int(nil)), true},
		{reflect.TypeOf(map[string]int(nil)), true},
		{reflect.TypeOf((*any)(nil)).Elem(), true},
	}
	for _, tt := range tests {
		if got := nilable(tt.typ); got != tt.want {
			t.Errorf("nilable(%s) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}
