package bind

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/anyform/go-anyform/form"
)

func TestFromNodeScalars(t *testing.T) {
	tests := []struct {
		name string
		node *form.Node
		want any
	}{
		{"string", form.FromString("hello"), "hello"},
		{"int", form.FromInt(42), 42},
		{"int64", form.FromInt(123456789), int64(123456789)},
		{"uint", form.FromInt(7), uint(7)},
		{"float64", form.FromFloat(2.5), 2.5},
		{"float64 from int", form.FromInt(3), 3.0},
		{"bool", form.FromBool(true), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := reflect.New(reflect.TypeOf(tt.want))
			if err := FromNode(tt.node, dst.Interface()); err != nil {
				t.Fatalf("FromNode() error = %v", err)
			}
			if got := dst.Elem().Interface(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FromNode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromNodeNullZeroes(t *testing.T) {
	s := "leftover"
	if err := FromNode(form.Null(), &s); err != nil {
		t.Fatalf("FromNode() error = %v", err)
	}
	if s != "" {
		t.Errorf("s = %q, want empty", s)
	}

	p := &s
	if err := FromNode(form.Null(), &p); err != nil {
		t.Fatalf("FromNode() error = %v", err)
	}
	if p != nil {
		t.Errorf("p = %v, want nil", p)
	}
}

func TestFromNodeTypeMismatch(t *testing.T) {
	tests := []struct {
		name string
		node *form.Node
		dst  any
		msg  string
	}{
		{"string into int", form.FromString("x"), new(int), "expected int, got string"},
		{"float into int", form.FromFloat(2.5), new(int), "expected int, got float"},
		{"int into string", form.FromInt(1), new(string), "expected string, got int"},
		{"int into bool", form.FromInt(1), new(bool), "expected bool, got int"},
		{"string into float", form.FromString("x"), new(float64), "expected number, got string"},
		{"map into slice", form.Map(), new([]int), "expected list, got map"},
		{"list into struct", form.List(), new(struct{}), "expected map, got list"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromNode(tt.node, tt.dst)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error = %v, want substring %q", err, tt.msg)
			}
		})
	}
}

func TestFromNodeIntBounds(t *testing.T) {
	t.Run("overflow int8", func(t *testing.T) {
		var v int8
		err := FromNode(form.FromInt(300), &v)
		if err == nil || !strings.Contains(err.Error(), "overflows int8") {
			t.Errorf("error = %v, want overflow", err)
		}
	})

	t.Run("negative into uint", func(t *testing.T) {
		var v uint
		err := FromNode(form.FromInt(-1), &v)
		if err == nil || !strings.Contains(err.Error(), "negative value -1") {
			t.Errorf("error = %v, want negative value", err)
		}
	})

	t.Run("overflow uint8", func(t *testing.T) {
		var v uint8
		err := FromNode(form.FromInt(300), &v)
		if err == nil || !strings.Contains(err.Error(), "overflows uint8") {
			t.Errorf("error = %v, want overflow", err)
		}
	})
}

func TestFromNodePointers(t *testing.T) {
	t.Run("allocates", func(t *testing.T) {
		var p *int
		if err := FromNode(form.FromInt(42), &p); err != nil {
			t.Fatalf("FromNode() error = %v", err)
		}
		if p == nil || *p != 42 {
			t.Errorf("p = %v, want pointer to 42", p)
		}
	})

	t.Run("null leaves nil", func(t *testing.T) {
		var p *int
		if err := FromNode(form.Null(), &p); err != nil {
			t.Fatalf("FromNode() error = %v", err)
		}
		if p != nil {
			t.Errorf("p = %v, want nil", p)
		}
	})
}

func TestFromNodeSlice(t *testing.T) {
	node := form.List().Append(form.FromInt(1), form.FromInt(2), form.FromInt(3))
	var got []int
	if err := FromNode(node, &got); err != nil {
		t.Fatalf("FromNode() error = %v", err)
	}
	if !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("FromNode() = %v, want [1 2 3]", got)
	}
}

func TestFromNodeArray(t *testing.T) {
	node := form.List().Append(form.FromString("a"), form.FromString("b"))

	var got [2]string
	if err := FromNode(node, &got); err != nil {
		t.Fatalf("FromNode() error = %v", err)
	}
	if got != [2]string{"a", "b"} {
		t.Errorf("FromNode() = %v", got)
	}

	var short [3]string
	err := FromNode(node, &short)
	if err == nil || !strings.Contains(err.Error(), "array length mismatch: expected 3, got 2") {
		t.Errorf("error = %v, want length mismatch", err)
	}
}

func TestFromNodeMap(t *testing.T) {
	node := form.Map().
		Set("b", form.FromInt(2)).
		Set("a", form.FromInt(1))

	var got map[string]int
	if err := FromNode(node, &got); err != nil {
		t.Fatalf("FromNode() error = %v", err)
	}
	if !reflect.DeepEqual(got, map[string]int{"a": 1, "b": 2}) {
		t.Errorf("FromNode() = %v", got)
	}

	t.Run("named key type", func(t *testing.T) {
		type label string
		var m map[label]int
		if err := FromNode(node, &m); err != nil {
			t.Fatalf("FromNode() error = %v", err)
		}
		if m["a"] != 1 || m["b"] != 2 {
			t.Errorf("FromNode() = %v", m)
		}
	})
}

func TestFromNodeStruct(t *testing.T) {
	type server struct {
		Host  string   `anyform:"field=host"`
		Port  int      `anyform:"field=port"`
		Tags  []string `anyform:"field=tags"`
		Debug bool     `anyform:"field=debug,optional"`
	}

	t.Run("full", func(t *testing.T) {
		node := form.Map().
			Set("host", form.FromString("example.com")).
			Set("port", form.FromInt(8080)).
			Set("tags", form.List().Append(form.FromString("prod"))).
			Set("debug", form.FromBool(true)).
			Set("ignored", form.FromString("extra fields are fine"))
		var got server
		if err := FromNode(node, &got); err != nil {
			t.Fatalf("FromNode() error = %v", err)
		}
		want := server{Host: "example.com", Port: 8080, Tags: []string{"prod"}, Debug: true}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("FromNode() = %+v, want %+v", got, want)
		}
	})

	t.Run("missing nilable and optional", func(t *testing.T) {
		node := form.Map().
			Set("host", form.FromString("example.com")).
			Set("port", form.FromInt(8080))
		var got server
		if err := FromNode(node, &got); err != nil {
			t.Fatalf("FromNode() error = %v", err)
		}
		if got.Tags != nil || got.Debug {
			t.Errorf("FromNode() = %+v, want zero Tags and Debug", got)
		}
	})

	t.Run("missing scalar", func(t *testing.T) {
		node := form.Map().Set("host", form.FromString("example.com"))
		var got server
		err := FromNode(node, &got)
		if err == nil || !strings.Contains(err.Error(), `missing field "port"`) {
			t.Errorf("error = %v, want missing port", err)
		}
	})

	t.Run("required overrides nilable", func(t *testing.T) {
		type pinned struct {
			Ref *string `anyform:"field=ref,required"`
		}
		var got pinned
		err := FromNode(form.Map(), &got)
		if err == nil || !strings.Contains(err.Error(), `missing field "ref"`) {
			t.Errorf("error = %v, want missing ref", err)
		}
	})
}

func TestFromNodeEmbedded(t *testing.T) {
	type base struct {
		ID int `anyform:"field=id"`
	}
	type item struct {
		base
		Name string `anyform:"field=name"`
	}

	node := form.Map().
		Set("id", form.FromInt(7)).
		Set("name", form.FromString("x"))
	var got item
	if err := FromNode(node, &got); err != nil {
		t.Fatalf("FromNode() error = %v", err)
	}
	if got.ID != 7 || got.Name != "x" {
		t.Errorf("FromNode() = %+v", got)
	}
}

func TestFromNodeTextUnmarshaler(t *testing.T) {
	type event struct {
		At time.Time `anyform:"field=at"`
	}

	node := form.Map().Set("at", form.FromString("2024-05-01T12:30:00Z"))
	var got event
	if err := FromNode(node, &got); err != nil {
		t.Fatalf("FromNode() error = %v", err)
	}
	want := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	if !got.At.Equal(want) {
		t.Errorf("At = %v, want %v", got.At, want)
	}

	t.Run("rejects non-string", func(t *testing.T) {
		var e event
		err := FromNode(form.Map().Set("at", form.FromInt(0)), &e)
		if err == nil || !strings.Contains(err.Error(), "expected string, got int") {
			t.Errorf("error = %v, want string mismatch", err)
		}
	})
}

func TestFromNodePassthrough(t *testing.T) {
	type doc struct {
		Extra *form.Node `anyform:"field=extra"`
	}

	extra := form.Map().Set("k", form.FromInt(1))
	node := form.Map().Set("extra", extra)
	var got doc
	if err := FromNode(node, &got); err != nil {
		t.Fatalf("FromNode() error = %v", err)
	}
	if !form.Equal(got.Extra, extra) {
		t.Errorf("Extra = %s, want %s", got.Extra, extra)
	}

	// The field holds a deep copy of the subtree.
	extra.Set("k", form.FromInt(2))
	if got.Extra.Get("k").Int != 1 {
		t.Error("decoded node shares memory with the input")
	}
}

func TestFromNodeInterface(t *testing.T) {
	node := form.Map().
		Set("name", form.FromString("svc")).
		Set("replicas", form.FromInt(2))

	var got any
	if err := FromNode(node, &got); err != nil {
		t.Fatalf("FromNode() error = %v", err)
	}
	want := map[string]any{"name": "svc", "replicas": int64(2)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromNode() = %#v, want %#v", got, want)
	}

	t.Run("non-empty interface", func(t *testing.T) {
		var e error
		err := FromNode(node, &e)
		if err == nil || !strings.Contains(err.Error(), "unsupported type") {
			t.Errorf("error = %v, want unsupported type", err)
		}
	})
}

func TestFromNodeGuards(t *testing.T) {
	if err := FromNode(form.Null(), nil); err == nil {
		t.Error("expected error for nil destination")
	}
	var s string
	if err := FromNode(form.Null(), s); err == nil || !strings.Contains(err.Error(), "must be a pointer") {
		t.Errorf("error = %v, want pointer requirement", err)
	}
	var p *string
	if err := FromNode(form.Null(), p); err == nil || !strings.Contains(err.Error(), "cannot be nil") {
		t.Errorf("error = %v, want nil pointer error", err)
	}
}

func TestFromNodeErrorPath(t *testing.T) {
	type port struct {
		Port int `anyform:"field=port"`
	}
	type spec struct {
		Ports []port `anyform:"field=ports"`
	}

	node := form.Map().Set("ports", form.List().Append(
		form.Map().Set("port", form.FromInt(80)),
		form.Map().Set("port", form.FromString("oops")),
	))
	var got spec
	err := FromNode(node, &got)
	if err == nil {
		t.Fatal("expected error")
	}
	ue, ok := err.(*UnmarshalError)
	if !ok {
		t.Fatalf("error type = %T, want *UnmarshalError", err)
	}
	if ue.FieldPath != "ports[1].port" {
		t.Errorf("FieldPath = %q, want %q", ue.FieldPath, "ports[1].port")
	}
	if !strings.Contains(err.Error(), "unmarshal error at ports[1].port") {
		t.Errorf("Error() = %q", err.Error())
	}
}
