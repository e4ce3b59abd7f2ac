package bind

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/anyform/go-anyform/form"
)

func TestToNodeScalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *form.Node
	}{
		{"nil", nil, form.Null()},
		{"string", "hello", form.FromString("hello")},
		{"int", 42, form.FromInt(42)},
		{"int8", int8(-3), form.FromInt(-3)},
		{"uint16", uint16(7), form.FromInt(7)},
		{"float64", 2.5, form.FromFloat(2.5)},
		{"float32", float32(0.5), form.FromFloat(0.5)},
		{"bool", true, form.FromBool(true)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToNode(tt.in)
			if err != nil {
				t.Fatalf("ToNode(%v) error = %v", tt.in, err)
			}
			if !form.Equal(got, tt.want) {
				t.Errorf("ToNode(%v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestToNodeUintOverflow(t *testing.T) {
	_, err := ToNode(uint64(math.MaxUint64))
	if err == nil {
		t.Fatal("expected error for uint64 beyond int64 range")
	}
	if !strings.Contains(err.Error(), "overflows int64") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestToNodeLists(t *testing.T) {
	t.Run("slice", func(t *testing.T) {
		got, err := ToNode([]int{1, 2, 3})
		if err != nil {
			t.Fatalf("ToNode() error = %v", err)
		}
		want := form.List().Append(form.FromInt(1), form.FromInt(2), form.FromInt(3))
		if !form.Equal(got, want) {
			t.Errorf("ToNode() = %s, want %s", got, want)
		}
	})

	t.Run("empty slice", func(t *testing.T) {
		got, err := ToNode([]string{})
		if err != nil {
			t.Fatalf("ToNode() error = %v", err)
		}
		if got.Type != form.ListType || len(got.Values) != 0 {
			t.Errorf("ToNode() = %s, want empty list", got)
		}
	})

	t.Run("nil slice", func(t *testing.T) {
		got, err := ToNode([]string(nil))
		if err != nil {
			t.Fatalf("ToNode() error = %v", err)
		}
		if got.Type != form.NullType {
			t.Errorf("ToNode() = %s, want null", got)
		}
	})

	t.Run("array", func(t *testing.T) {
		got, err := ToNode([2]string{"a", "b"})
		if err != nil {
			t.Fatalf("ToNode() error = %v", err)
		}
		want := form.List().Append(form.FromString("a"), form.FromString("b"))
		if !form.Equal(got, want) {
			t.Errorf("ToNode() = %s, want %s", got, want)
		}
	})
}

func TestToNodeMaps(t *testing.T) {
	t.Run("sorted keys", func(t *testing.T) {
		got, err := ToNode(map[string]int{"z": 1, "a": 2, "m": 3})
		if err != nil {
			t.Fatalf("ToNode() error = %v", err)
		}
		wantFields := []string{"a", "m", "z"}
		if len(got.Fields) != 3 {
			t.Fatalf("got %d fields, want 3", len(got.Fields))
		}
		for i, f := range wantFields {
			if got.Fields[i] != f {
				t.Errorf("field[%d] = %q, want %q", i, got.Fields[i], f)
			}
		}
	})

	t.Run("nil map", func(t *testing.T) {
		got, err := ToNode(map[string]int(nil))
		if err != nil {
			t.Fatalf("ToNode() error = %v", err)
		}
		if got.Type != form.NullType {
			t.Errorf("ToNode() = %s, want null", got)
		}
	})

	t.Run("named key type", func(t *testing.T) {
		type label string
		got, err := ToNode(map[label]bool{"on": true})
		if err != nil {
			t.Fatalf("ToNode() error = %v", err)
		}
		want := form.Map().Set("on", form.FromBool(true))
		if !form.Equal(got, want) {
			t.Errorf("ToNode() = %s, want %s", got, want)
		}
	})

	t.Run("non-string keys", func(t *testing.T) {
		_, err := ToNode(map[int]string{1: "a"})
		if err == nil {
			t.Fatal("expected error for int-keyed map")
		}
		if !strings.Contains(err.Error(), "map keys must be strings") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestToNodeStructTags(t *testing.T) {
	type server struct {
		Host    string `anyform:"field=host"`
		Port    int    `anyform:"field=port"`
		Comment string `anyform:"-"`
		Debug   bool
	}

	got, err := ToNode(server{Host: "example.com", Port: 8080, Comment: "dropped", Debug: true})
	if err != nil {
		t.Fatalf("ToNode() error = %v", err)
	}
	want := form.Map().
		Set("host", form.FromString("example.com")).
		Set("port", form.FromInt(8080)).
		Set("Debug", form.FromBool(true))
	if !form.Equal(got, want) {
		t.Errorf("ToNode() = %s, want %s", got, want)
	}
}

func TestToNodeNested(t *testing.T) {
	type port struct {
		Name string `anyform:"field=name"`
		Port int    `anyform:"field=port"`
	}
	type spec struct {
		Ports []port `anyform:"field=ports"`
	}

	got, err := ToNode(spec{Ports: []port{{"http", 80}, {"https", 443}}})
	if err != nil {
		t.Fatalf("ToNode() error = %v", err)
	}
	if p := got.Lookup("ports[1].port"); p == nil || p.Int != 443 {
		t.Errorf("ports[1].port = %v, want 443", p)
	}
}

func TestToNodeEmbedded(t *testing.T) {
	type base struct {
		ID int `anyform:"field=id"`
	}
	type item struct {
		base
		Name string `anyform:"field=name"`
	}

	got, err := ToNode(item{base: base{ID: 7}, Name: "x"})
	if err != nil {
		t.Fatalf("ToNode() error = %v", err)
	}
	want := form.Map().
		Set("id", form.FromInt(7)).
		Set("name", form.FromString("x"))
	if !form.Equal(got, want) {
		t.Errorf("ToNode() = %s, want %s", got, want)
	}
}

func TestToNodeTextMarshaler(t *testing.T) {
	type event struct {
		At time.Time `anyform:"field=at"`
	}
	at := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	got, err := ToNode(event{At: at})
	if err != nil {
		t.Fatalf("ToNode() error = %v", err)
	}
	n := got.Get("at")
	if n == nil || n.Type != form.StringType {
		t.Fatalf("at = %v, want string node", n)
	}
	if n.Str != "2024-05-01T12:30:00Z" {
		t.Errorf("at = %q, want RFC 3339 text", n.Str)
	}
}

func TestToNodePassthrough(t *testing.T) {
	type doc struct {
		Extra *form.Node `anyform:"field=extra"`
	}
	extra := form.Map().Set("k", form.FromInt(1))

	got, err := ToNode(doc{Extra: extra})
	if err != nil {
		t.Fatalf("ToNode() error = %v", err)
	}
	if !form.Equal(got.Get("extra"), extra) {
		t.Errorf("extra = %s, want %s", got.Get("extra"), extra)
	}

	// The output holds a deep copy, not the original subtree.
	extra.Set("k", form.FromInt(2))
	if got.Lookup("extra.k").Int != 1 {
		t.Error("output shares memory with the input node")
	}
}

func TestToNodeCycles(t *testing.T) {
	type person struct {
		Name string  `anyform:"field=name"`
		Boss *person `anyform:"field=boss"`
	}

	t.Run("pointer cycle", func(t *testing.T) {
		p := &person{Name: "alice"}
		p.Boss = p
		_, err := ToNode(p)
		if err == nil {
			t.Fatal("expected error for circular reference")
		}
		if !strings.Contains(err.Error(), "circular reference") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("slice cycle", func(t *testing.T) {
		type team struct {
			Members []any `anyform:"field=members"`
		}
		tm := &team{}
		tm.Members = []any{tm}
		_, err := ToNode(tm)
		if err == nil {
			t.Fatal("expected error for circular reference")
		}
		if !strings.Contains(err.Error(), "circular reference") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("shared pointer is not a cycle", func(t *testing.T) {
		boss := &person{Name: "alice"}
		type pair struct {
			A *person `anyform:"field=a"`
			B *person `anyform:"field=b"`
		}
		got, err := ToNode(pair{A: boss, B: boss})
		if err != nil {
			t.Fatalf("ToNode() error = %v", err)
		}
		if got.Lookup("a.name").Str != "alice" || got.Lookup("b.name").Str != "alice" {
			t.Errorf("shared pointer encoded wrong: %s", got)
		}
	})
}

func TestToNodeUnsupported(t *testing.T) {
	_, err := ToNode(make(chan int))
	if err == nil {
		t.Fatal("expected error for chan")
	}
	if !strings.Contains(err.Error(), "unsupported type") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestToNodeErrorPath(t *testing.T) {
	type inner struct {
		Ch chan int `anyform:"field=ch"`
	}
	type outer struct {
		Items []inner `anyform:"field=items"`
	}

	_, err := ToNode(outer{Items: []inner{{}}})
	if err == nil {
		t.Fatal("expected error")
	}
	me, ok := err.(*MarshalError)
	if !ok {
		t.Fatalf("error type = %T, want *MarshalError", err)
	}
	if me.FieldPath != "items[0].ch" {
		t.Errorf("FieldPath = %q, want %q", me.FieldPath, "items[0].ch")
	}
}
