package codec

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/anyform/go-anyform/result"
)

func TestPrimitives(t *testing.T) {
	ops := testDefault
	t.Run("string", func(t *testing.T) {
		c := String[any]()
		if v, ok := c.EncodeStart(ops, "hello").Value(); !ok || v != any("hello") {
			t.Fatalf("EncodeStart = %v, %v", v, ok)
		}
		if v, ok := c.Parse(ops, "hello").Value(); !ok || v != "hello" {
			t.Fatalf("Parse = %v, %v", v, ok)
		}
		if r := c.Parse(ops, int64(3)); !r.IsError() {
			t.Fatalf("Parse(3) = %v, want error", r)
		}
	})
	t.Run("bool", func(t *testing.T) {
		c := Bool[any]()
		if v, ok := c.EncodeStart(ops, true).Value(); !ok || v != any(true) {
			t.Fatalf("EncodeStart = %v, %v", v, ok)
		}
		if r := c.Parse(ops, "true"); !r.IsError() {
			t.Fatalf("Parse(\"true\") = %v, want error", r)
		}
	})
	t.Run("int", func(t *testing.T) {
		c := Int[any]()
		if v, ok := c.Parse(ops, int64(41)).Value(); !ok || v != 41 {
			t.Fatalf("Parse = %v, %v", v, ok)
		}
		if r := c.Parse(ops, 1.5); !r.IsError() {
			t.Fatalf("Parse(1.5) = %v, want error", r)
		}
	})
	t.Run("float", func(t *testing.T) {
		c := Float[any]()
		if v, ok := c.Parse(ops, 1.5).Value(); !ok || v != 1.5 {
			t.Fatalf("Parse = %v, %v", v, ok)
		}
		if r := c.Parse(ops, "1.5"); !r.IsError() {
			t.Fatalf("Parse(\"1.5\") = %v, want error", r)
		}
	})
}

func TestPrimitiveRejectsNonEmptyPrefix(t *testing.T) {
	ops := testDefault
	r := Int[any]().Encode(ops, 4, "occupied")
	if !r.IsError() {
		t.Fatalf("Encode onto prefix = %v, want error", r)
	}
	if p, ok := r.Partial(); !ok || p != any(int64(4)) {
		t.Errorf("partial = %v, %v, want the created value", p, ok)
	}
}

func TestUnit(t *testing.T) {
	ops := testDefault
	c := Unit[any]("placeholder")
	if v, ok := c.Encode(ops, "placeholder", "prefix").Value(); !ok || v != any("prefix") {
		t.Errorf("Encode = %v, %v, want untouched prefix", v, ok)
	}
	if v, ok := c.Parse(ops, map[string]any{"x": int64(1)}).Value(); !ok || v != "placeholder" {
		t.Errorf("Parse = %v, %v, want the constant", v, ok)
	}
}

func TestListRoundTrip(t *testing.T) {
	ops := testDefault
	c := List(String[any]())
	enc := c.EncodeStart(ops, []string{"a", "b"})
	v, ok := enc.Value()
	if !ok {
		t.Fatalf("EncodeStart failed: %v", enc)
	}
	if diff := cmp.Diff(any([]any{"a", "b"}), v); diff != "" {
		t.Fatalf("encoded list (-want +got):\n%s", diff)
	}
	dec := c.Parse(ops, v)
	got, ok := dec.Value()
	if !ok {
		t.Fatalf("Parse failed: %v", dec)
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("decoded list (-want +got):\n%s", diff)
	}
}

func TestListDecodeAccumulates(t *testing.T) {
	ops := testDefault
	c := List(Int[any]())
	r := c.Parse(ops, []any{int64(1), "two", int64(3), true})
	if !r.IsError() {
		t.Fatalf("Parse = %v, want error", r)
	}
	want := "not an int: two; not an int: true"
	if r.Message() != want {
		t.Errorf("message = %q, want %q", r.Message(), want)
	}
	p, ok := r.Partial()
	if !ok {
		t.Fatal("expected the decodable elements as partial")
	}
	if diff := cmp.Diff([]int64{1, 3}, p); diff != "" {
		t.Errorf("partial (-want +got):\n%s", diff)
	}
}

func TestListDecodeRejectsNonList(t *testing.T) {
	ops := testDefault
	if r := List(Int[any]()).Parse(ops, "nope"); !r.IsError() {
		t.Fatalf("Parse = %v, want error", r)
	}
}

func TestXmap(t *testing.T) {
	ops := testDefault
	c := Xmap(Int[any](),
		func(i int64) string { return strconv.FormatInt(i, 10) },
		func(s string) int64 {
			n, _ := strconv.ParseInt(s, 10, 64)
			return n
		})
	if v, ok := c.Parse(ops, int64(42)).Value(); !ok || v != "42" {
		t.Errorf("Parse = %v, %v", v, ok)
	}
	if v, ok := c.EncodeStart(ops, "7").Value(); !ok || v != any(int64(7)) {
		t.Errorf("EncodeStart = %v, %v", v, ok)
	}
}

func TestValidated(t *testing.T) {
	even := func(v int64) result.Result[int64] {
		if v%2 != 0 {
			return result.Errorf[int64]("%d is odd", v)
		}
		return result.Success(v)
	}
	ops := testDefault
	c := Validated(Int[any](), even)
	if r := c.Parse(ops, int64(4)); r.IsError() {
		t.Errorf("Parse(4) = %v, want success", r)
	}
	if r := c.Parse(ops, int64(3)); !r.IsError() || r.Message() != "3 is odd" {
		t.Errorf("Parse(3) = %v, want \"3 is odd\"", r)
	}
	if r := c.EncodeStart(ops, 5); !r.IsError() || r.Message() != "5 is odd" {
		t.Errorf("EncodeStart(5) = %v, want \"5 is odd\"", r)
	}
}

func TestFlatXmapKeepsPairRemainder(t *testing.T) {
	ops := testDefault
	c := FlatXmap(String[any](),
		func(s string) result.Result[int64] {
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return result.Errorf[int64]("%q is not numeric", s)
			}
			return result.Success(n)
		},
		func(n int64) result.Result[string] {
			return result.Success(strconv.FormatInt(n, 10))
		})
	r := c.Decode(ops, "19")
	p, ok := r.Value()
	if !ok || p.First != 19 || p.Second != any("19") {
		t.Fatalf("Decode = %v", r)
	}
	if bad := c.Parse(ops, "x"); !bad.IsError() || bad.Message() != `"x" is not numeric` {
		t.Errorf("Parse(x) = %v", bad)
	}
}

func TestCodecLifecycle(t *testing.T) {
	ops := testDefault
	if got := Int[any]().Stable().Parse(ops, int64(1)).Lifecycle(); got != result.Stable() {
		t.Errorf("stable parse lifecycle = %v", got)
	}
	if got := Int[any]().Deprecated(3).EncodeStart(ops, 1).Lifecycle(); got != result.Deprecated(3) {
		t.Errorf("deprecated encode lifecycle = %v", got)
	}
	if got := Int[any]().Parse(ops, int64(1)).Lifecycle(); got != result.Experimental() {
		t.Errorf("default parse lifecycle = %v", got)
	}
}
