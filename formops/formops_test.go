package formops

import (
	"testing"

	"github.com/anyform/go-anyform/codec"
	"github.com/anyform/go-anyform/form"
)

func TestEmpty(t *testing.T) {
	if got := Default.Empty(); got.Type != form.NullType {
		t.Errorf("Empty = %v", got)
	}
	if !Default.IsEmpty(nil) {
		t.Error("IsEmpty(nil) = false")
	}
	if !Default.IsEmpty(form.Null()) {
		t.Error("IsEmpty(null) = false")
	}
	if Default.IsEmpty(form.FromInt(0)) {
		t.Error("IsEmpty(0) = true")
	}
	if Default.CompressMaps() {
		t.Error("CompressMaps = true")
	}
}

func TestScalars(t *testing.T) {
	if got, ok := Default.StringValue(form.FromString("x")).Value(); !ok || got != "x" {
		t.Errorf("StringValue = %v, %v", got, ok)
	}
	if _, ok := Default.StringValue(form.FromInt(1)).Value(); ok {
		t.Error("StringValue on int node succeeded")
	}

	if got, ok := Default.BoolValue(form.FromBool(true)).Value(); !ok || !got {
		t.Errorf("BoolValue = %v, %v", got, ok)
	}
	if _, ok := Default.BoolValue(form.Null()).Value(); ok {
		t.Error("BoolValue on null succeeded")
	}

	if got, ok := Default.IntValue(form.FromInt(7)).Value(); !ok || got != 7 {
		t.Errorf("IntValue = %v, %v", got, ok)
	}
	if _, ok := Default.IntValue(form.FromFloat(7)).Value(); ok {
		t.Error("IntValue on float node succeeded")
	}

	if got, ok := Default.FloatValue(form.FromFloat(2.5)).Value(); !ok || got != 2.5 {
		t.Errorf("FloatValue = %v, %v", got, ok)
	}
	if got, ok := Default.FloatValue(form.FromInt(3)).Value(); !ok || got != 3 {
		t.Errorf("FloatValue on int node = %v, %v", got, ok)
	}
	if _, ok := Default.FloatValue(form.FromString("3")).Value(); ok {
		t.Error("FloatValue on string node succeeded")
	}
}

func TestList(t *testing.T) {
	n := Default.CreateList([]*form.Node{form.FromInt(1), form.FromInt(2)})
	got, ok := Default.ListValue(n).Value()
	if !ok || len(got) != 2 || got[1].Int != 2 {
		t.Fatalf("ListValue = %v, %v", got, ok)
	}

	got = append(got, form.FromInt(3))
	if len(n.Values) != 2 {
		t.Error("appending to the extracted slice changed the node")
	}

	if _, ok := Default.ListValue(form.Map()).Value(); ok {
		t.Error("ListValue on map node succeeded")
	}
}

func TestMapEntriesKeepOrder(t *testing.T) {
	n := Default.CreateMap([]codec.MapEntry[*form.Node]{
		{Key: form.FromString("b"), Value: form.FromInt(2)},
		{Key: form.FromString("a"), Value: form.FromInt(1)},
	})
	view, ok := Default.MapValue(n).Value()
	if !ok {
		t.Fatalf("MapValue failed on %v", n)
	}

	entries := view.Entries()
	if len(entries) != 2 || entries[0].Key.Str != "b" || entries[1].Key.Str != "a" {
		t.Errorf("entries out of order: %v", entries)
	}

	if v, ok := view.GetString("a"); !ok || v.Int != 1 {
		t.Errorf("GetString(a) = %v, %v", v, ok)
	}
	if _, ok := view.GetString("missing"); ok {
		t.Error("GetString(missing) = true")
	}
	if v, ok := view.Get(form.FromString("b")); !ok || v.Int != 2 {
		t.Errorf("Get(b) = %v, %v", v, ok)
	}
	if _, ok := view.Get(form.FromInt(1)); ok {
		t.Error("Get with non-string key succeeded")
	}

	if _, ok := Default.MapValue(form.List()).Value(); ok {
		t.Error("MapValue on list node succeeded")
	}
}

func TestMergeToMap(t *testing.T) {
	entry := codec.MapEntry[*form.Node]{Key: form.FromString("k"), Value: form.FromInt(1)}

	got, ok := Default.MergeToMap(form.Null(), []codec.MapEntry[*form.Node]{entry}).Value()
	if !ok || got.Get("k").Int != 1 {
		t.Fatalf("merge into empty = %v, %v", got, ok)
	}

	target := form.Map().Set("k", form.FromInt(0)).Set("other", form.FromBool(true))
	got, ok = Default.MergeToMap(target, []codec.MapEntry[*form.Node]{entry}).Value()
	if !ok || got.Get("k").Int != 1 || got.Get("other") == nil {
		t.Fatalf("merge into map = %v, %v", got, ok)
	}
	if target.Get("k").Int != 0 {
		t.Error("merge mutated its target")
	}
}

func TestMergeToMapErrors(t *testing.T) {
	entry := codec.MapEntry[*form.Node]{Key: form.FromString("k"), Value: form.FromInt(1)}

	r := Default.MergeToMap(form.FromInt(3), []codec.MapEntry[*form.Node]{entry})
	if !r.IsError() {
		t.Fatal("merge into int node succeeded")
	}
	if p, ok := r.Partial(); !ok || p.Int != 3 {
		t.Errorf("partial = %v, %v", p, ok)
	}

	r = Default.MergeToMap(form.Null(), []codec.MapEntry[*form.Node]{
		{Key: form.FromInt(9), Value: form.FromInt(1)},
	})
	if !r.IsError() {
		t.Fatal("merge with int key succeeded")
	}
}

type server struct {
	Host string
	Port int64
}

func serverCodec() codec.MapCodec[*form.Node, server] {
	return codec.Group2(
		codec.ForGetter(codec.Field("host", codec.String[*form.Node]()), func(s server) string { return s.Host }),
		codec.ForGetter(codec.Field("port", codec.Int[*form.Node]()), func(s server) int64 { return s.Port }),
		func(host string, port int64) server { return server{Host: host, Port: port} },
	)
}

func TestRecordRoundTrip(t *testing.T) {
	c := serverCodec().Codec()
	in := server{Host: "example.com", Port: 8080}

	encoded, ok := c.EncodeStart(Default, in).Value()
	if !ok {
		t.Fatalf("encode failed: %v", c.EncodeStart(Default, in))
	}
	want := form.Map().
		Set("host", form.FromString("example.com")).
		Set("port", form.FromInt(8080))
	if !form.Equal(encoded, want) {
		t.Errorf("encoded = %v, want %v", encoded, want)
	}

	decoded, ok := c.Parse(Default, encoded).Value()
	if !ok || decoded != in {
		t.Errorf("decoded = %v, %v", decoded, ok)
	}
}
