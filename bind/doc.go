// Package bind converts between Go values and form nodes using reflection.
//
// ToNode and FromNode are the direct pair. Struct fields are controlled by
// the "anyform" tag:
//   - field=name renames the field
//   - "-" or "omit" skips the field entirely
//   - "optional" lets FromNode leave the field zero when the node has no entry
//   - "required" makes a missing entry an error even for nilable field types
//
// Untagged fields keep their Go name. Missing entries zero nilable kinds
// (pointers, slices, maps, interfaces) and error on everything else.
// Anonymous struct fields without a rename tag are flattened into the
// parent, like encoding/json. Types implementing encoding.TextMarshaler
// and encoding.TextUnmarshaler bind as strings, and *form.Node fields pass
// through as deep copies.
//
// NodeCodec and CodecVia lift the same rules into codecs:
//
//	type Server struct {
//		Host string `anyform:"field=host"`
//		Port int    `anyform:"field=port"`
//	}
//
//	c := bind.CodecVia[any, Server]()
//	v, _ := c.Parse(anyops.Default, doc).Value()
//
// Hand-built codecs stay the better choice when a type needs per-field
// defaults, lifecycle annotations, or representation changes; bind covers
// the plain struct-shaped middle.
package bind
