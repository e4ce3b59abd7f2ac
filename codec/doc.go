// Package codec provides format-polymorphic encoding and decoding.
//
// # Overview
//
// A Codec describes how to turn a Go value into a serialized form and back,
// without committing to any particular format. The format is supplied per
// call as an Ops implementation: the same codec value serializes to an
// in-memory tree through one Ops, to plain any-trees through another, and to
// CBOR through a third.
//
// Failures are values, not panics: every operation returns a result.Result,
// which can carry a partial value alongside an error so that one bad field
// does not discard the rest of a document.
//
// # Codecs
//
// Primitive codecs cover the scalar shapes:
//
//	codec.String[*form.Node]()
//	codec.Int[*form.Node]()
//
// Combinators build structure on top:
//
//	names := codec.List(codec.String[*form.Node]())
//	port := codec.Validated(codec.Int[*form.Node](), checkRange)
//
// # Records
//
// Map-shaped values are built from fields and assembled with the GroupN
// functions. Every field decodes against the same input map, so field errors
// accumulate instead of short-circuiting:
//
//	type Server struct {
//	    Host string
//	    Port int64
//	}
//
//	serverCodec := codec.Group2(
//	    codec.ForGetter(codec.Field("host", codec.String[N]()), func(s Server) string { return s.Host }),
//	    codec.ForGetter(codec.Field("port", codec.Int[N]()), func(s Server) int64 { return s.Port }),
//	    func(host string, port int64) Server { return Server{Host: host, Port: port} },
//	).Codec()
//
//	r := serverCodec.Parse(formops.Default, input)
//
// # Key compression
//
// Ops implementations that report CompressMaps write records as positional
// lists instead of keyed maps, with the key-to-position assignment handled
// by a KeyCompressor derived from the codec's key set. Compressors are
// cached per ops identity, so Ops implementations should be exported
// singletons.
//
// # Related Packages
//
//   - github.com/anyform/go-anyform/result - result and lifecycle model
//   - github.com/anyform/go-anyform/formops - Ops over *form.Node trees
//   - github.com/anyform/go-anyform/anyops - Ops over plain any trees
//   - github.com/anyform/go-anyform/cborops - Ops over CBOR raw messages
//   - github.com/anyform/go-anyform/bind - reflection-derived codecs
package codec
