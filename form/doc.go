// Package form provides the framework's reference in-memory document
// tree.
//
// # Overview
//
// A form tree is the neutral shape documents take between formats:
// the CLI parses JSON, YAML, and CBOR into *form.Node, and the
// formops package serves Node trees to codecs. The tree is a simple
// recursive tagged union with no position information, making it
// purely semantic.
//
// # Node Structure
//
// A Node holds one value. Scalars are null, bool, int, float, and
// string. Lists keep their elements in Values. Maps keep keys in
// Fields with the value for Fields[i] at Values[i]; there are always
// as many fields as values, and insertion order is preserved.
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := form.FromString("hello")
//	num := form.FromInt(42)
//	obj := form.Map().
//		Set("name", form.FromString("svc")).
//		Set("port", form.FromInt(8080))
//	arr := form.List().Append(form.FromInt(1), form.FromInt(2))
//
// FromMap builds a map node in sorted key order; FromKeyVals keeps
// the order given.
//
// # Navigating Nodes
//
// Get and Index step one level down; Lookup resolves a dotted path
// with [i] list indexing:
//
//	port := doc.Lookup("spec.ports[0].port")
//
// Compare orders any two trees (by type, then content), and Equal is
// Compare == 0. MarshalJSON and UnmarshalJSON round-trip natural JSON
// documents, keeping object field order.
//
// # Related Packages
//
//   - formops: codec.Ops over *form.Node
//   - treediff: structural diffs between two trees
//   - bind: reflection binding between Go structs and trees
package form
