package treediff

import (
	"fmt"

	"github.com/anyform/go-anyform/form"
)

// Kind classifies an edit.
type Kind uint8

const (
	Add Kind = iota + 1
	Remove
	Replace
)

func (k Kind) String() string {
	switch k {
	case Add:
		return "add"
	case Remove:
		return "remove"
	case Replace:
		return "replace"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Edit is one difference between two trees. Path addresses the edited
// node in form.Lookup syntax; for Add it indexes into the second tree,
// for Remove into the first. From and To reference the input subtrees
// rather than copies. Text carries a line diff when both sides of a
// Replace are multi-line strings, and is empty otherwise.
type Edit struct {
	Path string
	Kind Kind
	From *form.Node
	To   *form.Node
	Text string
}

func (e Edit) String() string {
	path := e.Path
	if path == "" {
		path = "$"
	}
	switch e.Kind {
	case Add:
		return fmt.Sprintf("add %s: %s", path, e.To)
	case Remove:
		return fmt.Sprintf("remove %s: %s", path, e.From)
	case Replace:
		return fmt.Sprintf("replace %s: %s -> %s", path, e.From, e.To)
	}
	return fmt.Sprintf("edit %s", path)
}

// Diff lists the edits that turn a into b. Equal trees produce no edits.
// Maps are walked field by field, emitting removals and value edits in
// a's field order and additions in b's; lists are compared index by
// index with tail elements added or removed. Everything else that
// differs is a single Replace.
func Diff(a, b *form.Node) []Edit {
	var edits []Edit
	diffNodes(a, b, "", &edits)
	return edits
}

func diffNodes(a, b *form.Node, path string, edits *[]Edit) {
	if form.Equal(a, b) {
		return
	}
	switch {
	case a == nil:
		*edits = append(*edits, Edit{Path: path, Kind: Add, To: b})
	case b == nil:
		*edits = append(*edits, Edit{Path: path, Kind: Remove, From: a})
	case a.Type == form.MapType && b.Type == form.MapType:
		diffMaps(a, b, path, edits)
	case a.Type == form.ListType && b.Type == form.ListType:
		diffLists(a, b, path, edits)
	default:
		*edits = append(*edits, Edit{
			Path: path,
			Kind: Replace,
			From: a,
			To:   b,
			Text: replaceText(a, b),
		})
	}
}

func diffMaps(a, b *form.Node, path string, edits *[]Edit) {
	for i, field := range a.Fields {
		p := joinPath(path, field)
		if bv := b.Get(field); bv == nil {
			*edits = append(*edits, Edit{Path: p, Kind: Remove, From: a.Values[i]})
		} else {
			diffNodes(a.Values[i], bv, p, edits)
		}
	}
	for i, field := range b.Fields {
		if a.Get(field) == nil {
			*edits = append(*edits, Edit{Path: joinPath(path, field), Kind: Add, To: b.Values[i]})
		}
	}
}

func diffLists(a, b *form.Node, path string, edits *[]Edit) {
	n := min(len(a.Values), len(b.Values))
	for i := 0; i < n; i++ {
		diffNodes(a.Values[i], b.Values[i], indexPath(path, i), edits)
	}
	for i := n; i < len(a.Values); i++ {
		*edits = append(*edits, Edit{Path: indexPath(path, i), Kind: Remove, From: a.Values[i]})
	}
	for i := n; i < len(b.Values); i++ {
		*edits = append(*edits, Edit{Path: indexPath(path, i), Kind: Add, To: b.Values[i]})
	}
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
