// Package treediff computes structural diffs between form trees.
//
// # Usage
//
//	edits := treediff.Diff(before, after)
//	for _, e := range edits {
//		fmt.Println(e)
//	}
//
// Edits are flat records addressed by path, ordered deterministically by
// a walk of both trees. They describe the difference; applying patches is
// the business of the af CLI's patch command.
//
// # Related Packages
//
//   - github.com/anyform/go-anyform/form - the tree representation
//   - github.com/anyform/go-anyform/cmd/af - colored diff output
package treediff
