// codegen is a library that creates, decorates or modifies DST objects in specific repeatable ways.
// This library is the common place for logic around how the tracking statements that get spliced into
// tagged functions are built, as well as how to handle the whitespace and comments related to those
// nodes. Any function that creates a new node for insertion into the tree should be added here. When
// implementing functions for this library, the following rules should apply:
//
// 1. Any DST objects (expressions, statements, nodes, etc.) that are consumed as inputs should be
// defensively cloned before returning them as part of an output. There is a small execution cost to
// this, but if an object is duplicated anywhere in the tree, a runtime panic will occur.
// 2. Please add a comment header about what the output of your function is and what it does. All
// exported functions MUST be documented in way that is compatible with `godoc`.
// 3. Package qualifiers are expressed through dst.Ident.Path, never through a hand written selector,
// so that the restorer can add the matching import to the file being written.
package codegen

import (
	"sort"

	"github.com/dave/dst"
)

// ImportPaths returns the sorted import paths that node refers to through
// qualified identifiers.
func ImportPaths(node dst.Node) []string {
	seen := map[string]bool{}
	dst.Inspect(node, func(n dst.Node) bool {
		if ident, ok := n.(*dst.Ident); ok && ident.Path != "" {
			seen[ident.Path] = true
		}
		return true
	})

	paths := make([]string, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
