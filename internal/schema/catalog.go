package schema

import (
	"strings"

	"go-hep.org/x/hep/groot/rtree"
)

// Field describes one top-level branch of an event tree.
type Field struct {
	Name   string // Branch name
	Kind   string // Declared type, e.g. "float32", "vector<float>", "float32[]"
	Leaves int    // Number of leaves declared by the branch
}

// Catalog is the ordered list of fields available in a source.
type Catalog []Field

// Names returns the field names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, f := range c {
		names[i] = f.Name
	}
	return names
}

// Has reports whether the catalog declares a field with the given name.
func (c Catalog) Has(name string) bool {
	for _, f := range c {
		if f.Name == name {
			return true
		}
	}
	return false
}

// FromTree builds the catalog from the top-level branches of tree.
func FromTree(tree rtree.Tree) Catalog {
	branches := tree.Branches()
	cat := make(Catalog, 0, len(branches))
	for _, b := range branches {
		leaves := b.Leaves()
		cat = append(cat, Field{
			Name:   b.Name(),
			Kind:   branchKind(b, leaves),
			Leaves: len(leaves),
		})
	}
	return cat
}

// branchKind derives the declared kind of a branch from its leaves.
// Fixed and variable-length arrays are marked with a "[]" suffix.
func branchKind(b rtree.Branch, leaves []rtree.Leaf) string {
	if len(leaves) == 0 {
		return b.Class()
	}

	kinds := make([]string, len(leaves))
	for i, leaf := range leaves {
		kind := leaf.TypeName()
		if leaf.LeafCount() != nil || leaf.Len() > 1 {
			kind += "[]"
		}
		kinds[i] = kind
	}
	return strings.Join(kinds, ",")
}
