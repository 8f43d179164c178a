// Package catalog enumerates the declared types of a compilation.
package catalog

import "github.com/conduit-lang/modulegen/internal/compiler/symbols"

// Catalog is the flat, ordered list of declared types
type Catalog struct {
	// All holds every declared type, local and referenced
	All []*symbols.Type
	// Local holds the types declared by the analyzed assembly
	Local []*symbols.Type
}

// Load walks the namespace tree depth first: each namespace contributes its child
// namespaces first, then its own types, each type followed by its nested types.
// The order is stable for a given compilation.
func Load(comp *symbols.Compilation) *Catalog {
	c := &Catalog{}
	c.walkNamespace(comp, comp.Global)
	return c
}

func (c *Catalog) walkNamespace(comp *symbols.Compilation, ns *symbols.Namespace) {
	for _, child := range ns.Namespaces {
		c.walkNamespace(comp, child)
	}
	for _, t := range ns.Types {
		c.walkType(comp, t)
	}
}

func (c *Catalog) walkType(comp *symbols.Compilation, t *symbols.Type) {
	c.All = append(c.All, t)
	if comp.IsLocal(t) {
		c.Local = append(c.Local, t)
	}
	for _, nested := range t.NestedTypes {
		c.walkType(comp, nested)
	}
}
