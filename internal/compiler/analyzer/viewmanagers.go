package analyzer

import "github.com/conduit-lang/modulegen/internal/compiler/symbols"

// IsViewManager reports whether t is a concrete local class implementing the view
// manager interface, directly, through a base class or an inherited interface
func (a *Analyzer) IsViewManager(t *symbols.Type) bool {
	if t.Kind != symbols.KindClass || t.Abstract || t.Static || len(t.TypeParameters) > 0 {
		return false
	}
	return a.comp.IsLocal(t) && t.Implements(a.types.IViewManager)
}
