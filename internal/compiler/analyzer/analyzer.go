// Package analyzer builds the declarative module model of a compilation. It runs
// the module extractor over local types, collects view managers, computes the
// serializer closure and indexes boundary extension functions. All passes are
// single-threaded and share one diagnostic list.
package analyzer

import (
	"github.com/conduit-lang/modulegen/internal/compiler/catalog"
	"github.com/conduit-lang/modulegen/internal/compiler/errors"
	"github.com/conduit-lang/modulegen/internal/compiler/model"
	"github.com/conduit-lang/modulegen/internal/compiler/reacttypes"
	"github.com/conduit-lang/modulegen/internal/compiler/symbols"
)

// Analyzer extracts the model of one compilation
type Analyzer struct {
	comp  *symbols.Compilation
	types *reacttypes.Types

	// Task types deliver async results as promises; nil when not declared
	task        *symbols.Type
	genericTask *symbols.Type

	// Accumulated diagnostics
	errors errors.ErrorList
}

// New creates an analyzer over a bound compilation and its resolved library types
func New(comp *symbols.Compilation, types *reacttypes.Types) *Analyzer {
	return &Analyzer{
		comp:        comp,
		types:       types,
		task:        comp.Lookup("System.Threading.Tasks.Task"),
		genericTask: comp.Lookup("System.Threading.Tasks.Task`1"),
	}
}

// Analyze runs every pass and returns the finished model with the diagnostics
// reported along the way
func (a *Analyzer) Analyze(cat *catalog.Catalog) (*model.Assembly, errors.ErrorList) {
	asm := model.NewAssembly()

	// First pass: modules and view managers from local declarations
	for _, t := range cat.Local {
		if m, ok := a.ExtractModule(t); ok {
			asm.Modules = append(asm.Modules, m)
		}
		if a.IsViewManager(t) {
			asm.AddViewManager(t)
		}
	}

	// Second pass: everything that depends on the finished module list
	a.CollectClosure(asm)
	a.CollectExtensions(asm, cat.All)

	return asm, a.errors
}

// Errors returns the diagnostics reported so far
func (a *Analyzer) Errors() errors.ErrorList {
	return a.errors
}

// Analyze is a convenience wrapper running a fresh analyzer
func Analyze(comp *symbols.Compilation, types *reacttypes.Types, cat *catalog.Catalog) (*model.Assembly, errors.ErrorList) {
	return New(comp, types).Analyze(cat)
}
