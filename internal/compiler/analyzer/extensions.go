package analyzer

import (
	"github.com/conduit-lang/modulegen/internal/compiler/model"
	"github.com/conduit-lang/modulegen/internal/compiler/symbols"
)

// CollectExtensions indexes reader and writer extension methods by the value type
// they handle. A later candidate for the same type replaces an earlier one.
func (a *Analyzer) CollectExtensions(asm *model.Assembly, types []*symbols.Type) {
	for _, t := range types {
		for _, m := range t.Methods() {
			if !m.IsExtension || !m.Static || len(m.Parameters) != 2 {
				continue
			}
			target, value := m.Parameters[0], m.Parameters[1]
			if mentionsTypeParameter(value.Type) || value.Type.Kind == symbols.KindError {
				continue
			}

			fn := &model.ExtensionFunction{Method: m, Type: value.Type}
			switch {
			case target.Type == a.types.IJSValueReader && value.RefKind == symbols.RefOut:
				asm.Readers[value.Type.ID()] = fn
			case target.Type == a.types.IJSValueWriter:
				asm.Writers[value.Type.ID()] = fn
			}
		}
	}
}

// mentionsTypeParameter reports whether t is or contains an open type parameter
func mentionsTypeParameter(t *symbols.Type) bool {
	switch {
	case t.Kind == symbols.KindTypeParameter:
		return true
	case t.Kind == symbols.KindArray:
		return mentionsTypeParameter(t.ElementType)
	}
	for _, arg := range t.TypeArguments {
		if mentionsTypeParameter(arg) {
			return true
		}
	}
	return false
}
