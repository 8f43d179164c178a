package analyzer

import (
	"github.com/conduit-lang/modulegen/internal/compiler/errors"
	"github.com/conduit-lang/modulegen/internal/compiler/model"
	"github.com/conduit-lang/modulegen/internal/compiler/symbols"
)

// closure walks signatures and records every local type that crosses the
// boundary. Each type identity is processed once.
type closure struct {
	a         *Analyzer
	asm       *model.Assembly
	processed map[string]bool
}

// CollectClosure fills asm.SerializableTypes from the signatures of every
// extracted module. Only directly referenced types are collected: members of a
// collected type are not walked.
func (a *Analyzer) CollectClosure(asm *model.Assembly) {
	c := &closure{a: a, asm: asm, processed: make(map[string]bool)}

	for _, mod := range asm.Modules {
		for _, m := range mod.Methods {
			c.add(m.Symbol.ReturnType)
			for _, p := range m.Symbol.Parameters {
				c.add(p.Type)
			}
		}
		for _, constant := range mod.Constants {
			c.add(constant.Type)
		}
		for _, ev := range mod.Events {
			c.addParameters(ev.Parameters)
		}
		for _, fn := range mod.Functions {
			c.addParameters(fn.Parameters)
		}
	}
}

func (c *closure) addParameters(params []*symbols.Parameter) {
	for _, p := range params {
		c.add(p.Type)
	}
}

func (c *closure) add(t *symbols.Type) {
	if t == nil {
		return
	}
	switch t.Kind {
	case symbols.KindVoid, symbols.KindError, symbols.KindTypeParameter:
		return
	}

	id := t.ID()
	if c.processed[id] {
		return
	}
	c.processed[id] = true

	switch {
	case t.IsDelegate():
		c.add(t.Invoke.ReturnType)
		c.addParameters(t.Invoke.Parameters)
	case t.Kind == symbols.KindArray:
		c.add(t.ElementType)
	case len(t.TypeArguments) > 0:
		for _, arg := range t.TypeArguments {
			c.add(arg)
		}
		// a local generic instance is registered under its constructed identity
		if c.a.comp.IsLocal(t) {
			c.register(t)
		}
	case c.a.comp.IsLocal(t):
		c.register(t)
	}
}

func (c *closure) register(t *symbols.Type) {
	var kind model.SerializableKind
	switch t.Kind {
	case symbols.KindClass:
		kind = model.SerializableClass
		if !t.HasAccessibleDefaultConstructor() {
			c.a.errors.Add(errors.NewMissingDefaultConstructor(t.Location, t.ID()))
		}
	case symbols.KindStruct:
		kind = model.SerializableStruct
	case symbols.KindInterface:
		kind = model.SerializableInterface
	case symbols.KindEnum:
		kind = model.SerializableEnum
	default:
		return
	}
	c.asm.SerializableTypes[t.ID()] = model.SerializableType{Type: t, Kind: kind}
}
