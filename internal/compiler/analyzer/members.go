package analyzer

import (
	"fmt"

	"github.com/conduit-lang/modulegen/internal/compiler/errors"
	"github.com/conduit-lang/modulegen/internal/compiler/model"
	"github.com/conduit-lang/modulegen/internal/compiler/symbols"
)

func (a *Analyzer) extractMethod(mod *model.Module, member symbols.Member, attr *symbols.Attribute) {
	if m, ok := a.exportedMethod(member, attr, shapeMethod); ok {
		mod.Methods = append(mod.Methods, m)
	}
}

func (a *Analyzer) extractSyncMethod(mod *model.Module, member symbols.Member, attr *symbols.Attribute) {
	if m, ok := a.exportedMethod(member, attr, shapeSyncMethod); ok {
		mod.Methods = append(mod.Methods, m)
	}
}

func (a *Analyzer) exportedMethod(member symbols.Member, attr *symbols.Attribute, shape memberShape) (*model.Method, bool) {
	decl := member.Decl()
	method, isMethod := member.(*symbols.Method)
	if !isMethod {
		a.errors.Add(errors.NewMarkerRequiresMethod(decl.Location, shape.String(), decl.Name))
		return nil, false
	}
	named, ok := a.namedArguments(attr, propMethodName)
	if !ok {
		return nil, false
	}
	if !decl.Accessibility.IsPublicOrInternal() {
		a.errors.Add(errors.NewMemberNotAccessible(decl.Location, shape.String(), decl.Name))
		return nil, false
	}

	sync := shape == shapeSyncMethod
	return &model.Method{
		Symbol:      method,
		Name:        markerName(attr, named, propMethodName, decl.Name),
		IsSync:      sync,
		ReturnStyle: a.ClassifyReturn(method, sync),
	}, true
}

// ClassifyReturn derives how a method hands its result back to script. Trailing
// parameters decide first: a promise, then two delegates, then one delegate. An
// asynchronous method that returns a Task resolves a promise; any other returned
// value is delivered through a callback.
func (a *Analyzer) ClassifyReturn(m *symbols.Method, sync bool) model.ReturnStyle {
	params := m.Parameters
	n := len(params)
	switch {
	case n >= 1 && a.types.IsPromise(params[n-1].Type):
		return model.ReturnPromise
	case n >= 2 && params[n-1].Type.IsDelegate() && params[n-2].Type.IsDelegate():
		return model.ReturnTwoCallbacks
	case n >= 1 && params[n-1].Type.IsDelegate():
		return model.ReturnCallback
	case sync || m.ReturnsVoid():
		return model.ReturnVoid
	case a.isTask(m.ReturnType):
		return model.ReturnPromise
	default:
		return model.ReturnCallback
	}
}

func (a *Analyzer) isTask(t *symbols.Type) bool {
	if t == nil {
		return false
	}
	def := t.OriginalDefinition()
	return (a.task != nil && def == a.task) || (a.genericTask != nil && def == a.genericTask)
}

func (a *Analyzer) extractInitializer(mod *model.Module, member symbols.Member, attr *symbols.Attribute) {
	if m, ok := a.capabilityMethod(member, attr, shapeInitializer, a.types.ReactContext); ok {
		mod.Initializers = append(mod.Initializers, &model.Initializer{Symbol: m})
	}
}

func (a *Analyzer) extractConstantProvider(mod *model.Module, member symbols.Member, attr *symbols.Attribute) {
	if m, ok := a.capabilityMethod(member, attr, shapeConstantProvider, a.types.ReactConstantProvider); ok {
		mod.ConstantProviders = append(mod.ConstantProviders, &model.ConstantProvider{Symbol: m})
	}
}

// capabilityMethod validates an initializer or constant provider: accessible,
// returning void, taking exactly one parameter of the capability type. Every
// violated rule is reported.
func (a *Analyzer) capabilityMethod(member symbols.Member, attr *symbols.Attribute, shape memberShape, capability *symbols.Type) (*symbols.Method, bool) {
	decl := member.Decl()
	method, isMethod := member.(*symbols.Method)
	if !isMethod {
		a.errors.Add(errors.NewMarkerRequiresMethod(decl.Location, shape.String(), decl.Name))
		return nil, false
	}
	if _, ok := a.namedArguments(attr); !ok {
		return nil, false
	}

	valid := true
	if !decl.Accessibility.IsPublicOrInternal() {
		a.errors.Add(errors.NewMemberNotAccessible(decl.Location, shape.String(), decl.Name))
		valid = false
	}
	if !method.ReturnsVoid() {
		a.errors.Add(errors.NewMemberMustReturnVoid(decl.Location, shape.String(), decl.Name, method.ReturnType.ID()))
		valid = false
	}
	if len(method.Parameters) != 1 || method.Parameters[0].Type != capability || method.Parameters[0].RefKind != symbols.RefNone {
		a.errors.Add(errors.NewInvalidCapabilityParameter(decl.Location, shape.String(), decl.Name, capability.ID()))
		valid = false
	}
	return method, valid
}

func (a *Analyzer) extractConstant(mod *model.Module, member symbols.Member, attr *symbols.Attribute) {
	decl := member.Decl()
	var typ *symbols.Type
	switch m := member.(type) {
	case *symbols.Property:
		typ = m.Type
	case *symbols.Field:
		typ = m.Type
	default:
		a.errors.Add(errors.NewMemberMustBePropertyOrField(decl.Location, shapeConstant.String(), decl.Name))
		return
	}
	named, ok := a.namedArguments(attr, propConstantName)
	if !ok {
		return
	}

	valid := true
	if !decl.Accessibility.IsPublicOrInternal() {
		a.errors.Add(errors.NewMemberNotAccessible(decl.Location, shapeConstant.String(), decl.Name))
		valid = false
	}
	if prop, isProp := member.(*symbols.Property); isProp {
		if prop.Getter == nil || !prop.Getter.Accessibility.IsPublicOrInternal() {
			a.errors.Add(errors.NewGetterNotAccessible(decl.Location, decl.Name))
			valid = false
		}
	}
	if !valid {
		return
	}

	mod.Constants = append(mod.Constants, &model.Constant{
		Member: member,
		Name:   markerName(attr, named, propConstantName, decl.Name),
		Type:   typ,
	})
}

func (a *Analyzer) extractEvent(mod *model.Module, member symbols.Member, attr *symbols.Attribute) {
	cb, ok := a.callback(member, attr, shapeEvent, propEventName, propEventEmitterName, mod.EventEmitterName)
	if ok {
		mod.Events = append(mod.Events, &model.Event{Callback: cb})
	}
}

func (a *Analyzer) extractFunction(mod *model.Module, member symbols.Member, attr *symbols.Attribute) {
	cb, ok := a.callback(member, attr, shapeFunction, propFunctionName, propModuleName, mod.Name)
	if ok {
		mod.Functions = append(mod.Functions, &model.Function{Callback: cb})
	}
}

// callback validates an event or function member: a property with an accessible
// setter or a field, itself accessible, of a delegate type returning void
func (a *Analyzer) callback(member symbols.Member, attr *symbols.Attribute, shape memberShape, nameProp, contextProp, defaultContext string) (model.Callback, bool) {
	decl := member.Decl()
	switch member.(type) {
	case *symbols.Property, *symbols.Field:
	default:
		a.errors.Add(errors.NewMemberMustBePropertyOrField(decl.Location, shape.String(), decl.Name))
		return model.Callback{}, false
	}
	named, ok := a.namedArguments(attr, nameProp, contextProp)
	if !ok {
		return model.Callback{}, false
	}

	valid := true
	switch m := member.(type) {
	case *symbols.Property:
		if m.Setter == nil || !m.Setter.Accessibility.IsPublicOrInternal() {
			a.errors.Add(errors.NewCallbackNotSettable(decl.Location, shape.String(), decl.Name))
			valid = false
		}
	case *symbols.Field:
		if m.ReadOnly || m.Const {
			a.errors.Add(errors.NewReadOnlyCallbackField(decl.Location, shape.String(), decl.Name))
		}
	}
	if !decl.Accessibility.IsPublicOrInternal() {
		a.errors.Add(errors.NewMemberNotAccessible(decl.Location, shape.String(), decl.Name))
		valid = false
	}

	delegate := callbackType(member)
	if !delegate.IsDelegate() {
		a.errors.Add(errors.NewCallbackTypeNotDelegate(decl.Location, shape.String(), decl.Name, delegate.ID()))
		return model.Callback{}, false
	}
	if !delegate.Invoke.ReturnsVoid() {
		a.errors.Add(errors.NewCallbackDelegateMustReturnVoid(decl.Location, shape.String(), decl.Name, delegate.Invoke.ReturnType.ID()))
		valid = false
	}
	if !valid {
		return model.Callback{}, false
	}

	contextName := defaultContext
	if override := named[contextProp]; override != "" {
		contextName = override
	}
	return model.Callback{
		Member:      member,
		Name:        markerName(attr, named, nameProp, decl.Name),
		ContextName: contextName,
		Delegate:    delegate,
		Parameters:  delegate.Invoke.Parameters,
	}, true
}

// callbackType returns the declared type of a callback member. Callers check the
// member kind first; any other member is a programming error.
func callbackType(member symbols.Member) *symbols.Type {
	switch m := member.(type) {
	case *symbols.Property:
		return m.Type
	case *symbols.Field:
		return m.Type
	}
	panic(fmt.Sprintf("analyzer: callback member %q is neither a property nor a field", member.Decl().Name))
}
