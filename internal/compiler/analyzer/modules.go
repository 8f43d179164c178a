package analyzer

import (
	"fmt"
	"slices"

	"github.com/conduit-lang/modulegen/internal/compiler/errors"
	"github.com/conduit-lang/modulegen/internal/compiler/model"
	"github.com/conduit-lang/modulegen/internal/compiler/reacttypes"
	"github.com/conduit-lang/modulegen/internal/compiler/symbols"
	"github.com/conduit-lang/modulegen/internal/utils"
)

// Attribute property names
const (
	propModuleName       = "ModuleName"
	propEventEmitterName = "EventEmitterName"
	propMethodName       = "MethodName"
	propConstantName     = "ConstantName"
	propEventName        = "EventName"
	propFunctionName     = "FunctionName"
)

// memberShape tags the declarative shape a member was extracted as
type memberShape int

const (
	shapeMethod memberShape = iota
	shapeSyncMethod
	shapeInitializer
	shapeConstantProvider
	shapeConstant
	shapeEvent
	shapeFunction
)

var shapeNames = [...]string{
	shapeMethod:           "method",
	shapeSyncMethod:       "synchronous method",
	shapeInitializer:      "initializer",
	shapeConstantProvider: "constant provider",
	shapeConstant:         "constant",
	shapeEvent:            "event",
	shapeFunction:         "function",
}

func (s memberShape) String() string {
	return shapeNames[s]
}

// memberExtractor binds a shape to its marker attribute and extraction routine
type memberExtractor struct {
	shape   memberShape
	marker  func(*reacttypes.Types) *symbols.Type
	extract func(a *Analyzer, mod *model.Module, member symbols.Member, attr *symbols.Attribute)
}

// memberExtractors is tried in order; the first marker found on a member decides
// its shape
var memberExtractors = []memberExtractor{
	{shapeMethod, func(t *reacttypes.Types) *symbols.Type { return t.MethodAttribute }, (*Analyzer).extractMethod},
	{shapeSyncMethod, func(t *reacttypes.Types) *symbols.Type { return t.SyncMethodAttribute }, (*Analyzer).extractSyncMethod},
	{shapeInitializer, func(t *reacttypes.Types) *symbols.Type { return t.InitializerAttribute }, (*Analyzer).extractInitializer},
	{shapeConstantProvider, func(t *reacttypes.Types) *symbols.Type { return t.ConstantProviderAttribute }, (*Analyzer).extractConstantProvider},
	{shapeConstant, func(t *reacttypes.Types) *symbols.Type { return t.ConstantAttribute }, (*Analyzer).extractConstant},
	{shapeEvent, func(t *reacttypes.Types) *symbols.Type { return t.EventAttribute }, (*Analyzer).extractEvent},
	{shapeFunction, func(t *reacttypes.Types) *symbols.Type { return t.FunctionAttribute }, (*Analyzer).extractFunction},
}

// ExtractModule builds the module of a type carrying the module marker. It returns
// false when t is not a module or its marker is malformed; member problems are
// reported and the member is skipped, the module itself is kept.
func (a *Analyzer) ExtractModule(t *symbols.Type) (*model.Module, bool) {
	attr := symbols.FindAttribute(t.Attributes, a.types.ModuleAttribute)
	if attr == nil {
		return nil, false
	}
	named, ok := a.namedArguments(attr, propModuleName, propEventEmitterName)
	if !ok {
		return nil, false
	}

	mod := &model.Module{
		Type:             t,
		Name:             markerName(attr, named, propModuleName, t.Name),
		EventEmitterName: reacttypes.DefaultEventEmitter,
	}
	if emitter, ok := named[propEventEmitterName]; ok {
		mod.EventEmitterName = emitter
	}

	for _, member := range t.Members {
		a.extractMember(mod, member)
	}
	return mod, true
}

func (a *Analyzer) extractMember(mod *model.Module, member symbols.Member) {
	attrs := member.Decl().Attributes
	for _, ex := range memberExtractors {
		if attr := symbols.FindAttribute(attrs, ex.marker(a.types)); attr != nil {
			ex.extract(a, mod, member, attr)
			return
		}
	}
}

// namedArguments reads the string named arguments of a marker. Any name outside
// known is reported and makes the marker invalid.
func (a *Analyzer) namedArguments(attr *symbols.Attribute, known ...string) (map[string]string, bool) {
	named := make(map[string]string, len(attr.NamedArguments))
	ok := true
	for _, arg := range attr.NamedArguments {
		if !slices.Contains(known, arg.Name) {
			a.errors.Add(errors.NewUnexpectedAttributeProperty(
				attr.Location, attr.Class.Name, arg.Name, utils.FindSimilar(arg.Name, known, nil)))
			ok = false
			continue
		}
		if s, isString := arg.Value.(string); isString {
			named[arg.Name] = s
		} else if arg.Value != nil {
			named[arg.Name] = fmt.Sprint(arg.Value)
		}
	}
	return named, ok
}

// markerName picks the positional name, then the named override, then fallback
func markerName(attr *symbols.Attribute, named map[string]string, property, fallback string) string {
	if name, ok := attr.StringArgument(0); ok {
		return name
	}
	if name := named[property]; name != "" {
		return name
	}
	return fallback
}
