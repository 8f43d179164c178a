// Package model holds the declarative module model extracted from a compilation.
// Values are created by one extraction pass and are read-only afterwards.
package model

import (
	"sort"

	"github.com/conduit-lang/modulegen/internal/compiler/symbols"
)

// ReturnStyle is how an asynchronous method delivers its result
type ReturnStyle int

const (
	ReturnVoid ReturnStyle = iota
	ReturnCallback
	ReturnTwoCallbacks
	ReturnPromise
)

func (s ReturnStyle) String() string {
	switch s {
	case ReturnCallback:
		return "Callback"
	case ReturnTwoCallbacks:
		return "TwoCallbacks"
	case ReturnPromise:
		return "Promise"
	default:
		return "Void"
	}
}

// SerializableKind classifies a type of the serializer closure
type SerializableKind int

const (
	SerializableClass SerializableKind = iota
	SerializableStruct
	SerializableInterface
	SerializableEnum
)

func (k SerializableKind) String() string {
	switch k {
	case SerializableStruct:
		return "struct"
	case SerializableInterface:
		return "interface"
	case SerializableEnum:
		return "enum"
	default:
		return "class"
	}
}

// Method is an exported method
type Method struct {
	Symbol      *symbols.Method
	Name        string
	IsSync      bool
	ReturnStyle ReturnStyle
}

// Initializer is a method taking the module context, run when the module is created
type Initializer struct {
	Symbol *symbols.Method
}

// ConstantProvider is a method that writes constants at registration time
type ConstantProvider struct {
	Symbol *symbols.Method
}

// Constant is a property or field exported under a name
type Constant struct {
	Member symbols.Member
	Name   string
	Type   *symbols.Type
}

// Callback is a settable delegate-typed property or field the generated code
// assigns. Events and functions share this shape.
type Callback struct {
	Member symbols.Member
	Name   string
	// ContextName is the event emitter for events and the script module for
	// functions
	ContextName string
	// Delegate is the delegate type of the member
	Delegate   *symbols.Type
	Parameters []*symbols.Parameter
}

// Event is a callback raised as a script event
type Event struct {
	Callback
}

// Function is a callback that invokes a script function
type Function struct {
	Callback
}

// Module is one class marked as a native module
type Module struct {
	Type             *symbols.Type
	Name             string
	EventEmitterName string

	Methods           []*Method
	Initializers      []*Initializer
	ConstantProviders []*ConstantProvider
	Constants         []*Constant
	Events            []*Event
	Functions         []*Function
}

// ExtensionFunction is a static extension method that reads or writes one type
// across the boundary
type ExtensionFunction struct {
	Method *symbols.Method
	// Type is the value type the function operates on
	Type *symbols.Type
}

// SerializableType is one entry of the serializer closure
type SerializableType struct {
	Type *symbols.Type
	Kind SerializableKind
}

// Assembly is the aggregate of one generation run
type Assembly struct {
	Modules      []*Module
	ViewManagers []*symbols.Type

	// SerializableTypes, Readers and Writers are keyed by type identity
	SerializableTypes map[string]SerializableType
	Readers           map[string]*ExtensionFunction
	Writers           map[string]*ExtensionFunction

	viewManagerSet map[*symbols.Type]bool
}

// NewAssembly creates an empty model
func NewAssembly() *Assembly {
	return &Assembly{
		SerializableTypes: make(map[string]SerializableType),
		Readers:           make(map[string]*ExtensionFunction),
		Writers:           make(map[string]*ExtensionFunction),
		viewManagerSet:    make(map[*symbols.Type]bool),
	}
}

// AddViewManager records a view manager type once
func (a *Assembly) AddViewManager(t *symbols.Type) bool {
	if a.viewManagerSet[t] {
		return false
	}
	a.viewManagerSet[t] = true
	a.ViewManagers = append(a.ViewManagers, t)
	return true
}

// SerializableIDs returns the closure's identities in sorted order
func (a *Assembly) SerializableIDs() []string {
	return sortedKeys(a.SerializableTypes)
}

// ReaderIDs returns the identities of types with a reader, sorted
func (a *Assembly) ReaderIDs() []string {
	return sortedKeys(a.Readers)
}

// WriterIDs returns the identities of types with a writer, sorted
func (a *Assembly) WriterIDs() []string {
	return sortedKeys(a.Writers)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
