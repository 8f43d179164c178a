// Package reacttypes resolves the library types that give React Native Windows
// modules their meaning: marker attributes, capability types and the package
// builder interfaces.
package reacttypes

import (
	"embed"
	"fmt"
	"sync"

	"github.com/conduit-lang/modulegen/internal/compiler/errors"
	"github.com/conduit-lang/modulegen/internal/compiler/snapshot"
	"github.com/conduit-lang/modulegen/internal/compiler/symbols"
)

const (
	// NativeAssembly hosts the runtime interfaces
	NativeAssembly = "Microsoft.ReactNative"
	// ManagedAssembly hosts the attributes and managed capability types
	ManagedAssembly = "Microsoft.ReactNative.Managed"

	// DefaultEventEmitter is the emitter events go through unless a module or
	// event names another one
	DefaultEventEmitter = "RCTDeviceEventEmitter"
)

// Types holds every required library type of a compilation
type Types struct {
	ModuleAttribute           *symbols.Type
	InitializerAttribute      *symbols.Type
	ConstantAttribute         *symbols.Type
	ConstantProviderAttribute *symbols.Type
	MethodAttribute           *symbols.Type
	SyncMethodAttribute       *symbols.Type
	EventAttribute            *symbols.Type
	FunctionAttribute         *symbols.Type

	ReactContext          *symbols.Type
	ReactConstantProvider *symbols.Type
	ReactPromise          *symbols.Type

	IReactContext         *symbols.Type
	IReactPackageProvider *symbols.Type
	IReactPackageBuilder  *symbols.Type
	IReactModuleBuilder   *symbols.Type
	IViewManager          *symbols.Type
	IJSValueReader        *symbols.Type
	IJSValueWriter        *symbols.Type
}

type requirement struct {
	assembly string
	name     string
	slot     func(*Types) **symbols.Type
}

var requirements = []requirement{
	{ManagedAssembly, "ReactModuleAttribute", func(t *Types) **symbols.Type { return &t.ModuleAttribute }},
	{ManagedAssembly, "ReactInitializerAttribute", func(t *Types) **symbols.Type { return &t.InitializerAttribute }},
	{ManagedAssembly, "ReactConstantAttribute", func(t *Types) **symbols.Type { return &t.ConstantAttribute }},
	{ManagedAssembly, "ReactConstantProviderAttribute", func(t *Types) **symbols.Type { return &t.ConstantProviderAttribute }},
	{ManagedAssembly, "ReactMethodAttribute", func(t *Types) **symbols.Type { return &t.MethodAttribute }},
	{ManagedAssembly, "ReactSyncMethodAttribute", func(t *Types) **symbols.Type { return &t.SyncMethodAttribute }},
	{ManagedAssembly, "ReactEventAttribute", func(t *Types) **symbols.Type { return &t.EventAttribute }},
	{ManagedAssembly, "ReactFunctionAttribute", func(t *Types) **symbols.Type { return &t.FunctionAttribute }},
	{ManagedAssembly, "ReactContext", func(t *Types) **symbols.Type { return &t.ReactContext }},
	{ManagedAssembly, "ReactConstantProvider", func(t *Types) **symbols.Type { return &t.ReactConstantProvider }},
	{ManagedAssembly, "ReactPromise`1", func(t *Types) **symbols.Type { return &t.ReactPromise }},
	{NativeAssembly, "IReactContext", func(t *Types) **symbols.Type { return &t.IReactContext }},
	{NativeAssembly, "IReactPackageProvider", func(t *Types) **symbols.Type { return &t.IReactPackageProvider }},
	{NativeAssembly, "IReactPackageBuilder", func(t *Types) **symbols.Type { return &t.IReactPackageBuilder }},
	{NativeAssembly, "IReactModuleBuilder", func(t *Types) **symbols.Type { return &t.IReactModuleBuilder }},
	{NativeAssembly, "IViewManager", func(t *Types) **symbols.Type { return &t.IViewManager }},
	{NativeAssembly, "IJSValueReader", func(t *Types) **symbols.Type { return &t.IJSValueReader }},
	{NativeAssembly, "IJSValueWriter", func(t *Types) **symbols.Type { return &t.IJSValueWriter }},
}

// Resolve looks up every required type by metadata name in the namespace of its
// assembly. Each missing type yields one ENV001 diagnostic; the returned Types is
// nil whenever any diagnostic was reported.
func Resolve(comp *symbols.Compilation) (*Types, errors.ErrorList) {
	var diags errors.ErrorList
	types := &Types{}

	for _, req := range requirements {
		full := req.assembly + "." + req.name
		t := comp.Lookup(full)
		if t == nil || t.Assembly != req.assembly {
			diags.Add(errors.NewRequiredTypeNotFound(full, req.assembly))
			continue
		}
		*req.slot(types) = t
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return types, diags
}

// IsPromise reports whether t is an instance of ReactPromise<T>
func (r *Types) IsPromise(t *symbols.Type) bool {
	return t != nil && t.Definition != nil && t.Definition == r.ReactPromise
}

//go:embed references/*.json
var referenceFS embed.FS

var builtinReferences = sync.OnceValue(func() []*snapshot.File {
	var files []*snapshot.File
	for _, name := range []string{NativeAssembly, ManagedAssembly} {
		path := "references/" + name + ".json"
		data, err := referenceFS.ReadFile(path)
		if err != nil {
			panic(fmt.Sprintf("reacttypes: missing embedded reference %s: %v", path, err))
		}
		f, err := snapshot.Decode(data, snapshot.FormatJSON)
		if err != nil {
			panic(fmt.Sprintf("reacttypes: invalid embedded reference %s: %v", path, err))
		}
		f.Path = "<builtin>/" + name + ".json"
		files = append(files, f)
	}
	return files
})

// BuiltinReferences returns the embedded snapshots of both library assemblies.
// The files are shared and must not be modified.
func BuiltinReferences() []*snapshot.File {
	return builtinReferences()
}
