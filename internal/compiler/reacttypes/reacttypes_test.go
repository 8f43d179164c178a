package reacttypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/modulegen/internal/compiler/errors"
	"github.com/conduit-lang/modulegen/internal/compiler/loader"
	"github.com/conduit-lang/modulegen/internal/compiler/snapshot"
	"github.com/conduit-lang/modulegen/internal/compiler/symbols"
)

func TestResolveBuiltinReferences(t *testing.T) {
	comp, diags := loader.Bind(nil, BuiltinReferences())
	require.Empty(t, diags)

	types, diags := Resolve(comp)
	require.Empty(t, diags)
	require.NotNil(t, types)

	assert.Equal(t, "Microsoft.ReactNative.Managed.ReactModuleAttribute", types.ModuleAttribute.ID())
	assert.Equal(t, "Microsoft.ReactNative.IJSValueWriter", types.IJSValueWriter.ID())
	assert.Len(t, types.ReactPromise.TypeParameters, 1)
	assert.True(t, types.EventAttribute.InheritsFrom(comp.Lookup("System.Attribute")))
	assert.False(t, types.ReactConstantProvider.InheritsFrom(comp.Lookup("System.Attribute")))
}

func TestResolveReportsEveryMissingType(t *testing.T) {
	// only the native assembly is referenced
	comp, diags := loader.Bind(nil, BuiltinReferences()[:1])
	require.Empty(t, diags)

	types, diags := Resolve(comp)
	assert.Nil(t, types)
	missing := diags.ByCode(errors.ErrRequiredTypeNotFound)
	assert.Len(t, missing, 11)
	assert.Equal(t, "Microsoft.ReactNative.Managed.ReactModuleAttribute", missing[0].Args[0])
	assert.Equal(t, errors.CategoryEnvironment, missing[0].Category)
}

func TestResolveIgnoresLookalikesFromOtherAssemblies(t *testing.T) {
	fake := &snapshot.File{
		Assembly: "SampleApp",
		Types:    []snapshot.TypeDecl{{Name: "IViewManager", Namespace: NativeAssembly, Kind: "interface"}},
	}
	// the local declaration wins the name and the real one is a duplicate
	comp, diags := loader.Bind([]*snapshot.File{fake}, BuiltinReferences())
	assert.Len(t, diags.ByCode(errors.ErrDuplicateType), 1)

	types, diags := Resolve(comp)
	assert.Nil(t, types)
	require.Len(t, diags, 1)
	assert.Equal(t, "Microsoft.ReactNative.IViewManager", diags[0].Args[0])
}

func TestIsPromise(t *testing.T) {
	comp, _ := loader.Bind(nil, BuiltinReferences())
	types, _ := Resolve(comp)

	promise := comp.Construct(types.ReactPromise, []*symbols.Type{comp.Lookup("System.Int32")})
	assert.True(t, types.IsPromise(promise))
	assert.False(t, types.IsPromise(types.ReactPromise))
	assert.False(t, types.IsPromise(nil))
}
