package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/modulegen/internal/compiler/errors"
	"github.com/conduit-lang/modulegen/internal/compiler/model"
)

func closureKinds(t *testing.T, asm *model.Assembly) map[string]model.SerializableKind {
	t.Helper()
	out := make(map[string]model.SerializableKind, len(asm.SerializableTypes))
	for id, st := range asm.SerializableTypes {
		assert.Equal(t, id, st.Type.ID())
		out[id] = st.Kind
	}
	return out
}

func TestClosureEnumsThroughConstant(t *testing.T) {
	asm, diags := analyze(t, `
- {name: Color, namespace: SampleApp, kind: enum, members: [{kind: field, name: Red, const: true}]}
- {name: Shade, namespace: SampleApp, kind: enum, members: [{kind: field, name: Dark, const: true}]}
- {name: Unused, namespace: SampleApp, kind: enum}
- name: Palette
  namespace: SampleApp
  attributes: [{type: Microsoft.ReactNative.Managed.ReactModule}]
  members:
  - {kind: property, name: Defaults, type: "System.Collections.Generic.Dictionary<Color, Shade>", accessibility: public, getter: public, static: true,
     attributes: [{type: Microsoft.ReactNative.Managed.ReactConstant}]}
  - {kind: field, name: Primary, type: Color, accessibility: public, static: true, readonly: true,
     attributes: [{type: Microsoft.ReactNative.Managed.ReactConstant}]}
`)
	require.Empty(t, diags)
	assert.Equal(t, map[string]model.SerializableKind{
		"SampleApp.Color": model.SerializableEnum,
		"SampleApp.Shade": model.SerializableEnum,
	}, closureKinds(t, asm))
}

func TestClosureWalksSignaturesNotMembers(t *testing.T) {
	asm, diags := analyze(t, `
- name: Point
  namespace: SampleApp
  kind: struct
  members: [{kind: field, name: Tag, type: Tag, accessibility: public}]
- {name: Tag, namespace: SampleApp, members: [{kind: field, name: Text, type: string, accessibility: public}]}
- {name: IShape, namespace: SampleApp, kind: interface}
- {name: Options, namespace: SampleApp, members: [{kind: constructor, accessibility: public, parameters: [{name: x, type: int}]}]}
- {name: Moved, namespace: SampleApp, kind: delegate, invoke: {kind: method, name: Invoke, parameters: [{name: to, type: Point}]}}
- name: Canvas
  namespace: SampleApp
  attributes: [{type: Microsoft.ReactNative.Managed.ReactModule}]
  members:
  - {kind: method, name: Draw, accessibility: public, returns: "IShape[]",
     attributes: [{type: Microsoft.ReactNative.Managed.ReactMethod}],
     parameters: [{name: options, type: Options}, {name: done, type: "System.Action<Point>"}]}
  - {kind: method, name: Measure, accessibility: public,
     attributes: [{type: Microsoft.ReactNative.Managed.ReactMethod}],
     parameters: [{name: promise, type: "Microsoft.ReactNative.Managed.ReactPromise<System.Collections.Generic.List<Point>>"}]}
  - {kind: field, name: OnMoved, type: Moved, accessibility: public, attributes: [{type: Microsoft.ReactNative.Managed.ReactEvent}]}
`)
	assert.Equal(t, map[string]model.SerializableKind{
		"SampleApp.Point":   model.SerializableStruct,
		"SampleApp.IShape":  model.SerializableInterface,
		"SampleApp.Options": model.SerializableClass,
	}, closureKinds(t, asm))

	// Options only has a constructor with arguments
	warnings := diags.ByCode(errors.ErrMissingDefaultConstructor)
	require.Len(t, warnings, 1)
	assert.Equal(t, []string{"SampleApp.Options"}, warnings[0].Args)
	assert.False(t, diags.HasErrors())
}

func TestClosureIsIdempotent(t *testing.T) {
	a, cat := setup(t, `
- {name: Point, namespace: SampleApp, kind: struct}
- name: Geo
  namespace: SampleApp
  attributes: [{type: Microsoft.ReactNative.Managed.ReactModule}]
  members:
  - {kind: method, name: A, accessibility: public, returns: Point, attributes: [{type: Microsoft.ReactNative.Managed.ReactMethod}],
     parameters: [{name: p, type: Point}, {name: q, type: "Point[]"}]}
`)
	asm, diags := a.Analyze(cat)
	require.Empty(t, diags)
	require.Len(t, asm.SerializableTypes, 1)

	// a second collection over the same model adds nothing
	a.CollectClosure(asm)
	assert.Len(t, asm.SerializableTypes, 1)
	assert.Equal(t, model.SerializableStruct, asm.SerializableTypes["SampleApp.Point"].Kind)
}

func TestClosureHandlesRecursiveDelegates(t *testing.T) {
	asm, diags := analyze(t, `
- {name: Node, namespace: SampleApp, kind: struct}
- {name: Visitor, namespace: SampleApp, kind: delegate, invoke: {kind: method, name: Invoke, parameters: [{name: node, type: Node}, {name: next, type: Visitor}]}}
- name: Tree
  namespace: SampleApp
  attributes: [{type: Microsoft.ReactNative.Managed.ReactModule}]
  members:
  - {kind: method, name: Walk, accessibility: public, attributes: [{type: Microsoft.ReactNative.Managed.ReactMethod}],
     parameters: [{name: visit, type: Visitor}]}
`)
	require.Empty(t, diags)
	assert.Equal(t, map[string]model.SerializableKind{"SampleApp.Node": model.SerializableStruct}, closureKinds(t, asm))
}

func TestClosureRegistersLocalGenericInstances(t *testing.T) {
	asm, diags := analyze(t, `
- {name: Point, namespace: SampleApp, kind: struct, members: [{kind: field, name: X, type: int, accessibility: public}]}
- name: Box
  namespace: SampleApp
  kind: struct
  typeParameters: [T]
  members: [{kind: field, name: Value, type: T, accessibility: public}]
- name: Canvas
  namespace: SampleApp
  attributes: [{type: Microsoft.ReactNative.Managed.ReactModule}]
  members:
  - {kind: method, name: Draw, accessibility: public, returns: "Box<Point>",
     attributes: [{type: Microsoft.ReactNative.Managed.ReactSyncMethod}]}
  - {kind: method, name: Stack, accessibility: public, returns: "System.Collections.Generic.List<Box<int>>",
     attributes: [{type: Microsoft.ReactNative.Managed.ReactSyncMethod}]}
`)
	require.Empty(t, diags)
	assert.Equal(t, map[string]model.SerializableKind{
		"SampleApp.Point":                model.SerializableStruct,
		"SampleApp.Box<SampleApp.Point>": model.SerializableStruct,
		"SampleApp.Box<System.Int32>":    model.SerializableStruct,
	}, closureKinds(t, asm))
}
