package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/modulegen/internal/compiler/errors"
	"github.com/conduit-lang/modulegen/internal/compiler/snapshot"
	"github.com/conduit-lang/modulegen/internal/compiler/symbols"
)

const sampleSource = `{
  "assembly": "SampleApp",
  "file": "Sample.cs",
  "types": [
    {
      "name": "Point", "namespace": "SampleApp", "kind": "struct", "accessibility": "public",
      "members": [
        {"kind": "field", "name": "X", "type": "int", "accessibility": "public"},
        {"kind": "field", "name": "Y", "type": "int", "accessibility": "public"}
      ]
    },
    {
      "name": "Shapes", "namespace": "SampleApp", "accessibility": "public",
      "nested": [{"name": "Kind", "kind": "enum", "members": [{"kind": "field", "name": "Circle", "const": true}]}],
      "members": [
        {"kind": "method", "name": "Area", "returns": "double", "line": 7, "column": 5,
         "parameters": [{"name": "points", "type": "System.Collections.Generic.List<Point>"},
                        {"name": "kind", "type": "Kind"},
                        {"name": "done", "type": "System.Action<Point[]>"}]}
      ]
    }
  ]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadBindsSources(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sample.json", sampleSource)

	result, err := Load(context.Background(), Options{Sources: []string{path}, Jobs: 2})
	require.NoError(t, err)
	require.Empty(t, result.Diagnostics)

	comp := result.Compilation
	assert.Equal(t, "SampleApp", comp.AssemblyName)

	shapes := comp.Lookup("SampleApp.Shapes")
	require.NotNil(t, shapes)
	assert.Equal(t, symbols.KindClass, shapes.Kind)
	assert.True(t, comp.IsLocal(shapes))

	kind := comp.Lookup("SampleApp.Shapes.Kind")
	require.NotNil(t, kind)
	assert.Equal(t, shapes, kind.ContainingType)
	assert.Equal(t, symbols.AccessInternal, kind.Accessibility)

	methods := shapes.Methods()
	require.Len(t, methods, 1)
	area := methods[0]
	assert.Equal(t, "System.Double", area.ReturnType.ID())
	assert.Equal(t, "System.Collections.Generic.List<SampleApp.Point>", area.Parameters[0].Type.ID())
	assert.Equal(t, kind, area.Parameters[1].Type)
	assert.Equal(t, "Sample.cs:7:5", area.Location.String())

	done := area.Parameters[2].Type
	require.True(t, done.IsDelegate())
	require.Len(t, done.Invoke.Parameters, 1)
	assert.Equal(t, "SampleApp.Point[]", done.Invoke.Parameters[0].Type.ID())
}

func TestLoadReportsUndecodableSnapshots(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", sampleSource)
	bad := writeFile(t, dir, "bad.yaml", "assembly: [unterminated")

	result, err := Load(context.Background(), Options{Sources: []string{good}, References: []string{bad}})
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, errors.ErrInvalidSnapshot, result.Diagnostics[0].Code)
	assert.Equal(t, bad, result.Diagnostics[0].Location.File)
	assert.NotNil(t, result.Compilation.Lookup("SampleApp.Point"))
}

func TestLoadFailsOnMissingFile(t *testing.T) {
	_, err := Load(context.Background(), Options{Sources: []string{filepath.Join(t.TempDir(), "nope.json")}})
	assert.ErrorContains(t, err, "failed to read")
}

func TestReadFilesKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.json", "b.json", "c.json", "d.json"} {
		paths = append(paths, writeFile(t, dir, name, `{"assembly": "`+name+`"}`))
	}

	files, diags, err := ReadFiles(context.Background(), paths, 3)
	require.NoError(t, err)
	assert.Empty(t, diags)
	for i, f := range files {
		assert.Equal(t, filepath.Base(paths[i]), f.Assembly)
		assert.Equal(t, paths[i], f.Path)
	}
}

func TestReadFilesHonoursCancellation(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.json", sampleSource)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := ReadFiles(ctx, []string{path, path}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBindDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		file snapshot.File
		code errors.ErrorCode
	}{
		{
			name: "unresolved type",
			file: snapshot.File{Assembly: "A", Types: []snapshot.TypeDecl{{Name: "M", Members: []snapshot.MemberDecl{
				{Kind: "field", Name: "f", Type: "Missing.Thing"},
			}}}},
			code: errors.ErrUnresolvedType,
		},
		{
			name: "malformed reference",
			file: snapshot.File{Assembly: "A", Types: []snapshot.TypeDecl{{Name: "M", Members: []snapshot.MemberDecl{
				{Kind: "method", Name: "m", Returns: "List<"},
			}}}},
			code: errors.ErrMalformedTypeReference,
		},
		{
			name: "duplicate type",
			file: snapshot.File{Assembly: "A", Types: []snapshot.TypeDecl{{Name: "M"}, {Name: "M"}}},
			code: errors.ErrDuplicateType,
		},
		{
			name: "unknown kind",
			file: snapshot.File{Assembly: "A", Types: []snapshot.TypeDecl{{Name: "M", Kind: "record"}}},
			code: errors.ErrInvalidDeclaration,
		},
		{
			name: "unknown member kind",
			file: snapshot.File{Assembly: "A", Types: []snapshot.TypeDecl{{Name: "M", Members: []snapshot.MemberDecl{
				{Kind: "event", Name: "e"},
			}}}},
			code: errors.ErrInvalidDeclaration,
		},
		{
			name: "unresolved attribute",
			file: snapshot.File{Assembly: "A", Types: []snapshot.TypeDecl{{Name: "M", Attributes: []snapshot.AttributeDecl{
				{Type: "Nowhere"},
			}}}},
			code: errors.ErrUnresolvedType,
		},
		{
			name: "type reference nested too deeply",
			file: snapshot.File{Assembly: "A", Types: []snapshot.TypeDecl{{Name: "M", Members: []snapshot.MemberDecl{
				{Kind: "field", Name: "f", Type: strings.Repeat("System.Action<", snapshot.MaxTypeRefDepth+1) + "int" + strings.Repeat(">", snapshot.MaxTypeRefDepth+1)},
			}}}},
			code: errors.ErrMalformedTypeReference,
		},
		{
			name: "attribute names a struct",
			file: snapshot.File{Assembly: "A", Types: []snapshot.TypeDecl{
				{Name: "Options", Kind: "struct"},
				{Name: "M", Attributes: []snapshot.AttributeDecl{{Type: "Options"}}},
			}},
			code: errors.ErrNotAnAttribute,
		},
		{
			name: "attribute class without attribute base",
			file: snapshot.File{Assembly: "A", Types: []snapshot.TypeDecl{
				{Name: "TagAttribute"},
				{Name: "M", Attributes: []snapshot.AttributeDecl{{Type: "Tag"}}},
			}},
			code: errors.ErrNotAnAttribute,
		},
		{
			name: "ambiguous attribute",
			file: snapshot.File{Assembly: "A", Types: []snapshot.TypeDecl{
				{Name: "Tag", Base: "System.Attribute"},
				{Name: "TagAttribute", Base: "System.Attribute"},
				{Name: "M", Attributes: []snapshot.AttributeDecl{{Type: "Tag"}}},
			}},
			code: errors.ErrAmbiguousAttribute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := tt.file
			_, diags := Bind([]*snapshot.File{&file}, nil)
			require.Len(t, diags, 1)
			assert.Equal(t, tt.code, diags[0].Code)
		})
	}
}

func TestBindAssemblyMismatch(t *testing.T) {
	a := &snapshot.File{Assembly: "A"}
	b := &snapshot.File{Assembly: "B", Source: "b.cs"}

	_, diags := Bind([]*snapshot.File{a, b}, nil)
	require.Len(t, diags, 1)
	assert.Equal(t, errors.ErrAssemblyMismatch, diags[0].Code)
	assert.Equal(t, "b.cs", diags[0].Location.File)
}

func TestBindResolvesAttributesWithoutSuffix(t *testing.T) {
	ref := &snapshot.File{Assembly: "Lib", Types: []snapshot.TypeDecl{{Name: "MarkAttribute", Namespace: "Lib", Base: "System.Attribute"}}}
	src := &snapshot.File{Assembly: "App", Types: []snapshot.TypeDecl{{
		Name: "Thing", Namespace: "App",
		Attributes: []snapshot.AttributeDecl{{Type: "Lib.Mark", Args: []any{"x"}}},
	}}}

	comp, diags := Bind([]*snapshot.File{src}, []*snapshot.File{ref})
	require.Empty(t, diags)

	thing := comp.Lookup("App.Thing")
	require.Len(t, thing.Attributes, 1)
	assert.Equal(t, comp.Lookup("Lib.MarkAttribute"), thing.Attributes[0].Class)
	name, ok := thing.Attributes[0].StringArgument(0)
	assert.True(t, ok)
	assert.Equal(t, "x", name)
}

func TestBindAttributeSkipsCollidingNonAttributeType(t *testing.T) {
	ref := &snapshot.File{Assembly: "Lib", Types: []snapshot.TypeDecl{
		{Name: "Provider", Namespace: "Lib", Kind: "struct"},
		{Name: "ProviderAttribute", Namespace: "Lib", Base: "System.Attribute"},
	}}
	// the attribute class is declared after its first use
	src := &snapshot.File{Assembly: "App", Types: []snapshot.TypeDecl{
		{
			Name: "Thing", Namespace: "App",
			Attributes: []snapshot.AttributeDecl{{Type: "Lib.Provider"}, {Type: "App.Local"}},
			Members: []snapshot.MemberDecl{{
				Kind: "method", Name: "Run",
				Attributes: []snapshot.AttributeDecl{{Type: "Lib.Provider"}},
				Parameters: []snapshot.ParameterDecl{{Name: "p", Type: "Lib.Provider"}},
			}},
		},
		{Name: "LocalAttribute", Namespace: "App", Base: "Lib.ProviderAttribute"},
	}}

	comp, diags := Bind([]*snapshot.File{src}, []*snapshot.File{ref})
	require.Empty(t, diags)

	thing := comp.Lookup("App.Thing")
	require.Len(t, thing.Attributes, 2)
	assert.Equal(t, comp.Lookup("Lib.ProviderAttribute"), thing.Attributes[0].Class)
	assert.Equal(t, comp.Lookup("App.LocalAttribute"), thing.Attributes[1].Class)

	run := thing.Members[0].(*symbols.Method)
	require.Len(t, run.Attributes, 1)
	assert.Equal(t, comp.Lookup("Lib.ProviderAttribute"), run.Attributes[0].Class)
	assert.Equal(t, comp.Lookup("Lib.Provider"), run.Parameters[0].Type)
}

func TestBindGenericDefinitionsAndTypeParameters(t *testing.T) {
	src := &snapshot.File{Assembly: "App", Types: []snapshot.TypeDecl{
		{
			Name: "Box", Namespace: "App", TypeParameters: []string{"T"},
			Members: []snapshot.MemberDecl{{Kind: "property", Name: "Value", Type: "T", Getter: "public"}},
		},
		{
			Name: "Use", Namespace: "App",
			Members: []snapshot.MemberDecl{{Kind: "field", Name: "b", Type: "Box<string>"}},
		},
	}}

	comp, diags := Bind([]*snapshot.File{src}, nil)
	require.Empty(t, diags)

	box := comp.Lookup("App.Box`1")
	require.NotNil(t, box)
	value := box.Members[0].(*symbols.Property)
	assert.Equal(t, symbols.KindTypeParameter, value.Type.Kind)
	assert.Equal(t, symbols.AccessPublic, value.Getter.Accessibility)
	assert.Nil(t, value.Setter)

	field := comp.Lookup("App.Use").Members[0].(*symbols.Field)
	assert.Equal(t, "App.Box<System.String>", field.Type.ID())
	assert.Equal(t, box, field.Type.OriginalDefinition())
}
