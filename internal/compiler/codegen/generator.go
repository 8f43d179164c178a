// Package codegen generates the C# package provider that registers view managers,
// native modules, serializers and extension readers/writers with the React Native
// Windows host.
package codegen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/conduit-lang/modulegen/internal/compiler/model"
	"github.com/conduit-lang/modulegen/internal/compiler/symbols"
)

const (
	nativeNS  = "global::Microsoft.ReactNative"
	managedNS = "global::Microsoft.ReactNative.Managed"

	// ProviderClassName is the name of the generated class
	ProviderClassName = "ReactPackageProvider"

	indentUnit = "    "
)

// Generator emits one C# compilation unit from an assembly model
type Generator struct {
	buf    *bytes.Buffer
	indent int
}

// NewGenerator creates a new code generator
func NewGenerator() *Generator {
	return &Generator{
		buf:    &bytes.Buffer{},
		indent: 0,
	}
}

// registration is one private routine called from CreatePackage
type registration struct {
	method    string
	takesArgs bool
	present   func(*model.Assembly) bool
	emit      func(*Generator, *model.Assembly)
}

// registrations in the order CreatePackage calls them
var registrations = []registration{
	{"RegisterViewManagers", true, func(a *model.Assembly) bool { return len(a.ViewManagers) > 0 }, (*Generator).generateViewManagers},
	{"RegisterModules", true, func(a *model.Assembly) bool { return len(a.Modules) > 0 }, (*Generator).generateModules},
	{"RegisterSerializers", false, func(a *model.Assembly) bool { return len(a.SerializableTypes) > 0 }, (*Generator).generateSerializers},
	{"RegisterExtensionReaders", false, func(a *model.Assembly) bool { return len(a.Readers) > 0 }, (*Generator).generateReaders},
	{"RegisterExtensionWriters", false, func(a *model.Assembly) bool { return len(a.Writers) > 0 }, (*Generator).generateWriters},
}

// Generate returns the source of the package provider in namespace ns. Output is
// byte-identical for structurally identical models.
func (g *Generator) Generate(asm *model.Assembly, ns string) (string, error) {
	if ns == "" {
		return "", fmt.Errorf("namespace is required")
	}
	g.reset()

	g.writeHeader()
	g.writeLine("namespace %s", ns)
	g.openBlock()
	g.writeLine("public sealed partial class %s : %s.IReactPackageProvider", ProviderClassName, nativeNS)
	g.openBlock()

	present := make([]registration, 0, len(registrations))
	for _, r := range registrations {
		if r.present(asm) {
			present = append(present, r)
		}
	}

	g.writeLine("public void CreatePackage(%s.IReactPackageBuilder packageBuilder)", nativeNS)
	g.openBlock()
	for _, r := range present {
		if r.takesArgs {
			g.writeLine("%s(packageBuilder);", r.method)
		} else {
			g.writeLine("%s();", r.method)
		}
	}
	g.closeBlock("")

	for _, r := range present {
		g.writeLine("")
		if r.takesArgs {
			g.writeLine("private void %s(%s.IReactPackageBuilder packageBuilder)", r.method, nativeNS)
		} else {
			g.writeLine("private void %s()", r.method)
		}
		g.openBlock()
		r.emit(g, asm)
		g.closeBlock("")
	}

	g.closeBlock("")
	g.closeBlock("")

	return g.buf.String(), nil
}

// Generate is a convenience wrapper around a fresh Generator
func Generate(asm *model.Assembly, ns string) (string, error) {
	return NewGenerator().Generate(asm, ns)
}

func (g *Generator) writeHeader() {
	g.writeLine("// ------------------------------------------------------------------------------")
	g.writeLine("// <auto-generated>")
	g.writeLine("//     This code was generated by modulegen.")
	g.writeLine("//")
	g.writeLine("//     Changes to this file may cause incorrect behavior and will be lost if")
	g.writeLine("//     the code is regenerated.")
	g.writeLine("// </auto-generated>")
	g.writeLine("// ------------------------------------------------------------------------------")
	g.writeLine("")
}

// reset clears the generator state
func (g *Generator) reset() {
	g.buf.Reset()
	g.indent = 0
}

// writeLine writes a formatted line with proper indentation
func (g *Generator) writeLine(format string, args ...interface{}) {
	if format == "" {
		g.buf.WriteString("\n")
		return
	}

	g.buf.WriteString(strings.Repeat(indentUnit, g.indent))

	if len(args) > 0 {
		g.buf.WriteString(fmt.Sprintf(format, args...))
	} else {
		g.buf.WriteString(format)
	}
	g.buf.WriteString("\n")
}

func (g *Generator) openBlock() {
	g.writeLine("{")
	g.indent++
}

// closeBlock ends a block; suffix closes an enclosing expression such as ");"
func (g *Generator) closeBlock(suffix string) {
	g.indent--
	g.writeLine("}" + suffix)
}

// typeName returns the fully qualified C# spelling of t
func typeName(t *symbols.Type) string {
	switch t.Kind {
	case symbols.KindVoid:
		return "void"
	case symbols.KindTypeParameter:
		return t.Name
	case symbols.KindArray:
		return typeName(t.ElementType) + "[]"
	}

	def := t.OriginalDefinition()
	var name string
	if def.ContainingType != nil {
		name = typeName(def.ContainingType) + "." + def.Name
	} else if def.Namespace != "" {
		name = "global::" + def.Namespace + "." + def.Name
	} else {
		name = "global::" + def.Name
	}

	if len(t.TypeArguments) > 0 {
		args := make([]string, len(t.TypeArguments))
		for i, arg := range t.TypeArguments {
			args[i] = typeName(arg)
		}
		name += "<" + strings.Join(args, ", ") + ">"
	}
	return name
}

// quote returns s as a C# string literal
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
