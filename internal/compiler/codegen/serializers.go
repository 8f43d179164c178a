package codegen

import (
	"github.com/conduit-lang/modulegen/internal/compiler/model"
	"github.com/conduit-lang/modulegen/internal/compiler/symbols"
)

// serializedMember is a field or property copied to or from a script object
type serializedMember struct {
	name     string
	typ      *symbols.Type
	readable bool
	writable bool
}

func (g *Generator) generateSerializers(asm *model.Assembly) {
	for i, id := range asm.SerializableIDs() {
		if i > 0 {
			g.writeLine("")
		}
		st := asm.SerializableTypes[id]
		switch st.Kind {
		case model.SerializableEnum:
			g.generateEnumSerializer(st.Type)
		case model.SerializableInterface:
			g.generateWriter(st.Type, true)
		case model.SerializableClass:
			if st.Type.HasAccessibleDefaultConstructor() {
				g.generateReader(st.Type)
			}
			g.generateWriter(st.Type, true)
		case model.SerializableStruct:
			g.generateReader(st.Type)
			g.generateWriter(st.Type, false)
		}
	}
}

// Enums cross the boundary as their integer value
func (g *Generator) generateEnumSerializer(t *symbols.Type) {
	name := typeName(t)
	g.writeLine("%s.JSValueReaderCodeGen<%s>.ReadValue = (%s.IJSValueReader reader, out %s value) => value = (%s)reader.GetInt64();",
		managedNS, name, nativeNS, name, name)
	g.writeLine("%s.JSValueWriterCodeGen<%s>.WriteValue = (%s.IJSValueWriter writer, %s value) => writer.WriteInt64((long)value);",
		managedNS, name, nativeNS, name)
}

func (g *Generator) generateReader(t *symbols.Type) {
	name := typeName(t)
	g.writeLine("%s.JSValueReaderCodeGen<%s>.ReadValue = (%s.IJSValueReader reader, out %s value) =>", managedNS, name, nativeNS, name)
	g.openBlock()
	g.writeLine("value = new %s();", name)
	g.writeLine("while (reader.GetNextObjectProperty(out string propertyName))")
	g.openBlock()
	g.writeLine("switch (propertyName)")
	g.openBlock()
	for _, m := range serializedMembers(t) {
		if m.writable {
			g.writeLine("case %s: value.%s = %s.JSValueReader.ReadValue<%s>(reader); break;",
				quote(m.name), m.name, managedNS, typeName(m.typ))
		}
	}
	g.writeLine("default: %s.JSValueReader.ReadValue<%s.JSValue>(reader); break;", managedNS, managedNS)
	g.closeBlock("")
	g.closeBlock("")
	g.closeBlock(";")
}

func (g *Generator) generateWriter(t *symbols.Type, nullable bool) {
	name := typeName(t)
	g.writeLine("%s.JSValueWriterCodeGen<%s>.WriteValue = (%s.IJSValueWriter writer, %s value) =>", managedNS, name, nativeNS, name)
	g.openBlock()
	if nullable {
		g.writeLine("if (value == null) { writer.WriteNull(); return; }")
	}
	g.writeLine("writer.WriteObjectBegin();")
	for _, m := range serializedMembers(t) {
		if m.readable {
			g.writeLine("%s.JSValueWriter.WriteObjectProperty(writer, %s, value.%s);", managedNS, quote(m.name), m.name)
		}
	}
	g.writeLine("writer.WriteObjectEnd();")
	g.closeBlock(";")
}

// serializedMembers lists the public instance fields and properties of t in
// declaration order, typed for t's type arguments when t is a generic instance
func serializedMembers(t *symbols.Type) []serializedMember {
	var out []serializedMember
	for _, member := range t.OriginalDefinition().Members {
		decl := member.Decl()
		if decl.Static || decl.Accessibility != symbols.AccessPublic {
			continue
		}
		switch m := member.(type) {
		case *symbols.Field:
			out = append(out, serializedMember{
				name:     m.Name,
				typ:      t.Instantiate(m.Type),
				readable: true,
				writable: !m.ReadOnly && !m.Const,
			})
		case *symbols.Property:
			out = append(out, serializedMember{
				name:     m.Name,
				typ:      t.Instantiate(m.Type),
				readable: accessible(m.Getter),
				writable: accessible(m.Setter),
			})
		}
	}
	return out
}

func accessible(a *symbols.Accessor) bool {
	return a != nil && a.Accessibility.IsPublicOrInternal()
}
