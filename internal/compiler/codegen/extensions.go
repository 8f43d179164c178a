package codegen

import "github.com/conduit-lang/modulegen/internal/compiler/model"

func (g *Generator) generateReaders(asm *model.Assembly) {
	for _, id := range asm.ReaderIDs() {
		fn := asm.Readers[id]
		g.writeLine("%s.JSValueReaderCodeGen<%s>.ReadValue = %s;", managedNS, typeName(fn.Type), methodGroup(fn))
	}
}

func (g *Generator) generateWriters(asm *model.Assembly) {
	for _, id := range asm.WriterIDs() {
		fn := asm.Writers[id]
		g.writeLine("%s.JSValueWriterCodeGen<%s>.WriteValue = %s;", managedNS, typeName(fn.Type), methodGroup(fn))
	}
}

// methodGroup names a static extension method through its declaring type
func methodGroup(fn *model.ExtensionFunction) string {
	return typeName(fn.Method.ContainingType) + "." + fn.Method.Name
}
