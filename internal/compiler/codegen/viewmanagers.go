package codegen

import "github.com/conduit-lang/modulegen/internal/compiler/model"

func (g *Generator) generateViewManagers(asm *model.Assembly) {
	for _, vm := range asm.ViewManagers {
		name := typeName(vm)
		g.writeLine("packageBuilder.AddViewManager(%s, () => new %s());", quote(vm.FullName()), name)
	}
}
