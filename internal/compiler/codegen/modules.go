package codegen

import (
	"fmt"
	"strings"

	"github.com/conduit-lang/modulegen/internal/compiler/model"
	"github.com/conduit-lang/modulegen/internal/compiler/symbols"
)

const promiseDefinition = "Microsoft.ReactNative.Managed.ReactPromise`1"

func (g *Generator) generateModules(asm *model.Assembly) {
	for i, mod := range asm.Modules {
		if i > 0 {
			g.writeLine("")
		}
		g.generateModule(mod)
	}
}

func (g *Generator) generateModule(mod *model.Module) {
	g.writeLine("packageBuilder.AddModule(%s, (%s.IReactModuleBuilder moduleBuilder) =>", quote(mod.Name), nativeNS)
	g.openBlock()
	g.writeLine("var module = new %s();", typeName(mod.Type))

	for _, initializer := range mod.Initializers {
		g.writeLine("moduleBuilder.AddInitializer((%s.IReactContext reactContext) => %s(new %s.ReactContext(reactContext)));",
			nativeNS, memberAccess(&initializer.Symbol.Declaration), managedNS)
	}
	if len(mod.Events) > 0 || len(mod.Functions) > 0 {
		g.generateCallbacks(mod)
	}
	if len(mod.Constants) > 0 {
		g.generateConstants(mod)
	}
	for _, provider := range mod.ConstantProviders {
		g.writeLine("moduleBuilder.AddConstantProvider((%s.IJSValueWriter writer) => %s(new %s.ReactConstantProvider(writer)));",
			nativeNS, memberAccess(&provider.Symbol.Declaration), managedNS)
	}
	for _, m := range mod.Methods {
		if m.IsSync {
			g.generateSyncMethod(m)
		} else {
			g.generateMethod(m)
		}
	}

	g.writeLine("return module;")
	g.closeBlock(");")
}

// generateCallbacks assigns every event and function delegate once the module
// has its context
func (g *Generator) generateCallbacks(mod *model.Module) {
	g.writeLine("moduleBuilder.AddInitializer((%s.IReactContext reactContext) =>", nativeNS)
	g.openBlock()
	for _, ev := range mod.Events {
		g.writeCallback(ev.Callback, "EmitJSEvent")
	}
	for _, fn := range mod.Functions {
		g.writeCallback(fn.Callback, "CallJSFunction")
	}
	g.closeBlock(");")
}

func (g *Generator) writeCallback(cb model.Callback, call string) {
	args := []string{quote(cb.ContextName), quote(cb.Name)}
	args = append(args, argNames(cb.Parameters, "arg")...)
	g.writeLine("%s = %s => new %s.ReactContext(reactContext).%s(%s);",
		memberAccess(cb.Member.Decl()), lambdaParams(cb.Parameters, "arg"), managedNS, call, strings.Join(args, ", "))
}

func (g *Generator) generateConstants(mod *model.Module) {
	g.writeLine("moduleBuilder.AddConstantProvider((%s.IJSValueWriter writer) =>", nativeNS)
	g.openBlock()
	for _, c := range mod.Constants {
		g.writeLine("%s.JSValueWriter.WriteObjectProperty(writer, %s, %s);", managedNS, quote(c.Name), memberAccess(c.Member.Decl()))
	}
	g.closeBlock(");")
}

func (g *Generator) generateMethod(m *model.Method) {
	params := m.Symbol.Parameters
	n := len(params)
	inputs := params
	var trailing []string
	finish := ""

	switch m.ReturnStyle {
	case model.ReturnPromise:
		if n > 0 && params[n-1].Type.OriginalDefinition().FullName() == promiseDefinition {
			inputs = params[:n-1]
			trailing = []string{fmt.Sprintf("new %s(outputWriter, resolve, reject)", typeName(params[n-1].Type))}
		} else {
			finish = "task"
		}
	case model.ReturnTwoCallbacks:
		inputs = params[:n-2]
		trailing = []string{resultLambda(params[n-2].Type, "resolve"), resultLambda(params[n-1].Type, "reject")}
	case model.ReturnCallback:
		if n > 0 && params[n-1].Type.IsDelegate() {
			inputs = params[:n-1]
			trailing = []string{resultLambda(params[n-1].Type, "resolve")}
		} else {
			finish = "value"
		}
	}

	g.writeLine("moduleBuilder.AddMethod(%s, %s.MethodReturnType.%s, (%s.IJSValueReader inputReader, %s.IJSValueWriter outputWriter, %s.MethodResultCallback resolve, %s.MethodResultCallback reject) =>",
		quote(m.Name), nativeNS, m.ReturnStyle, nativeNS, nativeNS, nativeNS, nativeNS)
	g.openBlock()
	g.writeReadArgs(inputs)

	call := fmt.Sprintf("%s(%s)", memberAccess(&m.Symbol.Declaration), strings.Join(append(argNames(inputs, "arg"), trailing...), ", "))
	switch finish {
	case "task":
		g.writeLine("%s.ReactTaskExtensions.ContinueWith(%s, outputWriter, resolve, reject);", managedNS, call)
	case "value":
		g.writeLine("%s.JSValueWriter.WriteArgs(outputWriter, %s);", managedNS, call)
		g.writeLine("resolve(outputWriter);")
	default:
		g.writeLine("%s;", call)
	}
	g.closeBlock(");")
}

func (g *Generator) generateSyncMethod(m *model.Method) {
	params := m.Symbol.Parameters

	g.writeLine("moduleBuilder.AddSyncMethod(%s, (%s.IJSValueReader inputReader, %s.IJSValueWriter outputWriter) =>",
		quote(m.Name), nativeNS, nativeNS)
	g.openBlock()
	g.writeReadArgs(params)

	call := fmt.Sprintf("%s(%s)", memberAccess(&m.Symbol.Declaration), strings.Join(argNames(params, "arg"), ", "))
	if m.Symbol.ReturnsVoid() {
		g.writeLine("%s;", call)
	} else {
		g.writeLine("%s.JSValueWriter.WriteValue(outputWriter, %s);", managedNS, call)
	}
	g.closeBlock(");")
}

func (g *Generator) writeReadArgs(params []*symbols.Parameter) {
	if len(params) == 0 {
		return
	}
	outs := make([]string, len(params))
	for i, p := range params {
		outs[i] = fmt.Sprintf("out %s arg%d", typeName(p.Type), i)
	}
	g.writeLine("%s.JSValueReader.ReadArgs(inputReader, %s);", managedNS, strings.Join(outs, ", "))
}

// resultLambda adapts a callback parameter to a method result callback
func resultLambda(delegate *symbols.Type, callback string) string {
	params := delegate.Invoke.Parameters
	args := append([]string{"outputWriter"}, argNames(params, "result")...)
	return fmt.Sprintf("%s => { %s.JSValueWriter.WriteArgs(%s); %s(outputWriter); }",
		lambdaParams(params, "result"), managedNS, strings.Join(args, ", "), callback)
}

// memberAccess addresses a member through the module instance, or through its
// type when static
func memberAccess(decl *symbols.Declaration) string {
	if decl.Static {
		return typeName(decl.ContainingType) + "." + decl.Name
	}
	return "module." + decl.Name
}

func argNames(params []*symbols.Parameter, prefix string) []string {
	names := make([]string, len(params))
	for i := range params {
		names[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return names
}

func lambdaParams(params []*symbols.Parameter, prefix string) string {
	typed := make([]string, len(params))
	for i, p := range params {
		typed[i] = fmt.Sprintf("%s %s%d", typeName(p.Type), prefix, i)
	}
	return "(" + strings.Join(typed, ", ") + ")"
}
