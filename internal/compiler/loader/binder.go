package loader

import (
	"strconv"
	"strings"

	"github.com/conduit-lang/modulegen/internal/compiler/errors"
	"github.com/conduit-lang/modulegen/internal/compiler/snapshot"
	"github.com/conduit-lang/modulegen/internal/compiler/symbols"
)

// keywordAliases maps C# keyword type names to their System types
var keywordAliases = map[string]string{
	"bool":    "System.Boolean",
	"byte":    "System.Byte",
	"sbyte":   "System.SByte",
	"char":    "System.Char",
	"short":   "System.Int16",
	"ushort":  "System.UInt16",
	"int":     "System.Int32",
	"uint":    "System.UInt32",
	"long":    "System.Int64",
	"ulong":   "System.UInt64",
	"float":   "System.Single",
	"double":  "System.Double",
	"decimal": "System.Decimal",
	"string":  "System.String",
	"object":  "System.Object",
}

type pendingType struct {
	decl *snapshot.TypeDecl
	typ  *symbols.Type
	file *snapshot.File
}

// scope is the type-parameter and lookup context of a declaration
type scope struct {
	params []*symbols.Type
	owner  *symbols.Type
}

func (s scope) with(params []*symbols.Type) scope {
	merged := make([]*symbols.Type, 0, len(params)+len(s.params))
	merged = append(merged, params...)
	merged = append(merged, s.params...)
	return scope{params: merged, owner: s.owner}
}

func (s scope) typeParameter(name string) *symbols.Type {
	for _, p := range s.params {
		if p.Name == name {
			return p
		}
	}
	return nil
}

type binder struct {
	comp    *symbols.Compilation
	diags   *errors.ErrorList
	pending []pendingType
}

// Bind builds a compilation from decoded snapshots. Sources declare the local
// assembly; references and the core library provide everything else. Binding runs
// in two passes so declarations may reference types from any file.
func Bind(sources, references []*snapshot.File) (*symbols.Compilation, errors.ErrorList) {
	var diags errors.ErrorList

	assembly := ""
	if len(sources) > 0 {
		assembly = sources[0].Assembly
	}
	for _, f := range sources[min(1, len(sources)):] {
		if f.Assembly != assembly {
			diags.Add(errors.NewAssemblyMismatch(symbols.Location{File: f.SourcePath()}, assembly, f.Assembly))
		}
	}

	b := &binder{
		comp:  symbols.NewCompilation(assembly),
		diags: &diags,
	}

	files := make([]*snapshot.File, 0, len(sources)+len(references)+1)
	files = append(files, coreLibrary())
	files = append(files, sources...)
	files = append(files, references...)

	for _, f := range files {
		for i := range f.Types {
			b.declare(f, &f.Types[i], nil)
		}
	}
	// Attribute lookup needs base classes, so every header binds first
	for _, p := range b.pending {
		b.bindHeader(p)
	}
	for _, p := range b.pending {
		b.bindType(p)
	}
	b.comp.Seal()

	return b.comp, diags
}

func location(f *snapshot.File, line, column int) symbols.Location {
	return symbols.Location{File: f.SourcePath(), Line: line, Column: column}
}

func (b *binder) declare(f *snapshot.File, decl *snapshot.TypeDecl, container *symbols.Type) {
	loc := location(f, decl.Line, decl.Column)

	kind, ok := symbols.ParseTypeKind(decl.Kind)
	if !ok {
		b.diags.Add(errors.NewInvalidDeclaration(loc, "type kind", decl.Kind))
	}
	access := symbols.AccessInternal
	if decl.Accessibility != "" {
		if access, ok = symbols.ParseAccessibility(decl.Accessibility); !ok {
			b.diags.Add(errors.NewInvalidDeclaration(loc, "accessibility", decl.Accessibility))
		}
	}

	t := &symbols.Type{
		Name:           decl.Name,
		Namespace:      decl.Namespace,
		Kind:           kind,
		Accessibility:  access,
		Abstract:       decl.Abstract,
		Static:         decl.Static,
		Assembly:       f.Assembly,
		ContainingType: container,
		Location:       loc,
	}
	if container != nil {
		t.Namespace = container.Namespace
	}
	t.TypeParameters = typeParameters(decl.TypeParameters)

	if !b.comp.Declare(t) {
		b.diags.Add(errors.NewDuplicateType(loc, t.FullName()))
		return
	}
	b.pending = append(b.pending, pendingType{decl: decl, typ: t, file: f})

	for i := range decl.Nested {
		b.declare(f, &decl.Nested[i], t)
	}
}

func typeParameters(names []string) []*symbols.Type {
	params := make([]*symbols.Type, len(names))
	for i, name := range names {
		params[i] = &symbols.Type{Name: name, Kind: symbols.KindTypeParameter, Ordinal: i}
	}
	return params
}

func (b *binder) typeScope(t *symbols.Type) scope {
	var params []*symbols.Type
	for cur := t; cur != nil; cur = cur.ContainingType {
		params = append(params, cur.TypeParameters...)
	}
	return scope{params: params, owner: t}
}

func (b *binder) bindHeader(p pendingType) {
	t, decl := p.typ, p.decl
	sc := b.typeScope(t)

	if decl.Base != "" {
		t.BaseType = b.resolve(decl.Base, sc, t.Location)
	}
	for _, iface := range decl.Interfaces {
		t.Interfaces = append(t.Interfaces, b.resolve(iface, sc, t.Location))
	}
}

func (b *binder) bindType(p pendingType) {
	t, decl, f := p.typ, p.decl, p.file
	sc := b.typeScope(t)

	t.Attributes = b.bindAttributes(f, decl.Attributes, sc)

	for i := range decl.Members {
		if m := b.bindMember(f, t, &decl.Members[i], sc); m != nil {
			t.Members = append(t.Members, m)
		}
	}

	if t.Kind == symbols.KindDelegate {
		invoke := decl.Invoke
		if invoke == nil {
			invoke = &snapshot.MemberDecl{Kind: "method", Name: "Invoke", Accessibility: "public"}
		}
		t.Invoke = b.bindMethod(f, t, invoke, sc, symbols.MethodDelegateInvoke)
	}
}

func (b *binder) bindMember(f *snapshot.File, owner *symbols.Type, decl *snapshot.MemberDecl, sc scope) symbols.Member {
	switch decl.Kind {
	case "method":
		return b.bindMethod(f, owner, decl, sc, symbols.MethodOrdinary)
	case "constructor":
		return b.bindMethod(f, owner, decl, sc, symbols.MethodConstructor)
	case "property":
		prop := &symbols.Property{Declaration: b.declaration(f, owner, decl, sc)}
		prop.Type = b.memberType(decl, owner, sc, prop.Location)
		prop.Getter = b.accessor(decl.Getter, prop.Location)
		prop.Setter = b.accessor(decl.Setter, prop.Location)
		return prop
	case "field":
		field := &symbols.Field{
			Declaration: b.declaration(f, owner, decl, sc),
			ReadOnly:    decl.ReadOnly,
			Const:       decl.Const,
		}
		field.Type = b.memberType(decl, owner, sc, field.Location)
		return field
	default:
		b.diags.Add(errors.NewInvalidDeclaration(location(f, decl.Line, decl.Column), "member kind", decl.Kind))
		return nil
	}
}

// memberType resolves a property or field type. Enum members may omit the type.
func (b *binder) memberType(decl *snapshot.MemberDecl, owner *symbols.Type, sc scope, loc symbols.Location) *symbols.Type {
	if decl.Type == "" {
		if owner.Kind == symbols.KindEnum {
			return owner
		}
		b.diags.Add(errors.NewMalformedTypeReference(loc, "", "member has no type"))
		return errorType("")
	}
	return b.resolve(decl.Type, sc, loc)
}

func (b *binder) declaration(f *snapshot.File, owner *symbols.Type, decl *snapshot.MemberDecl, sc scope) symbols.Declaration {
	loc := location(f, decl.Line, decl.Column)
	access, ok := symbols.ParseAccessibility(decl.Accessibility)
	if !ok {
		b.diags.Add(errors.NewInvalidDeclaration(loc, "accessibility", decl.Accessibility))
	}
	if decl.Accessibility == "" && (owner.Kind == symbols.KindEnum || owner.Kind == symbols.KindInterface) {
		access = symbols.AccessPublic
	}
	return symbols.Declaration{
		Name:           decl.Name,
		Accessibility:  access,
		Static:         decl.Static || decl.Const,
		Attributes:     b.bindAttributes(f, decl.Attributes, sc),
		Location:       loc,
		ContainingType: owner,
	}
}

func (b *binder) accessor(access string, loc symbols.Location) *symbols.Accessor {
	if access == "" {
		return nil
	}
	a, ok := symbols.ParseAccessibility(access)
	if !ok {
		b.diags.Add(errors.NewInvalidDeclaration(loc, "accessibility", access))
	}
	return &symbols.Accessor{Accessibility: a}
}

func (b *binder) bindMethod(f *snapshot.File, owner *symbols.Type, decl *snapshot.MemberDecl, sc scope, kind symbols.MethodKind) *symbols.Method {
	m := &symbols.Method{
		MethodKind:     kind,
		TypeParameters: typeParameters(decl.TypeParameters),
		IsExtension:    decl.Extension,
	}
	inner := sc.with(m.TypeParameters)
	m.Declaration = b.declaration(f, owner, decl, inner)
	if kind == symbols.MethodConstructor && m.Name == "" {
		m.Name = ".ctor"
	}

	if decl.Returns == "" || kind == symbols.MethodConstructor {
		m.ReturnType = b.comp.Void()
	} else {
		m.ReturnType = b.resolve(decl.Returns, inner, m.Location)
	}

	for i, pd := range decl.Parameters {
		refKind, ok := symbols.ParseRefKind(pd.RefKind)
		if !ok {
			b.diags.Add(errors.NewInvalidDeclaration(m.Location, "parameter modifier", pd.RefKind))
		}
		m.Parameters = append(m.Parameters, &symbols.Parameter{
			Name:    pd.Name,
			Type:    b.resolve(pd.Type, inner, m.Location),
			RefKind: refKind,
			Ordinal: i,
		})
	}
	return m
}

func (b *binder) bindAttributes(f *snapshot.File, decls []snapshot.AttributeDecl, sc scope) []*symbols.Attribute {
	var attrs []*symbols.Attribute
	for _, decl := range decls {
		loc := location(f, decl.Line, decl.Column)
		class := b.attributeClass(decl.Type, sc, loc)
		if class == nil {
			continue
		}
		attr := &symbols.Attribute{
			Class:     class,
			Arguments: decl.Args,
			Location:  loc,
		}
		for _, named := range decl.Named {
			attr.NamedArguments = append(attr.NamedArguments, symbols.NamedArgument{Name: named.Name, Value: named.Value})
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

// attributeClass resolves an attribute name the way C# does: both the name as
// written and the name with the Attribute suffix are candidates, and only classes
// deriving from System.Attribute qualify.
func (b *binder) attributeClass(name string, sc scope, loc symbols.Location) *symbols.Type {
	attributeBase := b.comp.Lookup("System.Attribute")

	var found, matches []*symbols.Type
	for _, candidate := range []string{name, name + "Attribute"} {
		t := b.lookupName(candidate, sc)
		if t == nil {
			continue
		}
		found = append(found, t)
		if t.Kind == symbols.KindClass && t.InheritsFrom(attributeBase) {
			matches = append(matches, t)
		}
	}

	switch {
	case len(matches) == 1:
		return matches[0]
	case len(matches) == 2:
		b.diags.Add(errors.NewAmbiguousAttribute(loc, name, matches[0].FullName(), matches[1].FullName()))
	case len(found) > 0:
		b.diags.Add(errors.NewNotAnAttribute(loc, found[0].FullName()))
	default:
		b.diags.Add(errors.NewUnresolvedType(loc, name))
	}
	return nil
}

// resolve binds a type reference string, reporting compile errors for references
// that cannot be parsed or found
func (b *binder) resolve(s string, sc scope, loc symbols.Location) *symbols.Type {
	ref, err := snapshot.ParseTypeRef(s)
	if err != nil {
		b.diags.Add(errors.NewMalformedTypeReference(loc, s, err.Error()))
		return errorType(s)
	}
	return b.resolveRef(ref, sc, loc)
}

func (b *binder) resolveRef(ref snapshot.TypeRef, sc scope, loc symbols.Location) *symbols.Type {
	var t *symbols.Type
	switch {
	case len(ref.Args) > 0:
		def := b.lookupName(ref.Name+"`"+strconv.Itoa(len(ref.Args)), sc)
		if def == nil {
			b.diags.Add(errors.NewUnresolvedType(loc, ref.String()))
			return errorType(ref.String())
		}
		args := make([]*symbols.Type, len(ref.Args))
		for i, arg := range ref.Args {
			args[i] = b.resolveRef(arg, sc, loc)
		}
		t = b.comp.Construct(def, args)
	case ref.Name == "void":
		t = b.comp.Void()
	default:
		if alias, ok := keywordAliases[ref.Name]; ok {
			t = b.comp.Lookup(alias)
		} else if tp := sc.typeParameter(ref.Name); tp != nil {
			t = tp
		} else {
			t = b.lookupName(ref.Name, sc)
		}
		if t == nil {
			b.diags.Add(errors.NewUnresolvedType(loc, ref.String()))
			return errorType(ref.String())
		}
	}

	for i := 0; i < ref.ArrayRank; i++ {
		t = b.comp.ArrayOf(t)
	}
	return t
}

// lookupName finds a declared type by qualified name, then relative to the
// enclosing types and namespaces of the scope owner
func (b *binder) lookupName(name string, sc scope) *symbols.Type {
	if t := b.comp.Lookup(name); t != nil {
		return t
	}
	if sc.owner == nil {
		return nil
	}
	for cur := sc.owner; cur != nil; cur = cur.ContainingType {
		if t := b.comp.Lookup(cur.FullName() + "." + name); t != nil {
			return t
		}
	}
	ns := sc.owner.Namespace
	for ns != "" {
		if t := b.comp.Lookup(ns + "." + name); t != nil {
			return t
		}
		i := strings.LastIndex(ns, ".")
		if i < 0 {
			break
		}
		ns = ns[:i]
	}
	return nil
}

func errorType(name string) *symbols.Type {
	return &symbols.Type{Name: name, Kind: symbols.KindError}
}
