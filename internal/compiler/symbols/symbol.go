package symbols

import (
	"fmt"
	"strings"
)

// Type is a declared, constructed, array, type-parameter or void type
type Type struct {
	// Name is the simple name without generic arity
	Name          string
	Namespace     string
	Kind          TypeKind
	Accessibility Accessibility
	Abstract      bool
	Static        bool
	// Assembly is the name of the assembly that declares the type (empty for
	// arrays, type parameters and void)
	Assembly       string
	ContainingType *Type
	BaseType       *Type
	Interfaces     []*Type
	TypeParameters []*Type
	// TypeArguments and Definition are set on constructed generic types
	TypeArguments []*Type
	Definition    *Type
	// ElementType is set on array types
	ElementType *Type
	// Ordinal is the position of a type parameter in its declaring list
	Ordinal     int
	Members     []Member
	NestedTypes []*Type
	Attributes  []*Attribute
	// Invoke is the invocation signature of a delegate type
	Invoke   *Method
	Location Location
}

// MetadataName returns the simple name including generic arity (List`1)
func (t *Type) MetadataName() string {
	if n := len(t.TypeParameters); n > 0 {
		return fmt.Sprintf("%s`%d", t.Name, n)
	}
	return t.Name
}

// FullName returns the fully qualified metadata name of a declared type.
// Nested types are separated from their container by a dot.
func (t *Type) FullName() string {
	def := t.OriginalDefinition()
	if def.ContainingType != nil {
		return def.ContainingType.FullName() + "." + def.MetadataName()
	}
	if def.Namespace == "" {
		return def.MetadataName()
	}
	return def.Namespace + "." + def.MetadataName()
}

// ID returns the canonical identity of the type. Two constructed instances of the
// same definition with the same arguments share an ID.
func (t *Type) ID() string {
	switch t.Kind {
	case KindVoid:
		return "void"
	case KindTypeParameter:
		return t.Name
	case KindArray:
		return t.ElementType.ID() + "[]"
	}
	if len(t.TypeArguments) > 0 {
		args := make([]string, len(t.TypeArguments))
		for i, arg := range t.TypeArguments {
			args[i] = arg.ID()
		}
		return t.qualifiedName() + "<" + strings.Join(args, ",") + ">"
	}
	if len(t.TypeParameters) > 0 {
		return t.FullName()
	}
	return t.qualifiedName()
}

func (t *Type) qualifiedName() string {
	def := t.OriginalDefinition()
	if def.ContainingType != nil {
		return def.ContainingType.qualifiedName() + "." + def.Name
	}
	if def.Namespace == "" {
		return def.Name
	}
	return def.Namespace + "." + def.Name
}

func (t *Type) String() string {
	return t.ID()
}

// OriginalDefinition returns the generic definition of a constructed type, or the
// type itself
func (t *Type) OriginalDefinition() *Type {
	if t.Definition != nil {
		return t.Definition
	}
	return t
}

// Instantiate replaces the type parameters of t's generic definition inside u
// with t's type arguments, giving the type of a member of t. The result is not
// interned, so compare it by ID.
func (t *Type) Instantiate(u *Type) *Type {
	if t.Definition == nil || u == nil {
		return u
	}
	return instantiate(u, t.Definition.TypeParameters, t.TypeArguments)
}

func instantiate(u *Type, params, args []*Type) *Type {
	switch {
	case u.Kind == KindTypeParameter:
		for i, p := range params {
			if p == u && i < len(args) {
				return args[i]
			}
		}
	case u.Kind == KindArray:
		if elem := instantiate(u.ElementType, params, args); elem != u.ElementType {
			return &Type{Name: elem.Name + "[]", Kind: KindArray, ElementType: elem}
		}
	case len(u.TypeArguments) > 0:
		substituted := make([]*Type, len(u.TypeArguments))
		changed := false
		for i, arg := range u.TypeArguments {
			substituted[i] = instantiate(arg, params, args)
			changed = changed || substituted[i] != arg
		}
		if changed {
			constructed := *u
			constructed.TypeArguments = substituted
			return &constructed
		}
	}
	return u
}

// IsVoid reports whether t is the void type
func (t *Type) IsVoid() bool {
	return t != nil && t.Kind == KindVoid
}

// IsDelegate reports whether t is a delegate type with an invocation signature
func (t *Type) IsDelegate() bool {
	return t != nil && t.Kind == KindDelegate && t.Invoke != nil
}

// IsReferenceType reports whether values of t are references
func (t *Type) IsReferenceType() bool {
	switch t.Kind {
	case KindClass, KindInterface, KindDelegate, KindArray:
		return true
	}
	return false
}

// Methods returns the ordinary methods declared on t
func (t *Type) Methods() []*Method {
	var methods []*Method
	for _, m := range t.OriginalDefinition().Members {
		if method, ok := m.(*Method); ok && method.MethodKind == MethodOrdinary {
			methods = append(methods, method)
		}
	}
	return methods
}

// Constructors returns the instance constructors declared on t
func (t *Type) Constructors() []*Method {
	var ctors []*Method
	for _, m := range t.OriginalDefinition().Members {
		if method, ok := m.(*Method); ok && method.MethodKind == MethodConstructor {
			ctors = append(ctors, method)
		}
	}
	return ctors
}

// HasAccessibleDefaultConstructor reports whether callers in the same assembly can
// construct t without arguments. A class that declares no constructor gets an
// implicit public one.
func (t *Type) HasAccessibleDefaultConstructor() bool {
	if t.Kind == KindStruct {
		return true
	}
	if t.Kind != KindClass || t.Abstract || t.Static {
		return false
	}
	ctors := t.Constructors()
	if len(ctors) == 0 {
		return true
	}
	for _, ctor := range ctors {
		if len(ctor.Parameters) == 0 && ctor.Accessibility.IsPublicOrInternal() {
			return true
		}
	}
	return false
}

// Implements reports whether t or any of its base types implements iface,
// directly or through an inherited interface
func (t *Type) Implements(iface *Type) bool {
	seen := make(map[*Type]bool)
	var visit func(*Type) bool
	visit = func(cur *Type) bool {
		if cur == nil || seen[cur] {
			return false
		}
		seen[cur] = true
		for _, i := range cur.Interfaces {
			if i == iface || i.OriginalDefinition() == iface || visit(i) {
				return true
			}
		}
		return visit(cur.BaseType)
	}
	return visit(t)
}

// InheritsFrom reports whether base appears in the base class chain of t
func (t *Type) InheritsFrom(base *Type) bool {
	if base == nil {
		return false
	}
	seen := make(map[*Type]bool)
	for cur := t.BaseType; cur != nil && !seen[cur]; cur = cur.BaseType {
		seen[cur] = true
		if cur == base || cur.OriginalDefinition() == base {
			return true
		}
	}
	return false
}

// Declaration holds the data shared by every member symbol
type Declaration struct {
	Name           string
	Accessibility  Accessibility
	Static         bool
	Attributes     []*Attribute
	Location       Location
	ContainingType *Type
}

// Decl returns the shared declaration data
func (d *Declaration) Decl() *Declaration {
	return d
}

// Member is a method, property or field symbol
type Member interface {
	Decl() *Declaration
}

// MethodKind distinguishes ordinary methods from special ones
type MethodKind int

const (
	MethodOrdinary MethodKind = iota
	MethodConstructor
	MethodDelegateInvoke
)

// Method is a method, constructor or delegate invocation symbol
type Method struct {
	Declaration
	MethodKind     MethodKind
	ReturnType     *Type
	Parameters     []*Parameter
	TypeParameters []*Type
	// IsExtension marks a static method whose first parameter is the receiver
	IsExtension bool
}

// ReturnsVoid reports whether the method has no return value
func (m *Method) ReturnsVoid() bool {
	return m.ReturnType == nil || m.ReturnType.IsVoid()
}

// Parameter is a method parameter
type Parameter struct {
	Name    string
	Type    *Type
	RefKind RefKind
	Ordinal int
}

// Accessor is a property get or set accessor
type Accessor struct {
	Accessibility Accessibility
}

// Property is a property symbol. Getter or Setter is nil when the accessor is not
// declared.
type Property struct {
	Declaration
	Type   *Type
	Getter *Accessor
	Setter *Accessor
}

// Field is a field symbol
type Field struct {
	Declaration
	Type     *Type
	ReadOnly bool
	Const    bool
}

// NamedArgument is a name/value pair set on an attribute application
type NamedArgument struct {
	Name  string
	Value any
}

// Attribute is an attribute application on a type or member
type Attribute struct {
	Class          *Type
	Arguments      []any
	NamedArguments []NamedArgument
	Location       Location
}

// StringArgument returns positional argument i when it is a non-empty string
func (a *Attribute) StringArgument(i int) (string, bool) {
	if i >= len(a.Arguments) {
		return "", false
	}
	s, ok := a.Arguments[i].(string)
	return s, ok && s != ""
}

// FindAttribute returns the first attribute of class on the list
func FindAttribute(attrs []*Attribute, class *Type) *Attribute {
	if class == nil {
		return nil
	}
	for _, attr := range attrs {
		if attr.Class == class {
			return attr
		}
	}
	return nil
}
