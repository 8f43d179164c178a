package symbols

import "strings"

// Namespace is a node of the namespace tree. Types and child namespaces keep
// declaration order.
type Namespace struct {
	Name       string
	Parent     *Namespace
	Namespaces []*Namespace
	Types      []*Type
	children   map[string]*Namespace
}

// FullName returns the dotted namespace name, empty for the global namespace
func (n *Namespace) FullName() string {
	if n.Parent == nil || n.Parent.Parent == nil {
		return n.Name
	}
	return n.Parent.FullName() + "." + n.Name
}

// child returns the named child namespace, creating it when missing
func (n *Namespace) child(name string) *Namespace {
	if n.children == nil {
		n.children = make(map[string]*Namespace)
	}
	if c, ok := n.children[name]; ok {
		return c
	}
	c := &Namespace{Name: name, Parent: n}
	n.children[name] = c
	n.Namespaces = append(n.Namespaces, c)
	return c
}

// Compilation is one bound snapshot of a program and its references. It is
// immutable once the binder returns it, apart from the constructed-type cache.
type Compilation struct {
	// AssemblyName is the assembly being analyzed; types declared by it are local
	AssemblyName string
	Global       *Namespace

	types       map[string]*Type
	constructed map[string]*Type
	incomplete  []*Type
	sealed      bool
	void        *Type
}

// NewCompilation creates an empty compilation for the named assembly
func NewCompilation(assemblyName string) *Compilation {
	return &Compilation{
		AssemblyName: assemblyName,
		Global:       &Namespace{},
		types:        make(map[string]*Type),
		constructed:  make(map[string]*Type),
		void:         &Type{Name: "void", Kind: KindVoid},
	}
}

// Void returns the void type
func (c *Compilation) Void() *Type {
	return c.void
}

// Lookup finds a declared type by full metadata name (Ns.Outer.List`1)
func (c *Compilation) Lookup(fullName string) *Type {
	return c.types[fullName]
}

// Declare registers a top-level or nested type. It returns false when a type with
// the same full name already exists.
func (c *Compilation) Declare(t *Type) bool {
	name := t.FullName()
	if _, exists := c.types[name]; exists {
		return false
	}
	c.types[name] = t
	if t.ContainingType != nil {
		t.ContainingType.NestedTypes = append(t.ContainingType.NestedTypes, t)
		return true
	}
	ns := c.Global
	if t.Namespace != "" {
		for _, part := range strings.Split(t.Namespace, ".") {
			ns = ns.child(part)
		}
	}
	ns.Types = append(ns.Types, t)
	return true
}

// IsLocal reports whether t is declared by the assembly being analyzed
func (c *Compilation) IsLocal(t *Type) bool {
	def := t.OriginalDefinition()
	return def.Assembly != "" && def.Assembly == c.AssemblyName
}

// ArrayOf returns the single-dimensional array type of elem
func (c *Compilation) ArrayOf(elem *Type) *Type {
	key := elem.ID() + "[]"
	if t, ok := c.constructed[key]; ok {
		return t
	}
	t := &Type{Name: elem.Name + "[]", Kind: KindArray, ElementType: elem}
	c.constructed[key] = t
	return t
}

// Construct instantiates generic definition def with args. Delegate instances get
// a substituted invocation signature; other instances share the definition's
// members unsubstituted. Before Seal the signature is filled in later, because the
// definition may not be bound yet.
func (c *Compilation) Construct(def *Type, args []*Type) *Type {
	t := &Type{
		Name:           def.Name,
		Namespace:      def.Namespace,
		Kind:           def.Kind,
		Accessibility:  def.Accessibility,
		Abstract:       def.Abstract,
		Static:         def.Static,
		Assembly:       def.Assembly,
		ContainingType: def.ContainingType,
		TypeArguments:  args,
		Definition:     def,
		Location:       def.Location,
	}
	key := t.ID()
	if existing, ok := c.constructed[key]; ok {
		return existing
	}
	c.constructed[key] = t

	if c.sealed {
		c.complete(t)
	} else {
		c.incomplete = append(c.incomplete, t)
	}
	return t
}

// Seal completes every constructed type created while binding. The binder calls
// it once all declarations are bound.
func (c *Compilation) Seal() {
	for i := 0; i < len(c.incomplete); i++ {
		c.complete(c.incomplete[i])
	}
	c.incomplete = nil
	c.sealed = true
}

func (c *Compilation) complete(t *Type) {
	def := t.Definition
	args := t.TypeArguments

	t.BaseType = c.substitute(def.BaseType, def.TypeParameters, args)
	for _, iface := range def.Interfaces {
		t.Interfaces = append(t.Interfaces, c.substitute(iface, def.TypeParameters, args))
	}
	if def.Invoke != nil {
		invoke := *def.Invoke
		invoke.ReturnType = c.substitute(def.Invoke.ReturnType, def.TypeParameters, args)
		invoke.Parameters = make([]*Parameter, len(def.Invoke.Parameters))
		for i, p := range def.Invoke.Parameters {
			param := *p
			param.Type = c.substitute(p.Type, def.TypeParameters, args)
			invoke.Parameters[i] = &param
		}
		invoke.ContainingType = t
		t.Invoke = &invoke
	}
}

func (c *Compilation) substitute(t *Type, params, args []*Type) *Type {
	if t == nil {
		return nil
	}
	switch {
	case t.Kind == KindTypeParameter:
		for i, p := range params {
			if p == t && i < len(args) {
				return args[i]
			}
		}
		return t
	case t.Kind == KindArray:
		return c.ArrayOf(c.substitute(t.ElementType, params, args))
	case len(t.TypeArguments) > 0:
		substituted := make([]*Type, len(t.TypeArguments))
		for i, arg := range t.TypeArguments {
			substituted[i] = c.substitute(arg, params, args)
		}
		return c.Construct(t.Definition, substituted)
	}
	return t
}
