// Package symbols defines the compiled semantic model that the generator analyzes.
// It mirrors what a compiler front-end exposes after binding: namespaces, declared
// types with their members, attribute data, accessibility and source locations.
package symbols

import "fmt"

// TypeKind classifies a type symbol
type TypeKind int

const (
	KindClass TypeKind = iota
	KindStruct
	KindInterface
	KindEnum
	KindDelegate
	KindArray
	KindTypeParameter
	KindVoid
	// KindError marks a reference the binder could not resolve
	KindError
)

var typeKindNames = map[TypeKind]string{
	KindClass:         "class",
	KindStruct:        "struct",
	KindInterface:     "interface",
	KindEnum:          "enum",
	KindDelegate:      "delegate",
	KindArray:         "array",
	KindTypeParameter: "type_parameter",
	KindVoid:          "void",
	KindError:         "error",
}

func (k TypeKind) String() string {
	if name, ok := typeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TypeKind(%d)", int(k))
}

// ParseTypeKind maps a declared kind keyword to a TypeKind. Only kinds that can be
// declared in source are accepted.
func ParseTypeKind(s string) (TypeKind, bool) {
	switch s {
	case "", "class":
		return KindClass, true
	case "struct":
		return KindStruct, true
	case "interface":
		return KindInterface, true
	case "enum":
		return KindEnum, true
	case "delegate":
		return KindDelegate, true
	}
	return KindClass, false
}

// Accessibility is the declared accessibility of a type or member
type Accessibility int

const (
	AccessNotApplicable Accessibility = iota
	AccessPrivate
	AccessPrivateProtected
	AccessProtected
	AccessInternal
	AccessProtectedInternal
	AccessPublic
)

var accessibilityNames = map[Accessibility]string{
	AccessNotApplicable:     "",
	AccessPrivate:           "private",
	AccessPrivateProtected:  "private protected",
	AccessProtected:         "protected",
	AccessInternal:          "internal",
	AccessProtectedInternal: "protected internal",
	AccessPublic:            "public",
}

func (a Accessibility) String() string {
	if name, ok := accessibilityNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Accessibility(%d)", int(a))
}

// ParseAccessibility maps an accessibility keyword. An empty string means private,
// matching the default of member declarations without a modifier.
func ParseAccessibility(s string) (Accessibility, bool) {
	switch s {
	case "", "private":
		return AccessPrivate, true
	case "private protected", "private_protected":
		return AccessPrivateProtected, true
	case "protected":
		return AccessProtected, true
	case "internal":
		return AccessInternal, true
	case "protected internal", "protected_internal":
		return AccessProtectedInternal, true
	case "public":
		return AccessPublic, true
	}
	return AccessPrivate, false
}

// IsPublicOrInternal reports whether code generated into the same assembly can
// reach a symbol with this accessibility.
func (a Accessibility) IsPublicOrInternal() bool {
	return a == AccessPublic || a == AccessInternal || a == AccessProtectedInternal
}

// RefKind describes how an argument is passed to a parameter
type RefKind int

const (
	RefNone RefKind = iota
	RefRef
	RefOut
	RefIn
)

// ParseRefKind maps a parameter modifier keyword
func ParseRefKind(s string) (RefKind, bool) {
	switch s {
	case "", "none":
		return RefNone, true
	case "ref":
		return RefRef, true
	case "out":
		return RefOut, true
	case "in":
		return RefIn, true
	}
	return RefNone, false
}

func (r RefKind) String() string {
	switch r {
	case RefRef:
		return "ref"
	case RefOut:
		return "out"
	case RefIn:
		return "in"
	default:
		return ""
	}
}

// Location is a position in a source file (1-indexed)
type Location struct {
	File   string `json:"file,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func (l Location) String() string {
	file := l.File
	if file == "" {
		file = "<source>"
	}
	return fmt.Sprintf("%s:%d:%d", file, l.Line, l.Column)
}
