package errors

import (
	"fmt"

	"github.com/conduit-lang/modulegen/internal/compiler/symbols"
)

// Compile error codes (CMP100-199)
const (
	// ErrInvalidSnapshot indicates a symbol snapshot file could not be decoded
	ErrInvalidSnapshot ErrorCode = "CMP100"
	// ErrDuplicateType indicates two declarations share a full type name
	ErrDuplicateType ErrorCode = "CMP101"
	// ErrUnresolvedType indicates a type reference names no known type
	ErrUnresolvedType ErrorCode = "CMP102"
	// ErrMalformedTypeReference indicates a type reference string cannot be parsed
	ErrMalformedTypeReference ErrorCode = "CMP103"
	// ErrAssemblyMismatch indicates source snapshots belong to different assemblies
	ErrAssemblyMismatch ErrorCode = "CMP104"
	// ErrInvalidDeclaration indicates an unknown kind, accessibility or modifier keyword
	ErrInvalidDeclaration ErrorCode = "CMP105"
	// ErrNotAnAttribute indicates an attribute name resolves only to non-attribute types
	ErrNotAnAttribute ErrorCode = "CMP106"
	// ErrAmbiguousAttribute indicates both Name and NameAttribute are attribute classes
	ErrAmbiguousAttribute ErrorCode = "CMP107"
)

// NewInvalidSnapshot creates a CMP100 error
func NewInvalidSnapshot(path string, cause error) *CompilerError {
	return newError(
		ErrInvalidSnapshot,
		"invalid_snapshot",
		CategoryCompile,
		SeverityError,
		fmt.Sprintf("Cannot decode symbol snapshot: %v", cause),
		symbols.Location{File: path},
		path,
	)
}

// NewDuplicateType creates a CMP101 error
func NewDuplicateType(loc symbols.Location, fullName string) *CompilerError {
	return newError(
		ErrDuplicateType,
		"duplicate_type",
		CategoryCompile,
		SeverityError,
		fmt.Sprintf("Type '%s' is declared more than once", fullName),
		loc,
		fullName,
	)
}

// NewUnresolvedType creates a CMP102 error
func NewUnresolvedType(loc symbols.Location, ref string) *CompilerError {
	return newError(
		ErrUnresolvedType,
		"unresolved_type",
		CategoryCompile,
		SeverityError,
		fmt.Sprintf("The type '%s' could not be found", ref),
		loc,
		ref,
	).WithSuggestion("Check the spelling or add the declaring reference snapshot")
}

// NewMalformedTypeReference creates a CMP103 error
func NewMalformedTypeReference(loc symbols.Location, ref string, reason string) *CompilerError {
	return newError(
		ErrMalformedTypeReference,
		"malformed_type_reference",
		CategoryCompile,
		SeverityError,
		fmt.Sprintf("Malformed type reference '%s': %s", ref, reason),
		loc,
		ref, reason,
	)
}

// NewAssemblyMismatch creates a CMP104 error
func NewAssemblyMismatch(loc symbols.Location, expected, actual string) *CompilerError {
	return newError(
		ErrAssemblyMismatch,
		"assembly_mismatch",
		CategoryCompile,
		SeverityError,
		fmt.Sprintf("Source snapshot belongs to assembly '%s', expected '%s'", actual, expected),
		loc,
		expected, actual,
	).WithExpected(expected).WithActual(actual)
}

// NewInvalidDeclaration creates a CMP105 error
func NewInvalidDeclaration(loc symbols.Location, what, value string) *CompilerError {
	return newError(
		ErrInvalidDeclaration,
		"invalid_declaration",
		CategoryCompile,
		SeverityError,
		fmt.Sprintf("Unknown %s '%s'", what, value),
		loc,
		what, value,
	)
}

// NewNotAnAttribute creates a CMP106 error
func NewNotAnAttribute(loc symbols.Location, fullName string) *CompilerError {
	return newError(
		ErrNotAnAttribute,
		"not_an_attribute",
		CategoryCompile,
		SeverityError,
		fmt.Sprintf("'%s' is not an attribute class", fullName),
		loc,
		fullName,
	).WithSuggestion("Attribute classes must derive from System.Attribute")
}

// NewAmbiguousAttribute creates a CMP107 error
func NewAmbiguousAttribute(loc symbols.Location, name, first, second string) *CompilerError {
	return newError(
		ErrAmbiguousAttribute,
		"ambiguous_attribute",
		CategoryCompile,
		SeverityError,
		fmt.Sprintf("'%s' is ambiguous between '%s' and '%s'", name, first, second),
		loc,
		name, first, second,
	).WithSuggestion("Use the full attribute class name")
}
