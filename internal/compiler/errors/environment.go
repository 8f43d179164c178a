package errors

import (
	"fmt"

	"github.com/conduit-lang/modulegen/internal/compiler/symbols"
)

// Environment error codes (ENV001-099)
const (
	// ErrRequiredTypeNotFound indicates a library type the generator depends on is
	// missing from the references. It is fatal for the run.
	ErrRequiredTypeNotFound ErrorCode = "ENV001"
)

// NewRequiredTypeNotFound creates an ENV001 error
func NewRequiredTypeNotFound(typeName, assembly string) *CompilerError {
	return newError(
		ErrRequiredTypeNotFound,
		"required_type_not_found",
		CategoryEnvironment,
		SeverityError,
		fmt.Sprintf("Required type '%s' was not found in reference '%s'", typeName, assembly),
		symbols.Location{},
		typeName, assembly,
	).WithSuggestion(fmt.Sprintf("Pass a symbol snapshot of %s with --reference, or enable the built-in references", assembly))
}
