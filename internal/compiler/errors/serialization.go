package errors

import (
	"fmt"

	"github.com/conduit-lang/modulegen/internal/compiler/symbols"
)

// Serialization codes (SER300-399)
const (
	// ErrMissingDefaultConstructor indicates a serializable class the generated
	// reader cannot instantiate
	ErrMissingDefaultConstructor ErrorCode = "SER300"
)

// NewMissingDefaultConstructor creates a SER300 warning
func NewMissingDefaultConstructor(loc symbols.Location, typeName string) *CompilerError {
	return newError(
		ErrMissingDefaultConstructor,
		"missing_default_constructor",
		CategorySerialization,
		SeverityWarning,
		fmt.Sprintf("Type '%s' crosses the module boundary but has no public or internal parameterless constructor", typeName),
		loc,
		typeName,
	).WithSuggestion("Add a parameterless constructor so the generated reader can create instances")
}
