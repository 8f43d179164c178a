// Package errors provides structured diagnostics for the module generator.
// It defines error codes, categories and formatting for both human-readable
// terminal output and machine-parseable JSON for build tooling.
package errors

import (
	"encoding/json"

	"github.com/conduit-lang/modulegen/internal/compiler/symbols"
)

// ErrorCode represents a unique diagnostic code
type ErrorCode string

// ErrorCategory represents the category of a diagnostic
type ErrorCategory string

const (
	// CategoryEnvironment represents missing reference surface (ENV001-099)
	CategoryEnvironment ErrorCategory = "environment"
	// CategoryCompile represents front-end errors in the symbol snapshot (CMP100-199)
	CategoryCompile ErrorCategory = "compile"
	// CategoryModule represents malformed module declarations (MOD200-299)
	CategoryModule ErrorCategory = "module"
	// CategorySerialization represents serializer closure findings (SER300-399)
	CategorySerialization ErrorCategory = "serialization"
)

// ErrorSeverity indicates the severity level of a diagnostic
type ErrorSeverity string

const (
	// SeverityError indicates a diagnostic that invalidates the generated output
	SeverityError ErrorSeverity = "error"
	// SeverityWarning indicates a likely problem that does not block generation
	SeverityWarning ErrorSeverity = "warning"
	// SeverityInfo indicates an informational message
	SeverityInfo ErrorSeverity = "info"
)

// CompilerError is one diagnostic record
type CompilerError struct {
	// Code is the unique diagnostic code (e.g., "MOD205")
	Code ErrorCode `json:"code"`
	// Type is a machine-readable identifier of the descriptor
	Type string `json:"type"`
	// Category is the diagnostic category
	Category ErrorCategory `json:"category"`
	// Severity is the diagnostic severity level
	Severity ErrorSeverity `json:"severity"`
	// Message is the primary message
	Message string `json:"message"`
	// Location is the source location of the offending declaration
	Location symbols.Location `json:"location"`
	// Args are the message arguments, in descriptor order
	Args []string `json:"args,omitempty"`
	// Expected describes what was expected (optional)
	Expected string `json:"expected,omitempty"`
	// Actual describes what was actually found (optional)
	Actual string `json:"actual,omitempty"`
	// Suggestion provides a hint for fixing the problem (optional)
	Suggestion string `json:"suggestion,omitempty"`
}

// Error implements the error interface
func (e *CompilerError) Error() string {
	return FormatCompact(e)
}

// Format returns a human-readable message for terminal output
func (e *CompilerError) Format() string {
	return FormatError(e)
}

// ToJSON returns the diagnostic as a JSON string
func (e *CompilerError) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// WithExpected sets the expected value
func (e *CompilerError) WithExpected(expected string) *CompilerError {
	e.Expected = expected
	return e
}

// WithActual sets the actual value
func (e *CompilerError) WithActual(actual string) *CompilerError {
	e.Actual = actual
	return e
}

// WithSuggestion sets a suggestion for fixing the problem
func (e *CompilerError) WithSuggestion(suggestion string) *CompilerError {
	e.Suggestion = suggestion
	return e
}

// ErrorList is an ordered collection of diagnostics. The analysis passes share one
// list by pointer and append to it in the order problems are found.
type ErrorList []*CompilerError

// Error implements the error interface
func (el ErrorList) Error() string {
	if len(el) == 0 {
		return "no errors"
	}
	return FormatErrorList(el)
}

// Add appends a diagnostic
func (el *ErrorList) Add(err *CompilerError) {
	*el = append(*el, err)
}

// Extend appends every diagnostic of other
func (el *ErrorList) Extend(other ErrorList) {
	*el = append(*el, other...)
}

// HasErrors returns true if the list contains any errors (excludes warnings/info)
func (el ErrorList) HasErrors() bool {
	for _, err := range el {
		if err.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if the list contains any warnings
func (el ErrorList) HasWarnings() bool {
	for _, err := range el {
		if err.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// ByCode returns the diagnostics with the given code
func (el ErrorList) ByCode(code ErrorCode) ErrorList {
	var out ErrorList
	for _, err := range el {
		if err.Code == code {
			out = append(out, err)
		}
	}
	return out
}

// ToJSON returns all diagnostics as a JSON array
func (el ErrorList) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(el, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// ErrorCount returns the number of diagnostics by severity
func (el ErrorList) ErrorCount() (errors, warnings, info int) {
	for _, err := range el {
		switch err.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		case SeverityInfo:
			info++
		}
	}
	return
}

// newError creates a new CompilerError with the given parameters
func newError(
	code ErrorCode,
	typ string,
	category ErrorCategory,
	severity ErrorSeverity,
	message string,
	loc symbols.Location,
	args ...string,
) *CompilerError {
	return &CompilerError{
		Code:     code,
		Type:     typ,
		Category: category,
		Severity: severity,
		Message:  message,
		Location: loc,
		Args:     args,
	}
}
