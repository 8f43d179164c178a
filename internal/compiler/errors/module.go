package errors

import (
	"fmt"
	"strings"

	"github.com/conduit-lang/modulegen/internal/compiler/symbols"
)

// Module declaration error codes (MOD200-299)
const (
	// ErrUnexpectedAttributeProperty indicates an unknown named argument on a marker
	ErrUnexpectedAttributeProperty ErrorCode = "MOD200"
	// ErrMemberNotAccessible indicates a marked member is neither public nor internal
	ErrMemberNotAccessible ErrorCode = "MOD201"
	// ErrMemberMustReturnVoid indicates an initializer or constant provider returns a value
	ErrMemberMustReturnVoid ErrorCode = "MOD202"
	// ErrInvalidCapabilityParameter indicates a wrong parameter list on an initializer
	// or constant provider
	ErrInvalidCapabilityParameter ErrorCode = "MOD203"
	// ErrGetterNotAccessible indicates a constant property without an accessible getter
	ErrGetterNotAccessible ErrorCode = "MOD204"
	// ErrCallbackNotSettable indicates an event or function property without an
	// accessible setter
	ErrCallbackNotSettable ErrorCode = "MOD205"
	// ErrMemberMustBePropertyOrField indicates a constant, event or function marker on
	// a method
	ErrMemberMustBePropertyOrField ErrorCode = "MOD206"
	// ErrCallbackTypeNotDelegate indicates an event or function whose type is not a
	// delegate
	ErrCallbackTypeNotDelegate ErrorCode = "MOD207"
	// ErrCallbackDelegateMustReturnVoid indicates an event or function delegate that
	// returns a value
	ErrCallbackDelegateMustReturnVoid ErrorCode = "MOD208"
	// ErrMarkerRequiresMethod indicates a method-shaped marker on a property or field
	ErrMarkerRequiresMethod ErrorCode = "MOD209"
	// ErrReadOnlyCallbackField indicates an event or function field the generated
	// initializer cannot assign
	ErrReadOnlyCallbackField ErrorCode = "MOD210"
)

// NewUnexpectedAttributeProperty creates a MOD200 error. Known lists the valid
// property names starting with the best-matching ones.
func NewUnexpectedAttributeProperty(loc symbols.Location, attribute, property string, known []string) *CompilerError {
	err := newError(
		ErrUnexpectedAttributeProperty,
		"unexpected_property_in_attribute",
		CategoryModule,
		SeverityError,
		fmt.Sprintf("Unexpected property '%s' in attribute '%s'", property, attribute),
		loc,
		attribute, property,
	)
	if len(known) > 0 {
		err.WithSuggestion(fmt.Sprintf("Did you mean: %s?", strings.Join(known, ", ")))
	}
	return err
}

// NewMemberNotAccessible creates a MOD201 error
func NewMemberNotAccessible(loc symbols.Location, shape, member string) *CompilerError {
	return newError(
		ErrMemberNotAccessible,
		"member_not_accessible",
		CategoryModule,
		SeverityError,
		fmt.Sprintf("The %s '%s' must be public or internal", shape, member),
		loc,
		shape, member,
	)
}

// NewMemberMustReturnVoid creates a MOD202 error
func NewMemberMustReturnVoid(loc symbols.Location, shape, member, actual string) *CompilerError {
	return newError(
		ErrMemberMustReturnVoid,
		"member_must_return_void",
		CategoryModule,
		SeverityError,
		fmt.Sprintf("The %s '%s' must return void", shape, member),
		loc,
		shape, member,
	).WithExpected("void").WithActual(actual)
}

// NewInvalidCapabilityParameter creates a MOD203 error
func NewInvalidCapabilityParameter(loc symbols.Location, shape, member, expected string) *CompilerError {
	return newError(
		ErrInvalidCapabilityParameter,
		"invalid_capability_parameter",
		CategoryModule,
		SeverityError,
		fmt.Sprintf("The %s '%s' must take exactly one parameter of type '%s'", shape, member, expected),
		loc,
		shape, member, expected,
	)
}

// NewGetterNotAccessible creates a MOD204 error
func NewGetterNotAccessible(loc symbols.Location, member string) *CompilerError {
	return newError(
		ErrGetterNotAccessible,
		"getter_not_accessible",
		CategoryModule,
		SeverityError,
		fmt.Sprintf("The constant property '%s' must have a public or internal getter", member),
		loc,
		member,
	)
}

// NewCallbackNotSettable creates a MOD205 error
func NewCallbackNotSettable(loc symbols.Location, shape, member string) *CompilerError {
	return newError(
		ErrCallbackNotSettable,
		"callback_not_settable",
		CategoryModule,
		SeverityError,
		fmt.Sprintf("The %s property '%s' must have a public or internal setter", shape, member),
		loc,
		shape, member,
	)
}

// NewReadOnlyCallbackField creates a MOD210 warning. The member is still
// registered; the C# compiler rejects the generated assignment.
func NewReadOnlyCallbackField(loc symbols.Location, shape, member string) *CompilerError {
	return newError(
		ErrReadOnlyCallbackField,
		"readonly_callback_field",
		CategoryModule,
		SeverityWarning,
		fmt.Sprintf("The %s field '%s' is readonly and cannot be assigned by the generated code", shape, member),
		loc,
		shape, member,
	).WithSuggestion("Remove the readonly modifier")
}

// NewMemberMustBePropertyOrField creates a MOD206 error
func NewMemberMustBePropertyOrField(loc symbols.Location, shape, member string) *CompilerError {
	return newError(
		ErrMemberMustBePropertyOrField,
		"member_must_be_property_or_field",
		CategoryModule,
		SeverityError,
		fmt.Sprintf("The %s '%s' must be a property or a field", shape, member),
		loc,
		shape, member,
	)
}

// NewCallbackTypeNotDelegate creates a MOD207 error
func NewCallbackTypeNotDelegate(loc symbols.Location, shape, member, actual string) *CompilerError {
	return newError(
		ErrCallbackTypeNotDelegate,
		"callback_type_not_delegate",
		CategoryModule,
		SeverityError,
		fmt.Sprintf("The %s '%s' must have a delegate type", shape, member),
		loc,
		shape, member,
	).WithActual(actual)
}

// NewCallbackDelegateMustReturnVoid creates a MOD208 error
func NewCallbackDelegateMustReturnVoid(loc symbols.Location, shape, member, actual string) *CompilerError {
	return newError(
		ErrCallbackDelegateMustReturnVoid,
		"callback_delegate_must_return_void",
		CategoryModule,
		SeverityError,
		fmt.Sprintf("The delegate type of %s '%s' must return void", shape, member),
		loc,
		shape, member,
	).WithExpected("void").WithActual(actual)
}

// NewMarkerRequiresMethod creates a MOD209 error
func NewMarkerRequiresMethod(loc symbols.Location, shape, member string) *CompilerError {
	return newError(
		ErrMarkerRequiresMethod,
		"marker_requires_method",
		CategoryModule,
		SeverityError,
		fmt.Sprintf("The %s marker on '%s' can only be applied to a method", shape, member),
		loc,
		shape, member,
	)
}
