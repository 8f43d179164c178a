package errors

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/conduit-lang/modulegen/internal/compiler/symbols"
)

func TestErrorCodeUniqueness(t *testing.T) {
	codes := make(map[ErrorCode]string)

	groups := map[string][]ErrorCode{
		"environment": {ErrRequiredTypeNotFound},
		"compile": {
			ErrInvalidSnapshot, ErrDuplicateType, ErrUnresolvedType,
			ErrMalformedTypeReference, ErrAssemblyMismatch, ErrInvalidDeclaration,
			ErrNotAnAttribute, ErrAmbiguousAttribute,
		},
		"module": {
			ErrUnexpectedAttributeProperty, ErrMemberNotAccessible, ErrMemberMustReturnVoid,
			ErrInvalidCapabilityParameter, ErrGetterNotAccessible, ErrCallbackNotSettable,
			ErrMemberMustBePropertyOrField, ErrCallbackTypeNotDelegate,
			ErrCallbackDelegateMustReturnVoid, ErrMarkerRequiresMethod, ErrReadOnlyCallbackField,
		},
		"serialization": {ErrMissingDefaultConstructor},
	}

	for group, list := range groups {
		for _, code := range list {
			if prev, exists := codes[code]; exists {
				t.Errorf("Duplicate error code %s (previously used for %s)", code, prev)
			}
			codes[code] = group
		}
	}
}

func TestErrorJSONSerialization(t *testing.T) {
	loc := symbols.Location{File: "Sample.cs", Line: 10, Column: 5}
	err := NewMemberMustReturnVoid(loc, "initializer", "Init", "System.Int32")

	jsonStr, jsonErr := err.ToJSON()
	if jsonErr != nil {
		t.Fatalf("Failed to serialize error to JSON: %v", jsonErr)
	}

	var parsed CompilerError
	if unmarshalErr := json.Unmarshal([]byte(jsonStr), &parsed); unmarshalErr != nil {
		t.Fatalf("Failed to parse error JSON: %v", unmarshalErr)
	}

	if parsed.Code != ErrMemberMustReturnVoid {
		t.Errorf("Expected code %s, got %s", ErrMemberMustReturnVoid, parsed.Code)
	}
	if parsed.Category != CategoryModule {
		t.Errorf("Expected category %s, got %s", CategoryModule, parsed.Category)
	}
	if parsed.Location != loc {
		t.Errorf("Expected location %v, got %v", loc, parsed.Location)
	}
	if parsed.Expected != "void" || parsed.Actual != "System.Int32" {
		t.Errorf("Expected void/System.Int32, got %s/%s", parsed.Expected, parsed.Actual)
	}
	if len(parsed.Args) != 2 || parsed.Args[1] != "Init" {
		t.Errorf("Expected message args [initializer Init], got %v", parsed.Args)
	}
}

func TestErrorListAccumulates(t *testing.T) {
	var list ErrorList
	loc := symbols.Location{Line: 1, Column: 1}

	list.Add(NewCallbackNotSettable(loc, "event", "OnChanged"))
	list.Add(NewMissingDefaultConstructor(loc, "Sample.Point"))
	list.Extend(ErrorList{NewGetterNotAccessible(loc, "Version")})

	if len(list) != 3 {
		t.Fatalf("Expected 3 diagnostics, got %d", len(list))
	}
	if list[0].Code != ErrCallbackNotSettable || list[2].Code != ErrGetterNotAccessible {
		t.Error("Diagnostics should keep insertion order")
	}

	errs, warnings, info := list.ErrorCount()
	if errs != 2 || warnings != 1 || info != 0 {
		t.Errorf("Expected 2/1/0, got %d/%d/%d", errs, warnings, info)
	}
	if !list.HasErrors() || !list.HasWarnings() {
		t.Error("Expected both errors and warnings")
	}
	if got := len(list.ByCode(ErrMissingDefaultConstructor)); got != 1 {
		t.Errorf("Expected one SER300, got %d", got)
	}
}

func TestWarningsAloneAreNotErrors(t *testing.T) {
	list := ErrorList{NewMissingDefaultConstructor(symbols.Location{}, "Sample.Point")}
	if list.HasErrors() {
		t.Error("A warning-only list should not report errors")
	}
}

func TestFormatCompact(t *testing.T) {
	err := NewCallbackNotSettable(symbols.Location{File: "Mod.cs", Line: 4, Column: 9}, "event", "OnTick")
	got := FormatCompact(err)
	want := "Mod.cs:4:9: error: The event property 'OnTick' must have a public or internal setter [MOD205]"
	if got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatErrorIncludesSuggestion(t *testing.T) {
	err := NewUnexpectedAttributeProperty(symbols.Location{}, "ReactModule", "EventEmiterName", []string{"EventEmitterName"})
	out := err.Format()
	if !strings.Contains(out, "Did you mean: EventEmitterName?") {
		t.Errorf("Expected suggestion in output, got:\n%s", out)
	}
	if !strings.Contains(out, "[MOD200]") {
		t.Errorf("Expected code in output, got:\n%s", out)
	}
}

func TestFormatErrorListSummary(t *testing.T) {
	list := ErrorList{
		NewRequiredTypeNotFound("Microsoft.ReactNative.Managed.ReactContext", "Microsoft.ReactNative.Managed"),
	}
	out := FormatErrorList(list)
	if !strings.HasPrefix(out, "Generation reported 1 error(s), 0 warning(s), 0 info") {
		t.Errorf("Unexpected summary:\n%s", out)
	}
	if FormatErrorList(nil) != "no errors" {
		t.Error("Empty list should format as 'no errors'")
	}
}
