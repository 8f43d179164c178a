package ui

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/conduit-lang/modulegen/internal/compiler/errors"
	"github.com/conduit-lang/modulegen/internal/compiler/symbols"
)

func TestFormatError(t *testing.T) {
	tests := []struct {
		name     string
		opts     ErrorOptions
		contains []string
		excludes []string
	}{
		{
			name: "basic error",
			opts: ErrorOptions{
				Level:   ErrorLevelError,
				Context: "config error",
				Problem: "namespace is required",
			},
			contains: []string{"❌", "CONFIG ERROR: namespace is required"},
			excludes: []string{"   at "},
		},
		{
			name: "error with location and hint",
			opts: ErrorOptions{
				Level:    ErrorLevelError,
				Problem:  "Unexpected property",
				Location: "Sample.cs:3:1",
				Hint:     "Did you mean: ModuleName?",
			},
			contains: []string{"   at Sample.cs:3:1", "   Did you mean: ModuleName?"},
		},
		{
			name: "help commands",
			opts: ErrorOptions{
				Level:        ErrorLevelError,
				Problem:      "failed",
				HelpCommands: []string{"Get help: modulegen --help"},
			},
			contains: []string{"→ Get help: modulegen --help"},
		},
		{
			name:     "warning",
			opts:     ErrorOptions{Level: ErrorLevelWarning, Problem: "careful"},
			contains: []string{"⚠️", "careful"},
		},
		{
			name:     "info",
			opts:     ErrorOptions{Level: ErrorLevelInfo, Problem: "note"},
			contains: []string{"ℹ️", "note"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.NoColor = true
			out := FormatError(tt.opts)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, out, unwanted)
			}
			assert.NotContains(t, out, "\x1b[", "colors disabled")
		})
	}
}

func TestDiagnostic(t *testing.T) {
	d := errors.NewMemberNotAccessible(symbols.Location{File: "Sample.cs", Line: 12, Column: 5}, "method", "Hidden")
	out := Diagnostic(d, true)

	assert.True(t, strings.HasPrefix(out, "❌ MOD201 MODULE: "))
	assert.Contains(t, out, d.Message)
	assert.Contains(t, out, "at Sample.cs:12:5")

	env := errors.NewRequiredTypeNotFound("Microsoft.ReactNative.IViewManager", "Microsoft.ReactNative")
	out = Diagnostic(env, true)
	assert.Contains(t, out, "ENV001 ENVIRONMENT")
	assert.NotContains(t, out, "<source>")
	assert.Contains(t, out, env.Suggestion)
}

func TestDiagnosticWarningLevel(t *testing.T) {
	d := &errors.CompilerError{Code: "SER300", Category: errors.CategorySerialization, Severity: errors.SeverityWarning, Message: "no default constructor"}
	assert.True(t, strings.HasPrefix(Diagnostic(d, true), "⚠️ SER300 SERIALIZATION"))
}

func TestWriteDiagnostics(t *testing.T) {
	var empty bytes.Buffer
	WriteDiagnostics(&empty, nil, true)
	assert.Empty(t, empty.String())

	var diags errors.ErrorList
	diags.Add(errors.NewMemberNotAccessible(symbols.Location{File: "A.cs", Line: 1, Column: 1}, "method", "A"))
	diags.Add(&errors.CompilerError{Code: "SER300", Severity: errors.SeverityWarning, Message: "w"})

	var buf bytes.Buffer
	WriteDiagnostics(&buf, diags, true)
	out := buf.String()
	assert.Contains(t, out, "MOD201")
	assert.Contains(t, out, "SER300")
	assert.True(t, strings.HasSuffix(out, "1 error(s), 1 warning(s)\n"))
}

func TestGenerationBlocked(t *testing.T) {
	out := GenerationBlocked(3, true)
	assert.Contains(t, out, "GENERATION BLOCKED")
	assert.Contains(t, out, "3 error(s)")
	assert.Contains(t, out, "--allow-errors")
}

func TestMessageHelpers(t *testing.T) {
	assert.Contains(t, ConfigError("bad namespace", true), "CONFIGURATION ERROR: bad namespace")
	assert.Contains(t, ConfigError("bad namespace", true), "modulegen init")
	assert.Contains(t, Warning("w", true), "⚠️ w")
	assert.Contains(t, Info("i", true), "ℹ️ i")
	assert.Equal(t, "✓ done", FormatSuccess("done", true))
}

func TestColorOutput(t *testing.T) {
	// fatih/color disables itself when stdout is not a terminal
	old := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = old }()

	out := FormatError(ErrorOptions{Level: ErrorLevelError, Problem: "x"})
	assert.Contains(t, out, "\x1b[")

	var buf bytes.Buffer
	WriteSuccess(&buf, "ok", false)
	assert.Equal(t, fmt.Sprintf("%s\n", color.New(color.FgGreen, color.Bold).Sprint("✓ ok")), buf.String())
}
