package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/conduit-lang/modulegen/internal/compiler/errors"
)

// ErrorLevel represents the severity of an error message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Location     string
	Hint         string
	HelpCommands []string
	NoColor      bool
}

// FormatError creates a standardized error message with a hint and help commands
//
// Example output:
//
//	❌ MOD200 MODULE: Unexpected property 'Nmae' in attribute ReactModule
//	   at SampleModule.cs:12:5
//
//	   Did you mean: Name?
//
//	   → Get help: modulegen generate --help
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	headerColor, bodyColor, symbol := levelStyle(opts.Level)
	if opts.NoColor {
		headerColor.DisableColor()
		bodyColor.DisableColor()
	}

	if opts.Context != "" {
		headerColor.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		headerColor.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if opts.Location != "" {
		bodyColor.Fprintf(&b, "   at %s\n", opts.Location)
	}

	if opts.Hint != "" {
		b.WriteString("\n")
		yellow := color.New(color.FgYellow)
		if opts.NoColor {
			yellow.DisableColor()
		}
		yellow.Fprintf(&b, "   %s\n", opts.Hint)
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := color.New(color.FgCyan)
		if opts.NoColor {
			cyan.DisableColor()
		}
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

func levelStyle(level ErrorLevel) (header, body *color.Color, symbol string) {
	switch level {
	case ErrorLevelWarning:
		return color.New(color.FgYellow, color.Bold), color.New(color.FgYellow), "⚠️"
	case ErrorLevelInfo:
		return color.New(color.FgCyan, color.Bold), color.New(color.FgCyan), "ℹ️"
	default:
		return color.New(color.FgRed, color.Bold), color.New(color.FgRed), "❌"
	}
}

// WriteError writes a formatted error message to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// Diagnostic formats one generator diagnostic
func Diagnostic(d *errors.CompilerError, noColor bool) string {
	level := ErrorLevelError
	switch d.Severity {
	case errors.SeverityWarning:
		level = ErrorLevelWarning
	case errors.SeverityInfo:
		level = ErrorLevelInfo
	}

	opts := ErrorOptions{
		Level:   level,
		Context: fmt.Sprintf("%s %s", d.Code, d.Category),
		Problem: d.Message,
		Hint:    d.Suggestion,
		NoColor: noColor,
	}
	// environment diagnostics have no source position
	if d.Location.File != "" || d.Location.Line > 0 {
		opts.Location = d.Location.String()
	}
	return FormatError(opts)
}

// WriteDiagnostics writes every diagnostic followed by a count line. Nothing is
// written for an empty list.
func WriteDiagnostics(w io.Writer, diags errors.ErrorList, noColor bool) {
	if len(diags) == 0 {
		return
	}
	for _, d := range diags {
		fmt.Fprint(w, Diagnostic(d, noColor))
		fmt.Fprintln(w)
	}

	errCount, warnCount, _ := diags.ErrorCount()
	summary := fmt.Sprintf("%d error(s), %d warning(s)", errCount, warnCount)
	if errCount > 0 {
		red := color.New(color.FgRed, color.Bold)
		if noColor {
			red.DisableColor()
		}
		red.Fprintln(w, summary)
		return
	}
	fmt.Fprintln(w, summary)
}

// GenerationBlocked explains why no code was written
func GenerationBlocked(errCount int, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelError,
		Context: "GENERATION BLOCKED",
		Problem: fmt.Sprintf("%d error(s) must be fixed before code is generated.", errCount),
		HelpCommands: []string{
			"Emit anyway: modulegen generate --allow-errors",
			"Get help: modulegen generate --help",
		},
		NoColor: noColor,
	})
}

// ConfigError creates a standardized configuration error
func ConfigError(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelError,
		Context: "CONFIGURATION ERROR",
		Problem: message,
		HelpCommands: []string{
			"Create a config: modulegen init",
			"Get help: modulegen --help",
		},
		NoColor: noColor,
	})
}

// Warning creates a standardized warning message
func Warning(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelWarning,
		Problem: message,
		NoColor: noColor,
	})
}

// Info creates a standardized info message
func Info(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelInfo,
		Problem: message,
		NoColor: noColor,
	})
}
