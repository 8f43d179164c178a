package errors

import (
	"fmt"
	"strings"
)

// FormatError returns a human-readable diagnostic for terminal output
func FormatError(e *CompilerError) string {
	var b strings.Builder

	icon := severityIcon(e.Severity)
	categoryName := categoryDisplayName(e.Category)

	fmt.Fprintf(&b, "%s %s [%s] at %s\n", icon, categoryName, e.Code, e.Location)
	fmt.Fprintf(&b, "  %s\n", e.Message)

	if e.Expected != "" || e.Actual != "" {
		b.WriteString("\n")
		if e.Expected != "" {
			fmt.Fprintf(&b, "  Expected: %s\n", e.Expected)
		}
		if e.Actual != "" {
			fmt.Fprintf(&b, "  Actual:   %s\n", e.Actual)
		}
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n💡 %s\n", e.Suggestion)
	}

	return b.String()
}

// FormatErrorList returns a formatted string of all diagnostics
func FormatErrorList(errors ErrorList) string {
	if len(errors) == 0 {
		return "no errors"
	}

	var b strings.Builder

	errCount, warnCount, infoCount := errors.ErrorCount()
	fmt.Fprintf(&b, "Generation reported %d error(s), %d warning(s), %d info\n\n",
		errCount, warnCount, infoCount)

	for i, err := range errors {
		if i > 0 {
			b.WriteString("\n" + strings.Repeat("-", 80) + "\n\n")
		}
		b.WriteString(err.Format())
	}

	return b.String()
}

// FormatCompact returns a compact one-line diagnostic in the file:line:col style
// understood by editors and build logs
func FormatCompact(e *CompilerError) string {
	return fmt.Sprintf("%s: %s: %s [%s]", e.Location, e.Severity, e.Message, e.Code)
}

// severityIcon returns the emoji/icon for a severity level
func severityIcon(severity ErrorSeverity) string {
	switch severity {
	case SeverityError:
		return "❌"
	case SeverityWarning:
		return "⚠️ "
	case SeverityInfo:
		return "ℹ️ "
	default:
		return "❓"
	}
}

// categoryDisplayName returns a human-readable category name
func categoryDisplayName(category ErrorCategory) string {
	switch category {
	case CategoryEnvironment:
		return "Environment Error"
	case CategoryCompile:
		return "Compile Error"
	case CategoryModule:
		return "Module Declaration Error"
	case CategorySerialization:
		return "Serialization Warning"
	default:
		return "Generator Error"
	}
}
