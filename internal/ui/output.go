package ui

import "fmt"

// Status symbols. Outcomes are marked with symbols rather than color so
// they survive ANSI-stripped logs and pipes.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
)

func mark(symbol, msg string) string {
	return symbol + " " + msg
}

func markf(symbol, format string, args ...interface{}) string {
	return mark(symbol, fmt.Sprintf(format, args...))
}

// Success marks msg as a completed action.
func Success(msg string) string { return mark(SymbolSuccess, msg) }

// Successf is Success with formatting.
func Successf(format string, args ...interface{}) string {
	return markf(SymbolSuccess, format, args...)
}

// Error marks msg as a failure.
func Error(msg string) string { return mark(SymbolError, msg) }

// Errorf is Error with formatting.
func Errorf(format string, args ...interface{}) string {
	return markf(SymbolError, format, args...)
}

// Warning marks msg as a non-fatal problem.
func Warning(msg string) string { return mark(SymbolWarning, msg) }

// Warningf is Warning with formatting.
func Warningf(format string, args ...interface{}) string {
	return markf(SymbolWarning, format, args...)
}

// Info marks msg as neutral information.
func Info(msg string) string { return mark(SymbolInfo, msg) }

// Infof is Info with formatting.
func Infof(format string, args ...interface{}) string {
	return markf(SymbolInfo, format, args...)
}

// Header styles a section header.
func Header(msg string) string { return Bold.Render(msg) }

// ID styles a document or collection identifier.
func ID(id string) string { return Accent.Render(id) }

// FilePath styles a file path, e.g. the store location.
func FilePath(path string) string { return Accent.Render(path) }

// Hint styles secondary guidance, muted.
func Hint(msg string) string { return Muted.Render(msg) }

// Count renders a count badge like "(3 documents)".
func Count(n int, singular, plural string) string {
	word := plural
	if n == 1 {
		word = singular
	}
	return fmt.Sprintf("(%d %s)", n, word)
}

// Pluralize picks the regular plural for count.
func Pluralize(singular string, count int) string {
	if count != 1 {
		singular += "s"
	}
	return singular
}
