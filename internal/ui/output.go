package ui

import "fmt"

// Status symbols prefixing one-line messages. Color is left to Accent.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
)

func symbol(sym, msg string) string { return sym + " " + msg }

// Successf formats a message prefixed with SymbolSuccess.
func Successf(format string, args ...interface{}) string {
	return symbol(SymbolSuccess, fmt.Sprintf(format, args...))
}

// Error prefixes msg with SymbolError.
func Error(msg string) string { return symbol(SymbolError, msg) }

// Warningf formats a message prefixed with SymbolWarning.
func Warningf(format string, args ...interface{}) string {
	return symbol(SymbolWarning, fmt.Sprintf(format, args...))
}

// Infof formats a message prefixed with SymbolInfo.
func Infof(format string, args ...interface{}) string {
	return symbol(SymbolInfo, fmt.Sprintf(format, args...))
}

// FilePath styles a path with the accent color.
func FilePath(path string) string { return Accent.Render(path) }

// Count returns n with the matching noun, e.g. "3 items".
func Count(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
