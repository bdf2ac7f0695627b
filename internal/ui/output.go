package ui

import "fmt"

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
)

// Success returns a success message with checkmark symbol.
func Success(msg string) string {
	return fmt.Sprintf("%s %s", SymbolSuccess, msg)
}

// Successf returns a formatted success message.
func Successf(format string, args ...interface{}) string {
	return Success(fmt.Sprintf(format, args...))
}

// Error returns an error message with X symbol.
func Error(msg string) string {
	return fmt.Sprintf("%s %s", SymbolError, msg)
}

// Warningf returns a formatted warning message.
func Warningf(format string, args ...interface{}) string {
	return fmt.Sprintf("%s %s", SymbolWarning, fmt.Sprintf(format, args...))
}
