// Package errors provides structured, coded errors for refkit.
//
// Each error has a unique code (e.g., "E002") registered with a category,
// a short message and a longer explanation:
//
//	err := errors.New(errors.CodeHookOrderChanged).
//	    AppendDetailf("Expected %s hook at index %d, got %s.", want, i, got).
//	    WithSuggestion("Call hooks unconditionally at the top of the render function")
//
//	fmt.Print(err.Format())
//
// Codes:
//   - E001-E099: runtime errors raised by the hook runtime
//   - E100-E119: configuration errors
//   - E120-E139: CLI errors
//
// *Error supports errors.Is by code and errors.As/Unwrap for the wrapped cause.
package errors
