// Package errors provides structured error types for the wasm-host library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes the guest export involved and the cause
// chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseMarshal, errors.KindOutOfBounds).
//		Export("string_byte_size").
//		Detail("string ref outside linear memory").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.PhaseBind, "string_create")
//	err := errors.AllocationFailed(errors.PhaseMarshal, size, cause)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
