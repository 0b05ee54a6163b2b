package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryStructure Category = "structure"
	CategoryRuntime   Category = "runtime"
	CategoryProtocol  Category = "protocol"
	CategoryConfig    Category = "config"
	CategoryCLI       Category = "cli"
)

// LaminaError is a structured error with a stable code and fix suggestion.
type LaminaError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (structure, runtime, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *LaminaError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *LaminaError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *LaminaError) WithSuggestion(s string) *LaminaError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *LaminaError) WithDetail(d string) *LaminaError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *LaminaError) Wrap(err error) *LaminaError {
	e.Wrapped = err
	return e
}

// New creates a LaminaError from a registered error code.
func New(code string) *LaminaError {
	template, ok := registry[code]
	if !ok {
		return &LaminaError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &LaminaError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new LaminaError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *LaminaError {
	return &LaminaError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a LaminaError.
func FromError(err error, code string) *LaminaError {
	if err == nil {
		return nil
	}
	if le, ok := err.(*LaminaError); ok {
		return le
	}
	return New(code).Wrap(err)
}
