// Package errors provides the structured error type shared by autolabel packages.
//
// ContextualError records which component failed, what it was doing, and the
// underlying cause. It implements Unwrap so errors.Is and errors.As see through it.
//
// Usage:
//
//	err := errors.New("config", "Load", someErr)
//	err = err.WithDetails(map[string]any{"path": "task.yaml"})
package errors

import "fmt"

// ContextualError is a structured error that names the component and operation
// where a failure happened.
type ContextualError struct {
	// Component identifies the package that produced the error (e.g. "config", "schema").
	Component string

	// Operation describes what was being done when the error occurred.
	Operation string

	// Details holds optional structured metadata about the error.
	Details map[string]any

	// Cause is the underlying error, if any.
	Cause error
}

// New creates a ContextualError with the given component, operation, and cause.
func New(component, operation string, cause error) *ContextualError {
	return &ContextualError{
		Component: component,
		Operation: operation,
		Cause:     cause,
	}
}

// Error returns a human-readable representation of the error.
func (e *ContextualError) Error() string {
	base := fmt.Sprintf("[%s] %s", e.Component, e.Operation)

	if path, ok := e.Details["path"].(string); ok && path != "" {
		base += fmt.Sprintf(" (%s)", path)
	}

	if e.Cause != nil {
		base += ": " + e.Cause.Error()
	}

	return base
}

// Unwrap returns the underlying cause.
func (e *ContextualError) Unwrap() error {
	return e.Cause
}

// WithDetails sets the details map and returns the same error for chaining.
func (e *ContextualError) WithDetails(details map[string]any) *ContextualError {
	e.Details = details
	return e
}
