package errors

import "fmt"

// ErrorCode represents a snipstash error code.
type ErrorCode string

const (
	ErrValidation  ErrorCode = "VALIDATION"  // 400
	ErrNotFound    ErrorCode = "NOT_FOUND"   // 404
	ErrNetwork     ErrorCode = "NETWORK"     // 502
	ErrUpstream    ErrorCode = "UPSTREAM"    // 502
	ErrSchema      ErrorCode = "SCHEMA"      // 502
	ErrPersistence ErrorCode = "PERSISTENCE" // 500
	ErrInternal    ErrorCode = "INTERNAL"    // 500
)

// Error represents a structured error with code, status, and details.
type Error struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidation creates a 400 error for invalid input.
// Validation failures are reported before any collection is mutated.
func NewValidation(msg string) *Error {
	return &Error{
		Code:    ErrValidation,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing snippet or folder.
func NewNotFound(kind, id string) *Error {
	return &Error{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", kind, id),
		Details: map[string]any{"kind": kind, "id": id},
	}
}

// NewNetwork creates a 502 error for a failed transport to the annotation service.
func NewNetwork(err error) *Error {
	return &Error{
		Code:    ErrNetwork,
		Status:  502,
		Message: fmt.Sprintf("annotation service unreachable: %v", err),
	}
}

// NewUpstream creates a 502 error for a non-success response from the annotation service.
func NewUpstream(status int, body string) *Error {
	return &Error{
		Code:    ErrUpstream,
		Status:  502,
		Message: fmt.Sprintf("annotation service responded with status %d", status),
		Details: map[string]any{"upstream_status": status, "upstream_body": body},
	}
}

// NewSchema creates a 502 error for a malformed annotation service response.
func NewSchema(msg string) *Error {
	return &Error{
		Code:    ErrSchema,
		Status:  502,
		Message: fmt.Sprintf("malformed annotation response: %s", msg),
	}
}

// NewPersistence creates a 500 error for a storage read/write failure.
func NewPersistence(op string, err error) *Error {
	return &Error{
		Code:    ErrPersistence,
		Status:  500,
		Message: fmt.Sprintf("storage %s failed: %v", op, err),
		Details: map[string]any{"op": op},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *Error {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a snipstash Error with the given code.
func Is(err error, code ErrorCode) bool {
	if e, ok := err.(*Error); ok {
		return e.Code == code
	}
	return false
}
