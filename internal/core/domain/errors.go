// Package domain defines the core domain models for stockd.
package domain

import "errors"

// DomainError is a business error carrying a structured code. The numeric
// suffix of a code is the HTTP status it surfaces as (e.g. "SD-PROD-4040"
// maps to 404). Two DomainErrors compare equal under errors.Is when their
// codes match, regardless of message.
//
// @req RQ-0104
// @design DS-0104
type DomainError struct {
	Code    string // structured code, e.g. "SD-PROD-4040"
	Message string // user-facing message, served in the response body
	Details string // optional context appended to Error()
	Cause   error  // underlying error, reachable via errors.Unwrap
}

func (e *DomainError) Error() string {
	s := "[" + e.Code + "] " + e.Message
	if e.Details != "" {
		s += ": " + e.Details
	}
	return s
}

// Unwrap exposes the cause to the errors package.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches any DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && e.Code == t.Code
}

// NewDomainError creates a DomainError with the given code and message.
//
// @design DS-0104
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func (e *DomainError) clone() *DomainError {
	c := *e
	return &c
}

// WithDetails returns a copy of the error with details attached. The
// receiver, usually a package-level sentinel, is never modified.
func (e *DomainError) WithDetails(details string) *DomainError {
	c := e.clone()
	c.Details = details
	return c
}

// WithCause returns a copy of the error wrapping cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	c := e.clone()
	c.Cause = cause
	return c
}

// Wrap is shorthand for WithCause, reading better at call sites that
// wrap a lower-level failure in a sentinel.
func (e *DomainError) Wrap(cause error) *DomainError {
	return e.WithCause(cause)
}

// IsDomainError reports whether err has a DomainError with the given code
// anywhere in its chain. An empty code matches any DomainError.
//
// @design DS-0104
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if !errors.As(err, &de) {
		return false
	}
	return code == "" || de.Code == code
}

// GetErrorCode returns the structured code of the DomainError in err's
// chain, or "" when there is none.
//
// @design DS-0104
func GetErrorCode(err error) string {
	var de *DomainError
	if !errors.As(err, &de) {
		return ""
	}
	return de.Code
}

// GetErrorMessage extracts the bare message from an error. For a DomainError
// this is the Message field without the code prefix; anything else falls back
// to Error(). HTTP error bodies are built from this.
func GetErrorMessage(err error) string {
	var de *DomainError
	if !errors.As(err, &de) {
		return err.Error()
	}
	return de.Message
}

// ============================================================================
// Product Errors (PROD)
// ============================================================================

var (
	// ErrProductNotFound indicates the requested product id does not exist.
	ErrProductNotFound = NewDomainError("SD-PROD-4040", "Product not found")

	// ErrOutOfStock indicates the product exists but has zero quantity.
	ErrOutOfStock = NewDomainError("SD-PROD-4000", "Product is out of stock")
)

// ============================================================================
// Request Errors (REQ)
// ============================================================================

var (
	// ErrInvalidPayload indicates malformed input to a write endpoint,
	// including non-integer product ids in the path.
	ErrInvalidPayload = NewDomainError("SD-REQ-4001", "invalid request payload")
)

// ============================================================================
// Storage Errors (STOR)
// ============================================================================

var (
	// ErrPersistFailure indicates the inventory file could not be written.
	// The in-memory state has been rolled back when this is returned from
	// a mutation.
	ErrPersistFailure = NewDomainError("SD-STOR-5001", "inventory persistence failed")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrInternalServer indicates an unhandled fault during request handling.
	ErrInternalServer = NewDomainError("SD-SYS-5000", "internal server error")

	// ErrRouteNotFound indicates no route matched the request path.
	ErrRouteNotFound = NewDomainError("SD-SYS-4040", "not found")

	// ErrRateLimited indicates too many requests from one client.
	ErrRateLimited = NewDomainError("SD-SYS-4290", "too many requests")
)
