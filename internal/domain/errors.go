package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrOutOfStock indicates the resolved variant has no purchasable stock.
	ErrOutOfStock = errors.New("out of stock")
)

// ErrorKind tags a RemoteError with the channel it belongs to.
type ErrorKind string

const (
	// ErrorValidation carries per-field messages from a 422-class response.
	ErrorValidation ErrorKind = "validation"
	// ErrorGeneral carries a single business-rule rejection message.
	ErrorGeneral ErrorKind = "general"
	// ErrorNetwork carries a transport or timeout failure with no structured
	// server payload.
	ErrorNetwork ErrorKind = "network"
)

// RemoteError is the tagged representation of any failed remote operation.
// It is constructed exactly once, at the gateway boundary, and never
// re-inspected against raw payloads downstream.
type RemoteError struct {
	Kind    ErrorKind
	Message string
	Fields  map[string][]string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind) + " error"
}

// ValidationError builds a field-keyed RemoteError.
func ValidationError(fields map[string][]string) *RemoteError {
	return &RemoteError{Kind: ErrorValidation, Message: "validation failed", Fields: fields}
}

// FieldError builds a validation RemoteError for a single field.
func FieldError(field, message string) *RemoteError {
	return ValidationError(map[string][]string{field: {message}})
}

// GeneralError builds a single-message RemoteError.
func GeneralError(message string) *RemoteError {
	return &RemoteError{Kind: ErrorGeneral, Message: message}
}

// NetworkError builds a RemoteError for a transport-level failure.
func NetworkError(message string) *RemoteError {
	return &RemoteError{Kind: ErrorNetwork, Message: message}
}

// AsRemote returns err as a *RemoteError, wrapping anything else as a general
// error so store error channels never carry an untagged failure.
func AsRemote(err error) *RemoteError {
	var rerr *RemoteError
	if errors.As(err, &rerr) {
		return rerr
	}
	return GeneralError(err.Error())
}
