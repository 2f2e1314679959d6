package iats

import (
	"errors"
	"fmt"
)

// Error is the error form of a non-successful Result.
type Error struct {
	Kind    Kind
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Code != 0 {
		msg = fmt.Sprintf("%s (code %d)", msg, e.Code)
	}
	if e.Cause != nil {
		return fmt.Sprintf("iats %s: %s: %v", e.Kind, msg, e.Cause)
	}
	return fmt.Sprintf("iats %s: %s", e.Kind, msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel causes for locally detected failures.
var (
	// ErrServerRestricted indicates the operation is not offered on the client's region.
	ErrServerRestricted = errors.New("operation not available on this server")

	// ErrMOPCurrencyRestricted indicates the method of payment cannot be used with the currency.
	ErrMOPCurrencyRestricted = errors.New("method of payment not available for currency")

	// ErrUnknownOperation indicates the operation is not part of the family.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrInvalidParameter indicates a request parameter could not be encoded.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrMalformedResponse indicates the gateway answered with something that is not a SOAP response.
	ErrMalformedResponse = errors.New("malformed gateway response")

	// ErrUnknownFamily indicates a service family name could not be resolved.
	ErrUnknownFamily = errors.New("unknown service family")
)

// Kind-only errors for use with errors.Is.
var (
	ErrValidation = &Error{Kind: KindValidationFailure}
	ErrRejected   = &Error{Kind: KindAuthorizationRejection}
	ErrTransport  = &Error{Kind: KindTransportFailure}
)

// IsRejection reports whether err is an authorization rejection.
func IsRejection(err error) bool {
	return errors.Is(err, ErrRejected)
}

// IsTransport reports whether err is a transport or credential failure.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}
