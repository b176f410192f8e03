package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Domain errors represent business logic failures.
// Transport adapters map them onto status codes with errors.Is.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedProvider indicates an unknown integration provider.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrProviderNotConfigured indicates no OAuth app is configured for a provider.
	ErrProviderNotConfigured = errors.New("provider not configured")

	// OAuth Errors.

	// ErrInvalidState indicates the callback state is unknown, expired,
	// already consumed or does not match the issued token.
	ErrInvalidState = errors.New("invalid oauth state")

	// ErrExchangeFailed indicates the provider rejected the authorization code.
	ErrExchangeFailed = errors.New("token exchange failed")

	// ErrCredentialNotFound indicates no cached credential exists for a scope.
	ErrCredentialNotFound = errors.New("credential not found")

	// Fetch Errors.

	// ErrTransport indicates a network failure or timeout talking to a provider.
	ErrTransport = errors.New("transport error")

	// ErrProvider indicates the provider answered a data request with a non-2xx status.
	ErrProvider = errors.New("provider error")

	// ErrPageLimitExceeded indicates a paginated fetch did not terminate
	// within the configured page cap.
	ErrPageLimitExceeded = errors.New("page limit exceeded")

	// ErrMalformedRecord indicates a raw provider record could not be normalised.
	ErrMalformedRecord = errors.New("malformed record")
)

// ProviderError carries the status and body of a failed provider data request.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error %d: %s", e.StatusCode, e.Body)
}

// Is reports whether target is ErrProvider.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

// IsServerError returns true for 5xx provider responses.
func (e *ProviderError) IsServerError() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// ExchangeError carries the verbatim response of a rejected token exchange.
type ExchangeError struct {
	StatusCode int
	Body       string
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("token exchange failed (%d): %s", e.StatusCode, e.Body)
}

// Is reports whether target is ErrExchangeFailed.
func (e *ExchangeError) Is(target error) bool {
	return target == ErrExchangeFailed
}

// TransportError wraps a network failure against a provider.
type TransportError struct {
	// Op names the failed operation (e.g. "token exchange", "fetch page").
	Op  string
	Err error
	// Timeout is set when the failure was a deadline or client timeout.
	Timeout bool
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s: timeout: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Is reports whether target is ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps err, flagging deadline and client timeouts.
// A context cancellation by the caller is returned unchanged.
func NewTransportError(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	timeout := errors.Is(err, context.DeadlineExceeded)
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		timeout = true
	}
	return &TransportError{Op: op, Err: err, Timeout: timeout}
}

// MalformedRecordError identifies the record that failed normalisation.
type MalformedRecordError struct {
	Index  int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at index %d: %s", e.Index, e.Reason)
}

// Is reports whether target is ErrMalformedRecord.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}
