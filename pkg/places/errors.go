package places

import (
	"errors"
	"fmt"
)

// ErrRequestDenied is returned for vendor responses with status REQUEST_DENIED.
var ErrRequestDenied = errors.New("places request denied")

// TransportError reports a failed HTTP exchange. It is never produced for a
// response that arrived, whatever its status code.
type TransportError struct {
	URL   string // masked
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("places transport failure for %s: %v", e.URL, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ParseError reports a response body that is not a usable search response.
type ParseError struct {
	Reason string
	Cause  error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("places response parse failure: %s: %v", e.Reason, e.Cause)
	}
	return "places response parse failure: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// FailureKind classifies search errors.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureTransport
	FailureParse
	FailureDenied
	FailureUnknown
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureTransport:
		return "transport"
	case FailureParse:
		return "parse"
	case FailureDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// Classify maps an error returned by this package to its FailureKind.
func Classify(err error) FailureKind {
	if err == nil {
		return FailureNone
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return FailureTransport
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return FailureParse
	}

	if errors.Is(err, ErrRequestDenied) {
		return FailureDenied
	}

	return FailureUnknown
}
