package gurt

import "errors"

// Parsing failures surfaced by the framer. Each failure terminates only the
// in-progress frame; nothing is retried internally.
var (
	// ErrTruncated is returned when the stream ends before a requested
	// exact length or line delimiter was satisfied.
	ErrTruncated = errors.New("gurt: truncated stream")
	// ErrLineTooLong is returned when a line exceeds the configured
	// maximum before a CRLF is found. It bounds buffering against a peer
	// that never sends a terminator.
	ErrLineTooLong = errors.New("gurt: line exceeds maximum length")
	// ErrProtocolMismatch is returned when a status line does not carry
	// the expected protocol version token.
	ErrProtocolMismatch = errors.New("gurt: protocol version mismatch")
	// ErrMalformedStatus is returned when the status code token is not a
	// valid non-negative integer.
	ErrMalformedStatus = errors.New("gurt: malformed status code")
	// ErrMalformedHeader is returned when a header line contains no colon.
	ErrMalformedHeader = errors.New("gurt: malformed header")
	// ErrReaderState is returned when response elements are read out of
	// order (e.g. a header after the body started).
	ErrReaderState = errors.New("gurt: response read out of order")
	// ErrBodyLength is returned when a streamed body does not match its
	// declared content-length.
	ErrBodyLength = errors.New("gurt: body length does not match content-length")
)

// TransportError wraps an I/O failure from the underlying transport so
// callers can tell it apart from the protocol-parsing errors above.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return "gurt: transport " + e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
