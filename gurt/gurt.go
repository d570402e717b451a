package gurt

import (
	"fmt"
	"time"
)

// Protocol-level constants. These are fixed by the GURT specification and are
// not negotiated at runtime.
const (
	// Version is the protocol version token used on every request and
	// status line.
	Version = "GURT/1.0.0"
	// ALPN is the protocol identifier negotiated during the TLS handshake.
	ALPN = "GURT/1.0"
	// DefaultPort is the port GURT servers listen on unless told otherwise.
	DefaultPort = 4878
	// MaxMessageSize is the maximum size of a single GURT message (10 MB).
	// It also bounds how many bytes the stream buffer will hold while
	// searching for a line delimiter.
	MaxMessageSize = 10 << 20
	// HandshakeTimeout is how long a client should wait for the TLS and
	// GURT handshakes to complete.
	HandshakeTimeout = 5 * time.Second
	// ConnectionTimeout is the protocol's idle connection limit. The core
	// runs no timers itself; callers apply this via transport deadlines.
	ConnectionTimeout = 30 * time.Second
)

const CRLF = "\r\n"

// DefaultUserAgent identifies this client when the caller does not provide
// a user-agent of its own.
const DefaultUserAgent = "gurtle/1.0"

// Method is a GURT request method. The set is closed: tokens outside it are
// rejected at parse time rather than passed through as strings.
type Method int

const (
	MethodHandshake Method = iota
	MethodGet
	MethodPost
	MethodPut
	MethodDelete
	MethodHead
	MethodOptions
	MethodPatch
)

var methodNames = [...]string{
	MethodHandshake: "HANDSHAKE",
	MethodGet:       "GET",
	MethodPost:      "POST",
	MethodPut:       "PUT",
	MethodDelete:    "DELETE",
	MethodHead:      "HEAD",
	MethodOptions:   "OPTIONS",
	MethodPatch:     "PATCH",
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return "UNKNOWN"
	}
	return methodNames[m]
}

// ParseMethod maps a wire token to a Method.
func ParseMethod(token string) (Method, error) {
	for m, name := range methodNames {
		if token == name {
			return Method(m), nil
		}
	}
	return 0, fmt.Errorf("unsupported GURT method: %s", token)
}

// StatusCode is a numeric GURT response status. Any non-negative integer
// parses off the wire; the names below cover the codes the protocol defines.
type StatusCode int

const (
	StatusSwitchingProtocols StatusCode = 101
	StatusOK                 StatusCode = 200
	StatusCreated            StatusCode = 201
	StatusNoContent          StatusCode = 204
	StatusMovedPermanently   StatusCode = 301
	StatusFound              StatusCode = 302
	StatusNotModified        StatusCode = 304
	StatusBadRequest         StatusCode = 400
	StatusUnauthorized       StatusCode = 401
	StatusForbidden          StatusCode = 403
	StatusNotFound           StatusCode = 404
	StatusMethodNotAllowed   StatusCode = 405
	StatusTimeout            StatusCode = 408
	StatusTooLarge           StatusCode = 413
	StatusUnsupportedMedia   StatusCode = 415
	StatusTooManyRequests    StatusCode = 429
	StatusInternalError      StatusCode = 500
	StatusNotImplemented     StatusCode = 501
	StatusBadGateway         StatusCode = 502
	StatusUnavailable        StatusCode = 503
	StatusVersionMismatch    StatusCode = 505
)

var statusText = map[StatusCode]string{
	StatusSwitchingProtocols: "SWITCHING_PROTOCOLS",
	StatusOK:                 "OK",
	StatusCreated:            "CREATED",
	StatusNoContent:          "NO_CONTENT",
	StatusMovedPermanently:   "MOVED_PERMANENTLY",
	StatusFound:              "FOUND",
	StatusNotModified:        "NOT_MODIFIED",
	StatusBadRequest:         "BAD_REQUEST",
	StatusUnauthorized:       "UNAUTHORIZED",
	StatusForbidden:          "FORBIDDEN",
	StatusNotFound:           "NOT_FOUND",
	StatusMethodNotAllowed:   "METHOD_NOT_ALLOWED",
	StatusTimeout:            "TIMEOUT",
	StatusTooLarge:           "TOO_LARGE",
	StatusUnsupportedMedia:   "UNSUPPORTED_MEDIA_TYPE",
	StatusTooManyRequests:    "TOO_MANY_REQUESTS",
	StatusInternalError:      "INTERNAL_SERVER_ERROR",
	StatusNotImplemented:     "NOT_IMPLEMENTED",
	StatusBadGateway:         "BAD_GATEWAY",
	StatusUnavailable:        "SERVICE_UNAVAILABLE",
	StatusVersionMismatch:    "VERSION_NOT_SUPPORTED",
}

// Text returns the canonical reason phrase for a status code, or
// "UNKNOWN" for codes outside the defined set.
func (s StatusCode) Text() string {
	if text, ok := statusText[s]; ok {
		return text
	}
	return "UNKNOWN"
}
