package gurt

import (
	"fmt"
	"strconv"
	"strings"
)

// Request is one GURT request. On the client side the caller fills in the
// fields and hands it to Client.Do; on the server side ReadRequest produces
// one from the wire.
type Request struct {
	Method      Method
	Path        string
	Host        string
	UserAgent   string
	ContentType string
	Headers     map[string]string
	Body        []byte
}

// ReadRequest reads and parses one request frame from buf, including a
// content-length body when one is declared. Used by servers; the request
// line must carry the exact protocol version token.
func ReadRequest(buf *StreamBuffer) (*Request, error) {
	line, err := buf.ReadLine()
	if err != nil {
		return nil, err
	}
	parts := strings.SplitN(strings.TrimSuffix(string(line), CRLF), " ", 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("malformed request line: %q", string(line))
	}
	method, err := ParseMethod(parts[0])
	if err != nil {
		return nil, err
	}
	if parts[2] != Version {
		return nil, fmt.Errorf("%w: got %q", ErrProtocolMismatch, parts[2])
	}

	request := &Request{
		Method:  method,
		Path:    parts[1],
		Headers: make(map[string]string),
	}

	for {
		line, err := buf.ReadLine()
		if err != nil {
			return nil, err
		}
		if len(line) == len(CRLF) {
			break // end of headers
		}
		h, err := parseHeaderLine(strings.TrimSuffix(string(line), CRLF))
		if err != nil {
			return nil, err
		}
		request.Headers[h.Name] = h.Value
	}
	request.Host = request.Headers["host"]
	request.UserAgent = request.Headers["user-agent"]
	request.ContentType = request.Headers["content-type"]

	if cl, ok := request.Headers["content-length"]; ok {
		length, err := strconv.Atoi(cl)
		if err != nil || length < 0 {
			return nil, fmt.Errorf("invalid content-length: %q", cl)
		}
		if length > MaxMessageSize {
			return nil, fmt.Errorf("declared body of %d bytes exceeds maximum message size", length)
		}
		body := make([]byte, length)
		if err := buf.ReadFull(body); err != nil {
			return nil, err
		}
		request.Body = body
	}

	return request, nil
}
