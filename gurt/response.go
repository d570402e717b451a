package gurt

import (
	"fmt"
	"strconv"
	"strings"
)

type readerState int

const (
	stateStatusLine readerState = iota
	stateHeaders
	stateBody
	stateDone
)

// StatusLine is the first line of a GURT response.
type StatusLine struct {
	Version string
	Code    StatusCode
	Reason  string
}

// Header is one parsed header line. Names are lowercased; the protocol
// requires lowercase on the wire but mixed case is normalized on input.
type Header struct {
	Name  string
	Value string
}

// ResponseReader consumes one GURT response from a StreamBuffer in strict
// order: status line, then headers until the blank line, then body reads.
// One reader per response; discard it once the body is consumed.
type ResponseReader struct {
	buf   *StreamBuffer
	state readerState
}

func NewResponseReader(buf *StreamBuffer) *ResponseReader {
	return &ResponseReader{buf: buf}
}

// ReadStatusLine consumes the status line. The version token must equal
// Version exactly and the code token must parse as a non-negative integer.
func (r *ResponseReader) ReadStatusLine() (StatusLine, error) {
	if r.state != stateStatusLine {
		return StatusLine{}, ErrReaderState
	}
	line, err := r.buf.ReadLine()
	if err != nil {
		return StatusLine{}, err
	}
	text := strings.TrimSuffix(string(line), CRLF)
	parts := strings.SplitN(text, " ", 3)
	if parts[0] != Version {
		return StatusLine{}, fmt.Errorf("%w: got %q", ErrProtocolMismatch, parts[0])
	}
	if len(parts) < 2 {
		return StatusLine{}, fmt.Errorf("%w: missing code", ErrMalformedStatus)
	}
	code, err := strconv.Atoi(parts[1])
	if err != nil || code < 0 {
		return StatusLine{}, fmt.Errorf("%w: %q", ErrMalformedStatus, parts[1])
	}
	status := StatusLine{Version: parts[0], Code: StatusCode(code)}
	if len(parts) == 3 {
		status.Reason = parts[2]
	}
	r.state = stateHeaders
	return status, nil
}

// ReadHeader consumes one header line. It returns ok=false (and no error)
// on the blank line that terminates the header block, after which only body
// reads are permitted.
func (r *ResponseReader) ReadHeader() (Header, bool, error) {
	if r.state != stateHeaders {
		return Header{}, false, ErrReaderState
	}
	line, err := r.buf.ReadLine()
	if err != nil {
		return Header{}, false, err
	}
	if len(line) == len(CRLF) {
		r.state = stateBody
		return Header{}, false, nil
	}
	h, err := parseHeaderLine(strings.TrimSuffix(string(line), CRLF))
	if err != nil {
		return Header{}, false, err
	}
	return h, true, nil
}

// parseHeaderLine splits on the first colon only, since values may contain
// colons themselves.
func parseHeaderLine(text string) (Header, error) {
	i := strings.IndexByte(text, ':')
	if i < 0 {
		return Header{}, fmt.Errorf("%w: %q", ErrMalformedHeader, text)
	}
	return Header{
		Name:  strings.ToLower(strings.TrimSpace(text[:i])),
		Value: strings.TrimSpace(text[i+1:]),
	}, nil
}

// ReadBodyFull fills p completely from the response body. Use when the
// content-length is known. Returns ErrTruncated on early end-of-stream.
func (r *ResponseReader) ReadBodyFull(p []byte) error {
	if r.state != stateBody {
		return ErrReaderState
	}
	if err := r.buf.ReadFull(p); err != nil {
		return err
	}
	r.state = stateDone
	return nil
}

// ReadBody fills as much of p as is currently available and returns the
// count. A zero count means end-of-stream, never an error, so streaming
// callers can treat it as completion.
func (r *ResponseReader) ReadBody(p []byte) (int, error) {
	if r.state != stateBody && r.state != stateDone {
		return 0, ErrReaderState
	}
	n, err := r.buf.ReadAvailable(p)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		r.state = stateDone
	}
	return n, nil
}
