package gurt

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FrameWriter serializes GURT request frames onto a transport write side.
// Header emission order is fixed by the protocol and reproduced exactly.
type FrameWriter struct {
	w io.Writer
}

func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: w}
}

func (fw *FrameWriter) send(frame string) error {
	if _, err := io.WriteString(fw.w, frame); err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	return nil
}

// WriteHandshake emits the handshake frame. It must be the first frame of
// every session; no other frame type is valid before it completes.
func (fw *FrameWriter) WriteHandshake(host, userAgent string) error {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	var b strings.Builder
	b.WriteString(MethodHandshake.String() + " / " + Version + CRLF)
	b.WriteString("host: " + host + CRLF)
	b.WriteString("user-agent: " + userAgent + CRLF)
	b.WriteString(CRLF)
	return fw.send(b.String())
}

// WriteRequest emits a bodyless request frame. An empty userAgent falls
// back to DefaultUserAgent.
func (fw *FrameWriter) WriteRequest(method Method, path, host, userAgent string) error {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	var b strings.Builder
	b.WriteString(method.String() + " " + path + " " + Version + CRLF)
	b.WriteString("host: " + host + CRLF)
	b.WriteString("user-agent: " + userAgent + CRLF)
	b.WriteString(CRLF)
	return fw.send(b.String())
}

// WriteRequestWithBody emits the frame head for a request carrying
// contentLength body bytes and returns a writer for streaming them. The
// content-type header is only emitted when contentType is non-empty.
func (fw *FrameWriter) WriteRequestWithBody(method Method, path, host string, contentLength int, userAgent, contentType string) (*BodyWriter, error) {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	var b strings.Builder
	b.WriteString(method.String() + " " + path + " " + Version + CRLF)
	b.WriteString("host: " + host + CRLF)
	if contentType != "" {
		b.WriteString("content-type: " + contentType + CRLF)
	}
	b.WriteString("content-length: " + strconv.Itoa(contentLength) + CRLF)
	b.WriteString("user-agent: " + userAgent + CRLF)
	b.WriteString(CRLF)
	if err := fw.send(b.String()); err != nil {
		return nil, err
	}
	return &BodyWriter{w: fw.w, remaining: contentLength}, nil
}

// BodyWriter streams exactly the declared number of body bytes to the
// transport after a WriteRequestWithBody frame head.
type BodyWriter struct {
	w         io.Writer
	remaining int
}

// Remaining reports how many declared body bytes are still unwritten.
func (bw *BodyWriter) Remaining() int {
	return bw.remaining
}

func (bw *BodyWriter) Write(p []byte) (int, error) {
	if len(p) > bw.remaining {
		return 0, fmt.Errorf("%w: %d bytes over declared length", ErrBodyLength, len(p)-bw.remaining)
	}
	n, err := bw.w.Write(p)
	bw.remaining -= n
	if err != nil {
		return n, &TransportError{Op: "write", Err: err}
	}
	return n, nil
}

// Close verifies the declared length was fully written.
func (bw *BodyWriter) Close() error {
	if bw.remaining != 0 {
		return fmt.Errorf("%w: %d bytes short of declared length", ErrBodyLength, bw.remaining)
	}
	return nil
}
