package gurt

import (
	"fmt"
	"io"
	"strconv"
)

// Response is a fully-read GURT response. Header names are lowercase.
type Response struct {
	Code    StatusCode
	Reason  string
	Headers map[string]string
	Body    []byte
}

// Client drives one GURT session: it owns the current transport together
// with its bound StreamBuffer as a single replaceable unit. Exactly one
// request/response exchange is in flight at a time; the protocol is not
// pipelined and the client takes no locks.
type Client struct {
	conn      io.ReadWriter
	buf       *StreamBuffer
	UserAgent string
}

// NewClient wraps an already-connected, already-secured transport. The
// transport stays owned by the caller; the client only reads and writes it.
func NewClient(conn io.ReadWriter) *Client {
	return &Client{
		conn: conn,
		buf:  NewStreamBuffer(conn),
	}
}

// Swap hot-swaps the transport. The old transport's buffered bytes are
// discarded before any read or write touches the replacement, so stale
// bytes from a previous connection can never surface on the new one. Any
// exchange in flight on the old transport cannot be resumed.
func (c *Client) Swap(conn io.ReadWriter) {
	c.conn = conn
	c.buf.Reset(conn)
}

// Handshake sends the mandatory session-opening frame and reads the reply,
// which must be a 101.
func (c *Client) Handshake(host string) (*Response, error) {
	fw := NewFrameWriter(c.conn)
	if err := fw.WriteHandshake(host, c.UserAgent); err != nil {
		return nil, err
	}
	response, err := c.readResponse()
	if err != nil {
		return nil, err
	}
	if response.Code != StatusSwitchingProtocols {
		return response, fmt.Errorf("handshake rejected with status %d", response.Code)
	}
	return response, nil
}

// Get is shorthand for a bodyless GET exchange.
func (c *Client) Get(path, host string) (*Response, error) {
	return c.Do(&Request{Method: MethodGet, Path: path, Host: host})
}

// Do writes one request frame and reads the full response. The request's
// UserAgent defaults to the client's, then to DefaultUserAgent.
func (c *Client) Do(req *Request) (*Response, error) {
	ua := req.UserAgent
	if ua == "" {
		ua = c.UserAgent
	}
	fw := NewFrameWriter(c.conn)
	if req.Body == nil {
		if err := fw.WriteRequest(req.Method, req.Path, req.Host, ua); err != nil {
			return nil, err
		}
	} else {
		bw, err := fw.WriteRequestWithBody(req.Method, req.Path, req.Host, len(req.Body), ua, req.ContentType)
		if err != nil {
			return nil, err
		}
		if _, err := bw.Write(req.Body); err != nil {
			return nil, err
		}
		if err := bw.Close(); err != nil {
			return nil, err
		}
	}
	return c.readResponse()
}

func (c *Client) readResponse() (*Response, error) {
	reader := NewResponseReader(c.buf)
	status, err := reader.ReadStatusLine()
	if err != nil {
		return nil, err
	}
	response := &Response{
		Code:    status.Code,
		Reason:  status.Reason,
		Headers: make(map[string]string),
	}
	for {
		h, ok, err := reader.ReadHeader()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		response.Headers[h.Name] = h.Value
	}

	// Responses on a live session are length-delimited; a missing
	// content-length means an empty body. Close-delimited streaming is
	// available through ResponseReader.ReadBody directly.
	cl, ok := response.Headers["content-length"]
	if !ok {
		return response, nil
	}
	length, err := strconv.Atoi(cl)
	if err != nil || length < 0 {
		return nil, fmt.Errorf("invalid content-length: %q", cl)
	}
	if length > MaxMessageSize {
		return nil, fmt.Errorf("declared body of %d bytes exceeds maximum message size", length)
	}
	body := make([]byte, length)
	if err := reader.ReadBodyFull(body); err != nil {
		return nil, err
	}
	response.Body = body
	return response, nil
}
