package gurt

import (
	"bytes"
	"io"
)

const readChunkSize = 4096

// StreamBuffer bridges a chunked transport read side to precisely-sized
// reads. Bytes pulled from the transport but not yet delivered stay in the
// pending buffer; nothing is ever discarded by an over-read.
//
// A StreamBuffer is bound to exactly one transport at a time. Reset swaps
// the transport and throws the pending buffer away, so bytes never leak
// across connections.
type StreamBuffer struct {
	r       io.Reader
	pending []byte
	eof     bool
	maxLine int
	chunk   [readChunkSize]byte
}

// NewStreamBuffer returns a buffer bound to r with the line-length bound set
// to MaxMessageSize.
func NewStreamBuffer(r io.Reader) *StreamBuffer {
	return NewStreamBufferSize(r, MaxMessageSize)
}

// NewStreamBufferSize is NewStreamBuffer with an explicit maximum line
// length. maxLine bounds how many undelimited bytes ReadLine will hold
// before giving up with ErrLineTooLong.
func NewStreamBufferSize(r io.Reader, maxLine int) *StreamBuffer {
	return &StreamBuffer{r: r, maxLine: maxLine}
}

// Reset rebinds the buffer to a new transport, discarding every pending
// byte from the old one. Must be called before any read is issued against
// the replacement transport.
func (b *StreamBuffer) Reset(r io.Reader) {
	b.r = r
	b.pending = nil
	b.eof = false
}

// Buffered reports how many pulled-but-undelivered bytes are pending.
func (b *StreamBuffer) Buffered() int {
	return len(b.pending)
}

// fill pulls one chunk from the transport into the pending buffer. A clean
// end-of-stream is recorded, not returned as an error.
func (b *StreamBuffer) fill() error {
	if b.eof {
		return nil
	}
	n, err := b.r.Read(b.chunk[:])
	if n > 0 {
		b.pending = append(b.pending, b.chunk[:n]...)
	}
	if err == io.EOF {
		b.eof = true
		return nil
	}
	if err != nil {
		return &TransportError{Op: "read", Err: err}
	}
	return nil
}

// ReadFull fills p completely, pulling from the transport as needed. Bytes
// beyond len(p) already pulled stay pending for the next call. Returns
// ErrTruncated if the stream ends first.
func (b *StreamBuffer) ReadFull(p []byte) error {
	for len(b.pending) < len(p) {
		if b.eof {
			return ErrTruncated
		}
		if err := b.fill(); err != nil {
			return err
		}
	}
	copy(p, b.pending[:len(p)])
	b.pending = b.pending[len(p):]
	return nil
}

// ReadLine reads up to and including the next CRLF, consuming it. The
// returned slice aliases the pending buffer and is only valid until the
// next operation on b. Returns ErrTruncated if the stream ends with no
// delimiter, and ErrLineTooLong once the undelimited prefix outgrows the
// configured maximum.
func (b *StreamBuffer) ReadLine() ([]byte, error) {
	searched := 0
	for {
		if i := bytes.Index(b.pending[searched:], []byte(CRLF)); i >= 0 {
			end := searched + i + len(CRLF)
			if end-len(CRLF) > b.maxLine {
				return nil, ErrLineTooLong
			}
			line := b.pending[:end]
			b.pending = b.pending[end:]
			return line, nil
		}
		// One byte of slack for a CR still awaiting its LF; any longer
		// undelimited prefix can no longer fit the bound. The same
		// bound applies either way, so acceptance does not depend on
		// how the transport chunked delivery.
		if len(b.pending) > b.maxLine+1 {
			return nil, ErrLineTooLong
		}
		if b.eof {
			return nil, ErrTruncated
		}
		// Resume one byte back so a CRLF split across two chunks is
		// still found.
		if searched = len(b.pending) - 1; searched < 0 {
			searched = 0
		}
		if err := b.fill(); err != nil {
			return nil, err
		}
	}
}

// ReadAvailable copies whatever is buffered into p, pulling at most one
// chunk from the transport when the buffer is empty. It returns 0 with a
// nil error only at end-of-stream; callers treat a zero-length read as
// completion.
func (b *StreamBuffer) ReadAvailable(p []byte) (int, error) {
	if len(b.pending) == 0 && !b.eof {
		if err := b.fill(); err != nil {
			return 0, err
		}
	}
	n := copy(p, b.pending)
	b.pending = b.pending[n:]
	return n, nil
}
