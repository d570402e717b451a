package gurt

import (
	"errors"
	"io"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// chunkReader delivers its input in fixed scripted chunks, simulating a
// transport that fragments delivery arbitrarily.
type chunkReader struct {
	chunks [][]byte
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	if n == len(c.chunks[0]) {
		c.chunks = c.chunks[1:]
	} else {
		c.chunks[0] = c.chunks[0][n:]
	}
	return n, nil
}

func oneByteChunks(s string) *chunkReader {
	r := &chunkReader{}
	for i := 0; i < len(s); i++ {
		r.chunks = append(r.chunks, []byte{s[i]})
	}
	return r
}

type failingReader struct{ err error }

func (f *failingReader) Read(p []byte) (int, error) {
	return 0, f.err
}

func TestReadFull(t *testing.T) {
	Convey("ReadFull returns the same bytes regardless of chunking", t, func() {
		input := "hello world"

		whole := NewStreamBuffer(strings.NewReader(input))
		got := make([]byte, 5)
		So(whole.ReadFull(got), ShouldBeNil)
		So(string(got), ShouldEqual, "hello")

		fragmented := NewStreamBuffer(oneByteChunks(input))
		got2 := make([]byte, 5)
		So(fragmented.ReadFull(got2), ShouldBeNil)
		So(string(got2), ShouldEqual, "hello")

		Convey("and over-read bytes stay pending for the next call", func() {
			rest := make([]byte, 6)
			So(whole.ReadFull(rest), ShouldBeNil)
			So(string(rest), ShouldEqual, " world")
		})
	})

	Convey("ReadFull fails with ErrTruncated when the stream ends early", t, func() {
		buf := NewStreamBuffer(strings.NewReader("abc"))
		So(errors.Is(buf.ReadFull(make([]byte, 10)), ErrTruncated), ShouldBeTrue)
	})

	Convey("ReadFull wraps transport failures distinguishably", t, func() {
		cause := errors.New("connection reset")
		buf := NewStreamBuffer(&failingReader{err: cause})
		err := buf.ReadFull(make([]byte, 1))
		var te *TransportError
		So(errors.As(err, &te), ShouldBeTrue)
		So(errors.Is(err, cause), ShouldBeTrue)
	})
}

func TestReadLine(t *testing.T) {
	Convey("ReadLine returns line plus delimiter however the input is chunked", t, func() {
		for _, r := range []io.Reader{
			strings.NewReader("abc\r\ndef\r\n"),
			oneByteChunks("abc\r\ndef\r\n"),
			&chunkReader{chunks: [][]byte{[]byte("abc\r"), []byte("\ndef\r\n")}},
		} {
			buf := NewStreamBuffer(r)
			line, err := buf.ReadLine()
			So(err, ShouldBeNil)
			So(string(line), ShouldEqual, "abc\r\n")
			line, err = buf.ReadLine()
			So(err, ShouldBeNil)
			So(string(line), ShouldEqual, "def\r\n")
		}
	})

	Convey("ReadLine on a closed stream with no delimiter fails, never hangs", t, func() {
		buf := NewStreamBuffer(strings.NewReader("no delimiter here"))
		_, err := buf.ReadLine()
		So(errors.Is(err, ErrTruncated), ShouldBeTrue)
	})

	Convey("an unterminated line over the maximum fails with ErrLineTooLong", t, func() {
		buf := NewStreamBufferSize(strings.NewReader(strings.Repeat("a", 1<<20)), 1024)
		_, err := buf.ReadLine()
		So(errors.Is(err, ErrLineTooLong), ShouldBeTrue)
	})

	Convey("the length bound does not depend on how delivery is chunked", t, func() {
		const maxLine = 1024

		over := strings.Repeat("a", maxLine+10) + "\r\n"
		for _, r := range []io.Reader{strings.NewReader(over), oneByteChunks(over)} {
			buf := NewStreamBufferSize(r, maxLine)
			_, err := buf.ReadLine()
			So(errors.Is(err, ErrLineTooLong), ShouldBeTrue)
		}

		atLimit := strings.Repeat("a", maxLine) + "\r\n"
		for _, r := range []io.Reader{strings.NewReader(atLimit), oneByteChunks(atLimit)} {
			buf := NewStreamBufferSize(r, maxLine)
			line, err := buf.ReadLine()
			So(err, ShouldBeNil)
			So(len(line), ShouldEqual, maxLine+len(CRLF))
		}
	})

	Convey("a bare CRLF is a valid empty line", t, func() {
		buf := NewStreamBuffer(strings.NewReader("\r\nrest"))
		line, err := buf.ReadLine()
		So(err, ShouldBeNil)
		So(string(line), ShouldEqual, "\r\n")
	})
}

func TestReadAvailable(t *testing.T) {
	Convey("ReadAvailable returns what arrived, then zero at end-of-stream", t, func() {
		buf := NewStreamBuffer(strings.NewReader("abc"))
		p := make([]byte, 10)

		n, err := buf.ReadAvailable(p)
		So(err, ShouldBeNil)
		So(n, ShouldEqual, 3)
		So(string(p[:n]), ShouldEqual, "abc")

		n, err = buf.ReadAvailable(p)
		So(err, ShouldBeNil)
		So(n, ShouldEqual, 0)
	})

	Convey("ReadAvailable drains pending bytes before touching the transport", t, func() {
		buf := NewStreamBuffer(strings.NewReader("abcdef"))
		head := make([]byte, 2)
		So(buf.ReadFull(head), ShouldBeNil)
		So(buf.Buffered(), ShouldEqual, 4)

		p := make([]byte, 2)
		n, err := buf.ReadAvailable(p)
		So(err, ShouldBeNil)
		So(n, ShouldEqual, 2)
		So(string(p), ShouldEqual, "cd")
	})
}

func TestReset(t *testing.T) {
	Convey("Reset discards pending bytes from the old transport", t, func() {
		buf := NewStreamBuffer(strings.NewReader("stale-one\r\nstale-two\r\n"))
		line, err := buf.ReadLine()
		So(err, ShouldBeNil)
		So(string(line), ShouldEqual, "stale-one\r\n")
		So(buf.Buffered(), ShouldBeGreaterThan, 0)

		buf.Reset(strings.NewReader("fresh\r\n"))
		So(buf.Buffered(), ShouldEqual, 0)
		line, err = buf.ReadLine()
		So(err, ShouldBeNil)
		So(string(line), ShouldEqual, "fresh\r\n")
	})
}
