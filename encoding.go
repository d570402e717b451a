package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// CompressData compresses in with the named encoding. A nil reader is
// returned for "none" or unknown encodings, meaning the body should be sent
// as-is.
func CompressData(in io.Reader, lib string) (io.Reader, error) {
	var buf bytes.Buffer
	switch lib {
	case "deflate":
		writer, err := flate.NewWriter(&buf, flate.BestCompression)
		if err != nil {
			return nil, err
		}
		_, err = io.Copy(writer, in)
		if err != nil {
			writer.Close()
			return nil, err
		}
		writer.Close()
		return &buf, nil
	case "gzip":
		writer := gzip.NewWriter(&buf)
		_, err := io.Copy(writer, in)
		if err != nil {
			writer.Close()
			return nil, err
		}
		writer.Close()
		return &buf, nil
	case "zstd":
		writer, err := zstd.NewWriter(&buf)
		if err != nil {
			return nil, err
		}
		_, err = io.Copy(writer, in)
		if err != nil {
			writer.Close()
			return nil, err
		}
		writer.Close()
		return &buf, nil
	default:
		return nil, nil
	}
}

// DecompressBody decompresses a response body according to its
// content-encoding header value.
func DecompressBody(in io.Reader, lib string) (io.Reader, error) {
	var out bytes.Buffer
	switch lib {
	case "deflate":
		reader := flate.NewReader(in)
		defer reader.Close()
		_, err := io.Copy(&out, reader)
		if err != nil {
			return nil, err
		}
	case "gzip":
		reader, err := gzip.NewReader(in)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer reader.Close()

		_, err = io.Copy(&out, reader)
		if err != nil {
			return nil, fmt.Errorf("gzip decompression failed: %w", err)
		}
	case "zstd":
		reader, err := zstd.NewReader(in)
		if err != nil {
			return nil, err
		}
		defer reader.Close()

		_, err = io.Copy(&out, reader)
		if err != nil {
			return nil, fmt.Errorf("zstd decompression failed: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported compression: %s", lib)
	}

	return &out, nil
}
