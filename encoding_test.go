package main

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestCompressDecompress(t *testing.T) {
	payload := strings.Repeat("gurt response body ", 200)

	for _, lib := range []string{"gzip", "deflate", "zstd"} {
		t.Run(lib, func(t *testing.T) {
			compressed, err := CompressData(strings.NewReader(payload), lib)
			if err != nil {
				t.Fatalf("CompressData(%s) error = %v", lib, err)
			}
			decoded, err := DecompressBody(compressed, lib)
			if err != nil {
				t.Fatalf("DecompressBody(%s) error = %v", lib, err)
			}
			out, err := io.ReadAll(decoded)
			if err != nil {
				t.Fatalf("reading decompressed body: %v", err)
			}
			if string(out) != payload {
				t.Errorf("%s round trip corrupted the body", lib)
			}
		})
	}
}

func TestCompressDataUnknownEncoding(t *testing.T) {
	out, err := CompressData(bytes.NewReader([]byte("x")), "none")
	if err != nil || out != nil {
		t.Errorf("CompressData(none) = %v, %v, want nil, nil", out, err)
	}
}

func TestDecompressBodyUnknownEncoding(t *testing.T) {
	if _, err := DecompressBody(strings.NewReader("x"), "br"); err == nil {
		t.Error("DecompressBody should reject unsupported encodings")
	}
}
