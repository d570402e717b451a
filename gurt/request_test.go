package gurt

import (
	"errors"
	"strings"
	"testing"
)

func TestReadRequest(t *testing.T) {
	input := "POST /submit GURT/1.0.0\r\n" +
		"host: example.web\r\n" +
		"content-type: application/json\r\n" +
		"content-length: 9\r\n" +
		"user-agent: gurtle/1.0\r\n" +
		"\r\n" +
		`{"a":"b"}`
	req, err := ReadRequest(NewStreamBuffer(strings.NewReader(input)))
	if err != nil {
		t.Fatalf("ReadRequest() error = %v", err)
	}
	if req.Method != MethodPost || req.Path != "/submit" {
		t.Errorf("request line = %s %s", req.Method, req.Path)
	}
	if req.Host != "example.web" || req.ContentType != "application/json" {
		t.Errorf("headers = host %q, content-type %q", req.Host, req.ContentType)
	}
	if string(req.Body) != `{"a":"b"}` {
		t.Errorf("body = %q", req.Body)
	}
}

func TestReadRequestErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "unknown method", input: "BREW /pot GURT/1.0.0\r\n\r\n"},
		{name: "wrong version", input: "GET / HTTP/1.1\r\n\r\n", wantErr: ErrProtocolMismatch},
		{name: "short request line", input: "GET /\r\n\r\n"},
		{name: "bad content-length", input: "GET / GURT/1.0.0\r\ncontent-length: x\r\n\r\n"},
		{name: "truncated headers", input: "GET / GURT/1.0.0\r\nhost: a.web\r\n", wantErr: ErrTruncated},
		{name: "truncated body", input: "GET / GURT/1.0.0\r\ncontent-length: 5\r\n\r\nab", wantErr: ErrTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRequest(NewStreamBuffer(strings.NewReader(tt.input)))
			if err == nil {
				t.Fatal("ReadRequest() should fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("ReadRequest() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseMethod(t *testing.T) {
	for m := MethodHandshake; m <= MethodPatch; m++ {
		parsed, err := ParseMethod(m.String())
		if err != nil || parsed != m {
			t.Errorf("ParseMethod(%q) = %v, %v", m.String(), parsed, err)
		}
	}
	if _, err := ParseMethod("get"); err == nil {
		t.Error("ParseMethod should reject lowercase tokens")
	}
	if _, err := ParseMethod("BREW"); err == nil {
		t.Error("ParseMethod should reject unknown tokens")
	}
}

func TestStatusText(t *testing.T) {
	if got := StatusOK.Text(); got != "OK" {
		t.Errorf("StatusOK.Text() = %q", got)
	}
	if got := StatusCode(999).Text(); got != "UNKNOWN" {
		t.Errorf("StatusCode(999).Text() = %q", got)
	}
}
