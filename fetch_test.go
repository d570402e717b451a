package main

import "testing"

func TestParseGurtURL(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantAddr string
		wantPath string
		wantErr  bool
	}{
		{name: "default port", raw: "gurt://example.web/index.html", wantAddr: "example.web:4878", wantPath: "/index.html"},
		{name: "explicit port", raw: "gurt://example.web:9000/api", wantAddr: "example.web:9000", wantPath: "/api"},
		{name: "bare host", raw: "gurt://example.web", wantAddr: "example.web:4878", wantPath: "/"},
		{name: "query preserved", raw: "gurt://example.web/search?q=go", wantAddr: "example.web:4878", wantPath: "/search?q=go"},
		{name: "wrong scheme", raw: "http://example.com/", wantErr: true},
		{name: "no host", raw: "gurt:///path", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, path, err := ParseGurtURL(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseGurtURL(%q) should fail", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseGurtURL(%q) error = %v", tt.raw, err)
			}
			if addr != tt.wantAddr || path != tt.wantPath {
				t.Errorf("ParseGurtURL(%q) = %q, %q, want %q, %q", tt.raw, addr, path, tt.wantAddr, tt.wantPath)
			}
		})
	}
}
