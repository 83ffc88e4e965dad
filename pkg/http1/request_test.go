package http1

import (
	"errors"
	"testing"
)

func TestParseRequest_RequestLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantErr  bool
		method   string
		path     string
		rawQuery string
	}{
		{name: "plain", line: "GET / HTTP/1.1", method: "GET", path: "/", rawQuery: ""},
		{name: "with query", line: "GET /entry/delete?id=3 HTTP/1.1", method: "GET", path: "/entry/delete", rawQuery: "id=3"},
		{name: "query keeps later question marks", line: "GET /entry/search?q=a?b HTTP/1.1", method: "GET", path: "/entry/search", rawQuery: "q=a?b"},
		{name: "missing version", line: "GET /", wantErr: true},
		{name: "missing target", line: "GET", wantErr: true},
		{name: "empty", line: "", wantErr: true},
		{name: "extra space", line: "GET /  HTTP/1.1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := parseRequest(tt.line, nil)
			if tt.wantErr {
				var pe *ParseError
				if !errors.As(err, &pe) {
					t.Fatalf("parseRequest(%q) error = %v, want *ParseError", tt.line, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRequest(%q) failed: %v", tt.line, err)
			}
			if req.Method != tt.method || req.Path != tt.path || req.RawQuery != tt.rawQuery {
				t.Errorf("got (%q %q %q), want (%q %q %q)",
					req.Method, req.Path, req.RawQuery, tt.method, tt.path, tt.rawQuery)
			}
		})
	}
}

func TestParseRequest_HeaderCaseInsensitive(t *testing.T) {
	block := "GET / HTTP/1.1\r\ncOnTeNt-LeNgTh: 12\r\nSession-Token: abc"
	req, err := parseRequest(block, nil)
	if err != nil {
		t.Fatalf("parseRequest() failed: %v", err)
	}
	for _, name := range []string{"Content-Length", "content-length", "CONTENT-LENGTH"} {
		if got := req.Headers.Get(name); got != "12" {
			t.Errorf("Get(%q) = %q, want 12", name, got)
		}
	}
	if got := req.Headers.Get("session-token"); got != "abc" {
		t.Errorf("Get(session-token) = %q, want abc", got)
	}
}

func TestParseRequest_DuplicateHeaderFirstWins(t *testing.T) {
	block := "GET / HTTP/1.1\r\nX-Tag: first\r\nX-Tag: second\r\nx-tag: third"
	req, err := parseRequest(block, nil)
	if err != nil {
		t.Fatalf("parseRequest() failed: %v", err)
	}
	if got := req.Headers.Get("X-Tag"); got != "first" {
		t.Errorf("duplicate header value = %q, want first occurrence", got)
	}
}

func TestParseRequest_MalformedHeader(t *testing.T) {
	for _, block := range []string{
		"GET / HTTP/1.1\r\nno-colon-here",
		"GET / HTTP/1.1\r\n: empty-name",
	} {
		if _, err := parseRequest(block, nil); err == nil {
			t.Errorf("parseRequest(%q) succeeded, want error", block)
		}
	}
}

func TestRequest_QueryAndFormAreLazyAndCached(t *testing.T) {
	req := &Request{
		RawQuery: "q=hello+world",
		Body:     []byte("title=a%20b&content=c"),
		Headers:  Headers{},
	}

	q := req.Query()
	if got := q.Value("q"); got != "hello world" {
		t.Errorf("query q = %q, want %q", got, "hello world")
	}

	form := req.Form()
	if got := form.Value("title"); got != "a b" {
		t.Errorf("form title = %q, want %q", got, "a b")
	}
	if got := form.Value("content"); got != "c" {
		t.Errorf("form content = %q, want c", got)
	}

	// Mutating the body after the first decode must not change the cached
	// result.
	req.Body = []byte("title=changed")
	if got := req.Form().Value("title"); got != "a b" {
		t.Errorf("form was re-decoded, got title %q", got)
	}
}
