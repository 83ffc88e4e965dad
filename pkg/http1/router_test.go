package http1

import (
	"context"
	"testing"
)

func newTestRequest(method, path, rawQuery string) *Request {
	return &Request{
		Method:   method,
		Path:     path,
		RawQuery: rawQuery,
		Proto:    "HTTP/1.1",
		Headers:  Headers{},
	}
}

func TestRouter_ExactMatch(t *testing.T) {
	r := NewRouter()
	r.Handle("GET", "/entry/view", func(ctx context.Context, req *Request) *Response {
		return Text(200, "view")
	})
	r.Handle("POST", "/entry/create", func(ctx context.Context, req *Request) *Response {
		return Text(200, "create")
	})

	resp := r.Dispatch(context.Background(), newTestRequest("GET", "/entry/view", ""))
	if string(resp.Body) != "view" {
		t.Errorf("GET /entry/view body = %q", resp.Body)
	}

	// Same path, different method: no match.
	resp = r.Dispatch(context.Background(), newTestRequest("POST", "/entry/view", ""))
	if resp.Status != 404 {
		t.Errorf("POST /entry/view status = %d, want 404", resp.Status)
	}
}

func TestRouter_NoPrefixMatching(t *testing.T) {
	r := NewRouter()
	r.Handle("GET", "/entry", func(ctx context.Context, req *Request) *Response {
		return Text(200, "entry")
	})

	for _, path := range []string{"/entry/view", "/entry/", "/entryx", "/ENTRY"} {
		resp := r.Dispatch(context.Background(), newTestRequest("GET", path, ""))
		if resp.Status != 404 {
			t.Errorf("GET %s status = %d, want 404 (exact matching only)", path, resp.Status)
		}
	}
}

func TestRouter_QueryDoesNotAffectMatching(t *testing.T) {
	r := NewRouter()
	r.Handle("GET", "/entry/delete", func(ctx context.Context, req *Request) *Response {
		return Text(200, req.Query().Value("id"))
	})

	resp := r.Dispatch(context.Background(), newTestRequest("GET", "/entry/delete", "id=42"))
	if resp.Status != 200 || string(resp.Body) != "42" {
		t.Errorf("dispatch with query = %d %q", resp.Status, resp.Body)
	}
}

func TestRouter_DefaultNotFound(t *testing.T) {
	r := NewRouter()
	resp := r.Dispatch(context.Background(), newTestRequest("GET", "/nope", ""))
	if resp.Status != 404 {
		t.Fatalf("status = %d, want 404", resp.Status)
	}
	if string(resp.Body) != "<h1>404 Not Found</h1>" {
		t.Errorf("body = %q", resp.Body)
	}
	if resp.ContentType != "text/html" {
		t.Errorf("content type = %q, want text/html", resp.ContentType)
	}
}
