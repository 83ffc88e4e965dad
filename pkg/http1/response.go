package http1

import (
	"io"
	"strconv"
)

// Response is a fully materialized HTTP response. The Content-Length header
// is always the exact byte length of Body; it is computed when the response
// is framed and cannot drift.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// ContentType is the Content-Type header value.
	ContentType string

	// Body is the response body bytes.
	Body []byte

	// extra holds additional headers in insertion order (e.g. Session-Token
	// on a successful login).
	extra []Param
}

// Text builds a plain-text response.
func Text(status int, body string) *Response {
	return &Response{Status: status, ContentType: "text/plain", Body: []byte(body)}
}

// HTML builds a text/html response.
func HTML(status int, body string) *Response {
	return &Response{Status: status, ContentType: "text/html", Body: []byte(body)}
}

// JSON builds an application/json response from pre-encoded bytes.
func JSON(status int, body []byte) *Response {
	return &Response{Status: status, ContentType: "application/json", Body: body}
}

// Bytes builds a response with an explicit content type.
func Bytes(status int, contentType string, body []byte) *Response {
	return &Response{Status: status, ContentType: contentType, Body: body}
}

// SetHeader adds a custom header to the response. Content-Type,
// Content-Length and Connection are framed automatically and must not be set
// here.
func (r *Response) SetHeader(name, value string) {
	r.extra = append(r.extra, Param{Key: name, Value: value})
}

// Header returns the value of a previously set custom header, or "".
func (r *Response) Header(name string) string {
	for _, p := range r.extra {
		if p.Key == name {
			return p.Value
		}
	}
	return ""
}

// Frame assembles the complete wire form of the response: status line,
// Content-Type, a Content-Length equal to the exact byte length of the body
// (not its character count), any custom headers, Connection: close, a blank
// line, and the body.
func (r *Response) Frame() []byte {
	reason := StatusText(r.Status)

	b := make([]byte, 0, 128+len(r.Body))
	b = append(b, "HTTP/1.1 "...)
	b = strconv.AppendInt(b, int64(r.Status), 10)
	b = append(b, ' ')
	b = append(b, reason...)
	b = append(b, "\r\nContent-Type: "...)
	b = append(b, r.ContentType...)
	b = append(b, "\r\nContent-Length: "...)
	b = strconv.AppendInt(b, int64(len(r.Body)), 10)
	b = append(b, "\r\n"...)
	for _, p := range r.extra {
		b = append(b, p.Key...)
		b = append(b, ": "...)
		b = append(b, p.Value...)
		b = append(b, "\r\n"...)
	}
	b = append(b, "Connection: close\r\n\r\n"...)
	b = append(b, r.Body...)
	return b
}

// Write sends the framed response to w in a single write.
func (r *Response) Write(w io.Writer) error {
	_, err := w.Write(r.Frame())
	return err
}

// StatusText returns the reason phrase for the status codes the server emits.
func StatusText(code int) string {
	switch code {
	case 200:
		return "OK"
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 404:
		return "Not Found"
	case 405:
		return "Method Not Allowed"
	case 413:
		return "Payload Too Large"
	case 500:
		return "Internal Server Error"
	default:
		return "Unknown"
	}
}
