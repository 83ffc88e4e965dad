package http1

import (
	"strings"
)

// Headers is a case-insensitive header mapping. Keys are stored lower-cased.
// On duplicate header names the first occurrence wins; later occurrences are
// dropped. This is an explicit policy, not an accident of map iteration.
type Headers map[string]string

// Get returns the value for the given header name, matching case-insensitively.
// It returns "" if the header is absent.
func (h Headers) Get(name string) string {
	return h[strings.ToLower(name)]
}

// Has reports whether the header is present, matching case-insensitively.
func (h Headers) Has(name string) bool {
	_, ok := h[strings.ToLower(name)]
	return ok
}

// add inserts a header unless a header with the same name is already present.
func (h Headers) add(name, value string) {
	key := strings.ToLower(name)
	if _, ok := h[key]; !ok {
		h[key] = value
	}
}

// Request is a fully read, structured HTTP request. A Request is owned by the
// connection goroutine that read it and is never shared across connections.
type Request struct {
	// Method is the request method token (e.g. "GET", "POST").
	Method string

	// Path is the request target with the query string removed.
	Path string

	// RawQuery is the undecoded query string (without the leading "?").
	RawQuery string

	// Proto is the protocol version from the request line (e.g. "HTTP/1.1").
	Proto string

	// Headers holds the request headers, first-occurrence-wins.
	Headers Headers

	// Body is the raw request body, read up to the declared Content-Length.
	Body []byte

	query     Params
	queryDone bool
	form      Params
	formDone  bool
}

// Query returns the decoded query parameters in order of appearance.
// Decoding happens on first use and is cached.
func (r *Request) Query() Params {
	if !r.queryDone {
		r.query = DecodeForm(r.RawQuery)
		r.queryDone = true
	}
	return r.query
}

// Form returns the body decoded as application/x-www-form-urlencoded pairs.
// Decoding happens on first use and is cached; handlers that do not need the
// form never pay for it.
func (r *Request) Form() Params {
	if !r.formDone {
		r.form = DecodeForm(string(r.Body))
		r.formDone = true
	}
	return r.form
}

// parseRequestLine splits "METHOD target HTTP/x.y" into its three parts and
// separates the target into path and raw query at the first "?".
func parseRequestLine(line string) (method, path, rawQuery, proto string, err error) {
	parts := strings.Split(line, " ")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", "", NewParseError("malformed request line", nil)
	}
	method = parts[0]
	proto = parts[2]

	target := parts[1]
	if i := strings.IndexByte(target, '?'); i >= 0 {
		path = target[:i]
		rawQuery = target[i+1:]
	} else {
		path = target
	}
	return method, path, rawQuery, proto, nil
}

// parseRequest turns a complete header block (without the trailing blank line)
// and body into a Request. The header block uses CRLF line endings.
func parseRequest(headerBlock string, body []byte) (*Request, error) {
	lines := strings.Split(headerBlock, "\r\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil, NewParseError("empty request", nil)
	}

	method, path, rawQuery, proto, err := parseRequestLine(lines[0])
	if err != nil {
		return nil, err
	}

	headers := make(Headers, len(lines)-1)
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		colon := strings.IndexByte(line, ':')
		if colon <= 0 {
			return nil, NewParseError("malformed header line", nil)
		}
		name := line[:colon]
		value := strings.TrimSpace(line[colon+1:])
		headers.add(name, value)
	}

	return &Request{
		Method:   method,
		Path:     path,
		RawQuery: rawQuery,
		Proto:    proto,
		Headers:  headers,
		Body:     body,
	}, nil
}
