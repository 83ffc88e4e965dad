package http1

import (
	"bytes"
	"io"
	"strconv"
)

// Limits bounds how much of a request the reader will accumulate.
type Limits struct {
	// MaxHeaderBytes is the maximum size of the request line plus headers,
	// including the terminating blank line.
	// Default: 65536 (64 KiB)
	MaxHeaderBytes int64

	// MaxBodyBytes is the maximum declared Content-Length the reader will
	// accept. A larger declaration aborts the request before the body is
	// read.
	// Default: 10485760 (10 MiB)
	MaxBodyBytes int64
}

// Default limit values.
const (
	DefaultMaxHeaderBytes = 64 << 10
	DefaultMaxBodyBytes   = 10 << 20
)

// DefaultLimits returns the default reader limits.
func DefaultLimits() Limits {
	return Limits{
		MaxHeaderBytes: DefaultMaxHeaderBytes,
		MaxBodyBytes:   DefaultMaxBodyBytes,
	}
}

// crlf2 terminates the header block.
var crlf2 = []byte("\r\n\r\n")

// readChunkSize is the per-read buffer size. Correctness never depends on it;
// the reader reassembles arbitrarily fragmented streams.
const readChunkSize = 4096

// ReadRequest reads exactly one complete request from r and parses it.
//
// It accumulates bytes until the header terminator is found, parses the
// header block, then reads the body until the declared Content-Length is
// reached or the peer closes the connection (a short body at EOF is returned
// as-is). An absent Content-Length means an empty body; a non-numeric value
// is a ParseError. A declared length above limits.MaxBodyBytes aborts with a
// SizeLimitError without reading further. Any Transfer-Encoding header is
// rejected: chunked encoding is not supported.
func ReadRequest(r io.Reader, limits Limits) (*Request, error) {
	if limits.MaxHeaderBytes <= 0 {
		limits.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if limits.MaxBodyBytes <= 0 {
		limits.MaxBodyBytes = DefaultMaxBodyBytes
	}

	buf := make([]byte, 0, readChunkSize)
	chunk := make([]byte, readChunkSize)

	// Read until the header terminator appears. The search restarts a few
	// bytes before the previous end so a terminator split across reads is
	// still found.
	headerEnd := -1
	scanned := 0
	for {
		if i := bytes.Index(buf[scanned:], crlf2); i >= 0 {
			headerEnd = scanned + i
			break
		}
		if scanned = len(buf) - len(crlf2) + 1; scanned < 0 {
			scanned = 0
		}
		if int64(len(buf)) > limits.MaxHeaderBytes {
			return nil, NewSizeLimitError("header", limits.MaxHeaderBytes, int64(len(buf)))
		}

		n, err := r.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			continue
		}
		if err == io.EOF {
			return nil, NewParseError("connection closed before headers were complete", nil)
		}
		if err != nil {
			return nil, NewParseError("read failed", err)
		}
	}
	if int64(headerEnd+len(crlf2)) > limits.MaxHeaderBytes {
		return nil, NewSizeLimitError("header", limits.MaxHeaderBytes, int64(headerEnd+len(crlf2)))
	}

	headerBlock := string(buf[:headerEnd])
	body := buf[headerEnd+len(crlf2):]

	req, err := parseRequest(headerBlock, nil)
	if err != nil {
		return nil, err
	}
	if req.Headers.Has("Transfer-Encoding") {
		return nil, NewParseError("transfer encodings are not supported", nil)
	}

	contentLength, err := parseContentLength(req.Headers)
	if err != nil {
		return nil, err
	}
	if contentLength > limits.MaxBodyBytes {
		return nil, NewSizeLimitError("body", limits.MaxBodyBytes, contentLength)
	}

	// The bytes already past the header terminator are the body prefix.
	if int64(len(body)) > contentLength {
		body = body[:contentLength]
	}
	for int64(len(body)) < contentLength {
		n, err := r.Read(chunk)
		if n > 0 {
			remaining := contentLength - int64(len(body))
			if int64(n) > remaining {
				n = int(remaining)
			}
			body = append(body, chunk[:n]...)
		}
		if err == io.EOF {
			break // short body on peer close is accepted as-is
		}
		if err != nil {
			return nil, NewParseError("read failed", err)
		}
	}

	req.Body = body
	return req, nil
}

// parseContentLength extracts and validates Content-Length. Absence means 0.
func parseContentLength(h Headers) (int64, error) {
	raw := h.Get("Content-Length")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, NewParseError("invalid Content-Length", err)
	}
	return n, nil
}
