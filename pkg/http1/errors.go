package http1

import "fmt"

// ParseError reports a malformed request: a bad request line, a bad header
// line, a non-numeric Content-Length, or an unsupported transfer encoding.
// The server answers 400 and closes the connection without dispatching.
type ParseError struct {
	Reason string // what was malformed ("request line", "header", ...)
	Cause  error  // underlying error, if any
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Reason)
}

// Unwrap returns the underlying cause error.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new ParseError.
func NewParseError(reason string, cause error) *ParseError {
	return &ParseError{Reason: reason, Cause: cause}
}

// SizeLimitError reports a declared or accumulated size above a configured
// limit. The request is aborted before the offending bytes are read; the
// server answers 413 and closes the connection.
type SizeLimitError struct {
	What     string // which limit was hit ("header", "body")
	Limit    int64  // configured maximum in bytes
	Declared int64  // declared or observed size in bytes
}

// Error implements the error interface.
func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("%s size %d exceeds limit %d", e.What, e.Declared, e.Limit)
}

// NewSizeLimitError creates a new SizeLimitError.
func NewSizeLimitError(what string, limit, declared int64) *SizeLimitError {
	return &SizeLimitError{What: what, Limit: limit, Declared: declared}
}
