// Package wireclient is a deliberately low-level HTTP/1.1 client for tests
// and examples. It writes raw request bytes over a fresh TCP connection and
// reads until the server closes, mirroring the one-request-per-connection
// protocol instead of going through net/http.
package wireclient

import (
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// Response is a response read off the wire.
type Response struct {
	Status  int
	Headers map[string]string // lower-cased names
	Body    string
}

// Client issues single-request connections against one server address.
type Client struct {
	Addr    string
	Timeout time.Duration

	// ChunkSize, when positive, splits request writes into fragments of that
	// many bytes to exercise reassembly on the server side.
	ChunkSize int
}

// New creates a client for the address with a 5 second timeout.
func New(addr string) *Client {
	return &Client{Addr: addr, Timeout: 5 * time.Second}
}

// Get issues a GET request. token may be empty.
func (c *Client) Get(path, token string) (*Response, error) {
	return c.Do(requestBytes("GET", path, token, ""))
}

// PostForm issues a POST with a form-encoded body. token may be empty.
func (c *Client) PostForm(path, token, body string) (*Response, error) {
	return c.Do(requestBytes("POST", path, token, body))
}

// Do writes the raw request and reads the complete response.
func (c *Client) Do(raw string) (*Response, error) {
	conn, err := net.DialTimeout("tcp", c.Addr, c.Timeout)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", c.Addr, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(c.Timeout)
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, err
	}

	if c.ChunkSize > 0 {
		for i := 0; i < len(raw); i += c.ChunkSize {
			end := i + c.ChunkSize
			if end > len(raw) {
				end = len(raw)
			}
			if _, err := conn.Write([]byte(raw[i:end])); err != nil {
				return nil, fmt.Errorf("write: %w", err)
			}
		}
	} else {
		if _, err := conn.Write([]byte(raw)); err != nil {
			return nil, fmt.Errorf("write: %w", err)
		}
	}

	data, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return parseResponse(string(data))
}

// requestBytes assembles a raw HTTP/1.1 request.
func requestBytes(method, path, token, body string) string {
	var sb strings.Builder
	sb.WriteString(method)
	sb.WriteString(" ")
	sb.WriteString(path)
	sb.WriteString(" HTTP/1.1\r\nHost: daybook\r\n")
	if token != "" {
		sb.WriteString("Session-Token: ")
		sb.WriteString(token)
		sb.WriteString("\r\n")
	}
	if method == "POST" {
		sb.WriteString("Content-Type: application/x-www-form-urlencoded\r\n")
		fmt.Fprintf(&sb, "Content-Length: %d\r\n", len(body))
	}
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return sb.String()
}

// parseResponse splits a complete response into status, headers, and body.
func parseResponse(data string) (*Response, error) {
	headerEnd := strings.Index(data, "\r\n\r\n")
	if headerEnd < 0 {
		return nil, fmt.Errorf("no header terminator in %q", data)
	}

	lines := strings.Split(data[:headerEnd], "\r\n")
	var status int
	if _, err := fmt.Sscanf(lines[0], "HTTP/1.1 %d", &status); err != nil {
		return nil, fmt.Errorf("bad status line %q", lines[0])
	}

	headers := make(map[string]string, len(lines)-1)
	for _, line := range lines[1:] {
		colon := strings.Index(line, ":")
		if colon <= 0 {
			continue
		}
		headers[strings.ToLower(line[:colon])] = strings.TrimSpace(line[colon+1:])
	}

	return &Response{
		Status:  status,
		Headers: headers,
		Body:    data[headerEnd+4:],
	}, nil
}
