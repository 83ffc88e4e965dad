// Package server provides the raw-TCP diary server.
//
// Each accepted connection carries exactly one request: the server reads and
// parses it with pkg/http1, dispatches through the route table, writes the
// framed response, and closes the connection. A goroutine per connection with
// read and write deadlines keeps a stalled peer from holding resources.
package server
