// Package http1 implements the wire-level HTTP/1.1 subset Daybook speaks
// directly over TCP: byte-stream framing, request parsing, form decoding,
// response framing, and exact-match routing.
//
// The package deliberately does not use net/http. Every connection carries
// exactly one request; every response sets Connection: close. Keep-alive,
// pipelining, chunked transfer encoding, and HTTP/2 are out of scope.
//
// The reader is fragmentation-invariant: a request delivered one byte at a
// time parses identically to one delivered in a single read. Framing errors
// are reported as typed errors (ParseError, SizeLimitError) so the server
// can answer 400 or 413 before any handler runs.
package http1
