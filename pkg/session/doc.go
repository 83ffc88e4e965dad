// Package session owns the process-wide table mapping opaque session tokens
// to user ids. The table is the only state shared between connection
// goroutines; all access goes through the Store, which guards it with a
// read/write mutex.
//
// Tokens are 128 bits of cryptographically strong randomness, hex-encoded to
// 32 lowercase characters. The space is treated as effectively unique, so
// creation never checks for collisions. Tokens have no expiry: they live
// until explicit logout or process restart.
package session
