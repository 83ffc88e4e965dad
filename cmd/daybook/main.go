// Daybook is a single-page diary application served over a hand-rolled
// HTTP/1.1 layer on raw TCP sockets.
//
// It provides:
//   - Login-gated CRUD operations on diary entries
//   - In-memory session tokens issued on login
//   - SQLite or in-memory persistence
//   - Prometheus metrics on a separate operator listener
//
// Usage:
//
//	# Start the server with the default configuration file
//	daybook run
//
//	# Start with a custom configuration file
//	daybook run --config /etc/daybook/config.yaml
//
//	# Validate configuration without starting the server
//	daybook run --dry-run
//
//	# Show version information
//	daybook version
package main

func main() {
	Execute()
}
