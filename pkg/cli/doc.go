// Package cli provides shared helpers for the daybook command-line
// interface: signal handling and typed command errors.
package cli
