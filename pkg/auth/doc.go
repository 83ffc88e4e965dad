// Package auth provides the pluggable password hashing collaborator.
//
// The server core never inspects hash representations; it hashes the
// submitted password and hands the result to the storage layer for
// comparison. The algorithm behind the Hasher interface is a deployment
// decision. The default is PBKDF2-SHA256 with a deployment-wide salt that
// must be supplied through configuration; there is no compiled-in default
// secret.
package auth
