// Package storage persists users and diary entries behind the Store
// interface. The wire layer treats it as an external collaborator: handlers
// call it only after session authentication, and every outcome crosses the
// boundary as an explicit error value: sentinel errors for expected
// conditions (duplicate username, missing or unowned entry, bad credentials)
// and StorageError for backend failures.
//
// Two backends are provided: SQLiteStore for deployments and MemoryStore for
// tests. A cron-driven Maintainer keeps the SQLite file compact.
package storage
