package storage

import "context"

// Entry is one diary entry. The wire layer treats all fields except ID as
// opaque strings; dates are formatted by the backend ("2006-01-02" for
// entry_date, "2006-01-02 15:04:05" for created_at).
type Entry struct {
	ID        int64
	Title     string
	Content   string
	EntryDate string
	CreatedAt string
}

// Store is the storage collaborator consumed by the request handlers.
//
// Entry mutations are scoped to the owning user: updating or deleting an
// entry that does not exist or belongs to another user returns ErrNotFound.
// Fetch and search results are ordered newest first.
type Store interface {
	// CreateUser inserts a new user. A taken username returns
	// ErrDuplicateUsername.
	CreateUser(ctx context.Context, username, passwordHash string) error

	// VerifyCredentials resolves a (username, password hash) pair to the
	// user id, or ok=false when no user matches.
	VerifyCredentials(ctx context.Context, username, passwordHash string) (int64, bool, error)

	// UsernameExists reports whether a username is already registered.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// ResetPassword replaces a user's password hash. An unknown username
	// returns ErrNotFound.
	ResetPassword(ctx context.Context, username, passwordHash string) error

	// InsertEntry creates a diary entry for the user.
	InsertEntry(ctx context.Context, userID int64, title, content, entryDate string) error

	// FetchEntries returns all of the user's entries, newest first.
	FetchEntries(ctx context.Context, userID int64) ([]Entry, error)

	// UpdateEntry rewrites an entry owned by the user.
	UpdateEntry(ctx context.Context, entryID, userID int64, title, content, entryDate string) error

	// DeleteEntry removes an entry owned by the user.
	DeleteEntry(ctx context.Context, entryID, userID int64) error

	// SearchEntries returns the user's entries whose title or content
	// contains keyword, matched case-insensitively, newest first.
	SearchEntries(ctx context.Context, userID int64, keyword string) ([]Entry, error)

	// Close releases backend resources.
	Close() error
}
