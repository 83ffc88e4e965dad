package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/daybook.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite storage backend. It initializes the
// schema and enables WAL mode if configured.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "storage.sqlite")

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// initialize sets up the database schema and enables WAL mode.
func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError("sqlite", "enable_wal", err)
		}
		s.logger.Debug("WAL mode enabled")
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// CreateUser inserts a new user row.
func (s *SQLiteStore) CreateUser(ctx context.Context, username, passwordHash string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, password) VALUES (?, ?)",
		username, passwordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return NewStorageError("sqlite", "create_user", err)
	}
	return nil
}

// VerifyCredentials resolves a (username, password hash) pair to a user id.
func (s *SQLiteStore) VerifyCredentials(ctx context.Context, username, passwordHash string) (int64, bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM users WHERE username = ? AND password = ?",
		username, passwordHash,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, NewStorageError("sqlite", "verify_credentials", err)
	}
	return id, true, nil
}

// UsernameExists reports whether a username is already registered.
func (s *SQLiteStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE username = ?", username,
	).Scan(&count)
	if err != nil {
		return false, NewStorageError("sqlite", "username_exists", err)
	}
	return count > 0, nil
}

// ResetPassword replaces a user's password hash.
func (s *SQLiteStore) ResetPassword(ctx context.Context, username, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET password = ? WHERE username = ?",
		passwordHash, username,
	)
	if err != nil {
		return NewStorageError("sqlite", "reset_password", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return NewStorageError("sqlite", "reset_password", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertEntry creates a diary entry for the user.
func (s *SQLiteStore) InsertEntry(ctx context.Context, userID int64, title, content, entryDate string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO entries (user_id, title, content, entry_date) VALUES (?, ?, ?, ?)",
		userID, title, content, entryDate,
	)
	if err != nil {
		return NewStorageError("sqlite", "insert_entry", err)
	}
	return nil
}

const entryColumns = "id, title, content, COALESCE(entry_date, ''), created_at"

// FetchEntries returns all of the user's entries, newest first.
func (s *SQLiteStore) FetchEntries(ctx context.Context, userID int64) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID,
	)
	if err != nil {
		return nil, NewStorageError("sqlite", "fetch_entries", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// UpdateEntry rewrites an entry owned by the user.
func (s *SQLiteStore) UpdateEntry(ctx context.Context, entryID, userID int64, title, content, entryDate string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE entries SET title = ?, content = ?, entry_date = ? WHERE id = ? AND user_id = ?",
		title, content, entryDate, entryID, userID,
	)
	if err != nil {
		return NewStorageError("sqlite", "update_entry", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return NewStorageError("sqlite", "update_entry", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEntry removes an entry owned by the user.
func (s *SQLiteStore) DeleteEntry(ctx context.Context, entryID, userID int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM entries WHERE id = ? AND user_id = ?",
		entryID, userID,
	)
	if err != nil {
		return NewStorageError("sqlite", "delete_entry", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return NewStorageError("sqlite", "delete_entry", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchEntries returns the user's entries whose title or content contains
// keyword, matched case-insensitively, newest first. LIKE wildcards in the
// keyword are escaped so the match is a plain substring match.
func (s *SQLiteStore) SearchEntries(ctx context.Context, userID int64, keyword string) ([]Entry, error) {
	pattern := "%" + escapeLike(keyword) + "%"
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE user_id = ? "+
			`AND (LOWER(title) LIKE LOWER(?) ESCAPE '\' OR LOWER(content) LIKE LOWER(?) ESCAPE '\') `+
			"ORDER BY created_at DESC, id DESC",
		userID, pattern, pattern,
	)
	if err != nil {
		return nil, NewStorageError("sqlite", "search_entries", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Checkpoint flushes the WAL into the main database file and runs the
// query-planner optimizer. Invoked by the maintenance scheduler.
func (s *SQLiteStore) Checkpoint(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
		return NewStorageError("sqlite", "wal_checkpoint", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
		return NewStorageError("sqlite", "optimize", err)
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Title, &e.Content, &e.EntryDate, &e.CreatedAt); err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "scan", err)
	}
	return entries, nil
}

// escapeLike escapes LIKE wildcards and the escape character itself.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
// modernc.org/sqlite surfaces constraint violations through the error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
