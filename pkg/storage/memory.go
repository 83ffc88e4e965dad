package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store used by tests and by deployments that do
// not need persistence. It mirrors the SQLite backend's semantics: duplicate
// usernames, ownership scoping, newest-first ordering, and case-insensitive
// substring search.
type MemoryStore struct {
	mu         sync.RWMutex
	nextUserID int64
	nextEntry  int64
	users      map[string]memoryUser // keyed by username
	entries    []memoryEntry

	// now is replaceable so tests can control created_at ordering.
	now func() time.Time
}

type memoryUser struct {
	id           int64
	passwordHash string
}

type memoryEntry struct {
	Entry
	userID  int64
	created time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextUserID: 1,
		nextEntry:  1,
		users:      make(map[string]memoryUser),
		now:        time.Now,
	}
}

// CreateUser inserts a new user.
func (m *MemoryStore) CreateUser(ctx context.Context, username, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[username]; ok {
		return ErrDuplicateUsername
	}
	m.users[username] = memoryUser{id: m.nextUserID, passwordHash: passwordHash}
	m.nextUserID++
	return nil
}

// VerifyCredentials resolves a (username, password hash) pair to a user id.
func (m *MemoryStore) VerifyCredentials(ctx context.Context, username, passwordHash string) (int64, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[username]
	if !ok || u.passwordHash != passwordHash {
		return 0, false, nil
	}
	return u.id, true, nil
}

// UsernameExists reports whether a username is already registered.
func (m *MemoryStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.users[username]
	return ok, nil
}

// ResetPassword replaces a user's password hash.
func (m *MemoryStore) ResetPassword(ctx context.Context, username, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[username]
	if !ok {
		return ErrNotFound
	}
	u.passwordHash = passwordHash
	m.users[username] = u
	return nil
}

// InsertEntry creates a diary entry for the user.
func (m *MemoryStore) InsertEntry(ctx context.Context, userID int64, title, content, entryDate string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	created := m.now()
	m.entries = append(m.entries, memoryEntry{
		Entry: Entry{
			ID:        m.nextEntry,
			Title:     title,
			Content:   content,
			EntryDate: entryDate,
			CreatedAt: created.Format("2006-01-02 15:04:05"),
		},
		userID:  userID,
		created: created,
	})
	m.nextEntry++
	return nil
}

// FetchEntries returns all of the user's entries, newest first.
func (m *MemoryStore) FetchEntries(ctx context.Context, userID int64) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(userID, func(memoryEntry) bool { return true }), nil
}

// UpdateEntry rewrites an entry owned by the user.
func (m *MemoryStore) UpdateEntry(ctx context.Context, entryID, userID int64, title, content, entryDate string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.entries {
		e := &m.entries[i]
		if e.ID == entryID && e.userID == userID {
			e.Title = title
			e.Content = content
			e.EntryDate = entryDate
			return nil
		}
	}
	return ErrNotFound
}

// DeleteEntry removes an entry owned by the user.
func (m *MemoryStore) DeleteEntry(ctx context.Context, entryID, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.entries {
		if m.entries[i].ID == entryID && m.entries[i].userID == userID {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// SearchEntries returns the user's entries whose title or content contains
// keyword, matched case-insensitively, newest first.
func (m *MemoryStore) SearchEntries(ctx context.Context, userID int64, keyword string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	needle := strings.ToLower(keyword)
	return m.collect(userID, func(e memoryEntry) bool {
		return strings.Contains(strings.ToLower(e.Title), needle) ||
			strings.Contains(strings.ToLower(e.Content), needle)
	}), nil
}

// Close is a no-op for the in-memory backend.
func (m *MemoryStore) Close() error {
	return nil
}

// collect gathers matching entries newest first. Callers hold the lock.
func (m *MemoryStore) collect(userID int64, match func(memoryEntry) bool) []Entry {
	out := []Entry{}
	for _, e := range m.entries {
		if e.userID == userID && match(e) {
			out = append(out, e.Entry)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID > out[j].ID
	})
	return out
}
