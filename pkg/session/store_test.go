package session

import (
	"sync"
	"testing"
)

func TestStore_CreateLookupInvalidate(t *testing.T) {
	s := NewStore()

	token, err := s.Create(7)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if len(token) != TokenLength {
		t.Fatalf("token length = %d, want %d", len(token), TokenLength)
	}
	for _, c := range token {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			t.Fatalf("token %q contains non-lowercase-hex character %q", token, c)
		}
	}

	if uid, ok := s.Lookup(token); !ok || uid != 7 {
		t.Errorf("Lookup(%q) = %d, %v; want 7, true", token, uid, ok)
	}

	s.Invalidate(token)
	if _, ok := s.Lookup(token); ok {
		t.Error("token still resolves after Invalidate")
	}
}

func TestStore_LookupUnknown(t *testing.T) {
	s := NewStore()
	for _, token := range []string{"", "garbage", "0123456789abcdef0123456789abcdef"} {
		if _, ok := s.Lookup(token); ok {
			t.Errorf("Lookup(%q) reported a session", token)
		}
	}
}

func TestStore_InvalidateIsIdempotent(t *testing.T) {
	s := NewStore()
	token, err := s.Create(1)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	// Removing an unknown or already-removed token must be a silent no-op.
	s.Invalidate("unknown-token")
	s.Invalidate(token)
	s.Invalidate(token)

	if s.Len() != 0 {
		t.Errorf("Len() = %d after invalidating everything", s.Len())
	}
}

func TestStore_TokenUniqueness(t *testing.T) {
	s := NewStore()
	const n = 10000

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		token, err := s.Create(int64(i + 1))
		if err != nil {
			t.Fatalf("Create() failed at %d: %v", i, err)
		}
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token after %d creations: %s", i, token)
		}
		seen[token] = struct{}{}
	}
	if s.Len() != n {
		t.Errorf("Len() = %d, want %d", s.Len(), n)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()
	const workers = 64

	tokens := make([]string, workers)
	var wg sync.WaitGroup

	// Concurrent creates: every worker must end up with its own entry.
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token, err := s.Create(int64(i + 1))
			if err != nil {
				t.Errorf("Create() failed: %v", err)
				return
			}
			tokens[i] = token
		}(i)
	}
	wg.Wait()

	if s.Len() != workers {
		t.Fatalf("Len() = %d after %d concurrent creates", s.Len(), workers)
	}
	for i, token := range tokens {
		if uid, ok := s.Lookup(token); !ok || uid != int64(i+1) {
			t.Errorf("Lookup(%q) = %d, %v; want %d, true", token, uid, ok, i+1)
		}
	}

	// Concurrent lookups and invalidations over the same table.
	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.Lookup(tokens[(i+1)%workers])
		}(i)
		go func(i int) {
			defer wg.Done()
			s.Invalidate(tokens[i])
		}(i)
	}
	wg.Wait()

	if s.Len() != 0 {
		t.Errorf("Len() = %d after invalidating every token", s.Len())
	}
}
