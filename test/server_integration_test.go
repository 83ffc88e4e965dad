//go:build integration

package test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"daybook-hq/daybook/internal/wireclient"
	"daybook-hq/daybook/pkg/assets"
	"daybook-hq/daybook/pkg/auth"
	"daybook-hq/daybook/pkg/config"
	"daybook-hq/daybook/pkg/server"
	"daybook-hq/daybook/pkg/session"
	"daybook-hq/daybook/pkg/storage"
)

// startServer runs the full stack on an ephemeral port with a SQLite store.
func startServer(t *testing.T) *wireclient.Client {
	t.Helper()

	sqliteConfig := storage.DefaultSQLiteConfig()
	sqliteConfig.Path = filepath.Join(t.TempDir(), "daybook.db")
	store, err := storage.NewSQLiteStore(sqliteConfig)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	hasher := auth.NewPBKDF2Hasher("integration-salt", 64)
	handlers := server.NewHandlers(store, session.NewStore(), hasher, assets.NewDir(t.TempDir()))

	cfg := &config.ServerConfig{
		ListenAddress:   "127.0.0.1:0",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MaxHeaderBytes:  config.DefaultMaxHeaderBytes,
		MaxBodyBytes:    config.DefaultMaxBodyBytes,
	}
	srv := server.NewServer(cfg, handlers.Routes(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Start(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(10 * time.Second):
			t.Error("server did not stop")
		}
	})

	deadline := time.Now().Add(5 * time.Second)
	for srv.Addr() == "" {
		if time.Now().After(deadline) {
			t.Fatal("server did not start")
		}
		time.Sleep(10 * time.Millisecond)
	}
	return wireclient.New(srv.Addr())
}

func mustPost(t *testing.T, c *wireclient.Client, path, token, body string) *wireclient.Response {
	t.Helper()
	resp, err := c.PostForm(path, token, body)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func mustGet(t *testing.T, c *wireclient.Client, path, token string) *wireclient.Response {
	t.Helper()
	resp, err := c.Get(path, token)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

// TestDiaryLifecycle drives the whole protocol against SQLite: register,
// login, create, edit, search, delete, export, logout.
func TestDiaryLifecycle(t *testing.T) {
	c := startServer(t)

	if resp := mustPost(t, c, "/register", "", "username=alice&password=secret"); resp.Body != "REGISTER_SUCCESS" {
		t.Fatalf("register = %q", resp.Body)
	}
	if resp := mustPost(t, c, "/register", "", "username=alice&password=other"); resp.Body != "REGISTER_FAILED" {
		t.Fatalf("duplicate register = %q", resp.Body)
	}

	login := mustPost(t, c, "/login", "", "username=alice&password=secret")
	if login.Body != "LOGIN_SUCCESS" {
		t.Fatalf("login = %q", login.Body)
	}
	token := login.Headers["session-token"]
	if len(token) != session.TokenLength {
		t.Fatalf("token = %q", token)
	}

	if resp := mustPost(t, c, "/entry/create", token,
		"title=Baking&content=Sourdough+again&entry_date=2026-08-30"); resp.Body != "Entry created" {
		t.Fatalf("create = %q", resp.Body)
	}
	if resp := mustPost(t, c, "/entry/create", token,
		"title=Garden&content=Tomatoes&entry_date=2026-08-31"); resp.Body != "Entry created" {
		t.Fatalf("create = %q", resp.Body)
	}

	view := mustGet(t, c, "/entry/view", token)
	var entries []struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(view.Body), &entries); err != nil {
		t.Fatalf("view is not JSON: %v (%q)", err, view.Body)
	}
	if len(entries) != 2 {
		t.Fatalf("view count = %d", len(entries))
	}

	editBody := "id=1&title=Baking+notes&content=Sourdough+again&entry_date=2026-08-30"
	if resp := mustPost(t, c, "/entry/edit", token, editBody); resp.Body != "Entry updated" {
		t.Fatalf("edit = %q", resp.Body)
	}

	search := mustGet(t, c, "/entry/search?q=sourdough", token)
	if search.Status != 200 {
		t.Fatalf("search = %d", search.Status)
	}
	var matches []struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(search.Body), &matches); err != nil || len(matches) != 1 {
		t.Fatalf("search = %q (%v)", search.Body, err)
	}
	if matches[0].Title != "Baking notes" {
		t.Errorf("search match = %q", matches[0].Title)
	}

	export := mustGet(t, c, "/entry/export", token)
	if export.Body != view.Body {
		// The edit changed the view; re-fetch for a fair comparison.
		view = mustGet(t, c, "/entry/view", token)
		if export.Body != view.Body {
			t.Errorf("export = %q, view = %q", export.Body, view.Body)
		}
	}

	if resp := mustGet(t, c, "/entry/delete?id=2", token); resp.Body != "Entry deleted" {
		t.Fatalf("delete = %q", resp.Body)
	}

	if resp := mustGet(t, c, "/logout", token); resp.Body != "Logged out" {
		t.Fatalf("logout = %q", resp.Body)
	}
	if resp := mustGet(t, c, "/entry/view", token); resp.Status != 401 {
		t.Errorf("view after logout = %d", resp.Status)
	}
}

// TestFragmentedRequests verifies reassembly end to end by writing the raw
// request a few bytes at a time.
func TestFragmentedRequests(t *testing.T) {
	c := startServer(t)
	c.ChunkSize = 3

	if resp := mustPost(t, c, "/register", "", "username=bob&password=hunter2"); resp.Body != "REGISTER_SUCCESS" {
		t.Fatalf("register = %q", resp.Body)
	}
	login := mustPost(t, c, "/login", "", "username=bob&password=hunter2")
	if login.Body != "LOGIN_SUCCESS" {
		t.Fatalf("login = %q", login.Body)
	}
}

// TestSessionsAreIndependentPerUser checks that one user's token cannot see
// another user's entries.
func TestSessionsAreIndependentPerUser(t *testing.T) {
	c := startServer(t)

	for _, creds := range []string{"username=alice&password=a", "username=bob&password=b"} {
		if resp := mustPost(t, c, "/register", "", creds); resp.Body != "REGISTER_SUCCESS" {
			t.Fatalf("register = %q", resp.Body)
		}
	}

	aliceToken := mustPost(t, c, "/login", "", "username=alice&password=a").Headers["session-token"]
	bobToken := mustPost(t, c, "/login", "", "username=bob&password=b").Headers["session-token"]

	mustPost(t, c, "/entry/create", aliceToken, "title=Private&content=alice+only&entry_date=2026-08-31")

	if resp := mustGet(t, c, "/entry/view", bobToken); resp.Body != "[]" {
		t.Errorf("bob sees %q", resp.Body)
	}

	// Bob cannot delete alice's entry; ownership scoping turns it into a
	// storage failure.
	if resp := mustGet(t, c, "/entry/delete?id=1", bobToken); resp.Status != 500 {
		t.Errorf("cross-user delete = %d, want 500", resp.Status)
	}
	if resp := mustGet(t, c, "/entry/view", aliceToken); resp.Body == "[]" {
		t.Error("alice's entry disappeared")
	}
}
