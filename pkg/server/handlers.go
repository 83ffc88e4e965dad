package server

import (
	"context"
	"log/slog"
	"strconv"

	"daybook-hq/daybook/pkg/assets"
	"daybook-hq/daybook/pkg/auth"
	"daybook-hq/daybook/pkg/http1"
	"daybook-hq/daybook/pkg/session"
	"daybook-hq/daybook/pkg/storage"
)

// Input length bounds, matching what the single-page client enforces.
const (
	maxUsernameLen = 50
	maxPasswordLen = 100
	maxTitleLen    = 200
	maxContentLen  = 100000
	maxSearchLen   = 100
)

// sessionHeader carries the token on every protected request and on the
// login response.
const sessionHeader = "Session-Token"

// Handlers implements the diary endpoints over the storage, session, and
// asset collaborators.
type Handlers struct {
	store    storage.Store
	sessions *session.Store
	hasher   auth.Hasher
	assets   *assets.Dir
	logger   *slog.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(store storage.Store, sessions *session.Store, hasher auth.Hasher, dir *assets.Dir) *Handlers {
	return &Handlers{
		store:    store,
		sessions: sessions,
		hasher:   hasher,
		assets:   dir,
		logger:   slog.Default().With("component", "handlers"),
	}
}

// authenticate resolves the Session-Token header to a user id. Handlers call
// this before touching storage; an unauthenticated caller never reaches the
// database.
func (h *Handlers) authenticate(req *http1.Request) (int64, bool) {
	token := req.Headers.Get(sessionHeader)
	if token == "" {
		return 0, false
	}
	return h.sessions.Lookup(token)
}

// unauthorized is the fixed reply for a missing or unknown session token.
func unauthorized() *http1.Response {
	return http1.Text(401, "Unauthorized")
}

// validateInput checks the non-empty and maximum-length rule shared by all
// text fields.
func validateInput(s string, max int) bool {
	return s != "" && len(s) <= max
}

// Login verifies credentials and issues a session token.
func (h *Handlers) Login(ctx context.Context, req *http1.Request) *http1.Response {
	form := req.Form()
	username := form.Value("username")
	password := form.Value("password")

	if !validateInput(username, maxUsernameLen) || !validateInput(password, maxPasswordLen) {
		return http1.Text(200, "INVALID_INPUT")
	}

	userID, ok, err := h.store.VerifyCredentials(ctx, username, h.hasher.Hash(password))
	if err != nil {
		h.logger.Error("credential verification failed", "error", err)
		return http1.Text(200, "LOGIN_FAILED")
	}
	if !ok {
		return http1.Text(200, "LOGIN_FAILED")
	}

	token, err := h.sessions.Create(userID)
	if err != nil {
		h.logger.Error("session creation failed", "error", err)
		return http1.Text(500, "Internal Server Error")
	}

	resp := http1.Text(200, "LOGIN_SUCCESS")
	resp.SetHeader(sessionHeader, token)
	return resp
}

// Register creates a new user account.
func (h *Handlers) Register(ctx context.Context, req *http1.Request) *http1.Response {
	form := req.Form()
	username := form.Value("username")
	password := form.Value("password")

	if !validateInput(username, maxUsernameLen) || !validateInput(password, maxPasswordLen) {
		return http1.Text(200, "INVALID_INPUT")
	}

	exists, err := h.store.UsernameExists(ctx, username)
	if err != nil {
		h.logger.Error("username lookup failed", "error", err)
		return http1.Text(200, "REGISTER_FAILED")
	}
	if exists {
		return http1.Text(200, "REGISTER_FAILED")
	}

	if err := h.store.CreateUser(ctx, username, h.hasher.Hash(password)); err != nil {
		h.logger.Error("user creation failed", "error", err)
		return http1.Text(200, "REGISTER_FAILED")
	}

	return http1.Text(200, "REGISTER_SUCCESS")
}

// Logout invalidates the caller's session. Logging out without a token, or
// with an unknown one, still succeeds.
func (h *Handlers) Logout(ctx context.Context, req *http1.Request) *http1.Response {
	if token := req.Headers.Get(sessionHeader); token != "" {
		h.sessions.Invalidate(token)
	}
	return http1.Text(200, "Logged out")
}

// CreateEntry inserts a diary entry for the caller.
func (h *Handlers) CreateEntry(ctx context.Context, req *http1.Request) *http1.Response {
	userID, ok := h.authenticate(req)
	if !ok {
		return unauthorized()
	}

	form := req.Form()
	title := form.Value("title")
	content := form.Value("content")
	entryDate := form.Value("entry_date")

	if !validateInput(title, maxTitleLen) || !validateInput(content, maxContentLen) {
		return http1.Text(400, "Invalid input")
	}

	if err := h.store.InsertEntry(ctx, userID, title, content, entryDate); err != nil {
		h.logger.Error("entry insert failed", "user_id", userID, "error", err)
		return http1.Text(500, "Failed to create entry")
	}

	return http1.Text(200, "Entry created")
}

// ViewEntries returns the caller's entries, newest first, as JSON.
func (h *Handlers) ViewEntries(ctx context.Context, req *http1.Request) *http1.Response {
	userID, ok := h.authenticate(req)
	if !ok {
		return unauthorized()
	}

	entries, err := h.store.FetchEntries(ctx, userID)
	if err != nil {
		h.logger.Error("entry fetch failed", "user_id", userID, "error", err)
		return http1.Text(500, "Internal Server Error")
	}

	return http1.JSON(200, storage.EncodeEntriesJSON(entries))
}

// EditEntry updates one of the caller's entries.
func (h *Handlers) EditEntry(ctx context.Context, req *http1.Request) *http1.Response {
	userID, ok := h.authenticate(req)
	if !ok {
		return unauthorized()
	}

	form := req.Form()
	entryID, err := strconv.ParseInt(form.Value("id"), 10, 64)
	if err != nil {
		return http1.Text(400, "Invalid input")
	}

	title := form.Value("title")
	content := form.Value("content")
	entryDate := form.Value("entry_date")

	if err := h.store.UpdateEntry(ctx, entryID, userID, title, content, entryDate); err != nil {
		h.logger.Error("entry update failed", "user_id", userID, "entry_id", entryID, "error", err)
		return http1.Text(500, "Failed to update entry")
	}

	return http1.Text(200, "Entry updated")
}

// DeleteEntry removes one of the caller's entries, identified by the id
// query parameter.
func (h *Handlers) DeleteEntry(ctx context.Context, req *http1.Request) *http1.Response {
	userID, ok := h.authenticate(req)
	if !ok {
		return unauthorized()
	}

	raw, present := req.Query().Get("id")
	if !present {
		return http1.Text(400, "Missing entry ID")
	}
	entryID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return http1.Text(400, "Missing entry ID")
	}

	if err := h.store.DeleteEntry(ctx, entryID, userID); err != nil {
		h.logger.Error("entry delete failed", "user_id", userID, "entry_id", entryID, "error", err)
		return http1.Text(500, "Failed to delete entry")
	}

	return http1.Text(200, "Entry deleted")
}

// SearchEntries returns the caller's entries matching a case-insensitive
// substring over title and content.
func (h *Handlers) SearchEntries(ctx context.Context, req *http1.Request) *http1.Response {
	userID, ok := h.authenticate(req)
	if !ok {
		return unauthorized()
	}

	keyword := req.Query().Value("q")
	if !validateInput(keyword, maxSearchLen) {
		return http1.Text(400, "Invalid search query")
	}

	entries, err := h.store.SearchEntries(ctx, userID, keyword)
	if err != nil {
		h.logger.Error("entry search failed", "user_id", userID, "error", err)
		return http1.Text(500, "Internal Server Error")
	}

	return http1.JSON(200, storage.EncodeEntriesJSON(entries))
}

// ExportEntries returns the same JSON as ViewEntries; the client turns it
// into a downloadable file.
func (h *Handlers) ExportEntries(ctx context.Context, req *http1.Request) *http1.Response {
	return h.ViewEntries(ctx, req)
}

// StaticAsset serves a file from the asset directory.
func (h *Handlers) StaticAsset(name string) http1.HandlerFunc {
	return func(ctx context.Context, req *http1.Request) *http1.Response {
		data, contentType, err := h.assets.Get(name)
		if err != nil {
			return http1.HTML(404, "<h1>404 Not Found</h1>")
		}
		return http1.Bytes(200, contentType, data)
	}
}
