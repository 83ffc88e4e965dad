package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestDir(t *testing.T) *Dir {
	t.Helper()

	root := t.TempDir()
	files := map[string]string{
		"index.html": "<html>diary</html>",
		"style.css":  "body {}",
		"script.js":  "console.log(1)",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write fixture %s: %v", name, err)
		}
	}
	// A file outside the root that traversal must never reach.
	if err := os.WriteFile(filepath.Join(root, "..", "secret.txt"), []byte("nope"), 0o644); err != nil {
		t.Fatalf("failed to write outside fixture: %v", err)
	}
	return NewDir(root)
}

func TestDir_Get(t *testing.T) {
	d := newTestDir(t)

	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"index.html", "text/html", "<html>diary</html>"},
		{"style.css", "text/css", "body {}"},
		{"script.js", "application/javascript", "console.log(1)"},
	}
	for _, tt := range tests {
		data, ct, err := d.Get(tt.name)
		if err != nil {
			t.Errorf("Get(%q) failed: %v", tt.name, err)
			continue
		}
		if ct != tt.contentType {
			t.Errorf("Get(%q) content type = %q, want %q", tt.name, ct, tt.contentType)
		}
		if string(data) != tt.body {
			t.Errorf("Get(%q) = %q, want %q", tt.name, data, tt.body)
		}
	}
}

func TestDir_GetMissing(t *testing.T) {
	d := newTestDir(t)
	if _, _, err := d.Get("missing.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDir_GetRejectsTraversal(t *testing.T) {
	d := newTestDir(t)

	hostile := []string{
		"",
		"../secret.txt",
		"./index.html",
		"a/../../secret.txt",
		"/etc/passwd",
		`..\secret.txt`,
		"index.html\x00.png",
		"..",
	}
	for _, name := range hostile {
		if _, _, err := d.Get(name); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%q) error = %v, want ErrNotFound", name, err)
		}
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"Diary.png":            "image/png",
		"diary_background.jpg": "image/jpeg",
		"INDEX.HTML":           "text/html",
		"data.bin":             "application/octet-stream",
		"noextension":          "application/octet-stream",
	}
	for name, want := range tests {
		if got := ContentType(name); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", name, got, want)
		}
	}
}
