package assets

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrNotFound reports a missing or rejected asset name.
var ErrNotFound = errors.New("asset not found")

// contentTypes maps file extensions to the Content-Type the server sends.
var contentTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".txt":  "text/plain",
}

// defaultContentType is used for extensions not in the table.
const defaultContentType = "application/octet-stream"

// Dir serves assets from a directory on disk.
type Dir struct {
	root string
}

// NewDir creates an asset source rooted at root.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Get returns the bytes and content type for the named asset. The name is
// relative to the asset root ("index.html", "style.css"). Missing files and
// names that fail sanitization return ErrNotFound.
func (d *Dir) Get(name string) ([]byte, string, error) {
	rel, ok := sanitize(name)
	if !ok {
		return nil, "", ErrNotFound
	}

	data, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, "", ErrNotFound
	}

	return data, ContentType(rel), nil
}

// ContentType returns the Content-Type for a file name based on its
// extension.
func ContentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}
	return defaultContentType
}

// sanitize validates an asset name and returns it in clean slash form. It
// rejects traversal and absolute-path tricks so asset serving cannot escape
// the configured directory.
func sanitize(name string) (string, bool) {
	if name == "" {
		return "", false
	}

	// NUL can appear via %00 in a percent-decoded path.
	if strings.IndexByte(name, 0) != -1 {
		return "", false
	}

	// Platform-dependent separators never appear in legitimate names.
	if strings.Contains(name, `\`) {
		return "", false
	}

	if strings.HasPrefix(name, "/") {
		return "", false
	}

	// Reject dot-segments before cleaning so a traversal attempt is refused
	// instead of silently rewritten.
	for _, seg := range strings.Split(name, "/") {
		if seg == "." || seg == ".." {
			return "", false
		}
	}

	clean := path.Clean(name)
	if clean == "." || clean == "" || strings.HasPrefix(clean, "../") || strings.HasPrefix(clean, "/") {
		return "", false
	}

	return clean, true
}
