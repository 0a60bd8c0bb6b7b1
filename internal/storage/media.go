// Package storage persists uploaded media files under the media root.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MediaStore writes uploaded files below a local media root and maps
// stored paths to public URLs.
type MediaStore struct {
	root    string
	baseURL string
}

// NewMediaStore returns a store rooted at root, serving files under baseURL.
func NewMediaStore(root, baseURL string) *MediaStore {
	return &MediaStore{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// SavePostFile stores content for the post identified by postSlug and
// returns the path relative to the media root. Every call places the
// file under a freshly generated UUID segment, so identical filenames
// never collide and concurrent uploads across posts are safe:
//
//	blog/posts/<post-slug>/<uuid>/<filename>
func (s *MediaStore) SavePostFile(postSlug, filename string, content []byte) (string, error) {
	name := sanitizeFilename(filename)
	if name == "" {
		return "", fmt.Errorf("invalid filename %q", filename)
	}

	rel := filepath.ToSlash(filepath.Join("blog", "posts", postSlug, uuid.New().String(), name))
	abs := filepath.Join(s.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(abs), 0o750); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(abs, content, 0o600); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	return rel, nil
}

// URL maps a stored relative path to its public URL. Empty paths map
// to the empty string so optional file references serialize as "".
func (s *MediaStore) URL(rel string) string {
	if rel == "" {
		return ""
	}
	return s.baseURL + "/" + strings.TrimPrefix(rel, "/")
}

// Root returns the filesystem root the store writes under.
func (s *MediaStore) Root() string {
	return s.root
}

// sanitizeFilename strips any path components from an uploaded filename.
func sanitizeFilename(filename string) string {
	name := filepath.Base(filepath.Clean(strings.ReplaceAll(filename, "\\", "/")))
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	return name
}
