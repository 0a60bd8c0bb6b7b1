package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavePostFile(t *testing.T) {
	store := NewMediaStore(t.TempDir(), "/media/")

	rel, err := store.SavePostFile("my-post", "photo.jpg", []byte("jpeg-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "blog/posts/my-post/"))
	assert.True(t, strings.HasSuffix(rel, "/photo.jpg"))

	data, err := os.ReadFile(filepath.Join(store.Root(), filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)
}

func TestSavePostFile_IdenticalNamesDoNotCollide(t *testing.T) {
	store := NewMediaStore(t.TempDir(), "/media")

	first, err := store.SavePostFile("my-post", "photo.jpg", []byte("one"))
	require.NoError(t, err)
	second, err := store.SavePostFile("my-post", "photo.jpg", []byte("two"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestSavePostFile_StripsPathComponents(t *testing.T) {
	store := NewMediaStore(t.TempDir(), "/media")

	rel, err := store.SavePostFile("my-post", "../../etc/passwd", []byte("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(rel, "/passwd"))
	assert.NotContains(t, rel, "..")

	rel, err = store.SavePostFile("my-post", `..\..\boot.ini`, []byte("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(rel, "/boot.ini"))

	_, err = store.SavePostFile("my-post", "..", []byte("x"))
	assert.Error(t, err)
}

func TestURL(t *testing.T) {
	store := NewMediaStore(t.TempDir(), "/media")

	assert.Equal(t, "/media/blog/posts/p/x/photo.jpg", store.URL("blog/posts/p/x/photo.jpg"))
	assert.Equal(t, "", store.URL(""))
}
