package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_SaveOpenDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root, "https://portal.example.com/")
	require.NoError(t, err)

	pdf := "%PDF-1.4\n1 0 obj\n<<>>\nendobj\n"
	stored, err := store.Save("client-services/cs-1/devis.pdf", strings.NewReader(pdf))
	require.NoError(t, err)

	assert.Equal(t, "client-services/cs-1/devis.pdf", stored.Path)
	assert.Equal(t, "https://portal.example.com/files/client-services/cs-1/devis.pdf", stored.URL)
	assert.Equal(t, "application/pdf", stored.ContentType)
	assert.Equal(t, int64(len(pdf)), stored.Size)

	rc, err := store.Open(stored.Path)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, pdf, string(body))

	entries, err := os.ReadDir(filepath.Join(root, "client-services", "cs-1"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary upload files are cleaned up")

	require.NoError(t, store.Delete(stored.Path))
	require.NoError(t, store.Delete(stored.Path))
	_, err = store.Open(stored.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "")
	require.NoError(t, err)

	for _, name := range []string{"", "../escape.txt", "a/../../escape.txt"} {
		_, err := store.Save(name, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidPath, name)
	}

	stored, err := store.Save("/notes.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "/files/notes.txt", stored.URL)
	assert.True(t, strings.HasPrefix(stored.ContentType, "text/plain"))
}
