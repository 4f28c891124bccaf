package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreSave(t *testing.T) {
	root := t.TempDir()

	store, err := NewFileStore(root, "/documents")
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "passport.jpg", strings.NewReader("image bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, "/documents/"))
	assert.True(t, strings.HasSuffix(ref, ".jpg"))

	// The reference must map back to the stored bytes.
	data, err := os.ReadFile(filepath.Join(root, filepath.Base(ref)))
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))
}

func TestFileStoreRequiresRoot(t *testing.T) {
	_, err := NewFileStore("", "/documents")
	require.Error(t, err)
}
