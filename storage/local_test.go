package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	docID := uuid.New()

	key, err := store.Upload(ctx, docID, "INV-000001.txt", strings.NewReader("receipt body"))
	require.NoError(t, err)
	assert.Contains(t, key, docID.String())

	reader, err := store.Download(ctx, key)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "receipt body", string(data))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Download(ctx, key)
	assert.Error(t, err)
}

func TestLocalStorageDeleteMissingIsNoop(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "2026-01/does-not-exist.txt"))
}

func TestDocumentKeySanitizesFilename(t *testing.T) {
	docID := uuid.New()
	key := documentKey(docID, "odd name/with slash.txt")
	assert.NotContains(t, key, " ")
	assert.Contains(t, key, "odd_name_with_slash.txt")
}
