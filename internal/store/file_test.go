package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFileStoreRoundTrip(t *testing.T) {
	s := NewFileStore(t.TempDir())
	ctx := context.Background()

	in := testDoc{Name: "tasks", Count: 3}
	require.NoError(t, s.WriteJSON(ctx, "doc.json", in))

	var out testDoc
	require.NoError(t, s.ReadJSON(ctx, "doc.json", &out))
	assert.Equal(t, in, out)
}

func TestFileStoreExists(t *testing.T) {
	s := NewFileStore(t.TempDir())
	ctx := context.Background()

	ok, err := s.Exists(ctx, "doc.json")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.WriteJSON(ctx, "doc.json", testDoc{}))

	ok, err = s.Exists(ctx, "doc.json")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFileStoreReadMissing(t *testing.T) {
	s := NewFileStore(t.TempDir())

	var out testDoc
	err := s.ReadJSON(context.Background(), "missing.json", &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotExist))
}

func TestFileStoreReadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.json"), []byte("{not json"), 0644))

	s := NewFileStore(dir)
	var out testDoc
	err := s.ReadJSON(context.Background(), "doc.json", &out)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotExist))
}

func TestFileStoreOverwrite(t *testing.T) {
	s := NewFileStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, s.WriteJSON(ctx, "doc.json", testDoc{Count: 1}))
	require.NoError(t, s.WriteJSON(ctx, "doc.json", testDoc{Count: 2}))

	var out testDoc
	require.NoError(t, s.ReadJSON(ctx, "doc.json", &out))
	assert.Equal(t, 2, out.Count)
}

func TestFileStoreCreatesDirectoryOnWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "gantry")
	s := NewFileStore(dir)

	require.NoError(t, s.WriteJSON(context.Background(), "doc.json", testDoc{}))

	_, err := os.Stat(filepath.Join(dir, "doc.json"))
	assert.NoError(t, err)
}

func TestFileStoreCancelledContext(t *testing.T) {
	s := NewFileStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out testDoc
	assert.Error(t, s.ReadJSON(ctx, "doc.json", &out))
	assert.Error(t, s.WriteJSON(ctx, "doc.json", testDoc{}))
}
