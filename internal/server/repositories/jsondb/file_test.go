package jsondb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBlob_MissingFile(t *testing.T) {
	b := NewFileBlob(filepath.Join(t.TempDir(), "data.json"))

	data, err := b.Read(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFileBlob_WriteRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "data.json")
	b := NewFileBlob(path)

	require.NoError(t, b.Write(context.Background(), []byte(`{"a":1}`)))
	require.NoError(t, b.Write(context.Background(), []byte(`{"a":2}`)))

	data, err := b.Read(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
	assert.Equal(t, "data.json", entries[0].Name())
}

func TestFileBlob_ReadError(t *testing.T) {
	// a directory in place of the file
	dir := t.TempDir()
	b := NewFileBlob(dir)

	_, err := b.Read(context.Background())
	require.Error(t, err)
}

func TestOpen_FileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	_, err := Open(context.Background(), NewFileBlob(path))
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"users":{},"tasks":{}}`, string(raw))
}
