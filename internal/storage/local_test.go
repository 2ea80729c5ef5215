package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberlab/firefetch/internal/model"
)

type recordingStorage struct {
	keys []string
	data []string
	err  error
}

func (r *recordingStorage) Put(ctx context.Context, key string, data io.Reader) error {
	if r.err != nil {
		return r.err
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	r.keys = append(r.keys, key)
	r.data = append(r.data, string(b))
	return nil
}

func TestStore_Write(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, nil, "")
	require.NoError(t, err)

	path, err := store.Write(context.Background(), "34.05_-118.25.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "34.05_-118.25.png"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(got))
}

func TestStore_Write_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, nil, "")
	require.NoError(t, err)

	_, err = store.Write(context.Background(), "a.png", strings.NewReader("first"))
	require.NoError(t, err)
	path, err := store.Write(context.Background(), "a.png", strings.NewReader("second"))
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestNewStore_CreatesDirectoryIdempotently(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")

	_, err := NewStore(dir, nil, "")
	require.NoError(t, err)
	_, err = NewStore(dir, nil, "")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStore_Write_Mirrors(t *testing.T) {
	dir := t.TempDir()
	mirror := &recordingStorage{}
	runID := model.RunID("01890c24-905b-7122-b170-b60814e6ee06")
	store, err := NewStore(dir, mirror, runID)
	require.NoError(t, err)

	_, err = store.Write(context.Background(), "34.05_-118.25.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	require.Len(t, mirror.keys, 1)
	assert.Equal(t, "fires/01890c24-905b-7122-b170-b60814e6ee06/34.05_-118.25.png", mirror.keys[0])
	assert.Equal(t, "png-bytes", mirror.data[0])
}

func TestStore_Write_MirrorFailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	mirror := &recordingStorage{err: errors.New("bucket gone")}
	store, err := NewStore(dir, mirror, "run-1")
	require.NoError(t, err)

	path, err := store.Write(context.Background(), "a.png", strings.NewReader("data"))
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
}
