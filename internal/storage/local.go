package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/emberlab/firefetch/internal/model"
)

// ObjectStorage writes data streams to object storage.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data io.Reader) error
}

// Store writes downloaded thumbnails to the output directory and optionally
// mirrors each file to object storage. Identically-named files are
// overwritten, so reruns accumulate nothing.
type Store struct {
	root   string
	mirror ObjectStorage // nil when mirroring is disabled
	runID  model.RunID
}

// NewStore creates the output directory (idempotent) and returns a store
// rooted there.
func NewStore(root string, mirror ObjectStorage, runID model.RunID) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &Store{root: root, mirror: mirror, runID: runID}, nil
}

// Write streams data to root/filename and returns the written path. The
// mirror upload reads the file back so the incoming stream is consumed only
// once; a mirror failure is logged, not fatal, since the local file is the
// primary output.
func (s *Store) Write(ctx context.Context, filename string, data io.Reader) (string, error) {
	path := filepath.Join(s.root, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.Copy(f, data); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	if s.mirror != nil {
		if err := s.put(ctx, filename, path); err != nil {
			slog.WarnContext(ctx, "mirror upload failed", "file", filename, "error", err)
		}
	}

	return path, nil
}

func (s *Store) put(ctx context.Context, filename, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	key := ObjectKey{RunID: s.runID, FileName: filename}
	return s.mirror.Put(ctx, key.Key(), f)
}
