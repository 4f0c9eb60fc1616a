package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// DiskStore menyimpan file di filesystem lokal, untuk development tanpa MinIO.
type DiskStore struct {
	root   string
	prefix string
}

func NewDiskStore(root, prefix string) *DiskStore {
	return &DiskStore{root: root, prefix: prefix}
}

func (s *DiskStore) Store(ctx context.Context, r io.Reader, size int64, originalName, contentType string) (string, error) {
	name := objectName(s.prefix, originalName)
	full := filepath.Join(s.root, filepath.FromSlash(name))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(full)
		return "", err
	}

	return name, nil
}

func (s *DiskStore) Delete(ctx context.Context, path string) error {
	return os.Remove(filepath.Join(s.root, filepath.FromSlash(path)))
}
