package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// BlobStore menyimpan file bukti laporan dan mengembalikan path opaque yang
// dipersist di metadata attachment. Path hanya bermakna untuk store yang sama.
//
//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type BlobStore interface {
	Store(ctx context.Context, r io.Reader, size int64, originalName, contentType string) (string, error)
	Delete(ctx context.Context, path string) error
}

// objectName membuat nama unik dengan mempertahankan ekstensi file asli.
func objectName(prefix, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return filepath.ToSlash(filepath.Join(prefix, uuid.New().String()+ext))
}
