// Package blob stores item images. Keys are opaque to callers.
package blob

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Store is the image storage collaborator. Delete is best-effort: callers log
// failures and move on.
type Store interface {
	Put(ctx context.Context, data []byte, ext string) (string, error)
	Sign(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// NewKey returns a fresh object key with the given extension.
func NewKey(ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "" {
		ext = "bin"
	}
	return "items/" + uuid.NewString() + "." + ext
}

func contentType(key string) string {
	switch {
	case strings.HasSuffix(key, ".jpg"), strings.HasSuffix(key, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(key, ".png"):
		return "image/png"
	case strings.HasSuffix(key, ".webp"):
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
