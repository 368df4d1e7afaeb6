package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"homerelief/internal/utils"
	"homerelief/pkg/types"
)

// PhotoPrefix is the key prefix of damage report photos.
const PhotoPrefix = "victim-photos"

const MaxPhotoBytes = 5 << 20

var photoExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/heic": "heic",
}

// Uploader stores an object under key and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// PhotoKey validates an uploaded photo and returns a fresh object key for it.
func PhotoKey(contentType string, size int64) (string, error) {
	contentType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))

	ext, ok := photoExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("content type %q: %w", contentType, types.ErrInvalidUpload)
	}

	if size <= 0 || size > MaxPhotoBytes {
		return "", fmt.Errorf("size %d bytes: %w", size, types.ErrInvalidUpload)
	}

	return path.Join(PhotoPrefix, fmt.Sprintf("%s.%s", utils.NanoID(), ext)), nil
}
