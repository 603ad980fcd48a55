package storage

import (
	"context"
	"io"
	"time"

	"github.com/marcos-nsantos/imgstore/internal/domain/entity"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/storage_mocks.go -package=mocks

// ImageProcessor is the codec boundary: decode, identify, resize and convert.
type ImageProcessor interface {
	Identify(data []byte) (*entity.ImageMetadata, error)
	Resize(srcPath, destPath string, spec entity.ThumbnailSpec) error
	Convert(srcPath, format string) ([]byte, error)
}

// ProgressReporter observes resize work. Calls are informational and must not
// block engine progress for long.
type ProgressReporter interface {
	OnThumbnailProgress(ctx context.Context, ev entity.ResizeEvent)
	OnThumbnailError(ctx context.Context, id string, err error)
	OnImageResized(ctx context.Context, ev entity.ResizeEvent)
	OnBulkProgress(ctx context.Context, ev entity.BulkProgressEvent)
	OnBulkComplete(ctx context.Context, ev entity.BulkResizeEvent)
}

// ObjectStorage is a remote mirror for stored artifacts.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) error
	GetURL(key string) string
	GetSignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}
