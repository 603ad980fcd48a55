package repository

import (
	"context"
	"time"

	"github.com/marcos-nsantos/imgstore/internal/domain/entity"
	"github.com/marcos-nsantos/imgstore/internal/pkg/pagination"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/repository_mocks.go -package=mocks

type ImageRepository interface {
	Create(ctx context.Context, image *entity.Image) error
	GetByID(ctx context.Context, id string) (*entity.Image, error)
	List(ctx context.Context, params pagination.Params) ([]entity.Image, *pagination.Info, error)
	Delete(ctx context.Context, id string) error
}

// MetadataCache keeps image metadata close to readers. Get returns
// domain.ErrCacheMiss for unknown ids.
type MetadataCache interface {
	Get(ctx context.Context, id string) (*entity.ImageMetadata, error)
	Set(ctx context.Context, id string, meta *entity.ImageMetadata, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
