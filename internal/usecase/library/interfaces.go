package library

import (
	"context"

	"github.com/marcos-nsantos/imgstore/internal/domain/entity"
	"github.com/marcos-nsantos/imgstore/internal/usecase/imagestore"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/library_mocks.go -package=mocks

// ImageStore is the subset of the storage engine the library drives.
type ImageStore interface {
	Save(ctx context.Context, data []byte, opts imagestore.SaveOptions) (string, error)
	Delete(ctx context.Context, id string) error
	Metadata(ctx context.Context, id string) (*entity.ImageMetadata, bool, error)
	Files(ctx context.Context, id string) ([]string, error)
	Root() string
}
