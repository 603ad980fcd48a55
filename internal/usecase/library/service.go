// Package library keeps the image catalog, the metadata cache and the remote
// mirror in step with the storage engine.
package library

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/imgstore/internal/adapter/repository"
	"github.com/marcos-nsantos/imgstore/internal/adapter/storage"
	"github.com/marcos-nsantos/imgstore/internal/domain"
	"github.com/marcos-nsantos/imgstore/internal/domain/entity"
	"github.com/marcos-nsantos/imgstore/internal/pkg/pagination"
	"github.com/marcos-nsantos/imgstore/internal/pkg/pathscheme"
	"github.com/marcos-nsantos/imgstore/internal/usecase/imagestore"
)

type Service struct {
	store    ImageStore
	repo     repository.ImageRepository
	cache    repository.MetadataCache
	mirror   storage.ObjectStorage
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewService wires the library. cache and mirror may be nil.
func NewService(
	store ImageStore,
	repo repository.ImageRepository,
	cache repository.MetadataCache,
	mirror storage.ObjectStorage,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		repo:     repo,
		cache:    cache,
		mirror:   mirror,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

type ImportInput struct {
	Data   []byte
	UID    string
	Resize imagestore.ResizeMode
}

// Import stores the image and records it in the catalog. The stored files are
// removed again if the catalog rejects the record. A caller-chosen UID never
// replaces an image that is already stored.
func (s *Service) Import(ctx context.Context, input ImportInput) (*entity.Image, error) {
	id, err := s.store.Save(ctx, input.Data, imagestore.SaveOptions{
		Resize:    input.Resize,
		UID:       input.UID,
		Exclusive: input.UID != "",
	})
	if err != nil {
		return nil, fmt.Errorf("saving image: %w", err)
	}

	meta, ok, err := s.store.Metadata(ctx, id)
	if err == nil && !ok {
		err = fmt.Errorf("%w: %s", domain.ErrMetadataNotFound, id)
	}
	if err != nil {
		s.discard(ctx, id)
		return nil, err
	}

	uid, _, _ := pathscheme.ParseID(id)
	image := entity.NewImage(id, uid, meta)
	if err := s.repo.Create(ctx, image); err != nil {
		s.discard(ctx, id)
		return nil, fmt.Errorf("creating image record: %w", err)
	}

	s.cacheMetadata(ctx, id, meta)
	return image, nil
}

func (s *Service) discard(ctx context.Context, id string) {
	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Warn("discarding stored image", zap.String("id", id), zap.Error(err))
	}
}

func (s *Service) Get(ctx context.Context, id string) (*entity.Image, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, page, perPage int) ([]entity.Image, *pagination.Info, error) {
	return s.repo.List(ctx, pagination.NewParams(page, perPage))
}

// Metadata serves from the cache when possible and fills it on a miss.
func (s *Service) Metadata(ctx context.Context, id string) (*entity.ImageMetadata, error) {
	if s.cache != nil {
		meta, err := s.cache.Get(ctx, id)
		if err == nil {
			return meta, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("metadata cache read failed", zap.String("id", id), zap.Error(err))
		}
	}

	meta, ok, err := s.store.Metadata(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrImageNotFound
	}

	s.cacheMetadata(ctx, id, meta)
	return meta, nil
}

func (s *Service) cacheMetadata(ctx context.Context, id string, meta *entity.ImageMetadata) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, id, meta, s.cacheTTL); err != nil {
		s.logger.Warn("metadata cache write failed", zap.String("id", id), zap.Error(err))
	}
}

// Remove deletes the catalog record and every stored artifact of id. Cache and
// mirror cleanup failures are logged only.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	files, err := s.store.Files(ctx, id)
	if err != nil {
		return fmt.Errorf("listing image files: %w", err)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting image files: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, id); err != nil {
			s.logger.Warn("metadata cache eviction failed", zap.String("id", id), zap.Error(err))
		}
	}

	if s.mirror != nil {
		for _, path := range files {
			key, err := s.objectKey(path)
			if err == nil {
				err = s.mirror.Delete(ctx, key)
			}
			if err != nil {
				s.logger.Warn("mirror delete failed", zap.String("path", path), zap.Error(err))
			}
		}
	}

	return nil
}

// Publish uploads every artifact of id to the mirror and returns their URLs.
// A positive expiry returns presigned URLs instead of public ones.
func (s *Service) Publish(ctx context.Context, id string, expiry time.Duration) ([]string, error) {
	if s.mirror == nil {
		return nil, domain.ErrMirrorDisabled
	}

	files, err := s.store.Files(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing image files: %w", err)
	}
	if len(files) == 0 {
		return nil, domain.ErrImageNotFound
	}

	urls := make([]string, 0, len(files))
	for _, path := range files {
		key, err := s.objectKey(path)
		if err != nil {
			return nil, err
		}
		if err := s.upload(ctx, key, path); err != nil {
			return nil, err
		}
		if expiry <= 0 {
			urls = append(urls, s.mirror.GetURL(key))
			continue
		}
		signed, err := s.mirror.GetSignedURL(ctx, key, expiry)
		if err != nil {
			return nil, err
		}
		urls = append(urls, signed)
	}

	s.logger.Info("image published", zap.String("id", id), zap.Int("files", len(urls)))
	return urls, nil
}

func (s *Service) upload(ctx context.Context, key, path string) error {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("detecting content type of %s: %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := s.mirror.Upload(ctx, key, file, mtype.String(), info.Size()); err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}
	return nil
}

// objectKey mirrors the shard layout: d1/d2/file.
func (s *Service) objectKey(path string) (string, error) {
	rel, err := filepath.Rel(s.store.Root(), path)
	if err != nil {
		return "", fmt.Errorf("resolving object key for %s: %w", path, err)
	}
	return filepath.ToSlash(rel), nil
}
