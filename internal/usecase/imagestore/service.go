// Package imagestore stores images under sharded paths and maintains their
// thumbnails.
package imagestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/marcos-nsantos/imgstore/internal/adapter/progress"
	"github.com/marcos-nsantos/imgstore/internal/adapter/storage"
	"github.com/marcos-nsantos/imgstore/internal/domain"
	"github.com/marcos-nsantos/imgstore/internal/domain/entity"
	"github.com/marcos-nsantos/imgstore/internal/pkg/apperror"
	"github.com/marcos-nsantos/imgstore/internal/pkg/pathscheme"
)

// Original selects the original image when used as a fallback in ImagePath.
const Original = "original"

const (
	dirMode  = 0o755
	fileMode = 0o644
)

type Config struct {
	Root       string
	Thumbnails entity.ThumbnailSource
}

type SaveOptions struct {
	Resize ResizeMode
	// UID overrides the generated stem. It must be at least three characters
	// long and contain no dots or path separators.
	UID string
	// Exclusive fails with domain.ErrImageExists instead of overwriting an
	// original already stored under the same id.
	Exclusive bool
}

type ResizeOptions struct {
	Clean bool
}

// Service is safe for concurrent use on distinct ids. Callers must not run
// overlapping writes on the same uid.
type Service struct {
	root       string
	thumbnails entity.ThumbnailSource
	processor  storage.ImageProcessor
	reporter   storage.ProgressReporter
	logger     *zap.Logger
	detached   sync.WaitGroup
}

func NewService(
	cfg Config,
	processor storage.ImageProcessor,
	reporter storage.ProgressReporter,
	logger *zap.Logger,
) (*Service, error) {
	if cfg.Root == "" {
		return nil, domain.ErrPathRequired
	}
	if cfg.Thumbnails == nil {
		cfg.Thumbnails = entity.StaticThumbnails{}
	}
	if reporter == nil {
		reporter = progress.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		root:       filepath.Clean(cfg.Root),
		thumbnails: cfg.Thumbnails,
		processor:  processor,
		reporter:   reporter,
		logger:     logger,
	}, nil
}

func (s *Service) Root() string {
	return s.root
}

// Wait blocks until every resize started by an async Save has finished.
func (s *Service) Wait() {
	s.detached.Wait()
}

// Save stores data under a new id and handles its thumbnails according to
// opts.Resize. A failed write or synchronous resize leaves no files behind.
func (s *Service) Save(ctx context.Context, data []byte, opts SaveOptions) (string, error) {
	uid := opts.UID
	if uid == "" {
		uid = uuid.NewString()
	} else if err := pathscheme.ValidateUID(uid); err != nil {
		return "", err
	}

	meta, err := s.processor.Identify(data)
	if err != nil {
		return "", fmt.Errorf("identifying image: %w", err)
	}

	id := pathscheme.NewID(uid, meta.Format)
	dir, err := pathscheme.Dir(s.root, id)
	if err != nil {
		return "", err
	}
	originalPath, _ := pathscheme.OriginalPath(s.root, id)
	metadataPath, _ := pathscheme.MetadataPath(s.root, id)
	if opts.Exclusive && fileExists(originalPath) {
		return "", fmt.Errorf("%w: %s", domain.ErrImageExists, id)
	}

	sidecar, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("encoding metadata: %w", err)
	}

	if err := os.MkdirAll(dir, dirMode); err != nil {
		return "", apperror.Storage("mkdir", dir, err)
	}

	var g errgroup.Group
	g.Go(func() error { return writeFile(originalPath, data) })
	g.Go(func() error { return writeFile(metadataPath, sidecar) })
	if err := g.Wait(); err != nil {
		s.rollback(id, originalPath, metadataPath)
		return "", err
	}

	s.logger.Debug("image saved", zap.String("id", id), zap.String("path", originalPath))

	switch opts.Resize {
	case ResizeSync:
		if err := s.Resize(ctx, id, ResizeOptions{}); err != nil {
			s.rollback(id, originalPath, metadataPath)
			return "", err
		}
	case ResizeAsync:
		s.resizeDetached(ctx, id)
	case ResizeSkip:
	}

	return id, nil
}

func (s *Service) resizeDetached(ctx context.Context, id string) {
	ctx = context.WithoutCancel(ctx)
	s.detached.Go(func() {
		if err := s.Resize(ctx, id, ResizeOptions{}); err != nil {
			s.logger.Warn("async resize failed", zap.String("id", id), zap.Error(err))
			s.reporter.OnThumbnailError(ctx, id, err)
		}
	})
}

func (s *Service) rollback(id string, paths ...string) {
	s.logger.Warn("rolling back save", zap.String("id", id))
	for _, path := range paths {
		if err := removeFile(path); err != nil {
			s.logger.Warn("rollback failed", zap.String("path", path), zap.Error(err))
		}
	}
}

// Delete removes the original, every thumbnail and the sidecar of id. Unknown
// ids are a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	files, err := s.Files(ctx, id)
	if err != nil {
		return err
	}

	var errs []error
	for _, path := range files {
		if err := removeFile(path); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	s.logger.Debug("image deleted", zap.String("id", id), zap.Int("files", len(files)))
	return nil
}

// Files lists the absolute paths of every stored artifact of id.
func (s *Service) Files(_ context.Context, id string) ([]string, error) {
	uid, ext, err := pathscheme.ParseID(id)
	if err != nil {
		return nil, nil
	}
	dir, _ := pathscheme.Dir(s.root, id)

	names, err := listDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, name := range names {
		if pathscheme.MatchesArtifact(name, uid, ext) {
			files = append(files, filepath.Join(dir, name))
		}
	}
	return files, nil
}

// Metadata reads the sidecar of id. The boolean is false when it does not exist.
func (s *Service) Metadata(_ context.Context, id string) (*entity.ImageMetadata, bool, error) {
	path, err := pathscheme.MetadataPath(s.root, id)
	if err != nil {
		return nil, false, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperror.Storage("read", path, err)
	}

	var meta entity.ImageMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, false, fmt.Errorf("decoding metadata %s: %w", path, err)
	}
	return &meta, true, nil
}

// ImagePath returns the first existing file among thumbnail and fallback, in
// that order. An empty name or Original selects the original image.
func (s *Service) ImagePath(id, thumbnail string, fallback ...string) (string, bool) {
	candidates := append([]string{thumbnail}, fallback...)
	for _, name := range candidates {
		if name == Original {
			name = ""
		}
		path, err := pathscheme.ThumbnailPath(s.root, id, name)
		if err != nil {
			continue
		}
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

// Convert saves a copy of id encoded as format under the same uid. The source
// image is kept. The boolean is false when id does not exist.
func (s *Service) Convert(ctx context.Context, id, format string, mode ResizeMode) (string, bool, error) {
	src, ok := s.ImagePath(id, "")
	if !ok {
		return "", false, nil
	}

	data, err := s.processor.Convert(src, format)
	if err != nil {
		return "", false, fmt.Errorf("converting %s to %s: %w", id, format, err)
	}

	uid, _, _ := pathscheme.ParseID(id)
	newID, err := s.Save(ctx, data, SaveOptions{Resize: mode, UID: uid})
	if err != nil {
		return "", false, err
	}
	return newID, true, nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return apperror.Storage("write", path, err)
	}
	return nil
}

func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperror.Storage("remove", path, err)
	}
	return nil
}

// listDir returns the entry names of dir, or nothing if dir does not exist.
func listDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.Storage("list", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
