package imagestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/imgstore/internal/domain"
	"github.com/marcos-nsantos/imgstore/internal/domain/entity"
	"github.com/marcos-nsantos/imgstore/internal/pkg/apperror"
	"github.com/marcos-nsantos/imgstore/internal/pkg/pathscheme"
)

type ResizeMode int

const (
	ResizeSync ResizeMode = iota
	ResizeAsync
	ResizeSkip
)

func (m ResizeMode) String() string {
	switch m {
	case ResizeSync:
		return "sync"
	case ResizeAsync:
		return "async"
	case ResizeSkip:
		return "skip"
	default:
		return fmt.Sprintf("ResizeMode(%d)", int(m))
	}
}

func ParseResizeMode(s string) (ResizeMode, error) {
	switch strings.ToLower(s) {
	case "", "sync":
		return ResizeSync, nil
	case "async":
		return ResizeAsync, nil
	case "skip", "none":
		return ResizeSkip, nil
	default:
		return 0, fmt.Errorf("unknown resize mode %q", s)
	}
}

// Resize regenerates the thumbnails of id one spec at a time. A failing
// thumbnail is reported and counted without stopping the others. A missing
// original is a no-op.
func (s *Service) Resize(ctx context.Context, id string, opts ResizeOptions) error {
	src, ok := s.ImagePath(id, "")
	if !ok {
		return nil
	}

	if opts.Clean {
		if err := s.clean(id); err != nil {
			return err
		}
	}

	specs, err := s.resolveThumbnails(ctx, id)
	if err != nil {
		return err
	}

	ev := entity.ResizeEvent{ID: id, Resized: make([]string, 0, len(specs))}
	for _, spec := range specs {
		dest, err := pathscheme.ThumbnailPath(s.root, id, spec.Name)
		if err == nil {
			err = s.processor.Resize(src, dest, spec)
		}
		if err != nil {
			ev.Errors++
			s.logger.Warn("thumbnail failed",
				zap.String("id", id),
				zap.String("thumbnail", spec.Name),
				zap.Error(err),
			)
			s.reporter.OnThumbnailError(ctx, id, err)
		} else {
			ev.Resized = append(ev.Resized, spec.Name)
			s.logger.Debug("thumbnail written", zap.String("id", id), zap.String("thumbnail", spec.Name))
		}
		s.reporter.OnThumbnailProgress(ctx, snapshot(ev))
	}

	s.reporter.OnImageResized(ctx, snapshot(ev))
	return nil
}

func (s *Service) resolveThumbnails(ctx context.Context, id string) ([]entity.ThumbnailSpec, error) {
	if !s.thumbnails.NeedsMetadata() {
		return s.thumbnails.Thumbnails(nil), nil
	}

	meta, ok, err := s.Metadata(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMetadataNotFound, id)
	}
	return s.thumbnails.Thumbnails(meta), nil
}

// clean removes every thumbnail of id. The original and the sidecar are kept.
func (s *Service) clean(id string) error {
	uid, ext, err := pathscheme.ParseID(id)
	if err != nil {
		return err
	}
	dir, _ := pathscheme.Dir(s.root, id)

	names, err := listDir(dir)
	if err != nil {
		return err
	}

	var errs []error
	for _, name := range names {
		if !pathscheme.MatchesThumbnail(name, uid, ext) {
			continue
		}
		if err := removeFile(filepath.Join(dir, name)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ResizeAll scans the whole store and resizes every image stored under a
// generated uid, one at a time. Thumbnail failures are counted by Resize; any
// error returned by Resize stops the scan.
func (s *Service) ResizeAll(ctx context.Context, opts ResizeOptions) error {
	ids, err := s.scan()
	if err != nil {
		return err
	}

	total := len(ids)
	resized := 0
	s.logger.Info("bulk resize started", zap.Int("total", total), zap.Bool("clean", opts.Clean))

	for _, id := range ids {
		err := s.Resize(ctx, id, opts)
		if err == nil {
			resized++
		}
		s.reporter.OnBulkProgress(ctx, entity.BulkProgressEvent{ID: id, Resized: resized, Total: total})
		if err != nil {
			return fmt.Errorf("resizing %s: %w", id, err)
		}
	}

	s.reporter.OnBulkComplete(ctx, entity.BulkResizeEvent{Resized: resized, Total: total})
	return nil
}

// scan walks root/*/* and collects the canonical original file names.
func (s *Service) scan() ([]string, error) {
	level1, err := readDirs(s.root)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, d1 := range level1 {
		level2, err := readDirs(filepath.Join(s.root, d1))
		if err != nil {
			return nil, err
		}
		for _, d2 := range level2 {
			names, err := listDir(filepath.Join(s.root, d1, d2))
			if err != nil {
				return nil, err
			}
			for _, name := range names {
				if pathscheme.IsCanonicalFileName(name) {
					ids = append(ids, name)
				}
			}
		}
	}
	return ids, nil
}

func readDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.Storage("list", dir, err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs, nil
}

func snapshot(ev entity.ResizeEvent) entity.ResizeEvent {
	ev.Resized = slices.Clone(ev.Resized)
	return ev
}
