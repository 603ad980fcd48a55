package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/marcos-nsantos/imgstore/internal/domain"
	"github.com/marcos-nsantos/imgstore/internal/domain/entity"
	"github.com/marcos-nsantos/imgstore/internal/pkg/pathscheme"
)

// ThumbnailsFile is the YAML document listing thumbnail presets.
type ThumbnailsFile struct {
	Thumbnails  []entity.ThumbnailSpec `yaml:"thumbnails"`
	SkipUpscale bool                   `yaml:"skipUpscale"`
}

// LoadThumbnails reads the presets at path. An empty path yields an empty static
// source.
func LoadThumbnails(path string) (entity.ThumbnailSource, error) {
	if path == "" {
		return entity.StaticThumbnails{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading thumbnails file: %w", err)
	}

	return ParseThumbnails(data)
}

func ParseThumbnails(data []byte) (entity.ThumbnailSource, error) {
	var file ThumbnailsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing thumbnails file: %w", err)
	}

	if err := validateThumbnails(file.Thumbnails); err != nil {
		return nil, err
	}

	if file.SkipUpscale {
		return entity.SkipUpscale(file.Thumbnails), nil
	}
	return entity.StaticThumbnails(file.Thumbnails), nil
}

func validateThumbnails(specs []entity.ThumbnailSpec) error {
	seen := make(map[string]struct{}, len(specs))
	for i, spec := range specs {
		if spec.Name == "" {
			return fmt.Errorf("%w: thumbnail %d has no name", domain.ErrInvalidThumbnail, i)
		}
		if err := pathscheme.ValidateThumbnailName(spec.Name); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidThumbnail, err)
		}
		if spec.Name == "original" {
			return fmt.Errorf("%w: %q is reserved", domain.ErrInvalidThumbnail, spec.Name)
		}
		if spec.Size <= 0 {
			return fmt.Errorf("%w: thumbnail %q needs a positive size", domain.ErrInvalidThumbnail, spec.Name)
		}
		if _, ok := seen[spec.Name]; ok {
			return fmt.Errorf("%w: duplicate thumbnail %q", domain.ErrInvalidThumbnail, spec.Name)
		}
		seen[spec.Name] = struct{}{}
	}
	return nil
}
