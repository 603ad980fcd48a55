package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/marcos-nsantos/imgstore/internal/domain/entity"
	"github.com/marcos-nsantos/imgstore/internal/pkg/apperror"
)

const (
	Quality         = 82
	SharpenSigma    = 0.25
	PosterizeLevels = 136
	tempFilePattern = "imgstore-convert-*"
	webpFormatToken = "webp"
	defaultFileMode = 0o644
)

type ImageProcessorImpl struct {
	quality         int
	sharpenSigma    float64
	posterizeLevels int
	filter          imaging.ResampleFilter
}

func NewImageProcessor() *ImageProcessorImpl {
	return &ImageProcessorImpl{
		quality:         Quality,
		sharpenSigma:    SharpenSigma,
		posterizeLevels: PosterizeLevels,
		filter:          imaging.Linear,
	}
}

func (p *ImageProcessorImpl) Identify(data []byte) (*entity.ImageMetadata, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, apperror.Processing("can't determine image dimensions", "", err)
	}

	mediaType := mimetype.Detect(data).String()
	format := FormatForMediaType(mediaType)
	if format == "" {
		return nil, apperror.Processing(fmt.Sprintf("unsupported media type %q", mediaType), "", nil)
	}

	return &entity.ImageMetadata{
		Format:    format,
		MediaType: mediaType,
		Size:      int64(len(data)),
		Width:     cfg.Width,
		Height:    cfg.Height,
	}, nil
}

// Resize writes a thumbnail of srcPath fitted into a spec.Size square. The
// output format follows the extension of destPath. Output is always baseline:
// spec.Progressive is not honoured by the jpeg, png or webp encoders.
func (p *ImageProcessorImpl) Resize(srcPath, destPath string, spec entity.ThumbnailSpec) error {
	if spec.Size <= 0 {
		return apperror.Processing(fmt.Sprintf("invalid thumbnail size %d", spec.Size), srcPath, nil)
	}

	img, err := imaging.Open(srcPath)
	if err != nil {
		return apperror.Processing("decoding image", srcPath, err)
	}

	bounds := img.Bounds()
	width, height := fitBox(bounds.Dx(), bounds.Dy(), spec.Size)

	thumb := imaging.Resize(img, width, height, p.filter)
	thumb = imaging.Sharpen(thumb, p.sharpenSigma)
	thumb = p.posterize(thumb)

	if err := p.writeFile(destPath, thumb, formatOf(destPath)); err != nil {
		return apperror.Processing("error during resizing", srcPath, err)
	}

	if _, err := os.Stat(destPath); err != nil {
		return apperror.Processing("error during resizing: no output produced", srcPath, err)
	}

	return nil
}

// Convert renders the first frame of srcPath as format and returns the bytes.
func (p *ImageProcessorImpl) Convert(srcPath, format string) ([]byte, error) {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return nil, apperror.Processing("decoding image", srcPath, err)
	}

	tmp, err := os.CreateTemp("", tempFilePattern+"."+format)
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	encodeErr := p.encode(tmp, imaging.Clone(img), format)
	closeErr := tmp.Close()
	if err := errors.Join(encodeErr, closeErr); err != nil {
		return nil, apperror.Processing(fmt.Sprintf("converting to %s", format), srcPath, err)
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("reading converted image: %w", err)
	}
	return data, nil
}

func (p *ImageProcessorImpl) writeFile(path string, img image.Image, format string) (retErr error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, defaultFileMode)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			retErr = errors.Join(retErr, closeErr)
		}
		if retErr != nil {
			_ = os.Remove(path)
		}
	}()

	return p.encode(file, img, format)
}

func (p *ImageProcessorImpl) encode(w io.Writer, img image.Image, format string) error {
	if strings.EqualFold(format, webpFormatToken) {
		return encodeWebP(w, img, p.quality)
	}

	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return fmt.Errorf("unsupported format %q: %w", format, err)
	}

	if err := imaging.Encode(w, img, f,
		imaging.JPEGQuality(p.quality),
		imaging.PNGCompressionLevel(png.BestCompression),
	); err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	return nil
}

func (p *ImageProcessorImpl) posterize(img *image.NRGBA) *image.NRGBA {
	steps := float64(p.posterizeLevels - 1)
	quantize := func(v uint8) uint8 {
		level := math.Round(float64(v) * steps / 255)
		return uint8(math.Round(level * 255 / steps))
	}
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: quantize(c.R), G: quantize(c.G), B: quantize(c.B), A: c.A}
	})
}

// fitBox scales width x height to fit a box x box square, enlarging if needed.
func fitBox(width, height, box int) (int, int) {
	if width <= 0 || height <= 0 {
		return box, box
	}
	if width >= height {
		return box, max(1, int(math.Round(float64(height)*float64(box)/float64(width))))
	}
	return max(1, int(math.Round(float64(width)*float64(box)/float64(height)))), box
}

func formatOf(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}
