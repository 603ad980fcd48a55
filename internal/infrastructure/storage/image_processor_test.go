package storage_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/imgstore/internal/domain/entity"
	"github.com/marcos-nsantos/imgstore/internal/infrastructure/storage"
	"github.com/marcos-nsantos/imgstore/internal/pkg/apperror"
)

func newTestImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func encodeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, newTestImage(width, height), &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, newTestImage(width, height)))
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func identifyFile(t *testing.T, p *storage.ImageProcessorImpl, path string) *entity.ImageMetadata {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	meta, err := p.Identify(data)
	require.NoError(t, err)
	return meta
}

func TestImageProcessor_Identify(t *testing.T) {
	p := storage.NewImageProcessor()

	t.Run("identifies jpeg", func(t *testing.T) {
		data := encodeJPEG(t, 512, 512)

		meta, err := p.Identify(data)

		require.NoError(t, err)
		assert.Equal(t, &entity.ImageMetadata{
			Format:    "jpeg",
			MediaType: "image/jpeg",
			Size:      int64(len(data)),
			Width:     512,
			Height:    512,
		}, meta)
	})

	t.Run("identifies png", func(t *testing.T) {
		data := encodePNG(t, 40, 20)

		meta, err := p.Identify(data)

		require.NoError(t, err)
		assert.Equal(t, "png", meta.Format)
		assert.Equal(t, "image/png", meta.MediaType)
		assert.Equal(t, 40, meta.Width)
		assert.Equal(t, 20, meta.Height)
	})

	t.Run("returns processing error for garbage", func(t *testing.T) {
		meta, err := p.Identify([]byte("definitely not an image"))

		assert.Nil(t, meta)
		assert.True(t, apperror.IsProcessing(err))
	})
}

func TestImageProcessor_Resize(t *testing.T) {
	p := storage.NewImageProcessor()

	t.Run("fits landscape image into box", func(t *testing.T) {
		dir := t.TempDir()
		src := writeFile(t, dir, "src.png", encodePNG(t, 200, 100))
		dest := filepath.Join(dir, "src.sm.png")

		err := p.Resize(src, dest, entity.ThumbnailSpec{Name: "sm", Size: 50})

		require.NoError(t, err)
		meta := identifyFile(t, p, dest)
		assert.Equal(t, 50, meta.Width)
		assert.Equal(t, 25, meta.Height)
	})

	t.Run("enlarges small image", func(t *testing.T) {
		dir := t.TempDir()
		src := writeFile(t, dir, "src.jpeg", encodeJPEG(t, 30, 60))
		dest := filepath.Join(dir, "src.md.jpeg")

		err := p.Resize(src, dest, entity.ThumbnailSpec{Name: "md", Size: 120, Progressive: true})

		require.NoError(t, err)
		meta := identifyFile(t, p, dest)
		assert.Equal(t, "jpeg", meta.Format)
		assert.Equal(t, 60, meta.Width)
		assert.Equal(t, 120, meta.Height)
	})

	t.Run("fails with source path when source is missing", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "missing.png")

		err := p.Resize(src, filepath.Join(dir, "missing.sm.png"), entity.ThumbnailSpec{Name: "sm", Size: 10})

		require.Error(t, err)
		assert.True(t, apperror.IsProcessing(err))
		assert.Equal(t, src, apperror.SourcePath(err))
	})

	t.Run("fails when destination cannot be written", func(t *testing.T) {
		dir := t.TempDir()
		src := writeFile(t, dir, "src.png", encodePNG(t, 10, 10))
		dest := filepath.Join(dir, "no-such-dir", "src.sm.png")

		err := p.Resize(src, dest, entity.ThumbnailSpec{Name: "sm", Size: 5})

		require.Error(t, err)
		assert.Equal(t, src, apperror.SourcePath(err))
		assert.NoFileExists(t, dest)
	})

	t.Run("rejects unknown output format", func(t *testing.T) {
		dir := t.TempDir()
		src := writeFile(t, dir, "src.png", encodePNG(t, 10, 10))
		dest := filepath.Join(dir, "src.sm.xyz")

		err := p.Resize(src, dest, entity.ThumbnailSpec{Name: "sm", Size: 5})

		assert.True(t, apperror.IsProcessing(err))
		assert.NoFileExists(t, dest)
	})
}

func TestImageProcessor_Convert(t *testing.T) {
	p := storage.NewImageProcessor()

	t.Run("converts jpeg to png", func(t *testing.T) {
		src := writeFile(t, t.TempDir(), "src.jpeg", encodeJPEG(t, 64, 32))

		data, err := p.Convert(src, "png")

		require.NoError(t, err)
		meta, err := p.Identify(data)
		require.NoError(t, err)
		assert.Equal(t, "png", meta.Format)
		assert.Equal(t, 64, meta.Width)
		assert.Equal(t, 32, meta.Height)
	})

	t.Run("webp output depends on the build", func(t *testing.T) {
		src := writeFile(t, t.TempDir(), "src.png", encodePNG(t, 16, 16))

		data, err := p.Convert(src, "webp")

		if !storage.WebPEncoding {
			assert.True(t, apperror.IsProcessing(err))
			return
		}
		require.NoError(t, err)
		meta, err := p.Identify(data)
		require.NoError(t, err)
		assert.Equal(t, "webp", meta.Format)
		assert.Equal(t, 16, meta.Width)
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		tmp := t.TempDir()
		t.Setenv("TMPDIR", tmp)
		src := writeFile(t, t.TempDir(), "src.png", encodePNG(t, 8, 8))

		_, err := p.Convert(src, "jpeg")
		require.NoError(t, err)
		_, err = p.Convert(src, "unknown")
		require.Error(t, err)

		entries, err := os.ReadDir(tmp)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestFormatForMediaType(t *testing.T) {
	assert.Equal(t, "webp", storage.FormatForMediaType("image/webp"))
	assert.Equal(t, "bmp", storage.FormatForMediaType("image/x-ms-bmp"))
	assert.Equal(t, "jpeg", storage.FormatForMediaType("image/jpeg; charset=binary"))
	assert.Equal(t, "", storage.FormatForMediaType("text/plain"))
}
