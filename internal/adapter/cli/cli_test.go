package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/imgstore/internal/adapter/cli"
	"github.com/marcos-nsantos/imgstore/internal/domain"
	"github.com/marcos-nsantos/imgstore/internal/pkg/apperror"
)

func setupEnv(t *testing.T) (root, dir string) {
	t.Helper()
	root = filepath.Join(t.TempDir(), "store")
	dir = t.TempDir()

	thumbnails := filepath.Join(dir, "thumbnails.yaml")
	require.NoError(t, os.WriteFile(thumbnails, []byte("thumbnails:\n  - {name: sm, size: 16}\n"), 0o644))

	t.Setenv("IMGSTORE_ROOT", root)
	t.Setenv("IMGSTORE_THUMBNAILS_FILE", thumbnails)
	t.Setenv("METRICS_TEXTFILE", filepath.Join(dir, "imgstore.prom"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DB_NAME", "")
	return root, dir
}

func writeJPEG(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := range width {
		img.Set(x, x%height, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func run(t *testing.T, out any, args ...string) {
	t.Helper()
	var stdout bytes.Buffer
	require.NoError(t, cli.Execute(context.Background(), args, &stdout))
	if out != nil {
		require.NoError(t, json.Unmarshal(stdout.Bytes(), out))
	}
}

func TestExecute_EngineCommands(t *testing.T) {
	root, dir := setupEnv(t)
	src := filepath.Join(dir, "photo.jpg")
	writeJPEG(t, src, 64, 48)

	var saved struct{ ID string }
	run(t, &saved, "save", src)
	require.NotEmpty(t, saved.ID)

	var thumb struct {
		Path  string
		Found bool
	}
	run(t, &thumb, "path", saved.ID, "--thumbnail", "sm")
	assert.True(t, thumb.Found)
	assert.Contains(t, thumb.Path, root)

	var fallback struct {
		Path  string
		Found bool
	}
	run(t, &fallback, "path", saved.ID, "--thumbnail", "lg", "--fallback", "original")
	assert.True(t, fallback.Found)
	assert.NotEqual(t, thumb.Path, fallback.Path)

	var meta struct {
		Metadata struct {
			Format string
			Width  int
			Height int
		}
		Found bool
	}
	run(t, &meta, "metadata", saved.ID)
	assert.True(t, meta.Found)
	assert.Equal(t, "jpeg", meta.Metadata.Format)
	assert.Equal(t, 64, meta.Metadata.Width)
	assert.Equal(t, 48, meta.Metadata.Height)

	var converted struct {
		ID    string
		Found bool
	}
	run(t, &converted, "convert", saved.ID, "png", "--resize", "skip")
	assert.True(t, converted.Found)
	assert.Equal(t, ".png", filepath.Ext(converted.ID))

	var bulk struct{ Resized, Total int }
	run(t, &bulk, "resize-all", "--clean")
	assert.Equal(t, 2, bulk.Resized)
	assert.Equal(t, 2, bulk.Total)
	metrics, err := os.ReadFile(filepath.Join(dir, "imgstore.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "imgstore_images_resized_total 2")

	run(t, nil, "delete", saved.ID)
	var gone struct{ Found bool }
	run(t, &gone, "path", saved.ID)
	assert.False(t, gone.Found)
}

func TestExecute_Errors(t *testing.T) {
	_, dir := setupEnv(t)

	t.Run("catalog commands need a database", func(t *testing.T) {
		err := cli.Execute(context.Background(), []string{"list"}, &bytes.Buffer{})

		assert.ErrorContains(t, err, "catalog")
	})

	t.Run("unknown resize mode", func(t *testing.T) {
		src := filepath.Join(dir, "photo.jpg")
		writeJPEG(t, src, 8, 8)

		err := cli.Execute(context.Background(), []string{"save", src, "--resize", "later"}, &bytes.Buffer{})

		assert.Error(t, err)
	})

	t.Run("non-image input is a data error", func(t *testing.T) {
		src := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(src, []byte("plain text"), 0o644))

		err := cli.Execute(context.Background(), []string{"save", src}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, cli.ExitDataErr, cli.ExitCode(err))
	})

	t.Run("missing root", func(t *testing.T) {
		t.Setenv("IMGSTORE_ROOT", "")
		os.Unsetenv("IMGSTORE_ROOT")

		err := cli.Execute(context.Background(), []string{"path", "x.png"}, &bytes.Buffer{})

		assert.Error(t, err)
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: 0},
		{name: "processing", err: fmt.Errorf("identifying image: %w", apperror.Processing("bad header", "/tmp/x", nil)), want: cli.ExitDataErr},
		{name: "invalid id", err: domain.ErrInvalidImageID, want: cli.ExitDataErr},
		{name: "storage", err: apperror.Storage("write", "/var/images/a", os.ErrPermission), want: cli.ExitIOErr},
		{name: "not found", err: fmt.Errorf("removing: %w", domain.ErrImageNotFound), want: cli.ExitNotFound},
		{name: "other", err: errors.New("boom"), want: cli.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}
