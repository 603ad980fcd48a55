package watcher_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/marcos-nsantos/imgstore/internal/adapter/watcher"
	"github.com/marcos-nsantos/imgstore/internal/mocks"
)

const debounce = 20 * time.Millisecond

func startInbox(t *testing.T, dir string, importer watcher.Importer) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	inbox := watcher.NewInbox(dir, importer, debounce, zaptest.NewLogger(t))

	done := make(chan error, 1)
	go func() { done <- inbox.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("inbox did not stop")
		}
	})
}

func TestInbox_Run(t *testing.T) {
	t.Run("imports existing and new files", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		importer := mocks.NewMockImporter(ctrl)
		dir := t.TempDir()
		existing := filepath.Join(dir, "existing.jpg")
		require.NoError(t, os.WriteFile(existing, []byte("first"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".partial"), []byte("hidden"), 0o644))

		importer.EXPECT().Import(gomock.Any(), []byte("first")).Return("a.jpeg", nil)
		importer.EXPECT().Import(gomock.Any(), []byte("second")).Return("b.png", nil)

		startInbox(t, dir, importer)

		require.Eventually(t, func() bool {
			_, err := os.Stat(existing)
			return os.IsNotExist(err)
		}, 3*time.Second, 10*time.Millisecond)

		dropped := filepath.Join(dir, "dropped.png")
		require.NoError(t, os.WriteFile(dropped, []byte("second"), 0o644))

		require.Eventually(t, func() bool {
			_, err := os.Stat(dropped)
			return os.IsNotExist(err)
		}, 3*time.Second, 10*time.Millisecond)
		assert.FileExists(t, filepath.Join(dir, ".partial"))
	})

	t.Run("keeps files that fail to import", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		importer := mocks.NewMockImporter(ctrl)
		dir := t.TempDir()
		imported := make(chan struct{}, 1)

		importer.EXPECT().Import(gomock.Any(), []byte("broken")).
			DoAndReturn(func(context.Context, []byte) (string, error) {
				select {
				case imported <- struct{}{}:
				default:
				}
				return "", errors.New("unsupported media type")
			}).MinTimes(1)

		startInbox(t, dir, importer)
		bad := filepath.Join(dir, "bad.txt")
		require.NoError(t, os.WriteFile(bad, []byte("broken"), 0o644))

		select {
		case <-imported:
		case <-time.After(3 * time.Second):
			t.Fatal("import was not attempted")
		}
		assert.FileExists(t, bad)
	})

	t.Run("fails for missing directory", func(t *testing.T) {
		inbox := watcher.NewInbox(filepath.Join(t.TempDir(), "nope"), watcher.ImporterFunc(
			func(context.Context, []byte) (string, error) { return "", nil },
		), debounce, nil)

		assert.Error(t, inbox.Run(context.Background()))
	})
}
