package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marcos-nsantos/imgstore/internal/adapter/watcher"
	"github.com/marcos-nsantos/imgstore/internal/domain/entity"
	"github.com/marcos-nsantos/imgstore/internal/pkg/pagination"
	"github.com/marcos-nsantos/imgstore/internal/usecase/imagestore"
	"github.com/marcos-nsantos/imgstore/internal/usecase/library"
)

type listResult struct {
	Images     []entity.Image   `json:"images"`
	Pagination *pagination.Info `json:"pagination"`
}

type publishResult struct {
	ID   string   `json:"id"`
	URLs []string `json:"urls"`
}

func newImportCommand(app func() *App) *cobra.Command {
	var uid, resize string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Store an image file and record it in the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := app().Library()
			if err != nil {
				return err
			}
			mode, err := imagestore.ParseResizeMode(resize)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			image, err := lib.Import(cmd.Context(), library.ImportInput{Data: data, UID: uid, Resize: mode})
			if err != nil {
				return err
			}
			return writeJSON(cmd, image)
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "stem to store the image under instead of a generated one")
	cmd.Flags().StringVar(&resize, "resize", "sync", "thumbnail generation: sync, async or skip")
	return cmd
}

func newListCommand(app func() *App) *cobra.Command {
	var page, perPage int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalogued images, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := app().Library()
			if err != nil {
				return err
			}
			images, info, err := lib.List(cmd.Context(), page, perPage)
			if err != nil {
				return err
			}
			return writeJSON(cmd, listResult{Images: images, Pagination: info})
		},
	}
	cmd.Flags().IntVar(&page, "page", pagination.DefaultPage, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", pagination.DefaultPerPage, "images per page")
	return cmd
}

func newRemoveCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a catalogued image everywhere",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := app().Library()
			if err != nil {
				return err
			}
			if err := lib.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			return writeJSON(cmd, idResult{ID: args[0]})
		},
	}
}

func newPublishCommand(app func() *App) *cobra.Command {
	var expires time.Duration

	cmd := &cobra.Command{
		Use:   "publish <id>",
		Short: "Upload an image and its thumbnails to the remote mirror",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := app().Library()
			if err != nil {
				return err
			}
			urls, err := lib.Publish(cmd.Context(), args[0], expires)
			if err != nil {
				return err
			}
			return writeJSON(cmd, publishResult{ID: args[0], URLs: urls})
		},
	}

	cmd.Flags().DurationVar(&expires, "expires", 0, "return presigned URLs valid for this long instead of public ones")
	return cmd
}

func newWatchCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Import every image dropped into the inbox directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			dir := a.cfg.Storage.InboxDir
			if dir == "" {
				return errors.New("inbox directory is not configured (set IMGSTORE_INBOX_DIR)")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			inbox := watcher.NewInbox(dir, a.importer(), a.cfg.Storage.WatchDebounce, a.logger)
			return inbox.Run(ctx)
		},
	}
}

// importer records into the catalog when it is configured and stores directly
// otherwise.
func (a *App) importer() watcher.Importer {
	if a.library != nil {
		return watcher.ImporterFunc(func(ctx context.Context, data []byte) (string, error) {
			image, err := a.library.Import(ctx, library.ImportInput{Data: data, Resize: imagestore.ResizeAsync})
			if err != nil {
				return "", err
			}
			return image.ID, nil
		})
	}
	return watcher.ImporterFunc(func(ctx context.Context, data []byte) (string, error) {
		return a.engine.Save(ctx, data, imagestore.SaveOptions{Resize: imagestore.ResizeAsync})
	})
}
