package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcos-nsantos/imgstore/internal/domain/entity"
	"github.com/marcos-nsantos/imgstore/internal/usecase/imagestore"
)

type idResult struct {
	ID string `json:"id"`
}

type pathResult struct {
	ID    string `json:"id"`
	Path  string `json:"path,omitempty"`
	Found bool   `json:"found"`
}

type metadataResult struct {
	ID       string                `json:"id"`
	Metadata *entity.ImageMetadata `json:"metadata,omitempty"`
	Found    bool                  `json:"found"`
}

type convertResult struct {
	Source string `json:"source"`
	ID     string `json:"id,omitempty"`
	Found  bool   `json:"found"`
}

func newSaveCommand(app func() *App) *cobra.Command {
	var uid, resize string

	cmd := &cobra.Command{
		Use:   "save <file>",
		Short: "Store an image file and generate its thumbnails",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := imagestore.ParseResizeMode(resize)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			id, err := app().engine.Save(cmd.Context(), data, imagestore.SaveOptions{Resize: mode, UID: uid})
			if err != nil {
				return err
			}
			return writeJSON(cmd, idResult{ID: id})
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "stem to store the image under instead of a generated one")
	cmd.Flags().StringVar(&resize, "resize", "sync", "thumbnail generation: sync, async or skip")
	return cmd
}

func newDeleteCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an image with its thumbnails and metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app().engine.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return writeJSON(cmd, idResult{ID: args[0]})
		},
	}
}

func newPathCommand(app func() *App) *cobra.Command {
	var thumbnail string
	var fallback []string

	cmd := &cobra.Command{
		Use:   "path <id>",
		Short: "Print the path of an image or one of its thumbnails",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, ok := app().engine.ImagePath(args[0], thumbnail, fallback...)
			return writeJSON(cmd, pathResult{ID: args[0], Path: path, Found: ok})
		},
	}
	cmd.Flags().StringVar(&thumbnail, "thumbnail", "", "thumbnail name; empty for the original")
	cmd.Flags().StringSliceVar(&fallback, "fallback", nil, `thumbnails to try next, "original" for the original image`)
	return cmd
}

func newMetadataCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "metadata <id>",
		Short: "Print the stored metadata of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, ok, err := app().engine.Metadata(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd, metadataResult{ID: args[0], Metadata: meta, Found: ok})
		},
	}
}

func newConvertCommand(app func() *App) *cobra.Command {
	var resize string

	cmd := &cobra.Command{
		Use:   "convert <id> <format>",
		Short: "Store a copy of an image in another format under the same uid",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := imagestore.ParseResizeMode(resize)
			if err != nil {
				return err
			}
			id, ok, err := app().engine.Convert(cmd.Context(), args[0], args[1], mode)
			if err != nil {
				return err
			}
			return writeJSON(cmd, convertResult{Source: args[0], ID: id, Found: ok})
		},
	}
	cmd.Flags().StringVar(&resize, "resize", "sync", "thumbnail generation: sync, async or skip")
	return cmd
}

func newResizeCommand(app func() *App) *cobra.Command {
	var clean bool

	cmd := &cobra.Command{
		Use:   "resize <id>",
		Short: "Regenerate the thumbnails of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app().engine.Resize(cmd.Context(), args[0], imagestore.ResizeOptions{Clean: clean}); err != nil {
				return err
			}
			return writeJSON(cmd, idResult{ID: args[0]})
		},
	}
	cmd.Flags().BoolVar(&clean, "clean", false, "remove existing thumbnails first")
	return cmd
}

func newResizeAllCommand(app func() *App) *cobra.Command {
	var clean bool

	cmd := &cobra.Command{
		Use:   "resize-all",
		Short: "Regenerate the thumbnails of every stored image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			if err := a.engine.ResizeAll(cmd.Context(), imagestore.ResizeOptions{Clean: clean}); err != nil {
				return err
			}
			return writeJSON(cmd, a.summary.Last())
		},
	}
	cmd.Flags().BoolVar(&clean, "clean", false, "remove existing thumbnails first")
	return cmd
}
