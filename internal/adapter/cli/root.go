// Package cli exposes the image store as an imgstore command tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/imgstore/internal/infrastructure/config"
	"github.com/marcos-nsantos/imgstore/internal/infrastructure/observability"
)

// Execute runs the command line in args and writes results to stdout. The
// application is closed before it returns, so detached resizes complete.
func Execute(ctx context.Context, args []string, stdout io.Writer) error {
	var app *App
	defer func() {
		if app != nil {
			app.Close()
			_ = app.logger.Sync()
		}
	}()

	root := newRootCommand(&app)
	root.SetArgs(args)
	root.SetOut(stdout)
	err := root.ExecuteContext(ctx)
	if err != nil && app != nil {
		app.logger.Error("command failed", errorFields(err)...)
	}
	return err
}

func newRootCommand(app **App) *cobra.Command {
	root := &cobra.Command{
		Use:          "imgstore",
		Short:        "Store images under sharded paths and maintain their thumbnails",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}

			a, err := NewApp(cmd.Context(), cfg, logger)
			if err != nil {
				logger.Error("initialising", zap.Error(err))
				return err
			}
			*app = a
			return nil
		},
	}

	get := func() *App { return *app }
	root.AddCommand(
		newSaveCommand(get),
		newDeleteCommand(get),
		newPathCommand(get),
		newMetadataCommand(get),
		newConvertCommand(get),
		newResizeCommand(get),
		newResizeAllCommand(get),
		newImportCommand(get),
		newListCommand(get),
		newRemoveCommand(get),
		newPublishCommand(get),
		newWatchCommand(get),
	)

	return root
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
