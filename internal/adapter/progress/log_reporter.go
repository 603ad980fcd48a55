package progress

import (
	"context"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/imgstore/internal/domain/entity"
)

// LogReporter writes resize events to a zap logger. Per-thumbnail steps are
// logged at debug, failures at warn and completions at info.
type LogReporter struct {
	logger *zap.Logger
}

func NewLogReporter(logger *zap.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

func (r *LogReporter) OnThumbnailProgress(_ context.Context, ev entity.ResizeEvent) {
	r.logger.Debug("thumbnail step",
		zap.String("id", ev.ID),
		zap.Strings("resized", ev.Resized),
		zap.Int("errors", ev.Errors),
	)
}

func (r *LogReporter) OnThumbnailError(_ context.Context, id string, err error) {
	r.logger.Warn("thumbnail failed", zap.String("id", id), zap.Error(err))
}

func (r *LogReporter) OnImageResized(_ context.Context, ev entity.ResizeEvent) {
	r.logger.Info("image resized",
		zap.String("id", ev.ID),
		zap.Strings("resized", ev.Resized),
		zap.Int("errors", ev.Errors),
	)
}

func (r *LogReporter) OnBulkProgress(_ context.Context, ev entity.BulkProgressEvent) {
	r.logger.Debug("bulk resize progress",
		zap.String("id", ev.ID),
		zap.Int("resized", ev.Resized),
		zap.Int("total", ev.Total),
	)
}

func (r *LogReporter) OnBulkComplete(_ context.Context, ev entity.BulkResizeEvent) {
	r.logger.Info("bulk resize complete",
		zap.Int("resized", ev.Resized),
		zap.Int("total", ev.Total),
	)
}
