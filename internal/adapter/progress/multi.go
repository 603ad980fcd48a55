package progress

import (
	"context"

	"github.com/marcos-nsantos/imgstore/internal/adapter/storage"
	"github.com/marcos-nsantos/imgstore/internal/domain/entity"
)

// Multi forwards every notification to each reporter in order.
type Multi []storage.ProgressReporter

func (m Multi) OnThumbnailProgress(ctx context.Context, ev entity.ResizeEvent) {
	for _, r := range m {
		r.OnThumbnailProgress(ctx, ev)
	}
}

func (m Multi) OnThumbnailError(ctx context.Context, id string, err error) {
	for _, r := range m {
		r.OnThumbnailError(ctx, id, err)
	}
}

func (m Multi) OnImageResized(ctx context.Context, ev entity.ResizeEvent) {
	for _, r := range m {
		r.OnImageResized(ctx, ev)
	}
}

func (m Multi) OnBulkProgress(ctx context.Context, ev entity.BulkProgressEvent) {
	for _, r := range m {
		r.OnBulkProgress(ctx, ev)
	}
}

func (m Multi) OnBulkComplete(ctx context.Context, ev entity.BulkResizeEvent) {
	for _, r := range m {
		r.OnBulkComplete(ctx, ev)
	}
}
