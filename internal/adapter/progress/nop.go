package progress

import (
	"context"

	"github.com/marcos-nsantos/imgstore/internal/domain/entity"
)

// Nop discards every notification.
type Nop struct{}

func (Nop) OnThumbnailProgress(context.Context, entity.ResizeEvent) {}
func (Nop) OnThumbnailError(context.Context, string, error) {}
func (Nop) OnImageResized(context.Context, entity.ResizeEvent) {}
func (Nop) OnBulkProgress(context.Context, entity.BulkProgressEvent) {}
func (Nop) OnBulkComplete(context.Context, entity.BulkResizeEvent) {}
