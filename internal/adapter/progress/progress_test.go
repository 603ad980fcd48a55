package progress_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/marcos-nsantos/imgstore/internal/adapter/progress"
	"github.com/marcos-nsantos/imgstore/internal/domain/entity"
	"github.com/marcos-nsantos/imgstore/internal/mocks"
)

func TestLogReporter(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.DebugLevel)
	r := progress.NewLogReporter(zap.New(core))

	r.OnThumbnailProgress(ctx, entity.ResizeEvent{ID: "a.png", Resized: []string{"sm"}})
	r.OnThumbnailError(ctx, "a.png", errors.New("boom"))
	r.OnImageResized(ctx, entity.ResizeEvent{ID: "a.png", Resized: []string{"sm"}, Errors: 1})
	r.OnBulkProgress(ctx, entity.BulkProgressEvent{ID: "a.png", Resized: 1, Total: 2})
	r.OnBulkComplete(ctx, entity.BulkResizeEvent{Resized: 2, Total: 2})

	entries := logs.AllUntimed()
	require.Len(t, entries, 5)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
	assert.Equal(t, "image resized", entries[2].Message)
	assert.Equal(t, int64(1), entries[2].ContextMap()["errors"])
	assert.Equal(t, int64(2), entries[4].ContextMap()["total"])
}

func TestMetricsReporter(t *testing.T) {
	ctx := context.Background()

	t.Run("counts thumbnails and images", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		r, err := progress.NewMetricsReporter(reg)
		require.NoError(t, err)

		r.OnThumbnailError(ctx, "a.png", errors.New("boom"))
		r.OnImageResized(ctx, entity.ResizeEvent{ID: "a.png", Resized: []string{"sm", "md"}, Errors: 1})
		r.OnImageResized(ctx, entity.ResizeEvent{ID: "b.png", Resized: []string{"sm"}})
		r.OnBulkProgress(ctx, entity.BulkProgressEvent{ID: "b.png", Resized: 1, Total: 4})

		count, err := testutil.GatherAndCount(reg)
		require.NoError(t, err)
		assert.Equal(t, 4, count)
		assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP imgstore_thumbnails_generated_total Thumbnails written successfully.
# TYPE imgstore_thumbnails_generated_total counter
imgstore_thumbnails_generated_total 3
# HELP imgstore_thumbnail_errors_total Thumbnails that failed to render.
# TYPE imgstore_thumbnail_errors_total counter
imgstore_thumbnail_errors_total 1
# HELP imgstore_images_resized_total Images whose thumbnail set was regenerated.
# TYPE imgstore_images_resized_total counter
imgstore_images_resized_total 2
# HELP imgstore_bulk_progress_ratio Fraction of images visited by the running bulk resize.
# TYPE imgstore_bulk_progress_ratio gauge
imgstore_bulk_progress_ratio 0.25
`)))
	})

	t.Run("empty bulk run completes the gauge", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		r, err := progress.NewMetricsReporter(reg)
		require.NoError(t, err)

		r.OnBulkComplete(ctx, entity.BulkResizeEvent{})

		count, err := testutil.GatherAndCount(reg, "imgstore_bulk_progress_ratio")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("rejects double registration", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		_, err := progress.NewMetricsReporter(reg)
		require.NoError(t, err)

		_, err = progress.NewMetricsReporter(reg)

		assert.Error(t, err)
	})
}

func TestMulti(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	first := mocks.NewMockProgressReporter(ctrl)
	second := mocks.NewMockProgressReporter(ctrl)
	m := progress.Multi{first, second, progress.Nop{}}

	ev := entity.ResizeEvent{ID: "a.png", Resized: []string{"sm"}}
	err := errors.New("boom")
	gomock.InOrder(
		first.EXPECT().OnThumbnailProgress(ctx, ev),
		second.EXPECT().OnThumbnailProgress(ctx, ev),
		first.EXPECT().OnThumbnailError(ctx, "a.png", err),
		second.EXPECT().OnThumbnailError(ctx, "a.png", err),
		first.EXPECT().OnImageResized(ctx, ev),
		second.EXPECT().OnImageResized(ctx, ev),
		first.EXPECT().OnBulkProgress(ctx, entity.BulkProgressEvent{ID: "a.png", Resized: 1, Total: 1}),
		second.EXPECT().OnBulkProgress(ctx, entity.BulkProgressEvent{ID: "a.png", Resized: 1, Total: 1}),
		first.EXPECT().OnBulkComplete(ctx, entity.BulkResizeEvent{Resized: 1, Total: 1}),
		second.EXPECT().OnBulkComplete(ctx, entity.BulkResizeEvent{Resized: 1, Total: 1}),
	)

	m.OnThumbnailProgress(ctx, ev)
	m.OnThumbnailError(ctx, "a.png", err)
	m.OnImageResized(ctx, ev)
	m.OnBulkProgress(ctx, entity.BulkProgressEvent{ID: "a.png", Resized: 1, Total: 1})
	m.OnBulkComplete(ctx, entity.BulkResizeEvent{Resized: 1, Total: 1})
}
