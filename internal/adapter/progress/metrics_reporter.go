package progress

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/marcos-nsantos/imgstore/internal/domain/entity"
)

const namespace = "imgstore"

type MetricsReporter struct {
	thumbnailsGenerated prometheus.Counter
	thumbnailErrors     prometheus.Counter
	imagesResized       prometheus.Counter
	bulkProgress        prometheus.Gauge
}

// NewMetricsReporter registers the resize collectors on reg.
func NewMetricsReporter(reg prometheus.Registerer) (*MetricsReporter, error) {
	r := &MetricsReporter{
		thumbnailsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "thumbnails_generated_total",
			Help:      "Thumbnails written successfully.",
		}),
		thumbnailErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "thumbnail_errors_total",
			Help:      "Thumbnails that failed to render.",
		}),
		imagesResized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "images_resized_total",
			Help:      "Images whose thumbnail set was regenerated.",
		}),
		bulkProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bulk_progress_ratio",
			Help:      "Fraction of images visited by the running bulk resize.",
		}),
	}

	for _, c := range []prometheus.Collector{
		r.thumbnailsGenerated,
		r.thumbnailErrors,
		r.imagesResized,
		r.bulkProgress,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// OnThumbnailProgress is a no-op: the per-step event carries no delta, so the
// completion event is counted instead.
func (r *MetricsReporter) OnThumbnailProgress(context.Context, entity.ResizeEvent) {}

func (r *MetricsReporter) OnThumbnailError(context.Context, string, error) {
	r.thumbnailErrors.Inc()
}

func (r *MetricsReporter) OnImageResized(_ context.Context, ev entity.ResizeEvent) {
	r.thumbnailsGenerated.Add(float64(len(ev.Resized)))
	r.imagesResized.Inc()
}

func (r *MetricsReporter) OnBulkProgress(_ context.Context, ev entity.BulkProgressEvent) {
	r.bulkProgress.Set(ratio(ev.Resized, ev.Total))
}

func (r *MetricsReporter) OnBulkComplete(_ context.Context, ev entity.BulkResizeEvent) {
	r.bulkProgress.Set(ratio(ev.Resized, ev.Total))
}

func ratio(n, total int) float64 {
	if total == 0 {
		return 1
	}
	return float64(n) / float64(total)
}
