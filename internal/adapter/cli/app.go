package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/imgstore/internal/adapter/progress"
	"github.com/marcos-nsantos/imgstore/internal/adapter/repository"
	"github.com/marcos-nsantos/imgstore/internal/adapter/repository/postgres"
	rediscache "github.com/marcos-nsantos/imgstore/internal/adapter/repository/redis"
	"github.com/marcos-nsantos/imgstore/internal/adapter/storage"
	"github.com/marcos-nsantos/imgstore/internal/domain/entity"
	"github.com/marcos-nsantos/imgstore/internal/infrastructure/cache"
	"github.com/marcos-nsantos/imgstore/internal/infrastructure/config"
	"github.com/marcos-nsantos/imgstore/internal/infrastructure/database"
	infrastorage "github.com/marcos-nsantos/imgstore/internal/infrastructure/storage"
	"github.com/marcos-nsantos/imgstore/internal/usecase/imagestore"
	"github.com/marcos-nsantos/imgstore/internal/usecase/library"
)

var errCatalogDisabled = errors.New("image catalog is not configured (set DB_NAME)")

// App holds the services a command runs against.
type App struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	engine   *imagestore.Service
	summary  *bulkSummary
	library  *library.Service
	closers  []func()
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	app := &App{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		summary:  &bulkSummary{},
	}

	thumbnails, err := config.LoadThumbnails(cfg.Storage.ThumbnailsFile)
	if err != nil {
		return nil, err
	}

	metrics, err := progress.NewMetricsReporter(app.registry)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}

	app.engine, err = imagestore.NewService(
		imagestore.Config{Root: cfg.Storage.Root, Thumbnails: thumbnails},
		infrastorage.NewImageProcessor(),
		progress.Multi{progress.NewLogReporter(logger), metrics, app.summary},
		logger,
	)
	if err != nil {
		return nil, err
	}

	if cfg.Database.Enabled() {
		if err := app.initLibrary(ctx); err != nil {
			app.Close()
			return nil, err
		}
	}

	return app, nil
}

func (a *App) initLibrary(ctx context.Context) error {
	pool, err := database.NewPostgresPool(ctx, a.cfg.Database)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, pool.Close)

	if err := database.RunMigrations(ctx, pool, a.cfg.Database.MigrationsPath); err != nil {
		return err
	}

	var metaCache repository.MetadataCache
	if a.cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, a.cfg.Redis)
		if err != nil {
			a.logger.Warn("metadata cache unavailable, continuing without it", zap.Error(err))
		} else {
			a.closers = append(a.closers, func() { _ = client.Close() })
			metaCache = rediscache.NewMetadataCache(client)
		}
	}

	var mirror storage.ObjectStorage
	if a.cfg.S3.Enabled() {
		s3, err := infrastorage.NewS3Mirror(a.cfg.S3)
		if err != nil {
			return fmt.Errorf("creating s3 mirror: %w", err)
		}
		mirror = s3
	}

	a.library = library.NewService(
		a.engine,
		postgres.NewImageRepo(pool),
		metaCache,
		mirror,
		a.cfg.Storage.MetadataTTL,
		a.logger,
	)
	return nil
}

func (a *App) Library() (*library.Service, error) {
	if a.library == nil {
		return nil, errCatalogDisabled
	}
	return a.library, nil
}

// Close waits for detached resizes, flushes metrics and releases connections.
func (a *App) Close() {
	if a.engine != nil {
		a.engine.Wait()
	}

	if path := a.cfg.Metrics.Textfile; path != "" {
		if err := prometheus.WriteToTextfile(path, a.registry); err != nil {
			a.logger.Warn("writing metrics textfile", zap.String("path", path), zap.Error(err))
		}
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// bulkSummary keeps the outcome of the last bulk resize for command output.
type bulkSummary struct {
	progress.Nop

	mu   sync.Mutex
	last entity.BulkResizeEvent
}

func (b *bulkSummary) OnBulkComplete(_ context.Context, ev entity.BulkResizeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = ev
}

func (b *bulkSummary) Last() entity.BulkResizeEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}
