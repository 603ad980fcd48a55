package watcher

import "context"

//go:generate mockgen -source=interfaces.go -destination=../../mocks/watcher_mocks.go -package=mocks

// Importer stores one image read from the inbox and returns its id.
type Importer interface {
	Import(ctx context.Context, data []byte) (string, error)
}

// ImporterFunc adapts a function to Importer.
type ImporterFunc func(ctx context.Context, data []byte) (string, error)

func (f ImporterFunc) Import(ctx context.Context, data []byte) (string, error) {
	return f(ctx, data)
}
