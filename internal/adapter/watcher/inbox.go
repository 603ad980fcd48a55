// Package watcher imports images dropped into an inbox directory.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

type Inbox struct {
	dir      string
	importer Importer
	debounce time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	timers  map[string]*time.Timer
	pending sync.WaitGroup
}

func NewInbox(dir string, importer Importer, debounce time.Duration, logger *zap.Logger) *Inbox {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inbox{
		dir:      dir,
		importer: importer,
		debounce: debounce,
		logger:   logger,
		timers:   make(map[string]*time.Timer),
	}
}

// Run imports files already in the inbox, then every file created or written
// until ctx is done. Imported files are removed; failed ones stay in place.
func (in *Inbox) Run(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(in.dir); err != nil {
		return fmt.Errorf("watching %s: %w", in.dir, err)
	}
	defer in.stop()

	importCtx := context.WithoutCancel(ctx)

	entries, err := os.ReadDir(in.dir)
	if err != nil {
		return fmt.Errorf("reading inbox: %w", err)
	}
	for _, e := range entries {
		if e.Type().IsRegular() && !hidden(e.Name()) {
			in.schedule(importCtx, filepath.Join(in.dir, e.Name()))
		}
	}

	in.logger.Info("watching inbox", zap.String("dir", in.dir))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if hidden(filepath.Base(ev.Name)) {
				continue
			}
			in.schedule(importCtx, ev.Name)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			in.logger.Warn("inbox watch error", zap.Error(err))
		}
	}
}

// schedule (re)starts the debounce timer of path.
func (in *Inbox) schedule(ctx context.Context, path string) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if t, ok := in.timers[path]; ok && t.Stop() {
		t.Reset(in.debounce)
		return
	}

	var t *time.Timer
	in.pending.Add(1)
	t = time.AfterFunc(in.debounce, func() {
		defer in.pending.Done()

		in.mu.Lock()
		if in.timers[path] == t {
			delete(in.timers, path)
		}
		in.mu.Unlock()

		in.process(ctx, path)
	})
	in.timers[path] = t
}

// stop cancels timers that have not fired and waits for running imports.
func (in *Inbox) stop() {
	in.mu.Lock()
	for path, t := range in.timers {
		if t.Stop() {
			in.pending.Done()
		}
		delete(in.timers, path)
	}
	in.mu.Unlock()

	in.pending.Wait()
}

func (in *Inbox) process(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || info.Size() == 0 {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		in.logger.Warn("reading inbox file", zap.String("path", path), zap.Error(err))
		return
	}

	id, err := in.importer.Import(ctx, data)
	if err != nil {
		in.logger.Warn("import failed", zap.String("path", path), zap.Error(err))
		return
	}

	if err := os.Remove(path); err != nil {
		in.logger.Warn("removing imported file", zap.String("path", path), zap.Error(err))
	}
	in.logger.Info("image imported", zap.String("path", path), zap.String("id", id))
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
