package main

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/osler/analysers/analyser/internal/watch"
)

// dataWatcher runs one watch.Files goroutine over the data files and can
// rebind it to new paths after a config reload.
type dataWatcher struct {
	parent   context.Context
	onChange func(path string)

	mu     sync.Mutex
	paths  []string
	cancel context.CancelFunc
	done   chan struct{}
}

func newDataWatcher(ctx context.Context, onChange func(path string)) *dataWatcher {
	return &dataWatcher{parent: ctx, onChange: onChange}
}

// bind watches paths, replacing any previous set. An empty set stops
// watching. Binding the same set again is a no-op.
func (w *dataWatcher) bind(paths []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.done != nil && slices.Equal(w.paths, paths) {
		return
	}
	w.stopLocked()
	w.paths = slices.Clone(paths)
	if len(paths) == 0 {
		return
	}

	ctx, cancel := context.WithCancel(w.parent)
	done := make(chan struct{})
	w.cancel, w.done = cancel, done
	go func() {
		defer close(done)
		if err := watch.Files(ctx, paths, w.onChange); err != nil {
			slog.Error("data watcher stopped", "paths", paths, "err", err)
		}
	}()
}

// stop ends the current watch and waits for it to return.
func (w *dataWatcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopLocked()
}

func (w *dataWatcher) stopLocked() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
	w.cancel, w.done = nil, nil
}
