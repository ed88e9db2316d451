// Package watcher flags corpus staleness. It watches the corpus
// directory and invokes a callback when JSON files change, so long-lived
// sessions can recommend a rebuild without polling.
package watcher

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/shastra-labs/shastra-cli/internal/logger"
)

// debounceDuration coalesces editor save bursts into one callback.
const debounceDuration = 500 * time.Millisecond

// CorpusWatcher watches a corpus directory for JSON file changes.
type CorpusWatcher struct {
	watcher *fsnotify.Watcher
	onStale func()

	mu       sync.Mutex
	debounce *time.Timer
	done     chan struct{}
	once     sync.Once
}

// New creates a watcher over dir. onStale fires at most once per
// debounce window after a relevant change.
func New(dir string, onStale func()) (*CorpusWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	return &CorpusWatcher{
		watcher: fsw,
		onStale: onStale,
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching in a background goroutine.
func (w *CorpusWatcher) Start() {
	go w.watch()
}

// Close stops watching. Safe to call more than once.
func (w *CorpusWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()

		w.mu.Lock()
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.mu.Unlock()
	})
	return err
}

func (w *CorpusWatcher) watch() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			logger.Debug("Corpus change: %s %s", event.Op, event.Name)
			w.scheduleCallback()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Corpus watcher error: %v", err)

		case <-w.done:
			return
		}
	}
}

// relevant reports whether an event can affect the loaded corpus:
// create, write, remove or rename of a JSON file.
func relevant(event fsnotify.Event) bool {
	if !strings.HasSuffix(strings.ToLower(event.Name), ".json") {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func (w *CorpusWatcher) scheduleCallback() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debounceDuration, w.onStale)
}
