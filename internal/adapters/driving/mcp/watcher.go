package mcp

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// debounceDelay coalesces editor write bursts into one re-index.
const debounceDelay = 500 * time.Millisecond

// Watch re-indexes the document whenever the file at path changes.
// It blocks until the context is cancelled. Only useful for local
// file sources; callers skip it for stdin and remote locations.
func (s *Server) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	logger.Debug("Watching %s for changes", path)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// Restart the debounce window on every burst write.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case <-pending:
			logger.Info("Document changed, re-indexing")
			if err := s.Reindex(ctx); err != nil {
				logger.Warn("Re-index failed: %v", err)
			}
			// Editors that replace the file drop the watch; re-add.
			if err := watcher.Add(path); err != nil {
				logger.Warn("Re-watch failed: %v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}
