// Package watch provides the bulk-load drop directory: JSON batches of
// raw items written into the directory are ingested into the catalog
// and removed once processed.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driving"
	"github.com/custodia-labs/promptfeed-cli/internal/logger"
)

// BatchExtension is the file extension a drop file must carry.
const BatchExtension = ".json"

// Watcher ingests raw-item batch files dropped into a directory.
type Watcher struct {
	ingestor driving.Ingestor
	dir      string
}

// NewWatcher creates a watcher over the drop directory, creating the
// directory if it does not exist.
func NewWatcher(ingestor driving.Ingestor, dir string) (*Watcher, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: drop directory required", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating drop directory: %w", err)
	}
	return &Watcher{ingestor: ingestor, dir: dir}, nil
}

// Run processes batches already present in the directory, then blocks
// watching for new ones until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.scanExisting(ctx); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Info("Watching %s for batch files", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !isBatchFile(event.Name) {
				continue
			}
			if err := w.processFile(ctx, event.Name); err != nil {
				logger.Warn("Batch %s: %v", filepath.Base(event.Name), err)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// scanExisting ingests batch files that were dropped while the watcher
// was not running.
func (w *Watcher) scanExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("scan drop directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isBatchFile(entry.Name()) {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if err := w.processFile(ctx, path); err != nil {
			logger.Warn("Batch %s: %v", entry.Name(), err)
		}
	}
	return nil
}

// processFile ingests one batch file and removes it on success. A file
// that cannot be parsed is renamed aside so it is not retried forever.
func (w *Watcher) processFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read batch: %w", err)
	}

	var items []domain.RawItem
	if err := json.Unmarshal(data, &items); err != nil {
		if renameErr := os.Rename(path, path+".rejected"); renameErr != nil {
			logger.Warn("Could not set aside %s: %v", filepath.Base(path), renameErr)
		}
		return fmt.Errorf("decode batch: %w", err)
	}

	report, err := w.ingestor.Ingest(ctx, items)
	if err != nil {
		return fmt.Errorf("ingest batch: %w", err)
	}
	logger.Info("Batch %s: %d ingested, %d duplicates, %d failures",
		filepath.Base(path), report.Ingested, report.Duplicates, len(report.Failures))

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove processed batch: %w", err)
	}
	return nil
}

// isBatchFile reports whether a path names a processable drop file.
// Hidden files and already-rejected files are skipped.
func isBatchFile(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return filepath.Ext(name) == BatchExtension
}
