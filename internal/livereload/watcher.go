package livereload

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/ziadkadry99/cheatsheet/internal/content"
	"github.com/ziadkadry99/cheatsheet/internal/logging"
)

// DefaultDebounce collapses a burst of file events into one reload.
const DefaultDebounce = 250 * time.Millisecond

// Watcher watches a content directory and announces changed documents.
type Watcher struct {
	dir      string
	debounce time.Duration
	out      Broadcaster
	logger   *zap.Logger
	fsw      *fsnotify.Watcher
}

// NewWatcher watches dir and every directory below it.
func NewWatcher(dir string, out Broadcaster, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	w := &Watcher{dir: dir, debounce: debounce, out: out, logger: logging.OrNop(logger), fsw: fsw}
	if err := w.addTree(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// Run delivers debounced change notices until ctx is done. It closes the
// underlying watcher before returning.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	var pending string
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if rel, ok := w.relevant(ev); ok {
				pending = rel
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("content watcher error", zap.Error(err))

		case <-timer.C:
			w.logger.Debug("content changed", zap.String("path", pending))
			w.out.Broadcast(Message{Type: "reload", Path: pending})
			pending = ""
		}
	}
}

// relevant reports whether ev touches a content document, and its path
// relative to the content directory. New directories are watched as well.
func (w *Watcher) relevant(ev fsnotify.Event) (string, bool) {
	if ev.Op == fsnotify.Chmod {
		return "", false
	}
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				w.logger.Warn("watching new directory", zap.String("dir", ev.Name), zap.Error(err))
			}
			return "", false
		}
	}
	ext := strings.ToLower(filepath.Ext(ev.Name))
	if ext != content.RichExt && ext != content.PlainExt {
		return "", false
	}
	rel, err := filepath.Rel(w.dir, ev.Name)
	if err != nil {
		rel = ev.Name
	}
	return filepath.ToSlash(rel), true
}
