package index

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/petdesk/internal/debounce"
)

// Watch starts an fsnotify watcher on the directory holding path and calls
// onChange once a burst of writes, replacements or removals of that file has
// been quiet for delay. It returns when ctx is cancelled.
//
// The directory is watched rather than the file because atomic writes
// replace the inode, which would silently drop a watch on the file itself.
func Watch(ctx context.Context, path string, delay time.Duration, logger *slog.Logger, onChange func()) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(target)); err != nil {
		return err
	}

	settle := debounce.New[fsnotify.Op](delay)
	defer settle.Close()

	logger.Info("watcher: started", slog.String("path", target))

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case op := <-settle.C():
			logger.Debug("watcher: file changed", slog.String("op", op.String()))
			onChange()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			settle.Set(ev.Op)

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
