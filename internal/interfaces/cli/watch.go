package cli

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/turtacn/ScaffoldSieve/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScaffoldSieve/internal/infrastructure/tabular"
	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

const defaultWatchDebounce = 500 * time.Millisecond

// watchable reports whether location is a plain file path.
func watchable(location string) bool {
	return location != "" && location != tabular.StdioLocation && !strings.Contains(location, "://")
}

// watchInput calls run each time path is written or recreated until ctx is
// done.  The parent directory is watched so editors that replace the file on
// save are still seen.
func watchInput(ctx context.Context, path string, debounce time.Duration, log logging.Logger, run func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create file watcher")
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return errors.Wrap(err, errors.ErrCodeTableNotFound, "failed to watch input directory").WithDetail("path=" + dir)
	}
	log.Info("Watching input for changes", logging.String("path", path))
	return watchLoop(ctx, path, w.Events, w.Errors, debounce, log, run)
}

func watchLoop(ctx context.Context, path string, events <-chan fsnotify.Event, errs <-chan error,
	debounce time.Duration, log logging.Logger, run func(context.Context) error) error {

	target := filepath.Clean(path)
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			log.Debug("Input changed", logging.String("path", ev.Name), logging.String("op", ev.Op.String()))
			pending = time.After(debounce)
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			log.Warn("File watcher error", logging.Err(err))
		case <-pending:
			pending = nil
			if err := run(ctx); err != nil {
				log.Error("Screening rerun failed", logging.Err(err))
			}
		}
	}
}

//Personal.AI order the ending
