package tabular

import (
	"context"
	"time"

	"github.com/turtacn/ScaffoldSieve/internal/domain/candidate"
	"github.com/turtacn/ScaffoldSieve/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

// FileLoader loads one candidate table from a location through a Store.
type FileLoader struct {
	store    Store
	location string
	opts     LoaderOptions
	logger   logging.Logger
}

// LoaderOptions configures FileLoader.  An empty Delimiter is derived from
// the location's extension.
type LoaderOptions struct {
	Delimiter    string
	Encoding     string
	SMILESColumn string
}

// NewFileLoader validates options eagerly so that configuration mistakes
// surface before any I/O.
func NewFileLoader(store Store, location string, opts LoaderOptions, log logging.Logger) (*FileLoader, error) {
	if location == "" {
		return nil, errors.NewValidationError("input.path", "input location is required")
	}
	if _, err := DelimiterFor(location, opts.Delimiter); err != nil {
		return nil, err
	}
	if err := ValidateEncoding(opts.Encoding); err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &FileLoader{store: store, location: location, opts: opts, logger: log}, nil
}

// Location returns the configured source.
func (l *FileLoader) Location() string { return l.location }

// Load opens the source and parses the whole table.
func (l *FileLoader) Load(ctx context.Context) (*candidate.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCancelled, "load cancelled")
	}
	start := time.Now()
	delim, _ := DelimiterFor(l.location, l.opts.Delimiter)

	rc, err := l.store.Open(ctx, l.location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	table, err := Read(rc, ReadOptions{
		Delimiter:    delim,
		Encoding:     l.opts.Encoding,
		SMILESColumn: l.opts.SMILESColumn,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnknown, "failed to load table").WithDetail("location=" + l.location)
	}

	l.logger.Info("Loaded candidate table",
		logging.String("location", l.location),
		logging.Int("records", table.Len()),
		logging.Int("columns", len(table.Header().Columns())),
		logging.Duration("elapsed", time.Since(start)))
	return table, nil
}

// Export writes table to location using the delimiter implied by the
// location and the configured override.
func Export(ctx context.Context, store Store, location, delimiter string, table *candidate.Table) error {
	delim, err := DelimiterFor(location, delimiter)
	if err != nil {
		return err
	}
	wc, err := store.Create(ctx, location)
	if err != nil {
		return err
	}
	if err := Write(wc, table, delim); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return errors.Wrap(err, errors.CodeUnknown, "failed to finalise export").WithDetail("location=" + location)
	}
	return nil
}

//Personal.AI order the ending
