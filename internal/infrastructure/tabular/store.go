package tabular

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

// StdioLocation names standard input or output.
const StdioLocation = "-"

// Store opens table sources and creates table sinks by location.
type Store interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
	Create(ctx context.Context, location string) (io.WriteCloser, error)
}

// LocalStore serves filesystem paths and "-" for the standard streams.
type LocalStore struct {
	Stdin  io.Reader
	Stdout io.Writer
}

// NewLocalStore returns a store bound to the process standard streams.
func NewLocalStore() *LocalStore {
	return &LocalStore{Stdin: os.Stdin, Stdout: os.Stdout}
}

func (s *LocalStore) Open(_ context.Context, location string) (io.ReadCloser, error) {
	if location == StdioLocation {
		return io.NopCloser(s.Stdin), nil
	}
	f, err := os.Open(location)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrCodeTableNotFound, "input table not found").WithDetail("path=" + location)
		}
		return nil, errors.Wrap(err, errors.ErrCodeTableMalformed, "cannot open input table").WithDetail("path=" + location)
	}
	return f, nil
}

func (s *LocalStore) Create(_ context.Context, location string) (io.WriteCloser, error) {
	if location == StdioLocation {
		return nopWriteCloser{s.Stdout}, nil
	}
	if dir := filepath.Dir(location); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeTableWriteFailed, "cannot create output directory").WithDetail("path=" + location)
		}
	}
	f, err := os.Create(location)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTableWriteFailed, "cannot create output file").WithDetail("path=" + location)
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// Router dispatches locations to stores by URI scheme prefix, falling back
// to a local store.
type Router struct {
	local   Store
	schemes map[string]Store
}

// NewRouter returns a router with local as its fallback.
func NewRouter(local Store) *Router {
	return &Router{local: local, schemes: make(map[string]Store)}
}

// Register routes locations starting with prefix (for example "s3://") to s.
func (r *Router) Register(prefix string, s Store) {
	r.schemes[prefix] = s
}

func (r *Router) resolve(location string) (Store, error) {
	for prefix, s := range r.schemes {
		if strings.HasPrefix(location, prefix) {
			return s, nil
		}
	}
	if i := strings.Index(location, "://"); i > 0 {
		return nil, errors.New(errors.ErrCodeInvalidParam, "no store registered for location scheme").
			WithDetail("location=" + location)
	}
	return r.local, nil
}

func (r *Router) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	s, err := r.resolve(location)
	if err != nil {
		return nil, err
	}
	return s.Open(ctx, location)
}

func (r *Router) Create(ctx context.Context, location string) (io.WriteCloser, error) {
	s, err := r.resolve(location)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, location)
}

//Personal.AI order the ending
