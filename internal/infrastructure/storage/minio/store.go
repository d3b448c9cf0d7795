package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/turtacn/ScaffoldSieve/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

// Scheme is the URI prefix handled by ObjectStore.
const Scheme = "s3://"

// IsURI reports whether location addresses object storage.
func IsURI(location string) bool {
	return strings.HasPrefix(location, Scheme)
}

// ParseURI splits s3://bucket/key into its parts.  Both must be non-empty.
func ParseURI(uri string) (bucket, key string, err error) {
	if !IsURI(uri) {
		return "", "", errors.New(errors.ErrCodeInvalidParam, "not an s3 URI").WithDetail("uri=" + uri)
	}
	rest := strings.TrimPrefix(uri, Scheme)
	i := strings.IndexByte(rest, '/')
	if i <= 0 || i == len(rest)-1 {
		return "", "", errors.New(errors.ErrCodeInvalidParam, "s3 URI must be s3://bucket/key").WithDetail("uri=" + uri)
	}
	return rest[:i], rest[i+1:], nil
}

// ObjectStore opens and creates objects by URI.
type ObjectStore struct {
	client *MinIOClient
	logger logging.Logger
}

// NewObjectStore wraps client.
func NewObjectStore(client *MinIOClient, log logging.Logger) *ObjectStore {
	if log == nil {
		log = client.logger
	}
	return &ObjectStore{client: client, logger: log}
}

// Open returns a reader over the object at uri.  A missing bucket or key is
// reported as ErrCodeTableNotFound.
func (s *ObjectStore) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, key, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	info, err := s.client.api.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, classifyError(err, uri)
	}
	rc, err := s.client.api.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, classifyError(err, uri)
	}
	s.logger.Debug("Opened object",
		logging.String("bucket", bucket),
		logging.String("key", key),
		logging.Int64("size", info.Size))
	return rc, nil
}

// Create returns a writer whose content is uploaded to uri on Close.
func (s *ObjectStore) Create(ctx context.Context, uri string) (io.WriteCloser, error) {
	bucket, key, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	if s.client.config.CreateBucket {
		if err := s.client.EnsureBucket(ctx, bucket); err != nil {
			return nil, err
		}
	}
	return &objectWriter{ctx: ctx, store: s, bucket: bucket, key: key}, nil
}

// Put uploads data to uri in one request.
func (s *ObjectStore) Put(ctx context.Context, uri string, data []byte) error {
	bucket, key, err := ParseURI(uri)
	if err != nil {
		return err
	}
	return s.put(ctx, bucket, key, data)
}

func (s *ObjectStore) put(ctx context.Context, bucket, key string, data []byte) error {
	info, err := s.client.api.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType(key),
		PartSize:    s.client.config.PartSize,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to upload object").
			WithDetail(fmt.Sprintf("bucket=%s key=%s", bucket, key))
	}
	s.logger.Info("Uploaded object",
		logging.String("bucket", bucket),
		logging.String("key", key),
		logging.Int64("size", info.Size))
	return nil
}

type objectWriter struct {
	ctx    context.Context
	store  *ObjectStore
	bucket string
	key    string
	buf    bytes.Buffer
	closed bool
}

func (w *objectWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errors.New(errors.ErrCodeStorageError, "write to closed object writer")
	}
	return w.buf.Write(p)
}

func (w *objectWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.store.put(w.ctx, w.bucket, w.key, w.buf.Bytes())
}

func contentType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".csv":
		return "text/csv"
	case ".tsv", ".tab":
		return "text/tab-separated-values"
	case ".json":
		return "application/json"
	case ".prom", ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

func classifyError(err error, uri string) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return errors.Wrap(err, errors.ErrCodeTableNotFound, "object not found").WithDetail("uri=" + uri)
	}
	return errors.Wrap(err, errors.ErrCodeStorageError, "object storage request failed").WithDetail("uri=" + uri)
}

//Personal.AI order the ending
