// Package minio reads screening inputs from, and writes survivor exports to,
// S3-compatible object storage addressed as s3://bucket/key.
package minio

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/turtacn/ScaffoldSieve/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

// MinIOAPI is the subset of the object API the store needs.  GetObject
// returns a plain ReadCloser so that fakes do not need a live *minio.Object.
type MinIOAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinIOConfig holds connection settings.
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Region          string `mapstructure:"region"`
	CreateBucket    bool   `mapstructure:"create_bucket"`
	PartSize        uint64 `mapstructure:"part_size"`
}

type MinIOClient struct {
	api    MinIOAPI
	config *MinIOConfig
	logger logging.Logger
}

// NewMinIOClient builds a client.  The connection is not probed here; the
// first Open or Create surfaces connectivity errors.
func NewMinIOClient(cfg *MinIOConfig, log logging.Logger) (*MinIOClient, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, errors.New(errors.ErrCodeConfigInvalid, "minio endpoint is required")
	}
	applyDefaults(cfg)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to create minio client")
	}

	log.Debug("MinIO client configured", logging.String("endpoint", cfg.Endpoint), logging.Bool("ssl", cfg.UseSSL))
	return NewMinIOClientWithAPI(&sdkAdapter{client: client}, cfg, log), nil
}

// NewMinIOClientWithAPI wraps an existing API implementation.
func NewMinIOClientWithAPI(api MinIOAPI, cfg *MinIOConfig, log logging.Logger) *MinIOClient {
	if cfg == nil {
		cfg = &MinIOConfig{}
	}
	applyDefaults(cfg)
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &MinIOClient{api: api, config: cfg, logger: log}
}

func applyDefaults(cfg *MinIOConfig) {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.PartSize == 0 {
		cfg.PartSize = 16 * 1024 * 1024
	}
}

// EnsureBucket creates bucket when it does not exist yet.
func (c *MinIOClient) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := c.api.BucketExists(ctx, bucket)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to check bucket existence").
			WithDetail("bucket=" + bucket)
	}
	if exists {
		return nil
	}
	if err := c.api.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: c.config.Region}); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to create bucket").
			WithDetail("bucket=" + bucket)
	}
	c.logger.Info("Created bucket", logging.String("bucket", bucket))
	return nil
}

// sdkAdapter narrows *minio.Client to MinIOAPI.
type sdkAdapter struct {
	client *minio.Client
}

func (a *sdkAdapter) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return a.client.BucketExists(ctx, bucketName)
}

func (a *sdkAdapter) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return a.client.MakeBucket(ctx, bucketName, opts)
}

func (a *sdkAdapter) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	return a.client.StatObject(ctx, bucketName, objectName, opts)
}

func (a *sdkAdapter) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	return a.client.GetObject(ctx, bucketName, objectName, opts)
}

func (a *sdkAdapter) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return a.client.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

//Personal.AI order the ending
