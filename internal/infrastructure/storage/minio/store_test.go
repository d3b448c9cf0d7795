package minio

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/ScaffoldSieve/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

type MockMinIOAPI struct {
	mock.Mock
}

func (m *MockMinIOAPI) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *MockMinIOAPI) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	args := m.Called(ctx, bucketName, opts)
	return args.Error(0)
}

func (m *MockMinIOAPI) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Get(0).(minio.ObjectInfo), args.Error(1)
}

func (m *MockMinIOAPI) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockMinIOAPI) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	body, _ := io.ReadAll(reader)
	args := m.Called(ctx, bucketName, objectName, string(body), objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func TestParseURI(t *testing.T) {
	tests := []struct {
		uri     string
		bucket  string
		key     string
		wantErr bool
	}{
		{"s3://screens/cache3/hits.csv", "screens", "cache3/hits.csv", false},
		{"s3://b/k", "b", "k", false},
		{"s3://bucket", "", "", true},
		{"s3://bucket/", "", "", true},
		{"s3:///key", "", "", true},
		{"/tmp/hits.csv", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, key, err := ParseURI(tt.uri)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidParam))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.key, key)
		})
	}
	assert.True(t, IsURI("s3://a/b"))
	assert.False(t, IsURI("a/b"))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv", contentType("out/survivors.CSV"))
	assert.Equal(t, "text/tab-separated-values", contentType("out.tsv"))
	assert.Equal(t, "text/plain", contentType("metrics.prom"))
	assert.Equal(t, "application/octet-stream", contentType("blob"))
}

func TestNewMinIOClient_RequiresEndpoint(t *testing.T) {
	_, err := NewMinIOClient(&MinIOConfig{}, logging.NewNopLogger())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfigInvalid))

	c, err := NewMinIOClient(&MinIOConfig{Endpoint: "localhost:9000"}, logging.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", c.config.Region)
	assert.Equal(t, uint64(16*1024*1024), c.config.PartSize)
}

type StoreTestSuite struct {
	suite.Suite
	api   *MockMinIOAPI
	store *ObjectStore
}

func (s *StoreTestSuite) SetupTest() {
	s.api = new(MockMinIOAPI)
	client := NewMinIOClientWithAPI(s.api, &MinIOConfig{CreateBucket: true}, logging.NewNopLogger())
	s.store = NewObjectStore(client, nil)
}

func (s *StoreTestSuite) TestOpen_Success() {
	s.api.On("StatObject", mock.Anything, "screens", "hits.csv", mock.Anything).
		Return(minio.ObjectInfo{Size: 12}, nil)
	s.api.On("GetObject", mock.Anything, "screens", "hits.csv", mock.Anything).
		Return(io.NopCloser(strings.NewReader("smiles\nCCO\n")), nil)

	rc, err := s.store.Open(context.Background(), "s3://screens/hits.csv")
	s.Require().NoError(err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	s.Require().NoError(err)
	s.Equal("smiles\nCCO\n", string(data))
	s.api.AssertExpectations(s.T())
}

func (s *StoreTestSuite) TestOpen_NotFound() {
	s.api.On("StatObject", mock.Anything, "screens", "missing.csv", mock.Anything).
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", Message: "missing"})

	_, err := s.store.Open(context.Background(), "s3://screens/missing.csv")
	s.Require().Error(err)
	s.True(errors.IsCode(err, errors.ErrCodeTableNotFound))
	s.True(errors.IsNotFound(err))
	s.api.AssertNotCalled(s.T(), "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *StoreTestSuite) TestOpen_StorageError() {
	s.api.On("StatObject", mock.Anything, "screens", "hits.csv", mock.Anything).
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "AccessDenied"})

	_, err := s.store.Open(context.Background(), "s3://screens/hits.csv")
	s.Require().Error(err)
	s.True(errors.IsCode(err, errors.ErrCodeStorageError))
}

func (s *StoreTestSuite) TestCreate_UploadsOnClose() {
	s.api.On("BucketExists", mock.Anything, "exports").Return(false, nil)
	s.api.On("MakeBucket", mock.Anything, "exports", mock.Anything).Return(nil)
	s.api.On("PutObject", mock.Anything, "exports", "run/survivors.csv", "smiles\nCCO\n", int64(11), mock.Anything).
		Return(minio.UploadInfo{Bucket: "exports", Key: "run/survivors.csv", Size: 11}, nil)

	w, err := s.store.Create(context.Background(), "s3://exports/run/survivors.csv")
	s.Require().NoError(err)
	_, err = io.WriteString(w, "smiles\n")
	s.Require().NoError(err)
	_, err = io.WriteString(w, "CCO\n")
	s.Require().NoError(err)
	s.Require().NoError(w.Close())
	s.Require().NoError(w.Close(), "second close is a no-op")

	_, err = w.Write([]byte("late"))
	s.Error(err)
	s.api.AssertExpectations(s.T())
	s.api.AssertNumberOfCalls(s.T(), "PutObject", 1)
}

func (s *StoreTestSuite) TestPut_Failure() {
	s.api.On("PutObject", mock.Anything, "exports", "m.prom", "x", int64(1), mock.Anything).
		Return(minio.UploadInfo{}, minio.ErrorResponse{Code: "InternalError"})

	err := s.store.Put(context.Background(), "s3://exports/m.prom", []byte("x"))
	s.Require().Error(err)
	s.True(errors.IsCode(err, errors.ErrCodeStorageError))
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

//Personal.AI order the ending
