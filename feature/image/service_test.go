package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"testing"
	"time"

	"profile-store/core/storage"
	"profile-store/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

var testStoreCfg = storage.Config{
	Endpoint: "http://minio:9000",
	Bucket:   "profile-pictures",
}

// lazyService builds a service that provisions per call, so constructing it
// touches the mock in no way.
func lazyService(t *testing.T, client storage.Client) *Service {
	t.Helper()
	cfg := Config{Provisioning: ProvisioningLazy, URLExpirySeconds: 3600}
	svc, err := NewService(context.Background(), client, testStoreCfg, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	return svc
}

func TestStoreImage_InvalidExtension(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantExt  string
		wantMsg  string
	}{
		{"Executable", "virus.exe", "exe", "invalid file extension: .exe"},
		{"UpperCase", "document.PDF", "pdf", "invalid file extension: .pdf"},
		{"NoExtension", "noextension", "", "missing file extension"},
		{"TrailingDot", "picture.", "", "missing file extension"},
		{"Archive", "backup.tar.gz", "gz", "invalid file extension: .gz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := new(mocks.Client)
			svc := lazyService(t, mockClient)

			u, err := svc.StoreImage(context.Background(), bytes.NewReader([]byte("data")), tt.filename)
			assert.Empty(t, u)

			var extErr *InvalidExtensionError
			assert.ErrorAs(t, err, &extErr)
			assert.Equal(t, tt.wantExt, extErr.Ext)
			assert.Equal(t, tt.wantMsg, err.Error())

			// Validation failures never reach the backing store.
			mockClient.AssertNotCalled(t, "BucketExists", mock.Anything, mock.Anything)
			mockClient.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
			mockClient.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestStoreImage_AllowedExtensions(t *testing.T) {
	tests := []struct {
		filename    string
		contentType string
	}{
		{"a.jpg", "image/jpeg"},
		{"a.jpeg", "image/jpeg"},
		{"a.png", "image/png"},
		{"a.gif", "image/gif"},
		{"a.JPG", "image/jpeg"},
		{"abc.PNG", "image/png"},
		{"a.GiF", "image/gif"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			mockClient := new(mocks.Client)
			svc := lazyService(t, mockClient)

			mockClient.On("BucketExists", mock.Anything, "profile-pictures").Return(true, nil)
			mockClient.On("PutObject", mock.Anything, "profile-pictures", tt.filename, mock.Anything, int64(-1),
				mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
					return opts.ContentType == tt.contentType && opts.PartSize == 10*1024*1024
				}),
			).Return(minio.UploadInfo{}, nil)

			u, err := svc.StoreImage(context.Background(), bytes.NewReader([]byte("data")), tt.filename)
			assert.NoError(t, err)
			// The extension check is case-folded but the stored name is not.
			assert.Equal(t, "http://minio:9000/profile-pictures/"+tt.filename, u)
			mockClient.AssertExpectations(t)
		})
	}
}

func TestStoreImage_CanonicalURL(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := lazyService(t, mockClient)

	const name = "550e8400-e29b-41d4-a716-446655440000.png"
	mockClient.On("BucketExists", mock.Anything, "profile-pictures").Return(true, nil)
	mockClient.On("PutObject", mock.Anything, "profile-pictures", name, mock.Anything, int64(-1), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	u, err := svc.StoreImage(context.Background(), bytes.NewReader([]byte("\x89PNG")), name)
	assert.NoError(t, err)
	assert.Equal(t, "http://minio:9000/profile-pictures/550e8400-e29b-41d4-a716-446655440000.png", u)
}

func TestStoreImage_Overwrite(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := lazyService(t, mockClient)

	mockClient.On("BucketExists", mock.Anything, "profile-pictures").Return(true, nil)
	mockClient.On("PutObject", mock.Anything, "profile-pictures", "user.png", mock.Anything, int64(-1), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	first, err := svc.StoreImage(context.Background(), bytes.NewReader([]byte("old")), "user.png")
	assert.NoError(t, err)
	second, err := svc.StoreImage(context.Background(), bytes.NewReader([]byte("new")), "user.png")
	assert.NoError(t, err)

	// Same name, no conflict: the second write replaces the first.
	assert.Equal(t, first, second)
	mockClient.AssertNumberOfCalls(t, "PutObject", 2)
}

func TestStoreImage_UploadFailure(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := lazyService(t, mockClient)

	transportErr := fmt.Errorf("connection refused")
	mockClient.On("BucketExists", mock.Anything, "profile-pictures").Return(true, nil)
	mockClient.On("PutObject", mock.Anything, "profile-pictures", "user.png", mock.Anything, int64(-1), mock.Anything).
		Return(minio.UploadInfo{}, transportErr)

	u, err := svc.StoreImage(context.Background(), bytes.NewReader([]byte("data")), "user.png")
	assert.Empty(t, u)

	var storeErr *StorageUnavailableError
	assert.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "upload", storeErr.Op)
	assert.ErrorIs(t, err, transportErr)
}

func TestStoreImage_LazyProvisioning(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := lazyService(t, mockClient)

	mockClient.On("BucketExists", mock.Anything, "profile-pictures").Return(true, nil)
	mockClient.On("PutObject", mock.Anything, "profile-pictures", mock.Anything, mock.Anything, int64(-1), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	_, err := svc.StoreImage(context.Background(), bytes.NewReader(nil), "a.png")
	assert.NoError(t, err)
	_, err = svc.StoreImage(context.Background(), bytes.NewReader(nil), "b.png")
	assert.NoError(t, err)

	// Lazy policy ensures the bucket before every store.
	mockClient.AssertNumberOfCalls(t, "BucketExists", 2)
	mockClient.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestNewService_EagerProvisioning(t *testing.T) {
	cfg := Config{Provisioning: ProvisioningEager, URLExpirySeconds: 3600}

	t.Run("CreatesMissingBucket", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "profile-pictures").Return(false, nil)
		mockClient.On("MakeBucket", mock.Anything, "profile-pictures", mock.Anything).Return(nil)

		svc, err := NewService(context.Background(), mockClient, testStoreCfg, cfg, zap.NewNop())
		assert.NoError(t, err)
		assert.NotNil(t, svc)
		mockClient.AssertExpectations(t)
	})

	t.Run("UnreachableStore", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "profile-pictures").Return(false, errors.New("dial tcp: no route to host"))

		svc, err := NewService(context.Background(), mockClient, testStoreCfg, cfg, zap.NewNop())
		assert.Nil(t, svc)

		var storeErr *StorageUnavailableError
		assert.ErrorAs(t, err, &storeErr)
	})
}

func TestEnsureBucket(t *testing.T) {
	t.Run("Idempotent", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := lazyService(t, mockClient)

		mockClient.On("BucketExists", mock.Anything, "profile-pictures").Return(false, nil).Once()
		mockClient.On("MakeBucket", mock.Anything, "profile-pictures", mock.Anything).Return(nil).Once()
		mockClient.On("BucketExists", mock.Anything, "profile-pictures").Return(true, nil).Once()

		assert.NoError(t, svc.EnsureBucket(context.Background()))
		assert.NoError(t, svc.EnsureBucket(context.Background()))
		mockClient.AssertNumberOfCalls(t, "MakeBucket", 1)
	})

	t.Run("LostCreateRace", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := lazyService(t, mockClient)

		raceErr := minio.ErrorResponse{Code: "BucketAlreadyOwnedByYou"}
		mockClient.On("BucketExists", mock.Anything, "profile-pictures").Return(false, nil)
		mockClient.On("MakeBucket", mock.Anything, "profile-pictures", mock.Anything).Return(raceErr)

		assert.NoError(t, svc.EnsureBucket(context.Background()))
	})

	t.Run("CreateFailure", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := lazyService(t, mockClient)

		mockClient.On("BucketExists", mock.Anything, "profile-pictures").Return(false, nil)
		mockClient.On("MakeBucket", mock.Anything, "profile-pictures", mock.Anything).Return(errors.New("access denied"))

		err := svc.EnsureBucket(context.Background())
		var storeErr *StorageUnavailableError
		assert.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "bucket create", storeErr.Op)
	})
}

func TestBucketReady(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := lazyService(t, mockClient)

	mockClient.On("BucketExists", mock.Anything, "profile-pictures").Return(true, nil)

	ready, err := svc.BucketReady(context.Background())
	assert.NoError(t, err)
	assert.True(t, ready)
	mockClient.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestGeneratePresignedURL(t *testing.T) {
	signed, _ := url.Parse("http://minio:9000/profile-pictures/x.png?X-Amz-Signature=abc")

	t.Run("ExplicitExpiry", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := lazyService(t, mockClient)

		mockClient.On("PresignedGetObject", mock.Anything, "profile-pictures", "x.png", time.Minute, mock.Anything).
			Return(signed, nil)

		u, err := svc.GeneratePresignedURL(context.Background(), "x.png", time.Minute)
		assert.NoError(t, err)
		assert.Equal(t, signed.String(), u)

		// No existence check: signing must not touch the object or bucket.
		mockClient.AssertNotCalled(t, "BucketExists", mock.Anything, mock.Anything)
		mockClient.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("DefaultExpiry", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := lazyService(t, mockClient)

		mockClient.On("PresignedGetObject", mock.Anything, "profile-pictures", "x.png", time.Hour, mock.Anything).
			Return(signed, nil)

		u, err := svc.GeneratePresignedURL(context.Background(), "x.png", 0)
		assert.NoError(t, err)
		assert.Equal(t, signed.String(), u)
		mockClient.AssertExpectations(t)
	})

	t.Run("SigningFailure", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := lazyService(t, mockClient)

		signErr := errors.New("connection reset by peer")
		mockClient.On("PresignedGetObject", mock.Anything, "profile-pictures", "x.png", time.Minute, mock.Anything).
			Return(nil, signErr)

		u, err := svc.GeneratePresignedURL(context.Background(), "x.png", time.Minute)
		assert.Empty(t, u)

		var presignErr *PresignError
		assert.ErrorAs(t, err, &presignErr)
		assert.Equal(t, "x.png", presignErr.Object)
		assert.ErrorIs(t, err, signErr)
	})
}

func TestListImages(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := lazyService(t, mockClient)

		ch := make(chan minio.ObjectInfo, 2)
		ch <- minio.ObjectInfo{Key: "a.png", Size: 10}
		ch <- minio.ObjectInfo{Key: "b.jpg", Size: 20}
		close(ch)
		mockClient.On("ListObjects", mock.Anything, "profile-pictures", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		infos, err := svc.ListImages(context.Background(), "")
		assert.NoError(t, err)
		assert.Len(t, infos, 2)
		assert.Equal(t, "a.png", infos[0].Key)
	})

	t.Run("StreamError", func(t *testing.T) {
		mockClient := new(mocks.Client)
		svc := lazyService(t, mockClient)

		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Err: errors.New("listing failed")}
		close(ch)
		mockClient.On("ListObjects", mock.Anything, "profile-pictures", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		infos, err := svc.ListImages(context.Background(), "")
		assert.Nil(t, infos)

		var storeErr *StorageUnavailableError
		assert.ErrorAs(t, err, &storeErr)
	})
}

func TestFetchImage(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := lazyService(t, mockClient)

	body := io.NopCloser(bytes.NewReader([]byte("\x89PNG")))
	mockClient.On("GetObject", mock.Anything, "profile-pictures", "a.png", mock.Anything).Return(body, nil)

	rc, err := svc.FetchImage(context.Background(), "a.png")
	assert.NoError(t, err)
	data, err := io.ReadAll(rc)
	assert.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data)
	assert.NoError(t, rc.Close())
}
