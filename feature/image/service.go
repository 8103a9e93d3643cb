package image

import (
	"context"
	"io"
	"strings"
	"time"

	"profile-store/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// partSize bounds the memory a single multipart upload of unknown length
// can consume on either side of the connection.
const partSize = 10 * 1024 * 1024

// contentTypes maps the allowed image extensions (case-folded) to the
// content type stored alongside the object.
var contentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
}

// Service stores profile images in an object-storage bucket and issues
// access URLs. It is stateless beyond its configuration and safe for
// concurrent use.
type Service struct {
	client   storage.Client
	bucket   string
	region   string
	endpoint string
	lazy     bool
	expiry   time.Duration
	logger   *zap.Logger
}

// NewService creates a profile-image service on top of the given storage
// client. With eager provisioning the bucket is ensured immediately; with
// lazy provisioning it is ensured before every store instead.
func NewService(ctx context.Context, client storage.Client, storeCfg storage.Config, cfg Config, logger *zap.Logger) (*Service, error) {
	s := &Service{
		client:   client,
		bucket:   storeCfg.Bucket,
		region:   storeCfg.Region,
		endpoint: publicEndpoint(storeCfg),
		lazy:     cfg.Provisioning == ProvisioningLazy,
		expiry:   time.Duration(cfg.URLExpirySeconds) * time.Second,
		logger:   logger,
	}
	if s.expiry <= 0 {
		s.expiry = DefaultURLExpiry
	}

	if !s.lazy {
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// EnsureBucket makes sure the configured bucket exists. It is idempotent;
// losing the create race to a concurrent writer counts as success.
func (s *Service) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return &StorageUnavailableError{Op: "bucket check", Err: err}
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		if bucketAlreadyOwned(err) {
			return nil
		}
		return &StorageUnavailableError{Op: "bucket create", Err: err}
	}

	s.logger.Info("Created bucket", zap.String("bucket", s.bucket))
	return nil
}

// BucketReady reports whether the configured bucket exists, without
// creating it.
func (s *Service) BucketReady(ctx context.Context) (bool, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return false, &StorageUnavailableError{Op: "bucket check", Err: err}
	}
	return exists, nil
}

// StoreImage validates the extension of filename, uploads content under
// that exact name (replacing any previous object with the same name) and
// returns the canonical URL of the stored image.
//
// The content length does not need to be known up front; the payload is
// streamed to the bucket in fixed-size parts. Nothing is written when
// validation fails.
func (s *Service) StoreImage(ctx context.Context, content io.Reader, filename string) (string, error) {
	ext := extensionOf(filename)
	contentType, ok := contentTypes[ext]
	if !ok {
		return "", &InvalidExtensionError{Ext: ext}
	}

	if s.lazy {
		if err := s.EnsureBucket(ctx); err != nil {
			return "", err
		}
	}

	_, err := s.client.PutObject(ctx, s.bucket, filename, content, -1, minio.PutObjectOptions{
		ContentType: contentType,
		PartSize:    partSize,
	})
	if err != nil {
		return "", &StorageUnavailableError{Op: "upload", Err: err}
	}

	s.logger.Debug("Stored image",
		zap.String("object", filename),
		zap.String("content_type", contentType),
	)

	// The canonical URL is only derived once the write has succeeded.
	return joinURL(s.endpoint, s.bucket, filename), nil
}

// GeneratePresignedURL issues a time-limited GET URL for an object. The
// object is not checked for existence; a URL for an absent object simply
// fails when dereferenced. An expiry <= 0 falls back to the configured
// default.
func (s *Service) GeneratePresignedURL(ctx context.Context, filename string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = s.expiry
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, filename, expiry, nil)
	if err != nil {
		return "", &PresignError{Object: filename, Err: err}
	}

	return u.String(), nil
}

// ListImages returns the objects stored in the bucket under prefix.
func (s *Service) ListImages(ctx context.Context, prefix string) ([]minio.ObjectInfo, error) {
	var infos []minio.ObjectInfo
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, &StorageUnavailableError{Op: "list", Err: obj.Err}
		}
		infos = append(infos, obj)
	}
	return infos, nil
}

// FetchImage opens a stored object for reading. The caller closes the
// returned reader.
func (s *Service) FetchImage(ctx context.Context, filename string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, filename, minio.GetObjectOptions{})
	if err != nil {
		return nil, &StorageUnavailableError{Op: "fetch", Err: err}
	}
	return obj, nil
}

// extensionOf returns the case-folded extension of filename, or "" when it
// has none.
func extensionOf(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 || i == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}

// bucketAlreadyOwned reports whether a MakeBucket failure means another
// writer created the bucket first.
func bucketAlreadyOwned(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "BucketAlreadyOwnedByYou" || resp.Code == "BucketAlreadyExists"
}
