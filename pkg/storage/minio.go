package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Object is one file to store
type Object struct {
	Body        io.Reader
	Size        int64
	FileName    string
	ContentType string
	Folder      string
}

// UploadResult contains the result of a file upload
type UploadResult struct {
	URL      string
	Key      string // object key in storage
	FileName string
	FileSize int64
	MimeType string
}

// MinIOStorage stores user images in an S3-compatible bucket
type MinIOStorage struct {
	client    *minio.Client
	bucket    string
	endpoint  string
	publicURL string // External URL
	useSSL    bool
	now       func() time.Time
}

// Config holds MinIO connection configuration
type Config struct {
	Endpoint  string
	PublicURL string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewMinIO creates the client and makes sure the bucket exists with public
// read access.
func NewMinIO(ctx context.Context, cfg Config, log *zap.Logger) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Info("created bucket", zap.String("bucket", cfg.Bucket))

		if err := client.SetBucketPolicy(ctx, cfg.Bucket, publicReadPolicy(cfg.Bucket)); err != nil {
			log.Warn("failed to set bucket policy", zap.String("bucket", cfg.Bucket), zap.Error(err))
		}
	}

	return newMinIOStorage(client, cfg), nil
}

func newMinIOStorage(client *minio.Client, cfg Config) *MinIOStorage {
	return &MinIOStorage{
		client:    client,
		bucket:    cfg.Bucket,
		endpoint:  cfg.Endpoint,
		publicURL: cfg.PublicURL,
		useSSL:    cfg.UseSSL,
		now:       time.Now,
	}
}

func publicReadPolicy(bucket string) string {
	return `{
		"Version": "2012-10-17",
		"Statement": [{
			"Effect": "Allow",
			"Principal": {"AWS": ["*"]},
			"Action": ["s3:GetObject"],
			"Resource": ["arn:aws:s3:::` + bucket + `/*"]
		}]
	}`
}

// Upload stores obj under a fresh key and returns its public URL
func (s *MinIOStorage) Upload(ctx context.Context, obj Object) (*UploadResult, error) {
	key := s.objectKey(obj.Folder, obj.FileName)

	contentType := obj.ContentType
	if contentType == "" {
		contentType = DetectContentType(obj.FileName)
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, obj.Body, obj.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	return &UploadResult{
		URL:      s.PublicURL(key),
		Key:      key,
		FileName: obj.FileName,
		FileSize: obj.Size,
		MimeType: contentType,
	}, nil
}

// Delete removes a file from MinIO
func (s *MinIOStorage) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// objectKey is folder/yyyy/mm/dd/<uuid><ext>
func (s *MinIOStorage) objectKey(folder, fileName string) string {
	return fmt.Sprintf("%s/%s/%s%s",
		folder,
		s.now().Format("2006/01/02"),
		uuid.NewString(),
		strings.ToLower(filepath.Ext(fileName)),
	)
}

// PublicURL returns the public URL for an object
func (s *MinIOStorage) PublicURL(key string) string {
	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.publicURL, "/"), s.bucket, key)
	}

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, key)
}

// DetectContentType returns the image MIME type for a file name's
// extension, or application/octet-stream.
func DetectContentType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".heic":
		return "image/heic"
	default:
		return "application/octet-stream"
	}
}
