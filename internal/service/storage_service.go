package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"learnspace_backend/internal/config"
	"learnspace_backend/internal/model"
	"learnspace_backend/internal/repository"
	"learnspace_backend/internal/util"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider abstracts the object-storage backend. The key is the
// full object path inside the bucket (or under the local root).
type StorageProvider interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	GetURL(key string) string
}

// NewStorageProvider builds the provider named by the configuration.
func NewStorageProvider(cfg *config.Config) (StorageProvider, error) {
	switch cfg.Storage.Type {
	case util.StorageLocal:
		return &LocalProvider{BasePath: cfg.Storage.LocalPath}, nil
	case util.StorageMinio:
		return NewMinioProvider(cfg)
	case util.StorageS3:
		return NewS3Provider(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Storage.Type)
	}
}

// LocalProvider keeps objects on the local disk, for development and
// single-node deployments.
type LocalProvider struct {
	BasePath string
}

func (p *LocalProvider) Upload(_ context.Context, key string, reader io.Reader, _ int64, _ string) (string, error) {
	path := filepath.Join(p.BasePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}
	return p.GetURL(key), nil
}

func (p *LocalProvider) Delete(_ context.Context, key string) error {
	return os.Remove(filepath.Join(p.BasePath, filepath.FromSlash(key)))
}

func (p *LocalProvider) GetURL(key string) string {
	return "/uploads/" + key
}

type MinioProvider struct {
	client   *minio.Client
	bucket   string
	endpoint string
	secure   bool
}

func NewMinioProvider(cfg *config.Config) (*MinioProvider, error) {
	endpoint := cfg.Storage.MinioEndpoint
	secure := strings.HasPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  miniocreds.NewStaticV4(cfg.Storage.MinioAccessID, cfg.Storage.MinioSecret, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Storage.MinioBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Storage.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	return &MinioProvider{
		client:   client,
		bucket:   cfg.Storage.MinioBucket,
		endpoint: endpoint,
		secure:   secure,
	}, nil
}

func (p *MinioProvider) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.client.PutObject(ctx, p.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(key), nil
}

func (p *MinioProvider) Delete(ctx context.Context, key string) error {
	return p.client.RemoveObject(ctx, p.bucket, key, minio.RemoveObjectOptions{})
}

func (p *MinioProvider) GetURL(key string) string {
	scheme := "http"
	if p.secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, p.endpoint, p.bucket, key)
}

// S3Provider speaks the S3 protocol, covering AWS itself and compatible
// object stores behind a custom endpoint.
type S3Provider struct {
	uploader *s3manager.Uploader
	client   *s3.S3
	bucket   string
	endpoint string
	region   string
}

func NewS3Provider(cfg *config.Config) (*S3Provider, error) {
	awsCfg := &aws.Config{
		Region:      aws.String(cfg.Storage.S3Region),
		Credentials: credentials.NewStaticCredentials(cfg.Storage.S3AccessKey, cfg.Storage.S3SecretKey, ""),
	}
	if cfg.Storage.S3Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Storage.S3Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, err
	}

	return &S3Provider{
		uploader: s3manager.NewUploader(sess),
		client:   s3.New(sess),
		bucket:   cfg.Storage.S3Bucket,
		endpoint: cfg.Storage.S3Endpoint,
		region:   cfg.Storage.S3Region,
	}, nil
}

func (p *S3Provider) Upload(ctx context.Context, key string, reader io.Reader, _ int64, contentType string) (string, error) {
	_, err := p.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(key), nil
}

func (p *S3Provider) Delete(ctx context.Context, key string) error {
	_, err := p.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (p *S3Provider) GetURL(key string) string {
	if p.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(p.endpoint, "/"), p.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.bucket, p.region, key)
}

// StorageService pairs the provider with the file-handle table so every
// stored object has a queryable owner and metadata row.
type StorageService struct {
	provider StorageProvider
	fileRepo *repository.StorageFileRepository
	logger   *zap.Logger
}

func NewStorageService(provider StorageProvider, fileRepo *repository.StorageFileRepository, logger *zap.Logger) *StorageService {
	return &StorageService{provider: provider, fileRepo: fileRepo, logger: logger}
}

func (s *StorageService) Store(ctx context.Context, key, name string, reader io.Reader, size int64, contentType string, ownerID uint) (*model.StorageFile, error) {
	url, err := s.provider.Upload(ctx, key, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	file := &model.StorageFile{
		ID:      key,
		Name:    name,
		URL:     url,
		Size:    size,
		Type:    contentType,
		OwnerID: ownerID,
	}
	if err := s.fileRepo.Create(file); err != nil {
		// The object is up but untracked; surface the error so the
		// client retries with a fresh key.
		s.logger.Error("stored object has no handle row",
			zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return file, nil
}

func (s *StorageService) ListByOwner(ownerID uint) ([]model.StorageFile, error) {
	return s.fileRepo.FindByOwner(ownerID)
}

// Remove deletes the object and its handle. Only the owner or an admin
// may remove a file.
func (s *StorageService) Remove(ctx context.Context, key string, actorID uint, actorRole model.UserRole) error {
	file, err := s.fileRepo.FindByID(key)
	if err != nil {
		return util.ErrResourceNotFound
	}
	if file.OwnerID != actorID && actorRole != model.Admin {
		return util.ErrPermissionDenied
	}

	if err := s.provider.Delete(ctx, key); err != nil {
		return err
	}
	return s.fileRepo.Delete(key)
}
