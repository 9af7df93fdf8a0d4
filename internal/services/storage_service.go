package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"brandregistry/internal/common"
	"brandregistry/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageService uploads and deletes brand logos in the object store.
// Uploads are not transactional with the database write that records
// the resulting URL; callers sequence the two and tolerate orphaned
// blobs on partial failure.
type StorageService interface {
	UploadLogo(ctx context.Context, brandID uuid.UUID, reader io.Reader, size int64, contentType string) (url, objectName string, err error)
	DeleteLogo(ctx context.Context, objectName string) error
	EnsureBucket(ctx context.Context) error
}

// logoExtensions is the content-type allow-list. Anything else is
// rejected before any network I/O happens.
var logoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type minioStorage struct {
	client *minio.Client
	bucket string
}

func NewStorageService(cfg *config.Config) (StorageService, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioStorage{client: client, bucket: cfg.MinioBucket}, nil
}

// UploadLogo stores a logo under a name namespaced by the owning brand
// with a random suffix, so object names neither collide nor enumerate.
func (s *minioStorage) UploadLogo(ctx context.Context, brandID uuid.UUID, reader io.Reader, size int64, contentType string) (string, string, error) {
	objectName, err := logoObjectName(brandID, contentType)
	if err != nil {
		return "", "", err
	}

	_, err = s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("upload logo: %w", err)
	}

	return s.publicURL(objectName), objectName, nil
}

// DeleteLogo is best-effort removal; the caller decides whether a
// failure blocks anything.
func (s *minioStorage) DeleteLogo(ctx context.Context, objectName string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete logo: %w", err)
	}
	return nil
}

func (s *minioStorage) EnsureBucket(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !found {
		return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (s *minioStorage) publicURL(objectName string) string {
	endpoint := strings.TrimRight(s.client.EndpointURL().String(), "/")
	return fmt.Sprintf("%s/%s/%s", endpoint, s.bucket, objectName)
}

// logoObjectName validates the content type against the allow-list and
// builds the stored object name: <brand id>_<random hex>.<ext>.
func logoObjectName(brandID uuid.UUID, contentType string) (string, error) {
	ext, ok := logoExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", common.ErrUnsupportedMediaType, contentType)
	}

	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("generate object name: %w", err)
	}
	return fmt.Sprintf("%s_%s%s", brandID, hex.EncodeToString(suffix), ext), nil
}
