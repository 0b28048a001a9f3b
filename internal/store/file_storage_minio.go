package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/MKhiriev/dataset-hub/internal/config"
	"github.com/MKhiriev/dataset-hub/internal/logger"
	"github.com/MKhiriev/dataset-hub/models"
)

// minioStorage keeps blobs as objects of a single MinIO bucket.
type minioStorage struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

// NewMinioStorage connects to MinIO and creates the bucket when missing.
func NewMinioStorage(ctx context.Context, cfg config.Files, log *logger.Logger) (FileStorage, error) {
	log.Debug().Str("endpoint", cfg.Endpoint).Str("bucket", cfg.Bucket).Msg("creating minio storage")

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		log.Err(err).Str("func", "NewMinioStorage").Msg("error creating minio client")
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		log.Err(err).Str("func", "NewMinioStorage").Msg("error checking bucket")
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			log.Err(err).Str("func", "NewMinioStorage").Msg("error creating bucket")
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}

	return &minioStorage{client: client, bucket: cfg.Bucket, logger: log}, nil
}

func (s *minioStorage) Save(ctx context.Context, key string, upload models.Upload) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	contentType := upload.ContentType
	if contentType == "" {
		contentType = contentTypeByName(upload.Name)
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, upload.Reader, upload.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*minioStorage.Save").Str("key", key).Msg("error uploading object")
		return fmt.Errorf("minio put object: %w", err)
	}

	return nil
}

func (s *minioStorage) Open(ctx context.Context, key string) (models.StoredFile, error) {
	key, err := cleanKey(key)
	if err != nil {
		return models.StoredFile{}, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return models.StoredFile{}, minioError(err)
	}

	// GetObject is lazy; Stat performs the request.
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return models.StoredFile{}, minioError(err)
	}

	return models.StoredFile{
		Content:     obj,
		ContentType: info.ContentType,
		Size:        info.Size,
	}, nil
}

func (s *minioStorage) Delete(ctx context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	if err = s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*minioStorage.Delete").Str("key", key).Msg("error removing object")
		return fmt.Errorf("minio remove object: %w", err)
	}

	return nil
}

func minioError(err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
		return ErrFileNotFound
	}

	return fmt.Errorf("minio get object: %w", err)
}
