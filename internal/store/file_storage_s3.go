package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/MKhiriev/dataset-hub/internal/config"
	"github.com/MKhiriev/dataset-hub/internal/logger"
	"github.com/MKhiriev/dataset-hub/models"
)

// s3Storage keeps blobs in an S3 (or S3-compatible) bucket.
type s3Storage struct {
	client *s3.Client
	bucket string
	logger *logger.Logger
}

// NewS3Storage loads the AWS configuration for cfg.Region. Static
// credentials are used when an access key is configured; otherwise the
// default AWS credential chain applies. A non-empty Endpoint switches to
// path-style addressing for S3-compatible services.
func NewS3Storage(ctx context.Context, cfg config.Files, log *logger.Logger) (FileStorage, error) {
	log.Debug().Str("bucket", cfg.Bucket).Str("region", cfg.Region).Msg("creating s3 storage")

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.Err(err).Str("func", "NewS3Storage").Msg("error loading aws config")
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Storage{client: client, bucket: cfg.Bucket, logger: log}, nil
}

// Save requires upload.Reader to be seekable when the endpoint is not TLS,
// which holds for multipart form files.
func (s *s3Storage) Save(ctx context.Context, key string, upload models.Upload) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	contentType := upload.ContentType
	if contentType == "" {
		contentType = contentTypeByName(upload.Name)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          upload.Reader,
		ContentLength: aws.Int64(upload.Size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3Storage.Save").Str("key", key).Msg("error uploading object")
		return fmt.Errorf("s3 put object: %w", err)
	}

	return nil
}

func (s *s3Storage) Open(ctx context.Context, key string) (models.StoredFile, error) {
	key, err := cleanKey(key)
	if err != nil {
		return models.StoredFile{}, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return models.StoredFile{}, ErrFileNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*s3Storage.Open").Str("key", key).Msg("error getting object")
		return models.StoredFile{}, fmt.Errorf("s3 get object: %w", err)
	}

	contentType := aws.ToString(out.ContentType)
	if contentType == "" {
		contentType = contentTypeByName(key)
	}

	return models.StoredFile{
		Content:     out.Body,
		ContentType: contentType,
		Size:        aws.ToInt64(out.ContentLength),
	}, nil
}

func (s *s3Storage) Delete(ctx context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3Storage.Delete").Str("key", key).Msg("error deleting object")
		return fmt.Errorf("s3 delete object: %w", err)
	}

	return nil
}
