package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rahat/tastybites-backend/config"
	"github.com/rahat/tastybites-backend/pkg/logger"
)

var (
	ErrInvalidFileType = errors.New("file type not allowed")
	ErrNotConfigured   = errors.New("object storage is not configured")
)

// allowedContentTypes maps upload content types to file extensions.
// Images cover menu photos; PDFs cover expense receipts.
var allowedContentTypes = map[string]string{
	"image/jpeg":      "jpg",
	"image/png":       "png",
	"image/webp":      "webp",
	"application/pdf": "pdf",
}

// PresignedUpload is a one-time upload slot in object storage
type PresignedUpload struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expires_in"` // seconds
}

// S3Storage issues presigned upload URLs so image bytes never pass
// through the API server.
type S3Storage struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	baseURL string
}

// NewS3Storage creates an S3 storage client from configuration
func NewS3Storage(ctx context.Context, cfg *config.S3Config) (*S3Storage, error) {
	if cfg.Bucket == "" || cfg.AccessKeyID == "" {
		return nil, ErrNotConfigured
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	logger.Info("S3 storage initialized", map[string]interface{}{
		"bucket": cfg.Bucket,
		"region": cfg.Region,
	})

	return &S3Storage{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// PresignUpload creates a presigned PUT URL under the given prefix
// (e.g. "menu", "receipts").
func (s *S3Storage) PresignUpload(ctx context.Context, prefix, contentType string) (*PresignedUpload, error) {
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return nil, ErrInvalidFileType
	}

	key := fmt.Sprintf("%s/%s.%s", prefix, uuid.New().String(), ext)
	expiry := 15 * time.Minute

	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		logger.Error("Failed to presign upload", err, map[string]interface{}{
			"key": key,
		})
		return nil, err
	}

	return &PresignedUpload{
		UploadURL: req.URL,
		FileURL:   fmt.Sprintf("%s/%s", s.baseURL, key),
		Key:       key,
		ExpiresIn: int(expiry.Seconds()),
	}, nil
}

// Delete removes an object by key
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.Error("Failed to delete object", err, map[string]interface{}{
			"key": key,
		})
		return err
	}
	return nil
}
