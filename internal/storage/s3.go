// Package storage uploads menu and branding images to S3-compatible object
// storage and serves them through a public base URL.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client is the subset of the S3 API the storage layer uses. Tests swap in a
// fake.
type Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Config struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // optional, for S3-compatible services
	BaseURL   string // public URL base for uploaded objects
}

type S3 struct {
	client  Client
	bucket  string
	baseURL string // always ends with "/"
}

func New(ctx context.Context, cfg Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage.New: bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.New: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// S3-compatible services (MinIO, R2) want path-style addressing.
			o.UsePathStyle = true
		}
	})

	return NewWithClient(client, cfg.Bucket, cfg.BaseURL), nil
}

// NewWithClient wires a pre-built client. Used by tests.
func NewWithClient(client Client, bucket, baseURL string) *S3 {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &S3{client: client, bucket: bucket, baseURL: baseURL}
}

// Upload writes the object and returns its public URL.
func (s *S3) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("storage.Upload: invalid key %q", key)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage.Upload: %w", err)
	}

	return s.baseURL + key, nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return fmt.Errorf("storage.Delete: invalid key %q", key)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("storage.Delete: %w", err)
	}

	return nil
}

// KeyFromURL maps a public URL back to its object key, or "" when the URL was
// not issued by this store.
func (s *S3) KeyFromURL(url string) string {
	if !strings.HasPrefix(url, s.baseURL) {
		return ""
	}
	return strings.TrimPrefix(url, s.baseURL)
}
