package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ReportArchive stores run reports as objects
type ReportArchive interface {
	PutReport(ctx context.Context, key string, body []byte) error
	GetReport(ctx context.Context, key string) ([]byte, error)
	GenerateDownloadURL(ctx context.Context, key string) (string, error)
}

type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type s3Archive struct {
	client    objectAPI
	presign   func(ctx context.Context, key string, expiry time.Duration) (string, error)
	bucket    string
	urlExpiry time.Duration
}

// S3Config holds configuration for the S3 report archive
type S3Config struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// ReportKey returns the object key of a run's report
func ReportKey(runID string) string {
	return "reports/" + runID + ".json"
}

// NewS3Archive creates a new S3 report archive
func NewS3Archive(ctx context.Context, cfg S3Config) (ReportArchive, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	if cfg.Endpoint != "" {
		// S3-compatible endpoint such as MinIO
		endpoint := cfg.Endpoint
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "http://" + endpoint
		}

		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = &endpoint
			o.UsePathStyle = true
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	presignClient := s3.NewPresignClient(client)

	return &s3Archive{
		client: client,
		presign: func(ctx context.Context, key string, expiry time.Duration) (string, error) {
			request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
				Bucket: aws.String(cfg.Bucket),
				Key:    aws.String(key),
			}, func(opts *s3.PresignOptions) {
				opts.Expires = expiry
			})
			if err != nil {
				return "", err
			}
			return request.URL, nil
		},
		bucket:    cfg.Bucket,
		urlExpiry: 24 * time.Hour,
	}, nil
}

// PutReport uploads a JSON report
func (s *s3Archive) PutReport(ctx context.Context, key string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload report: %w", err)
	}
	return nil
}

// GetReport downloads a report
func (s *s3Archive) GetReport(ctx context.Context, key string) ([]byte, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download report: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	return data, nil
}

// GenerateDownloadURL generates a pre-signed URL for downloading a report
func (s *s3Archive) GenerateDownloadURL(ctx context.Context, key string) (string, error) {
	url, err := s.presign(ctx, key, s.urlExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to generate download URL: %w", err)
	}
	return url, nil
}
