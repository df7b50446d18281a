package archive

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"
)

// ObjectPutter is the part of the S3 API the archive writes through.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Client stores raw notification payloads in an S3 bucket.
type Client struct {
	s3Client ObjectPutter
	config   *Config
}

// NewClient creates a new archive client
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	if !cfg.IsEnabled() {
		return nil, fmt.Errorf("notification archive is disabled")
	}

	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			o.UsePathStyle = true
		}
	})

	if _, err := s3Client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(cfg.BucketName)}); err != nil {
		return nil, fmt.Errorf("bucket %s not accessible: %w", cfg.BucketName, err)
	}

	log.Infof("[Archive] Initialized S3 client for bucket: %s", cfg.BucketName)
	return NewClientWithAPI(s3Client, cfg), nil
}

// NewClientWithAPI wraps an existing S3 API implementation.
func NewClientWithAPI(api ObjectPutter, cfg *Config) *Client {
	return &Client{s3Client: api, config: cfg}
}

// Config returns the archive configuration.
func (c *Client) Config() *Config {
	return c.config
}

// Put uploads body under objectKey.
func (c *Client) Put(ctx context.Context, objectKey string, body []byte) error {
	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.config.BucketName),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String("application/json"),
		ContentLength: aws.Int64(int64(len(body))),
		Metadata: map[string]string{
			"upload-source": "adyenbridge-notifications",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}

	log.Infof("[Archive] Stored s3://%s/%s", c.config.BucketName, objectKey)
	return nil
}
