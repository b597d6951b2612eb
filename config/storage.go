package config

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// presignTTL bounds how long a private image URL stays valid
const presignTTL = 7 * 24 * time.Hour

// imagePrefix is where recipe images live in the bucket
const imagePrefix = "recipes/"

// S3Config is the recipe image bucket
type S3Config struct {
	Client     *s3.Client
	BucketName string
	Region     string
	// PublicRead returns plain object URLs instead of presigned ones
	PublicRead bool
}

// NewS3Config initializes the S3 client. It returns nil when no bucket is configured.
func NewS3Config(ctx context.Context, cfg *Config) (*S3Config, error) {
	if cfg.S3BucketName == "" {
		return nil, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3Config{
		Client:     s3.NewFromConfig(awsCfg),
		BucketName: cfg.S3BucketName,
		Region:     cfg.AWSRegion,
		PublicRead: cfg.S3PublicRead,
	}, nil
}

// Upload stores an object and returns a URL it can be fetched from
func (s *S3Config) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if _, err := s.Client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	if s.PublicRead {
		return s.ObjectURL(key), nil
	}
	return s.presign(ctx, key, presignTTL)
}

// ObjectURL is the virtual-hosted style URL of a public object
func (s *S3Config) ObjectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.BucketName, s.Region, key)
}

// PublicReadPolicy is the bucket policy granting anonymous reads of recipe images only
func (s *S3Config) PublicReadPolicy() string {
	return fmt.Sprintf(`{
	"Version": "2012-10-17",
	"Statement": [{
		"Sid": "PublicReadRecipeImages",
		"Effect": "Allow",
		"Principal": "*",
		"Action": "s3:GetObject",
		"Resource": "arn:aws:s3:::%s/%s*"
	}]
}`, s.BucketName, imagePrefix)
}

// SetupBucketPolicy applies PublicReadPolicy to the bucket
func (s *S3Config) SetupBucketPolicy(ctx context.Context) error {
	_, err := s.Client.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(s.BucketName),
		Policy: aws.String(s.PublicReadPolicy()),
	})
	if err != nil {
		return fmt.Errorf("failed to apply bucket policy: %w", err)
	}
	return nil
}

func (s *S3Config) presign(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := s3.NewPresignClient(s.Client).PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}
	return req.URL, nil
}
