package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the part of the S3 client used for downloads.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Fetcher downloads s3://bucket/key URLs.
type S3Fetcher struct {
	client   S3API
	maxBytes int64
}

// NewS3Fetcher wraps an existing client.
func NewS3Fetcher(client S3API, maxBytes int64) *S3Fetcher {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &S3Fetcher{client: client, maxBytes: maxBytes}
}

// NewS3FetcherFromEnv builds a client from the default AWS credential chain.
// A non-empty endpoint switches to path-style addressing for S3-compatible
// stores.
func NewS3FetcherFromEnv(ctx context.Context, region, endpoint string, maxBytes int64) (*S3Fetcher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3Fetcher(client, maxBytes), nil
}

// Fetch downloads the object named by rawURL.
func (f *S3Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	bucket, key, err := parseS3URL(rawURL)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "S3 GetObject failed", Cause: err}
	}
	defer func() { _ = out.Body.Close() }()

	return readLimited(rawURL, out.Body, f.maxBytes)
}

func parseS3URL(rawURL string) (bucket, key string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("scheme %q is not s3", u.Scheme)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("expected s3://bucket/key")
	}
	return u.Host, key, nil
}
