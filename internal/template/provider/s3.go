package provider

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/tacogips/rptnew/internal/debug"
)

// S3API is the subset of the S3 client used to fetch templates.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Provider implements Provider for s3://bucket/key templates.
type S3Provider struct {
	// Region overrides the region from the shared AWS configuration.
	Region string

	mu     sync.Mutex
	client S3API
}

// NewS3Provider creates an S3 provider. The client is created on first use
// from the default AWS credential chain.
func NewS3Provider(region string) *S3Provider {
	return &S3Provider{Region: region}
}

// NewS3ProviderWithClient creates an S3 provider that uses client.
func NewS3ProviderWithClient(client S3API) *S3Provider {
	return &S3Provider{client: client}
}

// Name returns the provider name.
func (p *S3Provider) Name() string {
	return "s3"
}

// Open fetches the object addressed by reportPath.
func (p *S3Provider) Open(ctx context.Context, reportPath string) (io.ReadCloser, error) {
	bucket, key, err := ParseS3URL(reportPath)
	if err != nil {
		return nil, NewInvalidURLError(p.Name(), reportPath, err)
	}
	debug.Debug("[s3] Fetching bucket=%s key=%s", bucket, key)

	client, err := p.getClient(ctx)
	if err != nil {
		return nil, NewFetchError(p.Name(), reportPath, err)
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, p.classify(reportPath, err)
	}

	return out.Body, nil
}

func (p *S3Provider) getClient(ctx context.Context) (S3API, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	var opts []func(*config.LoadOptions) error
	if p.Region != "" {
		opts = append(opts, config.WithRegion(p.Region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	p.client = s3.NewFromConfig(cfg)
	return p.client, nil
}

func (p *S3Provider) classify(reportPath string, err error) error {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return NewNotFoundError(p.Name(), reportPath)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchBucket":
			return NewNotFoundError(p.Name(), reportPath)
		case "AccessDenied", "Forbidden":
			return NewAuthError(p.Name(), reportPath)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(p.Name(), reportPath, err)
	}
	return NewFetchError(p.Name(), reportPath, err)
}
