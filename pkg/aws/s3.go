package aws

import (
	"context"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ImageSigner turns a catalog image key into a URL the browser can fetch.
type ImageSigner interface {
	SignImage(ctx context.Context, key string) (string, error)
}

type presignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3ImageSigner issues presigned GET URLs for objects in the catalog bucket.
type S3ImageSigner struct {
	presigner presignAPI
	bucket    string
	expiry    time.Duration
}

func NewS3ImageSigner(cfg sdkaws.Config, bucket string, expiry time.Duration) *S3ImageSigner {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		// LocalStack serves buckets on the path, not a subdomain
		o.UsePathStyle = true
	})
	return &S3ImageSigner{
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		expiry:    expiry,
	}
}

// SignImage generates a presigned GET URL for key.
func (s *S3ImageSigner) SignImage(ctx context.Context, key string) (string, error) {
	presigned, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: sdkaws.String(s.bucket),
		Key:    sdkaws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = s.expiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign get object %s: %w", key, err)
	}
	return presigned.URL, nil
}
