package aws

import (
	"context"
	"fmt"
	"os"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// LoadAWSConfig loads the default AWS config. When AWS_ENDPOINT (or one of the
// per-service AWS_SNS_ENDPOINT / AWS_S3_ENDPOINT overrides) is set, every
// client built from the config targets that URL, which is how the service
// talks to LocalStack in development.
func LoadAWSConfig(ctx context.Context) (sdkaws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return cfg, fmt.Errorf("failed to load aws config: %w", err)
	}

	endpoint := endpointFromEnv(os.Getenv)
	if endpoint == "" {
		return cfg, nil
	}

	signingRegion := cfg.Region
	if signingRegion == "" {
		signingRegion = os.Getenv("AWS_REGION")
	}
	cfg.EndpointResolverWithOptions = localResolver(endpoint, signingRegion)
	return cfg, nil
}

func endpointFromEnv(getenv func(string) string) string {
	for _, key := range []string{"AWS_SNS_ENDPOINT", "AWS_S3_ENDPOINT", "AWS_ENDPOINT"} {
		if v := getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// localResolver returns the same endpoint for all services so the LocalStack
// edge port is used.
func localResolver(endpoint, signingRegion string) sdkaws.EndpointResolverWithOptions {
	return sdkaws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (sdkaws.Endpoint, error) {
		sr := signingRegion
		if sr == "" {
			sr = region
		}
		return sdkaws.Endpoint{
			URL:               endpoint,
			SigningRegion:     sr,
			HostnameImmutable: true,
		}, nil
	})
}
