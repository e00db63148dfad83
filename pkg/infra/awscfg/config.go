package awscfg

import (
	"context"
	"fmt"

	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

const (
	defaultRegion      = "us-east-1"
	defaultSessionName = "ContentGuardSession"
)

// Load builds an aws.Config from the configured credentials. Empty static keys
// fall back to the default credential chain. When UseRole is set the resulting
// identity assumes RoleARN first.
func Load(ctx context.Context, creds *providers.AwsCredentials) (aws.Config, error) {
	if creds == nil {
		return config.LoadDefaultConfig(ctx, config.WithRegion(defaultRegion))
	}
	region := creds.Region
	if region == "" {
		region = defaultRegion
	}

	cfg, err := loadStatic(ctx, creds.AccessKey, creds.SecretKey, creds.SessionToken, region)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load AWS config: %w", err)
	}
	if !creds.UseRole || creds.RoleARN == "" {
		return cfg, nil
	}

	output, err := sts.NewFromConfig(cfg).AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(creds.RoleARN),
		RoleSessionName: aws.String(defaultSessionName),
	})
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to assume role: %w", err)
	}
	if output.Credentials == nil {
		return aws.Config{}, fmt.Errorf("assume role returned no credentials")
	}
	return loadStatic(ctx,
		aws.ToString(output.Credentials.AccessKeyId),
		aws.ToString(output.Credentials.SecretAccessKey),
		aws.ToString(output.Credentials.SessionToken),
		region,
	)
}

func loadStatic(ctx context.Context, accessKey, secretKey, sessionToken, region string) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(aws.CredentialsProviderFunc(
			func(context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     accessKey,
					SecretAccessKey: secretKey,
					SessionToken:    sessionToken,
				}, nil
			},
		)))
	}
	return config.LoadDefaultConfig(ctx, opts...)
}

// CacheKey identifies a credential set for client pooling.
func CacheKey(creds *providers.AwsCredentials) string {
	if creds == nil {
		return "default"
	}
	return fmt.Sprintf("%s:%s:%v:%s", creds.AccessKey, creds.Region, creds.UseRole, creds.RoleARN)
}
