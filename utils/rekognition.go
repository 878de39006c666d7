// utils/rekognition.go
package utils

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"

	"github.com/JaguarsCodehub/food-calorie/config"
)

// LoadAWSConfig resolves the SDK config for the configured region.
// Static keys win when both are set; otherwise the default chain applies
// (env, shared profile, instance role).
func LoadAWSConfig(ctx context.Context, c config.AWSConfig) (aws.Config, error) {
	if c.Region == "" {
		return aws.Config{}, errors.New("AWS_REGION not set")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.Region),
	}
	if c.AccessKeyID != "" && c.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load AWS config: %w", err)
	}
	return cfg, nil
}

// NewRekognitionClient is LoadAWSConfig followed by rekognition.NewFromConfig.
func NewRekognitionClient(ctx context.Context, c config.AWSConfig) (*rekognition.Client, error) {
	cfg, err := LoadAWSConfig(ctx, c)
	if err != nil {
		return nil, err
	}
	return rekognition.NewFromConfig(cfg), nil
}
