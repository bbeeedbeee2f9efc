package clients

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

var (
	awsCfg  aws.Config
	awsErr  error
	awsOnce sync.Once
)

func GetAWSConfig() (aws.Config, error) {
	awsOnce.Do(func() {
		region := os.Getenv("AWS_REGION")
		if region == "" {
			region = "eu-west-3"
		}

		slog.Info("[AWSClient] Initializing AWS Config...",
			slog.String("region", region))

		awsCfg, awsErr = config.LoadDefaultConfig(context.Background(),
			config.WithRegion(region))
		if awsErr == nil {
			slog.Info("[AWSClient] AWS Config Initialized")
		}
	})
	return awsCfg, awsErr
}

func GetDynamoDBClient() (*dynamodb.Client, error) {
	cfg, err := GetAWSConfig()
	if err != nil {
		return nil, err
	}

	endpoint := os.Getenv("AWS_ENDPOINT")
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}
