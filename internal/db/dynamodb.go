package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/airparadis/sentiment-api/internal/models"
)

// ReportArchive writes flagged predictions to DynamoDB so they survive both
// restarts and cache eviction. Items expire after 30 days.
type ReportArchive struct {
	client *dynamodb.Client
	table  string
}

func NewReportArchive(client *dynamodb.Client, table string) *ReportArchive {
	return &ReportArchive{client: client, table: table}
}

type reportItem struct {
	ReportID           string  `dynamodbav:"report_id"`
	Text               string  `dynamodbav:"text"`
	PredictedSentiment string  `dynamodbav:"predicted_sentiment"`
	ConfidenceScore    float64 `dynamodbav:"confidence_score"`
	LexiconScore       float64 `dynamodbav:"lexicon_score"`
	ReportedAt         string  `dynamodbav:"reported_at"`
	ExpiresAt          int64   `dynamodbav:"expires_at"`
}

func (a *ReportArchive) Archive(ctx context.Context, report models.BadPredictionReport) error {
	item := reportItem{
		ReportID:           fmt.Sprintf("report-%d", report.ReportedAt.UnixNano()),
		Text:               report.Text,
		PredictedSentiment: report.PredictedSentiment,
		ConfidenceScore:    report.ConfidenceScore,
		LexiconScore:       report.LexiconScore,
		ReportedAt:         report.ReportedAt.UTC().Format(time.RFC3339),
		ExpiresAt:          report.ReportedAt.Add(30 * 24 * time.Hour).Unix(),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("[DynamoDB] failed to marshal report: %w", err)
	}

	_, err = a.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &a.table,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] failed to store report: %w", err)
	}

	slog.Info("[DynamoDB] Report archived",
		slog.String("report_id", item.ReportID))
	return nil
}

// EnsureTable is a startup convenience for local development against
// DynamoDB Local; in real deployments the table is provisioned elsewhere.
func (a *ReportArchive) EnsureTable(ctx context.Context) error {
	_, err := a.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: &a.table,
	})
	if err == nil {
		return nil
	}

	slog.Info("[DynamoDB] Creating reports table", slog.String("table", a.table))
	_, err = a.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: &a.table,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: strPtr("report_id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: strPtr("report_id"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] failed to create table: %w", err)
	}
	return nil
}

func strPtr(s string) *string { return &s }
