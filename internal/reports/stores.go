package reports

import (
	"context"
	"sync/atomic"

	"github.com/airparadis/sentiment-api/internal/clients"
	"github.com/airparadis/sentiment-api/internal/clients/kafka_client"
	"github.com/airparadis/sentiment-api/internal/models"
)

// MemoryStore counts reports in-process. The count resets on restart; good
// enough when no valkey address is configured.
type MemoryStore struct {
	count atomic.Int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Increment(ctx context.Context, report models.BadPredictionReport) (int64, error) {
	return m.count.Add(1), nil
}

// ValkeyStore keeps the counter and a bounded recent-report list in valkey,
// so the count survives restarts and is shared across replicas.
type ValkeyStore struct {
	client *clients.ValkeyClient
}

func NewValkeyStore(client *clients.ValkeyClient) *ValkeyStore {
	return &ValkeyStore{client: client}
}

func (v *ValkeyStore) Increment(ctx context.Context, report models.BadPredictionReport) (int64, error) {
	return v.client.IncrementReportCount(ctx, marshalReport(report))
}

// KafkaNotifier publishes an admin alert event for flagged predictions,
// standing in for the original's email notification.
type KafkaNotifier struct {
	topic string
}

func NewKafkaNotifier(topic string) *KafkaNotifier {
	return &KafkaNotifier{topic: topic}
}

type reportAlert struct {
	models.BadPredictionReport
	ReportCount int64 `json:"report_count"`
}

func (k *KafkaNotifier) Notify(ctx context.Context, report models.BadPredictionReport, count int64) error {
	return kafka_client.PublishEvent(k.topic, report.PredictedSentiment, reportAlert{
		BadPredictionReport: report,
		ReportCount:         count,
	})
}
