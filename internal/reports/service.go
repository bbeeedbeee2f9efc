package reports

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jonreiter/govader"

	"github.com/airparadis/sentiment-api/internal/models"
)

// Store keeps the running report count. Counting must work even when no
// external cache is configured, hence the in-memory fallback.
type Store interface {
	Increment(ctx context.Context, report models.BadPredictionReport) (int64, error)
}

// Notifier tells an administrator that users are flagging predictions.
type Notifier interface {
	Notify(ctx context.Context, report models.BadPredictionReport, count int64) error
}

// Archiver persists individual reports durably. Archive failures are logged
// but never fail the submission; the count is the primary contract.
type Archiver interface {
	Archive(ctx context.Context, report models.BadPredictionReport) error
}

type Service struct {
	store    Store
	notifier Notifier
	archiver Archiver

	// Notify every Nth report; 0 disables notifications.
	notifyThreshold int64

	analyzer *govader.SentimentIntensityAnalyzer
	now      func() time.Time
}

func NewService(store Store, notifier Notifier, archiver Archiver, notifyThreshold int64) *Service {
	return &Service{
		store:           store,
		notifier:        notifier,
		archiver:        archiver,
		notifyThreshold: notifyThreshold,
		analyzer:        govader.NewSentimentIntensityAnalyzer(),
		now:             time.Now,
	}
}

// Submit records one flagged prediction and returns the running count plus
// whether the admin notification went out.
func (s *Service) Submit(ctx context.Context, req models.ReportRequest) (models.ReportResponse, error) {
	report := models.BadPredictionReport{
		Text:               req.Text,
		PredictedSentiment: req.PredictedSentiment,
		ConfidenceScore:    req.ConfidenceScore,
		LexiconScore:       s.analyzer.PolarityScores(req.Text).Compound,
		ReportedAt:         s.now().UTC(),
	}

	count, err := s.store.Increment(ctx, report)
	if err != nil {
		return models.ReportResponse{}, err
	}

	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, report); err != nil {
			slog.Warn("[Reports] Failed to archive report",
				slog.String("error", err.Error()))
		}
	}

	notified := false
	if s.notifier != nil && s.notifyThreshold > 0 && count%s.notifyThreshold == 0 {
		if err := s.notifier.Notify(ctx, report, count); err != nil {
			slog.Warn("[Reports] Failed to send notification",
				slog.String("error", err.Error()))
		} else {
			notified = true
		}
	}

	slog.Info("[Reports] Bad prediction reported",
		slog.Int64("report_count", count),
		slog.Bool("notification_sent", notified),
		slog.Float64("lexicon_score", report.LexiconScore))

	return models.ReportResponse{
		ReportCount:      count,
		NotificationSent: notified,
	}, nil
}

func marshalReport(report models.BadPredictionReport) []byte {
	data, err := json.Marshal(report)
	if err != nil {
		slog.Warn("[Reports] Failed to serialize report",
			slog.String("error", err.Error()))
		return nil
	}
	return data
}
