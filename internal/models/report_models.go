package models

import "time"

type ReportRequest struct {
	Text               string  `json:"text"`
	PredictedSentiment string  `json:"predicted_sentiment"`
	ConfidenceScore    float64 `json:"confidence_score"`
}

type ReportResponse struct {
	ReportCount      int64 `json:"report_count"`
	NotificationSent bool  `json:"notification_sent"`
}

// BadPredictionReport is what gets stored and published when a user flags
// a prediction. LexiconScore is an independent rule-based polarity attached
// for triage, so reviewers can see whether a non-ML analyzer agreed with
// the reported prediction.
type BadPredictionReport struct {
	Text               string    `json:"text"`
	PredictedSentiment string    `json:"predicted_sentiment"`
	ConfidenceScore    float64   `json:"confidence_score"`
	LexiconScore       float64   `json:"lexicon_score"`
	ReportedAt         time.Time `json:"reported_at"`
}
