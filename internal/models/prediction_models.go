package models

type PredictRequest struct {
	Text string `json:"text"`
}

// PredictResponse echoes the original text, never the cleaned version.
// Confidence and Score are rounded to 4 decimals for presentation.
type PredictResponse struct {
	Text       string  `json:"text"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	Score      float64 `json:"score"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
