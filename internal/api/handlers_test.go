package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/airparadis/sentiment-api/internal/api"
	"github.com/airparadis/sentiment-api/internal/models"
	"github.com/airparadis/sentiment-api/internal/service"
)

type mockPredictor struct {
	loaded  bool
	predict func(ctx context.Context, text string) (models.PredictResponse, error)
}

func (m *mockPredictor) Predict(ctx context.Context, text string) (models.PredictResponse, error) {
	return m.predict(ctx, text)
}

func (m *mockPredictor) ModelLoaded() bool { return m.loaded }

type mockReports struct {
	submit func(ctx context.Context, req models.ReportRequest) (models.ReportResponse, error)
}

func (m *mockReports) Submit(ctx context.Context, req models.ReportRequest) (models.ReportResponse, error) {
	return m.submit(ctx, req)
}

// readyPredictor mimics the real validation order over a fixed score.
func readyPredictor(score float64) *mockPredictor {
	return &mockPredictor{
		loaded: true,
		predict: func(ctx context.Context, text string) (models.PredictResponse, error) {
			if strings.TrimSpace(text) == "" {
				return models.PredictResponse{}, service.ErrEmptyText
			}
			return models.PredictResponse{
				Text:       text,
				Sentiment:  "positif",
				Confidence: score,
				Score:      score,
			}, nil
		},
	}
}

func notReadyPredictor() *mockPredictor {
	return &mockPredictor{
		loaded: false,
		predict: func(ctx context.Context, text string) (models.PredictResponse, error) {
			if strings.TrimSpace(text) == "" {
				return models.PredictResponse{}, service.ErrEmptyText
			}
			return models.PredictResponse{}, service.ErrNotReady
		},
	}
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestPredictSuccess(t *testing.T) {
	h := api.NewHandler(readyPredictor(0.8235), nil)

	rec := doRequest(t, h.Routes(), http.MethodPost, "/predict", `{"text": "great flight"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200. Body: %s", rec.Code, rec.Body.String())
	}

	var resp models.PredictResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Text != "great flight" {
		t.Errorf("Response text = %q, want the original input", resp.Text)
	}
	if resp.Sentiment != "positif" {
		t.Errorf("Sentiment = %q, want positif", resp.Sentiment)
	}
}

func TestPredictEmptyText(t *testing.T) {
	// 400 for empty text whether or not the model is loaded.
	for name, p := range map[string]*mockPredictor{
		"ready":     readyPredictor(0.9),
		"not ready": notReadyPredictor(),
	} {
		t.Run(name, func(t *testing.T) {
			h := api.NewHandler(p, nil)

			for _, body := range []string{`{"text": ""}`, `{"text": "   "}`, `{}`} {
				rec := doRequest(t, h.Routes(), http.MethodPost, "/predict", body)
				if rec.Code != http.StatusBadRequest {
					t.Errorf("Body %s: status = %d, want 400", body, rec.Code)
				}

				var errResp models.ErrorResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
					t.Fatal(err)
				}
				if errResp.Detail != "empty text" {
					t.Errorf("Detail = %q, want %q", errResp.Detail, "empty text")
				}
			}
		})
	}
}

func TestPredictServiceUnavailable(t *testing.T) {
	h := api.NewHandler(notReadyPredictor(), nil)

	rec := doRequest(t, h.Routes(), http.MethodPost, "/predict", `{"text": "great flight"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want 503", rec.Code)
	}
}

func TestPredictNoTokens(t *testing.T) {
	p := &mockPredictor{
		loaded: true,
		predict: func(ctx context.Context, text string) (models.PredictResponse, error) {
			return models.PredictResponse{}, service.ErrNoTokens
		},
	}
	h := api.NewHandler(p, nil)

	rec := doRequest(t, h.Routes(), http.MethodPost, "/predict", `{"text": "@user #tag"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", rec.Code)
	}

	var errResp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatal(err)
	}
	if errResp.Detail != "no valid tokens after cleaning" {
		t.Errorf("Detail = %q, want %q", errResp.Detail, "no valid tokens after cleaning")
	}
}

func TestPredictInternalError(t *testing.T) {
	p := &mockPredictor{
		loaded: true,
		predict: func(ctx context.Context, text string) (models.PredictResponse, error) {
			return models.PredictResponse{}, context.DeadlineExceeded
		},
	}
	h := api.NewHandler(p, nil)

	rec := doRequest(t, h.Routes(), http.MethodPost, "/predict", `{"text": "great flight"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "deadline exceeded") {
		t.Errorf("500 body should carry the underlying description, got %s", rec.Body.String())
	}
}

func TestPredictMalformedBody(t *testing.T) {
	h := api.NewHandler(readyPredictor(0.9), nil)

	rec := doRequest(t, h.Routes(), http.MethodPost, "/predict", `{"text": `)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		predictor  *mockPredictor
		wantLoaded bool
	}{
		{"before load", notReadyPredictor(), false},
		{"after load", readyPredictor(0.9), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := api.NewHandler(tt.predictor, nil)

			rec := doRequest(t, h.Routes(), http.MethodGet, "/health", "")
			if rec.Code != http.StatusOK {
				t.Fatalf("Status = %d, want 200", rec.Code)
			}

			var resp models.HealthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			// Status stays "healthy" regardless of load state.
			if resp.Status != "healthy" {
				t.Errorf("Status field = %q, want healthy", resp.Status)
			}
			if resp.ModelLoaded != tt.wantLoaded {
				t.Errorf("ModelLoaded = %v, want %v", resp.ModelLoaded, tt.wantLoaded)
			}
		})
	}
}

func TestRoot(t *testing.T) {
	h := api.NewHandler(readyPredictor(0.9), nil)

	rec := doRequest(t, h.Routes(), http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if _, ok := resp["endpoints"]; !ok {
		t.Error("Root payload should list available endpoints")
	}
}

func TestReportNotConfigured(t *testing.T) {
	h := api.NewHandler(readyPredictor(0.9), nil)

	rec := doRequest(t, h.Routes(), http.MethodPost, "/report-bad-prediction",
		`{"text": "bad", "predicted_sentiment": "positif", "confidence_score": 0.9}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want 503 when reports are not wired", rec.Code)
	}
}

func TestReportSuccess(t *testing.T) {
	reports := &mockReports{
		submit: func(ctx context.Context, req models.ReportRequest) (models.ReportResponse, error) {
			return models.ReportResponse{ReportCount: 3, NotificationSent: true}, nil
		},
	}
	h := api.NewHandler(readyPredictor(0.9), reports)

	rec := doRequest(t, h.Routes(), http.MethodPost, "/report-bad-prediction",
		`{"text": "bad", "predicted_sentiment": "positif", "confidence_score": 0.9}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200. Body: %s", rec.Code, rec.Body.String())
	}

	var resp models.ReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.ReportCount != 3 || !resp.NotificationSent {
		t.Errorf("Unexpected report response: %+v", resp)
	}
}

func TestReportEmptyText(t *testing.T) {
	reports := &mockReports{
		submit: func(ctx context.Context, req models.ReportRequest) (models.ReportResponse, error) {
			t.Fatal("Submit should not be called for empty text")
			return models.ReportResponse{}, nil
		},
	}
	h := api.NewHandler(readyPredictor(0.9), reports)

	rec := doRequest(t, h.Routes(), http.MethodPost, "/report-bad-prediction", `{"text": ""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", rec.Code)
	}
}
