package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/airparadis/sentiment-api/internal/inference"
	"github.com/airparadis/sentiment-api/internal/models"
	"github.com/airparadis/sentiment-api/internal/service"
)

// PredictService is the slice of the predictor the boundary needs.
type PredictService interface {
	Predict(ctx context.Context, text string) (models.PredictResponse, error)
	ModelLoaded() bool
}

// ReportService accepts bad-prediction reports. Optional collaborator; the
// handler refuses reports with 503 when it was not wired in.
type ReportService interface {
	Submit(ctx context.Context, req models.ReportRequest) (models.ReportResponse, error)
}

type Handler struct {
	predictor PredictService
	reports   ReportService
}

func NewHandler(predictor PredictService, reports ReportService) *Handler {
	return &Handler{predictor: predictor, reports: reports}
}

func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("POST /predict", h.Predict)
	mux.HandleFunc("POST /report-bad-prediction", h.Report)
	return mux
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Sentiment analysis API - POST a text to /predict",
		"endpoints": map[string]string{
			"health":  "/health",
			"predict": "/predict",
			"report":  "/report-bad-prediction",
		},
	})
}

// Health always answers "healthy"; a failed model load aborts startup, so a
// serving process with model_loaded=false only happens before the load
// finished. The status string deliberately does not degrade.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:      "healthy",
		ModelLoaded: h.predictor.ModelLoaded(),
	})
}

func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var req models.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.predictor.Predict(r.Context(), req.Text)
	if err != nil {
		status, detail := classify(err)
		if status == http.StatusInternalServerError {
			slog.Error("[API] Prediction failed",
				slog.String("error", err.Error()))
		}
		writeError(w, status, detail)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	if h.reports == nil {
		writeError(w, http.StatusServiceUnavailable, "report submission is not configured")
		return
	}

	var req models.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "empty text")
		return
	}

	resp, err := h.reports.Submit(r.Context(), req)
	if err != nil {
		slog.Error("[API] Report submission failed",
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to record report: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// classify maps the failure taxonomy onto status codes: invalid input is the
// caller's to fix, not-ready means try again later, anything else is an
// internal fault carrying the underlying description.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrEmptyText):
		return http.StatusBadRequest, "empty text"
	case errors.Is(err, service.ErrNoTokens):
		return http.StatusBadRequest, "no valid tokens after cleaning"
	case errors.Is(err, service.ErrNotReady):
		return http.StatusServiceUnavailable, "model or tokenizer is not loaded, try again later"
	case errors.Is(err, inference.ErrInference):
		return http.StatusInternalServerError, "prediction failed: " + err.Error()
	default:
		return http.StatusInternalServerError, "prediction failed: " + err.Error()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("[API] Failed to encode response",
			slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, models.ErrorResponse{Detail: detail})
}
