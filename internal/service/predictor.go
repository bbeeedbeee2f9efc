package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/airparadis/sentiment-api/internal/inference"
	"github.com/airparadis/sentiment-api/internal/models"
	"github.com/airparadis/sentiment-api/internal/normalizer"
	"github.com/airparadis/sentiment-api/internal/sentiment"
	"github.com/airparadis/sentiment-api/internal/tokenizer"
)

// EngineLoader opens the model artifact. Overridable so tests can stand in
// a stub engine without an ONNX runtime on the machine.
type EngineLoader func(cfg inference.ORTConfig) (inference.Engine, error)

type PredictorConfig struct {
	ModelPath       string
	VocabPath       string
	ORTLibraryPath  string
	ModelInputName  string
	ModelOutputName string

	LoadEngine EngineLoader
}

// Predictor owns the loaded model and vocabulary and runs the scoring
// pipeline. Initialize loads both artifacts exactly once; after a
// successful load the state is never mutated again, so request goroutines
// read it without locking.
type Predictor struct {
	cfg    PredictorConfig
	norm   normalizer.Normalizer
	engine inference.Engine
	vocab  *tokenizer.Vocab
	ready  atomic.Bool
}

func NewPredictor(cfg PredictorConfig, norm normalizer.Normalizer) *Predictor {
	if cfg.LoadEngine == nil {
		cfg.LoadEngine = func(c inference.ORTConfig) (inference.Engine, error) {
			return inference.NewORTEngine(c)
		}
	}
	if cfg.ModelInputName == "" {
		cfg.ModelInputName = "input"
	}
	if cfg.ModelOutputName == "" {
		cfg.ModelOutputName = "output"
	}
	return &Predictor{cfg: cfg, norm: norm}
}

// Initialize loads the vocabulary and the model, in that order, exactly
// once. Any failure wraps ErrModelUnavailable; the process must not keep
// running half-initialized, so the caller is expected to abort on error.
// There is no retry and no reload during the process lifetime.
func (p *Predictor) Initialize(ctx context.Context) error {
	if p.ready.Load() {
		return nil
	}

	start := time.Now()
	slog.Info("[Predictor] Loading vocabulary...",
		slog.String("path", p.cfg.VocabPath))

	vocab, err := tokenizer.LoadVocab(p.cfg.VocabPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	slog.Info("[Predictor] Loading model...",
		slog.String("path", p.cfg.ModelPath))

	engine, err := p.cfg.LoadEngine(inference.ORTConfig{
		ModelPath:   p.cfg.ModelPath,
		LibraryPath: p.cfg.ORTLibraryPath,
		InputName:   p.cfg.ModelInputName,
		OutputName:  p.cfg.ModelOutputName,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	p.vocab = vocab
	p.engine = engine
	p.ready.Store(true)

	slog.Info("[Predictor] Artifacts loaded",
		slog.Int("vocab_size", vocab.Size()),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// ModelLoaded reports whether both artifacts are in place.
func (p *Predictor) ModelLoaded() bool {
	return p.ready.Load() && p.engine != nil && p.vocab != nil
}

// Predict runs validation, normalization, encoding, scoring and decision
// for one text. Validation is ordered and fails fast. Empty input is
// rejected before the readiness gate: a request that can never succeed gets
// a 400-class answer even while the service is still loading.
func (p *Predictor) Predict(ctx context.Context, text string) (models.PredictResponse, error) {
	if strings.TrimSpace(text) == "" {
		return models.PredictResponse{}, ErrEmptyText
	}

	if !p.ModelLoaded() {
		return models.PredictResponse{}, ErrNotReady
	}

	tokens := p.norm.Clean(text, normalizer.ModeLemmatizer)
	if len(tokens) == 0 {
		return models.PredictResponse{}, ErrNoTokens
	}

	encoded := p.vocab.Encode(tokens)

	score, err := p.engine.Score(ctx, encoded)
	if err != nil {
		return models.PredictResponse{}, err
	}

	result := sentiment.Decide(score)

	return models.PredictResponse{
		Text:       text,
		Sentiment:  result.Sentiment,
		Confidence: sentiment.Round4(result.Confidence),
		Score:      sentiment.Round4(score),
	}, nil
}

func (p *Predictor) Close() {
	if p.engine != nil {
		if err := p.engine.Close(); err != nil {
			slog.Warn("[Predictor] Failed to close inference engine",
				slog.String("error", err.Error()))
		}
	}
}
