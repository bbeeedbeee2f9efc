package inference

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var ortInitOnce sync.Once

// ORTConfig locates the exported model and names its graph bindings.
type ORTConfig struct {
	// Path to the model exported to ONNX by the training process.
	ModelPath string
	// Optional path to the onnxruntime shared library. Empty means the
	// runtime's default lookup.
	LibraryPath string
	// Graph input holding the [1, MaxLen] int64 sequence, e.g. "input".
	InputName string
	// Graph output holding the [1, 1] float32 sigmoid score, e.g. "output".
	OutputName string
}

// ORTEngine runs the sentiment model through the ONNX runtime. The session
// is created once at startup and is immutable afterwards; Run on a dynamic
// session is safe across request goroutines.
type ORTEngine struct {
	session    *ort.DynamicAdvancedSession
	inputName  string
	outputName string
}

func NewORTEngine(cfg ORTConfig) (*ORTEngine, error) {
	var initErr error
	ortInitOnce.Do(func() {
		if cfg.LibraryPath != "" {
			ort.SetSharedLibraryPath(cfg.LibraryPath)
		}
		initErr = ort.InitializeEnvironment()
	})
	if initErr != nil {
		return nil, fmt.Errorf("[Inference] failed to initialize ONNX runtime: %w", initErr)
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath,
		[]string{cfg.InputName}, []string{cfg.OutputName}, nil)
	if err != nil {
		return nil, fmt.Errorf("[Inference] failed to load model %s: %w", cfg.ModelPath, err)
	}

	slog.Info("[Inference] Model session created",
		slog.String("model", cfg.ModelPath))

	return &ORTEngine{
		session:    session,
		inputName:  cfg.InputName,
		outputName: cfg.OutputName,
	}, nil
}

// Score runs the model on a single-item batch and extracts the scalar
// sigmoid output. Shape mismatches, runtime faults and non-finite or
// out-of-range outputs all classify as ErrInference.
func (e *ORTEngine) Score(ctx context.Context, seq []int64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	input, err := ort.NewTensor(ort.NewShape(1, int64(len(seq))), seq)
	if err != nil {
		return 0, fmt.Errorf("%w: building input tensor: %v", ErrInference, err)
	}
	defer input.Destroy()

	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 1))
	if err != nil {
		return 0, fmt.Errorf("%w: building output tensor: %v", ErrInference, err)
	}
	defer output.Destroy()

	if err := e.session.Run([]ort.Value{input}, []ort.Value{output}); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInference, err)
	}

	score := float64(output.GetData()[0])
	if math.IsNaN(score) || score < 0 || score > 1 {
		return 0, fmt.Errorf("%w: model produced score %v outside [0,1]", ErrInference, score)
	}
	return score, nil
}

func (e *ORTEngine) Close() error {
	if e.session != nil {
		return e.session.Destroy()
	}
	return nil
}
