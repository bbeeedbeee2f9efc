package inference

import (
	"context"
	"errors"
)

// ErrInference classifies numeric or model execution failures. They are
// never retried; the boundary surfaces them as server-side errors.
var ErrInference = errors.New("inference failure")

// Engine scores a single encoded sequence. Implementations must be safe for
// concurrent use and must not mutate any loaded state.
type Engine interface {
	Score(ctx context.Context, seq []int64) (float64, error)
	Close() error
}
