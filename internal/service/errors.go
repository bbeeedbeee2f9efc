package service

import "errors"

// Failure taxonomy surfaced by Predict. The boundary maps these to HTTP
// status codes; nothing in the pipeline retries on any of them.
var (
	// ErrNotReady: artifacts not loaded yet. Recoverable only by restart.
	ErrNotReady = errors.New("model or tokenizer is not loaded")

	// ErrEmptyText: the request text was empty or whitespace-only.
	ErrEmptyText = errors.New("empty text")

	// ErrNoTokens: cleaning left no content words to score.
	ErrNoTokens = errors.New("no valid tokens after cleaning")

	// ErrModelUnavailable: an artifact failed to load at startup. Fatal;
	// the process entry point decides whether to abort.
	ErrModelUnavailable = errors.New("model unavailable")
)
