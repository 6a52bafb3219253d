// Package capability holds the shared error vocabulary and call helper for
// the external services the voice agent depends on (speech, NLP, LLM,
// embeddings, routing).
package capability

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotConfigured is returned by a capability whose credential is missing.
	ErrNotConfigured = errors.New("capability not configured")
	// ErrEmptyInput is returned when a capability is handed nothing to work on.
	ErrEmptyInput = errors.New("empty input")
)

// Call runs fn under a child context bounded by timeout. A non-positive
// timeout only inherits the parent's deadline.
func Call[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		return fn(ctx)
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return fn(callCtx)
}

// IsTransient reports whether err is a timeout or cancellation rather than a
// fault the caller should surface.
func IsTransient(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
