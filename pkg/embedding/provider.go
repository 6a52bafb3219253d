package embedding

import "context"

// EmbeddingProvider turns text into a fixed-dimension vector. Implementations
// must return capability.ErrEmptyInput for blank text.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
	Model() string
}
