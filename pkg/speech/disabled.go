package speech

import (
	"context"
	"fmt"

	"civic-voice-be/pkg/capability"
)

// Disabled stands in for a capability whose credential is missing. Every
// call reports capability.ErrNotConfigured so the pipeline can fall back
// while the misconfiguration still shows up in the logs.
type Disabled struct {
	Name string
}

func (d Disabled) err() error {
	return fmt.Errorf("%s: %w", d.Name, capability.ErrNotConfigured)
}

func (d Disabled) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	return "", d.err()
}

func (d Disabled) Detect(ctx context.Context, audio []byte) (string, error) {
	return "", d.err()
}

func (d Disabled) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	return nil, d.err()
}
