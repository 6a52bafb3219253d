// Package speech holds the audio capabilities of the voice pipeline:
// language detection, transcription and synthesis.
package speech

import "context"

const DefaultLanguage = "en"

type SpeechToText interface {
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}

type LanguageDetector interface {
	Detect(ctx context.Context, audio []byte) (string, error)
}

type TextToSpeech interface {
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}
