package dto

import "civic-voice-be/pkg/rag/report"

type TextQueryRequest struct {
	Query string `json:"query" validate:"required,min=1,max=500"`
}

type SourceDTO struct {
	Id     string  `json:"id"`
	Title  string  `json:"title"`
	Score  float64 `json:"score"`
	Source string  `json:"source"`
}

type TextQueryResponse struct {
	Response string            `json:"response"`
	Intent   string            `json:"intent"`
	Route    string            `json:"route"`
	Entities map[string]string `json:"entities"`
	Sources  []SourceDTO       `json:"sources"`
}

// VoiceQueryResponse carries the synthesized reply as base64; it is omitted
// when speech synthesis failed.
type VoiceQueryResponse struct {
	Status           string `json:"status"`
	Transcription    string `json:"transcription"`
	LanguageCode     string `json:"language_code"`
	Intent           string `json:"intent,omitempty"`
	ResponseText     string `json:"response_text"`
	ResponseAudio    string `json:"response_audio,omitempty"`
	ProcessingTimeMs int64  `json:"processing_time_ms"`
}

type ReportDraftRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}

type ReportDraftResponse struct {
	Route   string         `json:"route"`
	Intent  string         `json:"intent"`
	Details report.Details `json:"details"`
}
