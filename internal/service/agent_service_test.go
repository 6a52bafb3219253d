package service

import (
	"context"
	"encoding/base64"
	"io"
	"log"
	"testing"
	"time"

	"civic-voice-be/internal/dto"
	"civic-voice-be/internal/entity"
	"civic-voice-be/internal/pkg/logger"
	"civic-voice-be/pkg/llm"
	"civic-voice-be/pkg/nlp"
	"civic-voice-be/pkg/rag/executor"
	"civic-voice-be/pkg/rag/intent"
	"civic-voice-be/pkg/rag/report"
	"civic-voice-be/pkg/rag/response"
	"civic-voice-be/pkg/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticNLP []nlp.Entity

func (s staticNLP) AnalyzeEntities(ctx context.Context, text string) ([]nlp.Entity, error) {
	return s, nil
}

type echoSpeech struct{}

func (echoSpeech) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	return string(audio), nil
}

func (echoSpeech) Detect(ctx context.Context, audio []byte) (string, error) { return "en", nil }

func (echoSpeech) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	return []byte("audio:" + text), nil
}

func newAgentService(t *testing.T, entities staticNLP) (IAgentService, *knowledgeFixture) {
	t.Helper()
	f := newKnowledgeFixture(t, false)
	quiet := log.New(io.Discard, "", 0)

	classifier := intent.NewClassifier(entities, time.Second, quiet)
	pipeline := executor.NewVoicePipeline(executor.Dependencies{
		Detector:    echoSpeech{},
		Transcriber: echoSpeech{},
		Speaker:     echoSpeech{},
		Classifier:  classifier,
		TagSearch:   search.NewTagSearch(f.articles),
		Synthesizer: response.NewSynthesizer(llm.NewResponder(nil, llm.ResolveSettings("", "", ""), false), time.Second, quiet),
	}, executor.Config{StageTimeout: time.Second}, quiet)

	return NewAgentService(pipeline, classifier, logger.NewNopLogger()), f
}

func TestAgentQueryReturnsSources(t *testing.T) {
	svc, f := newAgentService(t, staticNLP{{Name: "garbage", Type: nlp.EntityOther}})
	now := time.Now().UTC()
	require.NoError(t, f.articles.Create(context.Background(), &entity.KnowledgeArticle{
		Id: "g1", Title: "Garbage", Content: "Tuesdays.", Tags: []string{"garbage"}, CreatedAt: now, UpdatedAt: now,
	}))

	res, err := svc.Query(context.Background(), &dto.TextQueryRequest{Query: "When is garbage picked up?"})
	require.NoError(t, err)

	assert.Equal(t, intent.InformationalQuery, res.Intent)
	assert.Equal(t, report.RouteKnowledgeBase, res.Route)
	assert.Equal(t, "Garbage\n\nTuesdays.", res.Response)
	require.Len(t, res.Sources, 1)
	assert.Equal(t, dto.SourceDTO{Id: "g1", Title: "Garbage", Score: 1, Source: "tag"}, res.Sources[0])
}

func TestAgentVoiceEncodesAudio(t *testing.T) {
	svc, _ := newAgentService(t, nil)

	res, err := svc.Voice(context.Background(), []byte("Tell me a joke"), "")
	require.NoError(t, err)

	assert.Equal(t, executor.StatusCompleted, res.Status)
	assert.Equal(t, "en", res.LanguageCode)
	assert.Equal(t, intent.Unknown, res.Intent)

	audio, err := base64.StdEncoding.DecodeString(res.ResponseAudio)
	require.NoError(t, err)
	assert.Equal(t, "audio:"+res.ResponseText, string(audio))
}

func TestAgentVoiceWithoutAudio(t *testing.T) {
	svc, _ := newAgentService(t, nil)

	res, err := svc.Voice(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Equal(t, executor.StatusNoAudio, res.Status)
	assert.Empty(t, res.ResponseAudio)
}

func TestAgentDraftReport(t *testing.T) {
	svc, _ := newAgentService(t, staticNLP{{Name: "MG Road", Type: nlp.EntityLocation}})

	res, err := svc.DraftReport(context.Background(), &dto.ReportDraftRequest{
		Text: "There is a huge pothole near MG Road, please fix it urgent",
	})
	require.NoError(t, err)

	assert.Equal(t, "pothole", res.Details.Category)
	assert.Equal(t, "MG Road", res.Details.Location)
	assert.Equal(t, report.PriorityUrgent, res.Details.Priority)
}
