package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"civic-voice-be/internal/dto"
	"civic-voice-be/internal/pkg/serverutils"
	"civic-voice-be/internal/service"
	"civic-voice-be/pkg/rag/executor"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeAgent struct {
	gotAudio    []byte
	gotLanguage string
	queryErr    error
}

func (f *fakeAgent) Query(ctx context.Context, req *dto.TextQueryRequest) (*dto.TextQueryResponse, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return &dto.TextQueryResponse{Response: "answer to " + req.Query, Intent: "unknown", Route: "general"}, nil
}

func (f *fakeAgent) Voice(ctx context.Context, audio []byte, language string) (*dto.VoiceQueryResponse, error) {
	f.gotAudio = audio
	f.gotLanguage = language
	if len(audio) == 0 {
		return &dto.VoiceQueryResponse{Status: executor.StatusNoAudio, LanguageCode: "en"}, nil
	}
	return &dto.VoiceQueryResponse{Status: executor.StatusCompleted, Transcription: string(audio), LanguageCode: language}, nil
}

func (f *fakeAgent) DraftReport(ctx context.Context, req *dto.ReportDraftRequest) (*dto.ReportDraftResponse, error) {
	return &dto.ReportDraftResponse{Route: "general"}, nil
}

type fakeKnowledge struct {
	articles map[string]*dto.ArticleResponse
}

func (f *fakeKnowledge) Create(ctx context.Context, req *dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, service.ErrArticleTitleRequired
	}
	a := &dto.ArticleResponse{Id: "new", Title: req.Title, Content: req.Content, Tags: req.Tags}
	f.articles[a.Id] = a
	return a, nil
}

func (f *fakeKnowledge) Update(ctx context.Context, id string, req *dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	a, ok := f.articles[id]
	if !ok {
		return nil, nil
	}
	if req.Title != nil {
		a.Title = *req.Title
	}
	return a, nil
}

func (f *fakeKnowledge) Show(ctx context.Context, id string) (*dto.ArticleResponse, error) {
	return f.articles[id], nil
}

func (f *fakeKnowledge) Delete(ctx context.Context, id string) (bool, error) {
	_, ok := f.articles[id]
	delete(f.articles, id)
	return ok, nil
}

func (f *fakeKnowledge) GetAll(ctx context.Context) ([]*dto.ArticleResponse, error) {
	out := make([]*dto.ArticleResponse, 0, len(f.articles))
	for _, a := range f.articles {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeKnowledge) Reindex(ctx context.Context) (*dto.ReindexResponse, error) {
	return &dto.ReindexResponse{Enabled: true, Indexed: len(f.articles)}, nil
}

type fakeHealth struct{ ok bool }

func (f fakeHealth) Check(ctx context.Context) *dto.HealthResponse {
	if f.ok {
		return &dto.HealthResponse{Success: true, Message: "Live DB connection is healthy", Timestamp: time.Now()}
	}
	return &dto.HealthResponse{Message: "Live DB connection failed: refused", Timestamp: time.Now()}
}

func newApp(agent *fakeAgent, knowledge *fakeKnowledge, health fakeHealth) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewAgentController(agent).RegisterRoutes(api)
	NewKnowledgeController(knowledge, testSecret).RegisterRoutes(api)
	NewHealthController(health).RegisterRoutes(api)
	return app
}

func token(t *testing.T) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "admin"}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, auth string) (int, serverutils.BaseResponse) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out serverutils.BaseResponse
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestAgentQueryRoute(t *testing.T) {
	app := newApp(&fakeAgent{}, &fakeKnowledge{}, fakeHealth{ok: true})

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"valid", "When is garbage collected?", http.StatusOK},
		{"empty", "", http.StatusBadRequest},
		{"too long", strings.Repeat("a", 501), http.StatusBadRequest},
		{"at limit", strings.Repeat("a", 500), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, app, http.MethodPost, "/api/agent/v1/query", dto.TextQueryRequest{Query: tt.query}, "")
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.status == http.StatusOK, body.Success)
		})
	}
}

func TestAgentQueryBlankAfterTrim(t *testing.T) {
	app := newApp(&fakeAgent{queryErr: executor.ErrEmptyQuery}, &fakeKnowledge{}, fakeHealth{ok: true})

	status, _ := doJSON(t, app, http.MethodPost, "/api/agent/v1/query", dto.TextQueryRequest{Query: "   "}, "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAgentVoiceRoute(t *testing.T) {
	send := func(t *testing.T, app *fiber.App, audio []byte, language string) int {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		if audio != nil {
			part, err := w.CreateFormFile("audio", "query.webm")
			require.NoError(t, err)
			_, err = part.Write(audio)
			require.NoError(t, err)
		}
		if language != "" {
			require.NoError(t, w.WriteField("language", language))
		}
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/agent/v1/voice", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	t.Run("with audio", func(t *testing.T) {
		agent := &fakeAgent{}
		app := newApp(agent, &fakeKnowledge{}, fakeHealth{ok: true})

		assert.Equal(t, http.StatusOK, send(t, app, []byte("hello"), "hi"))
		assert.Equal(t, []byte("hello"), agent.gotAudio)
		assert.Equal(t, "hi", agent.gotLanguage)
	})

	t.Run("without audio", func(t *testing.T) {
		agent := &fakeAgent{}
		app := newApp(agent, &fakeKnowledge{}, fakeHealth{ok: true})

		assert.Equal(t, http.StatusOK, send(t, app, nil, ""))
		assert.Empty(t, agent.gotAudio)
	})
}

func TestKnowledgeRoutesRequireToken(t *testing.T) {
	app := newApp(&fakeAgent{}, &fakeKnowledge{articles: map[string]*dto.ArticleResponse{}}, fakeHealth{ok: true})

	status, _ := doJSON(t, app, http.MethodGet, "/api/admin/knowledge/v1", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/admin/knowledge/v1", nil, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestKnowledgeCRUDRoutes(t *testing.T) {
	knowledge := &fakeKnowledge{articles: map[string]*dto.ArticleResponse{}}
	app := newApp(&fakeAgent{}, knowledge, fakeHealth{ok: true})
	auth := token(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/admin/knowledge/v1",
		dto.CreateArticleRequest{Title: "Parks", Content: "Open 6am.", Tags: []string{"parks"}}, auth)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, body.Success)

	status, _ = doJSON(t, app, http.MethodPost, "/api/admin/knowledge/v1",
		dto.CreateArticleRequest{Content: "no title"}, auth)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/admin/knowledge/v1/new", nil, auth)
	assert.Equal(t, http.StatusOK, status)

	title := "City Parks"
	status, _ = doJSON(t, app, http.MethodPut, "/api/admin/knowledge/v1/new", dto.UpdateArticleRequest{Title: &title}, auth)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "City Parks", knowledge.articles["new"].Title)

	status, _ = doJSON(t, app, http.MethodPut, "/api/admin/knowledge/v1/missing", dto.UpdateArticleRequest{Title: &title}, auth)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/admin/knowledge/v1/reindex", nil, auth)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/admin/knowledge/v1/new", nil, auth)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/admin/knowledge/v1/new", nil, auth)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/admin/knowledge/v1/new", nil, auth)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHealthRoute(t *testing.T) {
	for _, ok := range []bool{true, false} {
		app := newApp(&fakeAgent{}, &fakeKnowledge{}, fakeHealth{ok: ok})

		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)

		var body dto.HealthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()

		assert.Equal(t, ok, body.Success)
		if ok {
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		} else {
			assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		}
	}
}
