package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echoai/internal/ai"
	"echoai/internal/bootstrap"
	"echoai/internal/config"
	"echoai/internal/model"
	"echoai/internal/store"
)

func testConfig(groqURL, groqKey string) *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "echoai",
			Version:     "1.0.0",
			Env:         "test",
			GinMode:     gin.TestMode,
			CORSOrigins: []string{"http://localhost:3000"},
		},
		LLM: config.LLMConfig{
			Groq: config.ProviderConfig{
				BaseURL: groqURL,
				APIKey:  groqKey,
				Model:   "llama-3.1-8b-instant",
			},
			MaxOutputTokens: 2000,
			Temperature:     0.1,
		},
		Store:  config.StoreConfig{MaxSessions: 200},
		Upload: config.UploadConfig{MaxFileSizeMB: 10},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	app := &bootstrap.App{
		Config: cfg,
		Store:  store.New(cfg.Store.MaxSessions),
		Gateway: ai.NewGateway(
			ai.ChatConfig{
				BaseURL:     cfg.LLM.Groq.BaseURL,
				APIKey:      cfg.LLM.Groq.APIKey,
				Model:       cfg.LLM.Groq.Model,
				MaxTokens:   cfg.LLM.MaxOutputTokens,
				Temperature: cfg.LLM.Temperature,
			},
			ai.GeminiConfig{},
		),
		StartedAt: time.Now(),
	}
	return NewRouter(app)
}

func fakeGroq(t *testing.T, answer string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": answer}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func uploadTxt(t *testing.T, router *gin.Engine, sessionID, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("files", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postQuery(t *testing.T, router *gin.Engine, sessionID, question string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(map[string]any{"question": question})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthDegradedWithoutKeys(t *testing.T) {
	router := newTestRouter(t, testConfig("http://unused", ""))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "No LLM API keys configured", resp.Message)
	assert.Equal(t, "1.0.0", resp.Version)
}

func TestHealthHealthyWithKey(t *testing.T) {
	router := newTestRouter(t, testConfig("http://unused", "key"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestUploadAndQueryEndToEnd(t *testing.T) {
	groq := fakeGroq(t, "The sky is blue.")
	router := newTestRouter(t, testConfig(groq.URL, "groq-key"))

	w := uploadTxt(t, router, "s1", "a.txt", "The sky is blue.")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var uploadResp model.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &uploadResp))
	assert.Equal(t, "Successfully processed a.txt", uploadResp.Message)
	assert.Equal(t, 1, uploadResp.DocumentCount)
	assert.Equal(t, 1, uploadResp.ChunkCount)
	assert.GreaterOrEqual(t, uploadResp.ProcessingTime, 0.0)

	w = postQuery(t, router, "s1", "What color is the sky?")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var queryResp model.QueryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &queryResp))
	assert.Equal(t, "The sky is blue.", queryResp.Answer)
	require.Len(t, queryResp.Sources, 1)
	assert.Equal(t, "a.txt", queryResp.Sources[0].Filename)
	assert.Equal(t, "doc_1", queryResp.Sources[0].ChunkID)
	assert.Equal(t, 1.0, queryResp.Sources[0].Confidence)
	assert.Equal(t, 0.9, queryResp.Confidence)
	assert.GreaterOrEqual(t, queryResp.ProcessingTime, 0.0)
	assert.False(t, queryResp.Timestamp.IsZero())
}

func TestQuerySessionIsolation(t *testing.T) {
	groq := fakeGroq(t, "answer")
	router := newTestRouter(t, testConfig(groq.URL, "groq-key"))

	w := uploadTxt(t, router, "s1", "a.txt", "content")
	require.Equal(t, http.StatusOK, w.Code)

	// A different session sees no document.
	w = postQuery(t, router, "s2", "what?")
	require.Equal(t, http.StatusOK, w.Code)
	var resp model.QueryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Sources)
}

func TestQueryEmptyQuestion(t *testing.T) {
	router := newTestRouter(t, testConfig("http://unused", ""))

	for _, question := range []string{"", "   "} {
		w := postQuery(t, router, "s1", question)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Question cannot be empty")
	}
}

func TestQueryWithoutProvidersReturnsCannedAnswer(t *testing.T) {
	router := newTestRouter(t, testConfig("http://unused", ""))

	w := postQuery(t, router, "s1", "hello?")
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.QueryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Answer, "trouble connecting to AI services")
	assert.Equal(t, 0.9, resp.Confidence)
}

func TestStatusIsSessionScoped(t *testing.T) {
	groq := fakeGroq(t, "answer")
	router := newTestRouter(t, testConfig(groq.URL, "groq-key"))

	w := uploadTxt(t, router, "s1", "report.pdf.txt", "some text")
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("X-Session-ID", "s1")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "operational", resp.Status)
	assert.True(t, resp.DocumentsLoaded)
	require.NotNil(t, resp.DocumentFilename)
	assert.Equal(t, "report.pdf.txt", *resp.DocumentFilename)

	// Another session reports no document.
	req = httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("X-Session-ID", "other")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.DocumentsLoaded)
	assert.Nil(t, resp.DocumentFilename)
}

func TestClearDocuments(t *testing.T) {
	groq := fakeGroq(t, "answer")
	router := newTestRouter(t, testConfig(groq.URL, "groq-key"))

	w := uploadTxt(t, router, "s1", "a.txt", "content")
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodDelete, "/api/documents", nil)
	req.Header.Set("X-Session-ID", "s1")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "All documents cleared successfully")

	req = httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("X-Session-ID", "s1")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	var resp model.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.DocumentsLoaded)
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	router := newTestRouter(t, testConfig("http://unused", ""))

	w := uploadTxt(t, router, "s1", "image.png", "not really an image")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "File type not supported")
}

func TestUploadRejectsEmptyText(t *testing.T) {
	router := newTestRouter(t, testConfig("http://unused", ""))

	w := uploadTxt(t, router, "s1", "blank.txt", "   \n\t ")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No text could be extracted")
}

func TestUploadWithoutFile(t *testing.T) {
	router := newTestRouter(t, testConfig("http://unused", ""))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No files provided")
}

func TestUploadReplacesPreviousDocument(t *testing.T) {
	groq := fakeGroq(t, "answer")
	router := newTestRouter(t, testConfig(groq.URL, "groq-key"))

	require.Equal(t, http.StatusOK, uploadTxt(t, router, "s1", "first.txt", "first").Code)
	require.Equal(t, http.StatusOK, uploadTxt(t, router, "s1", "second.txt", "second").Code)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("X-Session-ID", "s1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp model.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.DocumentFilename)
	assert.Equal(t, "second.txt", *resp.DocumentFilename)
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t, testConfig("http://unused", ""))

	req := httptest.NewRequest(http.MethodOptions, "/api/query", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/query", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestQueryAcceptsTopKAndStream(t *testing.T) {
	groq := fakeGroq(t, "answer")
	router := newTestRouter(t, testConfig(groq.URL, "groq-key"))

	payload := strings.NewReader(`{"question":"hi","top_k":5,"stream":true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/query", payload)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "s1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
