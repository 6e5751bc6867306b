package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"character-chat/backend/ai"
	"character-chat/backend/internal/testdb"
	"character-chat/backend/pkg/config"
	"character-chat/backend/pkg/di"
	"character-chat/backend/pkg/logger"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	gin.SetMode(gin.TestMode)

	completer := ai.CompleterFunc(func(_ context.Context, messages []ai.Message) (string, error) {
		last := messages[len(messages)-1].Content
		if strings.Contains(last, "fail") {
			return "", errors.New("upstream exploded")
		}
		return "Reply to: " + last, nil
	})

	app := config.Load()
	app.Server.Env = "test"
	app.Security.RateLimit = 0

	container, err := di.New(testdb.New(t), &di.Config{
		App:       app,
		Logger:    logger.Discard(),
		Completer: completer,
	})
	require.NoError(t, err)

	r := New(container)
	require.NoError(t, r.AddOpenAPIValidation())
	r.SetupRoutes()
	t.Cleanup(r.Close)
	return r
}

func do(t *testing.T, r *Router, method, path string, body any) (*httptest.ResponseRecorder, any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.Engine.ServeHTTP(w, req)

	var decoded any
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func errorCode(t *testing.T, body any) string {
	t.Helper()
	m, ok := body.(map[string]any)
	require.True(t, ok, "expected an error object, got %v", body)
	e, ok := m["error"].(map[string]any)
	require.True(t, ok, "expected an error object, got %v", body)
	return e["code"].(string)
}

func createCharacter(t *testing.T, r *Router, name string) float64 {
	t.Helper()
	w, body := do(t, r, http.MethodPost, "/api/characters", map[string]any{
		"name":          name,
		"personality":   "curious",
		"talking_style": "terse",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return body.(map[string]any)["id"].(float64)
}

func TestCharacterRoutes(t *testing.T) {
	r := newTestRouter(t)

	w, body := do(t, r, http.MethodPost, "/api/characters", map[string]any{"name": "Ada", "personality": "curious"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := body.(map[string]any)
	assert.Equal(t, "Ada", created["name"])
	assert.Equal(t, "curious", created["personality"])
	assert.Nil(t, created["backstory"])

	w, body = do(t, r, http.MethodPost, "/api/characters", map[string]any{"name": "Ada"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CHARACTER_EXISTS", errorCode(t, body))

	w, body = do(t, r, http.MethodPost, "/api/characters", map[string]any{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, body))

	w, body = do(t, r, http.MethodGet, "/api/characters", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body.([]any), 1)

	w, body = do(t, r, http.MethodGet, "/api/characters/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ada", body.(map[string]any)["name"])

	w, body = do(t, r, http.MethodGet, "/api/characters/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CHARACTER_NOT_FOUND", errorCode(t, body))

	w, _ = do(t, r, http.MethodGet, "/api/characters/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = do(t, r, http.MethodDelete, "/api/characters/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "character deleted", body.(map[string]any)["detail"])

	w, _ = do(t, r, http.MethodDelete, "/api/characters/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatFlow(t *testing.T) {
	r := newTestRouter(t)
	id := createCharacter(t, r, "Ada")

	w, body := do(t, r, http.MethodPost, "/api/chat", map[string]any{
		"character_id": id,
		"message":      "I love jazz",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := body.(map[string]any)
	sessionID := resp["session_id"].(string)
	assert.NotEmpty(t, sessionID)
	assert.Equal(t, "Reply to: I love jazz", resp["reply"])
	assert.Equal(t, "positive", resp["sentiment"])
	assert.Equal(t, []any{"I love jazz"}, resp["extracted_facts"])

	w, body = do(t, r, http.MethodGet, "/api/history?session_id="+sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := body.([]any)
	require.Len(t, history, 2)
	first := history[0].(map[string]any)
	assert.Equal(t, "user", first["role"])
	assert.Equal(t, "positive", first["sentiment"])
	assert.Contains(t, first, "created_at")
	assert.NotContains(t, first, "session_id")
	second := history[1].(map[string]any)
	assert.Equal(t, "assistant", second["role"])
	assert.NotContains(t, second, "sentiment")

	w, body = do(t, r, http.MethodGet, "/api/characters/1/sessions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sessions := body.([]any)
	require.Len(t, sessions, 1)
	assert.Equal(t, sessionID, sessions[0].(map[string]any)["id"])

	w, body = do(t, r, http.MethodGet, "/api/history?session_id=nope", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body.([]any))

	w, body = do(t, r, http.MethodDelete, "/api/sessions/"+sessionID+"/messages", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "session cleared", body.(map[string]any)["detail"])

	w, body = do(t, r, http.MethodGet, "/api/history?session_id="+sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body.([]any))

	w, _ = do(t, r, http.MethodDelete, "/api/sessions/"+sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, body = do(t, r, http.MethodDelete, "/api/sessions/"+sessionID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "SESSION_NOT_FOUND", errorCode(t, body))
}

func TestChatErrors(t *testing.T) {
	r := newTestRouter(t)
	ada := createCharacter(t, r, "Ada")
	grace := createCharacter(t, r, "Grace")

	w, body := do(t, r, http.MethodPost, "/api/chat", map[string]any{"character_id": 42, "message": "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CHARACTER_NOT_FOUND", errorCode(t, body))

	w, body = do(t, r, http.MethodPost, "/api/chat", map[string]any{"character_id": ada})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, body))

	w, body = do(t, r, http.MethodPost, "/api/chat", map[string]any{
		"session_id":   "shared",
		"character_id": ada,
		"message":      "please fail",
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "UPSTREAM_FAILURE", errorCode(t, body))
	assert.Contains(t, w.Body.String(), "AI call failed: upstream exploded")

	// the user message survived the failed completion
	w, body = do(t, r, http.MethodGet, "/api/history?session_id=shared", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body.([]any), 1)

	w, body = do(t, r, http.MethodPost, "/api/chat", map[string]any{
		"session_id":   "shared",
		"character_id": grace,
		"message":      "hello",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SESSION_CHARACTER_MISMATCH", errorCode(t, body))
}

func TestOperationalRoutes(t *testing.T) {
	r := newTestRouter(t)

	w, body := do(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body.(map[string]any)["status"])

	w, body = do(t, r, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	components := body.(map[string]any)["components"].(map[string]any)
	assert.Equal(t, "up", components["database"].(map[string]any)["status"])

	w, _ = do(t, r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/docs/openapi.yaml", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")

	w, _ = do(t, r, http.MethodOptions, "/api/chat", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHealthReportsDatabaseDown(t *testing.T) {
	r := newTestRouter(t)

	sqlDB, err := r.Container.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w, body := do(t, r, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	components := body.(map[string]any)["components"].(map[string]any)
	assert.Equal(t, "down", components["database"].(map[string]any)["status"])
}
