package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ibanezbetes/trinity-sub010/internal/ai"
	"github.com/ibanezbetes/trinity-sub010/internal/common/config"
	"github.com/ibanezbetes/trinity-sub010/internal/common/database"
	"github.com/ibanezbetes/trinity-sub010/internal/common/logger"
	"github.com/ibanezbetes/trinity-sub010/internal/fallback"
	"github.com/ibanezbetes/trinity-sub010/internal/models"
	"github.com/ibanezbetes/trinity-sub010/internal/ratelimit"
	"github.com/ibanezbetes/trinity-sub010/internal/recommend"
	"github.com/ibanezbetes/trinity-sub010/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModel struct {
	response string
	err      error
}

func (s *stubModel) ClassifyIntent(ctx context.Context, query string) (string, error) {
	return s.response, s.err
}

type stubVerifier struct{}

func (stubVerifier) Verify(ctx context.Context, titles []string) []models.VerifiedMovie {
	var out []models.VerifiedMovie
	for i, title := range titles {
		out = append(out, models.VerifiedMovie{ID: i + 1, Title: title})
	}
	return out
}

func newTestHandler(t *testing.T, model *stubModel) (*Handler, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logger.NewTestLogger(t)

	orchestrator := recommend.NewOrchestrator(
		model,
		ai.NewDecoder(log),
		stubVerifier{},
		fallback.NewEngine(log),
		nil,
		log,
	)

	sessions := session.NewStore(client, config.SessionConfig{TTLDays: 30, MaxMessages: 10}, log)
	limiter := ratelimit.NewLimiter(client, config.RateLimitConfig{MaxQueriesPerMinute: 5, WindowSeconds: 60}, log)

	return NewHandler(orchestrator, sessions, limiter, &database.RedisClient{Client: client}, log), mr
}

func postAsk(t *testing.T, h *Handler, body interface{}) *httptest.ResponseRecorder {
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/ask", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func TestHandleAsk(t *testing.T) {
	t.Run("cinema query returns verified movies", func(t *testing.T) {
		h, _ := newTestHandler(t, &stubModel{response: `{"intent": "cinema", "titles": ["Dune", "Arrival"]}`})

		rec := postAsk(t, h, askRequest{Query: "ciencia ficción", UserID: "user-1"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp askResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, models.IntentCinema, resp.Intent)
		assert.Len(t, resp.Movies, 2)
		assert.NotEmpty(t, resp.SessionID)
	})

	t.Run("off-topic query returns reply only", func(t *testing.T) {
		h, _ := newTestHandler(t, &stubModel{response: `{"intent": "other", "reply": "Solo hablo de cine."}`})

		rec := postAsk(t, h, askRequest{Query: "¿qué hora es?", UserID: "user-1"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp askResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, models.IntentOther, resp.Intent)
		assert.Equal(t, "Solo hablo de cine.", resp.Reply)
		assert.Empty(t, resp.Movies)
	})

	t.Run("empty query rejected", func(t *testing.T) {
		h, _ := newTestHandler(t, &stubModel{response: "{}"})

		rec := postAsk(t, h, askRequest{Query: "   ", UserID: "user-1"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		h, _ := newTestHandler(t, &stubModel{response: "{}"})

		req := httptest.NewRequest(http.MethodPost, "/api/ask", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get not allowed", func(t *testing.T) {
		h, _ := newTestHandler(t, &stubModel{response: "{}"})

		req := httptest.NewRequest(http.MethodGet, "/api/ask", nil)
		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("model failure still returns 200 with fallback", func(t *testing.T) {
		h, _ := newTestHandler(t, &stubModel{err: context.DeadlineExceeded})

		rec := postAsk(t, h, askRequest{Query: "una comedia", UserID: "user-1"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp askResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.UsedFallback)
		assert.NotEmpty(t, resp.Movies)
	})
}

func TestHandleAskRateLimit(t *testing.T) {
	h, _ := newTestHandler(t, &stubModel{response: `{"intent": "other", "reply": "hola"}`})

	for i := 0; i < 5; i++ {
		rec := postAsk(t, h, askRequest{Query: "hola", UserID: "limited-user"})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := postAsk(t, h, askRequest{Query: "hola", UserID: "limited-user"})
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Reply, "límite de consultas")
}

func TestHandleAskPersistsSession(t *testing.T) {
	h, _ := newTestHandler(t, &stubModel{response: `{"intent": "cinema", "titles": ["Dune"]}`})

	rec := postAsk(t, h, askRequest{Query: "algo de ciencia ficción", UserID: "user-1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp askResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	req := httptest.NewRequest(http.MethodGet, "/api/session/"+resp.SessionID, nil)
	sessionRec := httptest.NewRecorder()
	h.Routes().ServeHTTP(sessionRec, req)
	require.Equal(t, http.StatusOK, sessionRec.Code)

	var sess models.ChatSession
	require.NoError(t, json.Unmarshal(sessionRec.Body.Bytes(), &sess))
	require.Len(t, sess.Messages, 2)
	assert.Equal(t, "user_query", sess.Messages[0].Type)
	assert.Equal(t, "algo de ciencia ficción", sess.Messages[0].Content)
	assert.Equal(t, "trini_response", sess.Messages[1].Type)
	assert.Equal(t, []string{"Dune"}, sess.Messages[1].Titles)
}

func TestHandleAskReusesSession(t *testing.T) {
	h, _ := newTestHandler(t, &stubModel{response: `{"intent": "other", "reply": "hola"}`})

	first := postAsk(t, h, askRequest{Query: "hola", UserID: "user-1"})
	var firstResp askResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &firstResp))

	second := postAsk(t, h, askRequest{Query: "otra cosa", UserID: "user-1", SessionID: firstResp.SessionID})
	var secondResp askResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &secondResp))
	assert.Equal(t, firstResp.SessionID, secondResp.SessionID)

	req := httptest.NewRequest(http.MethodGet, "/api/session/"+firstResp.SessionID, nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	var sess models.ChatSession
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	assert.Len(t, sess.Messages, 4)
}

func TestHandleSessionLifecycle(t *testing.T) {
	h, _ := newTestHandler(t, &stubModel{response: `{"intent": "other", "reply": "hola"}`})

	t.Run("unknown session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/session/nope", nil)
		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete session", func(t *testing.T) {
		ask := postAsk(t, h, askRequest{Query: "hola", UserID: "user-1"})
		var resp askResponse
		require.NoError(t, json.Unmarshal(ask.Body.Bytes(), &resp))

		del := httptest.NewRequest(http.MethodDelete, "/api/session/"+resp.SessionID, nil)
		delRec := httptest.NewRecorder()
		h.Routes().ServeHTTP(delRec, del)
		assert.Equal(t, http.StatusNoContent, delRec.Code)

		get := httptest.NewRequest(http.MethodGet, "/api/session/"+resp.SessionID, nil)
		getRec := httptest.NewRecorder()
		h.Routes().ServeHTTP(getRec, get)
		assert.Equal(t, http.StatusNotFound, getRec.Code)
	})
}

func TestHandleHealth(t *testing.T) {
	h, mr := newTestHandler(t, &stubModel{response: "{}"})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "ok", status["redis"])

	// Redis going away degrades the report but not the status code.
	mr.Close()
	rec = httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "unavailable", status["redis"])
}
