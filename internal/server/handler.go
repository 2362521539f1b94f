// Package server exposes the recommendation pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ibanezbetes/trinity-sub010/internal/common/database"
	"github.com/ibanezbetes/trinity-sub010/internal/common/logger"
	"github.com/ibanezbetes/trinity-sub010/internal/models"
	"github.com/ibanezbetes/trinity-sub010/internal/ratelimit"
	"github.com/ibanezbetes/trinity-sub010/internal/recommend"
	"github.com/ibanezbetes/trinity-sub010/internal/session"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxRequestSize = 64 << 10 // 64KB

// Handler wires the HTTP endpoints to the pipeline.
type Handler struct {
	orchestrator *recommend.Orchestrator
	sessions     *session.Store
	limiter      *ratelimit.Limiter
	redis        *database.RedisClient
	logger       logger.Logger
}

func NewHandler(
	orchestrator *recommend.Orchestrator,
	sessions *session.Store,
	limiter *ratelimit.Limiter,
	redis *database.RedisClient,
	log logger.Logger,
) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		sessions:     sessions,
		limiter:      limiter,
		redis:        redis,
		logger: log.With(map[string]interface{}{
			"component": "http-handler",
		}),
	}
}

// Routes builds the service mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/ask", h.handleAsk)
	mux.HandleFunc("/api/session/", h.handleSession)
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

type askRequest struct {
	Query     string `json:"query"`
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId,omitempty"`
}

type askResponse struct {
	models.OrchestrationResult
	SessionID string `json:"sessionId"`
}

type errorResponse struct {
	Error string `json:"error"`
	Reply string `json:"reply,omitempty"`
}

func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req askRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestSize)).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query is required"})
		return
	}
	if req.UserID == "" {
		req.UserID = "anonymous"
	}

	ctx := r.Context()

	if !h.limiter.Allow(ctx, req.UserID) {
		retryAfter := h.limiter.RetryAfter(ctx, req.UserID)
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		h.writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Error: "rate limit exceeded",
			Reply: ratelimit.LimitMessage(retryAfter),
		})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = session.NewSessionID()
	}

	h.recordMessage(ctx, sessionID, req.UserID, models.ChatMessage{
		Type:      "user_query",
		Content:   req.Query,
		Timestamp: time.Now().UTC(),
	})

	result := h.orchestrator.Recommend(ctx, req.Query)

	h.recordMessage(ctx, sessionID, req.UserID, models.ChatMessage{
		Type:           "trini_response",
		Content:        result.Reply,
		Titles:         result.Titles,
		DetectedGenres: result.DetectedGenres,
		Timestamp:      time.Now().UTC(),
	})

	h.writeJSON(w, http.StatusOK, askResponse{
		OrchestrationResult: result,
		SessionID:           sessionID,
	})
}

// handleSession serves GET (history) and DELETE for /api/session/{id}.
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimPrefix(r.URL.Path, "/api/session/")
	if sessionID == "" || strings.Contains(sessionID, "/") {
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		sess, err := h.sessions.Get(r.Context(), sessionID)
		if err != nil {
			h.logger.Error("session lookup failed", map[string]interface{}{
				"sessionId": sessionID,
				"error":     err.Error(),
			})
			h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "session lookup failed"})
			return
		}
		if sess == nil {
			h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
			return
		}
		h.writeJSON(w, http.StatusOK, sess)
	case http.MethodDelete:
		if err := h.sessions.Delete(r.Context(), sessionID); err != nil {
			h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "session delete failed"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	code := http.StatusOK

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.redis.Ping(ctx); err != nil {
		// Redis down degrades sessions and rate limiting but the pipeline
		// still answers, so the service stays healthy.
		status["redis"] = "unavailable"
	} else {
		status["redis"] = "ok"
	}

	h.writeJSON(w, code, status)
}

// recordMessage persists a chat turn. Session failures are logged and
// swallowed; history is a convenience, not part of the answer.
func (h *Handler) recordMessage(ctx context.Context, sessionID, userID string, msg models.ChatMessage) {
	if _, err := h.sessions.Append(ctx, sessionID, userID, msg); err != nil {
		h.logger.Warn("failed to record chat message", map[string]interface{}{
			"sessionId": sessionID,
			"error":     err.Error(),
		})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
