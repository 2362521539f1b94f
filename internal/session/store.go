// Package session persists chat conversations in Redis so Trini can refer
// back to what a user asked before.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ibanezbetes/trinity-sub010/internal/common/config"
	"github.com/ibanezbetes/trinity-sub010/internal/common/logger"
	"github.com/ibanezbetes/trinity-sub010/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "chat:session:"

// Store reads and writes chat sessions with a sliding TTL. Sessions are
// stored as one JSON document per session id, pruned to the configured
// message cap on every append.
type Store struct {
	client *redis.Client
	cfg    config.SessionConfig
	logger logger.Logger
}

func NewStore(client *redis.Client, cfg config.SessionConfig, log logger.Logger) *Store {
	return &Store{
		client: client,
		cfg:    cfg,
		logger: log.With(map[string]interface{}{
			"component": "session-store",
		}),
	}
}

// NewSessionID issues a fresh session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

func (s *Store) ttl() time.Duration {
	return time.Duration(s.cfg.TTLDays) * 24 * time.Hour
}

// Get loads a session by id. A missing or expired session returns nil
// without error.
func (s *Store) Get(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	data, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	var session models.ChatSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return &session, nil
}

// Append adds a message to a session, creating it on first use, and renews
// the TTL. The session keeps only the most recent messages.
func (s *Store) Append(ctx context.Context, sessionID, userID string, msg models.ChatMessage) (*models.ChatSession, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = &models.ChatSession{
			SessionID: sessionID,
			UserID:    userID,
			CreatedAt: msg.Timestamp,
		}
	}

	session.AddMessage(msg, s.cfg.MaxMessages)

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("encode session %s: %w", sessionID, err)
	}

	if err := s.client.Set(ctx, keyPrefix+sessionID, data, s.ttl()).Err(); err != nil {
		return nil, fmt.Errorf("store session %s: %w", sessionID, err)
	}

	return session, nil
}

// Delete removes a session entirely.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return nil
}
