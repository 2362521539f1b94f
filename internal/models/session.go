package models

import "time"

// ChatMessage is one turn of a conversation, either a user query or a
// service response.
type ChatMessage struct {
	Type           string    `json:"type"` // "user_query" or "trini_response"
	Content        string    `json:"content"`
	Titles         []string  `json:"titles,omitempty"`
	DetectedGenres []string  `json:"detectedGenres,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// ChatSession groups the recent messages of one user conversation.
type ChatSession struct {
	SessionID string        `json:"sessionId"`
	UserID    string        `json:"userId"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// AddMessage appends a message, keeping at most max entries. Older messages
// are pruned first.
func (s *ChatSession) AddMessage(msg ChatMessage, max int) {
	s.Messages = append(s.Messages, msg)
	if max > 0 && len(s.Messages) > max {
		s.Messages = s.Messages[len(s.Messages)-max:]
	}
	s.UpdatedAt = msg.Timestamp
}
