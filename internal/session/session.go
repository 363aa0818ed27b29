// Package session persists planning-session wizard state between requests.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/counsel/internal/planner"
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// Session is one counselor's scheduling flow for one student.
type Session struct {
	ID        string         `json:"id"`
	Wizard    planner.Wizard `json:"wizard"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	// TopicSource records whether the loaded recommendations came from the
	// model or the rule engine; FallbackCode says why when they did not.
	TopicSource  string `json:"topicSource,omitempty"`
	FallbackCode string `json:"fallbackCode,omitempty"`
}

// Store keeps sessions for a bounded time. Every Put refreshes the TTL.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)
