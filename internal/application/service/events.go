package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SearchEvent is published after a search request completes.
type SearchEvent struct {
	Term         string    `json:"term"`
	TotalMatches int       `json:"total_matches"`
	Returned     int       `json:"returned"`
	UserID       uuid.UUID `json:"user_id,omitempty"`
	At           time.Time `json:"at"`
}

// EventPublisher delivers analytics events to the message broker.
// Publishing is best-effort: callers log failures and move on.
type EventPublisher interface {
	PublishSearch(ctx context.Context, evt SearchEvent) error
}
