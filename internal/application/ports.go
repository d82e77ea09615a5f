package application

import (
	"context"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
)

// UserIndex is the searchable user directory.
type UserIndex interface {
	IndexUser(ctx context.Context, u *entity.User) error
	// SearchUsers returns matching user ids, best match first.
	SearchUsers(ctx context.Context, q string, size int) ([]string, error)
}

// EventPublisher hands events to asynchronous delivery. Failures never fail the request.
type EventPublisher interface {
	PublishMatchEvent(ctx context.Context, ev entity.MatchEvent) error
	PublishWelcome(ctx context.Context, u *entity.User) error
}

type nopPublisher struct{}

func (nopPublisher) PublishMatchEvent(context.Context, entity.MatchEvent) error { return nil }
func (nopPublisher) PublishWelcome(context.Context, *entity.User) error         { return nil }

// NopPublisher drops every event.
var NopPublisher EventPublisher = nopPublisher{}
