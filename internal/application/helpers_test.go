package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
	repo "github.com/udconnect/udconnect-api/internal/domain/repository"
	"github.com/udconnect/udconnect-api/internal/infrastructure/memory"
	"github.com/udconnect/udconnect-api/pkg/apperror"
	"github.com/udconnect/udconnect-api/pkg/helpers"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock { return &clock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingPublisher struct {
	mu       sync.Mutex
	events   []entity.MatchEvent
	welcomes []string
	err      error
}

func (p *recordingPublisher) PublishMatchEvent(_ context.Context, ev entity.MatchEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) PublishWelcome(_ context.Context, u *entity.User) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.welcomes = append(p.welcomes, u.Email)
	return p.err
}

func seedUser(t *testing.T, store repo.Store, name string) *entity.User {
	t.Helper()
	u := &entity.User{Name: name, Email: name + "@udistrital.edu.co", Avatar: entity.DefaultAvatar()}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func newMatchFixture(t *testing.T) (*MatchService, *memory.Store, *clock, *recordingPublisher) {
	t.Helper()
	store := memory.New()
	clk := newClock()
	pub := &recordingPublisher{}
	svc := NewMatchService(store, pub, helpers.NewNopLogger(), 30*24*time.Hour, true)
	svc.Now = clk.Now
	return svc, store, clk, pub
}

func requireKind(t *testing.T, err error, k apperror.Kind, msg string) {
	t.Helper()
	require.Error(t, err)
	ae := apperror.As(err)
	require.Equal(t, k, ae.Kind, "unexpected kind for %v", err)
	if msg != "" {
		require.Equal(t, msg, ae.Message)
	}
}

// failingCreateStore breaks Notifications().Create inside transactions.
type failingCreateStore struct{ repo.Store }

func (f failingCreateStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx repo.Store) error) error {
	return f.Store.WithTx(ctx, func(ctx context.Context, tx repo.Store) error {
		return fn(ctx, failingCreateStore{tx})
	})
}

func (f failingCreateStore) Notifications() repo.NotificationRepository {
	return failingNotifications{f.Store.Notifications()}
}

type failingNotifications struct{ repo.NotificationRepository }

func (failingNotifications) Create(context.Context, *entity.Notification) error {
	return errors.New("disk full")
}
