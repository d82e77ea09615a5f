package memory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
	"github.com/udconnect/udconnect-api/internal/domain/repository"
)

type notificationRepo struct{ s *Store }

func removeNotification(st *state, id string) {
	delete(st.notifications, id)
	st.notificationOrder = without(st.notificationOrder, id)
}

func (r notificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	return r.s.update(ctx, func(st *state) error {
		if n.Type == entity.NotificationMatchRequest {
			for _, id := range slices.Clone(st.notificationOrder) {
				cur := st.notifications[id]
				if cur.Type != entity.NotificationMatchRequest || cur.FromUser != n.FromUser || cur.ToUser != n.ToUser {
					continue
				}
				if !cur.IsExpired(n.CreatedAt) {
					return repository.ErrDuplicate
				}
				// an expired request waiting for the sweeper must not block a new one
				removeNotification(st, id)
			}
		}
		n.ID = uuid.NewString()
		c := *n
		st.notifications[n.ID] = &c
		st.notificationOrder = append(st.notificationOrder, n.ID)
		return nil
	})
}

func (r notificationRepo) GetByID(ctx context.Context, id string, now time.Time) (*entity.Notification, error) {
	var out *entity.Notification
	err := r.s.view(ctx, func(st *state) error {
		n, ok := st.notifications[id]
		if !ok || n.IsExpired(now) {
			return repository.ErrNotFound
		}
		c := *n
		out = &c
		return nil
	})
	return out, err
}

func (r notificationRepo) FindRequest(ctx context.Context, from, to string, now time.Time) (*entity.Notification, error) {
	var out *entity.Notification
	err := r.s.view(ctx, func(st *state) error {
		for _, id := range st.notificationOrder {
			n := st.notifications[id]
			if n.Type == entity.NotificationMatchRequest && n.FromUser == from && n.ToUser == to && !n.IsExpired(now) {
				c := *n
				out = &c
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return out, err
}

func (r notificationRepo) ListForUser(ctx context.Context, userID string, now time.Time) ([]*entity.Notification, error) {
	var out []*entity.Notification
	err := r.s.view(ctx, func(st *state) error {
		newestFirst(st.notificationOrder, 0, func(id string) bool {
			n := st.notifications[id]
			if n.ToUser != userID || n.IsExpired(now) {
				return false
			}
			c := *n
			out = append(out, &c)
			return true
		})
		return nil
	})
	return out, err
}

func (r notificationRepo) MarkRead(ctx context.Context, id string) error {
	return r.s.update(ctx, func(st *state) error {
		n, ok := st.notifications[id]
		if !ok {
			return repository.ErrNotFound
		}
		n.Read = true
		return nil
	})
}

func (r notificationRepo) Delete(ctx context.Context, id string) error {
	return r.s.update(ctx, func(st *state) error {
		if _, ok := st.notifications[id]; !ok {
			return repository.ErrNotFound
		}
		removeNotification(st, id)
		return nil
	})
}

func (r notificationRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := r.s.update(ctx, func(st *state) error {
		for _, id := range slices.Clone(st.notificationOrder) {
			if st.notifications[id].IsExpired(now) {
				removeNotification(st, id)
				n++
			}
		}
		return nil
	})
	return n, err
}
