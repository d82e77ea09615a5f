package memory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
	"github.com/udconnect/udconnect-api/internal/domain/repository"
)

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, u *entity.User) error {
	return r.s.update(ctx, func(st *state) error {
		for _, existing := range st.users {
			if existing.Email == u.Email {
				return repository.ErrDuplicate
			}
		}
		u.ID = uuid.NewString()
		st.users[u.ID] = cloneUser(u)
		st.userOrder = append(st.userOrder, u.ID)
		return nil
	})
}

func (r userRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.s.view(ctx, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = cloneUser(u)
		return nil
	})
	return out, err
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.s.view(ctx, func(st *state) error {
		for _, u := range st.users {
			if u.Email == email {
				out = cloneUser(u)
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return out, err
}

func (r userRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(ids))
	err := r.s.view(ctx, func(st *state) error {
		for _, id := range ids {
			if u, ok := st.users[id]; ok {
				out = append(out, cloneUser(u))
			}
		}
		return nil
	})
	return out, err
}

func (r userRepo) List(ctx context.Context, excludeID string) ([]*entity.User, error) {
	var out []*entity.User
	err := r.s.view(ctx, func(st *state) error {
		newestFirst(st.userOrder, 0, func(id string) bool {
			if id == excludeID {
				return false
			}
			out = append(out, cloneUser(st.users[id]))
			return true
		})
		return nil
	})
	return out, err
}

func (r userRepo) UpdateAvatar(ctx context.Context, id string, a entity.Avatar, at time.Time) error {
	return r.s.update(ctx, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return repository.ErrNotFound
		}
		u.Avatar = a
		u.UpdatedAt = at
		return nil
	})
}

func (r userRepo) AddMatch(ctx context.Context, userID, matchID string) error {
	return r.s.update(ctx, func(st *state) error {
		u, ok := st.users[userID]
		if !ok {
			return repository.ErrNotFound
		}
		if _, ok := st.users[matchID]; !ok || userID == matchID {
			return repository.ErrNotFound
		}
		if !slices.Contains(u.Matches, matchID) {
			u.Matches = append(u.Matches, matchID)
		}
		return nil
	})
}

func (r userRepo) RemoveMatch(ctx context.Context, userID, matchID string) error {
	return r.s.update(ctx, func(st *state) error {
		u, ok := st.users[userID]
		if !ok {
			return repository.ErrNotFound
		}
		u.Matches = without(u.Matches, matchID)
		return nil
	})
}
