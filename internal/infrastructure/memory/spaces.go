package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
	"github.com/udconnect/udconnect-api/internal/domain/repository"
)

type spaceRepo struct{ s *Store }

func (r spaceRepo) Create(ctx context.Context, sp *entity.Space) error {
	return r.s.update(ctx, func(st *state) error {
		sp.ID = uuid.NewString()
		st.spaces[sp.ID] = cloneSpace(sp)
		st.spaceOrder = append(st.spaceOrder, sp.ID)
		return nil
	})
}

func (r spaceRepo) GetByID(ctx context.Context, id string) (*entity.Space, error) {
	var out *entity.Space
	err := r.s.view(ctx, func(st *state) error {
		sp, ok := st.spaces[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = cloneSpace(sp)
		return nil
	})
	return out, err
}

func (r spaceRepo) List(ctx context.Context, limit int) ([]*entity.Space, error) {
	var out []*entity.Space
	err := r.s.view(ctx, func(st *state) error {
		newestFirst(st.spaceOrder, limit, func(id string) bool {
			out = append(out, cloneSpace(st.spaces[id]))
			return true
		})
		return nil
	})
	return out, err
}

func (r spaceRepo) Update(ctx context.Context, sp *entity.Space) error {
	return r.s.update(ctx, func(st *state) error {
		cur, ok := st.spaces[sp.ID]
		if !ok {
			return repository.ErrNotFound
		}
		cur.Name = sp.Name
		cur.Description = sp.Description
		cur.UpdatedAt = sp.UpdatedAt
		return nil
	})
}

func (r spaceRepo) Delete(ctx context.Context, id string) error {
	return r.s.update(ctx, func(st *state) error {
		if _, ok := st.spaces[id]; !ok {
			return repository.ErrNotFound
		}
		for _, pid := range slices.Clone(st.postOrder) {
			if st.posts[pid].SpaceID == id {
				deletePost(st, pid)
			}
		}
		delete(st.spaces, id)
		st.spaceOrder = without(st.spaceOrder, id)
		return nil
	})
}

func (r spaceRepo) AddMember(ctx context.Context, spaceID, userID string) error {
	return r.s.update(ctx, func(st *state) error {
		sp, ok := st.spaces[spaceID]
		if !ok {
			return repository.ErrNotFound
		}
		if sp.IsMember(userID) {
			return repository.ErrDuplicate
		}
		sp.Members = append(sp.Members, userID)
		return nil
	})
}

func (r spaceRepo) RemoveMember(ctx context.Context, spaceID, userID string) error {
	return r.s.update(ctx, func(st *state) error {
		sp, ok := st.spaces[spaceID]
		if !ok {
			return repository.ErrNotFound
		}
		sp.Members = without(sp.Members, userID)
		return nil
	})
}
