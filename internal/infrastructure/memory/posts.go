package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
	"github.com/udconnect/udconnect-api/internal/domain/repository"
)

type postRepo struct{ s *Store }

// postView fills the derived Comments list.
func postView(st *state, p *entity.Post) *entity.Post {
	out := clonePost(p)
	out.Comments = nil
	for _, cid := range st.commentOrder {
		if st.comments[cid].PostID == p.ID {
			out.Comments = append(out.Comments, cid)
		}
	}
	return out
}

// deletePost removes a post with its comments; caller holds the lock.
func deletePost(st *state, id string) {
	for _, cid := range slices.Clone(st.commentOrder) {
		if c, ok := st.comments[cid]; ok && c.PostID == id {
			delete(st.comments, cid)
			st.commentOrder = without(st.commentOrder, cid)
		}
	}
	delete(st.posts, id)
	st.postOrder = without(st.postOrder, id)
}

func (r postRepo) Create(ctx context.Context, p *entity.Post) error {
	return r.s.update(ctx, func(st *state) error {
		if _, ok := st.spaces[p.SpaceID]; !ok {
			return repository.ErrNotFound
		}
		p.ID = uuid.NewString()
		stored := clonePost(p)
		stored.Comments = nil
		st.posts[p.ID] = stored
		st.postOrder = append(st.postOrder, p.ID)
		return nil
	})
}

func (r postRepo) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var out *entity.Post
	err := r.s.view(ctx, func(st *state) error {
		p, ok := st.posts[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = postView(st, p)
		return nil
	})
	return out, err
}

func (r postRepo) list(ctx context.Context, limit int, match func(p *entity.Post) bool) ([]*entity.Post, error) {
	var out []*entity.Post
	err := r.s.view(ctx, func(st *state) error {
		newestFirst(st.postOrder, limit, func(id string) bool {
			p := st.posts[id]
			if !match(p) {
				return false
			}
			out = append(out, postView(st, p))
			return true
		})
		return nil
	})
	return out, err
}

func (r postRepo) ListBySpace(ctx context.Context, spaceID string, limit int) ([]*entity.Post, error) {
	return r.list(ctx, limit, func(p *entity.Post) bool { return p.SpaceID == spaceID })
}

func (r postRepo) ListByAuthor(ctx context.Context, authorID string) ([]*entity.Post, error) {
	return r.list(ctx, 0, func(p *entity.Post) bool { return p.AuthorID == authorID })
}

func (r postRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Post, error) {
	return r.list(ctx, limit, func(*entity.Post) bool { return true })
}

func (r postRepo) Delete(ctx context.Context, id string) error {
	return r.s.update(ctx, func(st *state) error {
		if _, ok := st.posts[id]; !ok {
			return repository.ErrNotFound
		}
		deletePost(st, id)
		return nil
	})
}

func (r postRepo) AddLike(ctx context.Context, postID, userID string) error {
	return r.s.update(ctx, func(st *state) error {
		p, ok := st.posts[postID]
		if !ok {
			return repository.ErrNotFound
		}
		if !p.LikedBy(userID) {
			p.Likes = append(p.Likes, userID)
		}
		return nil
	})
}

func (r postRepo) RemoveLike(ctx context.Context, postID, userID string) error {
	return r.s.update(ctx, func(st *state) error {
		p, ok := st.posts[postID]
		if !ok {
			return repository.ErrNotFound
		}
		p.Likes = without(p.Likes, userID)
		return nil
	})
}
