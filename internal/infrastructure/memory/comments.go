package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
	"github.com/udconnect/udconnect-api/internal/domain/repository"
)

type commentRepo struct{ s *Store }

func (r commentRepo) Create(ctx context.Context, c *entity.Comment) error {
	return r.s.update(ctx, func(st *state) error {
		if _, ok := st.posts[c.PostID]; !ok {
			return repository.ErrNotFound
		}
		c.ID = uuid.NewString()
		st.comments[c.ID] = cloneComment(c)
		st.commentOrder = append(st.commentOrder, c.ID)
		return nil
	})
}

func (r commentRepo) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	var out *entity.Comment
	err := r.s.view(ctx, func(st *state) error {
		c, ok := st.comments[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = cloneComment(c)
		return nil
	})
	return out, err
}

func (r commentRepo) ListTopLevel(ctx context.Context, postID string, limit, offset int) ([]*entity.Comment, int, error) {
	var (
		out   []*entity.Comment
		total int
	)
	err := r.s.view(ctx, func(st *state) error {
		newestFirst(st.commentOrder, 0, func(id string) bool {
			c := st.comments[id]
			if c.PostID != postID || c.ParentID != "" {
				return false
			}
			if total >= offset && (limit <= 0 || len(out) < limit) {
				out = append(out, cloneComment(c))
			}
			total++
			return true
		})
		return nil
	})
	return out, total, err
}

func (r commentRepo) Delete(ctx context.Context, id string) error {
	return r.s.update(ctx, func(st *state) error {
		if _, ok := st.comments[id]; !ok {
			return repository.ErrNotFound
		}
		doomed := map[string]bool{id: true}
		// replies are always newer than their parent
		for _, cid := range st.commentOrder {
			if c := st.comments[cid]; c.ParentID != "" && doomed[c.ParentID] {
				doomed[cid] = true
			}
		}
		for cid := range doomed {
			delete(st.comments, cid)
		}
		st.commentOrder = slices.DeleteFunc(st.commentOrder, func(cid string) bool { return doomed[cid] })
		return nil
	})
}

func (r commentRepo) AddLike(ctx context.Context, commentID, userID string) error {
	return r.s.update(ctx, func(st *state) error {
		c, ok := st.comments[commentID]
		if !ok {
			return repository.ErrNotFound
		}
		if !c.LikedBy(userID) {
			c.Likes = append(c.Likes, userID)
		}
		return nil
	})
}

func (r commentRepo) RemoveLike(ctx context.Context, commentID, userID string) error {
	return r.s.update(ctx, func(st *state) error {
		c, ok := st.comments[commentID]
		if !ok {
			return repository.ErrNotFound
		}
		c.Likes = without(c.Likes, userID)
		return nil
	})
}
