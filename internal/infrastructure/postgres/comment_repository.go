package postgres

import (
	"context"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
	"github.com/udconnect/udconnect-api/internal/domain/repository"
)

type CommentRepository struct {
	db DBTX
}

const commentColumns = `
	c.id::text, c.content, c.author_id::text, c.post_id::text, COALESCE(c.parent_comment_id::text, ''),
	c.created_at, c.updated_at,
	COALESCE((SELECT array_agg(l.user_id::text ORDER BY l.created_at)
	          FROM comment_likes l WHERE l.comment_id = c.id), '{}')`

func scanComment(row scanner) (*entity.Comment, error) {
	c := &entity.Comment{}
	if err := row.Scan(&c.ID, &c.Content, &c.AuthorID, &c.PostID, &c.ParentID, &c.CreatedAt, &c.UpdatedAt,
		&c.Likes); err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO comments (content, author_id, post_id, parent_comment_id, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid, $5, $6)
		RETURNING id::text
	`, c.Content, c.AuthorID, c.PostID, c.ParentID, c.CreatedAt, c.UpdatedAt)
	return mapErr(row.Scan(&c.ID))
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	return scanComment(r.db.QueryRow(ctx, `SELECT `+commentColumns+` FROM comments c WHERE c.id = $1`, id))
}

func (r *CommentRepository) ListTopLevel(ctx context.Context, postID string, limit, offset int) ([]*entity.Comment, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `
		SELECT count(*) FROM comments WHERE post_id = $1 AND parent_comment_id IS NULL
	`, postID).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+commentColumns+` FROM comments c
		WHERE c.post_id = $1 AND c.parent_comment_id IS NULL
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3
	`, postID, nolimit(limit), offset)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()
	var out []*entity.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, mapErr(rows.Err())
}

// Delete cascades to replies through parent_comment_id.
func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	return mustAffect(r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id))
}

func (r *CommentRepository) AddLike(ctx context.Context, commentID, userID string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO comment_likes (comment_id, user_id) VALUES ($1, $2)
		ON CONFLICT (comment_id, user_id) DO NOTHING
	`, commentID, userID)
	return mapErr(err)
}

func (r *CommentRepository) RemoveLike(ctx context.Context, commentID, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM comment_likes WHERE comment_id = $1 AND user_id = $2`, commentID, userID)
	return mapErr(err)
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
