package postgres

import (
	"context"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
	"github.com/udconnect/udconnect-api/internal/domain/repository"
)

type PostRepository struct {
	db DBTX
}

const postColumns = `
	p.id::text, p.content, p.author_id::text, p.space_id::text, p.created_at,
	COALESCE((SELECT array_agg(l.user_id::text ORDER BY l.created_at)
	          FROM post_likes l WHERE l.post_id = p.id), '{}'),
	COALESCE((SELECT array_agg(c.id::text ORDER BY c.created_at)
	          FROM comments c WHERE c.post_id = p.id), '{}')`

func scanPost(row scanner) (*entity.Post, error) {
	p := &entity.Post{}
	if err := row.Scan(&p.ID, &p.Content, &p.AuthorID, &p.SpaceID, &p.CreatedAt, &p.Likes, &p.Comments); err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO posts (content, author_id, space_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text
	`, p.Content, p.AuthorID, p.SpaceID, p.CreatedAt)
	return mapErr(row.Scan(&p.ID))
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	return scanPost(r.db.QueryRow(ctx, `SELECT `+postColumns+` FROM posts p WHERE p.id = $1`, id))
}

func (r *PostRepository) ListBySpace(ctx context.Context, spaceID string, limit int) ([]*entity.Post, error) {
	return r.query(ctx, `
		SELECT `+postColumns+` FROM posts p
		WHERE p.space_id = $1
		ORDER BY p.created_at DESC
		LIMIT $2
	`, spaceID, nolimit(limit))
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID string) ([]*entity.Post, error) {
	return r.query(ctx, `
		SELECT `+postColumns+` FROM posts p
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC
	`, authorID)
}

func (r *PostRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Post, error) {
	return r.query(ctx, `
		SELECT `+postColumns+` FROM posts p
		ORDER BY p.created_at DESC
		LIMIT $1
	`, nolimit(limit))
}

func (r *PostRepository) query(ctx context.Context, sql string, args ...any) ([]*entity.Post, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	var out []*entity.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, mapErr(rows.Err())
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	return mustAffect(r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id))
}

func (r *PostRepository) AddLike(ctx context.Context, postID, userID string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`, postID, userID)
	return mapErr(err)
}

func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	return mapErr(err)
}

var _ repository.PostRepository = (*PostRepository)(nil)
