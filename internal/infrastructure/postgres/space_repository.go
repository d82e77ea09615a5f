package postgres

import (
	"context"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
	"github.com/udconnect/udconnect-api/internal/domain/repository"
)

type SpaceRepository struct {
	db DBTX
}

const spaceColumns = `
	s.id::text, s.name, s.description, s.creator_id::text, s.created_at, s.updated_at,
	COALESCE((SELECT array_agg(m.user_id::text ORDER BY m.joined_at)
	          FROM space_members m WHERE m.space_id = s.id), '{}')`

func scanSpace(row scanner) (*entity.Space, error) {
	sp := &entity.Space{}
	if err := row.Scan(&sp.ID, &sp.Name, &sp.Description, &sp.CreatorID, &sp.CreatedAt, &sp.UpdatedAt,
		&sp.Members); err != nil {
		return nil, mapErr(err)
	}
	return sp, nil
}

func (r *SpaceRepository) Create(ctx context.Context, sp *entity.Space) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO spaces (name, description, creator_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id::text
	`, sp.Name, sp.Description, sp.CreatorID, sp.CreatedAt, sp.UpdatedAt)
	if err := row.Scan(&sp.ID); err != nil {
		return mapErr(err)
	}
	for _, uid := range sp.Members {
		if err := r.AddMember(ctx, sp.ID, uid); err != nil {
			return err
		}
	}
	return nil
}

func (r *SpaceRepository) GetByID(ctx context.Context, id string) (*entity.Space, error) {
	return scanSpace(r.db.QueryRow(ctx, `SELECT `+spaceColumns+` FROM spaces s WHERE s.id = $1`, id))
}

func (r *SpaceRepository) List(ctx context.Context, limit int) ([]*entity.Space, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+spaceColumns+` FROM spaces s
		ORDER BY s.created_at DESC
		LIMIT $1
	`, nolimit(limit))
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	var out []*entity.Space
	for rows.Next() {
		sp, err := scanSpace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, mapErr(rows.Err())
}

func (r *SpaceRepository) Update(ctx context.Context, sp *entity.Space) error {
	return mustAffect(r.db.Exec(ctx, `
		UPDATE spaces SET name = $1, description = $2, updated_at = $3 WHERE id = $4
	`, sp.Name, sp.Description, sp.UpdatedAt, sp.ID))
}

// Delete relies on ON DELETE CASCADE for members, posts, comments and likes.
func (r *SpaceRepository) Delete(ctx context.Context, id string) error {
	return mustAffect(r.db.Exec(ctx, `DELETE FROM spaces WHERE id = $1`, id))
}

func (r *SpaceRepository) AddMember(ctx context.Context, spaceID, userID string) error {
	_, err := r.db.Exec(ctx, `INSERT INTO space_members (space_id, user_id) VALUES ($1, $2)`, spaceID, userID)
	return mapErr(err)
}

func (r *SpaceRepository) RemoveMember(ctx context.Context, spaceID, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM space_members WHERE space_id = $1 AND user_id = $2`, spaceID, userID)
	return mapErr(err)
}

var _ repository.SpaceRepository = (*SpaceRepository)(nil)
