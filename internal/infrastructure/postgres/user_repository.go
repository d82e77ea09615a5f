package postgres

import (
	"context"
	"time"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
	"github.com/udconnect/udconnect-api/internal/domain/repository"
)

type UserRepository struct {
	db DBTX
}

const userColumns = `
	u.id::text, u.name, u.email, u.password_hash, u.major, u.ig_user, u.ig_profile_url, u.avatar,
	u.created_at, u.updated_at,
	COALESCE((SELECT array_agg(m.match_id::text ORDER BY m.created_at)
	          FROM user_matches m WHERE m.user_id = u.id), '{}')`

func scanUser(row scanner) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Major, &u.IGUser, &u.IGProfileURL,
		&u.Avatar, &u.CreatedAt, &u.UpdatedAt, &u.Matches); err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, major, ig_user, ig_profile_url, avatar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id::text
	`, u.Name, u.Email, u.Password, u.Major, u.IGUser, u.IGProfileURL, u.Avatar, u.CreatedAt, u.UpdatedAt)
	return mapErr(row.Scan(&u.ID))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.email = $1`, email))
}

func (r *UserRepository) ListByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	if len(ids) == 0 {
		return []*entity.User{}, nil
	}
	found, err := r.query(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}
	out := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *UserRepository) List(ctx context.Context, excludeID string) ([]*entity.User, error) {
	return r.query(ctx, `
		SELECT `+userColumns+` FROM users u
		WHERE $1 = '' OR u.id::text <> $1
		ORDER BY u.created_at DESC
	`, excludeID)
}

func (r *UserRepository) query(ctx context.Context, sql string, args ...any) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	var out []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, mapErr(rows.Err())
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id string, a entity.Avatar, at time.Time) error {
	return mustAffect(r.db.Exec(ctx, `UPDATE users SET avatar = $1, updated_at = $2 WHERE id = $3`, a, at, id))
}

func (r *UserRepository) AddMatch(ctx context.Context, userID, matchID string) error {
	if userID == matchID {
		return repository.ErrNotFound
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_matches (user_id, match_id) VALUES ($1, $2)
		ON CONFLICT (user_id, match_id) DO NOTHING
	`, userID, matchID)
	return mapErr(err)
}

func (r *UserRepository) RemoveMatch(ctx context.Context, userID, matchID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM user_matches WHERE user_id = $1 AND match_id = $2`, userID, matchID)
	return mapErr(err)
}

var _ repository.UserRepository = (*UserRepository)(nil)
