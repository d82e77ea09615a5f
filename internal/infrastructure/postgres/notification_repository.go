package postgres

import (
	"context"
	"time"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
	"github.com/udconnect/udconnect-api/internal/domain/repository"
)

type NotificationRepository struct {
	db DBTX
}

const notificationColumns = `n.id::text, n.type, n.from_user::text, n.to_user::text, n.read, n.created_at, n.expires_at`

func scanNotification(row scanner) (*entity.Notification, error) {
	var (
		n   entity.Notification
		typ string
	)
	if err := row.Scan(&n.ID, &typ, &n.FromUser, &n.ToUser, &n.Read, &n.CreatedAt, &n.ExpiresAt); err != nil {
		return nil, mapErr(err)
	}
	n.Type = entity.NotificationType(typ)
	return &n, nil
}

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	if n.Type == entity.NotificationMatchRequest {
		// an expired request waiting for the sweeper must not trip the unique index
		if _, err := r.db.Exec(ctx, `
			DELETE FROM notifications
			WHERE type = 'match_request' AND from_user = $1 AND to_user = $2 AND expires_at <= $3
		`, n.FromUser, n.ToUser, n.CreatedAt); err != nil {
			return mapErr(err)
		}
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO notifications (type, from_user, to_user, read, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id::text
	`, string(n.Type), n.FromUser, n.ToUser, n.Read, n.CreatedAt, n.ExpiresAt)
	return mapErr(row.Scan(&n.ID))
}

func (r *NotificationRepository) GetByID(ctx context.Context, id string, now time.Time) (*entity.Notification, error) {
	return scanNotification(r.db.QueryRow(ctx, `
		SELECT `+notificationColumns+` FROM notifications n
		WHERE n.id = $1 AND n.expires_at > $2
	`, id, now))
}

func (r *NotificationRepository) FindRequest(ctx context.Context, from, to string, now time.Time) (*entity.Notification, error) {
	return scanNotification(r.db.QueryRow(ctx, `
		SELECT `+notificationColumns+` FROM notifications n
		WHERE n.type = 'match_request' AND n.from_user = $1 AND n.to_user = $2 AND n.expires_at > $3
	`, from, to, now))
}

func (r *NotificationRepository) ListForUser(ctx context.Context, userID string, now time.Time) ([]*entity.Notification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+notificationColumns+` FROM notifications n
		WHERE n.to_user = $1 AND n.expires_at > $2
		ORDER BY n.created_at DESC
	`, userID, now)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	var out []*entity.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, mapErr(rows.Err())
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	return mustAffect(r.db.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id))
}

func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	return mustAffect(r.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id))
}

func (r *NotificationRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, mapErr(err)
	}
	return tag.RowsAffected(), nil
}

var _ repository.NotificationRepository = (*NotificationRepository)(nil)
