package repository

import (
	"context"
	"errors"
	"time"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create assigns u.ID. Returns ErrDuplicate when the email is taken.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// ListByIDs returns the users that exist, in the order of ids.
	ListByIDs(ctx context.Context, ids []string) ([]*entity.User, error)
	// List returns every user except excludeID, newest first.
	List(ctx context.Context, excludeID string) ([]*entity.User, error)
	UpdateAvatar(ctx context.Context, id string, a entity.Avatar, at time.Time) error
	// AddMatch appends matchID to userID's matches; a no-op when already present.
	AddMatch(ctx context.Context, userID, matchID string) error
	RemoveMatch(ctx context.Context, userID, matchID string) error
}

type SpaceRepository interface {
	// Create stores s together with its initial Members.
	Create(ctx context.Context, s *entity.Space) error
	GetByID(ctx context.Context, id string) (*entity.Space, error)
	// List returns spaces newest first; limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]*entity.Space, error)
	Update(ctx context.Context, s *entity.Space) error
	// Delete removes the space with its memberships, posts, comments and likes.
	Delete(ctx context.Context, id string) error
	// AddMember returns ErrDuplicate when userID already belongs to the space.
	AddMember(ctx context.Context, spaceID, userID string) error
	RemoveMember(ctx context.Context, spaceID, userID string) error
}

type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	// List* return newest first; limit <= 0 means no limit.
	ListBySpace(ctx context.Context, spaceID string, limit int) ([]*entity.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*entity.Post, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Post, error)
	// Delete removes the post with its comments and likes.
	Delete(ctx context.Context, id string) error
	AddLike(ctx context.Context, postID, userID string) error
	RemoveLike(ctx context.Context, postID, userID string) error
}

type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	// ListTopLevel pages through a post's comments without a parent, newest first.
	ListTopLevel(ctx context.Context, postID string, limit, offset int) ([]*entity.Comment, int, error)
	// Delete removes the comment, its replies and their likes.
	Delete(ctx context.Context, id string) error
	AddLike(ctx context.Context, commentID, userID string) error
	RemoveLike(ctx context.Context, commentID, userID string) error
}

// NotificationRepository treats rows with expires_at <= now as absent on every read.
type NotificationRepository interface {
	// Create returns ErrDuplicate when a match_request for the same ordered pair exists.
	Create(ctx context.Context, n *entity.Notification) error
	GetByID(ctx context.Context, id string, now time.Time) (*entity.Notification, error)
	// FindRequest returns the live match_request from -> to.
	FindRequest(ctx context.Context, from, to string, now time.Time) (*entity.Notification, error)
	// ListForUser returns live notifications addressed to userID, newest first.
	ListForUser(ctx context.Context, userID string, now time.Time) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Store groups the repositories. WithTx runs fn against a transactional Store;
// fn's error rolls everything back. Calling WithTx on a transactional Store
// reuses the running transaction.
type Store interface {
	Users() UserRepository
	Spaces() SpaceRepository
	Posts() PostRepository
	Comments() CommentRepository
	Notifications() NotificationRepository
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
