package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
	repo "github.com/udconnect/udconnect-api/internal/domain/repository"
	"github.com/udconnect/udconnect-api/pkg/apperror"
	"github.com/udconnect/udconnect-api/pkg/helpers"
)

type UserService struct {
	Store  repo.Store
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Index  UserIndex
	Events EventPublisher
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewUserService(store repo.Store, jwt *helpers.JWTManager, rdb *redis.Client, index UserIndex, events EventPublisher, logger *logrus.Logger) *UserService {
	if events == nil {
		events = NopPublisher
	}
	return &UserService{
		Store:  store,
		JWT:    jwt,
		Redis:  rdb,
		Index:  index,
		Events: events,
		Logger: logger,
		Now:    time.Now,
	}
}

// Session is a signed-in user with the token to put in the cookie.
type Session struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Major        string
	IGUser       string
	IGProfileURL string
	Avatar       *entity.Avatar
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Register creates the account and signs it in.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email := normalizeEmail(in.Email)
	if _, err := s.Store.Users().GetByEmail(ctx, email); err == nil {
		return nil, apperror.Conflict(MsgEmailTaken)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	avatar := entity.DefaultAvatar()
	if in.Avatar != nil {
		avatar = in.Avatar.WithDefaults()
	}
	now := s.now()
	u := &entity.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Password:     hash,
		Major:        strings.TrimSpace(in.Major),
		IGUser:       strings.TrimSpace(in.IGUser),
		IGProfileURL: strings.TrimSpace(in.IGProfileURL),
		Avatar:       avatar,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.Conflict(MsgEmailTaken)
		}
		return nil, apperror.Internal(err)
	}

	s.indexUser(ctx, u)
	if err := s.Events.PublishWelcome(ctx, u); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("publish welcome email failed")
	}
	return s.issue(u)
}

// Login checks credentials and signs the user in.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Store.Users().GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, storeErr(err, MsgUserNotFound)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, apperror.Unauthenticated(MsgWrongPassword)
	}
	return s.issue(u)
}

func (s *UserService) issue(u *entity.User) (*Session, error) {
	token, claims, err := s.JWT.Generate(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, apperror.Internal(err)
	}
	return &Session{User: u, Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Logout revokes the session token id until it would have expired.
// Without Redis the cookie is only cleared client-side.
func (s *UserService) Logout(ctx context.Context, jti string, exp time.Time) {
	if err := helpers.RevokeToken(ctx, s.Redis, jti, exp); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("revoke token failed")
	}
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, MsgUserNotFound)
	}
	return u, nil
}

// UpdateAvatar replaces the caller's avatar; empty fields keep their current value.
func (s *UserService) UpdateAvatar(ctx context.Context, userID string, a entity.Avatar) (*entity.User, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	merged := mergeAvatar(u.Avatar.WithDefaults(), a)
	now := s.now()
	if err := s.Store.Users().UpdateAvatar(ctx, userID, merged, now); err != nil {
		return nil, storeErr(err, MsgUserNotFound)
	}
	u.Avatar = merged
	u.UpdatedAt = now
	s.indexUser(ctx, u)
	return u, nil
}

func mergeAvatar(cur, in entity.Avatar) entity.Avatar {
	pick := func(next, old string) string {
		if next != "" {
			return next
		}
		return old
	}
	return entity.Avatar{
		BodyColor:       pick(in.BodyColor, cur.BodyColor),
		HairStyle:       pick(in.HairStyle, cur.HairStyle),
		HairColor:       pick(in.HairColor, cur.HairColor),
		EyeStyle:        pick(in.EyeStyle, cur.EyeStyle),
		MouthStyle:      pick(in.MouthStyle, cur.MouthStyle),
		BackgroundColor: pick(in.BackgroundColor, cur.BackgroundColor),
	}
}

// List returns every user except excludeID (empty for anonymous callers).
func (s *UserService) List(ctx context.Context, excludeID string) ([]*entity.User, error) {
	users, err := s.Store.Users().List(ctx, excludeID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

// Search looks users up by name, email or major. It uses the search index when
// configured and falls back to scanning the store.
func (s *UserService) Search(ctx context.Context, q string, size int) ([]*entity.User, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperror.Validation(MsgSearchQueryRequired)
	}
	if size <= 0 || size > 50 {
		size = 10
	}

	if s.Index != nil {
		ids, err := s.Index.SearchUsers(ctx, q, size)
		if err == nil {
			users, err := s.Store.Users().ListByIDs(ctx, ids)
			if err != nil {
				return nil, apperror.Internal(err)
			}
			return users, nil
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("user search index failed, scanning store")
		}
	}

	all, err := s.Store.Users().List(ctx, "")
	if err != nil {
		return nil, apperror.Internal(err)
	}
	needle := strings.ToLower(q)
	out := make([]*entity.User, 0, size)
	for _, u := range all {
		if len(out) == size {
			break
		}
		if strings.Contains(strings.ToLower(u.Name), needle) ||
			strings.Contains(u.Email, needle) ||
			strings.Contains(strings.ToLower(u.Major), needle) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexUser(ctx, u); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("index user failed")
	}
}
