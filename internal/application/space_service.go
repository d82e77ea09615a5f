package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
	repo "github.com/udconnect/udconnect-api/internal/domain/repository"
	"github.com/udconnect/udconnect-api/pkg/apperror"
)

// ExploreLimit caps the explore listing.
const ExploreLimit = 50

type SpaceService struct {
	Store  repo.Store
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewSpaceService(store repo.Store, logger *logrus.Logger) *SpaceService {
	return &SpaceService{Store: store, Logger: logger, Now: time.Now}
}

// SpaceDetail is a space with its creator and members loaded.
type SpaceDetail struct {
	Space   *entity.Space
	Creator *entity.User
	Members []*entity.User
}

func (s *SpaceService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Create stores a new space with actorID as creator and first member.
func (s *SpaceService) Create(ctx context.Context, actorID, name, description string) (*SpaceDetail, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation(MsgSpaceNameRequired)
	}
	now := s.now()
	sp := &entity.Space{
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatorID:   actorID,
		Members:     []string{actorID},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.Store.WithTx(ctx, func(ctx context.Context, tx repo.Store) error {
		return tx.Spaces().Create(ctx, sp)
	})
	if err != nil {
		return nil, storeErr(err, MsgUserNotFound)
	}
	return s.detail(ctx, sp)
}

func (s *SpaceService) get(ctx context.Context, id string) (*entity.Space, error) {
	sp, err := s.Store.Spaces().GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, MsgSpaceNotFound)
	}
	return sp, nil
}

func (s *SpaceService) Get(ctx context.Context, id string) (*SpaceDetail, error) {
	sp, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, sp)
}

// List returns every space, newest first.
func (s *SpaceService) List(ctx context.Context) ([]*SpaceDetail, error) {
	return s.list(ctx, 0)
}

// Explore returns the newest ExploreLimit spaces.
func (s *SpaceService) Explore(ctx context.Context) ([]*SpaceDetail, error) {
	return s.list(ctx, ExploreLimit)
}

func (s *SpaceService) list(ctx context.Context, limit int) ([]*SpaceDetail, error) {
	spaces, err := s.Store.Spaces().List(ctx, limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	var ids []string
	for _, sp := range spaces {
		ids = append(ids, sp.CreatorID)
		ids = append(ids, sp.Members...)
	}
	users, err := usersByID(ctx, s.Store, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*SpaceDetail, 0, len(spaces))
	for _, sp := range spaces {
		out = append(out, buildSpaceDetail(sp, users))
	}
	return out, nil
}

// Update changes name and description; empty values keep the current ones.
func (s *SpaceService) Update(ctx context.Context, actorID, id, name, description string) (*SpaceDetail, error) {
	sp, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sp.CreatorID != actorID {
		return nil, apperror.Forbidden(MsgSpaceUpdateForbidden)
	}
	if n := strings.TrimSpace(name); n != "" {
		sp.Name = n
	}
	if d := strings.TrimSpace(description); d != "" {
		sp.Description = d
	}
	sp.UpdatedAt = s.now()
	if err := s.Store.Spaces().Update(ctx, sp); err != nil {
		return nil, storeErr(err, MsgSpaceNotFound)
	}
	return s.detail(ctx, sp)
}

// Delete removes the space and everything posted in it.
func (s *SpaceService) Delete(ctx context.Context, actorID, id string) error {
	sp, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if sp.CreatorID != actorID {
		return apperror.Forbidden(MsgSpaceDeleteForbidden)
	}
	return storeErr(s.Store.Spaces().Delete(ctx, id), MsgSpaceNotFound)
}

func (s *SpaceService) Join(ctx context.Context, actorID, id string) (*SpaceDetail, error) {
	if _, err := s.get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.Store.Spaces().AddMember(ctx, id, actorID); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.Conflict(MsgAlreadySpaceMember)
		}
		return nil, storeErr(err, MsgSpaceNotFound)
	}
	return s.Get(ctx, id)
}

// Leave is idempotent for non-members. The creator cannot leave.
func (s *SpaceService) Leave(ctx context.Context, actorID, id string) (*SpaceDetail, error) {
	sp, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sp.CreatorID == actorID {
		return nil, apperror.Forbidden(MsgCreatorCannotLeave)
	}
	if err := s.Store.Spaces().RemoveMember(ctx, id, actorID); err != nil {
		return nil, storeErr(err, MsgSpaceNotFound)
	}
	return s.Get(ctx, id)
}

// Members returns the members of a space in join order.
func (s *SpaceService) Members(ctx context.Context, id string) ([]*entity.User, error) {
	sp, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	users, err := s.Store.Users().ListByIDs(ctx, sp.Members)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

func (s *SpaceService) detail(ctx context.Context, sp *entity.Space) (*SpaceDetail, error) {
	users, err := usersByID(ctx, s.Store, append([]string{sp.CreatorID}, sp.Members...))
	if err != nil {
		return nil, err
	}
	return buildSpaceDetail(sp, users), nil
}

func buildSpaceDetail(sp *entity.Space, users map[string]*entity.User) *SpaceDetail {
	d := &SpaceDetail{Space: sp, Creator: users[sp.CreatorID], Members: make([]*entity.User, 0, len(sp.Members))}
	for _, id := range sp.Members {
		if u, ok := users[id]; ok {
			d.Members = append(d.Members, u)
		}
	}
	return d
}
