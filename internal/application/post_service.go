package application

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
	repo "github.com/udconnect/udconnect-api/internal/domain/repository"
	"github.com/udconnect/udconnect-api/pkg/apperror"
)

const (
	RecentPostsLimit      = 10
	SpaceRecentPostsLimit = 10
)

type PostService struct {
	Store  repo.Store
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewPostService(store repo.Store, logger *logrus.Logger) *PostService {
	return &PostService{Store: store, Logger: logger, Now: time.Now}
}

// PostDetail is a post with author and space loaded.
type PostDetail struct {
	Post   *entity.Post
	Author *entity.User
	Space  *entity.Space
}

// LikeResult reports the outcome of a like toggle.
type LikeResult struct {
	Liked bool
	Likes []string
}

func (s *PostService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Create posts content to a space the actor belongs to. Membership is checked
// before the content.
func (s *PostService) Create(ctx context.Context, actorID, spaceID, content string) (*PostDetail, error) {
	sp, err := s.Store.Spaces().GetByID(ctx, spaceID)
	if err != nil {
		return nil, storeErr(err, MsgSpaceNotFound)
	}
	if !sp.IsMember(actorID) {
		return nil, apperror.Forbidden(MsgNotSpaceMember)
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperror.Validation(MsgPostContentRequired)
	}
	if utf8.RuneCountInString(content) > entity.PostMaxLen {
		return nil, apperror.Validation(MsgPostTooLong).WithDetails(map[string]string{"content": "no puede exceder 300 caracteres"})
	}
	p := &entity.Post{Content: content, AuthorID: actorID, SpaceID: spaceID, CreatedAt: s.now()}
	if err := s.Store.Posts().Create(ctx, p); err != nil {
		return nil, storeErr(err, MsgSpaceNotFound)
	}
	details, err := s.details(ctx, []*entity.Post{p})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

func (s *PostService) Get(ctx context.Context, id string) (*PostDetail, error) {
	p, err := s.Store.Posts().GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, MsgPostNotFound)
	}
	details, err := s.details(ctx, []*entity.Post{p})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

// ListBySpace returns every post of a space, newest first.
func (s *PostService) ListBySpace(ctx context.Context, spaceID string) ([]*PostDetail, error) {
	posts, err := s.Store.Posts().ListBySpace(ctx, spaceID, 0)
	if err != nil {
		return nil, storeErr(err, MsgSpaceNotFound)
	}
	return s.details(ctx, posts)
}

// RecentInSpace returns the newest posts of an existing space.
func (s *PostService) RecentInSpace(ctx context.Context, spaceID string, limit int) ([]*PostDetail, error) {
	if limit <= 0 {
		limit = SpaceRecentPostsLimit
	}
	if _, err := s.Store.Spaces().GetByID(ctx, spaceID); err != nil {
		return nil, storeErr(err, MsgSpaceNotFound)
	}
	posts, err := s.Store.Posts().ListBySpace(ctx, spaceID, limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return s.details(ctx, posts)
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID string) ([]*PostDetail, error) {
	posts, err := s.Store.Posts().ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, storeErr(err, MsgUserNotFound)
	}
	return s.details(ctx, posts)
}

// Recent returns the newest posts across all spaces.
func (s *PostService) Recent(ctx context.Context) ([]*PostDetail, error) {
	posts, err := s.Store.Posts().ListRecent(ctx, RecentPostsLimit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return s.details(ctx, posts)
}

// Delete removes a post written by actorID.
func (s *PostService) Delete(ctx context.Context, actorID, id string) error {
	p, err := s.Store.Posts().GetByID(ctx, id)
	if err != nil {
		return storeErr(err, MsgPostNotFound)
	}
	if p.AuthorID != actorID {
		return apperror.Forbidden(MsgPostDeleteForbidden)
	}
	return storeErr(s.Store.Posts().Delete(ctx, id), MsgPostNotFound)
}

// ToggleLike likes the post, or unlikes it when actorID already did.
func (s *PostService) ToggleLike(ctx context.Context, actorID, id string) (*LikeResult, error) {
	res := &LikeResult{}
	err := s.Store.WithTx(ctx, func(ctx context.Context, tx repo.Store) error {
		p, err := tx.Posts().GetByID(ctx, id)
		if err != nil {
			return storeErr(err, MsgPostNotFound)
		}
		if p.LikedBy(actorID) {
			err = tx.Posts().RemoveLike(ctx, id, actorID)
		} else {
			res.Liked = true
			err = tx.Posts().AddLike(ctx, id, actorID)
		}
		if err != nil {
			return storeErr(err, MsgPostNotFound)
		}
		p, err = tx.Posts().GetByID(ctx, id)
		if err != nil {
			return storeErr(err, MsgPostNotFound)
		}
		res.Likes = p.Likes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *PostService) details(ctx context.Context, posts []*entity.Post) ([]*PostDetail, error) {
	authorIDs := make([]string, 0, len(posts))
	spaces := map[string]*entity.Space{}
	for _, p := range posts {
		authorIDs = append(authorIDs, p.AuthorID)
		spaces[p.SpaceID] = nil
	}
	authors, err := usersByID(ctx, s.Store, authorIDs)
	if err != nil {
		return nil, err
	}
	for id := range spaces {
		sp, err := s.Store.Spaces().GetByID(ctx, id)
		if err != nil {
			if err := storeErr(err, MsgSpaceNotFound); apperror.IsKind(err, apperror.KindInternal) {
				return nil, err
			}
			continue
		}
		spaces[id] = sp
	}
	out := make([]*PostDetail, 0, len(posts))
	for _, p := range posts {
		out = append(out, &PostDetail{Post: p, Author: authors[p.AuthorID], Space: spaces[p.SpaceID]})
	}
	return out, nil
}
