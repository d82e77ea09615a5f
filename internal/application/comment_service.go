package application

import (
	"context"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
	repo "github.com/udconnect/udconnect-api/internal/domain/repository"
	"github.com/udconnect/udconnect-api/pkg/apperror"
)

const (
	DefaultCommentPageSize = 10
	MaxCommentPageSize     = 50
)

type CommentService struct {
	Store  repo.Store
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewCommentService(store repo.Store, logger *logrus.Logger) *CommentService {
	return &CommentService{Store: store, Logger: logger, Now: time.Now}
}

// CommentDetail is a comment with its author loaded.
type CommentDetail struct {
	Comment *entity.Comment
	Author  *entity.User
}

// CommentPage is one page of top-level comments.
type CommentPage struct {
	Comments []*CommentDetail
	Total    int
	Page     int
	Limit    int
}

func (s *CommentService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Create adds a comment to a post. parentID, when set, must be a comment of the same post.
func (s *CommentService) Create(ctx context.Context, actorID, postID, content, parentID string) (*CommentDetail, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.Validation(MsgCommentRequired)
	}
	if utf8.RuneCountInString(content) > entity.CommentMaxLen {
		return nil, apperror.Validation(MsgCommentTooLong)
	}
	if _, err := s.Store.Posts().GetByID(ctx, postID); err != nil {
		return nil, storeErr(err, MsgPostNotFound)
	}
	if parentID != "" {
		parent, err := s.Store.Comments().GetByID(ctx, parentID)
		if err != nil {
			return nil, storeErr(err, MsgCommentNotFound)
		}
		if parent.PostID != postID {
			return nil, apperror.Validation(MsgParentMismatch)
		}
	}

	now := s.now()
	c := &entity.Comment{
		Content:   content,
		AuthorID:  actorID,
		PostID:    postID,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Comments().Create(ctx, c); err != nil {
		return nil, storeErr(err, MsgPostNotFound)
	}
	details, err := s.details(ctx, []*entity.Comment{c})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

// ListByPost pages through the top-level comments of a post, newest first.
func (s *CommentService) ListByPost(ctx context.Context, postID string, limit, page int) (*CommentPage, error) {
	if limit <= 0 {
		limit = DefaultCommentPageSize
	}
	if limit > MaxCommentPageSize {
		limit = MaxCommentPageSize
	}
	if page <= 0 {
		page = 1
	}
	if _, err := s.Store.Posts().GetByID(ctx, postID); err != nil {
		return nil, storeErr(err, MsgPostNotFound)
	}
	offset := math.MaxInt // past any real page
	if page-1 <= math.MaxInt/limit {
		offset = (page - 1) * limit
	}
	comments, total, err := s.Store.Comments().ListTopLevel(ctx, postID, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	details, err := s.details(ctx, comments)
	if err != nil {
		return nil, err
	}
	return &CommentPage{Comments: details, Total: total, Page: page, Limit: limit}, nil
}

// Delete removes a comment. Allowed for its author and for the post's author.
func (s *CommentService) Delete(ctx context.Context, actorID, id string) error {
	c, err := s.Store.Comments().GetByID(ctx, id)
	if err != nil {
		return storeErr(err, MsgCommentNotFound)
	}
	if c.AuthorID != actorID {
		p, err := s.Store.Posts().GetByID(ctx, c.PostID)
		if err != nil {
			if err := storeErr(err, MsgPostNotFound); apperror.IsKind(err, apperror.KindInternal) {
				return err
			}
			return apperror.Forbidden(MsgCommentForbidden)
		}
		if p.AuthorID != actorID {
			return apperror.Forbidden(MsgCommentForbidden)
		}
	}
	return storeErr(s.Store.Comments().Delete(ctx, id), MsgCommentNotFound)
}

// ToggleLike likes the comment, or unlikes it when actorID already did.
func (s *CommentService) ToggleLike(ctx context.Context, actorID, id string) (*LikeResult, error) {
	res := &LikeResult{}
	err := s.Store.WithTx(ctx, func(ctx context.Context, tx repo.Store) error {
		c, err := tx.Comments().GetByID(ctx, id)
		if err != nil {
			return storeErr(err, MsgCommentNotFound)
		}
		if c.LikedBy(actorID) {
			err = tx.Comments().RemoveLike(ctx, id, actorID)
		} else {
			res.Liked = true
			err = tx.Comments().AddLike(ctx, id, actorID)
		}
		if err != nil {
			return storeErr(err, MsgCommentNotFound)
		}
		c, err = tx.Comments().GetByID(ctx, id)
		if err != nil {
			return storeErr(err, MsgCommentNotFound)
		}
		res.Likes = c.Likes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *CommentService) details(ctx context.Context, comments []*entity.Comment) ([]*CommentDetail, error) {
	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.AuthorID)
	}
	authors, err := usersByID(ctx, s.Store, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*CommentDetail, 0, len(comments))
	for _, c := range comments {
		out = append(out, &CommentDetail{Comment: c, Author: authors[c.AuthorID]})
	}
	return out, nil
}
