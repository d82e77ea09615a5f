package handlers

import (
	"time"

	"github.com/udconnect/udconnect-api/internal/application"
	"github.com/udconnect/udconnect-api/internal/domain/entity"
)

// Responses carry both "id" and "_id" so existing clients keep working.

type userSummary struct {
	ID     string        `json:"id"`
	OID    string        `json:"_id"`
	Name   string        `json:"name"`
	Email  string        `json:"email"`
	Avatar entity.Avatar `json:"avatar"`
	Major  string        `json:"major"`
	IGUser string        `json:"ig_user"`
}

type userView struct {
	userSummary
	IGProfileURL string    `json:"ig_profile_url"`
	Matches      []string  `json:"matches"`
	CreatedAt    time.Time `json:"createdAt"`
}

type spaceRef struct {
	ID          string `json:"id"`
	OID         string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type spaceView struct {
	spaceRef
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Creator   *userSummary   `json:"creator_id"`
	Members   []*userSummary `json:"members"`
}

type postView struct {
	ID        string       `json:"id"`
	OID       string       `json:"_id"`
	Content   string       `json:"content"`
	Date      time.Time    `json:"date"`
	CreatedAt time.Time    `json:"createdAt"`
	Likes     []string     `json:"likes"`
	Comments  []string     `json:"comments"`
	Author    *userSummary `json:"author_id"`
	Space     *spaceRef    `json:"space_id"`
}

type commentView struct {
	ID         string       `json:"id"`
	OID        string       `json:"_id"`
	Content    string       `json:"content"`
	Author     *userSummary `json:"author_id"`
	PostID     string       `json:"post_id"`
	ParentID   *string      `json:"parent_comment_id"`
	Likes      []string     `json:"likes"`
	LikesCount int          `json:"likesCount"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

type notificationView struct {
	ID        string       `json:"id"`
	OID       string       `json:"_id"`
	Type      string       `json:"type"`
	From      *userSummary `json:"from_user"`
	To        string       `json:"to_user"`
	Read      bool         `json:"read"`
	CreatedAt time.Time    `json:"createdAt"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

func strs(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toUserSummary(u *entity.User) *userSummary {
	if u == nil {
		return nil
	}
	return &userSummary{
		ID:     u.ID,
		OID:    u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
		Major:  u.Major,
		IGUser: u.IGUser,
	}
}

func toUserSummaries(users []*entity.User) []*userSummary {
	out := make([]*userSummary, 0, len(users))
	for _, u := range users {
		out = append(out, toUserSummary(u))
	}
	return out
}

func toUserView(u *entity.User) *userView {
	return &userView{
		userSummary:  *toUserSummary(u),
		IGProfileURL: u.IGProfileURL,
		Matches:      strs(u.Matches),
		CreatedAt:    u.CreatedAt,
	}
}

func toUserViews(users []*entity.User) []*userView {
	out := make([]*userView, 0, len(users))
	for _, u := range users {
		out = append(out, toUserView(u))
	}
	return out
}

func toSpaceRef(sp *entity.Space) *spaceRef {
	if sp == nil {
		return nil
	}
	return &spaceRef{ID: sp.ID, OID: sp.ID, Name: sp.Name, Description: sp.Description}
}

func toSpaceView(d *application.SpaceDetail) *spaceView {
	return &spaceView{
		spaceRef:  *toSpaceRef(d.Space),
		CreatedAt: d.Space.CreatedAt,
		UpdatedAt: d.Space.UpdatedAt,
		Creator:   toUserSummary(d.Creator),
		Members:   toUserSummaries(d.Members),
	}
}

func toSpaceViews(list []*application.SpaceDetail) []*spaceView {
	out := make([]*spaceView, 0, len(list))
	for _, d := range list {
		out = append(out, toSpaceView(d))
	}
	return out
}

func toPostView(d *application.PostDetail) *postView {
	p := d.Post
	return &postView{
		ID:        p.ID,
		OID:       p.ID,
		Content:   p.Content,
		Date:      p.CreatedAt,
		CreatedAt: p.CreatedAt,
		Likes:     strs(p.Likes),
		Comments:  strs(p.Comments),
		Author:    toUserSummary(d.Author),
		Space:     toSpaceRef(d.Space),
	}
}

func toPostViews(list []*application.PostDetail) []*postView {
	out := make([]*postView, 0, len(list))
	for _, d := range list {
		out = append(out, toPostView(d))
	}
	return out
}

func toCommentView(d *application.CommentDetail) *commentView {
	c := d.Comment
	v := &commentView{
		ID:         c.ID,
		OID:        c.ID,
		Content:    c.Content,
		Author:     toUserSummary(d.Author),
		PostID:     c.PostID,
		Likes:      strs(c.Likes),
		LikesCount: len(c.Likes),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if c.ParentID != "" {
		parent := c.ParentID
		v.ParentID = &parent
	}
	return v
}

func toCommentViews(list []*application.CommentDetail) []*commentView {
	out := make([]*commentView, 0, len(list))
	for _, d := range list {
		out = append(out, toCommentView(d))
	}
	return out
}

func toNotificationView(d *application.NotificationDetail) *notificationView {
	n := d.Notification
	return &notificationView{
		ID:        n.ID,
		OID:       n.ID,
		Type:      string(n.Type),
		From:      toUserSummary(d.From),
		To:        n.ToUser,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
		ExpiresAt: n.ExpiresAt,
	}
}

func toNotificationViews(list []*application.NotificationDetail) []*notificationView {
	out := make([]*notificationView, 0, len(list))
	for _, d := range list {
		out = append(out, toNotificationView(d))
	}
	return out
}
