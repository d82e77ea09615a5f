package entity

import (
	"slices"
	"time"
)

// PostMaxLen is counted in characters, not bytes.
const PostMaxLen = 300

// Post belongs to a space. Content never changes after creation; Likes and
// Comments are derived from their own tables.
type Post struct {
	ID        string
	Content   string
	AuthorID  string
	SpaceID   string
	Likes     []string
	Comments  []string
	CreatedAt time.Time
}

func (p *Post) LikedBy(userID string) bool {
	return slices.Contains(p.Likes, userID)
}

const CommentMaxLen = 500

type Comment struct {
	ID        string
	Content   string
	AuthorID  string
	PostID    string
	ParentID  string // empty for top-level comments
	Likes     []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Comment) LikedBy(userID string) bool {
	return slices.Contains(c.Likes, userID)
}
