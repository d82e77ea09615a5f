package entity

import (
	"slices"
	"time"
)

// Space is a topic forum. Members is ordered by join time; the creator
// joins on creation and cannot leave.
type Space struct {
	ID          string
	Name        string
	Description string
	CreatorID   string
	Members     []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (s *Space) IsMember(userID string) bool {
	return slices.Contains(s.Members, userID)
}
