package entity

import "time"

type NotificationType string

const (
	NotificationMatchRequest  NotificationType = "match_request"
	NotificationMatchAccepted NotificationType = "match_accepted"
	NotificationMatchRejected NotificationType = "match_rejected"
)

// Notification carries in-flight match state. A match_request is deleted once
// answered; every notification disappears after ExpiresAt.
type Notification struct {
	ID        string
	Type      NotificationType
	FromUser  string
	ToUser    string
	Read      bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (n *Notification) IsExpired(now time.Time) bool {
	return !n.ExpiresAt.After(now)
}

// MatchStatus is derived on every read and never persisted.
type MatchStatus string

const (
	MatchStatusNone            MatchStatus = "none"
	MatchStatusPendingOutgoing MatchStatus = "pending_outgoing"
	MatchStatusPendingIncoming MatchStatus = "pending_incoming"
	MatchStatusMatched         MatchStatus = "matched"
)
