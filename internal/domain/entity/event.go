package entity

import "time"

// MatchEvent describes a match transition for out-of-band delivery (email).
// To is the user the event is addressed to.
type MatchEvent struct {
	Type NotificationType
	From *User
	To   *User
	At   time.Time
}
