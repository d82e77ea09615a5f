package application

import "expvar"

// Published under /debug/vars.
var (
	matchTransitions   = expvar.NewMap("match_transitions")
	notificationsSwept = expvar.NewInt("notifications_swept")
)
