package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	repo "github.com/udconnect/udconnect-api/internal/domain/repository"
)

// NotificationSweeper physically removes expired notifications. Read paths
// already hide them, so the interval only bounds storage growth.
type NotificationSweeper struct {
	Store    repo.Store
	Interval time.Duration
	Logger   *logrus.Logger
	Now      func() time.Time
}

func NewNotificationSweeper(store repo.Store, interval time.Duration, logger *logrus.Logger) *NotificationSweeper {
	return &NotificationSweeper{Store: store, Interval: interval, Logger: logger, Now: time.Now}
}

// Run sweeps once immediately and then every Interval until ctx is cancelled.
func (s *NotificationSweeper) Run(ctx context.Context) {
	if s.Interval <= 0 {
		return
	}
	t := time.NewTicker(s.Interval)
	defer t.Stop()
	for {
		if _, err := s.SweepOnce(ctx); err != nil && ctx.Err() == nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("notification sweep failed")
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

func (s *NotificationSweeper) SweepOnce(ctx context.Context) (int64, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	n, err := s.Store.Notifications().DeleteExpired(ctx, now)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		notificationsSwept.Add(n)
		if s.Logger != nil {
			s.Logger.WithField("deleted", n).Info("expired notifications swept")
		}
	}
	return n, nil
}
