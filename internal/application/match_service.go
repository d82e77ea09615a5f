package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
	repo "github.com/udconnect/udconnect-api/internal/domain/repository"
	"github.com/udconnect/udconnect-api/pkg/apperror"
)

// MatchService runs the request/accept/reject/unmatch lifecycle. In-flight
// state lives only in notifications; status is derived on every read.
type MatchService struct {
	Store  repo.Store
	Events EventPublisher
	Logger *logrus.Logger

	// TTL is how long a notification lives before it expires.
	TTL time.Duration
	// CheckReverse also blocks request(A, B) while B -> A is pending.
	CheckReverse bool
	Now          func() time.Time
}

func NewMatchService(store repo.Store, events EventPublisher, logger *logrus.Logger, ttl time.Duration, checkReverse bool) *MatchService {
	if events == nil {
		events = NopPublisher
	}
	return &MatchService{
		Store:        store,
		Events:       events,
		Logger:       logger,
		TTL:          ttl,
		CheckReverse: checkReverse,
		Now:          time.Now,
	}
}

// NotificationDetail is a notification with its sender loaded.
type NotificationDetail struct {
	Notification *entity.Notification
	From         *entity.User
}

// StatusResult is the derived relationship between the caller and another user.
// NotificationID is set for pending states.
type StatusResult struct {
	Status         entity.MatchStatus
	NotificationID string
}

func (s *MatchService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *MatchService) newNotification(typ entity.NotificationType, from, to string) *entity.Notification {
	now := s.now()
	return &entity.Notification{
		Type:      typ,
		FromUser:  from,
		ToUser:    to,
		CreatedAt: now,
		ExpiresAt: now.Add(s.TTL),
	}
}

// Request creates a match_request from actorID to targetID.
func (s *MatchService) Request(ctx context.Context, actorID, targetID string) (*NotificationDetail, error) {
	if targetID == "" {
		return nil, apperror.Validation(MsgTargetRequired)
	}
	if actorID == targetID {
		return nil, apperror.Validation(MsgSelfMatch)
	}

	var (
		n             *entity.Notification
		actor, target *entity.User
	)
	err := s.Store.WithTx(ctx, func(ctx context.Context, tx repo.Store) error {
		var err error
		if target, err = tx.Users().GetByID(ctx, targetID); err != nil {
			return storeErr(err, MsgUserNotFound)
		}
		if actor, err = tx.Users().GetByID(ctx, actorID); err != nil {
			return storeErr(err, MsgUserNotFound)
		}

		now := s.now()
		if err := s.ensureNoRequest(ctx, tx, actorID, targetID, now); err != nil {
			return err
		}
		if s.CheckReverse {
			if err := s.ensureNoRequest(ctx, tx, targetID, actorID, now); err != nil {
				return err
			}
		}
		if actor.HasMatch(targetID) {
			return apperror.Conflict(MsgAlreadyMatched)
		}

		n = s.newNotification(entity.NotificationMatchRequest, actorID, targetID)
		if err := tx.Notifications().Create(ctx, n); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return apperror.Conflict(MsgRequestPending)
			}
			return apperror.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, "request", entity.MatchEvent{Type: n.Type, From: actor, To: target, At: n.CreatedAt})
	return &NotificationDetail{Notification: n, From: actor}, nil
}

func (s *MatchService) ensureNoRequest(ctx context.Context, tx repo.Store, from, to string, now time.Time) error {
	_, err := tx.Notifications().FindRequest(ctx, from, to, now)
	switch {
	case err == nil:
		return apperror.Conflict(MsgRequestPending)
	case errors.Is(err, repo.ErrNotFound):
		return nil
	default:
		return apperror.Internal(err)
	}
}

// Accept turns a pending request addressed to actorID into a match. Both match
// sets, the match_accepted notice and the request deletion commit together.
// It returns the user who sent the request.
func (s *MatchService) Accept(ctx context.Context, actorID, notificationID string) (*entity.User, error) {
	return s.answer(ctx, actorID, notificationID, entity.NotificationMatchAccepted)
}

// Reject discards a pending request addressed to actorID and notifies the sender.
// Match sets are never touched.
func (s *MatchService) Reject(ctx context.Context, actorID, notificationID string) (*entity.User, error) {
	return s.answer(ctx, actorID, notificationID, entity.NotificationMatchRejected)
}

func (s *MatchService) answer(ctx context.Context, actorID, notificationID string, outcome entity.NotificationType) (*entity.User, error) {
	forbidden := MsgAcceptForbidden
	if outcome == entity.NotificationMatchRejected {
		forbidden = MsgRejectForbidden
	}

	var (
		reply             *entity.Notification
		requester, answer *entity.User
	)
	err := s.Store.WithTx(ctx, func(ctx context.Context, tx repo.Store) error {
		req, err := tx.Notifications().GetByID(ctx, notificationID, s.now())
		if err != nil {
			return storeErr(err, MsgNotificationNotFound)
		}
		if req.ToUser != actorID {
			return apperror.Forbidden(forbidden)
		}
		if req.Type != entity.NotificationMatchRequest {
			return apperror.Validation(MsgNotAMatchRequest)
		}

		if outcome == entity.NotificationMatchAccepted {
			if err := tx.Users().AddMatch(ctx, req.ToUser, req.FromUser); err != nil {
				return storeErr(err, MsgUserNotFound)
			}
			if err := tx.Users().AddMatch(ctx, req.FromUser, req.ToUser); err != nil {
				return storeErr(err, MsgUserNotFound)
			}
		}

		reply = s.newNotification(outcome, req.ToUser, req.FromUser)
		if err := tx.Notifications().Create(ctx, reply); err != nil {
			return apperror.Internal(err)
		}
		if err := tx.Notifications().Delete(ctx, req.ID); err != nil {
			return storeErr(err, MsgNotificationNotFound)
		}

		if requester, err = tx.Users().GetByID(ctx, req.FromUser); err != nil {
			return storeErr(err, MsgUserNotFound)
		}
		if answer, err = tx.Users().GetByID(ctx, req.ToUser); err != nil {
			return storeErr(err, MsgUserNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	name := "accept"
	if outcome == entity.NotificationMatchRejected {
		name = "reject"
	}
	s.record(ctx, name, entity.MatchEvent{Type: outcome, From: answer, To: requester, At: reply.CreatedAt})
	return requester, nil
}

// Unmatch removes the mutual match between actorID and otherID. No notification is created.
func (s *MatchService) Unmatch(ctx context.Context, actorID, otherID string) error {
	if actorID == otherID {
		return apperror.Validation(MsgSelfMatch)
	}
	err := s.Store.WithTx(ctx, func(ctx context.Context, tx repo.Store) error {
		if _, err := tx.Users().GetByID(ctx, otherID); err != nil {
			return storeErr(err, MsgUserNotFound)
		}
		actor, err := tx.Users().GetByID(ctx, actorID)
		if err != nil {
			return storeErr(err, MsgUserNotFound)
		}
		if !actor.HasMatch(otherID) {
			return apperror.Conflict(MsgNotMatched)
		}
		if err := tx.Users().RemoveMatch(ctx, actorID, otherID); err != nil {
			return storeErr(err, MsgUserNotFound)
		}
		if err := tx.Users().RemoveMatch(ctx, otherID, actorID); err != nil {
			return storeErr(err, MsgUserNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}
	matchTransitions.Add("unmatch", 1)
	return nil
}

// Status derives the relationship between actorID and otherID.
func (s *MatchService) Status(ctx context.Context, actorID, otherID string) (*StatusResult, error) {
	if actorID == otherID {
		return nil, apperror.Validation(MsgSelfMatch)
	}
	if _, err := s.Store.Users().GetByID(ctx, otherID); err != nil {
		return nil, storeErr(err, MsgUserNotFound)
	}
	actor, err := s.Store.Users().GetByID(ctx, actorID)
	if err != nil {
		return nil, storeErr(err, MsgUserNotFound)
	}
	if actor.HasMatch(otherID) {
		return &StatusResult{Status: entity.MatchStatusMatched}, nil
	}

	now := s.now()
	notifications := s.Store.Notifications()
	n, err := notifications.FindRequest(ctx, actorID, otherID, now)
	if err == nil {
		return &StatusResult{Status: entity.MatchStatusPendingOutgoing, NotificationID: n.ID}, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	n, err = notifications.FindRequest(ctx, otherID, actorID, now)
	if err == nil {
		return &StatusResult{Status: entity.MatchStatusPendingIncoming, NotificationID: n.ID}, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	return &StatusResult{Status: entity.MatchStatusNone}, nil
}

// Notifications lists live notifications addressed to actorID, newest first,
// together with the number of unread ones.
func (s *MatchService) Notifications(ctx context.Context, actorID string) ([]*NotificationDetail, int, error) {
	list, err := s.Store.Notifications().ListForUser(ctx, actorID, s.now())
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	ids := make([]string, 0, len(list))
	for _, n := range list {
		ids = append(ids, n.FromUser)
	}
	senders, err := usersByID(ctx, s.Store, ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*NotificationDetail, 0, len(list))
	unread := 0
	for _, n := range list {
		if !n.Read {
			unread++
		}
		out = append(out, &NotificationDetail{Notification: n, From: senders[n.FromUser]})
	}
	return out, unread, nil
}

// MarkRead flags a notification addressed to actorID as read.
func (s *MatchService) MarkRead(ctx context.Context, actorID, notificationID string) error {
	n, err := s.Store.Notifications().GetByID(ctx, notificationID, s.now())
	if err != nil {
		return storeErr(err, MsgNotificationNotFound)
	}
	if n.ToUser != actorID {
		return apperror.Forbidden(MsgNotificationForbidden)
	}
	return storeErr(s.Store.Notifications().MarkRead(ctx, n.ID), MsgNotificationNotFound)
}

// Matches returns actorID's matched users in match order.
func (s *MatchService) Matches(ctx context.Context, actorID string) ([]*entity.User, error) {
	u, err := s.Store.Users().GetByID(ctx, actorID)
	if err != nil {
		return nil, storeErr(err, MsgUserNotFound)
	}
	users, err := s.Store.Users().ListByIDs(ctx, u.Matches)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

func (s *MatchService) record(ctx context.Context, transition string, ev entity.MatchEvent) {
	matchTransitions.Add(transition, 1)
	if err := s.Events.PublishMatchEvent(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"type": ev.Type,
			"to":   ev.To.ID,
		}).Warn("publish match event failed")
	}
}

// usersByID loads users for population. Missing users are absent from the map.
func usersByID(ctx context.Context, store repo.Store, ids []string) (map[string]*entity.User, error) {
	seen := make(map[string]bool, len(ids))
	uniq := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}
	users, err := store.Users().ListByIDs(ctx, uniq)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	out := make(map[string]*entity.User, len(users))
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}
