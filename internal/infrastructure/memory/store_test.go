package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
	"github.com/udconnect/udconnect-api/internal/domain/repository"
)

func newUser(t *testing.T, s *Store, email string) *entity.User {
	t.Helper()
	u := &entity.User{Name: email, Email: email, Avatar: entity.DefaultAvatar()}
	require.NoError(t, s.Users().Create(context.Background(), u))
	return u
}

func TestUsers_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := newUser(t, s, "a@ud.edu")
	require.NotEmpty(t, a.ID)

	err := s.Users().Create(ctx, &entity.User{Email: "a@ud.edu"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := s.Users().GetByEmail(ctx, "a@ud.edu")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = s.Users().GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUsers_ReturnedValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := newUser(t, s, "a@ud.edu")
	b := newUser(t, s, "b@ud.edu")
	require.NoError(t, s.Users().AddMatch(ctx, a.ID, b.ID))

	got, err := s.Users().GetByID(ctx, a.ID)
	require.NoError(t, err)
	got.Matches[0] = "tampered"

	again, err := s.Users().GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, again.Matches)
}

func TestUsers_MatchesAreASet(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := newUser(t, s, "a@ud.edu")
	b := newUser(t, s, "b@ud.edu")
	c := newUser(t, s, "c@ud.edu")

	require.NoError(t, s.Users().AddMatch(ctx, a.ID, b.ID))
	require.NoError(t, s.Users().AddMatch(ctx, a.ID, b.ID))
	require.NoError(t, s.Users().AddMatch(ctx, a.ID, c.ID))
	assert.ErrorIs(t, s.Users().AddMatch(ctx, a.ID, a.ID), repository.ErrNotFound)

	got, _ := s.Users().GetByID(ctx, a.ID)
	assert.Equal(t, []string{b.ID, c.ID}, got.Matches)

	require.NoError(t, s.Users().RemoveMatch(ctx, a.ID, b.ID))
	got, _ = s.Users().GetByID(ctx, a.ID)
	assert.Equal(t, []string{c.ID}, got.Matches)
}

func TestUsers_ListExcludesAndOrders(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := newUser(t, s, "a@ud.edu")
	b := newUser(t, s, "b@ud.edu")
	c := newUser(t, s, "c@ud.edu")

	list, err := s.Users().List(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, c.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)

	byIDs, err := s.Users().ListByIDs(ctx, []string{c.ID, "nope", a.ID})
	require.NoError(t, err)
	require.Len(t, byIDs, 2)
	assert.Equal(t, c.ID, byIDs[0].ID)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := newUser(t, s, "a@ud.edu")
	b := newUser(t, s, "b@ud.edu")
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		require.NoError(t, tx.Users().AddMatch(ctx, a.ID, b.ID))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, _ := s.Users().GetByID(ctx, a.ID)
	assert.Empty(t, got.Matches)
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := newUser(t, s, "a@ud.edu")
	b := newUser(t, s, "b@ud.edu")

	assert.Panics(t, func() {
		_ = s.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
			_ = tx.Users().AddMatch(ctx, a.ID, b.ID)
			panic("boom")
		})
	})

	got, err := s.Users().GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Matches)
}

func TestWithTx_CommitsAndNests(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := newUser(t, s, "a@ud.edu")
	b := newUser(t, s, "b@ud.edu")

	err := s.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		if err := tx.Users().AddMatch(ctx, a.ID, b.ID); err != nil {
			return err
		}
		return tx.WithTx(ctx, func(ctx context.Context, inner repository.Store) error {
			return inner.Users().AddMatch(ctx, b.ID, a.ID)
		})
	})
	require.NoError(t, err)

	ga, _ := s.Users().GetByID(ctx, a.ID)
	gb, _ := s.Users().GetByID(ctx, b.ID)
	assert.Equal(t, []string{b.ID}, ga.Matches)
	assert.Equal(t, []string{a.ID}, gb.Matches)
}

func TestWithTx_ConcurrentTransactionsSerialize(t *testing.T) {
	ctx := context.Background()
	s := New()
	owner := newUser(t, s, "owner@ud.edu")
	sp := &entity.Space{Name: "go", CreatorID: owner.ID, Members: []string{owner.ID}}
	require.NoError(t, s.Spaces().Create(ctx, sp))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
				p := &entity.Post{Content: "hi", AuthorID: owner.ID, SpaceID: sp.ID}
				return tx.Posts().Create(ctx, p)
			})
		}()
	}
	wg.Wait()

	posts, err := s.Posts().ListBySpace(ctx, sp.ID, 0)
	require.NoError(t, err)
	assert.Len(t, posts, 20)
}

func TestSpaces_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	s := New()
	owner := newUser(t, s, "owner@ud.edu")
	sp := &entity.Space{Name: "go", CreatorID: owner.ID, Members: []string{owner.ID}}
	require.NoError(t, s.Spaces().Create(ctx, sp))
	p := &entity.Post{Content: "hi", AuthorID: owner.ID, SpaceID: sp.ID}
	require.NoError(t, s.Posts().Create(ctx, p))
	c := &entity.Comment{Content: "yo", AuthorID: owner.ID, PostID: p.ID}
	require.NoError(t, s.Comments().Create(ctx, c))

	require.NoError(t, s.Spaces().Delete(ctx, sp.ID))

	_, err := s.Posts().GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = s.Comments().GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSpaces_Membership(t *testing.T) {
	ctx := context.Background()
	s := New()
	sp := &entity.Space{Name: "go", CreatorID: "u1", Members: []string{"u1"}}
	require.NoError(t, s.Spaces().Create(ctx, sp))

	require.NoError(t, s.Spaces().AddMember(ctx, sp.ID, "u2"))
	assert.ErrorIs(t, s.Spaces().AddMember(ctx, sp.ID, "u2"), repository.ErrDuplicate)
	require.NoError(t, s.Spaces().RemoveMember(ctx, sp.ID, "u3"))

	got, _ := s.Spaces().GetByID(ctx, sp.ID)
	assert.Equal(t, []string{"u1", "u2"}, got.Members)
}

func TestComments_TopLevelPagingAndReplies(t *testing.T) {
	ctx := context.Background()
	s := New()
	sp := &entity.Space{Name: "go", CreatorID: "u1", Members: []string{"u1"}}
	require.NoError(t, s.Spaces().Create(ctx, sp))
	p := &entity.Post{Content: "hi", AuthorID: "u1", SpaceID: sp.ID}
	require.NoError(t, s.Posts().Create(ctx, p))

	var ids []string
	for i := 0; i < 5; i++ {
		c := &entity.Comment{Content: "c", AuthorID: "u1", PostID: p.ID}
		require.NoError(t, s.Comments().Create(ctx, c))
		ids = append(ids, c.ID)
	}
	reply := &entity.Comment{Content: "r", AuthorID: "u1", PostID: p.ID, ParentID: ids[0]}
	require.NoError(t, s.Comments().Create(ctx, reply))

	page, total, err := s.Comments().ListTopLevel(ctx, p.ID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, ids[2], page[0].ID)
	assert.Equal(t, ids[1], page[1].ID)

	got, _ := s.Posts().GetByID(ctx, p.ID)
	assert.Len(t, got.Comments, 6)

	require.NoError(t, s.Comments().Delete(ctx, ids[0]))
	_, err = s.Comments().GetByID(ctx, reply.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestNotifications_ExpiryAndUniqueness(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Now()
	req := &entity.Notification{
		Type: entity.NotificationMatchRequest, FromUser: "a", ToUser: "b",
		CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, s.Notifications().Create(ctx, req))

	dup := &entity.Notification{
		Type: entity.NotificationMatchRequest, FromUser: "a", ToUser: "b",
		CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}
	assert.ErrorIs(t, s.Notifications().Create(ctx, dup), repository.ErrDuplicate)

	later := now.Add(2 * time.Hour)
	_, err := s.Notifications().GetByID(ctx, req.ID, later)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = s.Notifications().FindRequest(ctx, "a", "b", later)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	list, err := s.Notifications().ListForUser(ctx, "b", later)
	require.NoError(t, err)
	assert.Empty(t, list)

	fresh := &entity.Notification{
		Type: entity.NotificationMatchRequest, FromUser: "a", ToUser: "b",
		CreatedAt: later, ExpiresAt: later.Add(time.Hour),
	}
	require.NoError(t, s.Notifications().Create(ctx, fresh))

	n, err := s.Notifications().DeleteExpired(ctx, later.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
