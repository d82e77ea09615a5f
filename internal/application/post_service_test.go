package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udconnect/udconnect-api/pkg/apperror"
)

func TestPost_MembersOnly(t *testing.T) {
	ctx := context.Background()
	spaces, posts, store := newSpaceFixture()
	a := seedUser(t, store, "ana")
	b := seedUser(t, store, "beto")

	sp, err := spaces.Create(ctx, a.ID, "Cine", "")
	require.NoError(t, err)

	_, err = posts.Create(ctx, b.ID, sp.Space.ID, "hola")
	requireKind(t, err, apperror.KindForbidden, MsgNotSpaceMember)
	_, err = posts.Create(ctx, b.ID, sp.Space.ID, strings.Repeat("a", 301))
	requireKind(t, err, apperror.KindForbidden, MsgNotSpaceMember)

	list, err := posts.ListBySpace(ctx, sp.Space.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = spaces.Join(ctx, b.ID, sp.Space.ID)
	require.NoError(t, err)
	p, err := posts.Create(ctx, b.ID, sp.Space.ID, "hola")
	require.NoError(t, err)
	assert.Equal(t, b.ID, p.Author.ID)
	assert.Equal(t, sp.Space.ID, p.Space.ID)
}

func TestPost_ContentLimits(t *testing.T) {
	ctx := context.Background()
	spaces, posts, store := newSpaceFixture()
	a := seedUser(t, store, "ana")
	sp, err := spaces.Create(ctx, a.ID, "Cine", "")
	require.NoError(t, err)

	_, err = posts.Create(ctx, a.ID, sp.Space.ID, "  ")
	requireKind(t, err, apperror.KindValidation, MsgPostContentRequired)

	_, err = posts.Create(ctx, a.ID, sp.Space.ID, strings.Repeat("a", 301))
	requireKind(t, err, apperror.KindValidation, MsgPostTooLong)

	_, err = posts.Create(ctx, a.ID, sp.Space.ID, strings.Repeat("ñ", 300))
	assert.NoError(t, err)

	_, err = posts.Create(ctx, a.ID, "missing", "hola")
	requireKind(t, err, apperror.KindNotFound, MsgSpaceNotFound)
}

func TestPost_ToggleLike(t *testing.T) {
	ctx := context.Background()
	spaces, posts, store := newSpaceFixture()
	a := seedUser(t, store, "ana")
	b := seedUser(t, store, "beto")
	sp, err := spaces.Create(ctx, a.ID, "Cine", "")
	require.NoError(t, err)
	p, err := posts.Create(ctx, a.ID, sp.Space.ID, "hola")
	require.NoError(t, err)

	res, err := posts.ToggleLike(ctx, b.ID, p.Post.ID)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, []string{b.ID}, res.Likes)

	res, err = posts.ToggleLike(ctx, b.ID, p.Post.ID)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Empty(t, res.Likes)

	_, err = posts.ToggleLike(ctx, b.ID, "missing")
	requireKind(t, err, apperror.KindNotFound, MsgPostNotFound)
}

func TestPost_DeleteByAuthorOnly(t *testing.T) {
	ctx := context.Background()
	spaces, posts, store := newSpaceFixture()
	a := seedUser(t, store, "ana")
	b := seedUser(t, store, "beto")
	sp, err := spaces.Create(ctx, a.ID, "Cine", "")
	require.NoError(t, err)
	p, err := posts.Create(ctx, a.ID, sp.Space.ID, "hola")
	require.NoError(t, err)

	err = posts.Delete(ctx, b.ID, p.Post.ID)
	requireKind(t, err, apperror.KindForbidden, MsgPostDeleteForbidden)

	require.NoError(t, posts.Delete(ctx, a.ID, p.Post.ID))
	err = posts.Delete(ctx, a.ID, p.Post.ID)
	requireKind(t, err, apperror.KindNotFound, MsgPostNotFound)
}

func TestPost_RecentOrdering(t *testing.T) {
	ctx := context.Background()
	spaces, posts, store := newSpaceFixture()
	a := seedUser(t, store, "ana")
	sp, err := spaces.Create(ctx, a.ID, "Cine", "")
	require.NoError(t, err)

	for i := 0; i < 12; i++ {
		_, err := posts.Create(ctx, a.ID, sp.Space.ID, strings.Repeat("x", i+1))
		require.NoError(t, err)
	}

	recent, err := posts.Recent(ctx)
	require.NoError(t, err)
	require.Len(t, recent, RecentPostsLimit)
	assert.Equal(t, strings.Repeat("x", 12), recent[0].Post.Content)

	inSpace, err := posts.RecentInSpace(ctx, sp.Space.ID, 3)
	require.NoError(t, err)
	assert.Len(t, inSpace, 3)

	mine, err := posts.ListByAuthor(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 12)

	_, err = posts.RecentInSpace(ctx, "missing", 0)
	requireKind(t, err, apperror.KindNotFound, MsgSpaceNotFound)
}
