package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udconnect/udconnect-api/internal/infrastructure/memory"
	"github.com/udconnect/udconnect-api/pkg/apperror"
	"github.com/udconnect/udconnect-api/pkg/helpers"
)

func newSpaceFixture() (*SpaceService, *PostService, *memory.Store) {
	store := memory.New()
	log := helpers.NewNopLogger()
	clk := newClock()
	spaces := NewSpaceService(store, log)
	spaces.Now = clk.Now
	posts := NewPostService(store, log)
	posts.Now = clk.Now
	return spaces, posts, store
}

func TestSpace_CreatorIsFirstMember(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newSpaceFixture()
	a := seedUser(t, store, "ana")

	d, err := svc.Create(ctx, a.ID, "  Ingeniería  ", "grupo de estudio")
	require.NoError(t, err)
	assert.Equal(t, "Ingeniería", d.Space.Name)
	assert.Equal(t, a.ID, d.Creator.ID)
	require.Len(t, d.Members, 1)
	assert.Equal(t, a.ID, d.Members[0].ID)

	_, err = svc.Create(ctx, a.ID, "   ", "")
	requireKind(t, err, apperror.KindValidation, MsgSpaceNameRequired)
}

func TestSpace_JoinAndLeave(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newSpaceFixture()
	a := seedUser(t, store, "ana")
	b := seedUser(t, store, "beto")

	d, err := svc.Create(ctx, a.ID, "Cine", "")
	require.NoError(t, err)
	id := d.Space.ID

	d, err = svc.Join(ctx, b.ID, id)
	require.NoError(t, err)
	assert.Len(t, d.Members, 2)

	_, err = svc.Join(ctx, b.ID, id)
	requireKind(t, err, apperror.KindConflict, MsgAlreadySpaceMember)

	d, err = svc.Leave(ctx, b.ID, id)
	require.NoError(t, err)
	assert.Len(t, d.Members, 1)

	// leaving twice is harmless
	_, err = svc.Leave(ctx, b.ID, id)
	require.NoError(t, err)

	_, err = svc.Leave(ctx, a.ID, id)
	requireKind(t, err, apperror.KindForbidden, MsgCreatorCannotLeave)

	_, err = svc.Join(ctx, b.ID, "missing")
	requireKind(t, err, apperror.KindNotFound, MsgSpaceNotFound)
}

func TestSpace_OnlyCreatorUpdatesAndDeletes(t *testing.T) {
	ctx := context.Background()
	svc, posts, store := newSpaceFixture()
	a := seedUser(t, store, "ana")
	b := seedUser(t, store, "beto")

	d, err := svc.Create(ctx, a.ID, "Cine", "películas")
	require.NoError(t, err)
	id := d.Space.ID

	_, err = svc.Update(ctx, b.ID, id, "Teatro", "")
	requireKind(t, err, apperror.KindForbidden, MsgSpaceUpdateForbidden)

	d, err = svc.Update(ctx, a.ID, id, "Cine club", "")
	require.NoError(t, err)
	assert.Equal(t, "Cine club", d.Space.Name)
	assert.Equal(t, "películas", d.Space.Description)

	p, err := posts.Create(ctx, a.ID, id, "función el viernes")
	require.NoError(t, err)

	err = svc.Delete(ctx, b.ID, id)
	requireKind(t, err, apperror.KindForbidden, MsgSpaceDeleteForbidden)

	require.NoError(t, svc.Delete(ctx, a.ID, id))
	_, err = svc.Get(ctx, id)
	requireKind(t, err, apperror.KindNotFound, MsgSpaceNotFound)
	_, err = posts.Get(ctx, p.Post.ID)
	requireKind(t, err, apperror.KindNotFound, MsgPostNotFound)
}

func TestSpace_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newSpaceFixture()
	a := seedUser(t, store, "ana")

	for _, name := range []string{"uno", "dos", "tres"} {
		_, err := svc.Create(ctx, a.ID, name, "")
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "tres", list[0].Space.Name)
	assert.Equal(t, "uno", list[2].Space.Name)

	members, err := svc.Members(ctx, list[0].Space.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, a.ID, members[0].ID)
}
