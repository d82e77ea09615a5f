package application

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
	"github.com/udconnect/udconnect-api/internal/infrastructure/memory"
	"github.com/udconnect/udconnect-api/pkg/apperror"
	"github.com/udconnect/udconnect-api/pkg/helpers"
)

type commentFixture struct {
	comments *CommentService
	store    *memory.Store
	spaceID  string
	postID   string
	author   string
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()
	ctx := context.Background()
	spaces, posts, store := newSpaceFixture()
	a := seedUser(t, store, "ana")
	sp, err := spaces.Create(ctx, a.ID, "Cine", "")
	require.NoError(t, err)
	p, err := posts.Create(ctx, a.ID, sp.Space.ID, "hola")
	require.NoError(t, err)

	svc := NewCommentService(store, helpers.NewNopLogger())
	svc.Now = newClock().Now
	return &commentFixture{comments: svc, store: store, spaceID: sp.Space.ID, postID: p.Post.ID, author: a.ID}
}

func TestComment_CreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newCommentFixture(t)

	_, err := f.comments.Create(ctx, f.author, f.postID, " ", "")
	requireKind(t, err, apperror.KindValidation, MsgCommentRequired)

	_, err = f.comments.Create(ctx, f.author, f.postID, strings.Repeat("a", 501), "")
	requireKind(t, err, apperror.KindValidation, MsgCommentTooLong)

	_, err = f.comments.Create(ctx, f.author, "missing", "hola", "")
	requireKind(t, err, apperror.KindNotFound, MsgPostNotFound)

	_, err = f.comments.Create(ctx, f.author, f.postID, "hola", "missing")
	requireKind(t, err, apperror.KindNotFound, MsgCommentNotFound)
}

func TestComment_ParentMustBelongToPost(t *testing.T) {
	ctx := context.Background()
	f := newCommentFixture(t)

	parent, err := f.comments.Create(ctx, f.author, f.postID, "primero", "")
	require.NoError(t, err)

	reply, err := f.comments.Create(ctx, f.author, f.postID, "respuesta", parent.Comment.ID)
	require.NoError(t, err)
	assert.Equal(t, parent.Comment.ID, reply.Comment.ParentID)
	assert.Equal(t, f.author, reply.Author.ID)

	other := &entity.Post{Content: "otro", AuthorID: f.author, SpaceID: f.spaceID}
	require.NoError(t, f.store.Posts().Create(ctx, other))
	_, err = f.comments.Create(ctx, f.author, other.ID, "cruzado", parent.Comment.ID)
	requireKind(t, err, apperror.KindValidation, MsgParentMismatch)
}

func TestComment_PaginationCountsTopLevelOnly(t *testing.T) {
	ctx := context.Background()
	f := newCommentFixture(t)

	var first string
	for i := 1; i <= 12; i++ {
		c, err := f.comments.Create(ctx, f.author, f.postID, fmt.Sprintf("c%d", i), "")
		require.NoError(t, err)
		if i == 1 {
			first = c.Comment.ID
		}
	}
	_, err := f.comments.Create(ctx, f.author, f.postID, "respuesta", first)
	require.NoError(t, err)

	page, err := f.comments.ListByPost(ctx, f.postID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultCommentPageSize, page.Limit)
	require.Len(t, page.Comments, 10)
	assert.Equal(t, "c12", page.Comments[0].Comment.Content)

	page, err = f.comments.ListByPost(ctx, f.postID, 10, 2)
	require.NoError(t, err)
	require.Len(t, page.Comments, 2)
	assert.Equal(t, "c1", page.Comments[1].Comment.Content)

	page, err = f.comments.ListByPost(ctx, f.postID, 500, 1)
	require.NoError(t, err)
	assert.Equal(t, MaxCommentPageSize, page.Limit)
}

func TestComment_HugePageIsEmpty(t *testing.T) {
	ctx := context.Background()
	f := newCommentFixture(t)
	_, err := f.comments.Create(ctx, f.author, f.postID, "único", "")
	require.NoError(t, err)

	page, err := f.comments.ListByPost(ctx, f.postID, 10, math.MaxInt)
	require.NoError(t, err)
	assert.Empty(t, page.Comments)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, math.MaxInt, page.Page)
}

func TestComment_DeletePermissions(t *testing.T) {
	ctx := context.Background()
	f := newCommentFixture(t)
	b := seedUser(t, f.store, "beto")
	c := seedUser(t, f.store, "caro")

	own, err := f.comments.Create(ctx, b.ID, f.postID, "de beto", "")
	require.NoError(t, err)
	other, err := f.comments.Create(ctx, b.ID, f.postID, "otro de beto", "")
	require.NoError(t, err)

	err = f.comments.Delete(ctx, c.ID, own.Comment.ID)
	requireKind(t, err, apperror.KindForbidden, MsgCommentForbidden)

	require.NoError(t, f.comments.Delete(ctx, b.ID, own.Comment.ID))
	// the post author may moderate comments on their post
	require.NoError(t, f.comments.Delete(ctx, f.author, other.Comment.ID))

	err = f.comments.Delete(ctx, b.ID, own.Comment.ID)
	requireKind(t, err, apperror.KindNotFound, MsgCommentNotFound)
}

func TestComment_ToggleLike(t *testing.T) {
	ctx := context.Background()
	f := newCommentFixture(t)

	c, err := f.comments.Create(ctx, f.author, f.postID, "hola", "")
	require.NoError(t, err)

	res, err := f.comments.ToggleLike(ctx, f.author, c.Comment.ID)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Len(t, res.Likes, 1)

	res, err = f.comments.ToggleLike(ctx, f.author, c.Comment.ID)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Empty(t, res.Likes)
}
