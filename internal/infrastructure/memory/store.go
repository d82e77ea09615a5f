// Package memory keeps the whole data set in process memory. It satisfies the
// same repository contracts as the Postgres store and is used by tests and by
// STORE_DRIVER=memory.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
	"github.com/udconnect/udconnect-api/internal/domain/repository"
)

type state struct {
	users         map[string]*entity.User
	spaces        map[string]*entity.Space
	posts         map[string]*entity.Post
	comments      map[string]*entity.Comment
	notifications map[string]*entity.Notification

	// insertion order, oldest first
	userOrder         []string
	spaceOrder        []string
	postOrder         []string
	commentOrder      []string
	notificationOrder []string
}

func newState() *state {
	return &state{
		users:         map[string]*entity.User{},
		spaces:        map[string]*entity.Space{},
		posts:         map[string]*entity.Post{},
		comments:      map[string]*entity.Comment{},
		notifications: map[string]*entity.Notification{},
	}
}

func (st *state) clone() *state {
	c := &state{
		users:             make(map[string]*entity.User, len(st.users)),
		spaces:            make(map[string]*entity.Space, len(st.spaces)),
		posts:             make(map[string]*entity.Post, len(st.posts)),
		comments:          make(map[string]*entity.Comment, len(st.comments)),
		notifications:     make(map[string]*entity.Notification, len(st.notifications)),
		userOrder:         slices.Clone(st.userOrder),
		spaceOrder:        slices.Clone(st.spaceOrder),
		postOrder:         slices.Clone(st.postOrder),
		commentOrder:      slices.Clone(st.commentOrder),
		notificationOrder: slices.Clone(st.notificationOrder),
	}
	for k, v := range st.users {
		c.users[k] = cloneUser(v)
	}
	for k, v := range st.spaces {
		c.spaces[k] = cloneSpace(v)
	}
	for k, v := range st.posts {
		c.posts[k] = clonePost(v)
	}
	for k, v := range st.comments {
		c.comments[k] = cloneComment(v)
	}
	for k, v := range st.notifications {
		n := *v
		c.notifications[k] = &n
	}
	return c
}

// Store is safe for concurrent use. Transactions hold the write lock for
// their whole duration and work on a private copy that replaces the live
// state only when fn succeeds.
type Store struct {
	mu *sync.RWMutex
	st *state
	tx bool
}

func New() *Store {
	return &Store{mu: &sync.RWMutex{}, st: newState()}
}

func (s *Store) Users() repository.UserRepository                 { return userRepo{s} }
func (s *Store) Spaces() repository.SpaceRepository               { return spaceRepo{s} }
func (s *Store) Posts() repository.PostRepository                 { return postRepo{s} }
func (s *Store) Comments() repository.CommentRepository           { return commentRepo{s} }
func (s *Store) Notifications() repository.NotificationRepository { return notificationRepo{s} }

func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	if s.tx {
		return fn(ctx, s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	txs := &Store{mu: s.mu, st: s.st.clone(), tx: true}
	if err := fn(ctx, txs); err != nil {
		return err
	}
	s.st = txs.st
	return nil
}

func (s *Store) view(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.tx {
		return fn(s.st)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

// update callers validate before mutating so a failed call leaves state intact.
func (s *Store) update(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.tx {
		return fn(s.st)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.Matches = slices.Clone(u.Matches)
	return &c
}

func cloneSpace(sp *entity.Space) *entity.Space {
	c := *sp
	c.Members = slices.Clone(sp.Members)
	return &c
}

func clonePost(p *entity.Post) *entity.Post {
	c := *p
	c.Likes = slices.Clone(p.Likes)
	c.Comments = slices.Clone(p.Comments)
	return &c
}

func cloneComment(cm *entity.Comment) *entity.Comment {
	c := *cm
	c.Likes = slices.Clone(cm.Likes)
	return &c
}

func without(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(v string) bool { return v == id })
}

// newestFirst walks order backwards, calling keep for each id until limit matches.
func newestFirst(order []string, limit int, keep func(id string) bool) {
	n := 0
	for i := len(order) - 1; i >= 0; i-- {
		if limit > 0 && n >= limit {
			return
		}
		if keep(order[i]) {
			n++
		}
	}
}

var _ repository.Store = (*Store)(nil)
