package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udconnect/udconnect-api/internal/domain/repository"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// Store vends repositories bound to a pool, or to a transaction inside WithTx.
type Store struct {
	pool *pgxpool.Pool
	db   DBTX
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, db: pool}
}

func (s *Store) Users() repository.UserRepository                 { return &UserRepository{db: s.db} }
func (s *Store) Spaces() repository.SpaceRepository               { return &SpaceRepository{db: s.db} }
func (s *Store) Posts() repository.PostRepository                 { return &PostRepository{db: s.db} }
func (s *Store) Comments() repository.CommentRepository           { return &CommentRepository{db: s.db} }
func (s *Store) Notifications() repository.NotificationRepository { return &NotificationRepository{db: s.db} }

// WithTx begins a transaction, runs fn with a transactional Store, and then
// commits on success or rolls back on error/panic. Panics are rethrown.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) (err error) {
	if s.pool == nil {
		return fn(ctx, s)
	}
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			return
		}
		err = tx.Commit(ctx)
	}()

	err = fn(ctx, &Store{db: tx})
	return err
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidText         = "22P02" // e.g. a malformed uuid
)

// mapErr translates driver errors into repository sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return repository.ErrDuplicate
		case pgForeignKeyViolation, pgInvalidText:
			return repository.ErrNotFound
		}
	}
	return err
}

func mustAffect(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// nolimit turns a non-positive limit into SQL NULL, which LIMIT treats as "all".
func nolimit(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}

var _ repository.Store = (*Store)(nil)
