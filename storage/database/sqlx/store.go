package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/daeshin/schoolhub/core/assignment"
	"github.com/daeshin/schoolhub/core/attendance"
	"github.com/daeshin/schoolhub/core/board"
	"github.com/daeshin/schoolhub/storage/database"
)

// Store is the primary store, backed by PostgreSQL.
type Store struct {
	db *sqlx.DB
}

// interface compliance checks
var (
	_ attendance.Repository = (*Store)(nil)
	_ board.Repository      = (*Store)(nil)
	_ assignment.Repository = (*Store)(nil)
)

// NewStore returns a Store over db. A nil db yields a disconnected store whose calls fail with database.ErrUnavailable.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Name() string {
	return "primary"
}

func (s *Store) IsConnected() bool {
	return s.db != nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) check() error {
	if s.db == nil {
		return database.ErrUnavailable
	}
	return nil
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

// affectedOrNotFound returns notFound when res changed no row.
func affectedOrNotFound(res interface{ RowsAffected() (int64, error) }, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "counting affected rows")
	}
	if n == 0 {
		return notFound
	}
	return nil
}
