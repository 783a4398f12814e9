package gormrepos

import (
	"gorm.io/gorm"

	"github.com/daeshin/schoolhub/core/assignment"
	"github.com/daeshin/schoolhub/core/attendance"
	"github.com/daeshin/schoolhub/core/board"
	"github.com/daeshin/schoolhub/core/user"
)

// Store is the local store, backed by an SQLite file. It is always considered reachable.
type Store struct {
	db *gorm.DB
}

// interface compliance checks
var (
	_ attendance.Repository = (*Store)(nil)
	_ board.Repository      = (*Store)(nil)
	_ assignment.Repository = (*Store)(nil)
	_ user.Repository       = (*Store)(nil)
)

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Name() string {
	return "local"
}

func (s *Store) IsConnected() bool {
	return true
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
