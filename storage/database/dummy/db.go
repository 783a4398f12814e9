package dummydb

import (
	"sync"

	"github.com/daeshin/schoolhub/core/assignment"
	"github.com/daeshin/schoolhub/core/attendance"
	"github.com/daeshin/schoolhub/core/board"
	"github.com/daeshin/schoolhub/core/user"
)

type (
	// DB is an in-memory store. It can be switched off or made to fail to simulate an outage.
	DB struct {
		name string

		mu        sync.RWMutex
		connected bool
		failure   error

		attendance *attendanceTable
		board      *boardTable
		assignment *assignmentTable
		user       *userTable
	}

	attendanceTable struct {
		sync.RWMutex
		pk    int
		table map[int]*attendance.Record
	}

	boardTable struct {
		sync.RWMutex
		pk    int
		table map[int]*board.Board
	}

	assignmentTable struct {
		sync.RWMutex
		pk    int
		table map[int]*assignment.Assignment
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}
)

// interface compliance checks
var (
	_ attendance.Repository = (*DB)(nil)
	_ board.Repository      = (*DB)(nil)
	_ assignment.Repository = (*DB)(nil)
	_ user.Repository       = (*DB)(nil)
)

func Open(name ...string) *DB {
	n := "memory"
	if len(name) > 0 {
		n = name[0]
	}
	return &DB{
		name:       n,
		connected:  true,
		attendance: &attendanceTable{table: make(map[int]*attendance.Record)},
		board:      &boardTable{table: make(map[int]*board.Board)},
		assignment: &assignmentTable{table: make(map[int]*assignment.Assignment)},
		user:       &userTable{table: make(map[string]*user.User)},
	}
}

func (db *DB) Name() string {
	return db.name
}

func (db *DB) IsConnected() bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.connected
}

func (db *DB) SetConnected(connected bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.connected = connected
}

// FailWith makes every following call return err. A nil err restores normal behaviour.
func (db *DB) FailWith(err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.failure = err
}

func (db *DB) fail() error {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.failure
}
