package dummydb

import (
	"context"

	"github.com/daeshin/schoolhub/core/user"
)

func (db *DB) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	if err := db.fail(); err != nil {
		return user.User{}, err
	}
	t := db.user
	t.Lock()
	defer t.Unlock()

	if _, ok := t.table[usr.ID]; ok {
		return user.User{}, user.ErrIDExists
	}
	c := usr
	t.table[usr.ID] = &c
	return usr, nil
}

func (db *DB) GetUser(_ context.Context, id string) (user.User, error) {
	if err := db.fail(); err != nil {
		return user.User{}, err
	}
	t := db.user
	t.RLock()
	defer t.RUnlock()

	if usr, ok := t.table[id]; ok {
		return *usr, nil
	}
	return user.User{}, user.ErrNotFound
}
