package dummydb

import (
	"context"
	"sort"

	"github.com/daeshin/schoolhub/core/board"
)

func copyBoard(b *board.Board) board.Board {
	c := *b
	c.Members = append([]board.Member{}, b.Members...)
	return c
}

func (db *DB) CreateBoard(_ context.Context, b board.Board) (int, error) {
	if err := db.fail(); err != nil {
		return 0, err
	}
	t := db.board
	t.Lock()
	defer t.Unlock()

	t.pk++
	b.ID = t.pk
	c := copyBoard(&b)
	t.table[b.ID] = &c
	return b.ID, nil
}

func (db *DB) ListBoards(_ context.Context) ([]board.Board, error) {
	if err := db.fail(); err != nil {
		return nil, err
	}
	t := db.board
	t.RLock()
	defer t.RUnlock()

	boards := make([]board.Board, 0, len(t.table))
	for _, b := range t.table {
		boards = append(boards, copyBoard(b))
	}
	sort.Slice(boards, func(i, j int) bool {
		a, b := boards[i], boards[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return boards, nil
}

func (db *DB) GetBoard(_ context.Context, id int) (board.Board, error) {
	if err := db.fail(); err != nil {
		return board.Board{}, err
	}
	t := db.board
	t.RLock()
	defer t.RUnlock()

	if b, ok := t.table[id]; ok {
		return copyBoard(b), nil
	}
	return board.Board{}, board.ErrNotFound
}

func (db *DB) JoinBoard(_ context.Context, id int, m board.Member) error {
	if err := db.fail(); err != nil {
		return err
	}
	t := db.board
	t.Lock()
	defer t.Unlock()

	b, ok := t.table[id]
	if !ok {
		return board.ErrNotFound
	}
	if err := b.CanJoin(m.Name); err != nil {
		return err
	}
	b.Members = append(b.Members, m)
	return nil
}

func (db *DB) DeleteBoard(_ context.Context, id int) error {
	if err := db.fail(); err != nil {
		return err
	}
	t := db.board
	t.Lock()
	defer t.Unlock()

	if _, ok := t.table[id]; !ok {
		return board.ErrNotFound
	}
	delete(t.table, id)
	return nil
}
