package dummydb

import (
	"context"
	"sort"

	"github.com/daeshin/schoolhub/core/assignment"
)

func (db *DB) AddAssignment(_ context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	if err := db.fail(); err != nil {
		return assignment.Assignment{}, err
	}
	t := db.assignment
	t.Lock()
	defer t.Unlock()

	t.pk++
	a.ID = t.pk
	c := a
	t.table[a.ID] = &c
	return a, nil
}

func (db *DB) ListAssignments(_ context.Context) ([]assignment.Assignment, error) {
	if err := db.fail(); err != nil {
		return nil, err
	}
	t := db.assignment
	t.RLock()
	defer t.RUnlock()

	as := make([]assignment.Assignment, 0, len(t.table))
	for _, a := range t.table {
		as = append(as, *a)
	}
	sort.Slice(as, func(i, j int) bool {
		if as[i].Deadline != as[j].Deadline {
			return as[i].Deadline < as[j].Deadline
		}
		return as[i].ID < as[j].ID
	})
	return as, nil
}

func (db *DB) DeleteAssignment(_ context.Context, id int) error {
	if err := db.fail(); err != nil {
		return err
	}
	t := db.assignment
	t.Lock()
	defer t.Unlock()

	if _, ok := t.table[id]; !ok {
		return assignment.ErrNotFound
	}
	delete(t.table, id)
	return nil
}
