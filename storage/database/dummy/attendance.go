package dummydb

import (
	"context"
	"sort"

	"github.com/daeshin/schoolhub/core/attendance"
)

func (db *DB) AddAttendance(_ context.Context, recs []attendance.Record) ([]attendance.Record, error) {
	if err := db.fail(); err != nil {
		return nil, err
	}
	t := db.attendance
	t.Lock()
	defer t.Unlock()

	added := make([]attendance.Record, 0, len(recs))
	for _, r := range recs {
		t.pk++
		r.ID = t.pk
		rec := r
		t.table[rec.ID] = &rec
		added = append(added, rec)
	}
	return added, nil
}

func (t *attendanceTable) query(keep func(r attendance.Record) bool) []attendance.Record {
	recs := make([]attendance.Record, 0)
	for _, r := range t.table {
		if keep(*r) {
			recs = append(recs, *r)
		}
	}
	return recs
}

func (db *DB) ListAttendanceByDate(_ context.Context, date string) ([]attendance.Record, error) {
	if err := db.fail(); err != nil {
		return nil, err
	}
	t := db.attendance
	t.RLock()
	defer t.RUnlock()

	recs := t.query(func(r attendance.Record) bool { return r.Date == date })
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		if a.StudentName != b.StudentName {
			return a.StudentName < b.StudentName
		}
		return a.ID < b.ID
	})
	return recs, nil
}

func (db *DB) ListAttendance(_ context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	if err := db.fail(); err != nil {
		return nil, err
	}
	t := db.attendance
	t.RLock()
	defer t.RUnlock()

	recs := t.query(func(r attendance.Record) bool {
		return (filter.StartDate == "" || r.Date >= filter.StartDate) &&
			(filter.EndDate == "" || r.Date <= filter.EndDate)
	})
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		return a.ID < b.ID
	})
	return recs, nil
}

func (db *DB) DeleteAttendance(_ context.Context, id int) error {
	if err := db.fail(); err != nil {
		return err
	}
	t := db.attendance
	t.Lock()
	defer t.Unlock()

	if _, ok := t.table[id]; !ok {
		return attendance.ErrNotFound
	}
	delete(t.table, id)
	return nil
}

func (db *DB) ClearAttendance(_ context.Context) (int, error) {
	if err := db.fail(); err != nil {
		return 0, err
	}
	t := db.attendance
	t.Lock()
	defer t.Unlock()

	n := len(t.table)
	t.table = make(map[int]*attendance.Record)
	return n, nil
}
