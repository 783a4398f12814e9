package sqlxrepos

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/daeshin/schoolhub/core/attendance"
)

const yajaColumns = "id, date, period, student_name, student_code, student_number, reason, created_at"

type yajaRow struct {
	ID            int       `db:"id"`
	Date          string    `db:"date"`
	Period        int       `db:"period"`
	StudentName   string    `db:"student_name"`
	StudentCode   string    `db:"student_code"`
	StudentNumber string    `db:"student_number"`
	Reason        string    `db:"reason"`
	CreatedAt     null.Time `db:"created_at"` // NULL in rows imported from older stores
}

func (r yajaRow) record() attendance.Record {
	return attendance.Record{
		ID:            r.ID,
		Date:          r.Date,
		Period:        r.Period,
		StudentName:   r.StudentName,
		StudentCode:   r.StudentCode,
		StudentNumber: r.StudentNumber,
		Reason:        r.Reason,
		CreatedAt:     r.CreatedAt.Time,
	}
}

func yajaRecords(rows []yajaRow) []attendance.Record {
	recs := make([]attendance.Record, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, r.record())
	}
	return recs
}

func (s *Store) AddAttendance(ctx context.Context, recs []attendance.Record) ([]attendance.Record, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	q := `INSERT INTO yaja_students (date, period, student_name, student_code, student_number, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7::timestamptz, NOW())) RETURNING id`

	added := make([]attendance.Record, 0, len(recs))
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, r := range recs {
			createdAt := null.NewTime(r.CreatedAt, !r.CreatedAt.IsZero())
			err := tx.QueryRowxContext(ctx, q,
				r.Date, r.Period, r.StudentName, r.StudentCode, r.StudentNumber, r.Reason, createdAt,
			).Scan(&r.ID)
			if err != nil {
				return errors.Wrap(err, "inserting attendance record")
			}
			added = append(added, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func (s *Store) ListAttendanceByDate(ctx context.Context, date string) ([]attendance.Record, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	var rows []yajaRow
	q := "SELECT " + yajaColumns + " FROM yaja_students WHERE date = $1 ORDER BY period, student_name, id"
	if err := s.db.SelectContext(ctx, &rows, q, date); err != nil {
		return nil, errors.Wrap(err, "selecting attendance records")
	}
	return yajaRecords(rows), nil
}

func (s *Store) ListAttendance(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	var (
		conds []string
		args  []interface{}
	)
	if filter.StartDate != "" {
		args = append(args, filter.StartDate)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.EndDate != "" {
		args = append(args, filter.EndDate)
		conds = append(conds, fmt.Sprintf("date <= $%d", len(args)))
	}
	q := "SELECT " + yajaColumns + " FROM yaja_students"
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY date, period, id"

	var rows []yajaRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting attendance records")
	}
	return yajaRecords(rows), nil
}

func (s *Store) DeleteAttendance(ctx context.Context, id int) error {
	if err := s.check(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM yaja_students WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "deleting attendance record")
	}
	return affectedOrNotFound(res, attendance.ErrNotFound)
}

func (s *Store) ClearAttendance(ctx context.Context) (int, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM yaja_students")
	if err != nil {
		return 0, errors.Wrap(err, "clearing attendance records")
	}
	n, err := res.RowsAffected()
	return int(n), errors.Wrap(err, "counting affected rows")
}
