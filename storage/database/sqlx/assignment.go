package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/daeshin/schoolhub/core/assignment"
)

type suhangRow struct {
	ID          int       `db:"id"`
	Subject     string    `db:"subject"`
	Title       string    `db:"title"`
	Deadline    string    `db:"deadline"`
	Description string    `db:"description"`
	CreatorName string    `db:"creator_name"`
	CreatorCode string    `db:"creator_code"`
	CreatedAt   null.Time `db:"created_at"`
}

func (s *Store) AddAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	if err := s.check(); err != nil {
		return assignment.Assignment{}, err
	}
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO suhang (subject, title, deadline, description, creator_name, creator_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7::timestamptz, NOW())) RETURNING id`,
		a.Subject, a.Title, a.Deadline, a.Description, a.CreatorName, a.CreatorCode, null.NewTime(a.CreatedAt, !a.CreatedAt.IsZero()),
	).Scan(&a.ID)
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	return a, nil
}

func (s *Store) ListAssignments(ctx context.Context) ([]assignment.Assignment, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	var rows []suhangRow
	q := "SELECT id, subject, title, deadline, description, creator_name, creator_code, created_at FROM suhang ORDER BY deadline ASC, id ASC"
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "selecting assignments")
	}
	as := make([]assignment.Assignment, 0, len(rows))
	for _, r := range rows {
		as = append(as, assignment.Assignment{
			ID:          r.ID,
			Subject:     r.Subject,
			Title:       r.Title,
			Deadline:    r.Deadline,
			Description: r.Description,
			CreatorName: r.CreatorName,
			CreatorCode: r.CreatorCode,
			CreatedAt:   r.CreatedAt.Time,
		})
	}
	return as, nil
}

func (s *Store) DeleteAssignment(ctx context.Context, id int) error {
	if err := s.check(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM suhang WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	return affectedOrNotFound(res, assignment.ErrNotFound)
}
