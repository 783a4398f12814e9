package gormrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/daeshin/schoolhub/core/assignment"
)

func (s *Store) AddAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	row := suhang{
		Subject:     a.Subject,
		Title:       a.Title,
		Deadline:    a.Deadline,
		Description: a.Description,
		CreatorName: a.CreatorName,
		CreatorCode: a.CreatorCode,
		CreatedAt:   a.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	a.ID = row.ID
	a.CreatedAt = row.CreatedAt
	return a, nil
}

func (s *Store) ListAssignments(ctx context.Context) ([]assignment.Assignment, error) {
	var rows []suhang
	if err := s.db.WithContext(ctx).Order("deadline ASC, id ASC").Find(&rows).Error; err != nil {
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
			CreatedAt:   r.CreatedAt,
		})
	}
	return as, nil
}

func (s *Store) DeleteAssignment(ctx context.Context, id int) error {
	res := s.db.WithContext(ctx).Delete(&suhang{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "deleting assignment")
	}
	if res.RowsAffected == 0 {
		return assignment.ErrNotFound
	}
	return nil
}
