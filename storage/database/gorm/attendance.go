package gormrepos

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/daeshin/schoolhub/core/attendance"
)

func (r yajaStudent) record() attendance.Record {
	return attendance.Record{
		ID:            r.ID,
		Date:          r.Date,
		Period:        r.Period,
		StudentName:   r.StudentName,
		StudentCode:   r.StudentCode,
		StudentNumber: r.StudentNumber,
		Reason:        r.Reason,
		CreatedAt:     r.CreatedAt,
	}
}

func yajaRecords(rows []yajaStudent) []attendance.Record {
	recs := make([]attendance.Record, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, r.record())
	}
	return recs
}

func (s *Store) AddAttendance(ctx context.Context, recs []attendance.Record) ([]attendance.Record, error) {
	if len(recs) == 0 {
		return []attendance.Record{}, nil
	}
	rows := make([]yajaStudent, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, yajaStudent{
			Date:          r.Date,
			Period:        r.Period,
			StudentName:   r.StudentName,
			StudentCode:   r.StudentCode,
			StudentNumber: r.StudentNumber,
			Reason:        r.Reason,
			CreatedAt:     r.CreatedAt,
		})
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "inserting attendance records")
	}
	return yajaRecords(rows), nil
}

func (s *Store) ListAttendanceByDate(ctx context.Context, date string) ([]attendance.Record, error) {
	var rows []yajaStudent
	err := s.db.WithContext(ctx).
		Where("date = ?", date).
		Order("period, student_name, id").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "selecting attendance records")
	}
	return yajaRecords(rows), nil
}

func (s *Store) ListAttendance(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	q := s.db.WithContext(ctx).Model(&yajaStudent{})
	if filter.StartDate != "" {
		q = q.Where("date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("date <= ?", filter.EndDate)
	}
	var rows []yajaStudent
	if err := q.Order("date, period, id").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "selecting attendance records")
	}
	return yajaRecords(rows), nil
}

func (s *Store) DeleteAttendance(ctx context.Context, id int) error {
	res := s.db.WithContext(ctx).Delete(&yajaStudent{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "deleting attendance record")
	}
	if res.RowsAffected == 0 {
		return attendance.ErrNotFound
	}
	return nil
}

func (s *Store) ClearAttendance(ctx context.Context) (int, error) {
	res := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&yajaStudent{})
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "clearing attendance records")
	}
	return int(res.RowsAffected), nil
}
