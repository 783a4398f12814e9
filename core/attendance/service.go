package attendance

import (
	"context"

	"github.com/pkg/errors"

	"github.com/daeshin/schoolhub/core"
)

var ErrNotFound = core.NewNotFoundError("attendance record")

type (
	Repository interface {
		// AddAttendance stores every record of recs and returns them with their IDs set.
		AddAttendance(ctx context.Context, recs []Record) ([]Record, error)
		// ListAttendanceByDate returns the records of date ordered by period then student name.
		ListAttendanceByDate(ctx context.Context, date string) ([]Record, error)
		// ListAttendance returns the records within filter ordered by date then period.
		ListAttendance(ctx context.Context, filter Filter) ([]Record, error)
		DeleteAttendance(ctx context.Context, id int) error
		// ClearAttendance removes every record and returns how many were removed.
		ClearAttendance(ctx context.Context) (int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add records one absence per period of nb.
func (svc *Service) Add(ctx context.Context, nb NewBatch) ([]Record, error) {
	recs, err := svc.repo.AddAttendance(ctx, nb.Records(core.NowFunc().UTC()))
	if err != nil {
		return nil, errors.Wrap(err, "adding attendance records")
	}
	return recs, nil
}

func (svc *Service) ListByDate(ctx context.Context, date string) (Buckets, error) {
	recs, err := svc.repo.ListAttendanceByDate(ctx, date)
	if err != nil {
		return nil, errors.Wrap(err, "listing attendance records")
	}
	return NewBuckets(recs), nil
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteAttendance(ctx, id)
}

func (svc *Service) Statistics(ctx context.Context, filter Filter) (Statistics, error) {
	recs, err := svc.repo.ListAttendance(ctx, filter)
	if err != nil {
		return Statistics{}, errors.Wrap(err, "listing attendance records")
	}
	return Aggregate(recs), nil
}
