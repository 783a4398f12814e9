package assignment

import (
	"context"

	"github.com/pkg/errors"

	"github.com/daeshin/schoolhub/core"
)

var ErrNotFound = core.NewNotFoundError("assignment")

type (
	Repository interface {
		AddAssignment(ctx context.Context, a Assignment) (Assignment, error)
		// ListAssignments returns every assignment ordered by deadline, earliest first.
		ListAssignments(ctx context.Context) ([]Assignment, error)
		DeleteAssignment(ctx context.Context, id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Add(ctx context.Context, na NewAssignment) (Assignment, error) {
	a := Assignment{
		Subject:     na.Subject,
		Title:       na.Title,
		Deadline:    na.Deadline,
		Description: na.Description,
		CreatorName: na.CreatorName,
		CreatorCode: na.CreatorCode,
		CreatedAt:   core.NowFunc().UTC(),
	}
	a, err := svc.repo.AddAssignment(ctx, a)
	if err != nil {
		return Assignment{}, errors.Wrap(err, "adding assignment")
	}
	return a, nil
}

func (svc *Service) List(ctx context.Context) ([]Assignment, error) {
	as, err := svc.repo.ListAssignments(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing assignments")
	}
	if as == nil {
		as = []Assignment{}
	}
	return as, nil
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteAssignment(ctx, id)
}
