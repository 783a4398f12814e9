package board

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/daeshin/schoolhub/core"
)

var (
	ErrNotFound      = core.NewNotFoundError("board")
	ErrFull          = core.NewConflictError("recruitment is closed", http.StatusBadRequest)
	ErrAlreadyJoined = core.NewConflictError("already joined this board")
)

type (
	Repository interface {
		// CreateBoard stores b along with its creator as first member and returns the new ID.
		CreateBoard(ctx context.Context, b Board) (int, error)
		// ListBoards returns every board, newest first, with members ordered by join time.
		ListBoards(ctx context.Context) ([]Board, error)
		GetBoard(ctx context.Context, id int) (Board, error)
		// JoinBoard adds m to board id. It fails with ErrNotFound, ErrFull or ErrAlreadyJoined.
		JoinBoard(ctx context.Context, id int, m Member) error
		// DeleteBoard removes board id and its memberships.
		DeleteBoard(ctx context.Context, id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new board. The creator joins it straight away.
func (svc *Service) Create(ctx context.Context, nb NewBoard) (int, error) {
	now := core.NowFunc().UTC()
	b := Board{
		Title:       nb.Title,
		Description: nb.Description,
		MaxMembers:  nb.MaxMembers,
		CreatorName: nb.CreatorName,
		CreatorCode: nb.CreatorCode,
		CreatedAt:   now,
		Members:     []Member{{Name: nb.CreatorName, Code: nb.CreatorCode, JoinedAt: now}},
	}
	id, err := svc.repo.CreateBoard(ctx, b)
	if err != nil {
		return 0, errors.Wrap(err, "creating board")
	}
	return id, nil
}

func (svc *Service) List(ctx context.Context) ([]Summary, error) {
	boards, err := svc.repo.ListBoards(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing boards")
	}
	sums := make([]Summary, 0, len(boards))
	for _, b := range boards {
		sums = append(sums, NewSummary(b))
	}
	return sums, nil
}

func (svc *Service) Join(ctx context.Context, jr JoinRequest) error {
	m := Member{Name: jr.MemberName, Code: jr.MemberCode, JoinedAt: core.NowFunc().UTC()}
	return svc.repo.JoinBoard(ctx, jr.BoardID, m)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteBoard(ctx, id)
}
