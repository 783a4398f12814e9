// Package fallback routes every store operation to the primary store and
// falls back to the local store once when the primary is down or fails.
package fallback

import (
	"context"

	"github.com/pkg/errors"

	"github.com/daeshin/schoolhub/core"
	"github.com/daeshin/schoolhub/core/assignment"
	"github.com/daeshin/schoolhub/core/attendance"
	"github.com/daeshin/schoolhub/core/board"
)

type Store interface {
	attendance.Repository
	board.Repository
	assignment.Repository

	Name() string
	IsConnected() bool
}

// Orchestrator implements Store over a primary and a local Store.
// Writes land on exactly one of them and are never mirrored.
type Orchestrator struct {
	primary Store
	local   Store
	logger  core.Logger
}

// interface compliance checks
var _ Store = (*Orchestrator)(nil)

func New(primary, local Store, logger core.Logger) (*Orchestrator, error) {
	if primary == nil {
		return nil, errors.New("fallback: primary store is required")
	}
	if local == nil {
		return nil, errors.New("fallback: local store is required")
	}
	if logger == nil {
		return nil, errors.New("fallback: logger is required")
	}
	return &Orchestrator{primary: primary, local: local, logger: logger}, nil
}

func (o *Orchestrator) Name() string {
	return "fallback"
}

// IsConnected reports whether at least one store can serve requests.
func (o *Orchestrator) IsConnected() bool {
	return o.primary.IsConnected() || o.local.IsConnected()
}

// Health reports the connectivity of each store, keyed by store name.
func (o *Orchestrator) Health() map[string]bool {
	return map[string]bool{
		o.primary.Name(): o.primary.IsConnected(),
		o.local.Name():   o.local.IsConnected(),
	}
}

// call runs fn on the primary store when it is connected, then on the local store if that did not succeed.
func call[T any](o *Orchestrator, op string, fn func(s Store) (T, error)) (T, error) {
	if o.primary.IsConnected() {
		res, err := fn(o.primary)
		recordOperation(o.primary.Name(), op, err)
		if err == nil {
			return res, nil
		}
		o.logger.Warn("primary store failed, falling back to local store", err, map[string]interface{}{"operation": op})
	} else {
		o.logger.Debug("primary store not connected, using local store", map[string]interface{}{"operation": op})
	}

	FallbacksTotal.WithLabelValues(op).Inc()
	res, err := fn(o.local)
	recordOperation(o.local.Name(), op, err)
	return res, err
}

// exec is call for operations without a result.
func exec(o *Orchestrator, op string, fn func(s Store) error) error {
	_, err := call(o, op, func(s Store) (struct{}, error) {
		return struct{}{}, fn(s)
	})
	return err
}

func (o *Orchestrator) AddAttendance(ctx context.Context, recs []attendance.Record) ([]attendance.Record, error) {
	return call(o, "add_attendance", func(s Store) ([]attendance.Record, error) {
		return s.AddAttendance(ctx, recs)
	})
}

func (o *Orchestrator) ListAttendanceByDate(ctx context.Context, date string) ([]attendance.Record, error) {
	return call(o, "list_attendance_by_date", func(s Store) ([]attendance.Record, error) {
		return s.ListAttendanceByDate(ctx, date)
	})
}

func (o *Orchestrator) ListAttendance(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	return call(o, "list_attendance", func(s Store) ([]attendance.Record, error) {
		return s.ListAttendance(ctx, filter)
	})
}

func (o *Orchestrator) DeleteAttendance(ctx context.Context, id int) error {
	return exec(o, "delete_attendance", func(s Store) error {
		return s.DeleteAttendance(ctx, id)
	})
}

func (o *Orchestrator) ClearAttendance(ctx context.Context) (int, error) {
	return call(o, "clear_attendance", func(s Store) (int, error) {
		return s.ClearAttendance(ctx)
	})
}

func (o *Orchestrator) CreateBoard(ctx context.Context, b board.Board) (int, error) {
	return call(o, "create_board", func(s Store) (int, error) {
		return s.CreateBoard(ctx, b)
	})
}

func (o *Orchestrator) ListBoards(ctx context.Context) ([]board.Board, error) {
	return call(o, "list_boards", func(s Store) ([]board.Board, error) {
		return s.ListBoards(ctx)
	})
}

func (o *Orchestrator) GetBoard(ctx context.Context, id int) (board.Board, error) {
	return call(o, "get_board", func(s Store) (board.Board, error) {
		return s.GetBoard(ctx, id)
	})
}

func (o *Orchestrator) JoinBoard(ctx context.Context, id int, m board.Member) error {
	return exec(o, "join_board", func(s Store) error {
		return s.JoinBoard(ctx, id, m)
	})
}

func (o *Orchestrator) DeleteBoard(ctx context.Context, id int) error {
	return exec(o, "delete_board", func(s Store) error {
		return s.DeleteBoard(ctx, id)
	})
}

func (o *Orchestrator) AddAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	return call(o, "add_assignment", func(s Store) (assignment.Assignment, error) {
		return s.AddAssignment(ctx, a)
	})
}

func (o *Orchestrator) ListAssignments(ctx context.Context) ([]assignment.Assignment, error) {
	return call(o, "list_assignments", func(s Store) ([]assignment.Assignment, error) {
		return s.ListAssignments(ctx)
	})
}

func (o *Orchestrator) DeleteAssignment(ctx context.Context, id int) error {
	return exec(o, "delete_assignment", func(s Store) error {
		return s.DeleteAssignment(ctx, id)
	})
}
