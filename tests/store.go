package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daeshin/schoolhub/core/assignment"
	"github.com/daeshin/schoolhub/core/attendance"
	"github.com/daeshin/schoolhub/core/board"
)

// Store is what every store implementation provides.
type Store interface {
	attendance.Repository
	board.Repository
	assignment.Repository
}

// RunStoreTests checks the behaviour shared by every Store. newStore must return an empty store.
func RunStoreTests(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("attendance", func(t *testing.T) { testAttendance(t, newStore(t)) })
	t.Run("board", func(t *testing.T) { testBoard(t, newStore(t)) })
	t.Run("assignment", func(t *testing.T) { testAssignment(t, newStore(t)) })
}

func testAttendance(t *testing.T, s Store) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	kim := attendance.NewBatch{
		Date: "2024-03-01", Periods: []int{2, 1},
		StudentName: "Kim", StudentCode: "101", StudentNumber: "5", Reason: "clinic",
	}
	lee := attendance.NewBatch{
		Date: "2024-03-04", Periods: []int{3},
		StudentName: "Lee", StudentCode: "102", StudentNumber: "6", Reason: "academy",
	}

	added, err := s.AddAttendance(ctx, kim.Records(now))
	require.NoError(t, err)
	require.Len(t, added, 2)
	for _, r := range added {
		assert.NotZero(t, r.ID)
		assert.Equal(t, "Kim", r.StudentName)
	}
	assert.NotEqual(t, added[0].ID, added[1].ID)

	_, err = s.AddAttendance(ctx, lee.Records(now))
	require.NoError(t, err)

	recs, err := s.ListAttendanceByDate(ctx, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 1, recs[0].Period)
	assert.Equal(t, 2, recs[1].Period)

	recs, err = s.ListAttendanceByDate(ctx, "2024-03-02")
	require.NoError(t, err)
	assert.Empty(t, recs)

	recs, err = s.ListAttendance(ctx, attendance.Filter{})
	require.NoError(t, err)
	assert.Len(t, recs, 3)

	recs, err = s.ListAttendance(ctx, attendance.Filter{StartDate: "2024-03-02"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Lee", recs[0].StudentName)

	recs, err = s.ListAttendance(ctx, attendance.Filter{StartDate: "2024-03-01", EndDate: "2024-03-01"})
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	require.NoError(t, s.DeleteAttendance(ctx, added[0].ID))
	err = s.DeleteAttendance(ctx, added[0].ID)
	assert.Equal(t, attendance.ErrNotFound, errors.Cause(err))

	n, err := s.ClearAttendance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	recs, err = s.ListAttendance(ctx, attendance.Filter{})
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func newBoard(title string, max int, createdAt time.Time) board.Board {
	return board.Board{
		Title:       title,
		Description: title + " club",
		MaxMembers:  max,
		CreatorName: "Kim",
		CreatorCode: "101",
		CreatedAt:   createdAt,
		Members:     []board.Member{{Name: "Kim", Code: "101", JoinedAt: createdAt}},
	}
}

func testBoard(t *testing.T, s Store) {
	ctx := context.Background()
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	chessID, err := s.CreateBoard(ctx, newBoard("chess", 2, t0))
	require.NoError(t, err)
	codingID, err := s.CreateBoard(ctx, newBoard("coding", 3, t0.Add(time.Hour)))
	require.NoError(t, err)
	assert.NotEqual(t, chessID, codingID)

	boards, err := s.ListBoards(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, "coding", boards[0].Title)
	assert.Equal(t, "chess", boards[1].Title)
	require.Len(t, boards[1].Members, 1)
	assert.Equal(t, "Kim", boards[1].Members[0].Name)

	join := func(id int, name string) error {
		return s.JoinBoard(ctx, id, board.Member{Name: name, Code: "1xx", JoinedAt: t0.Add(2 * time.Hour)})
	}
	assert.Equal(t, board.ErrAlreadyJoined, errors.Cause(join(chessID, "Kim")))
	require.NoError(t, join(chessID, "Lee"))
	assert.Equal(t, board.ErrFull, errors.Cause(join(chessID, "Park")))
	assert.Equal(t, board.ErrNotFound, errors.Cause(join(chessID+codingID+100, "Park")))

	b, err := s.GetBoard(ctx, chessID)
	require.NoError(t, err)
	require.Len(t, b.Members, 2)
	assert.Equal(t, []string{"Kim", "Lee"}, memberNames(b))
	assert.True(t, b.IsFull())

	require.NoError(t, s.DeleteBoard(ctx, chessID))
	_, err = s.GetBoard(ctx, chessID)
	assert.Equal(t, board.ErrNotFound, errors.Cause(err))
	assert.Equal(t, board.ErrNotFound, errors.Cause(s.DeleteBoard(ctx, chessID)))

	boards, err = s.ListBoards(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, codingID, boards[0].ID)
}

func memberNames(b board.Board) []string {
	return board.NewSummary(b).Members
}

func testAssignment(t *testing.T, s Store) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	var ids []int
	for _, deadline := range []string{"2024-03-20", "2024-03-05", "2024-03-12"} {
		a, err := s.AddAssignment(ctx, assignment.Assignment{
			Subject:     "math",
			Title:       "report " + deadline,
			Deadline:    deadline,
			Description: "chapter 3",
			CreatorName: "Kim",
			CreatorCode: "101",
			CreatedAt:   now,
		})
		require.NoError(t, err)
		assert.NotZero(t, a.ID)
		ids = append(ids, a.ID)
	}

	as, err := s.ListAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, as, 3)
	assert.Equal(t, "2024-03-05", as[0].Deadline)
	assert.Equal(t, "2024-03-12", as[1].Deadline)
	assert.Equal(t, "2024-03-20", as[2].Deadline)

	require.NoError(t, s.DeleteAssignment(ctx, ids[0]))
	assert.Equal(t, assignment.ErrNotFound, errors.Cause(s.DeleteAssignment(ctx, ids[0])))

	as, err = s.ListAssignments(ctx)
	require.NoError(t, err)
	assert.Len(t, as, 2)
}
