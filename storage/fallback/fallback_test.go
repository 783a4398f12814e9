package fallback_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daeshin/schoolhub/core/assignment"
	"github.com/daeshin/schoolhub/core/attendance"
	"github.com/daeshin/schoolhub/core/board"
	"github.com/daeshin/schoolhub/storage/database"
	dummydb "github.com/daeshin/schoolhub/storage/database/dummy"
	"github.com/daeshin/schoolhub/storage/fallback"
	tests "github.com/daeshin/schoolhub/tests"
)

func setup(t *testing.T) (*fallback.Orchestrator, *dummydb.DB, *dummydb.DB) {
	primary := dummydb.Open("primary")
	local := dummydb.Open("local")
	o, err := fallback.New(primary, local, tests.NopLogger{})
	require.NoError(t, err)
	return o, primary, local
}

func newAssignment(deadline string) assignment.Assignment {
	return assignment.Assignment{
		Subject:     "science",
		Title:       "lab report",
		Deadline:    deadline,
		Description: "titration",
		CreatorName: "Kim",
		CreatorCode: "101",
		CreatedAt:   time.Now().UTC(),
	}
}

func TestNew(t *testing.T) {
	store := dummydb.Open()
	tsts := []struct {
		name           string
		primary, local fallback.Store
		wantErr        bool
	}{
		{name: "both stores", primary: store, local: store},
		{name: "no primary", local: store, wantErr: true},
		{name: "no local", primary: store, wantErr: true},
	}
	for _, tt := range tsts {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fallback.New(tt.primary, tt.local, tests.NopLogger{})
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestPrimaryServes(t *testing.T) {
	o, primary, local := setup(t)
	ctx := context.Background()

	_, err := o.AddAssignment(ctx, newAssignment("2024-03-05"))
	require.NoError(t, err)

	got, _ := primary.ListAssignments(ctx)
	assert.Len(t, got, 1)
	got, _ = local.ListAssignments(ctx)
	assert.Empty(t, got, "writes must not be mirrored")
}

func TestFallbackWhenDisconnected(t *testing.T) {
	o, primary, local := setup(t)
	ctx := context.Background()
	primary.SetConnected(false)
	before := testutil.ToFloat64(fallback.FallbacksTotal.WithLabelValues("create_board"))

	id, err := o.CreateBoard(ctx, board.Board{Title: "chess", MaxMembers: 2})
	require.NoError(t, err)

	_, err = local.GetBoard(ctx, id)
	assert.NoError(t, err)
	boards, _ := primary.ListBoards(ctx)
	assert.Empty(t, boards)
	assert.Equal(t, before+1, testutil.ToFloat64(fallback.FallbacksTotal.WithLabelValues("create_board")))
}

func TestFallbackOnError(t *testing.T) {
	o, primary, local := setup(t)
	ctx := context.Background()
	primary.FailWith(database.ErrUnavailable)

	recs, err := o.AddAttendance(ctx, []attendance.Record{{Date: "2024-03-01", Period: 1, StudentName: "Kim"}})
	require.NoError(t, err)
	require.Len(t, recs, 1)

	got, err := local.ListAttendanceByDate(ctx, "2024-03-01")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = o.ListAttendanceByDate(ctx, "2024-03-01")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestLocalResultWins(t *testing.T) {
	o, primary, local := setup(t)
	ctx := context.Background()

	// only the local store holds record 1, so a delete that misses on the primary still succeeds
	_, err := local.AddAttendance(ctx, []attendance.Record{{Date: "2024-03-01", Period: 1}})
	require.NoError(t, err)
	assert.NoError(t, o.DeleteAttendance(ctx, 1))

	err = o.DeleteAttendance(ctx, 1)
	assert.Equal(t, attendance.ErrNotFound, errors.Cause(err))

	_, err = primary.AddAssignment(ctx, newAssignment("2024-03-05"))
	require.NoError(t, err)
	as, err := o.ListAssignments(ctx)
	require.NoError(t, err)
	assert.Len(t, as, 1, "a successful primary call is returned as is")
}

func TestBothFail(t *testing.T) {
	o, primary, local := setup(t)
	primaryErr, localErr := errors.New("primary down"), errors.New("disk full")
	primary.FailWith(primaryErr)
	local.FailWith(localErr)

	_, err := o.ListBoards(context.Background())
	assert.Equal(t, localErr, err)
	assert.Equal(t, localErr, o.JoinBoard(context.Background(), 1, board.Member{Name: "Kim"}))
}

func TestHealth(t *testing.T) {
	o, primary, _ := setup(t)
	assert.Equal(t, map[string]bool{"primary": true, "local": true}, o.Health())
	assert.True(t, o.IsConnected())

	primary.SetConnected(false)
	assert.Equal(t, map[string]bool{"primary": false, "local": true}, o.Health())
	assert.True(t, o.IsConnected())
}
