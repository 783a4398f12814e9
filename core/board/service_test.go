package board_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daeshin/schoolhub/core"
	"github.com/daeshin/schoolhub/core/board"
	dummydb "github.com/daeshin/schoolhub/storage/database/dummy"
)

func freezeTime(t *testing.T, now time.Time) {
	orig := core.NowFunc
	core.NowFunc = func() time.Time { return now }
	t.Cleanup(func() { core.NowFunc = orig })
}

func TestService(t *testing.T) {
	ctx := context.Background()
	svc := board.NewService(dummydb.Open())
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	freezeTime(t, now)

	id, err := svc.Create(ctx, board.NewBoard{Title: "chess", Description: "games", MaxMembers: 2, CreatorName: "Kim", CreatorCode: "101"})
	require.NoError(t, err)

	sums, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.Equal(t, board.Summary{
		ID: id, Title: "chess", Description: "games", MaxMembers: 2,
		CreatorName: "Kim", CurrentMembers: 1, Members: []string{"Kim"},
	}, sums[0])

	require.NoError(t, svc.Join(ctx, board.JoinRequest{BoardID: id, MemberName: "Lee", MemberCode: "102"}))
	err = svc.Join(ctx, board.JoinRequest{BoardID: id, MemberName: "Park", MemberCode: "103"})
	assert.Equal(t, board.ErrFull, errors.Cause(err))

	sums, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sums[0].CurrentMembers)
	assert.Equal(t, []string{"Kim", "Lee"}, sums[0].Members)

	require.NoError(t, svc.Delete(ctx, id))
	assert.True(t, core.IsNotFound(svc.Delete(ctx, id)))

	sums, err = svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, sums)
	assert.Empty(t, sums)
}
