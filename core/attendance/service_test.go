package attendance_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daeshin/schoolhub/core"
	"github.com/daeshin/schoolhub/core/attendance"
	dummydb "github.com/daeshin/schoolhub/storage/database/dummy"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	svc := attendance.NewService(dummydb.Open())

	recs, err := svc.Add(ctx, attendance.NewBatch{
		Date: "2024-03-01", Periods: []int{1, 2},
		StudentName: "Kim", StudentCode: "101", StudentNumber: "5", Reason: "clinic",
	})
	require.NoError(t, err)
	require.Len(t, recs, 2)

	buckets, err := svc.ListByDate(ctx, "2024-03-01")
	require.NoError(t, err)
	assert.Len(t, buckets[1], 1)
	assert.Len(t, buckets[2], 1)
	assert.Empty(t, buckets[3])
	assert.Equal(t, "Kim", buckets[1][0].Name)

	stats, err := svc.Statistics(ctx, attendance.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalAbsences)
	assert.Equal(t, 2, stats.PeriodStats[1]+stats.PeriodStats[2])

	require.NoError(t, svc.Delete(ctx, recs[0].ID))
	assert.True(t, core.IsNotFound(svc.Delete(ctx, recs[0].ID)))

	buckets, err = svc.ListByDate(ctx, "2024-03-01")
	require.NoError(t, err)
	assert.Empty(t, buckets[1])
	assert.Len(t, buckets[2], 1)
}
