package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rec(date string, period int, name, reason string) Record {
	return Record{Date: date, Period: period, StudentName: name, StudentCode: "c-" + name, Reason: reason}
}

func TestAggregate_empty(t *testing.T) {
	stats := Aggregate(nil)

	assert.Equal(t, 0, stats.TotalAbsences)
	assert.Equal(t, 0, stats.UniqueAbsenceSum)
	assert.Equal(t, float64(0), stats.UniqueAbsenceAvg)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0}, stats.PeriodStats)
	assert.Empty(t, stats.DailyStats)
	assert.Empty(t, stats.StudentDetails)
}

func TestAggregate(t *testing.T) {
	recs := []Record{
		rec("2024-03-04", 1, "Kim", "clinic"),
		rec("2024-03-04", 1, "Lee", "academy"),
		rec("2024-03-04", 2, "Kim", "clinic"),
		rec("2024-03-04", 3, "Kim", "club"),
		rec("2024-03-05", 1, "Kim", "academy"),
		rec("2024-03-05", 2, "Kim", "club"),
		rec("2024-03-11", 3, "Park", "clinic"),
	}

	stats := Aggregate(recs)

	// one student-day per (date, student)
	assert.Equal(t, 4, stats.TotalAbsences)
	assert.Equal(t, 4, stats.UniqueAbsenceSum)
	assert.Equal(t, map[string]int{"2024-03-04": 2, "2024-03-05": 1, "2024-03-11": 1}, stats.DailyStats)
	assert.Equal(t, map[string][]string{
		"2024-03-04": {"Kim", "Lee"},
		"2024-03-05": {"Kim"},
		"2024-03-11": {"Park"},
	}, stats.DailyUniqueStudents)
	assert.Equal(t, 1.33, stats.UniqueAbsenceAvg)

	// raw rows per period
	assert.Equal(t, map[int]int{1: 3, 2: 2, 3: 2}, stats.PeriodStats)

	// each distinct reason once per student-day
	assert.Equal(t, map[string]int{"clinic": 2, "academy": 2, "club": 2}, stats.ReasonStats)

	assert.Equal(t, map[string]int{"Kim": 2, "Lee": 1, "Park": 1}, stats.StudentStats)
	assert.Equal(t, map[string]int{"2024-W10": 3, "2024-W11": 1}, stats.WeeklyStats)

	kim := stats.StudentDetails["Kim"]
	assert.Equal(t, 2, kim.Total)
	assert.Equal(t, map[int]int{1: 2, 2: 2, 3: 1}, kim.Periods)
	// 03-04: clinic x2 > club; 03-05: academy ties club, academy seen first
	assert.Equal(t, map[string]int{"clinic": 1, "academy": 1}, kim.Reasons)
	// clinic x2, club x2, academy x1: clinic seen first
	assert.Equal(t, "clinic", kim.DominantReason)

	park := stats.StudentDetails["Park"]
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 1}, park.Periods)
	assert.Equal(t, "clinic", park.DominantReason)
}

func TestAggregate_average(t *testing.T) {
	tests := []struct {
		name string
		recs []Record
		want float64
	}{
		{name: "single date", recs: []Record{rec("2024-03-01", 1, "A", "x"), rec("2024-03-01", 2, "B", "x")}, want: 2},
		{
			name: "two dates",
			recs: []Record{rec("2024-03-01", 1, "A", "x"), rec("2024-03-01", 1, "B", "x"), rec("2024-03-02", 1, "A", "x")},
			want: 1.5,
		},
		{
			name: "rounded",
			recs: []Record{
				rec("2024-03-01", 1, "A", "x"), rec("2024-03-01", 1, "B", "x"),
				rec("2024-03-02", 1, "A", "x"), rec("2024-03-02", 1, "B", "x"),
				rec("2024-03-03", 1, "A", "x"),
			},
			want: 1.67,
		},
		{
			name: "half rounds to even",
			recs: []Record{
				rec("2024-03-01", 1, "A", "x"), rec("2024-03-01", 1, "B", "x"),
				rec("2024-03-04", 1, "A", "x"), rec("2024-03-05", 1, "A", "x"),
				rec("2024-03-06", 1, "A", "x"), rec("2024-03-07", 1, "A", "x"),
				rec("2024-03-08", 1, "A", "x"), rec("2024-03-11", 1, "A", "x"),
				rec("2024-03-12", 1, "A", "x"),
			},
			want: 1.12, // 9/8
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Aggregate(tt.recs).UniqueAbsenceAvg)
		})
	}
}

func Test_mostCommon(t *testing.T) {
	assert.Equal(t, noReason, mostCommon(nil))
	assert.Equal(t, "b", mostCommon([]string{"a", "b", "b"}))
	assert.Equal(t, "a", mostCommon([]string{"a", "b"}))
	assert.Equal(t, "b", mostCommon([]string{"b", "a", "a", "b"}))
}
