package attendance

import (
	"fmt"
	"math"

	"github.com/daeshin/schoolhub/core"
)

// noReason stands in for the dominant reason of a student-day that recorded none.
const noReason = "-"

type (
	// Statistics summarises attendance records. A student absent for several periods of a date counts once for that date.
	Statistics struct {
		TotalAbsences       int                      `json:"total_absences"`
		DailyStats          map[string]int           `json:"daily_stats"`
		WeeklyStats         map[string]int           `json:"weekly_stats"`
		ReasonStats         map[string]int           `json:"reason_stats"`
		StudentStats        map[string]int           `json:"student_stats"`
		PeriodStats         map[int]int              `json:"period_stats"`
		StudentDetails      map[string]StudentDetail `json:"student_details"`
		DailyUniqueStudents map[string][]string      `json:"daily_unique_students"`
		UniqueAbsenceSum    int                      `json:"unique_absence_sum"`
		UniqueAbsenceAvg    float64                  `json:"unique_absence_avg"`
	}

	StudentDetail struct {
		Total          int            `json:"total"`
		Periods        map[int]int    `json:"periods"`
		Reasons        map[string]int `json:"reasons"` // dominant reason of each day
		DominantReason string         `json:"dominant_reason"`
	}

	// PerDateStats holds the students absent on a date, in first-seen order.
	PerDateStats struct {
		Date     string
		Students []string
	}

	// PerStudentStats accumulates one student's absences across dates.
	PerStudentStats struct {
		Name       string
		Days       int
		Periods    map[int]int
		DayReasons map[string]int
		Reasons    []string // every recorded reason, in record order
	}

	studentDay struct {
		date    string
		student string
	}

	dayGroup struct {
		key     studentDay
		periods []int
		reasons []string
	}
)

func newPeriodCounts() map[int]int {
	counts := make(map[int]int, len(Periods))
	for _, p := range Periods {
		counts[p] = 0
	}
	return counts
}

// Aggregate computes Statistics over recs in a single pass.
// recs are expected ordered by date then period; first-seen order breaks ties.
func Aggregate(recs []Record) Statistics {
	stats := Statistics{
		DailyStats:          make(map[string]int),
		WeeklyStats:         make(map[string]int),
		ReasonStats:         make(map[string]int),
		StudentStats:        make(map[string]int),
		PeriodStats:         newPeriodCounts(),
		StudentDetails:      make(map[string]StudentDetail),
		DailyUniqueStudents: make(map[string][]string),
	}

	// group by (date, student)
	groups := make([]*dayGroup, 0)
	byKey := make(map[studentDay]*dayGroup)
	for _, r := range recs {
		key := studentDay{date: r.Date, student: r.StudentName}
		g, ok := byKey[key]
		if !ok {
			g = &dayGroup{key: key}
			byKey[key] = g
			groups = append(groups, g)
		}
		if !containsInt(g.periods, r.Period) {
			g.periods = append(g.periods, r.Period)
		}
		g.reasons = append(g.reasons, r.Reason)
		stats.PeriodStats[r.Period]++
	}

	dates := make([]*PerDateStats, 0)
	byDate := make(map[string]*PerDateStats)
	students := make([]*PerStudentStats, 0)
	byStudent := make(map[string]*PerStudentStats)

	for _, g := range groups {
		ds, ok := byDate[g.key.date]
		if !ok {
			ds = &PerDateStats{Date: g.key.date}
			byDate[g.key.date] = ds
			dates = append(dates, ds)
		}
		ds.Students = append(ds.Students, g.key.student)

		ss, ok := byStudent[g.key.student]
		if !ok {
			ss = &PerStudentStats{
				Name:       g.key.student,
				Periods:    newPeriodCounts(),
				DayReasons: make(map[string]int),
			}
			byStudent[g.key.student] = ss
			students = append(students, ss)
		}
		ss.Days++
		for _, p := range g.periods {
			ss.Periods[p]++
		}
		ss.DayReasons[mostCommon(g.reasons)]++
		ss.Reasons = append(ss.Reasons, g.reasons...)

		for _, r := range distinct(g.reasons) {
			stats.ReasonStats[r]++
		}
		if week, ok := isoWeek(g.key.date); ok {
			stats.WeeklyStats[week]++
		}
	}

	for _, ds := range dates {
		stats.DailyStats[ds.Date] = len(ds.Students)
		stats.DailyUniqueStudents[ds.Date] = ds.Students
		stats.UniqueAbsenceSum += len(ds.Students)
	}
	for _, ss := range students {
		stats.StudentStats[ss.Name] = ss.Days
		stats.StudentDetails[ss.Name] = StudentDetail{
			Total:          ss.Days,
			Periods:        ss.Periods,
			Reasons:        ss.DayReasons,
			DominantReason: mostCommon(ss.Reasons),
		}
	}

	stats.TotalAbsences = stats.UniqueAbsenceSum
	if len(dates) > 0 {
		stats.UniqueAbsenceAvg = round2(float64(stats.UniqueAbsenceSum) / float64(len(dates)))
	}
	return stats
}

// mostCommon returns the most frequent value of vals; ties go to the value seen first.
func mostCommon(vals []string) string {
	if len(vals) == 0 {
		return noReason
	}
	counts := make(map[string]int, len(vals))
	var top string
	for _, v := range vals {
		counts[v]++
	}
	best := 0
	for _, v := range vals {
		if counts[v] > best {
			best = counts[v]
			top = v
		}
	}
	return top
}

func distinct(vals []string) []string {
	seen := make(map[string]struct{}, len(vals))
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func containsInt(vals []int, n int) bool {
	for _, v := range vals {
		if v == n {
			return true
		}
	}
	return false
}

func isoWeek(date string) (string, bool) {
	t, err := core.ParseDate(date)
	if err != nil {
		return "", false
	}
	y, w := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", y, w), true
}

func round2(f float64) float64 {
	return math.RoundToEven(f*100) / 100
}
