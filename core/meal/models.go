package meal

import (
	"regexp"
	"strings"
	"time"
)

// placeholders shown instead of a menu
const (
	NoDataText       = "급식 정보가 없습니다."
	UnavailableText  = "급식 정보를 가져올 수 없습니다."
	NetworkErrorText = "네트워크 오류로 급식 정보를 가져올 수 없습니다."
	NoCaloriesText   = "칼로리 정보 없음"
)

var (
	weekdayLabels = []string{"월", "화", "수", "목", "금"}

	// allergy annotations, e.g. "김치(9.13)"
	allergyRegex = regexp.MustCompile(`\s*\([0-9.,\s]+\)`)
)

// Day is the lunch served on one school day.
type Day struct {
	Day      string   `json:"day"`
	Date     string   `json:"date"` // MM/DD
	Menu     []string `json:"menu"`
	Calories string   `json:"calories"`
	IsToday  bool     `json:"isToday"`
}

func newDay(idx int, date, today time.Time) Day {
	return Day{
		Day:     weekdayLabels[idx],
		Date:    date.Format("01/02"),
		IsToday: sameDate(date, today),
	}
}

func placeholderDay(idx int, date, today time.Time, text string) Day {
	d := newDay(idx, date, today)
	d.Menu = []string{text}
	return d
}

// CleanMenu turns a raw dish list into menu items: one item per line, allergy annotations removed.
func CleanMenu(raw string) []string {
	items := make([]string, 0)
	for _, line := range strings.Split(strings.ReplaceAll(raw, "<br/>", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if item := allergyRegex.ReplaceAllString(line, ""); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// WeekDays returns midnight of Monday to Friday of the week holding now.
func WeekDays(now time.Time) []time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	offset := (int(midnight.Weekday()) + 6) % 7 // Monday = 0
	monday := midnight.AddDate(0, 0, -offset)

	days := make([]time.Time, len(weekdayLabels))
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
