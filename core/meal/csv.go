package meal

import (
	"encoding/csv"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/daeshin/schoolhub/core"
)

// CSV columns
const (
	colDate     = "급식일자"
	colMealCode = "식사코드"
	colDishes   = "요리명"
	colCalories = "칼로리정보"
)

var ErrCSVNotFound = core.NewNotFoundError("meal CSV file")

type csvRow struct {
	dishes   string
	calories string
}

// fromCSV builds the week from the bundled meal calendar.
func (svc *Service) fromCSV(days []time.Time, today time.Time) ([]Day, error) {
	f, err := os.Open(svc.conf.CSVPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCSVNotFound
		}
		return nil, errors.Wrap(err, "opening meal CSV")
	}
	defer func() { _ = f.Close() }()

	lunches, err := readLunches(f, days[0], days[len(days)-1])
	if err != nil {
		return nil, err
	}

	week := make([]Day, 0, len(days))
	for i, date := range days {
		row, ok := lunches[date.Format("20060102")]
		if !ok {
			week = append(week, placeholderDay(i, date, today, NoDataText))
			continue
		}
		d := newDay(i, date, today)
		d.Menu = CleanMenu(row.dishes)
		d.Calories = row.calories
		if d.Calories == "" || strings.EqualFold(d.Calories, "nan") {
			d.Calories = NoCaloriesText
		}
		week = append(week, d)
	}
	return week, nil
}

// readLunches returns the lunch rows dated within [from, to], keyed by YYYYMMDD. The first row of a date wins.
func readLunches(r io.Reader, from, to time.Time) (map[string]csvRow, error) {
	rdr := csv.NewReader(r)
	rdr.FieldsPerRecord = -1

	header, err := rdr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading meal CSV header")
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range []string{colDate, colMealCode, colDishes} {
		if _, ok := cols[name]; !ok {
			return nil, errors.Errorf("meal CSV: missing column %q", name)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	fromKey, toKey := from.Format("20060102"), to.Format("20060102")
	lunches := make(map[string]csvRow)
	for {
		rec, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading meal CSV")
		}

		date := field(rec, colDate)
		if _, err := time.Parse("20060102", date); err != nil {
			continue
		}
		if date < fromKey || date > toKey || !isLunch(field(rec, colMealCode)) {
			continue
		}
		if _, ok := lunches[date]; ok {
			continue
		}
		lunches[date] = csvRow{dishes: field(rec, colDishes), calories: field(rec, colCalories)}
	}
	return lunches, nil
}

// isLunch accepts "2" as well as spreadsheet exports like "2.0".
func isLunch(code string) bool {
	return code == lunchCode || strings.TrimSuffix(code, ".0") == lunchCode
}
