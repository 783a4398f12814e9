package meal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const lunchCode = "2"

type neisResponse struct {
	MealServiceDietInfo []struct {
		Row []neisRow `json:"row"`
	} `json:"mealServiceDietInfo"`
}

type neisRow struct {
	DishNames string  `json:"DDISH_NM"`
	Calories  *string `json:"CAL_INFO"`
}

// fromAPI asks the NEIS meal service for every day of the week, concurrently.
// Per-day failures become placeholder days; only a malformed base URL fails the whole week.
func (svc *Service) fromAPI(ctx context.Context, days []time.Time, today time.Time) ([]Day, error) {
	base, err := url.Parse(svc.conf.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parsing meal API URL")
	}

	week := make([]Day, len(days))
	g, gctx := errgroup.WithContext(ctx)
	for i, date := range days {
		i, date := i, date
		g.Go(func() error {
			week[i] = svc.fetchDay(gctx, *base, i, date, today)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return week, nil
}

func (svc *Service) fetchDay(ctx context.Context, u url.URL, idx int, date, today time.Time) Day {
	q := u.Query()
	q.Set("Key", svc.conf.APIKey)
	q.Set("Type", "json")
	q.Set("pIndex", "1")
	q.Set("pSize", "100")
	q.Set("ATPT_OFCDC_SC_CODE", svc.conf.OfficeCode)
	q.Set("SD_SCHUL_CODE", svc.conf.SchoolCode)
	q.Set("MLSV_YMD", date.Format("20060102"))
	q.Set("MMEAL_SC_CODE", lunchCode)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		svc.logger.Warn("building meal API request", errors.WithStack(err))
		return placeholderDay(idx, date, today, UnavailableText)
	}
	resp, err := svc.client.Do(req)
	if err != nil {
		svc.logger.Warn("calling meal API", errors.WithStack(err))
		return placeholderDay(idx, date, today, NetworkErrorText)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return placeholderDay(idx, date, today, UnavailableText)
	}

	var data neisResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		svc.logger.Warn("decoding meal API response", errors.WithStack(err))
		return placeholderDay(idx, date, today, UnavailableText)
	}
	// [0] holds the head, [1] the rows
	if len(data.MealServiceDietInfo) < 2 || len(data.MealServiceDietInfo[1].Row) == 0 {
		return placeholderDay(idx, date, today, NoDataText)
	}

	row := data.MealServiceDietInfo[1].Row[0]
	d := newDay(idx, date, today)
	d.Menu = CleanMenu(row.DishNames)
	d.Calories = NoCaloriesText
	if row.Calories != nil {
		d.Calories = strings.TrimSpace(*row.Calories)
	}
	return d
}
