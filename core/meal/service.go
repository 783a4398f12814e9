package meal

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/daeshin/schoolhub/core"
)

type Service struct {
	conf   core.MealConfig
	client *http.Client
	logger core.Logger
}

func NewService(conf core.MealConfig, logger core.Logger) *Service {
	return &Service{
		conf:   conf,
		client: &http.Client{Timeout: conf.Timeout},
		logger: logger,
	}
}

// APIEnabled reports whether a real NEIS API key is configured.
func (svc *Service) APIEnabled() bool {
	key := strings.TrimSpace(svc.conf.APIKey)
	return key != "" && key != core.MealAPIKeyPlaceholder
}

// Week returns the lunch menus of this week, Monday to Friday.
// The NEIS API is used when a key is configured, the bundled CSV otherwise or when the API cannot be queried at all.
func (svc *Service) Week(ctx context.Context) ([]Day, error) {
	today := core.NowFunc()
	days := WeekDays(today)

	if svc.APIEnabled() {
		week, err := svc.fromAPI(ctx, days, today)
		if err == nil {
			return week, nil
		}
		svc.logger.Warn("meal API unusable, falling back to CSV", err)
	}

	week, err := svc.fromCSV(days, today)
	if err != nil {
		return nil, errors.Wrap(err, "reading meals from CSV")
	}
	return week, nil
}
