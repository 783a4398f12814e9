package meal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daeshin/schoolhub/core"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

// Wednesday
var wednesday = time.Date(2024, 12, 4, 14, 30, 0, 0, time.Local)

func freezeTime(t *testing.T, now time.Time) {
	orig := core.NowFunc
	core.NowFunc = func() time.Time { return now }
	t.Cleanup(func() { core.NowFunc = orig })
}

func writeCSV(t *testing.T, lines ...string) string {
	path := filepath.Join(t.TempDir(), "food_calender.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestCleanMenu(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{raw: "", want: []string{}},
		{raw: "쌀밥<br/>김치찌개 (5.9.13)<br/>배추김치(9.13)", want: []string{"쌀밥", "김치찌개", "배추김치"}},
		{raw: " 우유 (2) \n\n 사과", want: []string{"우유", "사과"}},
		{raw: "떡볶이(매운맛)", want: []string{"떡볶이(매운맛)"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanMenu(tt.raw), tt.raw)
	}
}

func TestWeekDays(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
	}{
		{name: "monday", now: time.Date(2024, 12, 2, 8, 0, 0, 0, time.Local)},
		{name: "wednesday", now: wednesday},
		{name: "sunday", now: time.Date(2024, 12, 8, 23, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := WeekDays(tt.now)
			require.Len(t, days, 5)
			assert.Equal(t, time.Date(2024, 12, 2, 0, 0, 0, 0, time.Local), days[0])
			assert.Equal(t, time.Date(2024, 12, 6, 0, 0, 0, 0, time.Local), days[4])
			assert.Equal(t, time.Monday, days[0].Weekday())
		})
	}
}

func TestService_Week_csv(t *testing.T) {
	freezeTime(t, wednesday)
	path := writeCSV(t,
		"급식일자,식사코드,요리명,칼로리정보",
		"20241129,2,지난주메뉴,700 Kcal",
		"20241202,1,아침메뉴,500 Kcal",
		`20241202,2,"쌀밥<br/>된장국 (5.6)",812.3 Kcal`,
		"20241202,2,중복메뉴,1 Kcal",
		"20241204,2.0,비빔밥(1.5),",
		"20241209,2,다음주메뉴,700 Kcal",
	)

	for _, key := range []string{"", core.MealAPIKeyPlaceholder} {
		svc := NewService(core.MealConfig{APIKey: key, CSVPath: path}, nopLogger{})
		assert.False(t, svc.APIEnabled())

		week, err := svc.Week(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []Day{
			{Day: "월", Date: "12/02", Menu: []string{"쌀밥", "된장국"}, Calories: "812.3 Kcal"},
			{Day: "화", Date: "12/03", Menu: []string{NoDataText}},
			{Day: "수", Date: "12/04", Menu: []string{"비빔밥"}, Calories: NoCaloriesText, IsToday: true},
			{Day: "목", Date: "12/05", Menu: []string{NoDataText}},
			{Day: "금", Date: "12/06", Menu: []string{NoDataText}},
		}, week)
	}
}

func TestService_Week_csvMissing(t *testing.T) {
	freezeTime(t, wednesday)
	svc := NewService(core.MealConfig{CSVPath: filepath.Join(t.TempDir(), "nope.csv")}, nopLogger{})

	_, err := svc.Week(context.Background())
	assert.True(t, core.IsNotFound(err))
}

func TestService_Week_api(t *testing.T) {
	freezeTime(t, wednesday)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("Key") != "secret" || q.Get("MMEAL_SC_CODE") != "2" || q.Get("SD_SCHUL_CODE") != "7430048" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch q.Get("MLSV_YMD") {
		case "20241202":
			_, _ = w.Write([]byte(`{"mealServiceDietInfo":[{"head":[]},{"row":[{"DDISH_NM":"쌀밥<br/>김치(9.13)","CAL_INFO":"750.2 Kcal"}]}]}`))
		case "20241203":
			_, _ = w.Write([]byte(`{"RESULT":{"CODE":"INFO-200","MESSAGE":"해당하는 데이터가 없습니다."}}`))
		case "20241204":
			w.WriteHeader(http.StatusInternalServerError)
		case "20241205":
			_, _ = w.Write([]byte(`{"mealServiceDietInfo":[{"head":[]},{"row":[{"DDISH_NM":"카레라이스"}]}]}`))
		default:
			_, _ = w.Write([]byte(`not json`))
		}
	}))
	defer srv.Close()

	svc := NewService(core.MealConfig{
		APIKey:     "secret",
		BaseURL:    srv.URL,
		OfficeCode: "G10",
		SchoolCode: "7430048",
		Timeout:    time.Second,
	}, nopLogger{})
	require.True(t, svc.APIEnabled())

	week, err := svc.Week(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Day{
		{Day: "월", Date: "12/02", Menu: []string{"쌀밥", "김치"}, Calories: "750.2 Kcal"},
		{Day: "화", Date: "12/03", Menu: []string{NoDataText}},
		{Day: "수", Date: "12/04", Menu: []string{UnavailableText}, IsToday: true},
		{Day: "목", Date: "12/05", Menu: []string{"카레라이스"}, Calories: NoCaloriesText},
		{Day: "금", Date: "12/06", Menu: []string{UnavailableText}},
	}, week)
}

func TestService_Week_networkError(t *testing.T) {
	freezeTime(t, wednesday)
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // refuse connections

	svc := NewService(core.MealConfig{APIKey: "secret", BaseURL: srv.URL, Timeout: time.Second}, nopLogger{})

	week, err := svc.Week(context.Background())
	require.NoError(t, err)
	require.Len(t, week, 5)
	for _, d := range week {
		assert.Equal(t, []string{NetworkErrorText}, d.Menu)
		assert.Equal(t, "", d.Calories)
	}
}

func TestService_Week_badURLFallsBackToCSV(t *testing.T) {
	freezeTime(t, wednesday)
	path := writeCSV(t, "급식일자,식사코드,요리명,칼로리정보", "20241203,2,국수,600 Kcal")

	svc := NewService(core.MealConfig{APIKey: "secret", BaseURL: "://bad", CSVPath: path}, nopLogger{})

	week, err := svc.Week(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"국수"}, week[1].Menu)
}
