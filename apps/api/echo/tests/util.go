package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"

	echoapi "github.com/daeshin/schoolhub/apps/api/echo"
	"github.com/daeshin/schoolhub/core"
	"github.com/daeshin/schoolhub/core/assignment"
	"github.com/daeshin/schoolhub/core/attendance"
	"github.com/daeshin/schoolhub/core/board"
	"github.com/daeshin/schoolhub/core/meal"
	"github.com/daeshin/schoolhub/core/user"
	dummydb "github.com/daeshin/schoolhub/storage/database/dummy"
	"github.com/daeshin/schoolhub/storage/fallback"
	testutil "github.com/daeshin/schoolhub/tests"
)

type (
	testEnv struct {
		app     *echoapi.Server
		primary *dummydb.DB
		local   *dummydb.DB
		meals   *mealStub
	}

	mealStub struct {
		days []meal.Day
		err  error
	}

	httpErr struct {
		Success bool              `json:"success"`
		Msg     string            `json:"msg"`
		Fields  map[string]string `json:"fields,omitempty"`
	}

	httpTest struct {
		name     string
		method   string
		path     string
		body     []byte
		wantCode int
		wantData []byte
	}
)

func (m *mealStub) Week(context.Context) ([]meal.Day, error) {
	return m.days, m.err
}

func setup(t *testing.T, confOpts ...func(conf *core.Config)) *testEnv {
	t.Helper()
	conf := &core.Config{
		Env:      core.EnvTest,
		TestMode: true,
		Server:   core.ServerConfig{DisableReqLogs: true},
	}
	for _, opt := range confOpts {
		opt(conf)
	}

	primary, local := dummydb.Open("primary"), dummydb.Open("local")
	store, err := fallback.New(primary, local, testutil.NopLogger{})
	if err != nil {
		t.Fatalf("fallback.New() failed: %v", err)
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	meals := &mealStub{}
	app := echoapi.NewServer(echoapi.ServerDeps{
		Conf:          conf,
		Logger:        testutil.NopLogger{},
		Health:        store,
		UserSvc:       user.NewService(local),
		AttendanceSvc: attendance.NewService(store),
		BoardSvc:      board.NewService(store),
		AssignmentSvc: assignment.NewService(store),
		MealSvc:       meals,
		Validate:      validate,
		Translator:    translator,
	})
	return &testEnv{app: app, primary: primary, local: local, meals: meals}
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func (env *testEnv) do(method, path string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newRequest(method, path, data...)
	env.app.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) run(t *testing.T, tests []httpTest) {
	for _, tt := range tests {
		if tt.method == "" {
			tt.method = http.MethodGet
		}
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(tt.method, tt.path, tt.body)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func mustUnmarshal(t *testing.T, data []byte, v interface{}) {
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("json.Unmarshal() failed: %v", err)
	}
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func success(t *testing.T, fields ...map[string]interface{}) []byte {
	obj := map[string]interface{}{"success": true}
	for _, f := range fields {
		for k, v := range f {
			obj[k] = v
		}
	}
	return marchallObj(t, obj)
}

func failure(t *testing.T, msg string, fields ...map[string]string) []byte {
	e := httpErr{Msg: msg}
	if len(fields) > 0 {
		e.Fields = fields[0]
	}
	return marchallObj(t, e)
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
