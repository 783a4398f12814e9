package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/daeshin/schoolhub/core"
	"github.com/daeshin/schoolhub/core/assignment"
	"github.com/daeshin/schoolhub/core/attendance"
	"github.com/daeshin/schoolhub/core/board"
	"github.com/daeshin/schoolhub/core/meal"
	"github.com/daeshin/schoolhub/core/user"
)

type (
	// HealthChecker reports the connectivity of each store, keyed by store name.
	HealthChecker interface {
		Health() map[string]bool
	}

	MealService interface {
		Week(ctx context.Context) ([]meal.Day, error)
	}

	ServerDeps struct {
		Conf          *core.Config
		Logger        core.Logger
		ReqLogger     *zap.Logger
		Health        HealthChecker
		UserSvc       *user.Service
		AttendanceSvc *attendance.Service
		BoardSvc      *board.Service
		AssignmentSvc *assignment.Service
		MealSvc       MealService
		Validate      *validator.Validate
		Translator    ut.Translator
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestID())
	if !conf.Server.DisableReqLogs && s.deps.ReqLogger != nil {
		s.app.Use(requestLogger(s.deps.ReqLogger))
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORS())

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/health", s.health)
	s.app.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	if conf.Server.StaticDir != "" {
		s.app.Static("/", conf.Server.StaticDir)
	}

	api := s.app.Group("/api")

	var limiter echo.MiddlewareFunc
	if conf.Server.RateLimit > 0 {
		limiter = middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(conf.Server.RateLimit)))
	}
	registerUserAPI(api, limiter, s.deps.UserSvc, s.deps.Validate)
	registerAttendanceAPI(api, s.deps.AttendanceSvc, s.deps.Validate)
	registerBoardAPI(api, s.deps.BoardSvc, s.deps.Validate)
	registerAssignmentAPI(api, s.deps.AssignmentSvc, s.deps.Validate)
	registerMealAPI(api, s.deps.MealSvc)
}

// requestLogger logs every request through zl.
func requestLogger(zl *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}
			zl.Info("http request",
				zap.String("method", ctx.Request().Method),
				zap.String("uri", ctx.Request().RequestURI),
				zap.Int("status", ctx.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", ctx.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return nil
		}
	}
}

func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already shutting down
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

type healthResponse struct {
	Success bool            `json:"success"`
	Stores  map[string]bool `json:"stores"`
}

func (s *Server) health(ctx echo.Context) error {
	stores := s.deps.Health.Health()
	// degraded but serving as long as one store is up
	code := http.StatusServiceUnavailable
	for _, up := range stores {
		if up {
			code = http.StatusOK
		}
	}
	return ctx.JSON(code, healthResponse{Success: code == http.StatusOK, Stores: stores})
}
