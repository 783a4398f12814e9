package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	echoapi "github.com/daeshin/schoolhub/apps/api/echo"
	"github.com/daeshin/schoolhub/core"
	"github.com/daeshin/schoolhub/core/assignment"
	"github.com/daeshin/schoolhub/core/attendance"
	"github.com/daeshin/schoolhub/core/board"
	"github.com/daeshin/schoolhub/core/meal"
	"github.com/daeshin/schoolhub/core/user"
	logsvc "github.com/daeshin/schoolhub/services/logger"
	"github.com/daeshin/schoolhub/storage/database"
	gormrepos "github.com/daeshin/schoolhub/storage/database/gorm"
	sqlxrepos "github.com/daeshin/schoolhub/storage/database/sqlx"
	"github.com/daeshin/schoolhub/storage/fallback"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger, err := logsvc.New("API", conf)
	if err != nil {
		log.Fatalf("setting up logger: %v", err)
	}
	defer logger.Sync()

	dbLogger, err := logsvc.New("DB", conf)
	if err != nil {
		log.Fatalf("setting up DB logger: %v", err)
	}
	defer dbLogger.Sync()

	// set up stores
	primary := setUpPrimary(conf, dbLogger)
	defer func() {
		if err = primary.Close(); err != nil {
			dbLogger.Error("Failed to close primary store", err)
		}
	}()

	localDB, err := gormrepos.Open(conf.Local.Path, conf.Debug)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up local store: %v", err), err)
	}
	local := gormrepos.NewStore(localDB)
	defer func() {
		if err = local.Close(); err != nil {
			dbLogger.Error("Failed to close local store", err)
		}
	}()

	store, err := fallback.New(primary, local, dbLogger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up fallback store: %v", err), err)
	}

	// set up services
	usrSvc := user.NewService(local) // users only live in the local store
	attendanceSvc := attendance.NewService(store)
	boardSvc := board.NewService(store)
	assignmentSvc := assignment.NewService(store)
	mealSvc := meal.NewService(conf.Meal, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	if !mealSvc.APIEnabled() {
		logger.Info("meal API key not set, serving meals from " + conf.Meal.CSVPath)
	}

	// =========================================================================
	// Start Debug Service
	//
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.Publish("stores", expvar.Func(func() interface{} { return store.Health() }))

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			ReqLogger:     logger.Zap(),
			Health:        store,
			UserSvc:       usrSvc,
			AttendanceSvc: attendanceSvc,
			BoardSvc:      boardSvc,
			AssignmentSvc: assignmentSvc,
			MealSvc:       mealSvc,
			Validate:      validate,
			Translator:    translator,
		},
	)

	go func() {
		logger.Info("API listening on " + conf.Server.Address)
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

// setUpPrimary connects to and migrates the primary store.
// The app still starts when it is unreachable: a disconnected store sends every call to the local store.
func setUpPrimary(conf *core.Config, logger core.Logger) *sqlxrepos.Store {
	db, err := database.Open(conf)
	if err != nil {
		if err == database.ErrNotConfigured {
			logger.Info("primary store not configured, using the local store only")
		} else {
			logger.Error("primary store unreachable, using the local store only", err)
		}
		return sqlxrepos.NewStore(nil)
	}
	if err = database.Migrate(db.DB); err != nil {
		logger.Error("migrating primary store", err)
		_ = db.Close()
		return sqlxrepos.NewStore(nil)
	}
	return sqlxrepos.NewStore(db)
}
