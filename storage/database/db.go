package database

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/daeshin/schoolhub/core"
	appfs "github.com/daeshin/schoolhub/fs"
)

const (
	driverName     = "postgres"
	migrationsDir  = "migrations"
	defaultPingMax = 5
)

var (
	// ErrUnavailable is returned by a store that could not be reached.
	ErrUnavailable = errors.New("store unavailable")

	// ErrNotConfigured is returned by Open when no primary DSN is set.
	ErrNotConfigured = errors.New("primary store not configured")
)

// Open connects to the primary PostgreSQL store and waits for it to answer.
func Open(conf *core.Config) (*sqlx.DB, error) {
	if !conf.Primary.IsPrimaryConfigured() {
		return nil, ErrNotConfigured
	}
	db, err := sqlx.Open(driverName, conf.Primary.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = ping(db.DB, conf.Primary.MaxPingAttempts); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sql.DB, maxAttempts int) error {
	if maxAttempts <= 0 {
		maxAttempts = defaultPingMax
	}
	var err error
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		if attempts < maxAttempts {
			time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
		}
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// GooseRun runs a goose command against the embedded migrations.
func GooseRun(command string, db *sql.DB, dir string, args ...string) error {
	goose.SetBaseFS(appfs.FS)
	if err := goose.SetDialect(driverName); err != nil {
		return err
	}
	return goose.Run(command, db, dir, args...)
}

func Migrate(db *sql.DB) error {
	if err := GooseRun("up", db, migrationsDir); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

// MigrationsDir is the directory of the embedded migrations.
func MigrationsDir() string {
	return migrationsDir
}
