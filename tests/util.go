package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/daeshin/schoolhub/core/user"
	gormrepos "github.com/daeshin/schoolhub/storage/database/gorm"
)

// NopLogger discards every entry.
type NopLogger struct{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Fatal(string, ...interface{}) {}

// OpenLocalStore opens a local store on a fresh SQLite file removed when t ends.
func OpenLocalStore(t *testing.T) *gormrepos.Store {
	t.Helper()
	db, err := gormrepos.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenLocalStore() failed: %v", err)
	}
	store := gormrepos.NewStore(db)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func CreateUser(t *testing.T, repo user.Repository, id, name, pwd string, createdAt ...time.Time) user.User {
	t.Helper()
	tstamp := time.Now().UTC().Truncate(time.Second)
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{ID: id, Name: name, CreatedAt: tstamp}
	if err := usr.SetPassword(pwd); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}
