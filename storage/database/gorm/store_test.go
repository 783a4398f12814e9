package gormrepos_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daeshin/schoolhub/core/user"
	gormrepos "github.com/daeshin/schoolhub/storage/database/gorm"
	testutil "github.com/daeshin/schoolhub/tests"
)

func TestStore(t *testing.T) {
	testutil.RunStoreTests(t, func(t *testing.T) testutil.Store {
		return testutil.OpenLocalStore(t)
	})
}

func TestUsers(t *testing.T) {
	store := testutil.OpenLocalStore(t)
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	usr := testutil.CreateUser(t, store, "kim", "Kim", "s3cret", created)

	got, err := store.GetUser(ctx, "kim")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, got.ID)
	assert.Equal(t, "Kim", got.Name)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.NoError(t, got.CheckPassword("s3cret"))

	_, err = store.CreateUser(ctx, usr)
	assert.Equal(t, user.ErrIDExists, errors.Cause(err))

	_, err = store.GetUser(ctx, "lee")
	assert.Equal(t, user.ErrNotFound, errors.Cause(err))
}

func TestOpenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.db")
	ctx := context.Background()

	db, err := gormrepos.Open(path)
	require.NoError(t, err)
	store := gormrepos.NewStore(db)
	testutil.CreateUser(t, store, "kim", "Kim", "pwd")
	require.NoError(t, store.Close())

	db, err = gormrepos.Open(path)
	require.NoError(t, err)
	store = gormrepos.NewStore(db)
	defer store.Close()

	_, err = store.GetUser(ctx, "kim")
	assert.NoError(t, err)
	assert.Equal(t, "local", store.Name())
	assert.True(t, store.IsConnected())
}
