package user_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daeshin/schoolhub/core"
	"github.com/daeshin/schoolhub/core/user"
	dummydb "github.com/daeshin/schoolhub/storage/database/dummy"
)

func TestService_Signup(t *testing.T) {
	ctx := context.Background()
	svc := user.NewService(dummydb.Open())

	usr, err := svc.Signup(ctx, user.NewUser{ID: "kim", Name: "Kim", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "kim", usr.ID)
	assert.NotEqual(t, []byte("s3cret"), usr.PasswordHash)
	assert.NoError(t, usr.CheckPassword("s3cret"))

	_, err = svc.Signup(ctx, user.NewUser{ID: "kim", Name: "Kim 2", Password: "pwd"})
	assert.Equal(t, user.ErrIDExists, errors.Cause(err))
	assert.True(t, core.IsConflict(err))
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc := user.NewService(dummydb.Open())
	_, err := svc.Signup(ctx, user.NewUser{ID: "kim", Name: "Kim", Password: "s3cret"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		creds   user.Credentials
		wantErr error
	}{
		{name: "valid", creds: user.Credentials{ID: "kim", Password: "s3cret"}},
		{name: "wrong password", creds: user.Credentials{ID: "kim", Password: "secret"}, wantErr: user.ErrInvalidCredentials},
		{name: "unknown id", creds: user.Credentials{ID: "lee", Password: "s3cret"}, wantErr: user.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr, err := svc.Login(ctx, tt.creds)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Kim", usr.Name)
		})
	}
}

func TestService_storeFailure(t *testing.T) {
	db := dummydb.Open()
	boom := errors.New("disk full")
	db.FailWith(boom)
	svc := user.NewService(db)

	_, err := svc.Login(context.Background(), user.Credentials{ID: "kim", Password: "pwd"})
	assert.Equal(t, boom, errors.Cause(err))

	_, err = svc.Signup(context.Background(), user.NewUser{ID: "kim", Name: "Kim", Password: "pwd"})
	assert.Equal(t, boom, errors.Cause(err))
}

func TestNewUser_Validate(t *testing.T) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	tests := []struct {
		name       string
		nu         user.NewUser
		wantFields []string
	}{
		{name: "valid", nu: user.NewUser{ID: " kim ", Name: "Kim", Password: "pwd"}},
		{name: "empty", nu: user.NewUser{}, wantFields: []string{"id", "name", "password"}},
		{name: "space in id", nu: user.NewUser{ID: "k im", Name: "Kim", Password: "pwd"}, wantFields: []string{"id"}},
		{name: "space in password", nu: user.NewUser{ID: "kim", Name: "Kim", Password: "p wd"}},
		{name: "missing password", nu: user.NewUser{ID: "kim", Name: "Kim"}, wantFields: []string{"password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.nu.Validate(validate)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			var fields []string
			for _, fe := range err.(validator.ValidationErrors) {
				fields = append(fields, fe.Field())
			}
			assert.ElementsMatch(t, tt.wantFields, fields)
		})
	}
}
