package user

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/daeshin/schoolhub/core"
)

var (
	// errors
	ErrNotFound           = core.NewNotFoundError("user")
	ErrIDExists           = core.NewConflictError("a user with this id already exists")
	ErrInvalidCredentials = errors.New("invalid id or password")
)

type (
	Repository interface {
		// CreateUser stores usr. It fails with ErrIDExists when usr.ID is taken.
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUser(ctx context.Context, id string) (User, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Signup(ctx context.Context, nu NewUser) (User, error) {
	if _, err := svc.repo.GetUser(ctx, nu.ID); err == nil {
		return User{}, ErrIDExists
	} else if errors.Cause(err) != ErrNotFound {
		return User{}, errors.Wrap(err, "checking user id")
	}

	usr := User{
		ID:        nu.ID,
		Name:      nu.Name,
		CreatedAt: core.NowFunc().UTC().Truncate(time.Second),
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	return svc.repo.CreateUser(ctx, usr)
}

// Login returns the user matching creds. Unknown ids and wrong passwords both fail with ErrInvalidCredentials.
func (svc *Service) Login(ctx context.Context, creds Credentials) (User, error) {
	usr, err := svc.repo.GetUser(ctx, creds.ID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, ErrInvalidCredentials
		}
		return User{}, errors.Wrap(err, "getting user")
	}
	if err := usr.CheckPassword(creds.Password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return usr, nil
}

func (svc *Service) Get(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUser(ctx, core.CleanString(id))
}
