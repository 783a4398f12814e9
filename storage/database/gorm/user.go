package gormrepos

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/daeshin/schoolhub/core/user"
)

func (r userRow) user() user.User {
	return user.User{ID: r.ID, Name: r.Name, PasswordHash: []byte(r.Password), CreatedAt: r.CreatedAt}
}

func (s *Store) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	row := userRow{ID: usr.ID, Name: usr.Name, Password: string(usr.PasswordHash), CreatedAt: usr.CreatedAt}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&userRow{}).Where("id = ?", usr.ID).Count(&count).Error; err != nil {
			return errors.Wrap(err, "checking user id")
		}
		if count > 0 {
			return user.ErrIDExists
		}
		return errors.Wrap(tx.Create(&row).Error, "inserting user")
	})
	if err != nil {
		return user.User{}, err
	}
	return row.user(), nil
}

func (s *Store) GetUser(ctx context.Context, id string) (user.User, error) {
	var row userRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "selecting user")
	}
	return row.user(), nil
}
