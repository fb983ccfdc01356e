package repository

import (
	"context"

	"gcc-market-sync/internal/entity"

	"gorm.io/gorm"
)

// UsersRepository defines read access to user accounts.
type UsersRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// NewUsersRepository creates a new instance of UsersRepository.
func NewUsersRepository(db *gorm.DB) UsersRepository {
	return &usersRepository{db: db}
}

type usersRepository struct {
	db *gorm.DB
}

func (r *usersRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *usersRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
