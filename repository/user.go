package repository

import (
	"context"
	"errors"
	"fmt"

	"messenger/model"

	"gorm.io/gorm"
)

// UserRepository is the gateway for users, keyed by their numeric id.
type UserRepository interface {
	Repository[model.User]
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Taken(ctx context.Context, username, email string) (bool, error)
}

type GormUserRepository struct {
	*GormRepository[model.User]
}

var userFilters = map[string]string{
	"id":       "id",
	"username": "username",
	"email":    "email",
	"role":     "role",
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{NewGormRepository[model.User](db, "id", userFilters)}
}

func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &user, nil
}

// Taken reports whether the username or the email is already registered.
func (r *GormUserRepository) Taken(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}
