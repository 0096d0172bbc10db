package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Tomlord1122/todo-auth-backend/internal/domain"
)

type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a UserRepository backed by the users table.
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) error {
	model := userModel{
		ID:             uuid.NewString(),
		Username:       user.Username,
		Email:          user.Email,
		FullName:       user.FullName,
		HashedPassword: user.HashedPassword,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&userModel{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrDuplicateIdentity
		}
		return insertUser(tx, &model)
	})
	if err != nil && !errors.Is(err, domain.ErrDuplicateIdentity) {
		return fmt.Errorf("create user: %w", err)
	}
	return err
}

// insertUser writes the row. The unique index still catches a concurrent
// signup that slipped past the count.
func insertUser(tx *gorm.DB, model *userModel) error {
	err := tx.Create(model).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateIdentity
	}
	return err
}

func (r *gormUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var model userModel
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return model.toDomain(), nil
}
