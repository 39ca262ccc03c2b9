package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"stockdesk/internal/domain/user"
	"stockdesk/internal/infrastructure/persistence/mappers"
	"stockdesk/internal/infrastructure/persistence/models"
	"stockdesk/internal/shared/db"
	apperrors "stockdesk/internal/shared/errors"
)

type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db, mapper: mappers.NewUserMapper()}
}

var _ user.Repository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return user.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return u.SetID(model.ID)
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *UserRepository) first(ctx context.Context, query string, arg any) (*user.User, error) {
	var model models.UserModel
	err := db.GetTxFromContext(ctx, r.db).Where(query, arg).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	if len(ids) == 0 {
		return []*user.User{}, nil
	}
	var rows []*models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get users by IDs: %w", err)
	}
	return r.mapper.ToDomainList(rows)
}

// List returns all users ordered by username.
func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	var rows []*models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Order("username ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return r.mapper.ToDomainList(rows)
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if result.Error != nil {
		return fmt.Errorf("failed to update password hash: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
