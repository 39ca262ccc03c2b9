package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"stockdesk/internal/domain/user"
	"stockdesk/internal/infrastructure/persistence/mappers"
	"stockdesk/internal/infrastructure/persistence/models"
	"stockdesk/internal/shared/db"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

var _ user.SessionRepository = (*SessionRepository)(nil)

func (r *SessionRepository) Create(ctx context.Context, s *user.Session) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.SessionToModel(s)).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*user.Session, error) {
	var model models.SessionModel
	err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return mappers.SessionToDomain(&model), nil
}

// Delete is a no-op for unknown IDs.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.SessionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).Where("expires_at <= ?", now.UTC()).Delete(&models.SessionModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
