package usecases

import (
	"context"
	"fmt"

	"stockdesk/internal/domain/user"
	"stockdesk/internal/shared/biztime"
	"stockdesk/internal/shared/logger"
)

type CleanupSessionsUseCase struct {
	sessionRepo user.SessionRepository
	logger      logger.Interface
	now         biztime.Clock
}

func NewCleanupSessionsUseCase(sessionRepo user.SessionRepository, logger logger.Interface) *CleanupSessionsUseCase {
	return &CleanupSessionsUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
		now:         biztime.NowUTC,
	}
}

func (uc *CleanupSessionsUseCase) Execute(ctx context.Context) (int64, error) {
	removed, err := uc.sessionRepo.DeleteExpired(ctx, uc.now())
	if err != nil {
		uc.logger.Errorw("failed to delete expired sessions", "error", err)
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	if removed > 0 {
		uc.logger.Infow("expired sessions removed", "count", removed)
	}
	return removed, nil
}
