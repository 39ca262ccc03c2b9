package usecases

import (
	"context"

	"stockdesk/internal/domain/user"
	"stockdesk/internal/shared/errors"
	"stockdesk/internal/shared/logger"
)

type LogoutCommand struct {
	SessionID string
}

type LogoutUseCase struct {
	sessionRepo user.SessionRepository
	logger      logger.Interface
}

func NewLogoutUseCase(sessionRepo user.SessionRepository, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	if cmd.SessionID == "" {
		return nil
	}
	if err := uc.sessionRepo.Delete(ctx, cmd.SessionID); err != nil && err != user.ErrSessionNotFound {
		uc.logger.Errorw("failed to delete session", "error", err, "session_id", cmd.SessionID)
		return errors.NewInternalError("failed to log out")
	}

	uc.logger.Infow("user logged out successfully", "session_id", cmd.SessionID)

	return nil
}
