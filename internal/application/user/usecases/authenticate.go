package usecases

import (
	"context"

	"stockdesk/internal/application/user/dto"
	"stockdesk/internal/domain/user"
	"stockdesk/internal/shared/biztime"
	"stockdesk/internal/shared/errors"
	"stockdesk/internal/shared/logger"
)

type AuthenticateQuery struct {
	Token string
}

// AuthenticateUseCase resolves a session cookie to a principal.
// The token signature is checked first, then the session row and its user.
type AuthenticateUseCase struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
	tokens      SessionTokenService
	logger      logger.Interface
	now         biztime.Clock
}

func NewAuthenticateUseCase(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	tokens SessionTokenService,
	logger logger.Interface,
) *AuthenticateUseCase {
	return &AuthenticateUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
		logger:      logger,
		now:         biztime.NowUTC,
	}
}

func (uc *AuthenticateUseCase) Execute(ctx context.Context, query AuthenticateQuery) (*dto.Principal, error) {
	if query.Token == "" {
		return nil, errors.NewUnauthorizedError("login required")
	}

	sessionID, err := uc.tokens.SessionID(query.Token)
	if err != nil {
		uc.logger.Debugw("rejected session token", "error", err)
		return nil, errors.NewUnauthorizedError("login required")
	}

	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if err == user.ErrSessionNotFound {
			return nil, errors.NewUnauthorizedError("session ended")
		}
		uc.logger.Errorw("failed to load session", "error", err)
		return nil, errors.NewInternalError("failed to authenticate")
	}

	if session.IsExpired(uc.now()) {
		if err := uc.sessionRepo.Delete(ctx, session.ID); err != nil {
			uc.logger.Warnw("failed to delete expired session", "session_id", session.ID, "error", err)
		}
		return nil, errors.NewUnauthorizedError("session expired")
	}

	u, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if err == user.ErrUserNotFound {
			uc.logger.Warnw("session references missing user", "session_id", session.ID, "user_id", session.UserID)
			return nil, errors.NewUnauthorizedError("login required")
		}
		uc.logger.Errorw("failed to load session user", "user_id", session.UserID, "error", err)
		return nil, errors.NewInternalError("failed to authenticate")
	}

	return &dto.Principal{
		UserID:    u.ID(),
		Username:  u.Username().String(),
		Role:      u.Role(),
		SessionID: session.ID,
	}, nil
}
