package usecases

import (
	"context"
	"time"

	"stockdesk/internal/application/user/dto"
	"stockdesk/internal/domain/user"
	"stockdesk/internal/shared/biztime"
	"stockdesk/internal/shared/errors"
	"stockdesk/internal/shared/logger"
)

const invalidCredentials = "invalid username or password"

type LoginCommand struct {
	Username  string
	Password  string
	IPAddress string
	UserAgent string
}

type LoginResult struct {
	Principal dto.Principal
	Token     string
	ExpiresAt time.Time
}

type LoginUseCase struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
	hasher      PasswordHasher
	tokens      SessionTokenService
	sessionTTL  time.Duration
	logger      logger.Interface
	now         biztime.Clock
}

func NewLoginUseCase(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	hasher PasswordHasher,
	tokens SessionTokenService,
	sessionTTL time.Duration,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		tokens:      tokens,
		sessionTTL:  sessionTTL,
		logger:      logger,
		now:         biztime.NowUTC,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	uc.logger.Infow("executing login use case", "username", cmd.Username, "ip", cmd.IPAddress)

	u, err := uc.userRepo.GetByUsername(ctx, cmd.Username)
	if err != nil {
		if err == user.ErrUserNotFound {
			uc.logger.Warnw("login with unknown username", "username", cmd.Username, "ip", cmd.IPAddress)
			return nil, errors.NewUnauthorizedError(invalidCredentials)
		}
		uc.logger.Errorw("failed to get user by username", "error", err)
		return nil, errors.NewInternalError("failed to log in")
	}

	if err := uc.hasher.Verify(cmd.Password, u.PasswordHash()); err != nil {
		uc.logger.Warnw("login with wrong password", "user_id", u.ID(), "ip", cmd.IPAddress)
		return nil, errors.NewUnauthorizedError(invalidCredentials)
	}

	if uc.hasher.NeedsRehash(u.PasswordHash()) {
		uc.upgradeHash(ctx, u, cmd.Password)
	}

	session, err := user.NewSession(u.ID(), cmd.IPAddress, cmd.UserAgent, uc.now(), uc.sessionTTL)
	if err != nil {
		uc.logger.Errorw("failed to build session", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to log in")
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		uc.logger.Errorw("failed to save session", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to log in")
	}

	token, err := uc.tokens.Generate(session.ID, u.ID(), u.Role(), session.ExpiresAt)
	if err != nil {
		uc.logger.Errorw("failed to sign session token", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to log in")
	}

	uc.logger.Infow("user logged in successfully", "user_id", u.ID(), "role", u.Role())

	return &LoginResult{
		Principal: dto.Principal{
			UserID:    u.ID(),
			Username:  u.Username().String(),
			Role:      u.Role(),
			SessionID: session.ID,
		},
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// upgradeHash replaces a legacy or weaker hash. Failure does not block the login.
func (uc *LoginUseCase) upgradeHash(ctx context.Context, u *user.User, password string) {
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		uc.logger.Warnw("failed to rehash password", "user_id", u.ID(), "error", err)
		return
	}
	if err := uc.userRepo.UpdatePasswordHash(ctx, u.ID(), hash); err != nil {
		uc.logger.Warnw("failed to store upgraded password hash", "user_id", u.ID(), "error", err)
		return
	}
	_ = u.ReplacePasswordHash(hash)
	uc.logger.Infow("password hash upgraded", "user_id", u.ID())
}
