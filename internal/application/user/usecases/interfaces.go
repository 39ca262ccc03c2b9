package usecases

import (
	"context"
	"time"

	"stockdesk/internal/application/user/dto"
	vo "stockdesk/internal/domain/user/valueobjects"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
	// NeedsRehash reports hashes that should be replaced after a successful login.
	NeedsRehash(hash string) bool
}

// SessionTokenService signs the cookie value that references a session row.
type SessionTokenService interface {
	Generate(sessionID string, userID uint, role vo.Role, expiresAt time.Time) (string, error)
	SessionID(token string) (string, error)
}

type LoginExecutor interface {
	Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error)
}

type LogoutExecutor interface {
	Execute(ctx context.Context, cmd LogoutCommand) error
}

type AuthenticateExecutor interface {
	Execute(ctx context.Context, query AuthenticateQuery) (*dto.Principal, error)
}

type ListUsersExecutor interface {
	Execute(ctx context.Context, query ListUsersQuery) ([]dto.UserDTO, error)
}

type CreateUserExecutor interface {
	Execute(ctx context.Context, cmd CreateUserCommand) (*dto.UserDTO, error)
}
