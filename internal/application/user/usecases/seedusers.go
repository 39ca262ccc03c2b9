package usecases

import (
	"context"
	"fmt"

	"stockdesk/internal/domain/user"
	"stockdesk/internal/shared/logger"
)

type SeedUser struct {
	Username string
	Password string
	Role     string
}

type SeedUsersCommand struct {
	Users []SeedUser
}

// SeedUsersUseCase creates the initial accounts, only while the users table is empty.
type SeedUsersUseCase struct {
	userRepo   user.Repository
	createUser CreateUserExecutor
	logger     logger.Interface
}

func NewSeedUsersUseCase(userRepo user.Repository, createUser CreateUserExecutor, logger logger.Interface) *SeedUsersUseCase {
	return &SeedUsersUseCase{
		userRepo:   userRepo,
		createUser: createUser,
		logger:     logger,
	}
}

// Execute returns the number of accounts created.
func (uc *SeedUsersUseCase) Execute(ctx context.Context, cmd SeedUsersCommand) (int, error) {
	count, err := uc.userRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		uc.logger.Debugw("users already present, skipping seed", "count", count)
		return 0, nil
	}

	created := 0
	for _, su := range cmd.Users {
		if _, err := uc.createUser.Execute(ctx, CreateUserCommand{
			Username: su.Username,
			Password: su.Password,
			Role:     su.Role,
		}); err != nil {
			return created, fmt.Errorf("failed to seed user %q: %w", su.Username, err)
		}
		created++
	}

	uc.logger.Infow("seeded initial users", "count", created)
	return created, nil
}
