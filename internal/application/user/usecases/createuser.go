package usecases

import (
	"context"
	"fmt"
	"unicode/utf8"

	"stockdesk/internal/application/user/dto"
	"stockdesk/internal/domain/user"
	vo "stockdesk/internal/domain/user/valueobjects"
	"stockdesk/internal/shared/errors"
	"stockdesk/internal/shared/logger"
)

const MinPasswordLength = 6

type CreateUserCommand struct {
	Username string
	Password string
	Role     string
}

type CreateUserUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewCreateUserUseCase(userRepo user.Repository, hasher PasswordHasher, logger logger.Interface) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing create user use case", "username", cmd.Username, "role", cmd.Role)

	username, err := vo.NewUsername(cmd.Username)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	role, err := vo.ParseRole(cmd.Role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if utf8.RuneCountInString(cmd.Password) < MinPasswordLength {
		return nil, errors.NewValidationError(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}

	u, err := user.NewUser(username, hash, role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		if err == user.ErrUsernameTaken {
			return nil, errors.NewConflictError("username already taken", username.String())
		}
		uc.logger.Errorw("failed to create user", "username", username.String(), "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}

	uc.logger.Infow("user created successfully", "user_id", u.ID(), "username", username.String(), "role", role)

	result := dto.ToUserDTO(u)
	return &result, nil
}
