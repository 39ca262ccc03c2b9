package usecases

import (
	"context"

	"stockdesk/internal/application/user/dto"
	"stockdesk/internal/domain/permission"
	"stockdesk/internal/domain/user"
	vo "stockdesk/internal/domain/user/valueobjects"
	"stockdesk/internal/shared/errors"
	"stockdesk/internal/shared/logger"
)

type ListUsersQuery struct {
	Role vo.Role
}

type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, query ListUsersQuery) ([]dto.UserDTO, error) {
	uc.logger.Infow("executing list users use case", "role", query.Role)

	if !permission.Allows(query.Role, permission.ListUsers) {
		return nil, errors.NewForbiddenError("administrators only")
	}

	users, err := uc.userRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, errors.NewInternalError("failed to list users")
	}
	return dto.ToUserDTOs(users), nil
}
