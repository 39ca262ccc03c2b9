package usecases

import (
	"context"

	"stockdesk/internal/application/ticket/dto"
	"stockdesk/internal/domain/permission"
	"stockdesk/internal/domain/ticket"
	vo "stockdesk/internal/domain/ticket/valueobjects"
	"stockdesk/internal/domain/user"
	"stockdesk/internal/shared/errors"
	"stockdesk/internal/shared/logger"
)

type ListTicketsQuery struct {
	Actor dto.Actor
	// Status is an optional stored status code.
	Status string
}

// ListTicketsUseCase builds the dashboard: applicants get their own tickets, everyone else gets all.
type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	logger     logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) ([]dto.TicketDTO, error) {
	uc.logger.Infow("executing list tickets use case", "user_id", query.Actor.UserID, "role", query.Actor.Role)

	if !permission.Allows(query.Actor.Role, permission.ViewDashboard) {
		return nil, errors.NewForbiddenError("no access to the dashboard")
	}

	var filter ticket.TicketFilter
	switch permission.TicketScope(query.Actor.Role) {
	case permission.ScopeOwn:
		creatorID := query.Actor.UserID
		filter.CreatorID = &creatorID
	case permission.ScopeAll:
	default:
		return nil, errors.NewForbiddenError("no access to tickets")
	}

	if query.Status != "" {
		status, err := vo.NewTicketStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}

	tickets, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}

	creatorIDs := make([]uint, 0, len(tickets))
	for _, t := range tickets {
		creatorIDs = append(creatorIDs, t.CreatorID())
	}
	names := usernames(ctx, uc.userRepo, uc.logger, creatorIDs...)

	return dto.ToTicketDTOs(tickets, names), nil
}
