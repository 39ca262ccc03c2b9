package usecases

import (
	"context"
	"fmt"

	"stockdesk/internal/application/ticket/dto"
	"stockdesk/internal/domain/permission"
	"stockdesk/internal/domain/ticket"
	"stockdesk/internal/domain/user"
	"stockdesk/internal/shared/errors"
	"stockdesk/internal/shared/logger"
)

type GetTicketQuery struct {
	Actor    dto.Actor
	TicketID uint
}

type GetTicketUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	userRepo    user.Repository
	logger      logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	userRepo user.Repository,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDetailDTO, error) {
	uc.logger.Infow("executing get ticket use case", "ticket_id", query.TicketID, "user_id", query.Actor.UserID)

	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		if err == ticket.ErrTicketNotFound {
			return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", query.TicketID))
		}
		uc.logger.Errorw("failed to get ticket", "ticket_id", query.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to get ticket")
	}

	if !permission.Allows(query.Actor.Role, permission.ViewTicket) ||
		!permission.CanViewTicket(query.Actor.Role, query.Actor.UserID, t.CreatorID()) {
		uc.logger.Warnw("ticket access denied", "ticket_id", query.TicketID, "user_id", query.Actor.UserID)
		return nil, errors.NewForbiddenError("no access to this ticket")
	}

	comments, err := uc.commentRepo.ListByTicket(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to list comments", "ticket_id", query.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to get ticket")
	}

	ids := []uint{t.CreatorID()}
	for _, c := range comments {
		ids = append(ids, c.AuthorID())
	}
	names := usernames(ctx, uc.userRepo, uc.logger, ids...)

	return &dto.TicketDetailDTO{
		Ticket:          dto.ToTicketDTO(t, names),
		Comments:        dto.ToCommentDTOs(comments, names),
		CanChangeStatus: permission.Allows(query.Actor.Role, permission.ChangeStatus),
		CanComment:      permission.CanCommentTicket(query.Actor.Role, query.Actor.UserID, t.CreatorID()),
	}, nil
}
