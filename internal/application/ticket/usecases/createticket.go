package usecases

import (
	"context"
	"time"

	"stockdesk/internal/application/ticket/dto"
	"stockdesk/internal/domain/permission"
	"stockdesk/internal/domain/ticket"
	"stockdesk/internal/shared/biztime"
	"stockdesk/internal/shared/errors"
	"stockdesk/internal/shared/logger"
)

type CreateTicketCommand struct {
	Actor          dto.Actor
	ProjectName    string
	ApplicantName  string
	ApplicantPhone string
	// Description, when present, becomes the first comment.
	Description string
}

type CreateTicketResult struct {
	TicketID  uint
	Status    string
	CreatedAt time.Time
}

type CreateTicketUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	txManager   TransactionManager
	logger      logger.Interface
	now         biztime.Clock
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	txManager TransactionManager,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		txManager:   txManager,
		logger:      logger,
		now:         biztime.NowUTC,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case", "creator_id", cmd.Actor.UserID, "role", cmd.Actor.Role)

	if !permission.Allows(cmd.Actor.Role, permission.CreateTicket) {
		uc.logger.Warnw("ticket creation denied", "user_id", cmd.Actor.UserID, "role", cmd.Actor.Role)
		return nil, errors.NewForbiddenError("role may not create tickets")
	}

	now := uc.now()
	newTicket, err := ticket.NewTicket(cmd.ProjectName, cmd.ApplicantName, cmd.ApplicantPhone, cmd.Actor.UserID, now)
	if err != nil {
		uc.logger.Warnw("invalid create ticket command", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.ticketRepo.Create(ctx, newTicket); err != nil {
			return err
		}
		if cmd.Description == "" {
			return nil
		}
		comment, err := ticket.NewComment(newTicket.ID(), cmd.Actor.UserID, cmd.Description, "", now)
		if err != nil {
			if err == ticket.ErrEmptyComment {
				return nil
			}
			return errors.NewValidationError(err.Error())
		}
		return uc.commentRepo.Create(ctx, comment)
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to save ticket", "error", err)
		return nil, errors.NewInternalError("failed to create ticket")
	}

	uc.logger.Infow("ticket created successfully", "ticket_id", newTicket.ID(), "creator_id", cmd.Actor.UserID)

	return &CreateTicketResult{
		TicketID:  newTicket.ID(),
		Status:    newTicket.Status().String(),
		CreatedAt: newTicket.CreatedAt(),
	}, nil
}
