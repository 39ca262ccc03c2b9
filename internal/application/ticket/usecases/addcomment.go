package usecases

import (
	"context"
	"fmt"
	"time"

	"stockdesk/internal/application/ticket/dto"
	"stockdesk/internal/domain/permission"
	"stockdesk/internal/domain/ticket"
	"stockdesk/internal/shared/biztime"
	"stockdesk/internal/shared/errors"
	"stockdesk/internal/shared/logger"
)

type AddCommentCommand struct {
	Actor     dto.Actor
	TicketID  uint
	Text      string
	PhotoPath string
}

type AddCommentResult struct {
	CommentID uint
	TicketID  uint
	CreatedAt time.Time
}

type AddCommentUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	txManager   TransactionManager
	files       FileRemover
	logger      logger.Interface
	now         biztime.Clock
}

func NewAddCommentUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	txManager TransactionManager,
	files FileRemover,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		txManager:   txManager,
		files:       files,
		logger:      logger,
		now:         biztime.NowUTC,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*AddCommentResult, error) {
	uc.logger.Infow("executing add comment use case", "ticket_id", cmd.TicketID, "author_id", cmd.Actor.UserID)

	var comment *ticket.Comment
	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
		if err != nil {
			if err == ticket.ErrTicketNotFound {
				return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
			}
			return err
		}

		if !permission.CanCommentTicket(cmd.Actor.Role, cmd.Actor.UserID, t.CreatorID()) {
			return errors.NewForbiddenError("no access to this ticket")
		}

		comment, err = ticket.NewComment(t.ID(), cmd.Actor.UserID, cmd.Text, cmd.PhotoPath, uc.now())
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		return uc.commentRepo.Create(ctx, comment)
	})
	if err != nil {
		discardUpload(uc.files, uc.logger, cmd.PhotoPath)
		if errors.IsAppError(err) {
			uc.logger.Warnw("comment rejected", "ticket_id", cmd.TicketID, "error", err)
			return nil, err
		}
		uc.logger.Errorw("failed to add comment", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to add comment")
	}

	uc.logger.Infow("comment added successfully", "ticket_id", cmd.TicketID, "comment_id", comment.ID())

	return &AddCommentResult{
		CommentID: comment.ID(),
		TicketID:  comment.TicketID(),
		CreatedAt: comment.CreatedAt(),
	}, nil
}
