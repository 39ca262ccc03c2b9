package usecases

import (
	"context"
	"fmt"
	"time"

	"stockdesk/internal/application/ticket/dto"
	"stockdesk/internal/domain/permission"
	"stockdesk/internal/domain/ticket"
	vo "stockdesk/internal/domain/ticket/valueobjects"
	"stockdesk/internal/shared/biztime"
	"stockdesk/internal/shared/errors"
	"stockdesk/internal/shared/logger"
)

type ChangeStatusCommand struct {
	Actor    dto.Actor
	TicketID uint
	Status   string
	// PickupRecipient and PickupProofPath are kept only when Status is picked_up.
	PickupRecipient string
	PickupProofPath string
}

type ChangeStatusResult struct {
	TicketID  uint
	OldStatus string
	NewStatus string
	PickupAt  *time.Time
	ClosedAt  *time.Time
}

type ChangeStatusUseCase struct {
	ticketRepo ticket.TicketRepository
	txManager  TransactionManager
	files      FileRemover
	logger     logger.Interface
	now        biztime.Clock
}

func NewChangeStatusUseCase(
	ticketRepo ticket.TicketRepository,
	txManager TransactionManager,
	files FileRemover,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		ticketRepo: ticketRepo,
		txManager:  txManager,
		files:      files,
		logger:     logger,
		now:        biztime.NowUTC,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error) {
	uc.logger.Infow("executing change status use case", "ticket_id", cmd.TicketID, "new_status", cmd.Status, "role", cmd.Actor.Role)

	result, err := uc.execute(ctx, cmd)
	if err != nil {
		discardUpload(uc.files, uc.logger, cmd.PickupProofPath)
		return nil, err
	}
	return result, nil
}

func (uc *ChangeStatusUseCase) execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error) {
	if !permission.Allows(cmd.Actor.Role, permission.ChangeStatus) {
		uc.logger.Warnw("status change denied", "ticket_id", cmd.TicketID, "user_id", cmd.Actor.UserID, "role", cmd.Actor.Role)
		return nil, errors.NewForbiddenError("only a stockman or administrator may change status")
	}

	requested, err := vo.NewTicketStatus(cmd.Status)
	if err != nil {
		uc.logger.Warnw("invalid change status command", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	var result ChangeStatusResult
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
		if err != nil {
			if err == ticket.ErrTicketNotFound {
				return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
			}
			return err
		}

		tr, err := t.ChangeStatus(requested, cmd.Actor.Role, uc.now())
		if err != nil {
			if err == ticket.ErrStatusChangeDenied {
				return errors.NewForbiddenError("only a stockman or administrator may change status")
			}
			return errors.NewValidationError(err.Error())
		}

		if tr.PickupStamped {
			if err := t.RecordPickup(cmd.PickupRecipient, cmd.PickupProofPath); err != nil {
				return errors.NewValidationError(err.Error())
			}
		}

		if err := uc.ticketRepo.Update(ctx, t); err != nil {
			return err
		}

		result = ChangeStatusResult{
			TicketID:  t.ID(),
			OldStatus: tr.From.String(),
			NewStatus: tr.To.String(),
			PickupAt:  t.PickupAt(),
			ClosedAt:  t.ClosedAt(),
		}
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			uc.logger.Warnw("status change rejected", "ticket_id", cmd.TicketID, "error", err)
			return nil, err
		}
		uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to update ticket")
	}

	// A proof photo sent with any other status is not attached to the ticket.
	if requested != vo.StatusPickedUp {
		discardUpload(uc.files, uc.logger, cmd.PickupProofPath)
	}

	uc.logger.Infow("ticket status changed successfully",
		"ticket_id", result.TicketID,
		"old_status", result.OldStatus,
		"new_status", result.NewStatus)

	return &result, nil
}
