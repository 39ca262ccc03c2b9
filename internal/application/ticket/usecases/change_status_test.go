package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdesk/internal/application/ticket/dto"
	"stockdesk/internal/domain/ticket"
	vo "stockdesk/internal/domain/ticket/valueobjects"
	uservo "stockdesk/internal/domain/user/valueobjects"
	"stockdesk/internal/shared/biztime"
	apperrors "stockdesk/internal/shared/errors"
	"stockdesk/internal/shared/logger"
)

func existingTicket(t *testing.T, status vo.TicketStatus, closedAt *time.Time) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.ReconstructTicket(1, "Tower B", "Ivan Petrov", "+7 900", status, 3,
		baseTime.Add(-time.Hour), nil, "", "", closedAt)
	require.NoError(t, err)
	return tk
}

func newChangeStatus(tk *ticket.Ticket, files *mockFileRemover) (*ChangeStatusUseCase, *int) {
	updates := 0
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			if tk == nil || id != tk.ID() {
				return nil, ticket.ErrTicketNotFound
			}
			return tk, nil
		},
		UpdateFunc: func(ctx context.Context, t *ticket.Ticket) error {
			updates++
			return nil
		},
	}
	uc := NewChangeStatusUseCase(repo, &mockTxManager{}, files, logger.NewNop())
	uc.now = biztime.Fixed(baseTime)
	return uc, &updates
}

func TestChangeStatusUseCase_Transitions(t *testing.T) {
	earlier := baseTime.Add(-30 * time.Minute)

	tests := []struct {
		name         string
		from         vo.TicketStatus
		closedAt     *time.Time
		requested    vo.TicketStatus
		wantStatus   vo.TicketStatus
		wantPickupAt *time.Time
		wantClosedAt *time.Time
	}{
		{"new to in progress", vo.StatusNew, nil, vo.StatusInProgress, vo.StatusInProgress, nil, nil},
		{"ready for pickup leaves timestamps", vo.StatusAwaitingMaterials, nil, vo.StatusReadyForPickup, vo.StatusReadyForPickup, nil, nil},
		{"picked up collapses to closed", vo.StatusReadyForPickup, nil, vo.StatusPickedUp, vo.StatusClosed, &baseTime, &baseTime},
		{"picked up from new", vo.StatusNew, nil, vo.StatusPickedUp, vo.StatusClosed, &baseTime, &baseTime},
		{"close stamps once", vo.StatusInProgress, nil, vo.StatusClosed, vo.StatusClosed, nil, &baseTime},
		{"close again keeps closed_at", vo.StatusClosed, &earlier, vo.StatusClosed, vo.StatusClosed, nil, &earlier},
		{"same status accepted", vo.StatusNew, nil, vo.StatusNew, vo.StatusNew, nil, nil},
	}

	for _, tt := range tests {
		for _, role := range []uservo.Role{uservo.RoleStockman, uservo.RoleAdmin} {
			t.Run(tt.name+"/"+string(role), func(t *testing.T) {
				tk := existingTicket(t, tt.from, tt.closedAt)
				uc, updates := newChangeStatus(tk, &mockFileRemover{})

				result, err := uc.Execute(context.Background(), ChangeStatusCommand{
					Actor:    dto.Actor{UserID: 2, Role: role},
					TicketID: 1,
					Status:   tt.requested.String(),
				})
				require.NoError(t, err)

				assert.Equal(t, 1, *updates)
				assert.Equal(t, tt.from.String(), result.OldStatus)
				assert.Equal(t, tt.wantStatus.String(), result.NewStatus)
				assert.Equal(t, tt.wantStatus, tk.Status())
				assert.Equal(t, tt.wantPickupAt, tk.PickupAt())
				assert.Equal(t, tt.wantClosedAt, tk.ClosedAt())
			})
		}
	}
}

func TestChangeStatusUseCase_DeniedRoles(t *testing.T) {
	for _, role := range []uservo.Role{uservo.RoleApplicant, uservo.RoleManager, uservo.Role("guest")} {
		t.Run(string(role), func(t *testing.T) {
			tk := existingTicket(t, vo.StatusReadyForPickup, nil)
			files := &mockFileRemover{}
			uc, updates := newChangeStatus(tk, files)

			_, err := uc.Execute(context.Background(), ChangeStatusCommand{
				Actor:           dto.Actor{UserID: 3, Role: role},
				TicketID:        1,
				Status:          vo.StatusPickedUp.String(),
				PickupProofPath: "1.0_proof.jpg",
			})
			require.Error(t, err)
			assert.True(t, apperrors.IsForbiddenError(err))
			assert.Zero(t, *updates)
			assert.Equal(t, vo.StatusReadyForPickup, tk.Status())
			assert.Nil(t, tk.PickupAt())
			assert.Nil(t, tk.ClosedAt())
			assert.Equal(t, []string{"1.0_proof.jpg"}, files.removed)
		})
	}
}

func TestChangeStatusUseCase_PickupDetails(t *testing.T) {
	tk := existingTicket(t, vo.StatusReadyForPickup, nil)
	files := &mockFileRemover{}
	uc, _ := newChangeStatus(tk, files)

	_, err := uc.Execute(context.Background(), ChangeStatusCommand{
		Actor:           dto.Actor{UserID: 2, Role: uservo.RoleStockman},
		TicketID:        1,
		Status:          vo.StatusPickedUp.String(),
		PickupRecipient: "  Sergei Ivanov ",
		PickupProofPath: "1.0_proof.jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, "Sergei Ivanov", tk.PickupRecipient())
	assert.Equal(t, "1.0_proof.jpg", tk.PickupProofPath())
	assert.Empty(t, files.removed)
}

func TestChangeStatusUseCase_ProofDiscardedForOtherStatus(t *testing.T) {
	tk := existingTicket(t, vo.StatusNew, nil)
	files := &mockFileRemover{}
	uc, _ := newChangeStatus(tk, files)

	_, err := uc.Execute(context.Background(), ChangeStatusCommand{
		Actor:           dto.Actor{UserID: 2, Role: uservo.RoleStockman},
		TicketID:        1,
		Status:          vo.StatusInProgress.String(),
		PickupRecipient: "Sergei",
		PickupProofPath: "1.0_proof.jpg",
	})
	require.NoError(t, err)
	assert.Empty(t, tk.PickupRecipient())
	assert.Empty(t, tk.PickupProofPath())
	assert.Equal(t, []string{"1.0_proof.jpg"}, files.removed)
}

func TestChangeStatusUseCase_Errors(t *testing.T) {
	stockman := dto.Actor{UserID: 2, Role: uservo.RoleStockman}

	t.Run("unknown status", func(t *testing.T) {
		tk := existingTicket(t, vo.StatusNew, nil)
		uc, updates := newChangeStatus(tk, &mockFileRemover{})
		_, err := uc.Execute(context.Background(), ChangeStatusCommand{Actor: stockman, TicketID: 1, Status: "lost"})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidationError(err))
		assert.Zero(t, *updates)
		assert.Equal(t, vo.StatusNew, tk.Status())
	})

	t.Run("legacy label is not a status code", func(t *testing.T) {
		uc, _ := newChangeStatus(existingTicket(t, vo.StatusNew, nil), &mockFileRemover{})
		_, err := uc.Execute(context.Background(), ChangeStatusCommand{Actor: stockman, TicketID: 1, Status: "Закрыта"})
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("missing ticket", func(t *testing.T) {
		uc, _ := newChangeStatus(nil, &mockFileRemover{})
		_, err := uc.Execute(context.Background(), ChangeStatusCommand{Actor: stockman, TicketID: 42, Status: "closed"})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFoundError(err))
	})

	t.Run("update failure", func(t *testing.T) {
		files := &mockFileRemover{}
		repo := &mockTicketRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
				return existingTicket(t, vo.StatusNew, nil), nil
			},
			UpdateFunc: func(ctx context.Context, t *ticket.Ticket) error {
				return errors.New("connection reset")
			},
		}
		uc := NewChangeStatusUseCase(repo, &mockTxManager{}, files, logger.NewNop())
		_, err := uc.Execute(context.Background(), ChangeStatusCommand{
			Actor: stockman, TicketID: 1, Status: "picked_up", PickupProofPath: "1.0_proof.jpg",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeInternal, apperrors.GetAppError(err).Type)
		assert.Equal(t, []string{"1.0_proof.jpg"}, files.removed)
	})
}
