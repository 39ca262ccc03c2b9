package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdesk/internal/application/ticket/dto"
	"stockdesk/internal/domain/ticket"
	vo "stockdesk/internal/domain/ticket/valueobjects"
	uservo "stockdesk/internal/domain/user/valueobjects"
	apperrors "stockdesk/internal/shared/errors"
	"stockdesk/internal/shared/logger"
)

func seededStore(t *testing.T) *memoryStore {
	t.Helper()
	store := newMemoryStore()
	create := NewCreateTicketUseCase(store.ticketRepo(), store.commentRepo(), &mockTxManager{}, logger.NewNop())
	for _, creator := range []uint{10, 11, 10} {
		_, err := create.Execute(context.Background(), CreateTicketCommand{
			Actor:          dto.Actor{UserID: creator, Role: uservo.RoleApplicant},
			ProjectName:    "Site",
			ApplicantName:  "Worker",
			ApplicantPhone: "100",
		})
		require.NoError(t, err)
	}
	return store
}

func ticketIDs(items []dto.TicketDTO) []uint {
	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}

func TestListTicketsUseCase_Scope(t *testing.T) {
	store := seededStore(t)
	users := newMockUserRepository(
		mustUser(10, "applicant1", uservo.RoleApplicant),
		mustUser(11, "applicant2", uservo.RoleApplicant),
	)
	uc := NewListTicketsUseCase(store.ticketRepo(), users, logger.NewNop())

	tests := []struct {
		name  string
		actor dto.Actor
		want  []uint
	}{
		{"applicant sees own", dto.Actor{UserID: 10, Role: uservo.RoleApplicant}, []uint{3, 1}},
		{"other applicant sees own", dto.Actor{UserID: 11, Role: uservo.RoleApplicant}, []uint{2}},
		{"applicant without tickets", dto.Actor{UserID: 12, Role: uservo.RoleApplicant}, []uint{}},
		{"stockman sees all", dto.Actor{UserID: 2, Role: uservo.RoleStockman}, []uint{3, 2, 1}},
		{"manager sees all", dto.Actor{UserID: 4, Role: uservo.RoleManager}, []uint{3, 2, 1}},
		{"admin sees all", dto.Actor{UserID: 1, Role: uservo.RoleAdmin}, []uint{3, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := uc.Execute(context.Background(), ListTicketsQuery{Actor: tt.actor})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ticketIDs(items))
		})
	}

	t.Run("creator names resolved", func(t *testing.T) {
		items, err := uc.Execute(context.Background(), ListTicketsQuery{Actor: dto.Actor{UserID: 4, Role: uservo.RoleManager}})
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "applicant1", items[0].CreatorName)
		assert.Equal(t, "applicant2", items[1].CreatorName)
	})
}

func TestListTicketsUseCase_StatusFilter(t *testing.T) {
	var got ticket.TicketFilter
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, error) {
			got = filter
			return nil, nil
		},
	}
	uc := NewListTicketsUseCase(repo, newMockUserRepository(), logger.NewNop())

	items, err := uc.Execute(context.Background(), ListTicketsQuery{
		Actor:  dto.Actor{UserID: 7, Role: uservo.RoleApplicant},
		Status: "ready_for_pickup",
	})
	require.NoError(t, err)
	assert.Empty(t, items)
	require.NotNil(t, got.CreatorID)
	assert.Equal(t, uint(7), *got.CreatorID)
	require.NotNil(t, got.Status)
	assert.Equal(t, vo.StatusReadyForPickup, *got.Status)

	_, err = uc.Execute(context.Background(), ListTicketsQuery{
		Actor:  dto.Actor{UserID: 7, Role: uservo.RoleStockman},
		Status: "Готово к выдаче",
	})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestListTicketsUseCase_Errors(t *testing.T) {
	t.Run("unknown role", func(t *testing.T) {
		uc := NewListTicketsUseCase(&mockTicketRepository{}, newMockUserRepository(), logger.NewNop())
		_, err := uc.Execute(context.Background(), ListTicketsQuery{Actor: dto.Actor{UserID: 1, Role: uservo.Role("")}})
		assert.True(t, apperrors.IsForbiddenError(err))
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &mockTicketRepository{
			ListFunc: func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, error) {
				return nil, errors.New("no such table: tickets")
			},
		}
		uc := NewListTicketsUseCase(repo, newMockUserRepository(), logger.NewNop())
		_, err := uc.Execute(context.Background(), ListTicketsQuery{Actor: dto.Actor{UserID: 1, Role: uservo.RoleAdmin}})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeInternal, apperrors.GetAppError(err).Type)
	})
}
