package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdesk/internal/application/ticket/dto"
	vo "stockdesk/internal/domain/ticket/valueobjects"
	uservo "stockdesk/internal/domain/user/valueobjects"
	"stockdesk/internal/shared/biztime"
	"stockdesk/internal/shared/logger"
)

// A request travels from an applicant through the stockman to pickup.
func TestTicketLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	files := &mockFileRemover{}
	users := newMockUserRepository(
		mustUser(10, "applicant1", uservo.RoleApplicant),
		mustUser(11, "applicant2", uservo.RoleApplicant),
		mustUser(20, "stockman", uservo.RoleStockman),
		mustUser(30, "manager", uservo.RoleManager),
	)

	applicant1 := dto.Actor{UserID: 10, Role: uservo.RoleApplicant}
	applicant2 := dto.Actor{UserID: 11, Role: uservo.RoleApplicant}
	stockman := dto.Actor{UserID: 20, Role: uservo.RoleStockman}
	manager := dto.Actor{UserID: 30, Role: uservo.RoleManager}

	create := NewCreateTicketUseCase(store.ticketRepo(), store.commentRepo(), &mockTxManager{}, logger.NewNop())
	create.now = biztime.Fixed(baseTime)
	change := NewChangeStatusUseCase(store.ticketRepo(), &mockTxManager{}, files, logger.NewNop())
	list := NewListTicketsUseCase(store.ticketRepo(), users, logger.NewNop())
	get := NewGetTicketUseCase(store.ticketRepo(), store.commentRepo(), users, logger.NewNop())

	created, err := create.Execute(ctx, CreateTicketCommand{
		Actor:          applicant1,
		ProjectName:    "Warehouse annex",
		ApplicantName:  "Anna",
		ApplicantPhone: "+7 901 000 00 00",
		Description:    "Rebar 12mm, 40 pcs",
	})
	require.NoError(t, err)
	assert.Equal(t, "new", created.Status)

	change.now = biztime.Fixed(baseTime.Add(time.Hour))
	ready, err := change.Execute(ctx, ChangeStatusCommand{Actor: stockman, TicketID: created.TicketID, Status: "ready_for_pickup"})
	require.NoError(t, err)
	assert.Equal(t, "ready_for_pickup", ready.NewStatus)
	assert.Nil(t, ready.PickupAt)
	assert.Nil(t, ready.ClosedAt)

	pickupTime := baseTime.Add(3 * time.Hour)
	change.now = biztime.Fixed(pickupTime)
	picked, err := change.Execute(ctx, ChangeStatusCommand{
		Actor: stockman, TicketID: created.TicketID, Status: "picked_up", PickupRecipient: "Anna",
	})
	require.NoError(t, err)
	assert.Equal(t, "ready_for_pickup", picked.OldStatus)
	assert.Equal(t, "closed", picked.NewStatus)
	require.NotNil(t, picked.PickupAt)
	require.NotNil(t, picked.ClosedAt)
	assert.Equal(t, pickupTime, *picked.PickupAt)
	assert.Equal(t, *picked.PickupAt, *picked.ClosedAt)

	managerView, err := list.Execute(ctx, ListTicketsQuery{Actor: manager})
	require.NoError(t, err)
	require.Len(t, managerView, 1)
	assert.Equal(t, vo.StatusClosed, managerView[0].Status)
	assert.Equal(t, "Anna", managerView[0].PickupRecipient)

	otherView, err := list.Execute(ctx, ListTicketsQuery{Actor: applicant2})
	require.NoError(t, err)
	assert.Empty(t, otherView)

	_, err = get.Execute(ctx, GetTicketQuery{Actor: applicant2, TicketID: created.TicketID})
	assert.Error(t, err)

	detail, err := get.Execute(ctx, GetTicketQuery{Actor: applicant1, TicketID: created.TicketID})
	require.NoError(t, err)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "Rebar 12mm, 40 pcs", detail.Comments[0].Text)
	assert.False(t, detail.CanChangeStatus)
}

// Every ticket an applicant sees on the dashboard is one they created.
func TestApplicantDashboardOnlyOwnTickets(t *testing.T) {
	store := newMemoryStore()
	create := NewCreateTicketUseCase(store.ticketRepo(), store.commentRepo(), &mockTxManager{}, logger.NewNop())
	list := NewListTicketsUseCase(store.ticketRepo(), newMockUserRepository(), logger.NewNop())

	creators := []uint{5, 6, 7, 5, 6, 5, 8, 7}
	for _, creator := range creators {
		role := uservo.RoleApplicant
		if creator == 8 {
			role = uservo.RoleManager
		}
		_, err := create.Execute(context.Background(), CreateTicketCommand{
			Actor: dto.Actor{UserID: creator, Role: role}, ProjectName: "P", ApplicantName: "A", ApplicantPhone: "1",
		})
		require.NoError(t, err)
	}

	counts := map[uint]int{}
	for _, c := range creators {
		counts[c]++
	}

	for _, id := range []uint{5, 6, 7, 9} {
		items, err := list.Execute(context.Background(), ListTicketsQuery{Actor: dto.Actor{UserID: id, Role: uservo.RoleApplicant}})
		require.NoError(t, err)
		assert.Len(t, items, counts[id])
		for _, it := range items {
			assert.Equal(t, id, it.CreatorID)
		}
	}
}
