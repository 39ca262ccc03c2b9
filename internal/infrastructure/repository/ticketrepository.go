package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"stockdesk/internal/domain/ticket"
	"stockdesk/internal/infrastructure/persistence/mappers"
	"stockdesk/internal/infrastructure/persistence/models"
	"stockdesk/internal/shared/db"
)

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db, mapper: mappers.NewTicketMapper()}
}

var _ ticket.TicketRepository = (*TicketRepository)(nil)

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return t.SetID(model.ID)
}

// Update writes only the columns a status change or pickup record can touch.
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Select("status", "pickup_at", "pickup_recipient", "pickup_proof_path", "closed_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}
	// RowsAffected is not checked: MySQL reports 0 when the values are unchanged.
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.TicketModel{})
	if filter.CreatorID != nil {
		query = query.Where("created_by_id = ?", *filter.CreatorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}

	var rows []*models.TicketModel
	if err := query.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	out := make([]*ticket.Ticket, 0, len(rows))
	for _, row := range rows {
		t, err := r.mapper.ToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
