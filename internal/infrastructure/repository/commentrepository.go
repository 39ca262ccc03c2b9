package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"stockdesk/internal/domain/ticket"
	"stockdesk/internal/infrastructure/persistence/mappers"
	"stockdesk/internal/infrastructure/persistence/models"
	"stockdesk/internal/shared/db"
)

type CommentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db, mapper: mappers.NewTicketMapper()}
}

var _ ticket.CommentRepository = (*CommentRepository)(nil)

func (r *CommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	model := r.mapper.CommentToModel(c)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return c.SetID(model.ID)
}

func (r *CommentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	var rows []*models.CommentModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	out := make([]*ticket.Comment, 0, len(rows))
	for _, row := range rows {
		c, err := r.mapper.CommentToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
