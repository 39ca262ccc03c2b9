package ticket

import (
	"context"
	"errors"

	vo "stockdesk/internal/domain/ticket/valueobjects"
)

var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrEmptyComment   = errors.New("comment needs text or a photo")
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *Ticket) error
	// Update persists status, timestamps and pickup details.
	Update(ctx context.Context, ticket *Ticket) error
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	// List returns tickets newest first.
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, error)
}

// TicketFilter narrows List. Nil fields do not filter.
type TicketFilter struct {
	CreatorID *uint
	Status    *vo.TicketStatus
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	// ListByTicket returns comments oldest first.
	ListByTicket(ctx context.Context, ticketID uint) ([]*Comment, error)
}
