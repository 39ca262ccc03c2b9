package mappers

import (
	"fmt"
	"time"

	"stockdesk/internal/domain/ticket"
	vo "stockdesk/internal/domain/ticket/valueobjects"
	"stockdesk/internal/infrastructure/persistence/models"
)

// TicketMapper converts between ticket/comment entities and rows.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(m *models.TicketModel) (*ticket.Ticket, error)
	CommentToModel(c *ticket.Comment) *models.CommentModel
	CommentToDomain(m *models.CommentModel) (*ticket.Comment, error)
}

type ticketMapper struct{}

func NewTicketMapper() TicketMapper {
	return &ticketMapper{}
}

func (ticketMapper) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:              t.ID(),
		ProjectName:     t.ProjectName(),
		ApplicantName:   t.ApplicantName(),
		ApplicantPhone:  t.ApplicantPhone(),
		Status:          t.Status().String(),
		CreatedAt:       t.CreatedAt(),
		PickupAt:        t.PickupAt(),
		PickupRecipient: optionalString(t.PickupRecipient()),
		PickupProofPath: optionalString(t.PickupProofPath()),
		ClosedAt:        t.ClosedAt(),
		CreatedByID:     optionalID(t.CreatorID()),
	}
}

// ToDomain accepts legacy label values in the status column.
func (ticketMapper) ToDomain(m *models.TicketModel) (*ticket.Ticket, error) {
	if m == nil {
		return nil, nil
	}
	status, err := vo.ParseStoredStatus(m.Status)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", m.ID, err)
	}
	return ticket.ReconstructTicket(
		m.ID,
		m.ProjectName, m.ApplicantName, m.ApplicantPhone,
		status,
		derefID(m.CreatedByID),
		m.CreatedAt,
		utcPtr(m.PickupAt),
		derefString(m.PickupRecipient), derefString(m.PickupProofPath),
		utcPtr(m.ClosedAt),
	)
}

func (ticketMapper) CommentToModel(c *ticket.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:        c.ID(),
		TicketID:  c.TicketID(),
		AuthorID:  optionalID(c.AuthorID()),
		Text:      optionalString(c.Text()),
		PhotoPath: optionalString(c.PhotoPath()),
		CreatedAt: c.CreatedAt(),
	}
}

func (ticketMapper) CommentToDomain(m *models.CommentModel) (*ticket.Comment, error) {
	if m == nil {
		return nil, nil
	}
	return ticket.ReconstructComment(
		m.ID, m.TicketID, derefID(m.AuthorID),
		derefString(m.Text), derefString(m.PhotoPath),
		m.CreatedAt.UTC(),
	)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func optionalID(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}

func derefID(p *uint) uint {
	if p == nil {
		return 0
	}
	return *p
}

func derefTime(p *time.Time) time.Time {
	if p == nil {
		return time.Time{}
	}
	return p.UTC()
}

func utcPtr(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := p.UTC()
	return &v
}
