package dto

import (
	"time"

	"stockdesk/internal/domain/ticket"
	vo "stockdesk/internal/domain/ticket/valueobjects"
	uservo "stockdesk/internal/domain/user/valueobjects"
)

// Actor is the authenticated user a command runs for.
type Actor struct {
	UserID uint
	Role   uservo.Role
}

type TicketDTO struct {
	ID              uint
	ProjectName     string
	ApplicantName   string
	ApplicantPhone  string
	Status          vo.TicketStatus
	CreatorID       uint
	CreatorName     string
	CreatedAt       time.Time
	PickupAt        *time.Time
	PickupRecipient string
	PickupProofPath string
	ClosedAt        *time.Time
}

type CommentDTO struct {
	ID         uint
	AuthorID   uint
	AuthorName string
	Text       string
	PhotoPath  string
	CreatedAt  time.Time
}

// TicketDetailDTO is a ticket with its comments and what the viewer may do next.
type TicketDetailDTO struct {
	Ticket          TicketDTO
	Comments        []CommentDTO
	CanChangeStatus bool
	CanComment      bool
}

// ToTicketDTO converts t. names maps user IDs to usernames; missing entries stay empty.
func ToTicketDTO(t *ticket.Ticket, names map[uint]string) TicketDTO {
	return TicketDTO{
		ID:              t.ID(),
		ProjectName:     t.ProjectName(),
		ApplicantName:   t.ApplicantName(),
		ApplicantPhone:  t.ApplicantPhone(),
		Status:          t.Status(),
		CreatorID:       t.CreatorID(),
		CreatorName:     names[t.CreatorID()],
		CreatedAt:       t.CreatedAt(),
		PickupAt:        t.PickupAt(),
		PickupRecipient: t.PickupRecipient(),
		PickupProofPath: t.PickupProofPath(),
		ClosedAt:        t.ClosedAt(),
	}
}

func ToTicketDTOs(tickets []*ticket.Ticket, names map[uint]string) []TicketDTO {
	out := make([]TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ToTicketDTO(t, names))
	}
	return out
}

func ToCommentDTOs(comments []*ticket.Comment, names map[uint]string) []CommentDTO {
	out := make([]CommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentDTO{
			ID:         c.ID(),
			AuthorID:   c.AuthorID(),
			AuthorName: names[c.AuthorID()],
			Text:       c.Text(),
			PhotoPath:  c.PhotoPath(),
			CreatedAt:  c.CreatedAt(),
		})
	}
	return out
}
