package http

import (
	"gorm.io/gorm"

	"stockdesk/internal/domain/ticket"
	"stockdesk/internal/domain/user"
	"stockdesk/internal/infrastructure/repository"
)

// repositories holds the repository instances shared by use cases.
type repositories struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
}

func newRepositories(db *gorm.DB) *repositories {
	return &repositories{
		userRepo:    repository.NewUserRepository(db),
		sessionRepo: repository.NewSessionRepository(db),
		ticketRepo:  repository.NewTicketRepository(db),
		commentRepo: repository.NewCommentRepository(db),
	}
}
