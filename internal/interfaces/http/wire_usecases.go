package http

import (
	ticketUsecases "stockdesk/internal/application/ticket/usecases"
	userUsecases "stockdesk/internal/application/user/usecases"
)

// allUseCases holds the use case instances used by handlers, middlewares and jobs.
type allUseCases struct {
	// Tickets
	createTicket *ticketUsecases.CreateTicketUseCase
	changeStatus *ticketUsecases.ChangeStatusUseCase
	addComment   *ticketUsecases.AddCommentUseCase
	listTickets  *ticketUsecases.ListTicketsUseCase
	getTicket    *ticketUsecases.GetTicketUseCase

	// Users & sessions
	login           *userUsecases.LoginUseCase
	logout          *userUsecases.LogoutUseCase
	authenticate    *userUsecases.AuthenticateUseCase
	listUsers       *userUsecases.ListUsersUseCase
	createUser      *userUsecases.CreateUserUseCase
	seedUsers       *userUsecases.SeedUsersUseCase
	cleanupSessions *userUsecases.CleanupSessionsUseCase
}

func (c *Container) newUseCases() *allUseCases {
	r := c.repos
	log := c.log

	createUser := userUsecases.NewCreateUserUseCase(r.userRepo, c.hasher, log)

	return &allUseCases{
		createTicket: ticketUsecases.NewCreateTicketUseCase(r.ticketRepo, r.commentRepo, c.txManager, log),
		changeStatus: ticketUsecases.NewChangeStatusUseCase(r.ticketRepo, c.txManager, c.uploads, log),
		addComment:   ticketUsecases.NewAddCommentUseCase(r.ticketRepo, r.commentRepo, c.txManager, c.uploads, log),
		listTickets:  ticketUsecases.NewListTicketsUseCase(r.ticketRepo, r.userRepo, log),
		getTicket:    ticketUsecases.NewGetTicketUseCase(r.ticketRepo, r.commentRepo, r.userRepo, log),

		login:           userUsecases.NewLoginUseCase(r.userRepo, r.sessionRepo, c.hasher, c.jwtSvc, c.cfg.Auth.SessionTTL(), log),
		logout:          userUsecases.NewLogoutUseCase(r.sessionRepo, log),
		authenticate:    userUsecases.NewAuthenticateUseCase(r.userRepo, r.sessionRepo, c.jwtSvc, log),
		listUsers:       userUsecases.NewListUsersUseCase(r.userRepo, log),
		createUser:      createUser,
		seedUsers:       userUsecases.NewSeedUsersUseCase(r.userRepo, createUser, log),
		cleanupSessions: userUsecases.NewCleanupSessionsUseCase(r.sessionRepo, log),
	}
}
