package handlers_test

import (
	"context"

	"stockdesk/internal/application/user/dto"
	"stockdesk/internal/application/user/usecases"
)

type loginFunc func(ctx context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error)

func (f loginFunc) Execute(ctx context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error) {
	return f(ctx, cmd)
}

type logoutRecorder struct {
	sessions []string
	err      error
}

func (r *logoutRecorder) Execute(_ context.Context, cmd usecases.LogoutCommand) error {
	r.sessions = append(r.sessions, cmd.SessionID)
	return r.err
}

type listUsersFunc func(ctx context.Context, query usecases.ListUsersQuery) ([]dto.UserDTO, error)

func (f listUsersFunc) Execute(ctx context.Context, query usecases.ListUsersQuery) ([]dto.UserDTO, error) {
	return f(ctx, query)
}
