package usecases

import (
	"context"

	"stockdesk/internal/application/ticket/dto"
	"stockdesk/internal/domain/user"
	"stockdesk/internal/shared/logger"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error)
}

type ChangeStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error)
}

type AddCommentExecutor interface {
	Execute(ctx context.Context, cmd AddCommentCommand) (*AddCommentResult, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) ([]dto.TicketDTO, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDetailDTO, error)
}

// TransactionManager runs fn with a transaction bound to ctx.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// FileRemover discards an upload whose record could not be committed.
type FileRemover interface {
	Remove(name string) error
}

// discardUpload removes name best-effort; a failure is only logged.
func discardUpload(files FileRemover, log logger.Interface, name string) {
	if files == nil || name == "" {
		return
	}
	if err := files.Remove(name); err != nil {
		log.Warnw("failed to remove orphaned upload", "file", name, "error", err)
	}
}

// usernames resolves ids to usernames. Lookup failures leave names empty.
func usernames(ctx context.Context, users user.Repository, log logger.Interface, ids ...uint) map[uint]string {
	names := make(map[uint]string, len(ids))
	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return names
	}

	found, err := users.GetByIDs(ctx, unique)
	if err != nil {
		log.Warnw("failed to resolve usernames", "error", err)
		return names
	}
	for _, u := range found {
		names[u.ID()] = u.Username().String()
	}
	return names
}
