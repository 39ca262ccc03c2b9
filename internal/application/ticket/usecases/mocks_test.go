package usecases

import (
	"context"
	"sort"
	"sync"

	"stockdesk/internal/domain/ticket"
	"stockdesk/internal/domain/user"
	uservo "stockdesk/internal/domain/user/valueobjects"
)

type mockTicketRepository struct {
	CreateFunc  func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc  func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc func(ctx context.Context, id uint) (*ticket.Ticket, error)
	ListFunc    func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, error)
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ticket.ErrTicketNotFound
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

type mockCommentRepository struct {
	CreateFunc       func(ctx context.Context, c *ticket.Comment) error
	ListByTicketFunc func(ctx context.Context, ticketID uint) ([]*ticket.Comment, error)
}

func (m *mockCommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *mockCommentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockUserRepository struct {
	users map[uint]*user.User
}

func newMockUserRepository(users ...*user.User) *mockUserRepository {
	m := &mockUserRepository{users: make(map[uint]*user.User)}
	for _, u := range users {
		m.users[u.ID()] = u
	}
	return m
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error { return nil }

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	for _, u := range m.users {
		if u.Username().String() == username {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	var out []*user.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]*user.User, error) { return nil, nil }

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *mockUserRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	return nil
}

type mockTxManager struct {
	calls int
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockFileRemover struct {
	removed []string
}

func (m *mockFileRemover) Remove(name string) error {
	m.removed = append(m.removed, name)
	return nil
}

// memoryStore keeps tickets and comments in maps for multi-step scenarios.
type memoryStore struct {
	mu       sync.Mutex
	nextID   uint
	tickets  map[uint]*ticket.Ticket
	comments map[uint][]*ticket.Comment
}

func newMemoryStore() *memoryStore {
	return &memoryStore{tickets: make(map[uint]*ticket.Ticket), comments: make(map[uint][]*ticket.Comment)}
}

func (s *memoryStore) ticketRepo() *mockTicketRepository {
	return &mockTicketRepository{
		CreateFunc: func(ctx context.Context, t *ticket.Ticket) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.nextID++
			s.tickets[s.nextID] = t
			return t.SetID(s.nextID)
		},
		UpdateFunc: func(ctx context.Context, t *ticket.Ticket) error {
			return nil
		},
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if t, ok := s.tickets[id]; ok {
				return t, nil
			}
			return nil, ticket.ErrTicketNotFound
		},
		ListFunc: func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			var out []*ticket.Ticket
			for _, t := range s.tickets {
				if filter.CreatorID != nil && t.CreatorID() != *filter.CreatorID {
					continue
				}
				if filter.Status != nil && t.Status() != *filter.Status {
					continue
				}
				out = append(out, t)
			}
			sort.Slice(out, func(i, j int) bool { return out[i].ID() > out[j].ID() })
			return out, nil
		},
	}
}

func (s *memoryStore) commentRepo() *mockCommentRepository {
	return &mockCommentRepository{
		CreateFunc: func(ctx context.Context, c *ticket.Comment) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.nextID++
			s.comments[c.TicketID()] = append(s.comments[c.TicketID()], c)
			return c.SetID(s.nextID)
		},
		ListByTicketFunc: func(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.comments[ticketID], nil
		},
	}
}

func mustUser(id uint, name string, role uservo.Role) *user.User {
	username, err := uservo.NewUsername(name)
	if err != nil {
		panic(err)
	}
	u, err := user.ReconstructUser(id, username, "hash", role, baseTime)
	if err != nil {
		panic(err)
	}
	return u
}
