package usecases

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"stockdesk/internal/domain/user"
	vo "stockdesk/internal/domain/user/valueobjects"
)

var baseTime = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

type mockUserRepository struct {
	users      map[uint]*user.User
	nextID     uint
	updates    map[uint]string
	CreateFunc func(ctx context.Context, u *user.User) error
	ListErr    error
}

func newMockUserRepository(users ...*user.User) *mockUserRepository {
	m := &mockUserRepository{users: make(map[uint]*user.User), updates: make(map[uint]string)}
	for _, u := range users {
		m.users[u.ID()] = u
		if u.ID() > m.nextID {
			m.nextID = u.ID()
		}
	}
	return m
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	for _, existing := range m.users {
		if existing.Username().Equals(u.Username()) {
			return user.ErrUsernameTaken
		}
	}
	m.nextID++
	m.users[m.nextID] = u
	return u.SetID(m.nextID)
}

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

func (m *mockUserRepository) List(ctx context.Context) ([]*user.User, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]*user.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *mockUserRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	m.updates[id] = hash
	return nil
}

type mockSessionRepository struct {
	sessions   map[string]*user.Session
	deleted    []string
	CreateErr  error
	expiredCut time.Time
}

func newMockSessionRepository(sessions ...*user.Session) *mockSessionRepository {
	m := &mockSessionRepository{sessions: make(map[string]*user.Session)}
	for _, s := range sessions {
		m.sessions[s.ID] = s
	}
	return m
}

func (m *mockSessionRepository) Create(ctx context.Context, s *user.Session) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *mockSessionRepository) GetByID(ctx context.Context, id string) (*user.Session, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, user.ErrSessionNotFound
}

func (m *mockSessionRepository) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	delete(m.sessions, id)
	return nil
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	m.expiredCut = now
	var removed int64
	for id, s := range m.sessions {
		if s.IsExpired(now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// mockHasher stores "hashed:<password>"; hashes starting with "legacy:" verify the same way but need a rehash.
type mockHasher struct {
	HashErr error
}

func (h *mockHasher) Hash(password string) (string, error) {
	if h.HashErr != nil {
		return "", h.HashErr
	}
	return "hashed:" + password, nil
}

func (h *mockHasher) Verify(password, hash string) error {
	_, plain, _ := strings.Cut(hash, ":")
	if plain != password {
		return errors.New("mismatch")
	}
	return nil
}

func (h *mockHasher) NeedsRehash(hash string) bool {
	return strings.HasPrefix(hash, "legacy:")
}

// mockTokens encodes the session ID into the token as "token:<sid>".
type mockTokens struct {
	generated int
}

func (m *mockTokens) Generate(sessionID string, userID uint, role vo.Role, expiresAt time.Time) (string, error) {
	m.generated++
	return "token:" + sessionID, nil
}

func (m *mockTokens) SessionID(token string) (string, error) {
	sid, ok := strings.CutPrefix(token, "token:")
	if !ok || sid == "" {
		return "", errors.New("bad signature")
	}
	return sid, nil
}

func mustUser(id uint, name, hash string, role vo.Role) *user.User {
	username, err := vo.NewUsername(name)
	if err != nil {
		panic(err)
	}
	u, err := user.ReconstructUser(id, username, hash, role, baseTime)
	if err != nil {
		panic(err)
	}
	return u
}
