package mappers

import (
	"stockdesk/internal/domain/user"
	"stockdesk/internal/infrastructure/persistence/models"
)

func SessionToModel(s *user.Session) *models.SessionModel {
	return &models.SessionModel{
		ID:        s.ID,
		UserID:    s.UserID,
		IPAddress: s.IPAddress,
		UserAgent: s.UserAgent,
		ExpiresAt: s.ExpiresAt.UTC(),
		CreatedAt: s.CreatedAt.UTC(),
	}
}

func SessionToDomain(m *models.SessionModel) *user.Session {
	return &user.Session{
		ID:        m.ID,
		UserID:    m.UserID,
		IPAddress: m.IPAddress,
		UserAgent: m.UserAgent,
		ExpiresAt: m.ExpiresAt.UTC(),
		CreatedAt: m.CreatedAt.UTC(),
	}
}
