package user

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Session is a server-side login record; the cookie token only references it.
type Session struct {
	ID        string
	UserID    uint
	IPAddress string
	UserAgent string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func NewSession(userID uint, ipAddress, userAgent string, now time.Time, ttl time.Duration) (*Session, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session lifetime must be positive")
	}

	id, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	return &Session{
		ID:        id,
		UserID:    userID,
		IPAddress: ipAddress,
		UserAgent: truncate(userAgent, 255),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}, nil
}

func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func generateSessionID() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
