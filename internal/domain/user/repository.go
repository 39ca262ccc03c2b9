package user

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrSessionNotFound = errors.New("session not found")
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// GetByIDs returns the users found; missing IDs are skipped.
	GetByIDs(ctx context.Context, ids []uint) ([]*User, error)
	List(ctx context.Context) ([]*User, error)
	Count(ctx context.Context) (int64, error)
	UpdatePasswordHash(ctx context.Context, id uint, hash string) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
