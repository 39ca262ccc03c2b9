package user

import (
	"fmt"
	"time"

	vo "stockdesk/internal/domain/user/valueobjects"
	"stockdesk/internal/shared/biztime"
)

// User is an account. The role is fixed at creation.
type User struct {
	id           uint
	username     *vo.Username
	passwordHash string
	role         vo.Role
	createdAt    time.Time
}

func NewUser(username *vo.Username, passwordHash string, role vo.Role) (*User, error) {
	if username == nil {
		return nil, fmt.Errorf("username is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %q", role)
	}
	return &User{
		username:     username,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    biztime.NowUTC(),
	}, nil
}

// ReconstructUser rebuilds a user from persistence.
func ReconstructUser(id uint, username *vo.Username, passwordHash string, role vo.Role, createdAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if username == nil {
		return nil, fmt.Errorf("username is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role %q for user %d", role, id)
	}
	return &User{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
	}, nil
}

func (u *User) ID() uint               { return u.id }
func (u *User) Username() *vo.Username { return u.username }
func (u *User) PasswordHash() string   { return u.passwordHash }
func (u *User) Role() vo.Role          { return u.role }
func (u *User) CreatedAt() time.Time   { return u.createdAt }

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// ReplacePasswordHash stores a new hash, used when upgrading a legacy hash after login.
func (u *User) ReplacePasswordHash(hash string) error {
	if hash == "" {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = hash
	return nil
}
