package dto

import (
	"time"

	"stockdesk/internal/domain/user"
	vo "stockdesk/internal/domain/user/valueobjects"
)

type UserDTO struct {
	ID        uint
	Username  string
	Role      vo.Role
	CreatedAt time.Time
}

// Principal is the authenticated user behind a request.
type Principal struct {
	UserID    uint
	Username  string
	Role      vo.Role
	SessionID string
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Username:  u.Username().String(),
		Role:      u.Role(),
		CreatedAt: u.CreatedAt(),
	}
}

func ToUserDTOs(users []*user.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserDTO(u))
	}
	return out
}
