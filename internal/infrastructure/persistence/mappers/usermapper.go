package mappers

import (
	"fmt"

	"stockdesk/internal/domain/user"
	vo "stockdesk/internal/domain/user/valueobjects"
	"stockdesk/internal/infrastructure/persistence/models"
)

// UserMapper converts between user entities and rows.
type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(m *models.UserModel) (*user.User, error)
	ToDomainList(ms []*models.UserModel) ([]*user.User, error)
}

type userMapper struct{}

func NewUserMapper() UserMapper {
	return &userMapper{}
}

func (userMapper) ToModel(u *user.User) *models.UserModel {
	createdAt := u.CreatedAt()
	return &models.UserModel{
		ID:           u.ID(),
		Username:     u.Username().String(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		CreatedAt:    &createdAt,
	}
}

func (userMapper) ToDomain(m *models.UserModel) (*user.User, error) {
	if m == nil {
		return nil, nil
	}
	username, err := vo.NewUsername(m.Username)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", m.ID, err)
	}
	role, err := vo.ParseRole(m.Role)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", m.ID, err)
	}
	return user.ReconstructUser(m.ID, username, m.PasswordHash, role, derefTime(m.CreatedAt))
}

func (mp userMapper) ToDomainList(ms []*models.UserModel) ([]*user.User, error) {
	out := make([]*user.User, 0, len(ms))
	for _, m := range ms {
		u, err := mp.ToDomain(m)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}
