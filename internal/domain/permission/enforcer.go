package permission

import (
	vo "stockdesk/internal/domain/user/valueobjects"
)

// Enforcer evaluates a stored copy of the policy per request.
type Enforcer interface {
	Enforce(role vo.Role, p Permission) (bool, error)
	// Sync replaces the stored policy with rules and reloads it.
	Sync(rules map[vo.Role][]Permission) error
}

// Matrix is the complete role to permissions table derived from Allows.
func Matrix() map[vo.Role][]Permission {
	out := make(map[vo.Role][]Permission, len(vo.AllRoles))
	for _, r := range vo.AllRoles {
		out[r] = Grants(r)
	}
	return out
}
