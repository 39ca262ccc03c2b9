package valueobjects

import "fmt"

// Role is the closed set of user roles. Every switch over Role must name all four values.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleStockman  Role = "stockman"
	RoleManager   Role = "manager"
	RoleAdmin     Role = "admin"
)

// AllRoles lists roles in display order.
var AllRoles = []Role{RoleApplicant, RoleStockman, RoleManager, RoleAdmin}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleApplicant, RoleStockman, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole rejects anything outside the enumeration instead of defaulting.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %q", s)
	}
	return role, nil
}
