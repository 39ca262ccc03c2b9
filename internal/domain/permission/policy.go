// Package permission is the access-control policy: a pure function of role, action and ownership.
package permission

import (
	vo "stockdesk/internal/domain/user/valueobjects"
)

// Resource and Action name a permission as (resource, action), the shape the enforcer stores.
type Resource string

type Action string

const (
	ResourceTicket    Resource = "ticket"
	ResourceDashboard Resource = "dashboard"
	ResourceUser      Resource = "user"
	ResourceUpload    Resource = "upload"
)

const (
	ActionCreate       Action = "create"
	ActionChangeStatus Action = "change_status"
	ActionView         Action = "view"
	ActionComment      Action = "comment"
	ActionList         Action = "list"
	ActionRead         Action = "read"
)

// Permission pairs a resource with an action.
type Permission struct {
	Resource Resource
	Action   Action
}

var (
	CreateTicket  = Permission{ResourceTicket, ActionCreate}
	ChangeStatus  = Permission{ResourceTicket, ActionChangeStatus}
	ViewTicket    = Permission{ResourceTicket, ActionView}
	CommentTicket = Permission{ResourceTicket, ActionComment}
	ViewDashboard = Permission{ResourceDashboard, ActionView}
	ListUsers     = Permission{ResourceUser, ActionList}
	ReadUpload    = Permission{ResourceUpload, ActionRead}
)

// AllPermissions is every permission the application checks.
var AllPermissions = []Permission{
	CreateTicket, ChangeStatus, ViewTicket, CommentTicket, ViewDashboard, ListUsers, ReadUpload,
}

func (p Permission) String() string {
	return string(p.Resource) + ":" + string(p.Action)
}

// Allows reports whether role may perform p at all. Ownership limits are applied by TicketScope.
func Allows(role vo.Role, p Permission) bool {
	switch p {
	case CreateTicket:
		switch role {
		case vo.RoleApplicant, vo.RoleManager, vo.RoleAdmin:
			return true
		case vo.RoleStockman:
			return false
		}
	case ChangeStatus:
		switch role {
		case vo.RoleStockman, vo.RoleAdmin:
			return true
		case vo.RoleApplicant, vo.RoleManager:
			return false
		}
	case ListUsers:
		switch role {
		case vo.RoleAdmin:
			return true
		case vo.RoleApplicant, vo.RoleStockman, vo.RoleManager:
			return false
		}
	case ViewTicket, CommentTicket, ViewDashboard, ReadUpload:
		return role.IsValid()
	}
	return false
}

// Scope is how much of the ticket set a role can see.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeOwn
	ScopeAll
)

// TicketScope returns the visibility scope for role.
func TicketScope(role vo.Role) Scope {
	switch role {
	case vo.RoleApplicant:
		return ScopeOwn
	case vo.RoleStockman, vo.RoleManager, vo.RoleAdmin:
		return ScopeAll
	default:
		return ScopeNone
	}
}

// CanViewTicket applies the scope to a concrete ticket creator.
func CanViewTicket(role vo.Role, actorID, creatorID uint) bool {
	switch TicketScope(role) {
	case ScopeAll:
		return true
	case ScopeOwn:
		return actorID != 0 && actorID == creatorID
	default:
		return false
	}
}

// CanCommentTicket: anyone who can see a ticket can annotate it.
func CanCommentTicket(role vo.Role, actorID, creatorID uint) bool {
	return Allows(role, CommentTicket) && CanViewTicket(role, actorID, creatorID)
}

// Grants lists the permissions of role, in AllPermissions order.
func Grants(role vo.Role) []Permission {
	var out []Permission
	for _, p := range AllPermissions {
		if Allows(role, p) {
			out = append(out, p)
		}
	}
	return out
}
