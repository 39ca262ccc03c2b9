package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	vo "stockdesk/internal/domain/user/valueobjects"
)

func TestAllows(t *testing.T) {
	tests := []struct {
		perm    Permission
		allowed []vo.Role
	}{
		{CreateTicket, []vo.Role{vo.RoleApplicant, vo.RoleManager, vo.RoleAdmin}},
		{ChangeStatus, []vo.Role{vo.RoleStockman, vo.RoleAdmin}},
		{ListUsers, []vo.Role{vo.RoleAdmin}},
		{ViewDashboard, vo.AllRoles},
		{ViewTicket, vo.AllRoles},
		{CommentTicket, vo.AllRoles},
		{ReadUpload, vo.AllRoles},
	}
	for _, tt := range tests {
		for _, role := range vo.AllRoles {
			want := false
			for _, r := range tt.allowed {
				if r == role {
					want = true
				}
			}
			t.Run(tt.perm.String()+"/"+role.String(), func(t *testing.T) {
				assert.Equal(t, want, Allows(role, tt.perm))
			})
		}
	}
}

func TestAllows_UnknownRoleDeniedEverywhere(t *testing.T) {
	for _, p := range AllPermissions {
		assert.False(t, Allows(vo.Role("superuser"), p), p.String())
		assert.False(t, Allows(vo.Role(""), p), p.String())
	}
	assert.False(t, Allows(vo.RoleAdmin, Permission{ResourceTicket, Action("delete")}))
}

func TestCanViewTicket(t *testing.T) {
	const owner, other = uint(10), uint(11)

	assert.True(t, CanViewTicket(vo.RoleApplicant, owner, owner))
	assert.False(t, CanViewTicket(vo.RoleApplicant, other, owner))
	assert.False(t, CanViewTicket(vo.RoleApplicant, 0, 0))

	for _, role := range []vo.Role{vo.RoleStockman, vo.RoleManager, vo.RoleAdmin} {
		assert.True(t, CanViewTicket(role, other, owner), role.String())
		assert.True(t, CanCommentTicket(role, other, owner), role.String())
	}

	assert.False(t, CanCommentTicket(vo.RoleApplicant, other, owner))
	assert.False(t, CanViewTicket(vo.Role("ghost"), owner, owner))
	assert.Equal(t, ScopeNone, TicketScope(vo.Role("ghost")))
}

func TestGrants(t *testing.T) {
	assert.Equal(t, []Permission{ChangeStatus, ViewTicket, CommentTicket, ViewDashboard, ReadUpload}, Grants(vo.RoleStockman))
	assert.Contains(t, Grants(vo.RoleAdmin), ListUsers)
	assert.NotContains(t, Grants(vo.RoleManager), ChangeStatus)
	assert.Empty(t, Grants(vo.Role("nobody")))
}

func TestMatrix_CoversEveryRole(t *testing.T) {
	m := Matrix()
	assert.Len(t, m, len(vo.AllRoles))
	assert.Equal(t, []Permission{ListUsers}, filter(m[vo.RoleAdmin], ListUsers))
	assert.Empty(t, filter(m[vo.RoleStockman], CreateTicket))
}

func filter(ps []Permission, want Permission) []Permission {
	var out []Permission
	for _, p := range ps {
		if p == want {
			out = append(out, p)
		}
	}
	return out
}
