// Package permission stores the role policy in casbin_rule and evaluates it with casbin.
package permission

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"stockdesk/internal/domain/permission"
	vo "stockdesk/internal/domain/user/valueobjects"
	"stockdesk/internal/shared/logger"
)

var _ permission.Enforcer = (*Enforcer)(nil)

// rbacModel is a flat role, resource, action table; roles do not inherit.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer loads the stored rules. casbin_rule is created by the goose migrations,
// so the adapter's own auto-migration is switched off.
func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapterDB := db.WithContext(context.Background())
	gormadapter.TurnOffAutoMigrate(adapterDB)

	adapter, err := gormadapter.NewAdapterByDB(adapterDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

func (e *Enforcer) Enforce(role vo.Role, p permission.Permission) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(string(role), string(p.Resource), string(p.Action))
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "permission", p.String())
		return false, fmt.Errorf("permission check failed: %w", err)
	}

	return allowed, nil
}

// Sync makes the stored rules equal to rules. Only the difference is written, each change
// through the adapter's auto-save, so the whole table is never rewritten.
func (e *Enforcer) Sync(rules map[vo.Role][]permission.Permission) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	wanted := policyRows(rules)
	current, err := e.enforcer.GetPolicy()
	if err != nil {
		return fmt.Errorf("failed to read policies: %w", err)
	}

	stale := missingRows(current, wanted)
	fresh := missingRows(wanted, current)

	if len(stale) > 0 {
		if _, err := e.enforcer.RemovePolicies(stale); err != nil {
			e.logger.Errorw("failed to remove stale policies", "error", err, "count", len(stale))
			return fmt.Errorf("failed to remove policies: %w", err)
		}
	}
	if len(fresh) > 0 {
		if _, err := e.enforcer.AddPolicies(fresh); err != nil {
			e.logger.Errorw("failed to add policies", "error", err, "count", len(fresh))
			return fmt.Errorf("failed to add policies: %w", err)
		}
	}

	e.logger.Infow("permission policy synced",
		"rules", len(wanted),
		"added", len(fresh),
		"removed", len(stale))
	return nil
}

// LoadPolicy re-reads casbin_rule.
func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}
	return nil
}

// missingRows returns the rows of from that are absent in other.
func missingRows(from, other [][]string) [][]string {
	seen := make(map[string]struct{}, len(other))
	for _, row := range other {
		seen[strings.Join(row, "\x00")] = struct{}{}
	}
	var out [][]string
	for _, row := range from {
		if _, ok := seen[strings.Join(row, "\x00")]; !ok {
			out = append(out, row)
		}
	}
	return out
}

func policyRows(rules map[vo.Role][]permission.Permission) [][]string {
	var rows [][]string
	for role, perms := range rules {
		for _, p := range perms {
			rows = append(rows, []string{string(role), string(p.Resource), string(p.Action)})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		for k := range rows[i] {
			if rows[i][k] != rows[j][k] {
				return rows[i][k] < rows[j][k]
			}
		}
		return false
	})
	return rows
}
