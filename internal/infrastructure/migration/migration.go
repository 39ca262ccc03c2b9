// Package migration applies the versioned schema changes with goose.
package migration

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"stockdesk/internal/shared/logger"
)

//go:embed scripts/sqlite/*.sql scripts/mysql/*.sql
var embedMigrations embed.FS

// Status is one row of the migration status report.
type Status struct {
	Version   int64
	Source    string
	Applied   bool
	AppliedAt time.Time
}

// Migrator runs the embedded migrations against the connected store.
// Applied versions are recorded in goose_db_version, so Up is safe to call on every start.
type Migrator struct {
	provider *goose.Provider
	dialect  string
	logger   logger.Interface
}

// NewMigrator builds a goose provider for the dialect behind db.
func NewMigrator(db *gorm.DB, log logger.Interface) (*Migrator, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	dialectName := db.Dialector.Name()
	var dialect goose.Dialect
	switch dialectName {
	case "sqlite":
		dialect = goose.DialectSQLite3
	case "mysql":
		dialect = goose.DialectMySQL
	default:
		return nil, fmt.Errorf("unsupported migration dialect: %s", dialectName)
	}

	scripts, err := fs.Sub(embedMigrations, "scripts/"+dialectName)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration scripts: %w", err)
	}

	provider, err := goose.NewProvider(dialect, sqlDB, scripts,
		goose.WithDisableGlobalRegistry(true),
		goose.WithGoMigrations(goMigrations(dialectName)...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}

	return &Migrator{
		provider: provider,
		dialect:  dialectName,
		logger:   log.With("component", "migration.goose"),
	}, nil
}

// Up applies every pending migration and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	m.logger.Infow("starting goose migration", "dialect", m.dialect)

	results, err := m.provider.Up(ctx)
	for _, r := range results {
		m.logResult(r)
	}
	if err != nil {
		m.logger.Errorw("migration failed", "error", err)
		return len(results), fmt.Errorf("failed to run migrations: %w", err)
	}

	version, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return len(results), fmt.Errorf("failed to get migration version: %w", err)
	}
	m.logger.Infow("goose migration completed",
		"applied", len(results),
		"version", version)
	return len(results), nil
}

// Down rolls back the given number of applied migrations.
func (m *Migrator) Down(ctx context.Context, steps int) error {
	if steps < 1 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	for i := 0; i < steps; i++ {
		version, err := m.Version(ctx)
		if err != nil {
			return err
		}
		if version == 0 {
			return nil
		}
		result, err := m.provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("failed to roll back migration %d: %w", version, err)
		}
		m.logResult(result)
	}
	return nil
}

// Version returns the highest applied version, 0 for an empty store.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, nil
}

// Status lists every known migration with its applied state.
func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	rows, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get migration status: %w", err)
	}
	out := make([]Status, 0, len(rows))
	for _, row := range rows {
		s := Status{
			Applied:   row.State == goose.StateApplied,
			AppliedAt: row.AppliedAt,
		}
		if row.Source != nil {
			s.Version = row.Source.Version
			s.Source = row.Source.Path
			if s.Source == "" {
				s.Source = fmt.Sprintf("go migration %05d", row.Source.Version)
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *Migrator) logResult(r *goose.MigrationResult) {
	if r == nil || r.Source == nil {
		return
	}
	m.logger.Infow("migration applied",
		"version", r.Source.Version,
		"direction", r.Direction,
		"duration", r.Duration)
}
