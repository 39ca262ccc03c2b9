package migration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"stockdesk/internal/shared/logger"
)

const latestVersion = 5

func openStore(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "warehouse.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newMigrator(t *testing.T, db *gorm.DB) *Migrator {
	t.Helper()
	m, err := NewMigrator(db, logger.NewNop())
	require.NoError(t, err)
	return m
}

func columnNames(t *testing.T, db *gorm.DB, table string) map[string]bool {
	t.Helper()
	types, err := db.Migrator().ColumnTypes(table)
	require.NoError(t, err)
	names := make(map[string]bool, len(types))
	for _, ct := range types {
		names[ct.Name()] = true
	}
	return names
}

func TestMigrator_UpOnEmptyStore(t *testing.T) {
	db := openStore(t)
	m := newMigrator(t, db)
	ctx := context.Background()

	applied, err := m.Up(ctx)
	require.NoError(t, err)
	assert.Equal(t, latestVersion, applied)

	version, err := m.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(latestVersion), version)

	for _, table := range []string{"users", "tickets", "comments", "sessions", "casbin_rule", "goose_db_version"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	cols := columnNames(t, db, "tickets")
	for _, c := range []string{"pickup_at", "pickup_recipient", "pickup_proof_path", "closed_at", "created_by_id"} {
		assert.True(t, cols[c], c)
	}
	assert.True(t, columnNames(t, db, "users")["created_at"])
}

func TestMigrator_UpIsIdempotent(t *testing.T) {
	db := openStore(t)
	ctx := context.Background()

	_, err := newMigrator(t, db).Up(ctx)
	require.NoError(t, err)
	before := columnNames(t, db, "tickets")

	applied, err := newMigrator(t, db).Up(ctx)
	require.NoError(t, err)
	assert.Zero(t, applied)
	assert.Equal(t, before, columnNames(t, db, "tickets"))
}

func TestMigrator_UpgradesLegacyStore(t *testing.T) {
	db := openStore(t)
	ctx := context.Background()

	legacy := []string{
		`CREATE TABLE users (id INTEGER NOT NULL PRIMARY KEY, username VARCHAR(50) NOT NULL UNIQUE,
			password_hash VARCHAR(128) NOT NULL, role VARCHAR(20) NOT NULL)`,
		`CREATE TABLE tickets (id INTEGER NOT NULL PRIMARY KEY, project_name VARCHAR(120) NOT NULL,
			applicant_name VARCHAR(120) NOT NULL, applicant_phone VARCHAR(40) NOT NULL,
			status VARCHAR(30), created_at DATETIME, pickup_recipient VARCHAR(120),
			pickup_proof_path VARCHAR(255), created_by_id INTEGER REFERENCES users (id))`,
		`CREATE TABLE comments (id INTEGER NOT NULL PRIMARY KEY, ticket_id INTEGER REFERENCES tickets (id),
			author_id INTEGER REFERENCES users (id), text TEXT, photo_path VARCHAR(255), created_at DATETIME)`,
		`INSERT INTO users (id, username, password_hash, role) VALUES (1, 'applicant1', 'x', 'applicant')`,
		`INSERT INTO tickets (id, project_name, applicant_name, applicant_phone, status, created_at, created_by_id)
			VALUES (1, 'Tower', 'Ivan', '+7 900', 'Готово к выдаче', '2024-03-01 10:00:00', 1)`,
		`INSERT INTO tickets (id, project_name, applicant_name, applicant_phone, status, created_at, created_by_id)
			VALUES (2, 'Bridge', 'Olga', '+7 901', NULL, '2024-03-02 10:00:00', 1)`,
		`INSERT INTO comments (ticket_id, author_id, text, created_at) VALUES (1, 1, 'need cement', '2024-03-01 10:00:00')`,
	}
	for _, stmt := range legacy {
		require.NoError(t, db.Exec(stmt).Error)
	}

	_, err := newMigrator(t, db).Up(ctx)
	require.NoError(t, err)

	cols := columnNames(t, db, "tickets")
	assert.True(t, cols["pickup_at"])
	assert.True(t, cols["closed_at"])
	assert.True(t, columnNames(t, db, "users")["created_at"])

	var statuses []string
	require.NoError(t, db.Raw("SELECT status FROM tickets ORDER BY id").Scan(&statuses).Error)
	assert.Equal(t, []string{"ready_for_pickup", "new"}, statuses)

	var comments int64
	require.NoError(t, db.Table("comments").Count(&comments).Error)
	assert.Equal(t, int64(1), comments)
}

func TestMigrator_DownAndStatus(t *testing.T) {
	db := openStore(t)
	m := newMigrator(t, db)
	ctx := context.Background()

	_, err := m.Up(ctx)
	require.NoError(t, err)
	require.NoError(t, db.Exec(`INSERT INTO tickets (project_name, applicant_name, applicant_phone, status, created_at)
		VALUES ('Tower', 'Ivan', '+7 900', 'closed', '2024-03-01 10:00:00')`).Error)

	require.NoError(t, m.Down(ctx, 3))

	version, err := m.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
	assert.False(t, db.Migrator().HasTable("sessions"))
	assert.False(t, db.Migrator().HasTable("casbin_rule"))

	var status string
	require.NoError(t, db.Raw("SELECT status FROM tickets").Scan(&status).Error)
	assert.Equal(t, "Закрыта", status)

	rows, err := m.Status(ctx)
	require.NoError(t, err)
	require.Len(t, rows, latestVersion)
	applied := map[int64]bool{}
	for _, r := range rows {
		applied[r.Version] = r.Applied
		assert.NotEmpty(t, r.Source)
	}
	assert.Equal(t, map[int64]bool{1: true, 2: true, 3: false, 4: false, 5: false}, applied)

	assert.Error(t, m.Down(ctx, 0))
}
