package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdesk/internal/shared/config"
)

func TestOpen_SQLiteCreatesDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := &config.DatabaseConfig{Driver: "sqlite", File: "warehouse.db"}

	db, err := Open(cfg, dataDir)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, db.Exec("CREATE TABLE scratch (id INTEGER PRIMARY KEY)").Error)
	_, err = os.Stat(filepath.Join(dataDir, "warehouse.db"))
	assert.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"}, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestInitGetClose(t *testing.T) {
	cfg := &config.DatabaseConfig{Driver: "sqlite", File: ":memory:"}
	require.NoError(t, Init(cfg, t.TempDir()))
	assert.NotNil(t, Get())
	assert.NoError(t, Close())
}
