// Package testdb opens migrated in-memory SQLite databases for tests.
package testdb

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/orris-inc/memberhub/internal/infrastructure/database"
	"github.com/orris-inc/memberhub/internal/infrastructure/migration"
	"github.com/orris-inc/memberhub/internal/shared/config"
)

// Open returns a fresh database with every accounting table created. The
// connection is closed when the test finishes.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(migration.AutoMigrateModels()...))
	return gdb
}
