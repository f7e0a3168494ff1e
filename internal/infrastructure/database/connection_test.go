package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/memberhub/internal/shared/config"
)

func TestOpen_SQLite(t *testing.T) {
	db, err := Open(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	require.NoError(t, sqlDB.Close())
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestIsSchemaProbe(t *testing.T) {
	assert.True(t, isSchemaProbe("SELECT SCHEMA_NAME from Information_schema.schemata"))
	assert.True(t, isSchemaProbe("SELECT count(*) FROM sqlite_master WHERE type='table'"))
	assert.False(t, isSchemaProbe("SELECT * FROM recharges"))
}
