package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sals_backend/internal/config"
	"sals_backend/internal/model"
)

func TestDialectorByDriver(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		d, err := Dialector(&config.DatabaseConfig{Driver: driver, Path: ":memory:"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestInitDBAndMigrateSqlite(t *testing.T) {
	db, err := InitDB(&config.DatabaseConfig{Driver: "sqlite", Path: "file::memory:"})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Migrate(db))

	for _, m := range model.All() {
		assert.True(t, db.Migrator().HasTable(m))
	}
}
