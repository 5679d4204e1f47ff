// Package dbtest opens a migrated in-memory SQLite database for tests.
package dbtest

import (
	"context"
	"testing"

	"tour-admin/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a fresh database with every migration applied. A single
// connection is used so the in-memory database is shared by all queries.
func Open(t testing.TB) *database.Conn {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	_, err = database.Migrate(context.Background(), db)
	require.NoError(t, err)

	conn, err := database.FromGorm(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}
