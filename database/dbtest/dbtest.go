// Package dbtest provides an in-memory SQLite database with the full schema
// for tests.
package dbtest

import (
	"testing"

	"comic_portfolio/database"
	"comic_portfolio/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New returns a fresh, migrated database that is closed when t finishes.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), database.Options())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is its own database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// CreateUser inserts a regular active user.
func CreateUser(t testing.TB, db *gorm.DB, email string) *models.User {
	t.Helper()

	u, err := models.NewUser(email, "Test User", "testpass123")
	require.NoError(t, err)
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateAdmin inserts a staff superuser.
func CreateAdmin(t testing.TB, db *gorm.DB, email string) *models.User {
	t.Helper()

	u, err := models.NewSuperuser(email, "Admin", "testpass123")
	require.NoError(t, err)
	require.NoError(t, db.Create(u).Error)
	return u
}
