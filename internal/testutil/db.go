// Package testutil holds fixtures shared by the package tests.
package testutil

import (
	"strings"
	"testing"
	"time"

	"eventteam/database"
	"eventteam/internal/clock"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Epoch is the default test "now": a Friday afternoon in UTC+03:00.
var Epoch = time.Date(2024, 3, 15, 14, 30, 0, 0, clock.Zone(3*time.Hour))

// NewClock returns a manual clock set to Epoch.
func NewClock() *clock.Manual {
	return clock.NewManual(Epoch)
}

// NewDB opens a migrated in-memory SQLite database private to the test.
func NewDB(t testing.TB, clk clock.Clock) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open("sqlite", "file:"+name+"?mode=memory&cache=shared", clk, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
