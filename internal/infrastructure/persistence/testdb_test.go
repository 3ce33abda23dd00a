package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/syncworks/backend/internal/infrastructure/persistence/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database with every table migrated
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// each pooled connection would get its own in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&models.CompanyModel{},
		&models.ReferrerModel{},
		&models.UserModel{},
		&models.SeasonRuleModel{},
		&models.HolidayModel{},
		&models.QuoteModel{},
		&models.TruckModel{},
		&models.EmployeeModel{},
		&models.ShiftModel{},
		&models.TruckAssignmentModel{},
	)
	require.NoError(t, err)
	return db
}
