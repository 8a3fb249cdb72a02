package persistence

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/backoffice/backend/internal/domain/company"
	"github.com/backoffice/backend/internal/infrastructure/persistence/models"
)

// newTestDB opens an in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared&_fk=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.CompanyModel{},
		&models.CustomerModel{},
		&models.ProductModel{},
		&models.ProductVariantModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// newTestCompany builds a company aggregate for repository tests.
func newTestCompany(t *testing.T) *company.Company {
	t.Helper()
	comp, err := company.NewCompany("Acme Traders", uuid.New())
	require.NoError(t, err)
	return comp
}
