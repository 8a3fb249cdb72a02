package persistence

import (
	"context"

	"github.com/backoffice/backend/internal/application/orderimport"
	"github.com/backoffice/backend/internal/domain/customer"
	"github.com/backoffice/backend/internal/domain/order"
	"gorm.io/gorm"
)

// GormImportScope implements the order import transaction scope using
// GORM transactions. All orders of one import run commit or roll back
// together.
type GormImportScope struct {
	db *gorm.DB
}

// NewGormImportScope creates a new GormImportScope.
func NewGormImportScope(db *gorm.DB) *GormImportScope {
	return &GormImportScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormImportScope) Execute(ctx context.Context, fn func(repos orderimport.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormImportRepositories{tx: tx}
		return fn(repos)
	})
}

// gormImportRepositories provides the import repositories bound to one transaction.
type gormImportRepositories struct {
	tx *gorm.DB
}

// CustomerRepo returns the customer repository scoped to the current transaction.
func (r *gormImportRepositories) CustomerRepo() customer.Repository {
	return NewGormCustomerRepository(r.tx)
}

// OrderRepo returns the order repository scoped to the current transaction.
func (r *gormImportRepositories) OrderRepo() order.Repository {
	return NewGormOrderRepository(r.tx)
}

var _ orderimport.TransactionScope = (*GormImportScope)(nil)
var _ orderimport.TransactionalRepositories = (*gormImportRepositories)(nil)
