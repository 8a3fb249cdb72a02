package orderimport

import (
	"context"

	"github.com/backoffice/backend/internal/domain/customer"
	"github.com/backoffice/backend/internal/domain/order"
)

// TransactionScope provides transactional access to the repositories the
// order import touches. Everything executed within one scope commits or
// rolls back as a unit: a hard persistence failure on any order undoes
// the whole batch.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the customer and order
// repositories within a transaction. Both repositories share the same
// underlying database transaction.
type TransactionalRepositories interface {
	// CustomerRepo returns the customer repository scoped to the current transaction
	CustomerRepo() customer.Repository
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() order.Repository
}

// NoOpTransactionScope runs the function against plain repositories with
// no real transaction. Useful for tests.
type NoOpTransactionScope struct {
	customerRepo customer.Repository
	orderRepo    order.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories.
func NewNoOpTransactionScope(customerRepo customer.Repository, orderRepo order.Repository) *NoOpTransactionScope {
	return &NoOpTransactionScope{customerRepo: customerRepo, orderRepo: orderRepo}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// CustomerRepo returns the customer repository.
func (s *NoOpTransactionScope) CustomerRepo() customer.Repository { return s.customerRepo }

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() order.Repository { return s.orderRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
