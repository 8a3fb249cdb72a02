package order

import (
	"context"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for order persistence. Save persists
// the order together with its line items.
type Repository interface {
	// FindByID finds an order with its items by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForTenant finds an order by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)

	// FindByOrderID finds an order by its storefront order id within a tenant
	FindByOrderID(ctx context.Context, tenantID uuid.UUID, orderID string) (*Order, error)

	// ExistsByOrderID reports whether an order with the storefront id
	// already exists within a tenant
	ExistsByOrderID(ctx context.Context, tenantID uuid.UUID, orderID string) (bool, error)

	// FindAllForTenant finds all orders for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Order, error)

	// CountForTenant counts orders for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates an order with its items
	Save(ctx context.Context, o *Order) error

	// DeleteForTenant deletes an order and its items within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
