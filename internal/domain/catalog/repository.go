package catalog

import (
	"context"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for product persistence. Save persists
// the product together with its full variant set; the previous variant
// rows are replaced, not patched.
type Repository interface {
	// FindByID finds a product with its variants by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDForOwner finds a product by ID owned by the given user
	FindByIDForOwner(ctx context.Context, ownerUserID, id uuid.UUID) (*Product, error)

	// FindByRemoteID finds a product by its storefront id for an owner
	FindByRemoteID(ctx context.Context, ownerUserID uuid.UUID, remoteID string) (*Product, error)

	// FindAllForOwner finds all products owned by the given user
	FindAllForOwner(ctx context.Context, ownerUserID uuid.UUID, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product, replacing its variant rows
	Save(ctx context.Context, p *Product) error

	// DeleteForOwner deletes a product and its variants
	DeleteForOwner(ctx context.Context, ownerUserID, id uuid.UUID) error
}
