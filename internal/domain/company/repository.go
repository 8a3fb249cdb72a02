package company

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for company persistence
type Repository interface {
	// FindByID finds a company by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)

	// FindByOwner finds the company owned by the given user
	FindByOwner(ctx context.Context, ownerUserID uuid.UUID) (*Company, error)

	// Save creates or updates a company
	Save(ctx context.Context, c *Company) error
}
