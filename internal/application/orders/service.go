package orders

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/backoffice/backend/internal/domain/order"
	"github.com/backoffice/backend/internal/domain/shared"
)

// Service provides the back-office order operations. Importing from the
// storefront lives in the order import service; this covers reading and
// the restricted local mutations.
type Service struct {
	orders order.Repository
	logger *zap.Logger
}

// NewService creates an order service.
func NewService(orders order.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{orders: orders, logger: logger}
}

// List returns a page of orders with the total count.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]order.Order, int64, error) {
	items, err := s.orders.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orders.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Get returns one order with its line items.
func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (*order.Order, error) {
	return s.orders.FindByIDForTenant(ctx, tenantID, id)
}

// Update applies a partial update. External orders accept only the
// allow-listed fields; a request touching anything else is rejected as a
// whole.
func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, changes order.Changes) (*order.Order, error) {
	o, err := s.orders.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := o.Apply(changes); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Delete removes a manually entered order. Imported orders are protected.
func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	o, err := s.orders.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := o.EnsureDeletable(); err != nil {
		return err
	}
	return s.orders.DeleteForTenant(ctx, tenantID, id)
}
