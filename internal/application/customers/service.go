package customers

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/backoffice/backend/internal/domain/customer"
	"github.com/backoffice/backend/internal/domain/shared"
)

// CreateInput carries the fields for a new customer.
type CreateInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	CustomerCode string
	Note         string
	Tags         []string
	Addresses    []customer.Address
	CanDelete    bool
}

// UpdateInput carries a partial customer update. Nil pointers leave the
// field alone.
type UpdateInput struct {
	FirstName    *string
	LastName     *string
	Email        *string
	Phone        *string
	CustomerCode *string
	Note         *string
	Tags         []string
	Addresses    []customer.Address
	CanDelete    *bool
}

// Service provides the back-office customer operations. Storefront sync
// and push live in the sync service; this covers the local lifecycle.
type Service struct {
	customers customer.Repository
	logger    *zap.Logger
}

// NewService creates a customer service.
func NewService(customers customer.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{customers: customers, logger: logger}
}

// List returns a page of customers with the total count.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]customer.Customer, int64, error) {
	items, err := s.customers.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customers.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Get returns one customer within the company.
func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (*customer.Customer, error) {
	return s.customers.FindByIDForTenant(ctx, tenantID, id)
}

// Create stores a new locally-originated customer.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, input CreateInput) (*customer.Customer, error) {
	c, err := customer.NewCustomer(tenantID, input.FirstName, input.LastName, input.Email, input.Phone)
	if err != nil {
		return nil, err
	}
	c.CustomerCode = input.CustomerCode
	c.Note = input.Note
	c.CanDelete = input.CanDelete
	if err := c.SetTagList(input.Tags); err != nil {
		return nil, err
	}
	if len(input.Addresses) > 0 {
		if err := c.SetAddresses(input.Addresses); err != nil {
			return nil, err
		}
	}
	if err := s.customers.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update applies a partial update to a customer.
func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateInput) (*customer.Customer, error) {
	c, err := s.customers.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	email := c.Email
	phone := c.Phone
	if input.Email != nil {
		email = *input.Email
	}
	if input.Phone != nil {
		phone = *input.Phone
	}
	if input.Email != nil || input.Phone != nil {
		if err := c.SetContact(email, phone); err != nil {
			return nil, err
		}
	}
	if input.FirstName != nil {
		c.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		c.LastName = *input.LastName
	}
	if input.CustomerCode != nil {
		c.CustomerCode = *input.CustomerCode
	}
	if input.Note != nil {
		c.Note = *input.Note
	}
	if input.CanDelete != nil {
		c.CanDelete = *input.CanDelete
	}
	if input.Tags != nil {
		if err := c.SetTagList(input.Tags); err != nil {
			return nil, err
		}
	}
	if input.Addresses != nil {
		if err := c.SetAddresses(input.Addresses); err != nil {
			return nil, err
		}
	}

	c.RefreshDerived()
	c.Touch()
	c.IncrementVersion()
	if err := s.customers.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
