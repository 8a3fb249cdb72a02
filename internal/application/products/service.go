package products

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/backoffice/backend/internal/domain/catalog"
	"github.com/backoffice/backend/internal/domain/shared"
)

// VariantInput carries one variant of a create or update request.
type VariantInput struct {
	Title             string
	SKU               string
	Price             decimal.Decimal
	InventoryQuantity int
}

// CreateInput carries the fields for a new product.
type CreateInput struct {
	Title       string
	Description string
	Vendor      string
	ProductType string
	Status      catalog.ProductStatus
	Tags        string
	Variants    []VariantInput
}

// UpdateInput carries a partial product update. Nil pointers leave the
// field alone; a non-nil Variants slice replaces the whole set.
type UpdateInput struct {
	Title       *string
	Description *string
	Vendor      *string
	ProductType *string
	Status      *catalog.ProductStatus
	Tags        *string
	Variants    []VariantInput
}

// Service provides the back-office catalog operations. Storefront sync
// and push live in the sync service.
type Service struct {
	products catalog.Repository
	logger   *zap.Logger
}

// NewService creates a product service.
func NewService(products catalog.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{products: products, logger: logger}
}

// List returns products owned by the given user.
func (s *Service) List(ctx context.Context, ownerUserID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	return s.products.FindAllForOwner(ctx, ownerUserID, filter)
}

// Get returns one product with its variants.
func (s *Service) Get(ctx context.Context, ownerUserID, id uuid.UUID) (*catalog.Product, error) {
	return s.products.FindByIDForOwner(ctx, ownerUserID, id)
}

// Create stores a new locally-originated product with its variants.
func (s *Service) Create(ctx context.Context, ownerUserID uuid.UUID, input CreateInput) (*catalog.Product, error) {
	p, err := catalog.NewProduct(ownerUserID, input.Title)
	if err != nil {
		return nil, err
	}
	p.Description = input.Description
	p.Vendor = input.Vendor
	p.ProductType = input.ProductType
	if input.Status != "" {
		if !input.Status.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown product status '"+string(input.Status)+"'")
		}
		p.Status = input.Status
	}
	p.Tags = input.Tags
	if err := p.ReplaceVariants(toDomainVariants(input.Variants)); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies a partial update to a product.
func (s *Service) Update(ctx context.Context, ownerUserID, id uuid.UUID, input UpdateInput) (*catalog.Product, error) {
	p, err := s.products.FindByIDForOwner(ctx, ownerUserID, id)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Vendor != nil {
		p.Vendor = *input.Vendor
	}
	if input.ProductType != nil {
		p.ProductType = *input.ProductType
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown product status '"+string(*input.Status)+"'")
		}
		p.Status = *input.Status
	}
	if input.Tags != nil {
		p.Tags = *input.Tags
	}
	if input.Variants != nil {
		// Preserve remote ids of variants that keep their SKU.
		remoteBySKU := make(map[string]string, len(p.Variants))
		for i := range p.Variants {
			if p.Variants[i].RemoteID != "" {
				remoteBySKU[p.Variants[i].SKU] = p.Variants[i].RemoteID
			}
		}
		variants := toDomainVariants(input.Variants)
		for i := range variants {
			variants[i].RemoteID = remoteBySKU[variants[i].SKU]
		}
		if err := p.ReplaceVariants(variants); err != nil {
			return nil, err
		}
	}

	p.Touch()
	p.IncrementVersion()
	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a product and its variants from the back office. The
// storefront listing, if any, is left untouched.
func (s *Service) Delete(ctx context.Context, ownerUserID, id uuid.UUID) error {
	return s.products.DeleteForOwner(ctx, ownerUserID, id)
}

func toDomainVariants(inputs []VariantInput) []catalog.ProductVariant {
	variants := make([]catalog.ProductVariant, len(inputs))
	for i, v := range inputs {
		variants[i] = catalog.ProductVariant{
			Title:             v.Title,
			SKU:               v.SKU,
			Price:             v.Price,
			InventoryQuantity: v.InventoryQuantity,
		}
	}
	return variants
}
