package dto

import (
	"github.com/backoffice/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// VariantRequest is one variant of a product create or update request
type VariantRequest struct {
	Title             string          `json:"title" binding:"max=255"`
	SKU               string          `json:"sku" binding:"max=64"`
	Price             decimal.Decimal `json:"price"`
	InventoryQuantity int             `json:"inventory_quantity" binding:"min=0"`
}

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Title       string           `json:"title" binding:"required,max=255"`
	Description string           `json:"description"`
	Vendor      string           `json:"vendor" binding:"max=255"`
	ProductType string           `json:"product_type" binding:"max=255"`
	Status      string           `json:"status" binding:"omitempty,oneof=active draft archived"`
	Tags        string           `json:"tags"`
	Variants    []VariantRequest `json:"variants"`
}

// UpdateProductRequest represents a partial product update. A non-nil
// variants list replaces the whole set.
type UpdateProductRequest struct {
	Title       *string          `json:"title" binding:"omitempty,max=255"`
	Description *string          `json:"description"`
	Vendor      *string          `json:"vendor" binding:"omitempty,max=255"`
	ProductType *string          `json:"product_type" binding:"omitempty,max=255"`
	Status      *string          `json:"status" binding:"omitempty,oneof=active draft archived"`
	Tags        *string          `json:"tags"`
	Variants    []VariantRequest `json:"variants"`
}

// VariantResponse represents a product variant in API responses
type VariantResponse struct {
	ID                string          `json:"id"`
	RemoteID          string          `json:"remote_id,omitempty"`
	Title             string          `json:"title"`
	SKU               string          `json:"sku"`
	Price             decimal.Decimal `json:"price"`
	InventoryQuantity int             `json:"inventory_quantity"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          string            `json:"id"`
	RemoteID    string            `json:"remote_id,omitempty"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Vendor      string            `json:"vendor,omitempty"`
	ProductType string            `json:"product_type,omitempty"`
	Status      string            `json:"status"`
	Tags        string            `json:"tags,omitempty"`
	Variants    []VariantResponse `json:"variants"`
	TimestampResponse
}

// NewProductResponse maps a domain product to its response form
func NewProductResponse(p *catalog.Product) ProductResponse {
	variants := make([]VariantResponse, len(p.Variants))
	for i := range p.Variants {
		v := &p.Variants[i]
		variants[i] = VariantResponse{
			ID:                v.ID.String(),
			RemoteID:          v.RemoteID,
			Title:             v.Title,
			SKU:               v.SKU,
			Price:             v.Price,
			InventoryQuantity: v.InventoryQuantity,
		}
	}
	return ProductResponse{
		ID:          p.ID.String(),
		RemoteID:    p.RemoteID,
		Title:       p.Title,
		Description: p.Description,
		Vendor:      p.Vendor,
		ProductType: p.ProductType,
		Status:      string(p.Status),
		Tags:        p.Tags,
		Variants:    variants,
		TimestampResponse: TimestampResponse{
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		},
	}
}

// NewProductListResponse maps a product slice to response form
func NewProductListResponse(items []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(items))
	for i := range items {
		out[i] = NewProductResponse(&items[i])
	}
	return out
}
