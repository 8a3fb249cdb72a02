package catalog

import (
	"strings"
	"time"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the listing status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusArchived ProductStatus = "archived"
)

// IsValid returns true if the status is valid
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusDraft, ProductStatusArchived:
		return true
	default:
		return false
	}
}

// Product is a catalog product owned by one internal user account. A
// product carrying a RemoteID mirrors a storefront listing. Variants are
// replaced wholesale on local update, never patched row by row.
type Product struct {
	shared.BaseAggregateRoot

	OwnerUserID uuid.UUID

	// RemoteID is the storefront product id (bare form). Empty when the
	// product has never been pushed or pulled.
	RemoteID string

	Title       string
	Description string
	Vendor      string
	ProductType string
	Status      ProductStatus

	// Tags is a JSON-array-encoded string, same convention as customers.
	Tags string

	Variants []ProductVariant
}

// ProductVariant is one sellable variation of a product.
type ProductVariant struct {
	shared.BaseEntity

	ProductID uuid.UUID

	// RemoteID is the storefront variant id (bare form), if mirrored.
	RemoteID string

	Title             string
	SKU               string
	Price             decimal.Decimal
	InventoryQuantity int
}

// NewProduct creates a product owned by the given user
func NewProduct(ownerUserID uuid.UUID, title string) (*Product, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Product title is required")
	}
	if len(title) > 255 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Product title cannot exceed 255 characters")
	}
	if ownerUserID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Product owner is required")
	}
	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerUserID:       ownerUserID,
		Title:             title,
		Status:            ProductStatusDraft,
	}, nil
}

// IsRemote reports whether this product mirrors a storefront listing.
func (p *Product) IsRemote() bool {
	return p.RemoteID != ""
}

// MarkRemote records the platform-assigned id after a successful push.
func (p *Product) MarkRemote(remoteID string) {
	p.RemoteID = remoteID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// ReplaceVariants swaps the full variant set. SKUs must be unique within
// the submitted batch; persistence deletes the old rows and recreates.
func (p *Product) ReplaceVariants(variants []ProductVariant) error {
	seen := make(map[string]struct{}, len(variants))
	for i := range variants {
		sku := strings.TrimSpace(variants[i].SKU)
		if sku == "" {
			return shared.NewDomainError("INVALID_SKU", "Variant SKU is required")
		}
		if _, dup := seen[sku]; dup {
			return shared.NewDomainError("DUPLICATE_SKU", "Variant SKU '"+sku+"' appears more than once")
		}
		seen[sku] = struct{}{}
		variants[i].SKU = sku
		variants[i].ProductID = p.ID
		if variants[i].ID == uuid.Nil {
			variants[i].BaseEntity = shared.NewBaseEntity()
			variants[i].ProductID = p.ID
		}
	}
	p.Variants = variants
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// PruneVariantsByRemoteIDs drops local variants whose remote id is absent
// from the freshly fetched remote set. Variants without a remote id are
// locally originated and kept.
func (p *Product) PruneVariantsByRemoteIDs(remoteIDs map[string]struct{}) []ProductVariant {
	kept := make([]ProductVariant, 0, len(p.Variants))
	removed := make([]ProductVariant, 0)
	for _, v := range p.Variants {
		if v.RemoteID != "" {
			if _, ok := remoteIDs[v.RemoteID]; !ok {
				removed = append(removed, v)
				continue
			}
		}
		kept = append(kept, v)
	}
	p.Variants = kept
	if len(removed) > 0 {
		p.UpdatedAt = time.Now()
	}
	return removed
}

// VariantBySKU returns the variant with the given SKU, or nil.
func (p *Product) VariantBySKU(sku string) *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].SKU == sku {
			return &p.Variants[i]
		}
	}
	return nil
}
