package models

import (
	"github.com/backoffice/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product aggregate.
type ProductModel struct {
	AggregateModel
	OwnerUserID uuid.UUID `gorm:"type:uuid;not null;index"`
	RemoteID    string    `gorm:"column:remote_product_id;type:varchar(64);index"`

	Title       string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text"`
	Vendor      string `gorm:"type:varchar(200)"`
	ProductType string `gorm:"type:varchar(200)"`
	Status      string `gorm:"type:varchar(20);not null;default:'draft'"`
	Tags        string `gorm:"type:text"`

	Variants []ProductVariantModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ProductVariantModel is the persistence model for one product variant.
type ProductVariantModel struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	RemoteID  string    `gorm:"column:remote_variant_id;type:varchar(64);index"`

	Title             string          `gorm:"type:varchar(255)"`
	SKU               string          `gorm:"type:varchar(100);index"`
	Price             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	InventoryQuantity int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductVariantModel) TableName() string {
	return "product_variants"
}

// ToDomain converts the persistence model to a domain Product with variants.
func (m *ProductModel) ToDomain() *catalog.Product {
	variants := make([]catalog.ProductVariant, 0, len(m.Variants))
	for i := range m.Variants {
		variants = append(variants, m.Variants[i].ToDomainVariant())
	}
	return &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OwnerUserID:       m.OwnerUserID,
		RemoteID:          m.RemoteID,
		Title:             m.Title,
		Description:       m.Description,
		Vendor:            m.Vendor,
		ProductType:       m.ProductType,
		Status:            catalog.ProductStatus(m.Status),
		Tags:              m.Tags,
		Variants:          variants,
	}
}

// FromDomain populates the persistence model from a domain Product.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.OwnerUserID = p.OwnerUserID
	m.RemoteID = p.RemoteID
	m.Title = p.Title
	m.Description = p.Description
	m.Vendor = p.Vendor
	m.ProductType = p.ProductType
	m.Status = string(p.Status)
	m.Tags = p.Tags
	m.Variants = make([]ProductVariantModel, 0, len(p.Variants))
	for i := range p.Variants {
		var vm ProductVariantModel
		vm.FromDomainVariant(&p.Variants[i])
		m.Variants = append(m.Variants, vm)
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ToDomainVariant converts the persistence model to a domain ProductVariant.
func (m *ProductVariantModel) ToDomainVariant() catalog.ProductVariant {
	return catalog.ProductVariant{
		BaseEntity:        m.BaseModel.ToDomain(),
		ProductID:         m.ProductID,
		RemoteID:          m.RemoteID,
		Title:             m.Title,
		SKU:               m.SKU,
		Price:             m.Price,
		InventoryQuantity: m.InventoryQuantity,
	}
}

// FromDomainVariant populates the persistence model from a domain ProductVariant.
func (m *ProductVariantModel) FromDomainVariant(v *catalog.ProductVariant) {
	m.FromDomainBaseEntity(v.BaseEntity)
	m.ProductID = v.ProductID
	m.RemoteID = v.RemoteID
	m.Title = v.Title
	m.SKU = v.SKU
	m.Price = v.Price
	m.InventoryQuantity = v.InventoryQuantity
}
