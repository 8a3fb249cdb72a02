package models

import (
	"github.com/backoffice/backend/internal/domain/company"
	"github.com/google/uuid"
)

// CompanyModel is the persistence model for the Company aggregate.
type CompanyModel struct {
	AggregateModel
	Name        string    `gorm:"type:varchar(200);not null"`
	OwnerUserID uuid.UUID `gorm:"type:uuid;not null;index"`

	CatalogDomain      string `gorm:"type:varchar(255)"`
	CatalogAccessToken string `gorm:"type:varchar(255)"`

	ShippingEmail string `gorm:"type:varchar(255)"`
	ShippingToken string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company.
func (m *CompanyModel) ToDomain() *company.Company {
	return &company.Company{
		BaseAggregateRoot:  m.ToDomainAggregateRoot(),
		Name:               m.Name,
		OwnerUserID:        m.OwnerUserID,
		CatalogDomain:      m.CatalogDomain,
		CatalogAccessToken: m.CatalogAccessToken,
		ShippingEmail:      m.ShippingEmail,
		ShippingToken:      m.ShippingToken,
	}
}

// FromDomain populates the persistence model from a domain Company.
func (m *CompanyModel) FromDomain(c *company.Company) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.OwnerUserID = c.OwnerUserID
	m.CatalogDomain = c.CatalogDomain
	m.CatalogAccessToken = c.CatalogAccessToken
	m.ShippingEmail = c.ShippingEmail
	m.ShippingToken = c.ShippingToken
}

// CompanyModelFromDomain creates a new persistence model from a domain Company.
func CompanyModelFromDomain(c *company.Company) *CompanyModel {
	m := &CompanyModel{}
	m.FromDomain(c)
	return m
}
