package models

import (
	"encoding/json"
	"fmt"

	"github.com/backoffice/backend/internal/domain/customer"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer aggregate.
// RemoteID carries a global unique index: one storefront customer record
// maps to at most one local customer across all companies.
type CustomerModel struct {
	TenantAggregateModel
	RemoteID  string `gorm:"column:remote_customer_id;type:varchar(64);uniqueIndex:idx_customers_remote_id,where:remote_customer_id <> ''"`
	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`
	Email     string `gorm:"type:varchar(200);index"`
	Phone     string `gorm:"type:varchar(50)"`

	CustomerCode      string `gorm:"type:varchar(50)"`
	ValidEmailAddress bool   `gorm:"not null;default:false"`
	Note              string `gorm:"type:text"`
	Tags              string `gorm:"type:text"`

	City               string `gorm:"type:varchar(100)"`
	State              string `gorm:"type:varchar(100)"`
	Country            string `gorm:"type:varchar(100)"`
	DefaultAddressLine string `gorm:"type:varchar(255)"`
	DefaultAddressArea string `gorm:"type:varchar(255)"`

	// Addresses is the full address list serialized as a JSON array.
	Addresses string `gorm:"type:jsonb"`

	TotalSpent  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	OrdersCount int64           `gorm:"not null;default:0"`
	CanDelete   bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer.
func (m *CustomerModel) ToDomain() (*customer.Customer, error) {
	var addresses []customer.Address
	if m.Addresses != "" {
		if err := json.Unmarshal([]byte(m.Addresses), &addresses); err != nil {
			return nil, fmt.Errorf("decoding stored addresses for customer %s: %w", m.ID, err)
		}
	}
	return &customer.Customer{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		RemoteID:            m.RemoteID,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		Email:               m.Email,
		Phone:               m.Phone,
		CustomerCode:        m.CustomerCode,
		ValidEmailAddress:   m.ValidEmailAddress,
		Note:                m.Note,
		Tags:                m.Tags,
		City:                m.City,
		State:               m.State,
		Country:             m.Country,
		DefaultAddressLine:  m.DefaultAddressLine,
		DefaultAddressArea:  m.DefaultAddressArea,
		Addresses:           addresses,
		TotalSpent:          m.TotalSpent,
		OrdersCount:         m.OrdersCount,
		CanDelete:           m.CanDelete,
	}, nil
}

// FromDomain populates the persistence model from a domain Customer.
func (m *CustomerModel) FromDomain(c *customer.Customer) error {
	addresses := c.Addresses
	if addresses == nil {
		addresses = []customer.Address{}
	}
	raw, err := json.Marshal(addresses)
	if err != nil {
		return fmt.Errorf("encoding addresses for customer %s: %w", c.ID, err)
	}
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.RemoteID = c.RemoteID
	m.FirstName = c.FirstName
	m.LastName = c.LastName
	m.Email = c.Email
	m.Phone = c.Phone
	m.CustomerCode = c.CustomerCode
	m.ValidEmailAddress = c.ValidEmailAddress
	m.Note = c.Note
	m.Tags = c.Tags
	m.City = c.City
	m.State = c.State
	m.Country = c.Country
	m.DefaultAddressLine = c.DefaultAddressLine
	m.DefaultAddressArea = c.DefaultAddressArea
	m.Addresses = string(raw)
	m.TotalSpent = c.TotalSpent
	m.OrdersCount = c.OrdersCount
	m.CanDelete = c.CanDelete
	return nil
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer.
func CustomerModelFromDomain(c *customer.Customer) (*CustomerModel, error) {
	m := &CustomerModel{}
	if err := m.FromDomain(c); err != nil {
		return nil, err
	}
	return m, nil
}
