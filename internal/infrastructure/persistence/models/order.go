package models

import (
	"time"

	"github.com/backoffice/backend/internal/domain/customer"
	"github.com/backoffice/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate. The
// storefront display number is unique per company, not globally.
type OrderModel struct {
	TenantAggregateModel
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`

	// OrderID uniqueness per tenant is enforced by the schema migration.
	OrderID       string `gorm:"type:varchar(64);not null;index"`
	RemoteOrderID string `gorm:"column:remote_order_id;type:varchar(64);index"`

	Source string `gorm:"type:varchar(20);not null"`
	Status string `gorm:"type:varchar(20);not null;default:'pending'"`

	Email string `gorm:"type:varchar(200)"`
	Phone string `gorm:"type:varchar(50)"`

	FinancialStatus   string `gorm:"type:varchar(50)"`
	FulfillmentStatus string `gorm:"type:varchar(50)"`

	Subtotal      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalTax      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalShipping decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency      string          `gorm:"type:varchar(3)"`

	Tags          string `gorm:"type:text"`
	InternalNotes string `gorm:"type:text"`

	ShippingAddress1 string `gorm:"type:varchar(255)"`
	ShippingAddress2 string `gorm:"type:varchar(255)"`
	ShippingCity     string `gorm:"type:varchar(100)"`
	ShippingProvince string `gorm:"type:varchar(100)"`
	ShippingCountry  string `gorm:"type:varchar(100)"`
	ShippingZip      string `gorm:"type:varchar(20)"`
	ShippingPhone    string `gorm:"type:varchar(50)"`

	PlacedAt *time.Time `gorm:"index"`

	Items []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the persistence model for one order line.
type OrderItemModel struct {
	BaseModel
	OrderID uuid.UUID `gorm:"type:uuid;not null;index"`

	Title      string          `gorm:"type:varchar(255);not null"`
	SKU        string          `gorm:"type:varchar(100)"`
	Quantity   int             `gorm:"not null;default:1"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain Order with items.
func (m *OrderModel) ToDomain() *order.Order {
	items := make([]order.OrderItem, 0, len(m.Items))
	for i := range m.Items {
		items = append(items, m.Items[i].ToDomainItem())
	}
	return &order.Order{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		CustomerID:          m.CustomerID,
		OrderID:             m.OrderID,
		RemoteOrderID:       m.RemoteOrderID,
		Source:              order.Source(m.Source),
		Status:              order.Status(m.Status),
		Email:               m.Email,
		Phone:               m.Phone,
		FinancialStatus:     m.FinancialStatus,
		FulfillmentStatus:   m.FulfillmentStatus,
		Subtotal:            m.Subtotal,
		TotalTax:            m.TotalTax,
		TotalShipping:       m.TotalShipping,
		Total:               m.Total,
		Currency:            m.Currency,
		Tags:                m.Tags,
		InternalNotes:       m.InternalNotes,
		ShippingAddress: customer.Address{
			Address1: m.ShippingAddress1,
			Address2: m.ShippingAddress2,
			City:     m.ShippingCity,
			Province: m.ShippingProvince,
			Country:  m.ShippingCountry,
			Zip:      m.ShippingZip,
			Phone:    m.ShippingPhone,
		},
		PlacedAt: m.PlacedAt,
		Items:    items,
	}
}

// FromDomain populates the persistence model from a domain Order.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	m.CustomerID = o.CustomerID
	m.OrderID = o.OrderID
	m.RemoteOrderID = o.RemoteOrderID
	m.Source = string(o.Source)
	m.Status = string(o.Status)
	m.Email = o.Email
	m.Phone = o.Phone
	m.FinancialStatus = o.FinancialStatus
	m.FulfillmentStatus = o.FulfillmentStatus
	m.Subtotal = o.Subtotal
	m.TotalTax = o.TotalTax
	m.TotalShipping = o.TotalShipping
	m.Total = o.Total
	m.Currency = o.Currency
	m.Tags = o.Tags
	m.InternalNotes = o.InternalNotes
	m.ShippingAddress1 = o.ShippingAddress.Address1
	m.ShippingAddress2 = o.ShippingAddress.Address2
	m.ShippingCity = o.ShippingAddress.City
	m.ShippingProvince = o.ShippingAddress.Province
	m.ShippingCountry = o.ShippingAddress.Country
	m.ShippingZip = o.ShippingAddress.Zip
	m.ShippingPhone = o.ShippingAddress.Phone
	m.PlacedAt = o.PlacedAt
	m.Items = make([]OrderItemModel, 0, len(o.Items))
	for i := range o.Items {
		var im OrderItemModel
		im.FromDomainItem(&o.Items[i])
		m.Items = append(m.Items, im)
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// ToDomainItem converts the persistence model to a domain OrderItem.
func (m *OrderItemModel) ToDomainItem() order.OrderItem {
	return order.OrderItem{
		BaseEntity: m.BaseModel.ToDomain(),
		OrderID:    m.OrderID,
		Title:      m.Title,
		SKU:        m.SKU,
		Quantity:   m.Quantity,
		UnitPrice:  m.UnitPrice,
		TotalPrice: m.TotalPrice,
	}
}

// FromDomainItem populates the persistence model from a domain OrderItem.
func (m *OrderItemModel) FromDomainItem(i *order.OrderItem) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.OrderID = i.OrderID
	m.Title = i.Title
	m.SKU = i.SKU
	m.Quantity = i.Quantity
	m.UnitPrice = i.UnitPrice
	m.TotalPrice = i.TotalPrice
}
