package order

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/backoffice/backend/internal/domain/customer"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Source distinguishes imported orders from manually entered ones
type Source string

const (
	// SourceExternal marks an order imported from the storefront platform
	SourceExternal Source = "external"
	// SourceManual marks an order entered by back-office staff
	SourceManual Source = "manual"
)

// IsValid returns true if the source is valid
func (s Source) IsValid() bool {
	return s == SourceExternal || s == SourceManual
}

// Status represents the back-office processing status of an order
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// IsValid returns true if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// Order belongs to exactly one company and one customer. The company FK is
// carried directly, never inferred through the customer. OrderID is the
// storefront order identifier, unique per company rather than globally.
//
// External orders are immutable apart from the allow-listed fields in
// Changes; deleting an external order is forbidden.
type Order struct {
	shared.TenantAggregateRoot

	CustomerID uuid.UUID

	// OrderID is the storefront display order number, e.g. "#1001", or a
	// locally assigned number for manual orders.
	OrderID string

	// RemoteOrderID is the bare storefront order id for external orders.
	RemoteOrderID string

	Source Source
	Status Status

	Email string
	Phone string

	// Platform-reported payment and fulfillment states, informational.
	FinancialStatus   string
	FulfillmentStatus string

	Subtotal      decimal.Decimal
	TotalTax      decimal.Decimal
	TotalShipping decimal.Decimal
	Total         decimal.Decimal
	Currency      string

	// Tags is a JSON-array-encoded string.
	Tags string

	// InternalNotes is back-office free text, never pushed to the platform.
	InternalNotes string

	ShippingAddress customer.Address

	PlacedAt *time.Time

	Items []OrderItem
}

// OrderItem is one line of an order. It cascades on order deletion.
type OrderItem struct {
	shared.BaseEntity

	OrderID uuid.UUID

	Title      string
	SKU        string
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

// NewOrderItem builds a line item with its total computed from unit price
// and quantity.
func NewOrderItem(title, sku string, quantity int, unitPrice decimal.Decimal) OrderItem {
	if quantity < 0 {
		quantity = 0
	}
	return OrderItem{
		BaseEntity: shared.NewBaseEntity(),
		Title:      title,
		SKU:        sku,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// NewExternalOrder creates an order imported from the storefront platform.
func NewExternalOrder(tenantID, customerID uuid.UUID, orderID string) (*Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_ID", "Order id is required")
	}
	if tenantID == uuid.Nil || customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Order requires a company and a customer")
	}
	return &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CustomerID:          customerID,
		OrderID:             orderID,
		Source:              SourceExternal,
		Status:              StatusPending,
		Subtotal:            decimal.Zero,
		TotalTax:            decimal.Zero,
		TotalShipping:       decimal.Zero,
		Total:               decimal.Zero,
	}, nil
}

// NewManualOrder creates an order entered by back-office staff.
func NewManualOrder(tenantID, customerID uuid.UUID, orderID string) (*Order, error) {
	o, err := NewExternalOrder(tenantID, customerID, orderID)
	if err != nil {
		return nil, err
	}
	o.Source = SourceManual
	return o, nil
}

// SetItems replaces the line items, rebinding them to this order.
func (o *Order) SetItems(items []OrderItem) {
	for i := range items {
		items[i].OrderID = o.ID
	}
	o.Items = items
	o.UpdatedAt = time.Now()
}

// TagList decodes the stored tag string into a slice.
func (o *Order) TagList() ([]string, error) {
	if strings.TrimSpace(o.Tags) == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(o.Tags), &tags); err != nil {
		return nil, shared.NewDomainError("INVALID_TAGS", "Stored tags are not a JSON array")
	}
	return tags, nil
}

// SetTagList encodes the given tags as the stored JSON array string.
func (o *Order) SetTagList(tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	o.Tags = string(raw)
	return nil
}

// Changes carries a partial update. Nil pointers leave the field alone.
// For external orders only Status, Tags and InternalNotes may be set; a
// request touching anything else is rejected as a whole, nothing applies.
type Changes struct {
	Status        *Status
	Tags          *string
	InternalNotes *string

	// Fields below are only writable on manual orders.
	Email    *string
	Phone    *string
	Currency *string
}

// restrictedFields lists the Changes members external orders may not touch.
func (ch *Changes) restrictedFields() []string {
	var fields []string
	if ch.Email != nil {
		fields = append(fields, "email")
	}
	if ch.Phone != nil {
		fields = append(fields, "phone")
	}
	if ch.Currency != nil {
		fields = append(fields, "currency")
	}
	return fields
}

// Apply validates and applies a partial update. External orders reject any
// request carrying a restricted field before applying anything.
func (o *Order) Apply(ch Changes) error {
	if o.Source == SourceExternal {
		if restricted := ch.restrictedFields(); len(restricted) > 0 {
			return shared.NewDomainError("EXTERNAL_ORDER_IMMUTABLE",
				"External orders only allow status, tags and internal notes updates; rejected fields: "+strings.Join(restricted, ", "))
		}
	}
	if ch.Status != nil {
		if !ch.Status.IsValid() {
			return shared.NewDomainError("INVALID_STATUS", "Unknown order status '"+string(*ch.Status)+"'")
		}
		o.Status = *ch.Status
	}
	if ch.Tags != nil {
		o.Tags = *ch.Tags
	}
	if ch.InternalNotes != nil {
		o.InternalNotes = *ch.InternalNotes
	}
	if ch.Email != nil {
		o.Email = *ch.Email
	}
	if ch.Phone != nil {
		o.Phone = *ch.Phone
	}
	if ch.Currency != nil {
		o.Currency = *ch.Currency
	}
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// EnsureDeletable forbids deleting orders imported from the platform.
func (o *Order) EnsureDeletable() error {
	if o.Source == SourceExternal {
		return shared.NewDomainError("EXTERNAL_ORDER_PROTECTED", "Orders imported from the storefront cannot be deleted")
	}
	return nil
}
