package dto

import (
	"time"

	"github.com/backoffice/backend/internal/domain/customer"
	"github.com/backoffice/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// UpdateOrderRequest represents a partial order update. Absent fields are
// left untouched; external orders reject anything beyond status, tags and
// internal notes.
type UpdateOrderRequest struct {
	Status        *string `json:"status" binding:"omitempty,oneof=pending processing shipped delivered cancelled"`
	Tags          *string `json:"tags"`
	InternalNotes *string `json:"internal_notes"`
	Email         *string `json:"email" binding:"omitempty,email,max=255"`
	Phone         *string `json:"phone" binding:"omitempty,max=32"`
	Currency      *string `json:"currency" binding:"omitempty,len=3"`
}

// ToChanges converts the request to a domain partial update
func (r UpdateOrderRequest) ToChanges() order.Changes {
	ch := order.Changes{
		Tags:          r.Tags,
		InternalNotes: r.InternalNotes,
		Email:         r.Email,
		Phone:         r.Phone,
		Currency:      r.Currency,
	}
	if r.Status != nil {
		st := order.Status(*r.Status)
		ch.Status = &st
	}
	return ch
}

// OrderItemResponse represents one order line in API responses
type OrderItemResponse struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	SKU        string          `json:"sku,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                string              `json:"id"`
	CustomerID        string              `json:"customer_id"`
	OrderID           string              `json:"order_id"`
	RemoteOrderID     string              `json:"remote_order_id,omitempty"`
	Source            string              `json:"source"`
	Status            string              `json:"status"`
	Email             string              `json:"email,omitempty"`
	Phone             string              `json:"phone,omitempty"`
	FinancialStatus   string              `json:"financial_status,omitempty"`
	FulfillmentStatus string              `json:"fulfillment_status,omitempty"`
	Subtotal          decimal.Decimal     `json:"subtotal"`
	TotalTax          decimal.Decimal     `json:"total_tax"`
	TotalShipping     decimal.Decimal     `json:"total_shipping"`
	Total             decimal.Decimal     `json:"total"`
	Currency          string              `json:"currency,omitempty"`
	Tags              string              `json:"tags,omitempty"`
	InternalNotes     string              `json:"internal_notes,omitempty"`
	ShippingAddress   customer.Address    `json:"shipping_address"`
	PlacedAt          *time.Time          `json:"placed_at,omitempty"`
	Items             []OrderItemResponse `json:"items"`
	TimestampResponse
}

// NewOrderResponse maps a domain order to its response form
func NewOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		it := &o.Items[i]
		items[i] = OrderItemResponse{
			ID:         it.ID.String(),
			Title:      it.Title,
			SKU:        it.SKU,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		}
	}
	return OrderResponse{
		ID:                o.ID.String(),
		CustomerID:        o.CustomerID.String(),
		OrderID:           o.OrderID,
		RemoteOrderID:     o.RemoteOrderID,
		Source:            string(o.Source),
		Status:            string(o.Status),
		Email:             o.Email,
		Phone:             o.Phone,
		FinancialStatus:   o.FinancialStatus,
		FulfillmentStatus: o.FulfillmentStatus,
		Subtotal:          o.Subtotal,
		TotalTax:          o.TotalTax,
		TotalShipping:     o.TotalShipping,
		Total:             o.Total,
		Currency:          o.Currency,
		Tags:              o.Tags,
		InternalNotes:     o.InternalNotes,
		ShippingAddress:   o.ShippingAddress,
		PlacedAt:          o.PlacedAt,
		Items:             items,
		TimestampResponse: TimestampResponse{
			CreatedAt: o.CreatedAt,
			UpdatedAt: o.UpdatedAt,
		},
	}
}

// NewOrderListResponse maps an order slice to response form
func NewOrderListResponse(items []order.Order) []OrderResponse {
	out := make([]OrderResponse, len(items))
	for i := range items {
		out[i] = NewOrderResponse(&items[i])
	}
	return out
}
