package dto

import (
	"github.com/backoffice/backend/internal/domain/customer"
	"github.com/shopspring/decimal"
)

// AddressRequest is one full address record in a request body
type AddressRequest struct {
	Address1 string `json:"address1" binding:"required,max=255"`
	Address2 string `json:"address2" binding:"max=255"`
	City     string `json:"city" binding:"required,max=100"`
	Province string `json:"province" binding:"required,max=100"`
	Country  string `json:"country" binding:"required,max=100"`
	Zip      string `json:"zip" binding:"max=20"`
	Phone    string `json:"phone" binding:"max=32"`
}

// ToDomain converts the request address to its domain form
func (r AddressRequest) ToDomain() customer.Address {
	return customer.Address{
		Address1: r.Address1,
		Address2: r.Address2,
		City:     r.City,
		Province: r.Province,
		Country:  r.Country,
		Zip:      r.Zip,
		Phone:    r.Phone,
	}
}

// AddressesToDomain converts a request address list
func AddressesToDomain(reqs []AddressRequest) []customer.Address {
	if reqs == nil {
		return nil
	}
	out := make([]customer.Address, len(reqs))
	for i, r := range reqs {
		out[i] = r.ToDomain()
	}
	return out
}

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	FirstName    string           `json:"first_name" binding:"max=100"`
	LastName     string           `json:"last_name" binding:"max=100"`
	Email        string           `json:"email" binding:"omitempty,email,max=255"`
	Phone        string           `json:"phone" binding:"max=32"`
	CustomerCode string           `json:"customer_code" binding:"max=64"`
	Note         string           `json:"note"`
	Tags         []string         `json:"tags"`
	Addresses    []AddressRequest `json:"addresses"`
	CanDelete    bool             `json:"can_delete"`
}

// UpdateCustomerRequest represents a partial customer update. Absent
// fields are left untouched.
type UpdateCustomerRequest struct {
	FirstName    *string          `json:"first_name" binding:"omitempty,max=100"`
	LastName     *string          `json:"last_name" binding:"omitempty,max=100"`
	Email        *string          `json:"email" binding:"omitempty,email,max=255"`
	Phone        *string          `json:"phone" binding:"omitempty,max=32"`
	CustomerCode *string          `json:"customer_code" binding:"omitempty,max=64"`
	Note         *string          `json:"note"`
	Tags         []string         `json:"tags"`
	Addresses    []AddressRequest `json:"addresses"`
	CanDelete    *bool            `json:"can_delete"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID                 string             `json:"id"`
	RemoteID           string             `json:"remote_id,omitempty"`
	FirstName          string             `json:"first_name"`
	LastName           string             `json:"last_name"`
	FullName           string             `json:"full_name"`
	Email              string             `json:"email"`
	Phone              string             `json:"phone"`
	CustomerCode       string             `json:"customer_code"`
	ValidEmailAddress  bool               `json:"valid_email_address"`
	Note               string             `json:"note,omitempty"`
	Tags               []string           `json:"tags"`
	City               string             `json:"city,omitempty"`
	State              string             `json:"state,omitempty"`
	Country            string             `json:"country,omitempty"`
	DefaultAddressLine string             `json:"default_address_line,omitempty"`
	DefaultAddressArea string             `json:"default_address_area,omitempty"`
	Addresses          []customer.Address `json:"addresses"`
	TotalSpent         decimal.Decimal    `json:"total_spent"`
	OrdersCount        int64              `json:"orders_count"`
	CanDelete          bool               `json:"can_delete"`
	TimestampResponse
}

// NewCustomerResponse maps a domain customer to its response form.
// Corrupt stored tags degrade to an empty list rather than failing the read.
func NewCustomerResponse(c *customer.Customer) CustomerResponse {
	tags, err := c.TagList()
	if err != nil {
		tags = []string{}
	}
	addresses := c.Addresses
	if addresses == nil {
		addresses = []customer.Address{}
	}
	return CustomerResponse{
		ID:                 c.ID.String(),
		RemoteID:           c.RemoteID,
		FirstName:          c.FirstName,
		LastName:           c.LastName,
		FullName:           c.FullName(),
		Email:              c.Email,
		Phone:              c.Phone,
		CustomerCode:       c.CustomerCode,
		ValidEmailAddress:  c.ValidEmailAddress,
		Note:               c.Note,
		Tags:               tags,
		City:               c.City,
		State:              c.State,
		Country:            c.Country,
		DefaultAddressLine: c.DefaultAddressLine,
		DefaultAddressArea: c.DefaultAddressArea,
		Addresses:          addresses,
		TotalSpent:         c.TotalSpent,
		OrdersCount:        c.OrdersCount,
		CanDelete:          c.CanDelete,
		TimestampResponse: TimestampResponse{
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
	}
}

// NewCustomerListResponse maps a customer slice to response form
func NewCustomerListResponse(items []customer.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(items))
	for i := range items {
		out[i] = NewCustomerResponse(&items[i])
	}
	return out
}
