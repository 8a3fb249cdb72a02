package storefront

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// Gateway Errors
// ---------------------------------------------------------------------------

var (
	// Credential / connection errors
	ErrMissingCredentials = errors.New("storefront: credentials not configured")
	ErrInvalidCredentials = errors.New("storefront: invalid api credentials")
	ErrShopNotFound       = errors.New("storefront: shop not found")
	ErrUnavailable        = errors.New("storefront: platform temporarily unavailable")
	ErrRequestFailed      = errors.New("storefront: platform request failed")
	ErrInvalidResponse    = errors.New("storefront: invalid platform response")
	ErrRemoteErrors       = errors.New("storefront: platform reported errors")

	// Record-level errors
	ErrInvalidRemoteID = errors.New("storefront: invalid remote id")
	ErrRecordNotFound  = errors.New("storefront: remote record not found")
)

// UserError is a field-level error reported by a remote mutation.
type UserError struct {
	// Field is the path to the offending input field
	Field []string `json:"field"`
	// Message is the error description
	Message string `json:"message"`
}

// UserErrors is the set of field-level errors returned by one mutation.
// It is surfaced distinctly from transport errors so callers can tell a
// rejected payload apart from an unreachable platform.
type UserErrors []UserError

// Error implements the error interface
func (e UserErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, ue := range e {
		if len(ue.Field) > 0 {
			parts = append(parts, strings.Join(ue.Field, ".")+": "+ue.Message)
		} else {
			parts = append(parts, ue.Message)
		}
	}
	return "storefront: " + strings.Join(parts, "; ")
}

// ---------------------------------------------------------------------------
// Credentials
// ---------------------------------------------------------------------------

// Credentials identifies one tenant's storefront shop.
type Credentials struct {
	// Domain is the shop domain, e.g. "example.myshopify.com"
	Domain string
	// AccessToken is the admin API access token
	AccessToken string
}

// Validate returns ErrMissingCredentials unless both fields are present.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Domain) == "" || strings.TrimSpace(c.AccessToken) == "" {
		return ErrMissingCredentials
	}
	return nil
}

// ---------------------------------------------------------------------------
// SyncStatus represents the outcome of a synchronization run
// ---------------------------------------------------------------------------

// SyncStatus represents the outcome of a synchronization run
type SyncStatus string

const (
	// SyncStatusSuccess indicates every record synced cleanly
	SyncStatusSuccess SyncStatus = "SUCCESS"
	// SyncStatusPartial indicates some records failed but the run completed
	SyncStatusPartial SyncStatus = "PARTIAL"
	// SyncStatusFailed indicates the run aborted before completion
	SyncStatusFailed SyncStatus = "FAILED"
)

// IsValid returns true if the status is valid
func (s SyncStatus) IsValid() bool {
	switch s {
	case SyncStatusSuccess, SyncStatusPartial, SyncStatusFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation of SyncStatus
func (s SyncStatus) String() string {
	return string(s)
}

// ---------------------------------------------------------------------------
// Remote Value Objects
// ---------------------------------------------------------------------------
// One deserialization step produces these typed records from the wire
// response; absent remote fields stay at their zero value. Mappers consume
// them without probing for optional attributes.

// RemoteMoney is a money object as the platform sends it. Amount stays a
// string until a mapper converts it; the platform serializes decimals as
// strings and omits the object entirely for unset values.
type RemoteMoney struct {
	// Amount is the decimal amount as a string
	Amount string
	// CurrencyCode is the 3-letter ISO currency code
	CurrencyCode string
}

// RemoteAddress is a customer or shipping address on the platform.
type RemoteAddress struct {
	// FirstName is the recipient first name, present on order addresses
	FirstName string
	// LastName is the recipient last name, present on order addresses
	LastName string
	// Address1 is the first street line
	Address1 string
	// Address2 is the optional second street line
	Address2 string
	// City is the city name
	City string
	// Province is the state/province name
	Province string
	// Country is the country name
	Country string
	// Zip is the postal code
	Zip string
	// Phone is the address-level phone number
	Phone string
}

// RemoteCustomer is a customer record pulled from the platform.
type RemoteCustomer struct {
	// ID is the customer identifier in global-ID form
	ID string
	// FirstName is the customer's first name
	FirstName string
	// LastName is the customer's last name
	LastName string
	// Email is the customer's email address
	Email string
	// Phone is the customer's phone number
	Phone string
	// VerifiedEmail indicates the platform verified the email
	VerifiedEmail bool
	// Note is the free-form note attached on the platform
	Note string
	// Tags contains the platform tag list
	Tags []string
	// DefaultAddress is the customer's default address, if any
	DefaultAddress *RemoteAddress
	// Addresses is the full ordered address list
	Addresses []RemoteAddress
	// AmountSpent is the lifetime spend, if reported
	AmountSpent *RemoteMoney
	// NumberOfOrders is the lifetime order count
	NumberOfOrders int64
	// CreatedAt is when the record was created on the platform
	CreatedAt *time.Time
	// UpdatedAt is when the record last changed on the platform
	UpdatedAt *time.Time
}

// RemoteLineItem is one order line as the platform reports it.
type RemoteLineItem struct {
	// ID is the line item identifier in global-ID form
	ID string
	// Title is the product title at purchase time
	Title string
	// SKU is the variant SKU, if any
	SKU string
	// Quantity is the ordered quantity
	Quantity int
	// UnitPrice is the per-unit price, if reported
	UnitPrice *RemoteMoney
	// VariantID is the variant identifier in global-ID form, if any
	VariantID string
}

// RemoteOrderCustomer is the customer summary embedded in an order.
type RemoteOrderCustomer struct {
	// ID is the customer identifier in global-ID form
	ID string
	// Email is the customer's email address
	Email string
	// FirstName is the customer's first name
	FirstName string
	// LastName is the customer's last name
	LastName string
	// Phone is the customer's phone number
	Phone string
}

// RemoteOrder is an order record pulled from the platform.
type RemoteOrder struct {
	// ID is the order identifier in global-ID form
	ID string
	// Name is the display order number, e.g. "#1001"
	Name string
	// Email is the order contact email
	Email string
	// Phone is the order contact phone
	Phone string
	// FinancialStatus is the payment state reported by the platform
	FinancialStatus string
	// FulfillmentStatus is the fulfillment state reported by the platform
	FulfillmentStatus string
	// Tags contains the platform tag list
	Tags []string
	// Note is the free-form note attached on the platform
	Note string
	// Customer is the embedded customer summary, if present
	Customer *RemoteOrderCustomer
	// ShippingAddress is the shipping address, if present
	ShippingAddress *RemoteAddress
	// BillingAddress is the billing address, if present
	BillingAddress *RemoteAddress
	// LineItems contains the order lines
	LineItems []RemoteLineItem
	// Subtotal is the pre-tax, pre-shipping total
	Subtotal *RemoteMoney
	// TotalTax is the tax total
	TotalTax *RemoteMoney
	// TotalShipping is the shipping total
	TotalShipping *RemoteMoney
	// Total is the grand total
	Total *RemoteMoney
	// ProcessedAt is when the order was processed on the platform
	ProcessedAt *time.Time
	// CreatedAt is when the order was created on the platform
	CreatedAt *time.Time
}

// RemoteVariant is a product variant on the platform.
type RemoteVariant struct {
	// ID is the variant identifier in global-ID form
	ID string
	// Title is the variant title
	Title string
	// SKU is the variant SKU
	SKU string
	// Price is the variant price as a decimal string
	Price string
	// InventoryQuantity is the tracked stock level
	InventoryQuantity int
}

// RemoteProduct is a product record pulled from the platform.
type RemoteProduct struct {
	// ID is the product identifier in global-ID form
	ID string
	// Title is the product title
	Title string
	// Description is the plain-text product description
	Description string
	// Vendor is the product vendor name
	Vendor string
	// ProductType is the free-form product type
	ProductType string
	// Status is the listing status (ACTIVE, DRAFT, ARCHIVED)
	Status string
	// Tags contains the platform tag list
	Tags []string
	// Variants contains the product's variants
	Variants []RemoteVariant
	// CreatedAt is when the product was created on the platform
	CreatedAt *time.Time
	// UpdatedAt is when the product last changed on the platform
	UpdatedAt *time.Time
}

// ---------------------------------------------------------------------------
// Mutation Inputs
// ---------------------------------------------------------------------------
// Inputs mirror the platform's mutation schema. Empty fields are omitted
// from the wire payload so a partial update never clobbers remote values;
// clearing a remote field is intentionally not supported.

// AddressInput is one address entry in a customer mutation.
type AddressInput struct {
	Address1 string `json:"address1,omitempty"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city,omitempty"`
	Province string `json:"province,omitempty"`
	Country  string `json:"country,omitempty"`
	Zip      string `json:"zip,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// CustomerInput is the payload for a customer create/update mutation.
// ID is required for updates and must be absent for creates.
type CustomerInput struct {
	ID        string         `json:"id,omitempty"`
	FirstName string         `json:"firstName,omitempty"`
	LastName  string         `json:"lastName,omitempty"`
	Email     string         `json:"email,omitempty"`
	Phone     string         `json:"phone,omitempty"`
	Note      string         `json:"note,omitempty"`
	Tags      []string       `json:"tags,omitempty"`
	Addresses []AddressInput `json:"addresses,omitempty"`
}

// VariantInput is one variant entry in a product mutation.
type VariantInput struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
	SKU   string `json:"sku,omitempty"`
	Price string `json:"price,omitempty"`
}

// ProductInput is the payload for a product create/update mutation.
type ProductInput struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"descriptionHtml,omitempty"`
	Vendor      string   `json:"vendor,omitempty"`
	ProductType string   `json:"productType,omitempty"`
	Status      string   `json:"status,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	// Variants ride alongside the product input; the adapter issues the
	// variant mutations the platform schema requires.
	Variants []VariantInput `json:"-"`
}

// ---------------------------------------------------------------------------
// Sync Results
// ---------------------------------------------------------------------------

// SyncError records one remote record that failed to sync.
type SyncError struct {
	// RemoteID identifies the failed record on the platform
	RemoteID string `json:"remote_id"`
	// Message is the error description
	Message string `json:"message"`
}

// SyncResult is the aggregate outcome of one synchronization run.
type SyncResult struct {
	// Status is the overall run status
	Status SyncStatus `json:"status"`
	// Created is the number of local records created
	Created int `json:"created"`
	// Updated is the number of local records updated
	Updated int `json:"updated"`
	// Failed is the number of records that could not be processed
	Failed int `json:"failed"`
	// Errors details each failed record
	Errors []SyncError `json:"errors,omitempty"`
	// SyncedAt is when the run finished
	SyncedAt time.Time `json:"synced_at"`
}

// Finalize stamps the completion time and derives the overall status from
// the per-record counters.
func (r *SyncResult) Finalize() {
	r.SyncedAt = time.Now()
	switch {
	case r.Failed == 0:
		r.Status = SyncStatusSuccess
	case r.Created+r.Updated > 0:
		r.Status = SyncStatusPartial
	default:
		r.Status = SyncStatusFailed
	}
}

// ---------------------------------------------------------------------------
// Iterators
// ---------------------------------------------------------------------------

// Iterator walks a cursor-paginated remote collection. The sequence is
// lazy, finite and not restartable; callers never see pagination state.
//
//	it := gw.Customers(ctx)
//	for it.Next(ctx) {
//	    rec := it.Record()
//	    ...
//	}
//	if err := it.Err(); err != nil { ... }
type Iterator[T any] interface {
	// Next advances to the next record, fetching further pages as needed.
	// It returns false when the collection is exhausted or a transport
	// error occurred; Err distinguishes the two.
	Next(ctx context.Context) bool
	// Record returns the current record. Valid only after Next returned true.
	Record() T
	// Err returns the transport error that stopped iteration, if any.
	Err() error
}

// ---------------------------------------------------------------------------
// Gateway Port Interface
// ---------------------------------------------------------------------------

// Gateway is the port to one tenant's storefront shop. Implementations are
// scoped to a single tenant's credentials and must not be shared across
// tenants. Concrete adapters live in the infrastructure layer.
type Gateway interface {
	// TestConnection performs a minimal authenticated query. It returns
	// ErrInvalidCredentials, ErrShopNotFound or ErrRequestFailed wrapped
	// with the remote status detail, or nil when the shop is reachable.
	TestConnection(ctx context.Context) error

	// Customers returns an iterator over the shop's customer collection.
	Customers(ctx context.Context) Iterator[RemoteCustomer]
	// Orders returns an iterator over the shop's order collection.
	Orders(ctx context.Context) Iterator[RemoteOrder]
	// Products returns an iterator over the shop's product collection.
	Products(ctx context.Context) Iterator[RemoteProduct]

	// GetCustomer fetches one customer by id in global-ID form.
	GetCustomer(ctx context.Context, remoteID string) (*RemoteCustomer, error)
	// CreateCustomer creates a customer and returns the created record.
	// Field-level rejections come back as UserErrors.
	CreateCustomer(ctx context.Context, input CustomerInput) (*RemoteCustomer, error)
	// UpdateCustomer updates an existing customer; input.ID is required.
	UpdateCustomer(ctx context.Context, input CustomerInput) (*RemoteCustomer, error)
	// DeleteCustomer deletes a customer by id in global-ID form.
	DeleteCustomer(ctx context.Context, remoteID string) error

	// CreateProduct creates a product with its variants and returns the
	// created record including remote-assigned variant ids.
	CreateProduct(ctx context.Context, input ProductInput) (*RemoteProduct, error)
	// UpdateProduct updates an existing product; input.ID is required.
	UpdateProduct(ctx context.Context, input ProductInput) (*RemoteProduct, error)
}

// GatewayFactory builds a Gateway bound to one tenant's credentials.
// The application layer uses it to open a fresh, single-tenant gateway per
// sync request.
type GatewayFactory interface {
	// New returns a gateway for the given credentials, or
	// ErrMissingCredentials when they are incomplete.
	New(creds Credentials) (Gateway, error)
}
