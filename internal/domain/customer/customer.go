package customer

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is a company-scoped customer record. A customer carrying a
// RemoteID mirrors a record on the storefront platform; one without is
// locally originated. CustomerCode is locally owned and must survive any
// number of re-syncs from the platform.
type Customer struct {
	shared.TenantAggregateRoot

	// RemoteID is the storefront customer id (bare, not global-ID form).
	// Empty for locally-originated customers.
	RemoteID string

	FirstName string
	LastName  string
	Email     string
	Phone     string

	// CustomerCode is the internal code assigned by back-office staff.
	CustomerCode string

	// ValidEmailAddress is derived from Email and recomputed on every write.
	ValidEmailAddress bool

	// Note is free-form text carried from the platform.
	Note string

	// Tags is a JSON-array-encoded string, e.g. `["vip","wholesale"]`.
	Tags string

	// Denormalized default-address cache, distinct from Addresses.
	City               string
	State              string
	Country            string
	DefaultAddressLine string
	DefaultAddressArea string

	// Addresses is the ordered list of full address records.
	Addresses []Address

	// Remote-reported statistics.
	TotalSpent  decimal.Decimal
	OrdersCount int64

	// CanDelete gates destructive operations on this record.
	CanDelete bool
}

// NewCustomer creates a customer for the given company. At least one of
// email or phone must be present.
func NewCustomer(tenantID uuid.UUID, firstName, lastName, email, phone string) (*Customer, error) {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if email == "" && phone == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT", "At least one of email or phone is required")
	}
	c := &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		FirstName:           strings.TrimSpace(firstName),
		LastName:            strings.TrimSpace(lastName),
		Email:               email,
		Phone:               phone,
		TotalSpent:          decimal.Zero,
	}
	c.RefreshDerived()
	return c, nil
}

// FullName returns the customer's display name.
func (c *Customer) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

// IsRemote reports whether this customer mirrors a platform record.
func (c *Customer) IsRemote() bool {
	return c.RemoteID != ""
}

// RefreshDerived recomputes fields derived from others. Must run on every
// write path before persisting.
func (c *Customer) RefreshDerived() {
	c.ValidEmailAddress = c.Email != ""
}

// MarkRemote records the platform-assigned id after a successful push.
func (c *Customer) MarkRemote(remoteID string) {
	c.RemoteID = remoteID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetContact updates the contact fields, keeping the email-or-phone invariant.
func (c *Customer) SetContact(email, phone string) error {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if email == "" && phone == "" {
		return shared.NewDomainError("INVALID_CONTACT", "At least one of email or phone is required")
	}
	c.Email = email
	c.Phone = phone
	c.RefreshDerived()
	c.UpdatedAt = time.Now()
	return nil
}

// SetAddresses validates and replaces the full address list.
func (c *Customer) SetAddresses(addresses []Address) error {
	for i := range addresses {
		if err := addresses[i].Validate(); err != nil {
			return err
		}
	}
	c.Addresses = addresses
	c.UpdatedAt = time.Now()
	return nil
}

// TagList decodes the stored tag string into a slice. An empty or blank
// stored value yields an empty slice.
func (c *Customer) TagList() ([]string, error) {
	if strings.TrimSpace(c.Tags) == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(c.Tags), &tags); err != nil {
		return nil, shared.NewDomainError("INVALID_TAGS", "Stored tags are not a JSON array")
	}
	return tags, nil
}

// SetTagList encodes the given tags as the stored JSON array string.
func (c *Customer) SetTagList(tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	c.Tags = string(raw)
	return nil
}

// EnsureDeletable returns an error unless deletion has been unlocked.
func (c *Customer) EnsureDeletable() error {
	if !c.CanDelete {
		return shared.ErrDeletionNotAllowed
	}
	return nil
}
