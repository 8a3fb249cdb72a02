package sync

import (
	"github.com/backoffice/backend/internal/domain/customer"
	"github.com/google/uuid"
)

// MergeStrategy decides how one field combines remote and local values
// during a pull-sync upsert.
type MergeStrategy int

const (
	// AlwaysOverwrite takes the remote value unconditionally.
	AlwaysOverwrite MergeStrategy = iota
	// KeepLocalIfPresent keeps a non-blank local value; the remote value
	// only lands when the local field is empty.
	KeepLocalIfPresent
	// RemoteFillsBlankOnly writes the remote value only when the local
	// field is blank and the remote value is non-blank; remote data fills
	// gaps, never erases locally-curated data.
	RemoteFillsBlankOnly
	// OverwriteUnlessBlank takes the remote value whenever it is non-blank.
	// A blank remote value leaves the local field untouched, so a record
	// keeps at least one contact channel across syncs.
	OverwriteUnlessBlank
)

// stringMergeRule binds one customer string field to its merge strategy.
type stringMergeRule struct {
	field    string
	strategy MergeStrategy
	local    func(c *customer.Customer) *string
	remote   func(f *CustomerFields) string
}

// customerMergeRules is the full merge policy for customer pull-sync.
// Remote fields overwrite; contact channels follow the remote unless the
// remote value is blank; the internal customer code is locally owned; the
// location cache fills blanks only.
var customerMergeRules = []stringMergeRule{
	{"first_name", AlwaysOverwrite,
		func(c *customer.Customer) *string { return &c.FirstName },
		func(f *CustomerFields) string { return f.FirstName }},
	{"last_name", AlwaysOverwrite,
		func(c *customer.Customer) *string { return &c.LastName },
		func(f *CustomerFields) string { return f.LastName }},
	{"email", OverwriteUnlessBlank,
		func(c *customer.Customer) *string { return &c.Email },
		func(f *CustomerFields) string { return f.Email }},
	{"phone", OverwriteUnlessBlank,
		func(c *customer.Customer) *string { return &c.Phone },
		func(f *CustomerFields) string { return f.Phone }},
	{"customer_code", KeepLocalIfPresent,
		func(c *customer.Customer) *string { return &c.CustomerCode },
		func(f *CustomerFields) string { return "" }},
	{"note", AlwaysOverwrite,
		func(c *customer.Customer) *string { return &c.Note },
		func(f *CustomerFields) string { return f.Note }},
	{"tags", AlwaysOverwrite,
		func(c *customer.Customer) *string { return &c.Tags },
		func(f *CustomerFields) string { return f.Tags }},
	{"city", RemoteFillsBlankOnly,
		func(c *customer.Customer) *string { return &c.City },
		func(f *CustomerFields) string { return f.City }},
	{"state", RemoteFillsBlankOnly,
		func(c *customer.Customer) *string { return &c.State },
		func(f *CustomerFields) string { return f.State }},
	{"country", RemoteFillsBlankOnly,
		func(c *customer.Customer) *string { return &c.Country },
		func(f *CustomerFields) string { return f.Country }},
	{"default_address_line", AlwaysOverwrite,
		func(c *customer.Customer) *string { return &c.DefaultAddressLine },
		func(f *CustomerFields) string { return f.DefaultAddressLine }},
	{"default_address_area", AlwaysOverwrite,
		func(c *customer.Customer) *string { return &c.DefaultAddressArea },
		func(f *CustomerFields) string { return f.DefaultAddressArea }},
}

// applyStringRule applies one rule mechanically.
func applyStringRule(r stringMergeRule, c *customer.Customer, f *CustomerFields) {
	lp := r.local(c)
	rv := r.remote(f)
	switch r.strategy {
	case AlwaysOverwrite:
		*lp = rv
	case KeepLocalIfPresent:
		if *lp == "" {
			*lp = rv
		}
	case RemoteFillsBlankOnly:
		if *lp == "" && rv != "" {
			*lp = rv
		}
	case OverwriteUnlessBlank:
		if rv != "" {
			*lp = rv
		}
	}
}

// MergeRemoteCustomer applies the merge policy onto an existing local
// customer. Statistics and the address list are remote-owned and always
// refreshed; derived fields are recomputed afterwards.
func MergeRemoteCustomer(c *customer.Customer, f *CustomerFields) {
	for _, rule := range customerMergeRules {
		applyStringRule(rule, c, f)
	}
	c.RemoteID = f.RemoteID
	c.TotalSpent = f.TotalSpent
	c.OrdersCount = f.OrdersCount
	if len(f.Addresses) > 0 {
		c.Addresses = f.Addresses
	}
	c.RefreshDerived()
	c.Touch()
}

// NewCustomerFromFields builds a fresh local customer from mapped remote
// fields. The email-or-phone invariant still applies; a remote record with
// neither fails as a per-record error.
func NewCustomerFromFields(tenantID uuid.UUID, f *CustomerFields) (*customer.Customer, error) {
	c, err := customer.NewCustomer(tenantID, f.FirstName, f.LastName, f.Email, f.Phone)
	if err != nil {
		return nil, err
	}
	c.RemoteID = f.RemoteID
	c.Note = f.Note
	c.Tags = f.Tags
	c.City = f.City
	c.State = f.State
	c.Country = f.Country
	c.DefaultAddressLine = f.DefaultAddressLine
	c.DefaultAddressArea = f.DefaultAddressArea
	c.Addresses = f.Addresses
	c.TotalSpent = f.TotalSpent
	c.OrdersCount = f.OrdersCount
	c.RefreshDerived()
	return c, nil
}
