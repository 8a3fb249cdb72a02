package sync

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/backoffice/backend/internal/domain/catalog"
	"github.com/backoffice/backend/internal/domain/customer"
	"github.com/backoffice/backend/internal/domain/storefront"
	"github.com/shopspring/decimal"
)

// GlobalIDPrefix is the scheme+namespace prefix of platform global IDs,
// e.g. gid://shopify/Customer/6816914718813.
const GlobalIDPrefix = "gid://shopify/"

// ---------------------------------------------------------------------------
// Identifier translation
// ---------------------------------------------------------------------------

// StripGlobalID extracts the trailing segment of a global-ID string. A bare
// id passes through unchanged, so the function is safe to apply twice.
func StripGlobalID(id string) string {
	if idx := strings.LastIndex(id, "/"); idx >= 0 {
		return id[idx+1:]
	}
	return id
}

// WrapGlobalID re-wraps a bare id into global-ID form for the given remote
// type. It is a no-op when the id already carries the scheme prefix.
func WrapGlobalID(remoteType, id string) string {
	if strings.HasPrefix(id, "gid://") {
		return id
	}
	return GlobalIDPrefix + remoteType + "/" + id
}

// ValidateRemoteID rejects ids that are neither purely numeric nor already
// in global-ID form. Anything else is corrupt or placeholder data and must
// never reach a remote mutation.
func ValidateRemoteID(id string) error {
	if strings.HasPrefix(id, "gid://") {
		return nil
	}
	if id == "" {
		return fmt.Errorf("%w: empty id", storefront.ErrInvalidRemoteID)
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: %q", storefront.ErrInvalidRemoteID, id)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Money
// ---------------------------------------------------------------------------

// MoneyAmount converts a remote money object to a decimal amount and a
// currency code. A nil object, blank amount or unparsable amount maps to
// zero with the currency left blank; money never null-propagates into
// arithmetic.
func MoneyAmount(m *storefront.RemoteMoney) (decimal.Decimal, string) {
	if m == nil {
		return decimal.Zero, ""
	}
	amount := CoerceAmount(m.Amount)
	currency := strings.ToUpper(strings.TrimSpace(m.CurrencyCode))
	if amount.IsZero() && strings.TrimSpace(m.Amount) == "" {
		return decimal.Zero, ""
	}
	return amount, currency
}

// CoerceAmount parses the platform's numeric-or-string amount
// representation, defaulting to zero on blank or unparsable input.
func CoerceAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ---------------------------------------------------------------------------
// Tags
// ---------------------------------------------------------------------------

// EncodeTags encodes a remote tag list as the locally stored JSON array
// string. A nil list encodes as an empty array.
func EncodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

// DecodeTags decodes the locally stored tag string back into a list. It
// also accepts the platform's legacy comma-joined scalar form so tags are
// never silently dropped.
func DecodeTags(stored string) []string {
	stored = strings.TrimSpace(stored)
	if stored == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(stored), &tags); err == nil {
		return tags
	}
	return SplitScalarTags(stored)
}

// SplitScalarTags splits a comma-joined tag scalar, trimming whitespace
// and dropping empty entries.
func SplitScalarTags(scalar string) []string {
	parts := strings.Split(scalar, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ---------------------------------------------------------------------------
// Addresses
// ---------------------------------------------------------------------------

// MapRemoteAddress converts one remote address to the local shape and
// validates the required-field set and length ceilings.
func MapRemoteAddress(ra storefront.RemoteAddress) (customer.Address, error) {
	addr := customer.Address{
		Address1: strings.TrimSpace(ra.Address1),
		Address2: strings.TrimSpace(ra.Address2),
		City:     strings.TrimSpace(ra.City),
		Province: strings.TrimSpace(ra.Province),
		Country:  strings.TrimSpace(ra.Country),
		Zip:      strings.TrimSpace(ra.Zip),
		Phone:    strings.TrimSpace(ra.Phone),
	}
	if err := addr.Validate(); err != nil {
		return customer.Address{}, err
	}
	return addr, nil
}

// addressToInput converts a local address to the mutation input shape.
func addressToInput(a customer.Address) storefront.AddressInput {
	return storefront.AddressInput{
		Address1: a.Address1,
		Address2: a.Address2,
		City:     a.City,
		Province: a.Province,
		Country:  a.Country,
		Zip:      a.Zip,
		Phone:    a.Phone,
	}
}

// ---------------------------------------------------------------------------
// Customers
// ---------------------------------------------------------------------------

// CustomerFields is the flat local projection of one remote customer,
// produced by a single mapping step and consumed by the merge policy.
type CustomerFields struct {
	RemoteID  string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Note      string
	Tags      string

	City               string
	State              string
	Country            string
	DefaultAddressLine string
	DefaultAddressArea string

	Addresses []customer.Address

	TotalSpent  decimal.Decimal
	OrdersCount int64
}

// MapRemoteCustomer flattens a remote customer into local field values.
// Address validation failures surface as an error so the caller can record
// the record as failed without aborting the page loop.
func MapRemoteCustomer(rc *storefront.RemoteCustomer) (CustomerFields, error) {
	f := CustomerFields{
		RemoteID:    StripGlobalID(rc.ID),
		FirstName:   strings.TrimSpace(rc.FirstName),
		LastName:    strings.TrimSpace(rc.LastName),
		Email:       strings.TrimSpace(rc.Email),
		Phone:       strings.TrimSpace(rc.Phone),
		Note:        rc.Note,
		Tags:        EncodeTags(rc.Tags),
		OrdersCount: rc.NumberOfOrders,
	}
	f.TotalSpent, _ = MoneyAmount(rc.AmountSpent)

	if da := rc.DefaultAddress; da != nil {
		f.City = strings.TrimSpace(da.City)
		f.State = strings.TrimSpace(da.Province)
		f.Country = strings.TrimSpace(da.Country)
		f.DefaultAddressLine = strings.TrimSpace(da.Address1)
		f.DefaultAddressArea = (&customer.Address{
			City:     da.City,
			Province: da.Province,
			Country:  da.Country,
		}).FormattedArea()
	}

	for i, ra := range rc.Addresses {
		addr, err := MapRemoteAddress(ra)
		if err != nil {
			return CustomerFields{}, fmt.Errorf("address %d: %w", i+1, err)
		}
		f.Addresses = append(f.Addresses, addr)
	}
	return f, nil
}

// CustomerToInput builds the mutation payload for a local customer. Empty
// fields are omitted so partial updates never clobber remote values. When
// no explicit address list exists but the default-address cache is
// populated, the cache is appended as one address entry.
func CustomerToInput(c *customer.Customer, forUpdate bool) (storefront.CustomerInput, error) {
	input := storefront.CustomerInput{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Note:      c.Note,
	}
	if forUpdate {
		if err := ValidateRemoteID(c.RemoteID); err != nil {
			return storefront.CustomerInput{}, err
		}
		input.ID = WrapGlobalID("Customer", c.RemoteID)
	}

	tags, err := c.TagList()
	if err != nil {
		return storefront.CustomerInput{}, err
	}
	if len(tags) > 0 {
		input.Tags = tags
	}

	for _, a := range c.Addresses {
		input.Addresses = append(input.Addresses, addressToInput(a))
	}
	if len(input.Addresses) == 0 && hasDefaultAddress(c) {
		input.Addresses = append(input.Addresses, storefront.AddressInput{
			Address1: c.DefaultAddressLine,
			City:     c.City,
			Province: c.State,
			Country:  c.Country,
		})
	}
	return input, nil
}

// hasDefaultAddress reports whether any default-address cache field is set.
func hasDefaultAddress(c *customer.Customer) bool {
	return c.DefaultAddressLine != "" || c.City != "" || c.State != "" || c.Country != ""
}

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

// ProductFields is the flat local projection of one remote product.
type ProductFields struct {
	RemoteID    string
	Title       string
	Description string
	Vendor      string
	ProductType string
	Status      catalog.ProductStatus
	Tags        string
	Variants    []catalog.ProductVariant
}

// MapRemoteProduct flattens a remote product with its variants.
func MapRemoteProduct(rp *storefront.RemoteProduct) (ProductFields, error) {
	title := strings.TrimSpace(rp.Title)
	if title == "" {
		return ProductFields{}, fmt.Errorf("product %s: title is required", rp.ID)
	}
	f := ProductFields{
		RemoteID:    StripGlobalID(rp.ID),
		Title:       title,
		Description: rp.Description,
		Vendor:      strings.TrimSpace(rp.Vendor),
		ProductType: strings.TrimSpace(rp.ProductType),
		Status:      mapProductStatus(rp.Status),
		Tags:        EncodeTags(rp.Tags),
	}
	for _, rv := range rp.Variants {
		f.Variants = append(f.Variants, catalog.ProductVariant{
			RemoteID:          StripGlobalID(rv.ID),
			Title:             strings.TrimSpace(rv.Title),
			SKU:               strings.TrimSpace(rv.SKU),
			Price:             CoerceAmount(rv.Price),
			InventoryQuantity: rv.InventoryQuantity,
		})
	}
	return f, nil
}

// mapProductStatus maps the platform listing status to the local one.
func mapProductStatus(remote string) catalog.ProductStatus {
	switch strings.ToUpper(strings.TrimSpace(remote)) {
	case "ACTIVE":
		return catalog.ProductStatusActive
	case "ARCHIVED":
		return catalog.ProductStatusArchived
	default:
		return catalog.ProductStatusDraft
	}
}

// productStatusToRemote is the inverse of mapProductStatus.
func productStatusToRemote(s catalog.ProductStatus) string {
	switch s {
	case catalog.ProductStatusActive:
		return "ACTIVE"
	case catalog.ProductStatusArchived:
		return "ARCHIVED"
	default:
		return "DRAFT"
	}
}

// ProductToInput builds the mutation payload for a local product.
func ProductToInput(p *catalog.Product, forUpdate bool) (storefront.ProductInput, error) {
	input := storefront.ProductInput{
		Title:       p.Title,
		Description: p.Description,
		Vendor:      p.Vendor,
		ProductType: p.ProductType,
		Status:      productStatusToRemote(p.Status),
	}
	if forUpdate {
		if err := ValidateRemoteID(p.RemoteID); err != nil {
			return storefront.ProductInput{}, err
		}
		input.ID = WrapGlobalID("Product", p.RemoteID)
	}

	tags := DecodeTags(p.Tags)
	if len(tags) > 0 {
		input.Tags = tags
	}

	for _, v := range p.Variants {
		vi := storefront.VariantInput{
			Title: v.Title,
			SKU:   v.SKU,
			Price: v.Price.String(),
		}
		if v.RemoteID != "" {
			if err := ValidateRemoteID(v.RemoteID); err != nil {
				return storefront.ProductInput{}, err
			}
			vi.ID = WrapGlobalID("ProductVariant", v.RemoteID)
		}
		input.Variants = append(input.Variants, vi)
	}
	return input, nil
}
