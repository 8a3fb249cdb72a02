package orderimport

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/backoffice/backend/internal/application/sync"
	"github.com/backoffice/backend/internal/domain/company"
	"github.com/backoffice/backend/internal/domain/customer"
	"github.com/backoffice/backend/internal/domain/order"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/storefront"
)

// SkippedOrder records one order left out of an import run together with
// a human-readable reason. Only recoverable data problems land here;
// persistence failures abort the whole run instead.
type SkippedOrder struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

// ImportResult summarizes one import run.
type ImportResult struct {
	Message  string         `json:"message"`
	Imported int            `json:"imported"`
	Skipped  []SkippedOrder `json:"skipped_orders,omitempty"`
}

// Service imports storefront orders into the back office. All remote
// pages are fetched before any write, then the whole batch is persisted
// inside a single transaction.
type Service struct {
	companies company.Repository
	gateways  storefront.GatewayFactory
	scope     TransactionScope
	logger    *zap.Logger
}

// NewService creates an order import service.
func NewService(
	companies company.Repository,
	gateways storefront.GatewayFactory,
	scope TransactionScope,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		companies: companies,
		gateways:  gateways,
		scope:     scope,
		logger:    logger,
	}
}

// Import pulls every order from the storefront and stores the ones not
// yet known locally. Orders without a display number or already present
// are passed over without note; orders missing contact or address data
// are reported in the skipped list. Any persistence failure rolls back
// the entire batch.
func (s *Service) Import(ctx context.Context, companyID uuid.UUID) (*ImportResult, error) {
	comp, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	gw, err := s.gateways.New(storefront.Credentials{
		Domain:      comp.CatalogDomain,
		AccessToken: comp.CatalogAccessToken,
	})
	if err != nil {
		return nil, err
	}

	// Fetch every page up front so a mid-pagination transport failure
	// never leaves a half-written batch behind.
	var remote []storefront.RemoteOrder
	it := gw.Orders(ctx)
	for it.Next(ctx) {
		remote = append(remote, it.Record())
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("fetching storefront orders: %w", err)
	}

	result := &ImportResult{}
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		for i := range remote {
			if err := s.importOne(ctx, repos, comp.ID, &remote[i], result); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Message = fmt.Sprintf("Sync complete. Added %d new orders.", result.Imported)
	if n := len(result.Skipped); n > 0 {
		result.Message += fmt.Sprintf(" Skipped %d orders due to missing or invalid address data.", n)
	}
	s.logger.Info("order import finished",
		zap.String("company_id", companyID.String()),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

// importOne processes a single remote order inside the batch transaction.
// A returned error aborts and rolls back the whole run.
func (s *Service) importOne(ctx context.Context, repos TransactionalRepositories, tenantID uuid.UUID, ro *storefront.RemoteOrder, result *ImportResult) error {
	orderID := strings.TrimSpace(ro.Name)
	if orderID == "" {
		return nil
	}
	exists, err := repos.OrderRepo().ExistsByOrderID(ctx, tenantID, orderID)
	if err != nil {
		return fmt.Errorf("checking order %s: %w", orderID, err)
	}
	if exists {
		return nil
	}

	email := strings.TrimSpace(ro.Email)
	if email == "" {
		result.Skipped = append(result.Skipped, SkippedOrder{OrderID: orderID, Reason: "missing customer email"})
		return nil
	}
	addr, ok := shippingAddress(ro)
	if !ok {
		result.Skipped = append(result.Skipped, SkippedOrder{OrderID: orderID, Reason: "incomplete shipping address"})
		return nil
	}

	cust, err := s.upsertCustomer(ctx, repos.CustomerRepo(), tenantID, email, ro, &addr)
	if err != nil {
		return fmt.Errorf("upserting customer for order %s: %w", orderID, err)
	}

	o, err := buildOrder(tenantID, cust.ID, orderID, ro, addr)
	if err != nil {
		return fmt.Errorf("building order %s: %w", orderID, err)
	}
	if err := repos.OrderRepo().Save(ctx, o); err != nil {
		return fmt.Errorf("saving order %s: %w", orderID, err)
	}
	result.Imported++
	return nil
}

// shippingAddress extracts the order's shipping address and reports
// whether it is complete enough to import.
func shippingAddress(ro *storefront.RemoteOrder) (customer.Address, bool) {
	if ro.ShippingAddress == nil {
		return customer.Address{}, false
	}
	addr := customer.Address{
		Address1: strings.TrimSpace(ro.ShippingAddress.Address1),
		Address2: strings.TrimSpace(ro.ShippingAddress.Address2),
		City:     strings.TrimSpace(ro.ShippingAddress.City),
		Province: strings.TrimSpace(ro.ShippingAddress.Province),
		Country:  strings.TrimSpace(ro.ShippingAddress.Country),
		Zip:      strings.TrimSpace(ro.ShippingAddress.Zip),
		Phone:    strings.TrimSpace(ro.ShippingAddress.Phone),
	}
	if err := addr.Validate(); err != nil {
		return customer.Address{}, false
	}
	return addr, true
}

// upsertCustomer finds the customer by email within the company, or
// creates one. The imported order's contact and address data overwrites
// the stored record; locally owned fields such as the customer code stay
// untouched.
func (s *Service) upsertCustomer(ctx context.Context, repo customer.Repository, tenantID uuid.UUID, email string, ro *storefront.RemoteOrder, addr *customer.Address) (*customer.Customer, error) {
	firstName, lastName := contactName(ro)
	phone := contactPhone(ro, addr)

	cust, err := repo.FindByEmail(ctx, tenantID, email)
	switch {
	case err == nil:
		cust.FirstName = firstName
		cust.LastName = lastName
		if phone != "" {
			cust.Phone = phone
		}
	case errors.Is(err, shared.ErrNotFound):
		cust, err = customer.NewCustomer(tenantID, firstName, lastName, email, phone)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if ro.Customer != nil && cust.RemoteID == "" {
		cust.RemoteID = sync.StripGlobalID(ro.Customer.ID)
	}
	cust.City = addr.City
	cust.State = addr.Province
	cust.Country = addr.Country
	cust.DefaultAddressLine = addr.Address1
	cust.DefaultAddressArea = addr.FormattedArea()
	if err := cust.SetAddresses([]customer.Address{*addr}); err != nil {
		return nil, err
	}
	cust.RefreshDerived()
	cust.Touch()
	if err := repo.Save(ctx, cust); err != nil {
		return nil, err
	}
	return cust, nil
}

// contactName prefers the embedded customer summary, falling back to the
// shipping address recipient.
func contactName(ro *storefront.RemoteOrder) (string, string) {
	if ro.Customer != nil && (ro.Customer.FirstName != "" || ro.Customer.LastName != "") {
		return strings.TrimSpace(ro.Customer.FirstName), strings.TrimSpace(ro.Customer.LastName)
	}
	if ro.ShippingAddress != nil {
		return strings.TrimSpace(ro.ShippingAddress.FirstName), strings.TrimSpace(ro.ShippingAddress.LastName)
	}
	return "", ""
}

// contactPhone picks the first non-blank phone from the order, the
// embedded customer and the shipping address.
func contactPhone(ro *storefront.RemoteOrder, addr *customer.Address) string {
	if p := strings.TrimSpace(ro.Phone); p != "" {
		return p
	}
	if ro.Customer != nil {
		if p := strings.TrimSpace(ro.Customer.Phone); p != "" {
			return p
		}
	}
	return addr.Phone
}

// buildOrder maps one remote order into a local external order with its
// line items.
func buildOrder(tenantID, customerID uuid.UUID, orderID string, ro *storefront.RemoteOrder, addr customer.Address) (*order.Order, error) {
	o, err := order.NewExternalOrder(tenantID, customerID, orderID)
	if err != nil {
		return nil, err
	}
	o.RemoteOrderID = sync.StripGlobalID(ro.ID)
	o.Email = strings.TrimSpace(ro.Email)
	o.Phone = strings.TrimSpace(ro.Phone)
	o.FinancialStatus = capitalize(ro.FinancialStatus)
	o.FulfillmentStatus = capitalize(ro.FulfillmentStatus)
	if o.FulfillmentStatus == "" {
		o.FulfillmentStatus = "Unfulfilled"
	}
	o.Tags = sync.EncodeTags(ro.Tags)
	o.InternalNotes = ro.Note
	o.ShippingAddress = addr

	var currency string
	o.Subtotal, currency = sync.MoneyAmount(ro.Subtotal)
	o.TotalTax, _ = sync.MoneyAmount(ro.TotalTax)
	o.TotalShipping, _ = sync.MoneyAmount(ro.TotalShipping)
	if total, cur := sync.MoneyAmount(ro.Total); cur != "" || !total.IsZero() {
		o.Total = total
		if cur != "" {
			currency = cur
		}
	}
	o.Currency = currency

	switch {
	case ro.ProcessedAt != nil:
		o.PlacedAt = ro.ProcessedAt
	case ro.CreatedAt != nil:
		o.PlacedAt = ro.CreatedAt
	}

	items := make([]order.OrderItem, 0, len(ro.LineItems))
	for _, li := range ro.LineItems {
		qty := li.Quantity
		if qty <= 0 {
			qty = 1
		}
		unit, _ := sync.MoneyAmount(li.UnitPrice)
		items = append(items, order.NewOrderItem(strings.TrimSpace(li.Title), strings.TrimSpace(li.SKU), qty, unit))
	}
	o.SetItems(items)
	return o, nil
}

// capitalize upper-cases the first letter and lower-cases the rest, so
// platform states like "PAID" or "paid" both land as "Paid".
func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
