package orderimport

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backoffice/backend/internal/domain/company"
	"github.com/backoffice/backend/internal/domain/customer"
	"github.com/backoffice/backend/internal/domain/order"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/storefront"
)

// --- fakes -----------------------------------------------------------------

type sliceIterator[T any] struct {
	items   []T
	idx     int
	current T
	err     error
}

func (it *sliceIterator[T]) Next(context.Context) bool {
	if it.idx >= len(it.items) {
		return false
	}
	it.current = it.items[it.idx]
	it.idx++
	return true
}

func (it *sliceIterator[T]) Record() T  { return it.current }
func (it *sliceIterator[T]) Err() error { return it.err }

type stubGateway struct {
	storefront.Gateway
	orders  []storefront.RemoteOrder
	iterErr error
}

func (g *stubGateway) Orders(context.Context) storefront.Iterator[storefront.RemoteOrder] {
	return &sliceIterator[storefront.RemoteOrder]{items: g.orders, err: g.iterErr}
}

type stubGatewayFactory struct {
	gateway storefront.Gateway
}

func (f *stubGatewayFactory) New(creds storefront.Credentials) (storefront.Gateway, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return f.gateway, nil
}

type memCompanyRepo struct {
	byID map[uuid.UUID]*company.Company
}

func newMemCompanyRepo(companies ...*company.Company) *memCompanyRepo {
	r := &memCompanyRepo{byID: map[uuid.UUID]*company.Company{}}
	for _, c := range companies {
		r.byID[c.ID] = c
	}
	return r
}

func (r *memCompanyRepo) FindByID(_ context.Context, id uuid.UUID) (*company.Company, error) {
	if c, ok := r.byID[id]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memCompanyRepo) FindByOwner(_ context.Context, ownerUserID uuid.UUID) (*company.Company, error) {
	for _, c := range r.byID {
		if c.OwnerUserID == ownerUserID {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCompanyRepo) Save(_ context.Context, c *company.Company) error {
	r.byID[c.ID] = c
	return nil
}

type memCustomerRepo struct {
	customer.Repository
	byID map[uuid.UUID]*customer.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{byID: map[uuid.UUID]*customer.Customer{}}
}

func (r *memCustomerRepo) FindByEmail(_ context.Context, tenantID uuid.UUID, email string) (*customer.Customer, error) {
	for _, c := range r.byID {
		if c.TenantID == tenantID && strings.EqualFold(c.Email, email) {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCustomerRepo) Save(_ context.Context, c *customer.Customer) error {
	r.byID[c.ID] = c
	return nil
}

type memOrderRepo struct {
	order.Repository
	byID    map[uuid.UUID]*order.Order
	saveErr error
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{byID: map[uuid.UUID]*order.Order{}}
}

func (r *memOrderRepo) ExistsByOrderID(_ context.Context, tenantID uuid.UUID, orderID string) (bool, error) {
	for _, o := range r.byID {
		if o.TenantID == tenantID && o.OrderID == orderID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memOrderRepo) Save(_ context.Context, o *order.Order) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.byID[o.ID] = o
	return nil
}

// --- fixtures --------------------------------------------------------------

func connectedCompany(t *testing.T) *company.Company {
	t.Helper()
	comp, err := company.NewCompany("Acme Traders", uuid.New())
	require.NoError(t, err)
	require.NoError(t, comp.ConnectStorefront("example.myshopify.com", "shpat_test"))
	return comp
}

func remoteOrderFixture(name string) storefront.RemoteOrder {
	return storefront.RemoteOrder{
		ID:              "gid://shopify/Order/100",
		Name:            name,
		Email:           "buyer@example.com",
		FinancialStatus: "PAID",
		Customer: &storefront.RemoteOrderCustomer{
			ID:        "gid://shopify/Customer/1",
			FirstName: "Asha",
			LastName:  "Rao",
		},
		ShippingAddress: &storefront.RemoteAddress{
			Address1: "1 Main St",
			City:     "Pune",
			Province: "MH",
			Country:  "India",
			Phone:    "+911234567890",
		},
		Subtotal: &storefront.RemoteMoney{Amount: "50.00", CurrencyCode: "INR"},
		TotalTax: &storefront.RemoteMoney{Amount: "5.00", CurrencyCode: "INR"},
		Total:    &storefront.RemoteMoney{Amount: "55.00", CurrencyCode: "INR"},
		LineItems: []storefront.RemoteLineItem{
			{Title: "Kettle", SKU: "TK-1", Quantity: 2, UnitPrice: &storefront.RemoteMoney{Amount: "25.00"}},
		},
	}
}

func newImportService(comp *company.Company, gw storefront.Gateway, customers *memCustomerRepo, orders *memOrderRepo) *Service {
	scope := NewNoOpTransactionScope(customers, orders)
	return NewService(newMemCompanyRepo(comp), &stubGatewayFactory{gateway: gw}, scope, nil)
}

// --- tests -----------------------------------------------------------------

func TestImport(t *testing.T) {
	ctx := context.Background()

	t.Run("imports order with customer upsert", func(t *testing.T) {
		comp := connectedCompany(t)
		customers := newMemCustomerRepo()
		orders := newMemOrderRepo()
		gw := &stubGateway{orders: []storefront.RemoteOrder{remoteOrderFixture("#1001")}}

		result, err := newImportService(comp, gw, customers, orders).Import(ctx, comp.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Imported)
		assert.Empty(t, result.Skipped)
		assert.Contains(t, result.Message, "Added 1 new orders")

		require.Len(t, orders.byID, 1)
		var stored *order.Order
		for _, o := range orders.byID {
			stored = o
		}
		assert.Equal(t, "#1001", stored.OrderID)
		assert.Equal(t, "100", stored.RemoteOrderID)
		assert.Equal(t, order.SourceExternal, stored.Source)
		assert.Equal(t, order.StatusPending, stored.Status)
		assert.Equal(t, "Paid", stored.FinancialStatus)
		assert.Equal(t, "Unfulfilled", stored.FulfillmentStatus)
		assert.Equal(t, "INR", stored.Currency)
		assert.True(t, stored.Total.Equal(decimal.RequireFromString("55.00")))
		require.Len(t, stored.Items, 1)
		assert.True(t, stored.Items[0].TotalPrice.Equal(decimal.RequireFromString("50.00")))

		cust, err := customers.FindByEmail(ctx, comp.ID, "buyer@example.com")
		require.NoError(t, err)
		assert.Equal(t, stored.CustomerID, cust.ID)
		assert.Equal(t, "1", cust.RemoteID)
		assert.Equal(t, "Pune", cust.City)
		require.Len(t, cust.Addresses, 1)
	})

	t.Run("rerun adds nothing", func(t *testing.T) {
		comp := connectedCompany(t)
		customers := newMemCustomerRepo()
		orders := newMemOrderRepo()
		gw := &stubGateway{orders: []storefront.RemoteOrder{remoteOrderFixture("#1001")}}
		svc := newImportService(comp, gw, customers, orders)

		_, err := svc.Import(ctx, comp.ID)
		require.NoError(t, err)

		result, err := svc.Import(ctx, comp.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Imported)
		assert.Len(t, orders.byID, 1)
	})

	t.Run("missing email skipped with reason", func(t *testing.T) {
		comp := connectedCompany(t)
		bad := remoteOrderFixture("#1002")
		bad.Email = ""
		gw := &stubGateway{orders: []storefront.RemoteOrder{bad, remoteOrderFixture("#1003")}}
		orders := newMemOrderRepo()

		result, err := newImportService(comp, gw, newMemCustomerRepo(), orders).Import(ctx, comp.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Imported)
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, "#1002", result.Skipped[0].OrderID)
		assert.Equal(t, "missing customer email", result.Skipped[0].Reason)
		assert.Contains(t, result.Message, "Skipped 1 orders")
	})

	t.Run("incomplete shipping address skipped", func(t *testing.T) {
		comp := connectedCompany(t)
		bad := remoteOrderFixture("#1002")
		bad.ShippingAddress = &storefront.RemoteAddress{City: "Pune"}
		gw := &stubGateway{orders: []storefront.RemoteOrder{bad}}

		result, err := newImportService(comp, gw, newMemCustomerRepo(), newMemOrderRepo()).Import(ctx, comp.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Imported)
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, "incomplete shipping address", result.Skipped[0].Reason)
	})

	t.Run("nameless order passed over silently", func(t *testing.T) {
		comp := connectedCompany(t)
		bad := remoteOrderFixture("  ")
		gw := &stubGateway{orders: []storefront.RemoteOrder{bad}}

		result, err := newImportService(comp, gw, newMemCustomerRepo(), newMemOrderRepo()).Import(ctx, comp.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Imported)
		assert.Empty(t, result.Skipped)
	})

	t.Run("existing customer enriched not duplicated", func(t *testing.T) {
		comp := connectedCompany(t)
		customers := newMemCustomerRepo()
		existing, err := customer.NewCustomer(comp.ID, "Old", "Name", "buyer@example.com", "")
		require.NoError(t, err)
		existing.CustomerCode = "CUST-001"
		require.NoError(t, customers.Save(ctx, existing))

		gw := &stubGateway{orders: []storefront.RemoteOrder{remoteOrderFixture("#1001")}}
		_, err = newImportService(comp, gw, customers, newMemOrderRepo()).Import(ctx, comp.ID)
		require.NoError(t, err)

		assert.Len(t, customers.byID, 1)
		stored := customers.byID[existing.ID]
		assert.Equal(t, "Asha", stored.FirstName)
		assert.Equal(t, "CUST-001", stored.CustomerCode, "locally owned code survives")
		assert.Equal(t, "+911234567890", stored.Phone)
	})

	t.Run("persistence failure aborts the run", func(t *testing.T) {
		comp := connectedCompany(t)
		orders := newMemOrderRepo()
		orders.saveErr = errors.New("disk full")
		gw := &stubGateway{orders: []storefront.RemoteOrder{remoteOrderFixture("#1001")}}

		_, err := newImportService(comp, gw, newMemCustomerRepo(), orders).Import(ctx, comp.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "#1001")
	})

	t.Run("transport failure before any write", func(t *testing.T) {
		comp := connectedCompany(t)
		orders := newMemOrderRepo()
		gw := &stubGateway{
			orders:  []storefront.RemoteOrder{remoteOrderFixture("#1001")},
			iterErr: storefront.ErrRequestFailed,
		}

		_, err := newImportService(comp, gw, newMemCustomerRepo(), orders).Import(ctx, comp.ID)
		assert.ErrorIs(t, err, storefront.ErrRequestFailed)
		assert.Empty(t, orders.byID, "no partial batch on transport failure")
	})

	t.Run("unconnected company rejected", func(t *testing.T) {
		comp, err := company.NewCompany("No Integration", uuid.New())
		require.NoError(t, err)
		svc := NewService(newMemCompanyRepo(comp), &stubGatewayFactory{gateway: &stubGateway{}},
			NewNoOpTransactionScope(newMemCustomerRepo(), newMemOrderRepo()), nil)

		_, err = svc.Import(ctx, comp.ID)
		assert.ErrorIs(t, err, storefront.ErrMissingCredentials)
	})
}
