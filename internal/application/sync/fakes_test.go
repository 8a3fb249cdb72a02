package sync

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/catalog"
	"github.com/backoffice/backend/internal/domain/company"
	"github.com/backoffice/backend/internal/domain/customer"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/storefront"
)

// sliceIterator walks a fixed slice, optionally failing at the end.
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

// stubGateway serves canned collections and records mutation calls.
type stubGateway struct {
	customers    []storefront.RemoteCustomer
	orders       []storefront.RemoteOrder
	products     []storefront.RemoteProduct
	iterErr      error
	connErr      error
	createErr    error
	updateErr    error
	deleteErr    error
	created      []storefront.CustomerInput
	updated      []storefront.CustomerInput
	deleted      []string
	createdProds []storefront.ProductInput
	updatedProds []storefront.ProductInput
	nextRemoteID string
}

var _ storefront.Gateway = (*stubGateway)(nil)

func (g *stubGateway) TestConnection(context.Context) error { return g.connErr }

func (g *stubGateway) Customers(context.Context) storefront.Iterator[storefront.RemoteCustomer] {
	return &sliceIterator[storefront.RemoteCustomer]{items: g.customers, err: g.iterErr}
}

func (g *stubGateway) Orders(context.Context) storefront.Iterator[storefront.RemoteOrder] {
	return &sliceIterator[storefront.RemoteOrder]{items: g.orders, err: g.iterErr}
}

func (g *stubGateway) Products(context.Context) storefront.Iterator[storefront.RemoteProduct] {
	return &sliceIterator[storefront.RemoteProduct]{items: g.products, err: g.iterErr}
}

func (g *stubGateway) GetCustomer(_ context.Context, remoteID string) (*storefront.RemoteCustomer, error) {
	for i := range g.customers {
		if g.customers[i].ID == remoteID {
			return &g.customers[i], nil
		}
	}
	return nil, storefront.ErrRecordNotFound
}

func (g *stubGateway) CreateCustomer(_ context.Context, input storefront.CustomerInput) (*storefront.RemoteCustomer, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.created = append(g.created, input)
	id := g.nextRemoteID
	if id == "" {
		id = "gid://shopify/Customer/900"
	}
	return &storefront.RemoteCustomer{ID: id, Email: input.Email}, nil
}

func (g *stubGateway) UpdateCustomer(_ context.Context, input storefront.CustomerInput) (*storefront.RemoteCustomer, error) {
	if g.updateErr != nil {
		return nil, g.updateErr
	}
	g.updated = append(g.updated, input)
	return &storefront.RemoteCustomer{ID: input.ID, Email: input.Email}, nil
}

func (g *stubGateway) DeleteCustomer(_ context.Context, remoteID string) error {
	if g.deleteErr != nil {
		return g.deleteErr
	}
	g.deleted = append(g.deleted, remoteID)
	return nil
}

func (g *stubGateway) CreateProduct(_ context.Context, input storefront.ProductInput) (*storefront.RemoteProduct, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.createdProds = append(g.createdProds, input)
	id := g.nextRemoteID
	if id == "" {
		id = "gid://shopify/Product/900"
	}
	return &storefront.RemoteProduct{ID: id, Title: input.Title}, nil
}

func (g *stubGateway) UpdateProduct(_ context.Context, input storefront.ProductInput) (*storefront.RemoteProduct, error) {
	if g.updateErr != nil {
		return nil, g.updateErr
	}
	g.updatedProds = append(g.updatedProds, input)
	return &storefront.RemoteProduct{ID: input.ID, Title: input.Title}, nil
}

// stubGatewayFactory hands out one fixed gateway.
type stubGatewayFactory struct {
	gateway storefront.Gateway
	err     error
}

var _ storefront.GatewayFactory = (*stubGatewayFactory)(nil)

func (f *stubGatewayFactory) New(creds storefront.Credentials) (storefront.Gateway, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return f.gateway, nil
}

// memCompanyRepo is an in-memory company repository.
type memCompanyRepo struct {
	byID map[uuid.UUID]*company.Company
}

var _ company.Repository = (*memCompanyRepo)(nil)

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

// memCustomerRepo is an in-memory customer repository keyed by id.
type memCustomerRepo struct {
	byID    map[uuid.UUID]*customer.Customer
	saveErr error
	saves   int
}

var _ customer.Repository = (*memCustomerRepo)(nil)

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{byID: map[uuid.UUID]*customer.Customer{}}
}

func (r *memCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*customer.Customer, error) {
	if c, ok := r.byID[id]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memCustomerRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*customer.Customer, error) {
	if c, ok := r.byID[id]; ok && c.TenantID == tenantID {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memCustomerRepo) FindByRemoteID(_ context.Context, tenantID uuid.UUID, remoteID string) (*customer.Customer, error) {
	for _, c := range r.byID {
		if c.TenantID == tenantID && c.RemoteID == remoteID && remoteID != "" {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCustomerRepo) FindByEmail(_ context.Context, tenantID uuid.UUID, email string) (*customer.Customer, error) {
	for _, c := range r.byID {
		if c.TenantID == tenantID && strings.EqualFold(c.Email, email) {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCustomerRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]customer.Customer, error) {
	var out []customer.Customer
	for _, c := range r.byID {
		if c.TenantID == tenantID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memCustomerRepo) CountForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, c := range r.byID {
		if c.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (r *memCustomerRepo) Save(_ context.Context, c *customer.Customer) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.byID[c.ID] = c
	return nil
}

func (r *memCustomerRepo) DeleteForTenant(_ context.Context, tenantID, id uuid.UUID) error {
	if c, ok := r.byID[id]; ok && c.TenantID == tenantID {
		delete(r.byID, id)
		return nil
	}
	return shared.ErrNotFound
}

// memProductRepo is an in-memory catalog repository keyed by id.
type memProductRepo struct {
	byID map[uuid.UUID]*catalog.Product
}

var _ catalog.Repository = (*memProductRepo)(nil)

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{byID: map[uuid.UUID]*catalog.Product{}}
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindByIDForOwner(_ context.Context, ownerUserID, id uuid.UUID) (*catalog.Product, error) {
	if p, ok := r.byID[id]; ok && p.OwnerUserID == ownerUserID {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindByRemoteID(_ context.Context, ownerUserID uuid.UUID, remoteID string) (*catalog.Product, error) {
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID && p.RemoteID == remoteID && remoteID != "" {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindAllForOwner(_ context.Context, ownerUserID uuid.UUID, _ shared.Filter) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Save(_ context.Context, p *catalog.Product) error {
	r.byID[p.ID] = p
	return nil
}

func (r *memProductRepo) DeleteForOwner(_ context.Context, ownerUserID, id uuid.UUID) error {
	if p, ok := r.byID[id]; ok && p.OwnerUserID == ownerUserID {
		delete(r.byID, id)
		return nil
	}
	return shared.ErrNotFound
}
