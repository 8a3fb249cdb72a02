package ecommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/backoffice/backend/internal/domain/storefront"
)

// maxResponseSize is the maximum allowed response size from the platform (10MB)
const maxResponseSize = 10 * 1024 * 1024

// defaultAPIVersion pins the admin GraphQL API version
const defaultAPIVersion = "2024-01"

// defaultPageSize is the page size used for cursor pagination
const defaultPageSize = 50

// Config holds adapter settings shared by all tenants.
type Config struct {
	// APIVersion selects the admin API version path segment
	APIVersion string
	// TimeoutSeconds bounds each HTTP call
	TimeoutSeconds int
	// CallsPerSecond budgets outbound calls per adapter instance
	CallsPerSecond float64
	// PageSize is the cursor pagination page size
	PageSize int
	// BaseURL overrides the https://{domain} endpoint; used by tests
	BaseURL string
}

// withDefaults fills unset config fields.
func (c Config) withDefaults() Config {
	if c.APIVersion == "" {
		c.APIVersion = defaultAPIVersion
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	if c.CallsPerSecond <= 0 {
		c.CallsPerSecond = defaultCallsPerSecond
	}
	if c.PageSize <= 0 {
		c.PageSize = defaultPageSize
	}
	return c
}

// ShopifyAdapter implements the storefront gateway for one tenant's shop.
// Instances hold that tenant's credentials and a private call pacer; they
// must not be reused across tenants.
type ShopifyAdapter struct {
	creds      storefront.Credentials
	apiURL     string
	httpClient *http.Client
	pacer      *CallPacer
	pageSize   int
	logger     *zap.Logger
}

var _ storefront.Gateway = (*ShopifyAdapter)(nil)

// NewShopifyAdapter creates an adapter bound to one tenant's credentials.
func NewShopifyAdapter(creds storefront.Credentials, cfg Config, logger *zap.Logger) (*ShopifyAdapter, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	base := cfg.BaseURL
	if base == "" {
		base = "https://" + creds.Domain
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShopifyAdapter{
		creds:      creds,
		apiURL:     fmt.Sprintf("%s/admin/api/%s/graphql.json", strings.TrimRight(base, "/"), cfg.APIVersion),
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		pacer:      NewCallPacer(cfg.CallsPerSecond),
		pageSize:   cfg.PageSize,
		logger:     logger,
	}, nil
}

// ShopifyFactory builds per-tenant adapters from shared configuration.
type ShopifyFactory struct {
	cfg    Config
	logger *zap.Logger
}

var _ storefront.GatewayFactory = (*ShopifyFactory)(nil)

// NewShopifyFactory creates a gateway factory.
func NewShopifyFactory(cfg Config, logger *zap.Logger) *ShopifyFactory {
	return &ShopifyFactory{cfg: cfg, logger: logger}
}

// New returns a gateway for the given credentials.
func (f *ShopifyFactory) New(creds storefront.Credentials) (storefront.Gateway, error) {
	return NewShopifyAdapter(creds, f.cfg, f.logger)
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

// graphQLError is one entry of the top-level errors array.
type graphQLError struct {
	Message string `json:"message"`
}

// graphQLResponse is the standard response envelope. Exactly one of Data
// and Errors is expected; both absent is itself an error condition.
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// errorMessages joins the remote error messages for reporting.
func (r *graphQLResponse) errorMessages() string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// doPost issues one authenticated POST, paced by the rate limiter. It
// returns the raw status and body; callers decide how to categorize
// non-2xx statuses.
func (a *ShopifyAdapter) doPost(ctx context.Context, payload any) (int, []byte, error) {
	if err := a.pacer.Wait(ctx); err != nil {
		return 0, nil, err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("shopify: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.apiURL, bytes.NewReader(raw))
	if err != nil {
		return 0, nil, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", a.creds.AccessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", storefront.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("shopify: failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// execute runs one GraphQL call. Transport failures and non-2xx statuses
// come back as wrapped sentinel errors; remote-reported GraphQL errors are
// returned inside the envelope so call sites branch on data, not panics.
func (a *ShopifyAdapter) execute(ctx context.Context, query string, variables map[string]any) (*graphQLResponse, error) {
	if variables == nil {
		variables = map[string]any{}
	}
	status, body, err := a.doPost(ctx, map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", storefront.ErrRequestFailed, status)
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", storefront.ErrInvalidResponse, err)
	}
	if len(envelope.Errors) == 0 && len(envelope.Data) == 0 {
		return nil, fmt.Errorf("%w: no data returned", storefront.ErrInvalidResponse)
	}
	if len(envelope.Errors) > 0 {
		a.logger.Warn("storefront reported errors",
			zap.String("shop", a.creds.Domain),
			zap.String("errors", envelope.errorMessages()))
	}
	return &envelope, nil
}

// decodeData unmarshals the envelope data, treating remote-reported errors
// as an aborting condition for query call sites.
func decodeData(envelope *graphQLResponse, out any) error {
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("%w: %s", storefront.ErrRemoteErrors, envelope.errorMessages())
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: %v", storefront.ErrInvalidResponse, err)
	}
	return nil
}

// TestConnection performs a minimal shop query and maps the HTTP status to
// a user-facing category.
func (a *ShopifyAdapter) TestConnection(ctx context.Context) error {
	status, body, err := a.doPost(ctx, map[string]any{"query": shopQuery})
	if err != nil {
		return err
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: check the access token", storefront.ErrInvalidCredentials)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", storefront.ErrShopNotFound, a.creds.Domain)
	case status >= 400:
		return fmt.Errorf("%w: HTTP %d: %s", storefront.ErrRequestFailed, status, truncate(body, 200))
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("%w: %v", storefront.ErrInvalidResponse, err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("%w: %s", storefront.ErrRemoteErrors, envelope.errorMessages())
	}
	return nil
}

// truncate clips a response body for error messages.
func truncate(body []byte, n int) string {
	s := string(body)
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}

// ---------------------------------------------------------------------------
// Collections
// ---------------------------------------------------------------------------

// Customers returns an iterator over the shop's customer collection.
func (a *ShopifyAdapter) Customers(ctx context.Context) storefront.Iterator[storefront.RemoteCustomer] {
	return newPagedIterator(func(ctx context.Context, cursor *string) ([]storefront.RemoteCustomer, bool, string, error) {
		envelope, err := a.execute(ctx, customersQuery, map[string]any{
			"cursor": cursorVar(cursor),
			"limit":  a.pageSize,
		})
		if err != nil {
			return nil, false, "", err
		}
		var data struct {
			Customers connection[customerNode] `json:"customers"`
		}
		if err := decodeData(envelope, &data); err != nil {
			return nil, false, "", err
		}
		items := make([]storefront.RemoteCustomer, 0, len(data.Customers.Edges))
		for i := range data.Customers.Edges {
			items = append(items, data.Customers.Edges[i].Node.toDomain())
		}
		return items, data.Customers.PageInfo.HasNextPage, data.Customers.PageInfo.EndCursor, nil
	})
}

// Orders returns an iterator over the shop's order collection.
func (a *ShopifyAdapter) Orders(ctx context.Context) storefront.Iterator[storefront.RemoteOrder] {
	return newPagedIterator(func(ctx context.Context, cursor *string) ([]storefront.RemoteOrder, bool, string, error) {
		envelope, err := a.execute(ctx, ordersQuery, map[string]any{
			"cursor": cursorVar(cursor),
			"limit":  a.pageSize,
		})
		if err != nil {
			return nil, false, "", err
		}
		var data struct {
			Orders connection[orderNode] `json:"orders"`
		}
		if err := decodeData(envelope, &data); err != nil {
			return nil, false, "", err
		}
		items := make([]storefront.RemoteOrder, 0, len(data.Orders.Edges))
		for i := range data.Orders.Edges {
			items = append(items, data.Orders.Edges[i].Node.toDomain())
		}
		return items, data.Orders.PageInfo.HasNextPage, data.Orders.PageInfo.EndCursor, nil
	})
}

// Products returns an iterator over the shop's product collection.
func (a *ShopifyAdapter) Products(ctx context.Context) storefront.Iterator[storefront.RemoteProduct] {
	return newPagedIterator(func(ctx context.Context, cursor *string) ([]storefront.RemoteProduct, bool, string, error) {
		envelope, err := a.execute(ctx, productsQuery, map[string]any{
			"cursor": cursorVar(cursor),
			"limit":  a.pageSize,
		})
		if err != nil {
			return nil, false, "", err
		}
		var data struct {
			Products connection[productNode] `json:"products"`
		}
		if err := decodeData(envelope, &data); err != nil {
			return nil, false, "", err
		}
		items := make([]storefront.RemoteProduct, 0, len(data.Products.Edges))
		for i := range data.Products.Edges {
			items = append(items, data.Products.Edges[i].Node.toDomain())
		}
		return items, data.Products.PageInfo.HasNextPage, data.Products.PageInfo.EndCursor, nil
	})
}

// cursorVar maps a nil cursor to JSON null.
func cursorVar(cursor *string) any {
	if cursor == nil {
		return nil
	}
	return *cursor
}

// ---------------------------------------------------------------------------
// Customer Mutations
// ---------------------------------------------------------------------------

// GetCustomer fetches one customer by id in global-ID form.
func (a *ShopifyAdapter) GetCustomer(ctx context.Context, remoteID string) (*storefront.RemoteCustomer, error) {
	envelope, err := a.execute(ctx, customerQuery, map[string]any{"id": remoteID})
	if err != nil {
		return nil, err
	}
	var data struct {
		Customer *customerNode `json:"customer"`
	}
	if err := decodeData(envelope, &data); err != nil {
		return nil, err
	}
	if data.Customer == nil {
		return nil, fmt.Errorf("%w: customer %s", storefront.ErrRecordNotFound, remoteID)
	}
	rc := data.Customer.toDomain()
	return &rc, nil
}

// CreateCustomer creates a customer on the platform.
func (a *ShopifyAdapter) CreateCustomer(ctx context.Context, input storefront.CustomerInput) (*storefront.RemoteCustomer, error) {
	envelope, err := a.execute(ctx, customerCreateMutation, map[string]any{"input": input})
	if err != nil {
		return nil, err
	}
	var data struct {
		CustomerCreate struct {
			Customer   *customerNode   `json:"customer"`
			UserErrors []userErrorNode `json:"userErrors"`
		} `json:"customerCreate"`
	}
	if err := decodeData(envelope, &data); err != nil {
		return nil, err
	}
	if err := toUserErrors(data.CustomerCreate.UserErrors); err != nil {
		return nil, err
	}
	if data.CustomerCreate.Customer == nil {
		return nil, fmt.Errorf("%w: mutation returned no customer", storefront.ErrInvalidResponse)
	}
	rc := data.CustomerCreate.Customer.toDomain()
	return &rc, nil
}

// UpdateCustomer updates an existing customer; input.ID is required.
func (a *ShopifyAdapter) UpdateCustomer(ctx context.Context, input storefront.CustomerInput) (*storefront.RemoteCustomer, error) {
	if input.ID == "" {
		return nil, fmt.Errorf("%w: update requires an id", storefront.ErrInvalidRemoteID)
	}
	envelope, err := a.execute(ctx, customerUpdateMutation, map[string]any{"input": input})
	if err != nil {
		return nil, err
	}
	var data struct {
		CustomerUpdate struct {
			Customer   *customerNode   `json:"customer"`
			UserErrors []userErrorNode `json:"userErrors"`
		} `json:"customerUpdate"`
	}
	if err := decodeData(envelope, &data); err != nil {
		return nil, err
	}
	if err := toUserErrors(data.CustomerUpdate.UserErrors); err != nil {
		return nil, err
	}
	if data.CustomerUpdate.Customer == nil {
		return nil, fmt.Errorf("%w: mutation returned no customer", storefront.ErrInvalidResponse)
	}
	rc := data.CustomerUpdate.Customer.toDomain()
	return &rc, nil
}

// DeleteCustomer deletes a customer by id in global-ID form.
func (a *ShopifyAdapter) DeleteCustomer(ctx context.Context, remoteID string) error {
	envelope, err := a.execute(ctx, customerDeleteMutation, map[string]any{
		"input": map[string]any{"id": remoteID},
	})
	if err != nil {
		return err
	}
	var data struct {
		CustomerDelete struct {
			DeletedCustomerID string          `json:"deletedCustomerId"`
			UserErrors        []userErrorNode `json:"userErrors"`
		} `json:"customerDelete"`
	}
	if err := decodeData(envelope, &data); err != nil {
		return err
	}
	return toUserErrors(data.CustomerDelete.UserErrors)
}

// ---------------------------------------------------------------------------
// Product Mutations
// ---------------------------------------------------------------------------

// CreateProduct creates a product with its variants.
func (a *ShopifyAdapter) CreateProduct(ctx context.Context, input storefront.ProductInput) (*storefront.RemoteProduct, error) {
	payload := map[string]any{"input": input}
	if len(input.Variants) > 0 {
		payload["input"] = productInputWithVariants(input)
	}
	envelope, err := a.execute(ctx, productCreateMutation, payload)
	if err != nil {
		return nil, err
	}
	var data struct {
		ProductCreate struct {
			Product    *productNode    `json:"product"`
			UserErrors []userErrorNode `json:"userErrors"`
		} `json:"productCreate"`
	}
	if err := decodeData(envelope, &data); err != nil {
		return nil, err
	}
	if err := toUserErrors(data.ProductCreate.UserErrors); err != nil {
		return nil, err
	}
	if data.ProductCreate.Product == nil {
		return nil, fmt.Errorf("%w: mutation returned no product", storefront.ErrInvalidResponse)
	}
	rp := data.ProductCreate.Product.toDomain()
	return &rp, nil
}

// UpdateProduct updates the product record, then each variant carrying a
// remote id through its own mutation, matching the platform schema.
func (a *ShopifyAdapter) UpdateProduct(ctx context.Context, input storefront.ProductInput) (*storefront.RemoteProduct, error) {
	if input.ID == "" {
		return nil, fmt.Errorf("%w: update requires an id", storefront.ErrInvalidRemoteID)
	}
	envelope, err := a.execute(ctx, productUpdateMutation, map[string]any{"input": input})
	if err != nil {
		return nil, err
	}
	var data struct {
		ProductUpdate struct {
			Product    *productNode    `json:"product"`
			UserErrors []userErrorNode `json:"userErrors"`
		} `json:"productUpdate"`
	}
	if err := decodeData(envelope, &data); err != nil {
		return nil, err
	}
	if err := toUserErrors(data.ProductUpdate.UserErrors); err != nil {
		return nil, err
	}
	if data.ProductUpdate.Product == nil {
		return nil, fmt.Errorf("%w: mutation returned no product", storefront.ErrInvalidResponse)
	}

	var variantErrs storefront.UserErrors
	for _, v := range input.Variants {
		if v.ID == "" {
			continue
		}
		if err := a.updateVariant(ctx, v); err != nil {
			var ue storefront.UserErrors
			if !errors.As(err, &ue) {
				return nil, fmt.Errorf("variant %s: %w", v.ID, err)
			}
			for _, fe := range ue {
				fe.Field = append([]string{v.ID}, fe.Field...)
				variantErrs = append(variantErrs, fe)
			}
		}
	}
	if len(variantErrs) > 0 {
		return nil, variantErrs
	}

	rp := data.ProductUpdate.Product.toDomain()
	return &rp, nil
}

// updateVariant issues one productVariantUpdate mutation.
func (a *ShopifyAdapter) updateVariant(ctx context.Context, v storefront.VariantInput) error {
	envelope, err := a.execute(ctx, variantUpdateMutation, map[string]any{"input": v})
	if err != nil {
		return err
	}
	var data struct {
		ProductVariantUpdate struct {
			UserErrors []userErrorNode `json:"userErrors"`
		} `json:"productVariantUpdate"`
	}
	if err := decodeData(envelope, &data); err != nil {
		return err
	}
	return toUserErrors(data.ProductVariantUpdate.UserErrors)
}

// productInputWithVariants inlines variant inputs into the create payload.
func productInputWithVariants(input storefront.ProductInput) map[string]any {
	raw, _ := json.Marshal(input)
	payload := map[string]any{}
	_ = json.Unmarshal(raw, &payload)
	variants := make([]map[string]any, 0, len(input.Variants))
	for _, v := range input.Variants {
		entry := map[string]any{"price": v.Price}
		if v.Title != "" {
			entry["title"] = v.Title
		}
		if v.SKU != "" {
			entry["sku"] = v.SKU
		}
		variants = append(variants, entry)
	}
	payload["variants"] = variants
	return payload
}
