package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	integrationapp "github.com/backoffice/backend/internal/application/integration"
	"github.com/backoffice/backend/internal/domain/company"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/shipping"
	"github.com/backoffice/backend/internal/domain/storefront"
	"github.com/backoffice/backend/internal/interfaces/http/dto"
	"github.com/backoffice/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
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

// stubGateway only needs TestConnection here.
type stubGateway struct {
	storefront.Gateway
	connErr error
}

func (g *stubGateway) TestConnection(context.Context) error { return g.connErr }

type stubGatewayFactory struct {
	gateway storefront.Gateway
}

func (f *stubGatewayFactory) New(creds storefront.Credentials) (storefront.Gateway, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return f.gateway, nil
}

type stubShipper struct {
	token string
	err   error
}

func (s *stubShipper) Authenticate(context.Context, string, string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.token, nil
}

// newIntegrationRouter wires the handler under a router group that
// injects JWT claims the way the auth middleware would.
func newIntegrationRouter(h *IntegrationHandler, tenantID uuid.UUID) *gin.Engine {
	router := gin.New()
	group := router.Group("/api/v1")
	group.Use(func(c *gin.Context) {
		c.Set(middleware.JWTTenantIDKey, tenantID.String())
		c.Set(middleware.JWTUserIDKey, uuid.New().String())
		c.Next()
	})
	h.RegisterRoutes(group)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func newHandlerCompany(t *testing.T) *company.Company {
	t.Helper()
	comp, err := company.NewCompany("Acme Traders", uuid.New())
	require.NoError(t, err)
	return comp
}

func TestIntegrationHandlerConnectStorefront(t *testing.T) {
	storefrontBody := gin.H{
		"domain":       "example.myshopify.com",
		"access_token": "shpat_test",
	}

	t.Run("connects and reports success", func(t *testing.T) {
		comp := newHandlerCompany(t)
		repo := newMemCompanyRepo(comp)
		svc := integrationapp.NewService(repo, &stubGatewayFactory{gateway: &stubGateway{}}, &stubShipper{}, nil)
		router := newIntegrationRouter(NewIntegrationHandler(svc), comp.ID)

		w := postJSON(t, router, "/api/v1/integrations/storefront", storefrontBody)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)

		stored, err := repo.FindByID(context.Background(), comp.ID)
		require.NoError(t, err)
		assert.True(t, stored.StorefrontConnected())
	})

	t.Run("missing field fails binding", func(t *testing.T) {
		comp := newHandlerCompany(t)
		svc := integrationapp.NewService(newMemCompanyRepo(comp), &stubGatewayFactory{gateway: &stubGateway{}}, &stubShipper{}, nil)
		router := newIntegrationRouter(NewIntegrationHandler(svc), comp.ID)

		w := postJSON(t, router, "/api/v1/integrations/storefront", gin.H{"domain": "example.myshopify.com"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("verification failures map to status codes", func(t *testing.T) {
		tests := []struct {
			name       string
			connErr    error
			wantStatus int
			wantCode   string
		}{
			{"invalid credentials", storefront.ErrInvalidCredentials, http.StatusBadRequest, dto.ErrCodeValidation},
			{"shop not found", storefront.ErrShopNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
			{"platform unreachable", storefront.ErrUnavailable, http.StatusBadGateway, dto.ErrCodeInternal},
			{"request failed", storefront.ErrRequestFailed, http.StatusBadGateway, dto.ErrCodeInternal},
			{"remote errors", storefront.ErrRemoteErrors, http.StatusBadGateway, dto.ErrCodeInternal},
			{"unexpected error", errors.New("boom"), http.StatusInternalServerError, dto.ErrCodeInternal},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				comp := newHandlerCompany(t)
				repo := newMemCompanyRepo(comp)
				gw := &stubGateway{connErr: tt.connErr}
				svc := integrationapp.NewService(repo, &stubGatewayFactory{gateway: gw}, &stubShipper{}, nil)
				router := newIntegrationRouter(NewIntegrationHandler(svc), comp.ID)

				w := postJSON(t, router, "/api/v1/integrations/storefront", storefrontBody)

				assert.Equal(t, tt.wantStatus, w.Code)
				resp := decodeResponse(t, w)
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.wantCode, resp.Error.Code)

				stored, err := repo.FindByID(context.Background(), comp.ID)
				require.NoError(t, err)
				assert.False(t, stored.StorefrontConnected())
			})
		}
	})

	t.Run("unknown company maps to not found", func(t *testing.T) {
		svc := integrationapp.NewService(newMemCompanyRepo(), &stubGatewayFactory{gateway: &stubGateway{}}, &stubShipper{}, nil)
		router := newIntegrationRouter(NewIntegrationHandler(svc), uuid.New())

		w := postJSON(t, router, "/api/v1/integrations/storefront", storefrontBody)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestIntegrationHandlerConnectShipping(t *testing.T) {
	shippingBody := gin.H{
		"email":    "ops@acme.example",
		"password": "secret",
	}

	t.Run("connects and reports success", func(t *testing.T) {
		comp := newHandlerCompany(t)
		repo := newMemCompanyRepo(comp)
		svc := integrationapp.NewService(repo, &stubGatewayFactory{gateway: &stubGateway{}}, &stubShipper{token: "tok-1"}, nil)
		router := newIntegrationRouter(NewIntegrationHandler(svc), comp.ID)

		w := postJSON(t, router, "/api/v1/integrations/shipping", shippingBody)

		assert.Equal(t, http.StatusOK, w.Code)
		stored, err := repo.FindByID(context.Background(), comp.ID)
		require.NoError(t, err)
		assert.True(t, stored.ShippingConnected())
	})

	t.Run("auth failure maps to bad request", func(t *testing.T) {
		comp := newHandlerCompany(t)
		svc := integrationapp.NewService(newMemCompanyRepo(comp), &stubGatewayFactory{gateway: &stubGateway{}}, &stubShipper{err: shipping.ErrAuthFailed}, nil)
		router := newIntegrationRouter(NewIntegrationHandler(svc), comp.ID)

		w := postJSON(t, router, "/api/v1/integrations/shipping", shippingBody)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("provider outage maps to bad gateway", func(t *testing.T) {
		comp := newHandlerCompany(t)
		svc := integrationapp.NewService(newMemCompanyRepo(comp), &stubGatewayFactory{gateway: &stubGateway{}}, &stubShipper{err: shipping.ErrUnavailable}, nil)
		router := newIntegrationRouter(NewIntegrationHandler(svc), comp.ID)

		w := postJSON(t, router, "/api/v1/integrations/shipping", shippingBody)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestIntegrationHandlerStatus(t *testing.T) {
	comp := newHandlerCompany(t)
	require.NoError(t, comp.ConnectStorefront("example.myshopify.com", "shpat_test"))
	svc := integrationapp.NewService(newMemCompanyRepo(comp), &stubGatewayFactory{gateway: &stubGateway{}}, &stubShipper{}, nil)
	router := newIntegrationRouter(NewIntegrationHandler(svc), comp.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/integrations/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["storefront_connected"])
	assert.Equal(t, "example.myshopify.com", data["storefront_domain"])
	assert.Equal(t, false, data["shipping_connected"])
}
