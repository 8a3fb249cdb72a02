package integration

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/backoffice/backend/internal/domain/company"
	"github.com/backoffice/backend/internal/domain/shipping"
	"github.com/backoffice/backend/internal/domain/storefront"
)

// Status reports which external platforms a company is connected to.
type Status struct {
	StorefrontConnected bool   `json:"storefront_connected"`
	StorefrontDomain    string `json:"storefront_domain,omitempty"`
	ShippingConnected   bool   `json:"shipping_connected"`
	ShippingEmail       string `json:"shipping_email,omitempty"`
}

// Service manages platform credentials for a company. Credentials are
// verified against the platform before they are stored.
type Service struct {
	companies company.Repository
	gateways  storefront.GatewayFactory
	shipper   shipping.Provider
	logger    *zap.Logger
}

// NewService creates an integration service.
func NewService(
	companies company.Repository,
	gateways storefront.GatewayFactory,
	shipper shipping.Provider,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		companies: companies,
		gateways:  gateways,
		shipper:   shipper,
		logger:    logger,
	}
}

// ConnectStorefront verifies the given credentials against the platform
// and stores them on the company. Invalid credentials are never stored.
func (s *Service) ConnectStorefront(ctx context.Context, companyID uuid.UUID, domain, accessToken string) error {
	comp, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return err
	}

	gw, err := s.gateways.New(storefront.Credentials{Domain: domain, AccessToken: accessToken})
	if err != nil {
		return err
	}
	if err := gw.TestConnection(ctx); err != nil {
		return fmt.Errorf("verifying storefront credentials: %w", err)
	}

	if err := comp.ConnectStorefront(domain, accessToken); err != nil {
		return err
	}
	if err := s.companies.Save(ctx, comp); err != nil {
		return err
	}
	s.logger.Info("storefront connected",
		zap.String("company_id", companyID.String()),
		zap.String("domain", domain))
	return nil
}

// ConnectShipping authenticates against the shipping provider and stores
// the returned API token on the company.
func (s *Service) ConnectShipping(ctx context.Context, companyID uuid.UUID, email, password string) error {
	comp, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return err
	}

	token, err := s.shipper.Authenticate(ctx, email, password)
	if err != nil {
		return fmt.Errorf("authenticating with shipping provider: %w", err)
	}

	if err := comp.ConnectShipping(email, token); err != nil {
		return err
	}
	if err := s.companies.Save(ctx, comp); err != nil {
		return err
	}
	s.logger.Info("shipping provider connected",
		zap.String("company_id", companyID.String()))
	return nil
}

// Status returns the connection state of both integrations.
func (s *Service) Status(ctx context.Context, companyID uuid.UUID) (*Status, error) {
	comp, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	st := &Status{
		StorefrontConnected: comp.StorefrontConnected(),
		ShippingConnected:   comp.ShippingConnected(),
	}
	if st.StorefrontConnected {
		st.StorefrontDomain = comp.CatalogDomain
	}
	if st.ShippingConnected {
		st.ShippingEmail = comp.ShippingEmail
	}
	return st, nil
}
