package company

import (
	"strings"
	"time"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Company is the tenant root. It owns the integration credentials for the
// storefront and shipping platforms; all customer and order data hangs off
// exactly one company. Credentials are opaque strings mutated only through
// the integration endpoints, never by sync logic.
type Company struct {
	shared.BaseAggregateRoot
	Name        string
	OwnerUserID uuid.UUID

	// Storefront integration
	CatalogDomain      string
	CatalogAccessToken string

	// Shipping provider integration
	ShippingEmail string
	ShippingToken string
}

// NewCompany creates a company owned by the given user
func NewCompany(name string, ownerUserID uuid.UUID) (*Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name is required")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot exceed 200 characters")
	}
	if ownerUserID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Company owner is required")
	}
	return &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		OwnerUserID:       ownerUserID,
	}, nil
}

// ConnectStorefront stores validated storefront credentials.
// Callers must have verified the credentials against the platform first.
func (c *Company) ConnectStorefront(domain, accessToken string) error {
	domain = strings.TrimSpace(domain)
	accessToken = strings.TrimSpace(accessToken)
	if domain == "" || accessToken == "" {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Storefront domain and access token are required")
	}
	c.CatalogDomain = domain
	c.CatalogAccessToken = accessToken
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// ConnectShipping stores the shipping provider account and its API token.
func (c *Company) ConnectShipping(email, token string) error {
	email = strings.TrimSpace(email)
	if email == "" || token == "" {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Shipping provider email and token are required")
	}
	c.ShippingEmail = email
	c.ShippingToken = token
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// StorefrontConnected reports whether both storefront credentials are present.
func (c *Company) StorefrontConnected() bool {
	return c.CatalogDomain != "" && c.CatalogAccessToken != ""
}

// ShippingConnected reports whether a shipping provider token is stored.
func (c *Company) ShippingConnected() bool {
	return c.ShippingToken != ""
}

// IsOwnedBy reports whether the given user owns this company.
func (c *Company) IsOwnedBy(userID uuid.UUID) bool {
	return c.OwnerUserID == userID
}
