package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/backoffice/backend/internal/application/companies"
	"github.com/backoffice/backend/internal/domain/company"
	"github.com/backoffice/backend/internal/interfaces/http/middleware"
)

// CompanyHandler handles company bootstrap endpoints. The company is the
// tenant; its id is carried in the JWT for every scoped endpoint.
type CompanyHandler struct {
	BaseHandler
	companyService *companies.Service
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService *companies.Service) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// CreateCompanyRequest represents a company creation request
type CreateCompanyRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

// CompanyResponse represents a company in API responses. Credentials are
// never echoed back; only the connected flags are.
type CompanyResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	OwnerUserID         string    `json:"owner_user_id"`
	StorefrontConnected bool      `json:"storefront_connected"`
	StorefrontDomain    string    `json:"storefront_domain,omitempty"`
	ShippingConnected   bool      `json:"shipping_connected"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func newCompanyResponse(c *company.Company) CompanyResponse {
	return CompanyResponse{
		ID:                  c.ID.String(),
		Name:                c.Name,
		OwnerUserID:         c.OwnerUserID.String(),
		StorefrontConnected: c.StorefrontConnected(),
		StorefrontDomain:    c.CatalogDomain,
		ShippingConnected:   c.ShippingConnected(),
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

// Create creates a company owned by the authenticated user.
func (h *CompanyHandler) Create(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	comp, err := h.companyService.Create(c.Request.Context(), ownerID, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, newCompanyResponse(comp))
}

// Mine returns the authenticated user's company.
func (h *CompanyHandler) Mine(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	comp, err := h.companyService.GetByOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newCompanyResponse(comp))
}

// RegisterRoutes registers all company routes
func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	companies := rg.Group("/companies")
	{
		companies.POST("", h.Create)
		companies.GET("/mine", h.Mine)
	}
}
