package handler

import (
	"errors"
	"net/http"

	integrationapp "github.com/backoffice/backend/internal/application/integration"
	"github.com/backoffice/backend/internal/domain/shipping"
	"github.com/backoffice/backend/internal/domain/storefront"
	"github.com/backoffice/backend/internal/interfaces/http/dto"
	"github.com/backoffice/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// IntegrationHandler handles platform connection endpoints
type IntegrationHandler struct {
	BaseHandler
	integrationService *integrationapp.Service
}

// NewIntegrationHandler creates a new IntegrationHandler
func NewIntegrationHandler(integrationService *integrationapp.Service) *IntegrationHandler {
	return &IntegrationHandler{integrationService: integrationService}
}

// ConnectStorefrontRequest carries storefront credentials to verify and store
type ConnectStorefrontRequest struct {
	Domain      string `json:"domain" binding:"required,max=255"`
	AccessToken string `json:"access_token" binding:"required,max=255"`
}

// ConnectShippingRequest carries shipping provider login credentials
type ConnectShippingRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required"`
}

// ConnectStorefront verifies and stores storefront credentials.
func (h *IntegrationHandler) ConnectStorefront(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}
	var req ConnectStorefrontRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.integrationService.ConnectStorefront(c.Request.Context(), tenantID, req.Domain, req.AccessToken); err != nil {
		h.handleConnectionError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Storefront connected"})
}

// ConnectShipping authenticates and stores the shipping provider token.
func (h *IntegrationHandler) ConnectShipping(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}
	var req ConnectShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.integrationService.ConnectShipping(c.Request.Context(), tenantID, req.Email, req.Password); err != nil {
		h.handleConnectionError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Shipping provider connected"})
}

// Status returns the connection state of both integrations.
func (h *IntegrationHandler) Status(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}
	status, err := h.integrationService.Status(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, status)
}

// handleConnectionError maps platform verification failures to HTTP
// responses; anything else falls through to the generic error handler.
func (h *IntegrationHandler) handleConnectionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storefront.ErrInvalidCredentials), errors.Is(err, shipping.ErrAuthFailed):
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
	case errors.Is(err, storefront.ErrShopNotFound):
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, err.Error())
	case errors.Is(err, storefront.ErrUnavailable), errors.Is(err, shipping.ErrUnavailable):
		h.Error(c, http.StatusBadGateway, dto.ErrCodeInternal, err.Error())
	case errors.Is(err, storefront.ErrRequestFailed), errors.Is(err, storefront.ErrRemoteErrors):
		h.Error(c, http.StatusBadGateway, dto.ErrCodeInternal, err.Error())
	default:
		h.HandleError(c, err)
	}
}

// RegisterRoutes registers all integration routes
func (h *IntegrationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	integrations := rg.Group("/integrations")
	{
		integrations.GET("/status", h.Status)
		integrations.POST("/storefront", h.ConnectStorefront)
		integrations.POST("/shipping", h.ConnectShipping)
	}
}
