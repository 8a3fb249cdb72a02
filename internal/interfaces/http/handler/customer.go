package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/application/customers"
	syncapp "github.com/backoffice/backend/internal/application/sync"
	"github.com/backoffice/backend/internal/interfaces/http/dto"
	"github.com/backoffice/backend/internal/interfaces/http/middleware"
)

// CustomerHandler handles customer endpoints, including storefront sync.
type CustomerHandler struct {
	BaseHandler
	customerService *customers.Service
	syncService     *syncapp.CustomerSyncService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *customers.Service, syncService *syncapp.CustomerSyncService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		syncService:     syncService,
	}
}

// List returns a page of the company's customers.
func (h *CustomerHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.customerService.List(c.Request.Context(), tenantID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.NewCustomerListResponse(items), total, req.Page, req.PageSize)
}

// Get returns a single customer by id.
func (h *CustomerHandler) Get(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c)
	if !ok {
		return
	}
	cust, err := h.customerService.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewCustomerResponse(cust))
}

// Create creates a locally-originated customer.
func (h *CustomerHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	cust, err := h.customerService.Create(c.Request.Context(), tenantID, customers.CreateInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		CustomerCode: req.CustomerCode,
		Note:         req.Note,
		Tags:         req.Tags,
		Addresses:    dto.AddressesToDomain(req.Addresses),
		CanDelete:    req.CanDelete,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewCustomerResponse(cust))
}

// Update applies a partial update to a customer.
func (h *CustomerHandler) Update(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c)
	if !ok {
		return
	}
	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	cust, err := h.customerService.Update(c.Request.Context(), tenantID, id, customers.UpdateInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		CustomerCode: req.CustomerCode,
		Note:         req.Note,
		Tags:         req.Tags,
		Addresses:    dto.AddressesToDomain(req.Addresses),
		CanDelete:    req.CanDelete,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewCustomerResponse(cust))
}

// Delete removes a customer locally and, when it mirrors a platform
// record, remotely as well.
func (h *CustomerHandler) Delete(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c)
	if !ok {
		return
	}
	if err := h.syncService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Sync pulls the remote customer collection into local storage.
func (h *CustomerHandler) Sync(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}
	result, err := h.syncService.Pull(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Push sends one local customer to the storefront platform.
func (h *CustomerHandler) Push(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c)
	if !ok {
		return
	}
	cust, err := h.syncService.Push(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewCustomerResponse(cust))
}

// tenantAndID extracts the tenant from the context and the record id from
// the path, responding with 400 on failure.
func (h *BaseHandler) tenantAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ID format")
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, id, true
}

// RegisterRoutes registers all customer routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.GET("", h.List)
		customers.POST("", h.Create)
		customers.POST("/sync", h.Sync)
		customers.GET("/:id", h.Get)
		customers.PUT("/:id", h.Update)
		customers.DELETE("/:id", h.Delete)
		customers.POST("/:id/push", h.Push)
	}
}
