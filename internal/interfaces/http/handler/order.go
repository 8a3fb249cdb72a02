package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/backoffice/backend/internal/application/orderimport"
	"github.com/backoffice/backend/internal/application/orders"
	"github.com/backoffice/backend/internal/interfaces/http/dto"
	"github.com/backoffice/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order endpoints, including the storefront import.
type OrderHandler struct {
	BaseHandler
	orderService  *orders.Service
	importService *orderimport.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orders.Service, importService *orderimport.Service) *OrderHandler {
	return &OrderHandler{
		orderService:  orderService,
		importService: importService,
	}
}

// List returns a page of the company's orders.
func (h *OrderHandler) List(c *gin.Context) {
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

	items, total, err := h.orderService.List(c.Request.Context(), tenantID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.NewOrderListResponse(items), total, req.Page, req.PageSize)
}

// Get returns a single order with its line items.
func (h *OrderHandler) Get(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c)
	if !ok {
		return
	}
	o, err := h.orderService.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewOrderResponse(o))
}

// Update applies a partial update. External orders only accept status,
// tags and internal notes; anything else rejects the request as a whole.
func (h *OrderHandler) Update(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c)
	if !ok {
		return
	}
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	o, err := h.orderService.Update(c.Request.Context(), tenantID, id, req.ToChanges())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewOrderResponse(o))
}

// Delete removes a manual order. Imported orders are protected.
func (h *OrderHandler) Delete(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c)
	if !ok {
		return
	}
	if err := h.orderService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Sync imports the remote order collection as a single batch.
func (h *OrderHandler) Sync(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}
	result, err := h.importService.Import(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		orders.POST("/sync", h.Sync)
		orders.GET("/:id", h.Get)
		orders.PUT("/:id", h.Update)
		orders.DELETE("/:id", h.Delete)
	}
}
