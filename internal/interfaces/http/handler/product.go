package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/application/products"
	syncapp "github.com/backoffice/backend/internal/application/sync"
	"github.com/backoffice/backend/internal/domain/catalog"
	"github.com/backoffice/backend/internal/interfaces/http/dto"
	"github.com/backoffice/backend/internal/interfaces/http/middleware"
)

// ProductHandler handles catalog endpoints, including storefront sync.
// Products are scoped to the authenticated user, not the company.
type ProductHandler struct {
	BaseHandler
	productService *products.Service
	syncService    *syncapp.ProductSyncService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *products.Service, syncService *syncapp.ProductSyncService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		syncService:    syncService,
	}
}

// List returns the authenticated user's products.
func (h *ProductHandler) List(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, err := h.productService.List(c.Request.Context(), ownerID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewProductListResponse(items))
}

// Get returns a single product with its variants.
func (h *ProductHandler) Get(c *gin.Context) {
	ownerID, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}
	p, err := h.productService.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewProductResponse(p))
}

// Create creates a local product with its variant set.
func (h *ProductHandler) Create(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	p, err := h.productService.Create(c.Request.Context(), ownerID, products.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Vendor:      req.Vendor,
		ProductType: req.ProductType,
		Status:      catalog.ProductStatus(req.Status),
		Tags:        req.Tags,
		Variants:    toVariantInputs(req.Variants),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewProductResponse(p))
}

// Update applies a partial update; a variants list replaces the whole set.
func (h *ProductHandler) Update(c *gin.Context) {
	ownerID, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	input := products.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Vendor:      req.Vendor,
		ProductType: req.ProductType,
		Tags:        req.Tags,
		Variants:    toVariantInputs(req.Variants),
	}
	if req.Status != nil {
		st := catalog.ProductStatus(*req.Status)
		input.Status = &st
	}

	p, err := h.productService.Update(c.Request.Context(), ownerID, id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewProductResponse(p))
}

// Delete removes a product locally. The storefront listing, if any, is
// left untouched.
func (h *ProductHandler) Delete(c *gin.Context) {
	ownerID, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), ownerID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Sync pulls the remote product collection into local storage.
func (h *ProductHandler) Sync(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	result, err := h.syncService.Pull(c.Request.Context(), tenantID, ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Push sends one local product to the storefront platform.
func (h *ProductHandler) Push(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}
	ownerID, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}
	p, err := h.syncService.Push(c.Request.Context(), tenantID, ownerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewProductResponse(p))
}

// ownerAndID extracts the authenticated user and the record id from the
// path, responding on failure.
func (h *BaseHandler) ownerAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ID format")
		return uuid.Nil, uuid.Nil, false
	}
	return ownerID, id, true
}

func toVariantInputs(reqs []dto.VariantRequest) []products.VariantInput {
	if reqs == nil {
		return nil
	}
	out := make([]products.VariantInput, len(reqs))
	for i, r := range reqs {
		out[i] = products.VariantInput{
			Title:             r.Title,
			SKU:               r.SKU,
			Price:             r.Price,
			InventoryQuantity: r.InventoryQuantity,
		}
	}
	return out
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.POST("", h.Create)
		products.POST("/sync", h.Sync)
		products.GET("/:id", h.Get)
		products.PUT("/:id", h.Update)
		products.DELETE("/:id", h.Delete)
		products.POST("/:id/push", h.Push)
	}
}
