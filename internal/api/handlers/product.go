package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopfront/shopfront/internal/api/middleware"
	"github.com/shopfront/shopfront/internal/core/account"
	"github.com/shopfront/shopfront/internal/core/listing"
	"github.com/shopfront/shopfront/internal/core/product"
	"github.com/shopfront/shopfront/internal/core/validation"
)

// ProductHandler serves the vendor and admin product management endpoints.
// Vendor requests are scoped to the caller's own products; admin requests
// see every vendor.
type ProductHandler struct {
	products *product.Service
}

func NewProductHandler(products *product.Service) *ProductHandler {
	return &ProductHandler{products: products}
}

// parseListRequest maps the listing UI query parameters onto a list request.
func parseListRequest(c *gin.Context) *product.ListRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	return &product.ListRequest{
		Query:    c.Query("q"),
		Category: c.DefaultQuery("category", listing.FilterAll),
		Status:   c.DefaultQuery("status", listing.FilterAll),
		SortKey:  c.Query("sort"),
		SortDir:  c.DefaultQuery("dir", "asc"),
		Page:     page,
		PageSize: size,
	}
}

// scopedVendorID returns the vendor scope for the caller: the caller's own
// account for vendors, unscoped for admins.
func scopedVendorID(c *gin.Context) (uuid.UUID, bool) {
	role, _ := middleware.GetRole(c)
	if role == account.RoleAdmin {
		return uuid.Nil, true
	}
	return middleware.GetAccountID(c)
}

func (h *ProductHandler) Create(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req product.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.products.Create(c.Request.Context(), accountID, &req)
	if err != nil {
		h.writeProductError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) List(c *gin.Context) {
	vendorID, ok := scopedVendorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	req := parseListRequest(c)
	req.VendorID = vendorID

	resp, err := h.products.List(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	p, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		h.writeProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	vendorID, ok := scopedVendorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req product.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.products.Update(c.Request.Context(), id, vendorID, &req)
	if err != nil {
		h.writeProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	vendorID, ok := scopedVendorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	if err := h.products.Delete(c.Request.Context(), id, vendorID); err != nil {
		h.writeProductError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// writeProductError maps service errors onto HTTP responses. Field-rule and
// attribute-schema failures both come back as 400 with per-field details.
func (h *ProductHandler) writeProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, product.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, product.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, product.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		if ve := product.AsValidationError(err); ve != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": ve.Fields})
			return
		}
		if validation.IsSchemaError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": validation.AsSchemaErrors(err)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
