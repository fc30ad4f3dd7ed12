package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopfront/shopfront/internal/core/catalog"
	"github.com/shopfront/shopfront/internal/core/product"
)

// ShopHandler serves the public customer-facing catalog: only active
// products are browsable.
type ShopHandler struct {
	products   *product.Service
	categories *catalog.Service
}

func NewShopHandler(products *product.Service, categories *catalog.Service) *ShopHandler {
	return &ShopHandler{products: products, categories: categories}
}

func (h *ShopHandler) ListProducts(c *gin.Context) {
	req := parseListRequest(c)
	req.Status = product.StatusActive

	resp, err := h.products.List(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ShopHandler) GetProduct(c *gin.Context) {
	idStr := c.Param("id")

	var (
		p   *product.Product
		err error
	)
	if id, parseErr := uuid.Parse(idStr); parseErr == nil {
		p, err = h.products.Get(c.Request.Context(), id)
	} else {
		// Shop URLs also accept the SKU.
		p, err = h.products.GetBySKU(c.Request.Context(), idStr)
	}
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if p.Status != product.StatusActive {
		c.JSON(http.StatusNotFound, gin.H{"error": product.ErrNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ShopHandler) ListCategories(c *gin.Context) {
	resp, err := h.categories.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
