package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopfront/shopfront/internal/core/account"
)

// AdminHandler serves the admin-portal account management endpoints.
type AdminHandler struct {
	accounts *account.Service
}

func NewAdminHandler(accounts *account.Service) *AdminHandler {
	return &AdminHandler{accounts: accounts}
}

func (h *AdminHandler) ListAccounts(c *gin.Context) {
	resp, err := h.accounts.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateAccount creates an account with an explicit role, typically a vendor
// sign-in for a new seller.
func (h *AdminHandler) CreateAccount(c *gin.Context) {
	var req account.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.accounts.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, account.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, account.ErrInvalidRole) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, resp)
}
