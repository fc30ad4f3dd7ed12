package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopfront/shopfront/internal/core/account"
)

const (
	ContextAccountID = "account_id"
	ContextRole      = "role"
)

type AuthMiddleware struct {
	accounts *account.Service
}

func NewAuthMiddleware(accounts *account.Service) *AuthMiddleware {
	return &AuthMiddleware{accounts: accounts}
}

// Authenticate verifies the bearer token and sets the account identity in
// the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := m.accounts.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextAccountID, claims.AccountID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole gates a route group to the given portal roles.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "no role found"})
			return
		}

		for _, want := range roles {
			if role == want {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
	}
}

// Helper functions to get context values
func GetAccountID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get(ContextAccountID)
	if !exists {
		return uuid.Nil, false
	}

	if id, ok := val.(uuid.UUID); ok {
		return id, true
	}
	return uuid.Nil, false
}

func GetRole(c *gin.Context) (string, bool) {
	val, exists := c.Get(ContextRole)
	if !exists {
		return "", false
	}

	if role, ok := val.(string); ok {
		return role, true
	}
	return "", false
}
