package testutil

import (
	"strings"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/laundry-pos-api/middleware"
)

// MockValidatedClaims creates a mock ValidatedClaims for a staff member
func MockValidatedClaims(subject string, scopes []string) *validator.ValidatedClaims {
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Issuer:  "https://test.auth0.com/",
			Subject: subject,
		},
		CustomClaims: &middleware.CustomClaims{
			Scope: strings.Join(scopes, " "),
		},
	}
}

// MockAuthMiddleware stands in for EnsureValidToken. It sets up the context
// exactly as the real middleware does for a token with the given scopes.
func MockAuthMiddleware(staffID string, scopes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetStaff(c, staffID, MockValidatedClaims(staffID, scopes))
		c.Next()
	}
}

// AllScopes is every permission a manager account holds
var AllScopes = []string{middleware.ScopeManageCatalog, middleware.ScopeManageOrders}
