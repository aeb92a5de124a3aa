package middleware

import (
	"net/http"
	"strings"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/auth"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// Auth requires a valid bearer token and stores the caller's principal
func Auth(tokens *auth.TokenService, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortUnauthorized(c, "Authorization header required")
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			logger.Debug("Rejected bearer token", map[string]any{
				"error":      err.Error(),
				"request_id": coreport.RequestIDFromContext(c.Request.Context()),
			})
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(principalKey, claims.Principal())
		c.Next()
	}
}

// RequireRole rejects callers whose role is not listed
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			abortUnauthorized(c, "Authentication required")
			return
		}
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
			Code:    domainerr.CodeForbidden,
			Message: "Role " + string(p.Role) + " may not perform this action",
		})
	}
}

// PrincipalFrom returns the authenticated caller stored by Auth
func PrincipalFrom(c *gin.Context) (entity.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return entity.Principal{}, false
	}
	p, ok := v.(entity.Principal)
	return p, ok
}

// SetPrincipal stores a principal; used by tests that bypass token parsing
func SetPrincipal(c *gin.Context, p entity.Principal) {
	c.Set(principalKey, p)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Code:    domainerr.CodeUnauthorized,
		Message: message,
	})
}
