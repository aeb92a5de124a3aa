package middleware

import (
	"fmt"
	"net/http"

	domainerr "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// ErrorHandler turns a panic in any handler into a 500. A panic inside a
// unit of work has already rolled its transaction back by the time it lands here.
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			fields := map[string]any{
				"panic":      fmt.Sprint(rec),
				"method":     c.Request.Method,
				"route":      c.FullPath(),
				"request_id": coreport.RequestIDFromContext(c.Request.Context()),
			}
			if p, ok := PrincipalFrom(c); ok {
				fields["user_id"] = p.UserID
			}
			logger.Error("Recovered from handler panic", fields)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Code:    domainerr.CodeInternalServer,
				Message: "Internal server error",
			})
		}()

		c.Next()
	}
}
