package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// StatusCode maps a domain error to its HTTP status
func StatusCode(err error) int {
	switch {
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainerr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domainerr.ErrAlreadyAssigned),
		errors.Is(err, domainerr.ErrDuplicate),
		errors.Is(err, domainerr.ErrConstraintViolation):
		return http.StatusConflict
	case errors.Is(err, domainerr.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, domainerr.ErrPreconditionFailed),
		errors.Is(err, domainerr.ErrInvalidCode),
		errors.Is(err, domainerr.ErrPaymentNotComplete),
		errors.Is(err, domainerr.ErrInvalidSignature),
		errors.Is(err, domainerr.ErrInvalidRequest),
		errors.Is(err, domainerr.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domainerr.ErrGateway):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body; server errors hide their cause from the client
func respondError(c *gin.Context, logger coreport.Logger, err error) {
	status := StatusCode(err)
	message := err.Error()
	switch {
	case errors.Is(err, domainerr.ErrDuplicate):
		message = domainerr.ErrDuplicate.Error()
	case errors.Is(err, domainerr.ErrConstraintViolation):
		message = domainerr.ErrConstraintViolation.Error()
	}
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", map[string]any{
			"path":       c.FullPath(),
			"error":      err.Error(),
			"request_id": coreport.RequestIDFromContext(c.Request.Context()),
		})
		message = "Internal server error"
		if status == http.StatusBadGateway {
			message = "Payment gateway unavailable, please retry"
		}
	}
	_ = c.Error(err)
	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}

// badRequest writes a 400 for malformed input
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    domainerr.CodeInvalidRequest,
		Message: message,
	})
}

// parseIDParam reads a positive numeric path parameter, writing a 400 when it is malformed
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "Invalid "+name+" format")
		return 0, false
	}
	return id, true
}

// queryInt reads an optional non-negative integer query parameter
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		badRequest(c, "Invalid "+name+" query parameter")
		return 0, false
	}
	return v, true
}

// principal returns the authenticated caller, writing a 401 when there is none
func principal(c *gin.Context) (entity.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok || p.UserID == 0 {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Code:    domainerr.CodeUnauthorized,
			Message: "Authentication required",
		})
		return entity.Principal{}, false
	}
	return p, true
}
