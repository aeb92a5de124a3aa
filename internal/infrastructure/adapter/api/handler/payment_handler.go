package handler

import (
	"errors"
	"io"
	"net/http"

	domainerr "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// Gateway callback headers
const (
	SignatureHeader = "X-Razorpay-Signature"
	EventIDHeader   = "X-Razorpay-Event-Id"
)

const maxWebhookBody = 1 << 20

// PaymentHandler handles payment orders, confirmations and gateway callbacks
type PaymentHandler struct {
	payments usecase.PaymentUseCase
	logger   coreport.Logger
}

// NewPaymentHandler creates a new payment handler instance
func NewPaymentHandler(payments usecase.PaymentUseCase, logger coreport.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, logger: logger}
}

// Packages handles GET /payments/packages
func (h *PaymentHandler) Packages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"packages": dto.ToPackageResponses(h.payments.Packages())})
}

// CreateOrder handles POST /payments/create-order
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	result, err := h.payments.CreateOrder(c.Request.Context(), p.UserID, usecase.CreateOrderCommand{
		Kind:       req.Kind,
		DeliveryID: req.DeliveryID,
		PackageID:  req.PackageID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToOrderResponse(result))
}

// Verify handles POST /payments/verify
func (h *PaymentHandler) Verify(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Missing required payment verification parameters")
		return
	}

	result, err := h.payments.ConfirmPayment(c.Request.Context(), p.UserID, usecase.ConfirmPaymentCommand{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(result))
}

// Webhook handles POST /webhooks/payment. The body is read raw because the
// signature covers the exact bytes sent.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	signature := c.GetHeader(SignatureHeader)
	if signature == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.CodeInvalidRequest,
			Message: "Missing signature",
		})
		return
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody+1))
	if err != nil {
		badRequest(c, "Unreadable body")
		return
	}
	if len(payload) > maxWebhookBody {
		h.logger.Warn("Rejected oversized webhook", map[string]any{
			"request_id": coreport.RequestIDFromContext(c.Request.Context()),
			"client_ip":  c.ClientIP(),
		})
		c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
			Code:    domainerr.CodeInvalidRequest,
			Message: "Webhook body too large",
		})
		return
	}

	result, err := h.payments.HandleWebhook(c.Request.Context(), payload, signature, c.GetHeader(EventIDHeader))
	if err != nil {
		if errors.Is(err, domainerr.ErrInvalidSignature) {
			h.logger.Warn("Rejected webhook with invalid signature", map[string]any{
				"request_id": coreport.RequestIDFromContext(c.Request.Context()),
				"client_ip":  c.ClientIP(),
			})
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.CodeInvalidSignature,
				Message: "Invalid signature",
			})
			return
		}
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.WebhookResponse{
		Received:  true,
		Event:     result.Event,
		Handled:   result.Handled,
		Duplicate: result.Duplicate,
	})
}
