package handler

import (
	"net/http"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// DeliveryHandler handles delivery coordination requests
type DeliveryHandler struct {
	deliveries usecase.DeliveryUseCase
	logger     coreport.Logger
}

// NewDeliveryHandler creates a new delivery handler instance
func NewDeliveryHandler(deliveries usecase.DeliveryUseCase, logger coreport.Logger) *DeliveryHandler {
	return &DeliveryHandler{deliveries: deliveries, logger: logger}
}

// Create handles POST /deliveries
func (h *DeliveryHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req dto.CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	result, err := h.deliveries.CreateDelivery(c.Request.Context(), p.UserID, usecase.CreateDeliveryCommand{
		BorrowRequestID: req.BorrowRequestID,
		PickupAddress:   req.PickupAddress,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateDeliveryResponse{
		JobID:            result.Job.ID,
		VerificationCode: result.VerificationCode,
		Delivery:         dto.ToDeliveryResponse(result.Job),
	})
}

// CreateReturn handles POST /deliveries/:id/return
func (h *DeliveryHandler) CreateReturn(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.deliveries.CreateReturn(c.Request.Context(), p.UserID, jobID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateDeliveryResponse{
		JobID:            result.Job.ID,
		VerificationCode: result.VerificationCode,
		Delivery:         dto.ToDeliveryResponse(result.Job),
	})
}

// ListAvailable handles GET /deliveries/available
func (h *DeliveryHandler) ListAvailable(c *gin.Context) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}

	jobs, err := h.deliveries.ListAvailable(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDeliveryList(jobs))
}

// ListAssigned handles GET /deliveries/assigned
func (h *DeliveryHandler) ListAssigned(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}

	jobs, err := h.deliveries.ListAssigned(c.Request.Context(), p.UserID, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDeliveryList(jobs))
}

// Get handles GET /deliveries/:id
func (h *DeliveryHandler) Get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	job, err := h.deliveries.GetDelivery(c.Request.Context(), jobID, p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDeliveryResponse(job))
}

// RevealCode handles GET /deliveries/:id/code
func (h *DeliveryHandler) RevealCode(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	code, err := h.deliveries.RevealCode(c.Request.Context(), jobID, p.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := dto.CodeResponse{JobID: jobID}
	if code != "" {
		resp.Code = &code
	}
	c.JSON(http.StatusOK, resp)
}

// Claim handles PATCH /deliveries/:id/assign
func (h *DeliveryHandler) Claim(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	job, err := h.deliveries.Claim(c.Request.Context(), jobID, p.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDeliveryResponse(job))
}

// VerifyCode handles POST /deliveries/:id/verify
func (h *DeliveryHandler) VerifyCode(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Verification code is required")
		return
	}

	result, err := h.deliveries.VerifyCode(c.Request.Context(), jobID, p.UserID, req.VerificationCode)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyCodeResponse{
		Verified:        true,
		AlreadyVerified: result.AlreadyVerified,
		VerifiedAt:      result.VerifiedAt,
		Delivery:        dto.ToDeliveryResponse(result.Job),
	})
}

// UpdateStatus handles PATCH /deliveries/:id/status
func (h *DeliveryHandler) UpdateStatus(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}
	status, err := entity.ParseDeliveryStatus(req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.deliveries.AdvanceStatus(c.Request.Context(), jobID, p.UserID, usecase.UpdateStatusCommand{
		Status:        status,
		TrackingNotes: req.TrackingNotes,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{
		Changed:  result.Changed,
		Delivery: dto.ToDeliveryResponse(result.Job),
	})
}
