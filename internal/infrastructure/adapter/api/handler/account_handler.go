package handler

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles point account and borrow acceptance requests
type AccountHandler struct {
	ledger usecase.LedgerUseCase
	logger coreport.Logger
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(ledger usecase.LedgerUseCase, logger coreport.Logger) *AccountHandler {
	return &AccountHandler{ledger: ledger, logger: logger}
}

// Open handles POST /accounts; the role comes from the caller's token
func (h *AccountHandler) Open(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req dto.OpenAccountRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request format: "+err.Error())
			return
		}
	}

	account, err := h.ledger.OpenAccount(c.Request.Context(), usecase.OpenAccountCommand{
		UserID: p.UserID,
		Name:   req.Name,
		Role:   p.Role,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// Me handles GET /accounts/me
func (h *AccountHandler) Me(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	account, err := h.ledger.GetAccount(c.Request.Context(), p.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// Ledger handles GET /accounts/me/ledger
func (h *AccountHandler) Ledger(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}
	offset, ok := queryInt(c, "offset")
	if !ok {
		return
	}

	entries, err := h.ledger.ListEntries(c.Request.Context(), p.UserID, limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := dto.LedgerPageResponse{
		Entries: make([]dto.LedgerEntryResponse, 0, len(entries)),
		Limit:   limit,
		Offset:  offset,
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, dto.ToLedgerEntryResponse(e))
	}
	c.JSON(http.StatusOK, resp)
}

// Reconcile handles GET /accounts/me/reconcile
func (h *AccountHandler) Reconcile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	r, err := h.ledger.Reconcile(c.Request.Context(), p.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ReconcileResponse{
		UserID:        r.AccountID,
		CachedBalance: r.CachedBalance,
		LedgerBalance: r.LedgerBalance,
		EntryCount:    r.EntryCount,
		Balanced:      r.Balanced(),
	})
}

// AcceptBorrow handles POST /borrow-requests/:id/accept
func (h *AccountHandler) AcceptBorrow(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.ledger.AcceptBorrow(c.Request.Context(), p.UserID, requestID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAcceptBorrowResponse(result))
}
