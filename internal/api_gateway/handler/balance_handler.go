package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/purse-ledger/internal/api_gateway/service"
)

// BalanceHandler handles HTTP requests for the ledger balance
type BalanceHandler struct {
	ledgerService service.LedgerService
	reportService service.ReportService
	logger        *slog.Logger
}

func NewBalanceHandler(logger *slog.Logger, ledgerService service.LedgerService, reportService service.ReportService) *BalanceHandler {
	return &BalanceHandler{
		ledgerService: ledgerService,
		reportService: reportService,
		logger:        logger,
	}
}

func (h *BalanceHandler) Get(c *gin.Context) {
	balance, err := h.reportService.Balance(c.Request.Context())
	if err != nil {
		RespondServiceError(c, h.logger, "balance", err)
		return
	}

	RespondOK(c, BalanceResponse{Balance: balance})
}

// History returns the running balance after each transaction, oldest first
func (h *BalanceHandler) History(c *gin.Context) {
	points, err := h.reportService.BalanceHistory(c.Request.Context())
	if err != nil {
		RespondServiceError(c, h.logger, "balance_history", err)
		return
	}

	RespondOK(c, points)
}

// Set clears every transaction and records the amount as the opening balance
func (h *BalanceHandler) Set(c *gin.Context) {
	var req SetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tx, err := h.ledgerService.SetBalance(c.Request.Context(), *req.Amount)
	if err != nil {
		RespondServiceError(c, h.logger, "set_balance", err)
		return
	}

	RespondOK(c, mapTransactionToResponse(tx))
}

// Adjust moves the balance by a signed amount
func (h *BalanceHandler) Adjust(c *gin.Context) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tx, err := h.ledgerService.AdjustBalance(c.Request.Context(), *req.Amount, req.Description)
	if err != nil {
		RespondServiceError(c, h.logger, "adjust_balance", err)
		return
	}

	RespondCreated(c, mapTransactionToResponse(tx))
}
