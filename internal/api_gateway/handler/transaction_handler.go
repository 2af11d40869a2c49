package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/purse-ledger/internal/api_gateway/service"
	"github.com/purse-ledger/internal/domain/ledger"
)

// TransactionHandler handles HTTP requests for transaction operations
type TransactionHandler struct {
	ledgerService service.LedgerService
	logger        *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, ledgerService service.LedgerService) *TransactionHandler {
	return &TransactionHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// Create appends a transaction. Any amount is accepted; the sign decides income or expense.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tx, err := h.ledgerService.RecordTransaction(c.Request.Context(), ledger.NewTransaction{
		Amount:      *req.Amount,
		Description: req.Description,
		Category:    req.Category,
		IsSavings:   req.IsSavings,
		Date:        req.Date,
	})
	if err != nil {
		RespondServiceError(c, h.logger, "record_transaction", err)
		return
	}

	RespondCreated(c, mapTransactionToResponse(tx))
}

// List returns every transaction in insertion order
func (h *TransactionHandler) List(c *gin.Context) {
	txs, err := h.ledgerService.ListTransactions(c.Request.Context())
	if err != nil {
		RespondServiceError(c, h.logger, "list_transactions", err)
		return
	}

	RespondOK(c, mapTransactionsToResponse(txs))
}

// Update applies a partial update, returns 404 if the transaction does not exist
func (h *TransactionHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "transaction_id", id, "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	updated, err := h.ledgerService.UpdateTransaction(c.Request.Context(), id, ledger.Update{
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
		Category:    req.Category,
		IsSavings:   req.IsSavings,
	})
	if err != nil {
		RespondServiceError(c, h.logger, "update_transaction", err)
		return
	}
	if updated == nil {
		RespondNotFound(c, "Transaction not found")
		return
	}

	RespondOK(c, mapTransactionToResponse(*updated))
}

// Delete removes a transaction, returns 404 if it does not exist
func (h *TransactionHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	deleted, err := h.ledgerService.DeleteTransaction(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, h.logger, "delete_transaction", err)
		return
	}
	if !deleted {
		RespondNotFound(c, "Transaction not found")
		return
	}

	RespondNoContent(c)
}
