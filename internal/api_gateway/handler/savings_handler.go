package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/purse-ledger/internal/api_gateway/service"
	"github.com/purse-ledger/internal/domain/settings"
)

// SavingsHandler handles HTTP requests for savings deposits and goals
type SavingsHandler struct {
	ledgerService   service.LedgerService
	settingsService service.SettingsService
	reportService   service.ReportService
	logger          *slog.Logger
}

func NewSavingsHandler(logger *slog.Logger, ledgerService service.LedgerService, settingsService service.SettingsService, reportService service.ReportService) *SavingsHandler {
	return &SavingsHandler{
		ledgerService:   ledgerService,
		settingsService: settingsService,
		reportService:   reportService,
		logger:          logger,
	}
}

// Overview returns savings statistics and the progress of every goal
func (h *SavingsHandler) Overview(c *gin.Context) {
	overview, err := h.reportService.SavingsOverview(c.Request.Context())
	if err != nil {
		RespondServiceError(c, h.logger, "savings_overview", err)
		return
	}

	RespondOK(c, mapSavingsOverviewToResponse(overview))
}

// Deposit records a positive savings transaction
func (h *SavingsHandler) Deposit(c *gin.Context) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tx, err := h.ledgerService.DepositSavings(c.Request.Context(), *req.Amount, req.Description)
	if err != nil {
		RespondServiceError(c, h.logger, "deposit_savings", err)
		return
	}

	RespondCreated(c, mapTransactionToResponse(tx))
}

// Transactions lists savings transactions newest first, optionally bounded by from/to
func (h *SavingsHandler) Transactions(c *gin.Context) {
	var params DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.logger.Error("Invalid query parameters", "error", err)
		RespondBadRequest(c, "Invalid query parameters")
		return
	}

	from, err := parseBound(params.From, false)
	if err != nil {
		RespondBadRequest(c, "from: "+err.Error())
		return
	}
	to, err := parseBound(params.To, true)
	if err != nil {
		RespondBadRequest(c, "to: "+err.Error())
		return
	}
	if from != nil && to != nil && to.Before(*from) {
		RespondBadRequest(c, "to must not be before from")
		return
	}

	txs, err := h.reportService.SavingsHistory(c.Request.Context(), from, to)
	if err != nil {
		RespondServiceError(c, h.logger, "savings_history", err)
		return
	}

	RespondOK(c, mapTransactionsToResponse(txs))
}

// SetGoal adds or replaces the goal named in the path
func (h *SavingsHandler) SetGoal(c *gin.Context) {
	name := c.Param("name")

	var req SetSavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "goal", name, "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	goal := settings.SavingsGoal{
		Name:     name,
		Target:   *req.Target,
		Priority: settings.Priority(req.Priority),
	}
	if req.Deadline != "" {
		deadline, err := time.Parse(dateLayout, req.Deadline)
		if err != nil {
			RespondBadRequest(c, "deadline must be YYYY-MM-DD")
			return
		}
		goal.Deadline = &deadline
	}

	cfg, err := h.settingsService.SetSavingsGoal(c.Request.Context(), goal)
	if err != nil {
		RespondServiceError(c, h.logger, "set_savings_goal", err)
		return
	}

	saved, _ := cfg.Goal(goal.Name)
	RespondOK(c, mapGoalToResponse(saved))
}

func (h *SavingsHandler) DeleteGoal(c *gin.Context) {
	name := c.Param("name")

	removed, err := h.settingsService.RemoveSavingsGoal(c.Request.Context(), name)
	if err != nil {
		RespondServiceError(c, h.logger, "remove_savings_goal", err)
		return
	}
	if !removed {
		RespondNotFound(c, "Savings goal not found")
		return
	}

	RespondNoContent(c)
}
