package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/purse-ledger/internal/api_gateway/service"
)

// BudgetHandler handles HTTP requests for budgets and the budget cycle
type BudgetHandler struct {
	settingsService service.SettingsService
	reportService   service.ReportService
	logger          *slog.Logger
}

func NewBudgetHandler(logger *slog.Logger, settingsService service.SettingsService, reportService service.ReportService) *BudgetHandler {
	return &BudgetHandler{
		settingsService: settingsService,
		reportService:   reportService,
		logger:          logger,
	}
}

// List returns the configured budgets and cycle start day
func (h *BudgetHandler) List(c *gin.Context) {
	cfg, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		RespondServiceError(c, h.logger, "list_budgets", err)
		return
	}

	RespondOK(c, mapBudgetsToResponse(cfg))
}

// Set sets the budget of the category in the path
func (h *BudgetHandler) Set(c *gin.Context) {
	category := c.Param("category")

	var req SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "category", category, "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cfg, err := h.settingsService.SetCategoryBudget(c.Request.Context(), category, *req.MonthlyBudget)
	if err != nil {
		RespondServiceError(c, h.logger, "set_budget", err)
		return
	}

	RespondOK(c, mapBudgetsToResponse(cfg))
}

func (h *BudgetHandler) SetCycleDay(c *gin.Context) {
	var req SetCycleDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cfg, err := h.settingsService.SetCycleStartDay(c.Request.Context(), req.CycleStartDay)
	if err != nil {
		RespondServiceError(c, h.logger, "set_cycle_day", err)
		return
	}

	RespondOK(c, mapBudgetsToResponse(cfg))
}

// Status reports spend against every budget in the current cycle
func (h *BudgetHandler) Status(c *gin.Context) {
	status, err := h.reportService.BudgetStatus(c.Request.Context())
	if err != nil {
		RespondServiceError(c, h.logger, "budget_status", err)
		return
	}

	RespondOK(c, mapBudgetStatusToResponse(status))
}
