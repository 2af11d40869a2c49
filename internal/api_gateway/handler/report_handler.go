package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/purse-ledger/internal/api_gateway/service"
)

// ReportHandler handles HTTP requests for aggregated reports
type ReportHandler struct {
	reportService service.ReportService
	logger        *slog.Logger
}

func NewReportHandler(logger *slog.Logger, reportService service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// Categories returns per-category totals and the ledger-wide summary
func (h *ReportHandler) Categories(c *gin.Context) {
	distribution, err := h.reportService.CategoryDistribution(c.Request.Context())
	if err != nil {
		RespondServiceError(c, h.logger, "category_distribution", err)
		return
	}

	RespondOK(c, distribution)
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		RespondServiceError(c, h.logger, "dashboard", err)
		return
	}

	RespondOK(c, DashboardResponse{
		Balance:      dashboard.Balance,
		Budget:       mapBudgetStatusToResponse(dashboard.Budget),
		Savings:      mapSavingsOverviewToResponse(dashboard.Savings),
		Distribution: dashboard.Distribution,
		GeneratedAt:  dashboard.GeneratedAt.Format(time.RFC3339),
	})
}
