package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/purse-ledger/internal/api_gateway/service"
)

// CategoryHandler handles HTTP requests for configured categories
type CategoryHandler struct {
	settingsService service.SettingsService
	logger          *slog.Logger
}

func NewCategoryHandler(logger *slog.Logger, settingsService service.SettingsService) *CategoryHandler {
	return &CategoryHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

func (h *CategoryHandler) List(c *gin.Context) {
	cfg, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		RespondServiceError(c, h.logger, "list_categories", err)
		return
	}

	categories := cfg.Categories
	if categories == nil {
		categories = []string{}
	}
	RespondOK(c, categories)
}

// Create adds a category, returns 409 if it already exists
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cfg, err := h.settingsService.AddCategory(c.Request.Context(), req.Name)
	if err != nil {
		RespondServiceError(c, h.logger, "add_category", err)
		return
	}

	RespondCreated(c, cfg.Categories)
}

// Rename renames the category in the path, keeping its position
func (h *CategoryHandler) Rename(c *gin.Context) {
	oldName := c.Param("name")

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "category", oldName, "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cfg, err := h.settingsService.RenameCategory(c.Request.Context(), oldName, req.Name)
	if err != nil {
		RespondServiceError(c, h.logger, "rename_category", err)
		return
	}

	RespondOK(c, cfg.Categories)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	name := c.Param("name")

	removed, err := h.settingsService.RemoveCategory(c.Request.Context(), name)
	if err != nil {
		RespondServiceError(c, h.logger, "remove_category", err)
		return
	}
	if !removed {
		RespondNotFound(c, "Category not found")
		return
	}

	RespondNoContent(c)
}
