package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/purse-ledger/internal/api_gateway/middleware"
	"github.com/purse-ledger/internal/api_gateway/service"
	"github.com/purse-ledger/internal/domain/ledger"
	"github.com/purse-ledger/internal/domain/settings"
)

// Error codes carried in ErrorInfo.Code
const (
	CodeBadRequest    = "BAD_REQUEST"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeCorruptData   = "CORRUPT_DATA"
	CodeInternalError = "INTERNAL_SERVER_ERROR"
)

// Response is the envelope of every JSON body the API writes.
// Exactly one of Data and Error is set.
type Response struct {
	Data          interface{} `json:"data,omitempty"`
	Error         *ErrorInfo  `json:"error,omitempty"`
	CorrelationID string      `json:"correlation_id,omitempty"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeEnvelope(c *gin.Context, statusCode int, body Response) {
	body.CorrelationID = middleware.GetCorrelationID(c)
	c.JSON(statusCode, body)
}

func RespondOK(c *gin.Context, data interface{}) {
	writeEnvelope(c, http.StatusOK, Response{Data: data})
}

func RespondCreated(c *gin.Context, data interface{}) {
	writeEnvelope(c, http.StatusCreated, Response{Data: data})
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// RespondError writes an error envelope with the given status and code
func RespondError(c *gin.Context, statusCode int, code, message string) {
	writeEnvelope(c, statusCode, Response{Error: &ErrorInfo{Code: code, Message: message}})
}

func RespondBadRequest(c *gin.Context, message string) {
	RespondError(c, http.StatusBadRequest, CodeBadRequest, message)
}

func RespondNotFound(c *gin.Context, message string) {
	RespondError(c, http.StatusNotFound, CodeNotFound, message)
}

// RespondServiceError translates an error returned by a service into a response.
// Validation and not-found style failures are client errors and are not logged here;
// everything else is logged with the operation name and hidden behind a generic message.
func RespondServiceError(c *gin.Context, logger *slog.Logger, operation string, err error) {
	var validationErr service.ValidationError
	var corruptLedger ledger.ErrCorruptLedger
	var corruptSettings settings.ErrCorruptSettings

	switch {
	case errors.As(err, &validationErr):
		RespondBadRequest(c, validationErr.Error())
	case errors.Is(err, settings.ErrCategoryNotFound):
		RespondNotFound(c, "Category not found")
	case errors.Is(err, settings.ErrCategoryExists):
		RespondError(c, http.StatusConflict, CodeConflict, "Category already exists")
	case errors.As(err, &corruptLedger), errors.As(err, &corruptSettings):
		logger.Error("Stored data is unreadable", "operation", operation, "error", err)
		RespondError(c, http.StatusInternalServerError, CodeCorruptData, "Stored data is unreadable and was left untouched")
	default:
		logger.Error("Request failed", "operation", operation, "error", err)
		RespondError(c, http.StatusInternalServerError, CodeInternalError, "An internal server error occurred")
	}
}
