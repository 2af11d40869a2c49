package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

type panicError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type panicResponse struct {
	Error         panicError `json:"error"`
	CorrelationID string     `json:"correlation_id,omitempty"`
}

// Recovery turns a panic in any later handler into a logged 500 carrying the
// correlation id. http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if r == http.ErrAbortHandler {
				panic(r)
			}

			correlationID := GetCorrelationID(c)
			logger.Error("Panic recovered",
				"error", r,
				"stack", string(debug.Stack()),
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"correlation_id", correlationID,
			)

			c.AbortWithStatusJSON(http.StatusInternalServerError, panicResponse{
				Error: panicError{
					Code:    "INTERNAL_SERVER_ERROR",
					Message: "An internal server error occurred",
				},
				CorrelationID: correlationID,
			})
		}()

		c.Next()
	}
}
