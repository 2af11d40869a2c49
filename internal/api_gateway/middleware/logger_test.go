package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lastLogRecord decodes the final JSON line written to buf
func lastLogRecord(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &record))
	return record
}

func TestLoggerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var logBuffer bytes.Buffer
	router := gin.New()
	router.Use(CorrelationID(), Logger(slog.New(slog.NewJSONHandler(&logBuffer, nil))))
	router.GET("/transactions", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/transactions", func(c *gin.Context) { c.Status(http.StatusCreated) })
	router.DELETE("/transactions/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/balance", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	tests := []struct {
		name          string
		method        string
		target        string
		correlationID string
		wantStatus    float64
		wantLevel     string
		wantRoute     string
	}{
		{"SuccessAtInfo", http.MethodGet, "/transactions?from=2025-03-01", "ledger-req-1", 200, "INFO", "/transactions"},
		{"CreatedAtInfo", http.MethodPost, "/transactions", "", 201, "INFO", "/transactions"},
		{"ClientErrorAtWarn", http.MethodDelete, "/transactions/tx-9", "", 404, "WARN", "/transactions/:id"},
		{"ServerErrorAtError", http.MethodGet, "/balance", "", 500, "ERROR", "/balance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logBuffer.Reset()
			req := httptest.NewRequest(tt.method, tt.target, nil)
			req.Header.Set("User-Agent", "purse-test")
			if tt.correlationID != "" {
				req.Header.Set(CorrelationIDHeader, tt.correlationID)
			}

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			record := lastLogRecord(t, &logBuffer)
			assert.Equal(t, "HTTP request", record["msg"])
			assert.Equal(t, tt.wantLevel, record["level"])
			assert.Equal(t, tt.method, record["method"])
			assert.Equal(t, tt.target, record["path"])
			assert.Equal(t, tt.wantRoute, record["route"])
			assert.Equal(t, tt.wantStatus, record["status"])
			assert.Equal(t, "purse-test", record["user_agent"])
			assert.Contains(t, record, "latency")
			assert.Contains(t, record, "client_ip")

			if tt.correlationID != "" {
				assert.Equal(t, tt.correlationID, record["correlation_id"])
			} else {
				assert.Equal(t, rr.Header().Get(CorrelationIDHeader), record["correlation_id"])
			}
		})
	}
}

func TestLoggerWithoutCorrelationMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var logBuffer bytes.Buffer
	router := gin.New()
	router.Use(Logger(slog.New(slog.NewJSONHandler(&logBuffer, nil))))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotContains(t, lastLogRecord(t, &logBuffer), "correlation_id")
}

func TestLevelForStatus(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, levelForStatus(http.StatusNoContent))
	assert.Equal(t, slog.LevelInfo, levelForStatus(http.StatusFound))
	assert.Equal(t, slog.LevelWarn, levelForStatus(http.StatusConflict))
	assert.Equal(t, slog.LevelError, levelForStatus(http.StatusServiceUnavailable))
}
