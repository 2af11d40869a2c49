package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/purse-ledger/internal/analytics"
	"github.com/purse-ledger/internal/api_gateway/service"
	"github.com/purse-ledger/internal/domain/ledger"
	"github.com/purse-ledger/internal/domain/settings"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) RecordTransaction(ctx context.Context, tx ledger.NewTransaction) (ledger.Transaction, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(ledger.Transaction), args.Error(1)
}

func (m *MockLedgerService) ListTransactions(ctx context.Context) ([]ledger.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *MockLedgerService) UpdateTransaction(ctx context.Context, id string, update ledger.Update) (*ledger.Transaction, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *MockLedgerService) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerService) SetBalance(ctx context.Context, amount decimal.Decimal) (ledger.Transaction, error) {
	args := m.Called(ctx, amount)
	return args.Get(0).(ledger.Transaction), args.Error(1)
}

func (m *MockLedgerService) AdjustBalance(ctx context.Context, amount decimal.Decimal, description string) (ledger.Transaction, error) {
	args := m.Called(ctx, amount, description)
	return args.Get(0).(ledger.Transaction), args.Error(1)
}

func (m *MockLedgerService) DepositSavings(ctx context.Context, amount decimal.Decimal, description string) (ledger.Transaction, error) {
	args := m.Called(ctx, amount, description)
	return args.Get(0).(ledger.Transaction), args.Error(1)
}

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetSettings(ctx context.Context) (settings.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(settings.Settings), args.Error(1)
}

func (m *MockSettingsService) AddCategory(ctx context.Context, name string) (settings.Settings, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(settings.Settings), args.Error(1)
}

func (m *MockSettingsService) RenameCategory(ctx context.Context, oldName, newName string) (settings.Settings, error) {
	args := m.Called(ctx, oldName, newName)
	return args.Get(0).(settings.Settings), args.Error(1)
}

func (m *MockSettingsService) RemoveCategory(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockSettingsService) SetCategoryBudget(ctx context.Context, category string, monthlyBudget decimal.Decimal) (settings.Settings, error) {
	args := m.Called(ctx, category, monthlyBudget)
	return args.Get(0).(settings.Settings), args.Error(1)
}

func (m *MockSettingsService) SetCycleStartDay(ctx context.Context, day int) (settings.Settings, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(settings.Settings), args.Error(1)
}

func (m *MockSettingsService) SetSavingsGoal(ctx context.Context, goal settings.SavingsGoal) (settings.Settings, error) {
	args := m.Called(ctx, goal)
	return args.Get(0).(settings.Settings), args.Error(1)
}

func (m *MockSettingsService) RemoveSavingsGoal(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Balance(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportService) BalanceHistory(ctx context.Context) ([]analytics.BalancePoint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.BalancePoint), args.Error(1)
}

func (m *MockReportService) BudgetStatus(ctx context.Context) (*service.BudgetStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BudgetStatus), args.Error(1)
}

func (m *MockReportService) SavingsOverview(ctx context.Context) (*service.SavingsOverview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SavingsOverview), args.Error(1)
}

func (m *MockReportService) SavingsHistory(ctx context.Context, from, to *time.Time) ([]ledger.Transaction, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *MockReportService) CategoryDistribution(ctx context.Context) (analytics.Distribution, error) {
	args := m.Called(ctx)
	return args.Get(0).(analytics.Distribution), args.Error(1)
}

func (m *MockReportService) Dashboard(ctx context.Context) (*service.Dashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Dashboard), args.Error(1)
}

var (
	_ service.LedgerService   = (*MockLedgerService)(nil)
	_ service.SettingsService = (*MockSettingsService)(nil)
	_ service.ReportService   = (*MockReportService)(nil)
)

var testDate = time.Date(2025, 3, 20, 9, 30, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// performRequest sends body (if any) as JSON and returns the recorded response
func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// decodeData unmarshals the "data" field of a standard response into out
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data, "'data' field should exist in response")
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func jsonUnmarshal(rr *httptest.ResponseRecorder, out interface{}) error {
	return json.Unmarshal(rr.Body.Bytes(), out)
}

// decodeError returns the error code of a standard error response
func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error, "'error' field should exist in response")
	return resp.Error.Code
}

func sampleTx(amount string, category string) ledger.Transaction {
	return ledger.Transaction{
		ID:          ledger.NewID(),
		Amount:      decimal.RequireFromString(amount),
		Description: "Sample",
		Date:        testDate,
		Category:    category,
	}
}
