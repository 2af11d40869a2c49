package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/purse-ledger/internal/domain/ledger"
	"github.com/purse-ledger/internal/domain/settings"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportFixture() ([]ledger.Transaction, settings.Settings) {
	at := func(month time.Month, day int) time.Time {
		return time.Date(2025, month, day, 12, 0, 0, 0, time.UTC)
	}
	tx := func(id, amount, category string, date time.Time, isSavings bool) ledger.Transaction {
		return ledger.Transaction{
			ID:          id,
			Amount:      decimal.RequireFromString(amount),
			Description: id,
			Date:        date,
			Category:    category,
			IsSavings:   isSavings,
		}
	}

	txs := []ledger.Transaction{
		tx("salary", "1000", "Salary", at(time.March, 1), false),
		tx("sav-feb", "200", "Savings", at(time.February, 10), true),
		tx("sav-mar", "500", "Savings", at(time.March, 5), true),
		tx("food-early", "-30", "Food", at(time.March, 10), false),
		tx("food-1", "-100", "Food", at(time.March, 16), false),
		tx("bus", "-50", "Transport", at(time.March, 17), false),
		tx("food-2", "-200", "Food", at(time.March, 18), false),
	}
	cfg := settings.Settings{
		Categories:    []string{"Food", "Transport", "Rent"},
		CycleStartDay: 15,
		CategoryBudgets: []settings.CategoryBudget{
			{Category: "Food", MonthlyBudget: decimal.NewFromInt(500)},
			{Category: "Transport", MonthlyBudget: decimal.NewFromInt(200)},
		},
		SavingsGoals: []settings.SavingsGoal{
			{Name: "Emergency Fund", Target: decimal.NewFromInt(1000), Priority: settings.PriorityHigh},
		},
	}
	return txs, cfg
}

func newTestReportService(t *testing.T, repo ledger.Repository, settingsRepo settings.Repository) *ReportServiceImpl {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	pool, err := NewWorkerPool(WorkerPoolConfig{Size: 2}, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Shutdown)

	svc := NewReportService(logger, repo, settingsRepo, pool).(*ReportServiceImpl)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func assertDecimalEqual(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual.String())
}

func TestReportServiceImpl_BudgetStatus(t *testing.T) {
	ctx := context.Background()
	txs, cfg := reportFixture()

	repo := new(MockLedgerRepository)
	settingsRepo := new(MockSettingsRepository)
	repo.On("List", ctx).Return(txs, nil).Once()
	settingsRepo.On("Load", ctx).Return(cfg, nil).Once()
	svc := newTestReportService(t, repo, settingsRepo)

	status, err := svc.BudgetStatus(ctx)

	require.NoError(t, err)
	assert.Equal(t, 15, status.CycleStartDay)
	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), status.Cycle.Start)
	assert.Equal(t, 14, status.Cycle.End.Day())
	assert.Equal(t, time.April, status.Cycle.End.Month())

	require.Len(t, status.Usages, 2)
	food, transport := status.Usages[0], status.Usages[1]
	assert.Equal(t, "Food", food.Category)
	assertDecimalEqual(t, "300", food.Spent)
	assertDecimalEqual(t, "200", food.Remaining)
	assertDecimalEqual(t, "60", food.Percentage)
	assert.Equal(t, "Transport", transport.Category)
	assertDecimalEqual(t, "50", transport.Spent)
	assertDecimalEqual(t, "25", transport.Percentage)

	assert.Equal(t, []string{"Rent"}, status.CategoriesWithoutBudget)
	assertDecimalEqual(t, "700", status.TotalBudget)
	assertDecimalEqual(t, "350", status.TotalSpent)
}

func TestReportServiceImpl_BudgetStatusDefaultsCycleDay(t *testing.T) {
	ctx := context.Background()

	repo := new(MockLedgerRepository)
	settingsRepo := new(MockSettingsRepository)
	repo.On("List", ctx).Return([]ledger.Transaction{}, nil).Once()
	settingsRepo.On("Load", ctx).Return(settings.Settings{}, nil).Once()
	svc := newTestReportService(t, repo, settingsRepo)

	status, err := svc.BudgetStatus(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, status.CycleStartDay)
	assert.Equal(t, 1, status.Cycle.Start.Day())
	assert.Empty(t, status.Usages)
	assertDecimalEqual(t, "0", status.TotalSpent)
}

func TestReportServiceImpl_SavingsOverview(t *testing.T) {
	ctx := context.Background()
	txs, cfg := reportFixture()

	repo := new(MockLedgerRepository)
	settingsRepo := new(MockSettingsRepository)
	repo.On("List", ctx).Return(txs, nil).Once()
	settingsRepo.On("Load", ctx).Return(cfg, nil).Once()
	svc := newTestReportService(t, repo, settingsRepo)

	overview, err := svc.SavingsOverview(ctx)

	require.NoError(t, err)
	assertDecimalEqual(t, "700", overview.Stats.TotalSavings)
	assertDecimalEqual(t, "500", overview.Stats.ThisMonthSavings)
	assertDecimalEqual(t, "200", overview.Stats.LastMonthSavings)
	assertDecimalEqual(t, "150", overview.Stats.SavingsGrowthRate)
	assert.Equal(t, 2, overview.Stats.SavingsTransactionCount)

	require.Len(t, overview.Goals, 1)
	assertDecimalEqual(t, "70", overview.Goals[0].Percentage)
	assertDecimalEqual(t, "300", overview.Goals[0].Remaining)
	assert.False(t, overview.Goals[0].Reached)
}

func TestReportServiceImpl_SavingsHistory(t *testing.T) {
	ctx := context.Background()
	txs, _ := reportFixture()

	repo := new(MockLedgerRepository)
	repo.On("List", ctx).Return(txs, nil)
	svc := newTestReportService(t, repo, new(MockSettingsRepository))

	t.Run("Unbounded", func(t *testing.T) {
		history, err := svc.SavingsHistory(ctx, nil, nil)

		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "sav-mar", history[0].ID)
		assert.Equal(t, "sav-feb", history[1].ID)
	})

	t.Run("FromBound", func(t *testing.T) {
		from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

		history, err := svc.SavingsHistory(ctx, &from, nil)

		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, "sav-mar", history[0].ID)
	})
}

func TestReportServiceImpl_BalanceAndDistribution(t *testing.T) {
	ctx := context.Background()
	txs, _ := reportFixture()

	repo := new(MockLedgerRepository)
	repo.On("List", ctx).Return(txs, nil)
	svc := newTestReportService(t, repo, new(MockSettingsRepository))

	balance, err := svc.Balance(ctx)
	require.NoError(t, err)
	assertDecimalEqual(t, "1320", balance)

	history, err := svc.BalanceHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, len(txs))
	assert.Equal(t, "sav-feb", history[0].TransactionID)
	assertDecimalEqual(t, "1320", history[len(history)-1].Balance)

	distribution, err := svc.CategoryDistribution(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(txs), distribution.Summary.TotalTransactions)
	assertDecimalEqual(t, "1000", distribution.Summary.TotalIncome)
	assertDecimalEqual(t, "380", distribution.Summary.TotalExpenses)
	assertDecimalEqual(t, "700", distribution.Summary.TotalSavings)
	assertDecimalEqual(t, "620", distribution.Summary.NetAmount)
}

func TestReportServiceImpl_Dashboard(t *testing.T) {
	ctx := context.Background()
	txs, cfg := reportFixture()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockLedgerRepository)
		settingsRepo := new(MockSettingsRepository)
		repo.On("List", ctx).Return(txs, nil).Once()
		settingsRepo.On("Load", ctx).Return(cfg, nil).Once()
		svc := newTestReportService(t, repo, settingsRepo)

		dashboard, err := svc.Dashboard(ctx)

		require.NoError(t, err)
		assertDecimalEqual(t, "1320", dashboard.Balance)
		require.NotNil(t, dashboard.Budget)
		require.Len(t, dashboard.Budget.Usages, 2)
		require.NotNil(t, dashboard.Savings)
		assertDecimalEqual(t, "700", dashboard.Savings.Stats.TotalSavings)
		assert.NotEmpty(t, dashboard.Distribution.Categories)
		assert.Equal(t, fixedNow, dashboard.GeneratedAt)
		repo.AssertExpectations(t)
		settingsRepo.AssertExpectations(t)
	})

	t.Run("LedgerErrorIsSurfaced", func(t *testing.T) {
		repo := new(MockLedgerRepository)
		settingsRepo := new(MockSettingsRepository)
		repo.On("List", ctx).Return(nil, ledger.ErrCorruptLedger{Source: "ledger.json", Err: errors.New("bad json")}).Once()
		svc := newTestReportService(t, repo, settingsRepo)

		dashboard, err := svc.Dashboard(ctx)

		assert.Nil(t, dashboard)
		assert.ErrorIs(t, err, ledger.ErrCorruptLedger{})
		settingsRepo.AssertNotCalled(t, "Load", ctx)
	})

	t.Run("SettingsErrorIsSurfaced", func(t *testing.T) {
		repo := new(MockLedgerRepository)
		settingsRepo := new(MockSettingsRepository)
		repo.On("List", ctx).Return(txs, nil).Once()
		settingsRepo.On("Load", ctx).Return(settings.Settings{}, errors.New("permission denied")).Once()
		svc := newTestReportService(t, repo, settingsRepo)

		dashboard, err := svc.Dashboard(ctx)

		assert.Nil(t, dashboard)
		require.Error(t, err)
	})
}
