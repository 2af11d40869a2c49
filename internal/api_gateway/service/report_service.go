package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/purse-ledger/internal/analytics"
	"github.com/purse-ledger/internal/domain/ledger"
	"github.com/purse-ledger/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// BudgetStatus is the spend of every budgeted category in the current cycle
type BudgetStatus struct {
	Cycle                   analytics.Cycle         `json:"cycle"`
	CycleStartDay           int                     `json:"cycleStartDay"`
	Usages                  []analytics.BudgetUsage `json:"usages"`
	CategoriesWithoutBudget []string                `json:"categoriesWithoutBudget"`
	TotalBudget             decimal.Decimal         `json:"totalBudget"`
	TotalSpent              decimal.Decimal         `json:"totalSpent"`
}

// SavingsOverview combines savings statistics with goal progress
type SavingsOverview struct {
	Stats analytics.SavingsStats   `json:"stats"`
	Goals []analytics.GoalProgress `json:"goals"`
}

// Dashboard bundles every report computed from one snapshot of the ledger
type Dashboard struct {
	Balance      decimal.Decimal        `json:"balance"`
	Budget       *BudgetStatus          `json:"budget"`
	Savings      *SavingsOverview       `json:"savings"`
	Distribution analytics.Distribution `json:"distribution"`
	GeneratedAt  time.Time              `json:"generatedAt"`
}

// ReportServiceImpl implements the ReportService interface
type ReportServiceImpl struct {
	ledgerRepo   ledger.Repository
	settingsRepo settings.Repository
	pool         *WorkerPool
	logger       *slog.Logger
	now          func() time.Time
}

// NewReportService creates a new report service. Dashboard reports run on pool.
func NewReportService(logger *slog.Logger, ledgerRepo ledger.Repository, settingsRepo settings.Repository, pool *WorkerPool) ReportService {
	return &ReportServiceImpl{
		ledgerRepo:   ledgerRepo,
		settingsRepo: settingsRepo,
		pool:         pool,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *ReportServiceImpl) Balance(ctx context.Context) (decimal.Decimal, error) {
	txs, err := s.transactions(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return analytics.Balance(txs), nil
}

func (s *ReportServiceImpl) BalanceHistory(ctx context.Context) ([]analytics.BalancePoint, error) {
	txs, err := s.transactions(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.BalanceHistory(txs), nil
}

func (s *ReportServiceImpl) BudgetStatus(ctx context.Context) (*BudgetStatus, error) {
	txs, cfg, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return budgetStatus(txs, cfg, s.now()), nil
}

func (s *ReportServiceImpl) SavingsOverview(ctx context.Context) (*SavingsOverview, error) {
	txs, cfg, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return savingsOverview(txs, cfg, s.now()), nil
}

func (s *ReportServiceImpl) SavingsHistory(ctx context.Context, from, to *time.Time) ([]ledger.Transaction, error) {
	txs, err := s.transactions(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.SavingsHistory(txs, from, to), nil
}

func (s *ReportServiceImpl) CategoryDistribution(ctx context.Context) (analytics.Distribution, error) {
	txs, err := s.transactions(ctx)
	if err != nil {
		return analytics.Distribution{}, err
	}
	return analytics.CategoryDistribution(txs), nil
}

// Dashboard reads the ledger and settings once and fans the reports out to the worker pool
func (s *ReportServiceImpl) Dashboard(ctx context.Context) (*Dashboard, error) {
	txs, cfg, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	dashboard := &Dashboard{GeneratedAt: now.UTC()}

	// each task writes a distinct field
	err = s.pool.RunAll(ctx,
		func(context.Context) error {
			dashboard.Balance = analytics.Balance(txs)
			return nil
		},
		func(context.Context) error {
			dashboard.Budget = budgetStatus(txs, cfg, now)
			return nil
		},
		func(context.Context) error {
			dashboard.Savings = savingsOverview(txs, cfg, now)
			return nil
		},
		func(context.Context) error {
			dashboard.Distribution = analytics.CategoryDistribution(txs)
			return nil
		},
	)
	if err != nil {
		s.logger.Error("Failed to compute dashboard", "error", err)
		return nil, err
	}

	return dashboard, nil
}

func (s *ReportServiceImpl) transactions(ctx context.Context) ([]ledger.Transaction, error) {
	txs, err := s.ledgerRepo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list transactions", "error", err)
		return nil, err
	}
	return txs, nil
}

func (s *ReportServiceImpl) snapshot(ctx context.Context) ([]ledger.Transaction, settings.Settings, error) {
	txs, err := s.transactions(ctx)
	if err != nil {
		return nil, settings.Settings{}, err
	}
	cfg, err := s.settingsRepo.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load settings", "error", err)
		return nil, settings.Settings{}, err
	}
	return txs, cfg, nil
}

func budgetStatus(txs []ledger.Transaction, cfg settings.Settings, now time.Time) *BudgetStatus {
	day := cfg.EffectiveCycleStartDay()
	cycle := analytics.CurrentCycle(now, day)
	usages := analytics.BudgetUsages(txs, cycle, cfg.CategoryBudgets)

	status := &BudgetStatus{
		Cycle:                   cycle,
		CycleStartDay:           day,
		Usages:                  usages,
		CategoriesWithoutBudget: analytics.CategoriesWithoutBudget(cfg.Categories, cfg.CategoryBudgets),
		TotalBudget:             decimal.Zero,
		TotalSpent:              decimal.Zero,
	}
	for _, u := range usages {
		status.TotalBudget = status.TotalBudget.Add(u.Budget)
		status.TotalSpent = status.TotalSpent.Add(u.Spent)
	}
	return status
}

func savingsOverview(txs []ledger.Transaction, cfg settings.Settings, now time.Time) *SavingsOverview {
	stats := analytics.ComputeSavingsStats(txs, now)
	return &SavingsOverview{
		Stats: stats,
		Goals: analytics.GoalsProgress(cfg.SavingsGoals, stats.TotalSavings),
	}
}
