package service

import (
	"context"
	"time"

	"github.com/purse-ledger/internal/analytics"
	"github.com/purse-ledger/internal/domain/ledger"
	"github.com/purse-ledger/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// LedgerService defines the interface for ledger mutations and reads
type LedgerService interface {
	// RecordTransaction appends a transaction and publishes TRANSACTION_RECORDED
	RecordTransaction(ctx context.Context, tx ledger.NewTransaction) (ledger.Transaction, error)

	// ListTransactions returns every transaction in insertion order
	ListTransactions(ctx context.Context) ([]ledger.Transaction, error)

	// UpdateTransaction applies a partial update.
	// Returns nil if the transaction is not found
	UpdateTransaction(ctx context.Context, id string, update ledger.Update) (*ledger.Transaction, error)

	// DeleteTransaction removes a transaction, reporting whether it existed
	DeleteTransaction(ctx context.Context, id string) (bool, error)

	// SetBalance replaces the whole ledger with a single "Initial Balance" transaction
	SetBalance(ctx context.Context, amount decimal.Decimal) (ledger.Transaction, error)

	// AdjustBalance appends a "System" transaction moving the balance by amount
	AdjustBalance(ctx context.Context, amount decimal.Decimal, description string) (ledger.Transaction, error)

	// DepositSavings appends a positive savings-flagged transaction
	DepositSavings(ctx context.Context, amount decimal.Decimal, description string) (ledger.Transaction, error)
}

// SettingsService defines the interface for category, budget and goal configuration.
// Every mutation loads the current settings, applies the change and saves the result.
type SettingsService interface {
	GetSettings(ctx context.Context) (settings.Settings, error)

	// AddCategory returns settings.ErrCategoryExists for a duplicate name
	AddCategory(ctx context.Context, name string) (settings.Settings, error)

	// RenameCategory returns settings.ErrCategoryNotFound or settings.ErrCategoryExists
	RenameCategory(ctx context.Context, oldName, newName string) (settings.Settings, error)

	RemoveCategory(ctx context.Context, name string) (bool, error)

	SetCategoryBudget(ctx context.Context, category string, monthlyBudget decimal.Decimal) (settings.Settings, error)

	SetCycleStartDay(ctx context.Context, day int) (settings.Settings, error)

	// SetSavingsGoal adds a goal or replaces the one with the same name
	SetSavingsGoal(ctx context.Context, goal settings.SavingsGoal) (settings.Settings, error)

	RemoveSavingsGoal(ctx context.Context, name string) (bool, error)
}

// ReportService defines the interface for read-only ledger analytics
type ReportService interface {
	Balance(ctx context.Context) (decimal.Decimal, error)
	BalanceHistory(ctx context.Context) ([]analytics.BalancePoint, error)

	// BudgetStatus reports spend against every budget in the current cycle
	BudgetStatus(ctx context.Context) (*BudgetStatus, error)

	// SavingsOverview reports savings statistics and progress of every goal
	SavingsOverview(ctx context.Context) (*SavingsOverview, error)

	// SavingsHistory lists savings transactions newest first, optionally bounded (inclusive)
	SavingsHistory(ctx context.Context, from, to *time.Time) ([]ledger.Transaction, error)

	CategoryDistribution(ctx context.Context) (analytics.Distribution, error)

	// Dashboard computes balance, budget, savings and distribution reports concurrently
	Dashboard(ctx context.Context) (*Dashboard, error)
}
