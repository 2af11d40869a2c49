package handler

import (
	"time"

	"github.com/purse-ledger/internal/analytics"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// CreateTransactionRequest represents a request to append a transaction
type CreateTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	IsSavings   bool             `json:"isSavings"`
	Date        *time.Time       `json:"date"`
}

// UpdateTransactionRequest is a partial update. Omitted fields are left unchanged
// and an empty category clears it.
type UpdateTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
	Date        *time.Time       `json:"date"`
	Category    *string          `json:"category"`
	IsSavings   *bool            `json:"isSavings"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID              string          `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Date            string          `json:"date"`
	Category        string          `json:"category,omitempty"`
	DisplayCategory string          `json:"displayCategory"`
	IsSavings       bool            `json:"isSavings"`
}

// SetBalanceRequest replaces the ledger with a single opening balance
type SetBalanceRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required"`
}

// AmountRequest carries a signed amount and an optional description
type AmountRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Description string           `json:"description"`
}

// BalanceResponse represents the current balance
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// CategoryRequest names a category to create or the new name of a renamed one
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// SetBudgetRequest sets the budget of one category
type SetBudgetRequest struct {
	MonthlyBudget *decimal.Decimal `json:"monthlyBudget" binding:"required"`
}

// SetCycleDayRequest sets the day of month on which budget cycles start
type SetCycleDayRequest struct {
	CycleStartDay int `json:"cycleStartDay" binding:"required,min=1,max=31"`
}

// BudgetsResponse lists the configured budgets
type BudgetsResponse struct {
	CycleStartDay int              `json:"cycleStartDay"`
	Budgets       []BudgetResponse `json:"budgets"`
}

type BudgetResponse struct {
	Category      string          `json:"category"`
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
}

// Budget usage levels
const (
	UsageOK      = "OK"
	UsageWarning = "WARNING" // above 80 percent
	UsageOver    = "OVER_BUDGET"
)

// BudgetUsageResponse is one category's spend in the current cycle
type BudgetUsageResponse struct {
	Category   string          `json:"category"`
	Budget     decimal.Decimal `json:"budget"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
	Overspent  decimal.Decimal `json:"overspent"`
	Status     string          `json:"status"`
}

// BudgetStatusResponse represents the budget status of the current cycle
type BudgetStatusResponse struct {
	CycleStart              string                `json:"cycleStart"`
	CycleEnd                string                `json:"cycleEnd"`
	CycleStartDay           int                   `json:"cycleStartDay"`
	Usages                  []BudgetUsageResponse `json:"usages"`
	CategoriesWithoutBudget []string              `json:"categoriesWithoutBudget"`
	TotalBudget             decimal.Decimal       `json:"totalBudget"`
	TotalSpent              decimal.Decimal       `json:"totalSpent"`
}

// SetSavingsGoalRequest adds or replaces the goal named in the path
type SetSavingsGoalRequest struct {
	Target   *decimal.Decimal `json:"target" binding:"required"`
	Priority string           `json:"priority" binding:"omitempty,oneof=low medium high"`
	Deadline string           `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
}

// SavingsGoalResponse represents a savings goal
type SavingsGoalResponse struct {
	Name     string          `json:"name"`
	Target   decimal.Decimal `json:"target"`
	Priority string          `json:"priority"`
	Deadline string          `json:"deadline,omitempty"`
}

// GoalProgressResponse is a goal measured against the total savings
type GoalProgressResponse struct {
	SavingsGoalResponse
	Saved      decimal.Decimal `json:"saved"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
	Reached    bool            `json:"reached"`
}

// SavingsOverviewResponse combines savings statistics with goal progress
type SavingsOverviewResponse struct {
	TotalSavings              decimal.Decimal        `json:"totalSavings"`
	SavingsTransactionCount   int                    `json:"savingsTransactionCount"`
	AverageSavingsTransaction decimal.Decimal        `json:"averageSavingsTransaction"`
	ThisMonthSavings          decimal.Decimal        `json:"thisMonthSavings"`
	LastMonthSavings          decimal.Decimal        `json:"lastMonthSavings"`
	SavingsGrowthRate         decimal.Decimal        `json:"savingsGrowthRate"`
	Goals                     []GoalProgressResponse `json:"goals"`
}

// DateRangeParams bounds a listing. Dates are YYYY-MM-DD or RFC 3339; both ends inclusive.
type DateRangeParams struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// DashboardResponse bundles every report
type DashboardResponse struct {
	Balance      decimal.Decimal         `json:"balance"`
	Budget       BudgetStatusResponse    `json:"budget"`
	Savings      SavingsOverviewResponse `json:"savings"`
	Distribution analytics.Distribution  `json:"distribution"`
	GeneratedAt  string                  `json:"generatedAt"`
}
