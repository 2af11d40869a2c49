package analytics

import (
	"slices"

	"github.com/purse-ledger/internal/domain/ledger"
	"github.com/purse-ledger/internal/domain/settings"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// BudgetUsage is the spend of one budgeted category within a cycle
type BudgetUsage struct {
	Category   string          `json:"category"`
	Budget     decimal.Decimal `json:"budget"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
}

// OverBudget reports whether spend exceeds the budget
func (u BudgetUsage) OverBudget() bool {
	return u.Spent.GreaterThan(u.Budget)
}

// NewBudgetUsage derives remaining and percentage from a budget and its spend.
// Remaining never goes below zero and a non-positive budget yields a zero percentage.
func NewBudgetUsage(category string, budget, spent decimal.Decimal) BudgetUsage {
	remaining := budget.Sub(spent)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	percentage := decimal.Zero
	if budget.IsPositive() {
		percentage = spent.Mul(hundred).Div(budget)
	}
	return BudgetUsage{
		Category:   category,
		Budget:     budget,
		Spent:      spent,
		Remaining:  remaining,
		Percentage: percentage,
	}
}

// BudgetUsages reports one usage per configured budget, in configuration order,
// including budgets with no spend. Only non-savings expenses dated inside the cycle
// count, and a transaction without a category never matches a budget.
func BudgetUsages(txs []ledger.Transaction, cycle Cycle, budgets []settings.CategoryBudget) []BudgetUsage {
	spent := spendByCategory(txs, cycle)

	usages := make([]BudgetUsage, 0, len(budgets))
	for _, b := range budgets {
		s, ok := spent[b.Category]
		if !ok {
			s = decimal.Zero
		}
		usages = append(usages, NewBudgetUsage(b.Category, b.MonthlyBudget, s))
	}
	return usages
}

func spendByCategory(txs []ledger.Transaction, cycle Cycle) map[string]decimal.Decimal {
	spent := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if !tx.IsExpense() || tx.Category == "" || !cycle.Contains(tx.Date) {
			continue
		}
		spent[tx.Category] = spent[tx.Category].Add(tx.Amount.Abs())
	}
	return spent
}

// CategoriesWithoutBudget returns the configured categories that have no budget, in order
func CategoriesWithoutBudget(categories []string, budgets []settings.CategoryBudget) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		budgeted := slices.ContainsFunc(budgets, func(b settings.CategoryBudget) bool {
			return b.Category == c
		})
		if !budgeted {
			out = append(out, c)
		}
	}
	return out
}
