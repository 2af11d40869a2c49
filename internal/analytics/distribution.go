package analytics

import (
	"cmp"
	"slices"

	"github.com/purse-ledger/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// CategoryStats aggregates every transaction of one category, savings included
type CategoryStats struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Average  decimal.Decimal `json:"average"`
	Share    decimal.Decimal `json:"share"` // percent of the sum of absolute category totals
}

// Summary holds ledger-wide totals. Income and expenses exclude savings-flagged
// transactions, which are reported in TotalSavings.
type Summary struct {
	TotalCategories   int             `json:"totalCategories"`
	TotalTransactions int             `json:"totalTransactions"`
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	TotalSavings      decimal.Decimal `json:"totalSavings"`
	NetAmount         decimal.Decimal `json:"netAmount"`
}

// Distribution is the category report
type Distribution struct {
	Categories []CategoryStats `json:"categories"`
	Summary    Summary         `json:"summary"`
}

// CategoryDistribution groups transactions by display category, sorted by absolute
// total descending with ties broken by name.
func CategoryDistribution(txs []ledger.Transaction) Distribution {
	byCategory := make(map[string]*CategoryStats)
	summary := Summary{
		TotalTransactions: len(txs),
		TotalIncome:       decimal.Zero,
		TotalExpenses:     decimal.Zero,
		TotalSavings:      decimal.Zero,
	}

	for _, tx := range txs {
		name := tx.DisplayCategory()
		stats, ok := byCategory[name]
		if !ok {
			stats = &CategoryStats{Category: name, Total: decimal.Zero, Income: decimal.Zero, Expenses: decimal.Zero}
			byCategory[name] = stats
		}
		stats.Total = stats.Total.Add(tx.Amount)
		stats.Count++
		switch {
		case tx.Amount.IsPositive():
			stats.Income = stats.Income.Add(tx.Amount)
		case tx.Amount.IsNegative():
			stats.Expenses = stats.Expenses.Add(tx.Amount.Abs())
		}

		switch {
		case tx.IsSavingsDeposit():
			summary.TotalSavings = summary.TotalSavings.Add(tx.Amount)
		case tx.IsSavings:
			// savings withdrawals are neither income nor expense
		case tx.Amount.IsPositive():
			summary.TotalIncome = summary.TotalIncome.Add(tx.Amount)
		case tx.Amount.IsNegative():
			summary.TotalExpenses = summary.TotalExpenses.Add(tx.Amount.Abs())
		}
	}

	absSum := decimal.Zero
	categories := make([]CategoryStats, 0, len(byCategory))
	for _, stats := range byCategory {
		stats.Average = stats.Total.Div(decimal.NewFromInt(int64(stats.Count)))
		absSum = absSum.Add(stats.Total.Abs())
		categories = append(categories, *stats)
	}
	for i := range categories {
		categories[i].Share = decimal.Zero
		if absSum.IsPositive() {
			categories[i].Share = categories[i].Total.Abs().Mul(hundred).Div(absSum)
		}
	}
	slices.SortFunc(categories, func(a, b CategoryStats) int {
		if c := b.Total.Abs().Cmp(a.Total.Abs()); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})

	summary.TotalCategories = len(categories)
	summary.NetAmount = summary.TotalIncome.Sub(summary.TotalExpenses)
	return Distribution{Categories: categories, Summary: summary}
}
