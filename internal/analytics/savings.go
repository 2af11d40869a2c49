package analytics

import (
	"slices"
	"time"

	"github.com/purse-ledger/internal/domain/ledger"
	"github.com/purse-ledger/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// SavingsStats summarizes the savings pool
type SavingsStats struct {
	TotalSavings              decimal.Decimal `json:"totalSavings"`
	SavingsTransactionCount   int             `json:"savingsTransactionCount"`
	AverageSavingsTransaction decimal.Decimal `json:"averageSavingsTransaction"`
	ThisMonthSavings          decimal.Decimal `json:"thisMonthSavings"`
	LastMonthSavings          decimal.Decimal `json:"lastMonthSavings"`
	SavingsGrowthRate         decimal.Decimal `json:"savingsGrowthRate"`
}

// ComputeSavingsStats aggregates savings deposits. Only positive transactions flagged as
// savings count. Months are calendar months in now's location; the previous month
// covers every instant up to the start of the current one.
func ComputeSavingsStats(txs []ledger.Transaction, now time.Time) SavingsStats {
	thisMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)

	stats := SavingsStats{
		TotalSavings:              decimal.Zero,
		AverageSavingsTransaction: decimal.Zero,
		ThisMonthSavings:          decimal.Zero,
		LastMonthSavings:          decimal.Zero,
		SavingsGrowthRate:         decimal.Zero,
	}

	for _, tx := range txs {
		if !tx.IsSavingsDeposit() {
			continue
		}
		stats.TotalSavings = stats.TotalSavings.Add(tx.Amount)
		stats.SavingsTransactionCount++

		switch {
		case !tx.Date.Before(thisMonthStart):
			stats.ThisMonthSavings = stats.ThisMonthSavings.Add(tx.Amount)
		case !tx.Date.Before(lastMonthStart):
			stats.LastMonthSavings = stats.LastMonthSavings.Add(tx.Amount)
		}
	}

	if stats.SavingsTransactionCount > 0 {
		stats.AverageSavingsTransaction = stats.TotalSavings.Div(decimal.NewFromInt(int64(stats.SavingsTransactionCount)))
	}
	stats.SavingsGrowthRate = GrowthRate(stats.ThisMonthSavings, stats.LastMonthSavings)
	return stats
}

// GrowthRate is the percentage change from previous to current, or zero when
// previous is not positive
func GrowthRate(current, previous decimal.Decimal) decimal.Decimal {
	if !previous.IsPositive() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred)
}

// SavingsHistory returns every transaction flagged as savings, withdrawals included,
// newest first. Nil bounds are open; non-nil bounds are inclusive.
func SavingsHistory(txs []ledger.Transaction, from, to *time.Time) []ledger.Transaction {
	out := make([]ledger.Transaction, 0)
	for _, tx := range txs {
		if !tx.IsSavings {
			continue
		}
		if from != nil && tx.Date.Before(*from) {
			continue
		}
		if to != nil && tx.Date.After(*to) {
			continue
		}
		out = append(out, tx)
	}
	slices.SortStableFunc(out, func(a, b ledger.Transaction) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// GoalProgress measures one goal against the shared savings pool
type GoalProgress struct {
	Goal       settings.SavingsGoal `json:"goal"`
	Saved      decimal.Decimal      `json:"saved"`
	Remaining  decimal.Decimal      `json:"remaining"`
	Percentage decimal.Decimal      `json:"percentage"`
	Reached    bool                 `json:"reached"`
}

// GoalsProgress reports each goal's progress. Goals are not isolated sub-accounts:
// every goal is measured against the same total.
func GoalsProgress(goals []settings.SavingsGoal, totalSavings decimal.Decimal) []GoalProgress {
	out := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		remaining := g.Target.Sub(totalSavings)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		percentage := decimal.Zero
		if g.Target.IsPositive() {
			percentage = totalSavings.Mul(hundred).Div(g.Target)
		}
		out = append(out, GoalProgress{
			Goal:       g,
			Saved:      totalSavings,
			Remaining:  remaining,
			Percentage: percentage,
			Reached:    g.Target.IsPositive() && !totalSavings.LessThan(g.Target),
		})
	}
	return out
}
