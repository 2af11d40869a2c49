package handler

import (
	"fmt"
	"time"

	"github.com/purse-ledger/internal/analytics"
	"github.com/purse-ledger/internal/api_gateway/service"
	"github.com/purse-ledger/internal/domain/ledger"
	"github.com/purse-ledger/internal/domain/settings"
	"github.com/shopspring/decimal"
)

var (
	warningThreshold = decimal.NewFromInt(80)
	hundredPercent   = decimal.NewFromInt(100)
)

// mapTransactionToResponse maps a ledger transaction to a response DTO
func mapTransactionToResponse(tx ledger.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              tx.ID,
		Amount:          tx.Amount,
		Description:     tx.Description,
		Date:            tx.Date.UTC().Format(time.RFC3339Nano),
		Category:        tx.Category,
		DisplayCategory: tx.DisplayCategory(),
		IsSavings:       tx.IsSavings,
	}
}

func mapTransactionsToResponse(txs []ledger.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, mapTransactionToResponse(tx))
	}
	return out
}

func usageStatus(u analytics.BudgetUsage) string {
	switch {
	case u.Percentage.GreaterThan(hundredPercent):
		return UsageOver
	case u.Percentage.GreaterThan(warningThreshold):
		return UsageWarning
	default:
		return UsageOK
	}
}

func mapBudgetStatusToResponse(status *service.BudgetStatus) BudgetStatusResponse {
	usages := make([]BudgetUsageResponse, 0, len(status.Usages))
	for _, u := range status.Usages {
		overspent := decimal.Zero
		if u.OverBudget() {
			overspent = u.Spent.Sub(u.Budget)
		}
		usages = append(usages, BudgetUsageResponse{
			Category:   u.Category,
			Budget:     u.Budget,
			Spent:      u.Spent,
			Remaining:  u.Remaining,
			Percentage: u.Percentage.Round(2),
			Overspent:  overspent,
			Status:     usageStatus(u),
		})
	}
	return BudgetStatusResponse{
		CycleStart:              status.Cycle.Start.Format(time.RFC3339),
		CycleEnd:                status.Cycle.End.Format(time.RFC3339Nano),
		CycleStartDay:           status.CycleStartDay,
		Usages:                  usages,
		CategoriesWithoutBudget: status.CategoriesWithoutBudget,
		TotalBudget:             status.TotalBudget,
		TotalSpent:              status.TotalSpent,
	}
}

func mapGoalToResponse(g settings.SavingsGoal) SavingsGoalResponse {
	resp := SavingsGoalResponse{
		Name:     g.Name,
		Target:   g.Target,
		Priority: string(g.Priority),
	}
	if g.Deadline != nil {
		resp.Deadline = g.Deadline.Format(dateLayout)
	}
	return resp
}

func mapSavingsOverviewToResponse(overview *service.SavingsOverview) SavingsOverviewResponse {
	goals := make([]GoalProgressResponse, 0, len(overview.Goals))
	for _, g := range overview.Goals {
		goals = append(goals, GoalProgressResponse{
			SavingsGoalResponse: mapGoalToResponse(g.Goal),
			Saved:               g.Saved,
			Remaining:           g.Remaining,
			Percentage:          g.Percentage.Round(2),
			Reached:             g.Reached,
		})
	}
	stats := overview.Stats
	return SavingsOverviewResponse{
		TotalSavings:              stats.TotalSavings,
		SavingsTransactionCount:   stats.SavingsTransactionCount,
		AverageSavingsTransaction: stats.AverageSavingsTransaction.Round(2),
		ThisMonthSavings:          stats.ThisMonthSavings,
		LastMonthSavings:          stats.LastMonthSavings,
		SavingsGrowthRate:         stats.SavingsGrowthRate.Round(2),
		Goals:                     goals,
	}
}

func mapBudgetsToResponse(cfg settings.Settings) BudgetsResponse {
	budgets := make([]BudgetResponse, 0, len(cfg.CategoryBudgets))
	for _, b := range cfg.CategoryBudgets {
		budgets = append(budgets, BudgetResponse{Category: b.Category, MonthlyBudget: b.MonthlyBudget})
	}
	return BudgetsResponse{
		CycleStartDay: cfg.EffectiveCycleStartDay(),
		Budgets:       budgets,
	}
}

// parseBound parses a YYYY-MM-DD date or an RFC 3339 timestamp. A bare date used as an
// upper bound covers the whole day.
func parseBound(value string, upper bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC 3339", value)
	}
	if upper {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, nil
}
