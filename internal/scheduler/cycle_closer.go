// Package scheduler runs periodic jobs over the ledger. The only job today closes
// budget cycles: on the first day of a cycle it reports how the cycle that just ended
// went against every budget.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/purse-ledger/internal/analytics"
	"github.com/purse-ledger/internal/domain/ledger"
	"github.com/purse-ledger/internal/domain/settings"
	"github.com/purse-ledger/internal/domain/shared"
	"github.com/purse-ledger/internal/platform/messaging/producers"
)

// CycleCloser publishes a CYCLE_CLOSED event once per finished budget cycle
type CycleCloser struct {
	ledgerRepo   ledger.Repository
	settingsRepo settings.Repository
	producer     producers.MessagePublisher
	logger       *slog.Logger
	now          func() time.Time

	mu         sync.Mutex
	lastClosed time.Time // start of the most recently closed cycle
}

func NewCycleCloser(logger *slog.Logger, ledgerRepo ledger.Repository, settingsRepo settings.Repository, producer producers.MessagePublisher) *CycleCloser {
	return &CycleCloser{
		ledgerRepo:   ledgerRepo,
		settingsRepo: settingsRepo,
		producer:     producer,
		logger:       logger,
		now:          time.Now,
	}
}

// Run closes the previous cycle if today is the first day of a new one. It reports
// whether a summary was produced; a cycle is never closed twice by the same closer.
func (c *CycleCloser) Run(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	cfg, err := c.settingsRepo.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load settings: %w", err)
	}
	day := cfg.EffectiveCycleStartDay()

	if !analytics.IsCycleStartDay(now, day) {
		return false, nil
	}

	closed := analytics.PreviousCycle(analytics.CurrentCycle(now, day), day)
	if closed.Start.Equal(c.lastClosed) {
		return false, nil
	}

	txs, err := c.ledgerRepo.List(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list transactions: %w", err)
	}

	summary := summarize(closed, analytics.BudgetUsages(txs, closed, cfg.CategoryBudgets))

	for _, u := range summary.Usages {
		c.logger.Info("Budget cycle closed",
			"cycle_start", closed.Start,
			"cycle_end", closed.End,
			"category", u.Category,
			"budget", u.Budget.String(),
			"spent", u.Spent.String(),
			"percentage", u.Percentage.StringFixed(2),
		)
	}

	event := shared.NewLedgerEvent(shared.EventCycleClosed, now)
	event.Cycle = &summary
	if err := c.producer.Publish(ctx, event.Key(), event); err != nil {
		c.logger.Error("Failed to publish cycle closed event", "cycle_start", closed.Start, "error", err)
	}

	c.lastClosed = closed.Start
	return true, nil
}

func summarize(cycle analytics.Cycle, usages []analytics.BudgetUsage) shared.CycleSummary {
	spends := make([]shared.CategorySpend, 0, len(usages))
	for _, u := range usages {
		spends = append(spends, shared.CategorySpend{
			Category:   u.Category,
			Budget:     u.Budget,
			Spent:      u.Spent,
			Remaining:  u.Remaining,
			Percentage: u.Percentage.Round(2),
		})
	}
	return shared.CycleSummary{
		Start:  cycle.Start.UTC(),
		End:    cycle.End.UTC(),
		Usages: spends,
	}
}
