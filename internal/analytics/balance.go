package analytics

import (
	"slices"
	"time"

	"github.com/purse-ledger/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// Balance is the signed sum of every transaction
func Balance(txs []ledger.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total
}

// BalancePoint is the running balance right after a transaction
type BalancePoint struct {
	TransactionID string          `json:"transactionId"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Balance       decimal.Decimal `json:"balance"`
}

// BalanceHistory replays the ledger in date order. Transactions sharing a timestamp
// keep their insertion order.
func BalanceHistory(txs []ledger.Transaction) []BalancePoint {
	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b ledger.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	points := make([]BalancePoint, 0, len(sorted))
	running := decimal.Zero
	for _, tx := range sorted {
		running = running.Add(tx.Amount)
		points = append(points, BalancePoint{
			TransactionID: tx.ID,
			Date:          tx.Date,
			Amount:        tx.Amount,
			Balance:       running,
		})
	}
	return points
}
