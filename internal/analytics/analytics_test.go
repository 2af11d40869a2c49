package analytics

import (
	"testing"
	"time"

	"github.com/purse-ledger/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func txAt(id string, amount string, category string, date time.Time) ledger.Transaction {
	return ledger.Transaction{
		ID:          id,
		Amount:      decimal.RequireFromString(amount),
		Description: id,
		Category:    category,
		Date:        date,
	}
}

func savingsAt(id string, amount string, date time.Time) ledger.Transaction {
	tx := txAt(id, amount, "Savings", date)
	tx.IsSavings = true
	return tx
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s %v", expected, actual.String(), msgAndArgs)
}
