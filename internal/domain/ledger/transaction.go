// Package ledger defines the transaction record and the store contract shared by
// every ledger backend.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Uncategorized is how consumers display a transaction without a category.
// It is never written to storage.
const Uncategorized = "Uncategorized"

// Transaction is a signed monetary movement. Positive amounts are income or
// deposits, negative amounts are expenses.
type Transaction struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category,omitempty"`
	IsSavings   bool            `json:"isSavings,omitempty"`
}

// DisplayCategory returns the category, or Uncategorized when none is set
func (t Transaction) DisplayCategory() string {
	if t.Category == "" {
		return Uncategorized
	}
	return t.Category
}

// IsExpense reports whether the transaction counts as budget spend
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative() && !t.IsSavings
}

// IsSavingsDeposit reports whether the transaction contributes to the savings pool
func (t Transaction) IsSavingsDeposit() bool {
	return t.IsSavings && t.Amount.IsPositive()
}

// NewTransaction carries the caller-supplied fields of a transaction to append
type NewTransaction struct {
	Amount      decimal.Decimal
	Description string
	Category    string
	IsSavings   bool
	Date        *time.Time // nil means now
}

// Build assigns a fresh id and timestamp. Ids are UUIDv7 so they sort by creation time.
func (n NewTransaction) Build(now time.Time) Transaction {
	date := now
	if n.Date != nil {
		date = *n.Date
	}
	return Transaction{
		ID:          NewID(),
		Amount:      n.Amount,
		Description: n.Description,
		Date:        date.UTC(),
		Category:    n.Category,
		IsSavings:   n.IsSavings,
	}
}

// NewID returns a time-ordered unique transaction id
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Update is a partial edit. A nil field is left unchanged; a pointer to a zero
// value sets that zero value, so Category: ptr("") clears the category.
type Update struct {
	Amount      *decimal.Decimal
	Description *string
	Date        *time.Time
	Category    *string
	IsSavings   *bool
}

// IsEmpty reports whether the update would change nothing
func (u Update) IsEmpty() bool {
	return u.Amount == nil && u.Description == nil && u.Date == nil && u.Category == nil && u.IsSavings == nil
}

// Apply returns a copy of t with the provided fields replaced. The id never changes.
func (u Update) Apply(t Transaction) Transaction {
	if u.Amount != nil {
		t.Amount = *u.Amount
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Date != nil {
		t.Date = u.Date.UTC()
	}
	if u.Category != nil {
		t.Category = *u.Category
	}
	if u.IsSavings != nil {
		t.IsSavings = *u.IsSavings
	}
	return t
}
