// Package shared holds the message types published to Kafka by the ledger service.
package shared

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEventType defines the kinds of ledger events
type LedgerEventType string

const (
	EventTransactionRecorded LedgerEventType = "TRANSACTION_RECORDED"
	EventTransactionUpdated  LedgerEventType = "TRANSACTION_UPDATED"
	EventTransactionDeleted  LedgerEventType = "TRANSACTION_DELETED"
	EventLedgerCleared       LedgerEventType = "LEDGER_CLEARED"
	EventCycleClosed         LedgerEventType = "CYCLE_CLOSED"
)

// TransactionPayload mirrors a ledger transaction on the wire
type TransactionPayload struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category,omitempty"`
	IsSavings   bool            `json:"is_savings"`
}

// CategorySpend is one category's usage in a closed budget cycle
type CategorySpend struct {
	Category   string          `json:"category"`
	Budget     decimal.Decimal `json:"budget"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
}

// CycleSummary describes a budget cycle that has ended
type CycleSummary struct {
	Start  time.Time       `json:"start"`
	End    time.Time       `json:"end"`
	Usages []CategorySpend `json:"usages"`
}

// LedgerEvent defines a Kafka message describing a ledger change
type LedgerEvent struct {
	EventID       uuid.UUID           `json:"event_id"`
	Type          LedgerEventType     `json:"type"`
	TransactionID string              `json:"transaction_id,omitempty"`
	Transaction   *TransactionPayload `json:"transaction,omitempty"`
	Cycle         *CycleSummary       `json:"cycle,omitempty"`
	CorrelationID string              `json:"correlation_id,omitempty"`
	OccurredAt    time.Time           `json:"occurred_at"`
}

// NewLedgerEvent stamps an event with a fresh id and the given time
func NewLedgerEvent(eventType LedgerEventType, occurredAt time.Time) LedgerEvent {
	return LedgerEvent{
		EventID:    uuid.New(),
		Type:       eventType,
		OccurredAt: occurredAt.UTC(),
	}
}

// Key is the partition key: the transaction id, or the event type for ledger-wide events
func (e LedgerEvent) Key() string {
	if e.TransactionID != "" {
		return e.TransactionID
	}
	return string(e.Type)
}
