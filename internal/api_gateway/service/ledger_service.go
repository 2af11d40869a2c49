package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/purse-ledger/internal/domain/ledger"
	"github.com/purse-ledger/internal/domain/settings"
	"github.com/purse-ledger/internal/domain/shared"
	"github.com/purse-ledger/internal/platform/messaging/producers"
	"github.com/shopspring/decimal"
)

// Descriptions and category of the system-generated transactions
const (
	InitialBalanceDescription    = "Initial Balance"
	BalanceAdjustmentDescription = "Balance Adjustment"
	SavingsDescription           = "Savings"
	SystemCategory               = "System"
	SavingsCategory              = "Savings"
)

// LedgerServiceImpl implements the LedgerService interface
type LedgerServiceImpl struct {
	ledgerRepo   ledger.Repository
	settingsRepo settings.Repository
	producer     producers.MessagePublisher
	logger       *slog.Logger
	now          func() time.Time
}

// NewLedgerService creates a new ledger service
func NewLedgerService(logger *slog.Logger, ledgerRepo ledger.Repository, settingsRepo settings.Repository, producer producers.MessagePublisher) LedgerService {
	return &LedgerServiceImpl{
		ledgerRepo:   ledgerRepo,
		settingsRepo: settingsRepo,
		producer:     producer,
		logger:       logger,
		now:          time.Now,
	}
}

// RecordTransaction appends a transaction. A category that is not configured is
// accepted and only logged.
func (s *LedgerServiceImpl) RecordTransaction(ctx context.Context, newTx ledger.NewTransaction) (ledger.Transaction, error) {
	s.warnUnknownCategory(ctx, newTx.Category)

	tx, err := s.ledgerRepo.Append(ctx, newTx)
	if err != nil {
		s.logger.Error("Failed to record transaction", "error", err)
		return ledger.Transaction{}, err
	}

	s.logger.Info("Transaction recorded",
		"transaction_id", tx.ID,
		"amount", tx.Amount.String(),
		"category", tx.Category,
		"is_savings", tx.IsSavings,
	)
	s.publishTransaction(ctx, shared.EventTransactionRecorded, tx)
	return tx, nil
}

func (s *LedgerServiceImpl) ListTransactions(ctx context.Context) ([]ledger.Transaction, error) {
	txs, err := s.ledgerRepo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list transactions", "error", err)
		return nil, err
	}
	return txs, nil
}

// UpdateTransaction applies a partial update. Returns nil if not found
func (s *LedgerServiceImpl) UpdateTransaction(ctx context.Context, id string, update ledger.Update) (*ledger.Transaction, error) {
	if update.IsEmpty() {
		return nil, ValidationError{Field: "update", Message: "must change at least one field"}
	}
	if update.Category != nil {
		s.warnUnknownCategory(ctx, *update.Category)
	}

	found, err := s.ledgerRepo.Update(ctx, id, update)
	if err != nil {
		s.logger.Error("Failed to update transaction", "transaction_id", id, "error", err)
		return nil, err
	}
	if !found {
		s.logger.Info("Transaction not found", "transaction_id", id)
		return nil, nil
	}

	updated, err := s.findTransaction(ctx, id)
	if err != nil {
		s.logger.Error("Failed to read updated transaction", "transaction_id", id, "error", err)
		return nil, err
	}
	if updated == nil {
		// deleted concurrently after the update
		return nil, nil
	}

	s.logger.Info("Transaction updated", "transaction_id", id)
	s.publishTransaction(ctx, shared.EventTransactionUpdated, *updated)
	return updated, nil
}

func (s *LedgerServiceImpl) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	found, err := s.ledgerRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Failed to delete transaction", "transaction_id", id, "error", err)
		return false, err
	}
	if !found {
		s.logger.Info("Transaction not found", "transaction_id", id)
		return false, nil
	}

	s.logger.Info("Transaction deleted", "transaction_id", id)
	event := shared.NewLedgerEvent(shared.EventTransactionDeleted, s.now())
	event.TransactionID = id
	s.publish(ctx, event)
	return true, nil
}

// SetBalance clears the ledger and records amount as the only transaction.
// Stores implementing ledger.Resetter do both in one step.
func (s *LedgerServiceImpl) SetBalance(ctx context.Context, amount decimal.Decimal) (ledger.Transaction, error) {
	initial := ledger.NewTransaction{
		Amount:      amount,
		Description: InitialBalanceDescription,
		Category:    SystemCategory,
	}

	var (
		tx  ledger.Transaction
		err error
	)
	if resetter, ok := s.ledgerRepo.(ledger.Resetter); ok {
		tx, err = resetter.Reset(ctx, initial)
		if err != nil {
			s.logger.Error("Failed to reset ledger", "error", err)
			return ledger.Transaction{}, err
		}
	} else {
		if err = s.ledgerRepo.Clear(ctx); err != nil {
			s.logger.Error("Failed to clear ledger", "error", err)
			return ledger.Transaction{}, err
		}
		tx, err = s.ledgerRepo.Append(ctx, initial)
		if err != nil {
			s.logger.Error("Failed to record initial balance after clearing ledger", "error", err)
			return ledger.Transaction{}, err
		}
	}

	s.logger.Info("Balance set", "transaction_id", tx.ID, "amount", tx.Amount.String())
	s.publish(ctx, shared.NewLedgerEvent(shared.EventLedgerCleared, s.now()))
	s.publishTransaction(ctx, shared.EventTransactionRecorded, tx)
	return tx, nil
}

// AdjustBalance records amount under the System category
func (s *LedgerServiceImpl) AdjustBalance(ctx context.Context, amount decimal.Decimal, description string) (ledger.Transaction, error) {
	if amount.IsZero() {
		return ledger.Transaction{}, ValidationError{Field: "amount", Message: "must not be zero"}
	}
	if description == "" {
		description = BalanceAdjustmentDescription
	}
	return s.RecordTransaction(ctx, ledger.NewTransaction{
		Amount:      amount,
		Description: description,
		Category:    SystemCategory,
	})
}

// DepositSavings records a savings deposit under the Savings category
func (s *LedgerServiceImpl) DepositSavings(ctx context.Context, amount decimal.Decimal, description string) (ledger.Transaction, error) {
	if !amount.IsPositive() {
		return ledger.Transaction{}, ValidationError{Field: "amount", Message: "must be positive"}
	}
	if description == "" {
		description = SavingsDescription
	}
	return s.RecordTransaction(ctx, ledger.NewTransaction{
		Amount:      amount,
		Description: description,
		Category:    SavingsCategory,
		IsSavings:   true,
	})
}

func (s *LedgerServiceImpl) findTransaction(ctx context.Context, id string) (*ledger.Transaction, error) {
	txs, err := s.ledgerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range txs {
		if txs[i].ID == id {
			return &txs[i], nil
		}
	}
	return nil, nil
}

func (s *LedgerServiceImpl) warnUnknownCategory(ctx context.Context, category string) {
	if category == "" || category == SystemCategory || category == SavingsCategory {
		return
	}
	cfg, err := s.settingsRepo.Load(ctx)
	if err != nil {
		s.logger.Warn("Could not load settings to check category", "category", category, "error", err)
		return
	}
	if !cfg.HasCategory(category) {
		s.logger.Warn("Category is not configured", "category", category)
	}
}

func (s *LedgerServiceImpl) publishTransaction(ctx context.Context, eventType shared.LedgerEventType, tx ledger.Transaction) {
	event := shared.NewLedgerEvent(eventType, s.now())
	event.TransactionID = tx.ID
	event.Transaction = &shared.TransactionPayload{
		ID:          tx.ID,
		Amount:      tx.Amount,
		Description: tx.Description,
		Date:        tx.Date,
		Category:    tx.Category,
		IsSavings:   tx.IsSavings,
	}
	s.publish(ctx, event)
}

// publish logs failures and never fails the caller
func (s *LedgerServiceImpl) publish(ctx context.Context, event shared.LedgerEvent) {
	event.CorrelationID = shared.CorrelationIDFromContext(ctx)
	if err := s.producer.Publish(ctx, event.Key(), event); err != nil {
		s.logger.Error("Failed to publish ledger event",
			"event_type", string(event.Type),
			"transaction_id", event.TransactionID,
			"error", err,
		)
	}
}
