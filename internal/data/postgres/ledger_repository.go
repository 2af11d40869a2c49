// Package postgres provides the PostgreSQL implementation of the ledger store.
// Insertion order is kept by the seq column; amounts are NUMERIC and travel as
// decimal strings so no precision is lost on either side.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/purse-ledger/internal/domain/ledger"
	"github.com/purse-ledger/internal/platform/persistence"
)

// LedgerRepository implements the ledger.Repository interface for PostgreSQL
type LedgerRepository struct {
	querier  persistence.Querier    // Can be *pgxpool.Pool or pgx.Tx
	beginner persistence.TxBeginner // nil when already bound to a transaction
	logger   *slog.Logger
	now      func() time.Time
}

// NewLedgerRepository creates a new PostgreSQL ledger repository backed by the pool
func NewLedgerRepository(logger *slog.Logger, db *persistence.PostgresDB) *LedgerRepository {
	return &LedgerRepository{
		querier:  db.Pool(),
		beginner: db.Pool(),
		logger:   logger,
		now:      time.Now,
	}
}

// WithTx returns a repository that runs every statement inside tx
func (r *LedgerRepository) WithTx(tx pgx.Tx) *LedgerRepository {
	return &LedgerRepository{
		querier: tx,
		logger:  r.logger,
		now:     r.now,
	}
}

// Reset clears the ledger and inserts tx in one database transaction
func (r *LedgerRepository) Reset(ctx context.Context, newTx ledger.NewTransaction) (ledger.Transaction, error) {
	if r.beginner == nil {
		if err := r.Clear(ctx); err != nil {
			return ledger.Transaction{}, err
		}
		return r.Append(ctx, newTx)
	}

	var created ledger.Transaction
	err := persistence.RunInTx(ctx, r.beginner, func(tx pgx.Tx) error {
		txRepo := r.WithTx(tx)
		if err := txRepo.Clear(ctx); err != nil {
			return err
		}
		var err error
		created, err = txRepo.Append(ctx, newTx)
		return err
	})
	if err != nil {
		r.logger.Error("Failed to reset ledger", "error", err)
		return ledger.Transaction{}, fmt.Errorf("failed to reset ledger: %w", err)
	}
	return created, nil
}

// Append inserts a new transaction at the end of the ledger
func (r *LedgerRepository) Append(ctx context.Context, newTx ledger.NewTransaction) (ledger.Transaction, error) {
	tx := newTx.Build(r.now())

	query := `
		INSERT INTO transactions (id, amount, description, date, category, is_savings)
		VALUES ($1, $2::numeric, $3, $4, $5, $6)
	`

	_, err := r.querier.Exec(ctx, query,
		tx.ID,
		tx.Amount.String(),
		tx.Description,
		tx.Date,
		tx.Category,
		tx.IsSavings,
	)
	if err != nil {
		r.logger.Error("Failed to append transaction", "transaction_id", tx.ID, "error", err)
		return ledger.Transaction{}, fmt.Errorf("failed to append transaction: %w", err)
	}

	return tx, nil
}

// List returns every transaction in insertion order
func (r *LedgerRepository) List(ctx context.Context) ([]ledger.Transaction, error) {
	query := `
		SELECT id, amount::text, description, date, category, is_savings
		FROM transactions
		ORDER BY seq
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list transactions", "error", err)
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]ledger.Transaction, 0)
	for rows.Next() {
		var (
			tx     ledger.Transaction
			amount string
		)
		if err := rows.Scan(&tx.ID, &amount, &tx.Description, &tx.Date, &tx.Category, &tx.IsSavings); err != nil {
			r.logger.Error("Failed to scan transaction row", "error", err)
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		tx.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			r.logger.Error("Stored transaction has an invalid amount", "transaction_id", tx.ID, "amount", amount, "error", err)
			return nil, ledger.ErrCorruptLedger{Source: "postgres", Err: err}
		}
		tx.Date = tx.Date.UTC()
		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating transaction rows", "error", err)
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return txs, nil
}

// Delete removes a transaction by id and reports whether a row was removed
func (r *LedgerRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM transactions WHERE id = $1`

	tag, err := r.querier.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete transaction", "transaction_id", id, "error", err)
		return false, fmt.Errorf("failed to delete transaction: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Update applies a partial edit in a single statement. NULL parameters keep the
// stored value.
func (r *LedgerRepository) Update(ctx context.Context, id string, update ledger.Update) (bool, error) {
	query := `
		UPDATE transactions SET
			amount = COALESCE($2::numeric, amount),
			description = COALESCE($3, description),
			date = COALESCE($4, date),
			category = COALESCE($5, category),
			is_savings = COALESCE($6, is_savings)
		WHERE id = $1
	`

	var amount *string
	if update.Amount != nil {
		s := update.Amount.String()
		amount = &s
	}
	var date *time.Time
	if update.Date != nil {
		d := update.Date.UTC()
		date = &d
	}

	tag, err := r.querier.Exec(ctx, query,
		id,
		amount,
		update.Description,
		date,
		update.Category,
		update.IsSavings,
	)
	if err != nil {
		r.logger.Error("Failed to update transaction", "transaction_id", id, "error", err)
		return false, fmt.Errorf("failed to update transaction: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Clear removes every transaction and restarts the insertion sequence
func (r *LedgerRepository) Clear(ctx context.Context) error {
	query := `TRUNCATE TABLE transactions RESTART IDENTITY`

	if _, err := r.querier.Exec(ctx, query); err != nil {
		r.logger.Error("Failed to clear transactions", "error", err)
		return fmt.Errorf("failed to clear transactions: %w", err)
	}

	return nil
}
