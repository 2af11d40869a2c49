// Package jsonfile stores the ledger in a single JSON document on local disk,
// in the format {"transactions": [...]}.
//
// Every mutation reads the whole file, applies the change and rewrites it through a
// temporary file renamed over the original. A mutex serializes access within the
// process; nothing guards against a second process writing the same file.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/purse-ledger/internal/domain/ledger"
	"github.com/purse-ledger/internal/platform/persistence"
)

type ledgerDocument struct {
	Transactions []transactionRecord `json:"transactions"`
}

// transactionRecord keeps amounts as JSON numbers so files stay compatible with
// ledgers written by earlier purse versions
type transactionRecord struct {
	ID          string      `json:"id"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date"`
	Category    string      `json:"category,omitempty"`
	IsSavings   bool        `json:"isSavings,omitempty"`
}

func toRecord(tx ledger.Transaction) transactionRecord {
	return transactionRecord{
		ID:          tx.ID,
		Amount:      json.Number(tx.Amount.String()),
		Description: tx.Description,
		Date:        tx.Date.UTC(),
		Category:    tx.Category,
		IsSavings:   tx.IsSavings,
	}
}

func (r transactionRecord) toTransaction() (ledger.Transaction, error) {
	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("transaction %s has invalid amount %q: %w", r.ID, r.Amount, err)
	}
	return ledger.Transaction{
		ID:          r.ID,
		Amount:      amount,
		Description: r.Description,
		Date:        r.Date.UTC(),
		Category:    r.Category,
		IsSavings:   r.IsSavings,
	}, nil
}

// LedgerRepository implements ledger.Repository over a JSON file
type LedgerRepository struct {
	path   string
	logger *slog.Logger
	now    func() time.Time
	mu     sync.Mutex
}

// NewLedgerRepository creates a repository for the file at path. The file is created
// on the first mutation.
func NewLedgerRepository(logger *slog.Logger, path string) *LedgerRepository {
	return &LedgerRepository{
		path:   path,
		logger: logger,
		now:    time.Now,
	}
}

// Append adds a transaction at the end of the ledger
func (r *LedgerRepository) Append(ctx context.Context, newTx ledger.NewTransaction) (ledger.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return ledger.Transaction{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	txs, err := r.read()
	if err != nil {
		return ledger.Transaction{}, err
	}

	tx := newTx.Build(r.now())
	txs = append(txs, tx)
	if err := r.write(txs); err != nil {
		r.logger.Error("Failed to append transaction", "transaction_id", tx.ID, "path", r.path, "error", err)
		return ledger.Transaction{}, err
	}
	return tx, nil
}

// List returns every transaction in insertion order
func (r *LedgerRepository) List(ctx context.Context) ([]ledger.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.read()
}

// Delete removes the transaction with the given id. It reports false, and leaves the
// file untouched, when no transaction matched.
func (r *LedgerRepository) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	txs, err := r.read()
	if err != nil {
		return false, err
	}

	kept := txs[:0]
	for _, tx := range txs {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	if len(kept) == len(txs) {
		return false, nil
	}

	if err := r.write(kept); err != nil {
		r.logger.Error("Failed to delete transaction", "transaction_id", id, "path", r.path, "error", err)
		return false, err
	}
	return true, nil
}

// Update applies a partial edit to the transaction with the given id
func (r *LedgerRepository) Update(ctx context.Context, id string, update ledger.Update) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	txs, err := r.read()
	if err != nil {
		return false, err
	}

	idx := -1
	for i := range txs {
		if txs[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	txs[idx] = update.Apply(txs[idx])
	if err := r.write(txs); err != nil {
		r.logger.Error("Failed to update transaction", "transaction_id", id, "path", r.path, "error", err)
		return false, err
	}
	return true, nil
}

// Clear removes every transaction
func (r *LedgerRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.write(nil); err != nil {
		r.logger.Error("Failed to clear ledger", "path", r.path, "error", err)
		return err
	}
	return nil
}

// Reset replaces the whole ledger with a single transaction in one write
func (r *LedgerRepository) Reset(ctx context.Context, newTx ledger.NewTransaction) (ledger.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return ledger.Transaction{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := newTx.Build(r.now())
	if err := r.write([]ledger.Transaction{tx}); err != nil {
		r.logger.Error("Failed to reset ledger", "transaction_id", tx.ID, "path", r.path, "error", err)
		return ledger.Transaction{}, err
	}
	return tx, nil
}

// read loads the ledger. A missing or blank file is an empty ledger; anything that
// exists but does not decode is reported as ledger.ErrCorruptLedger.
func (r *LedgerRepository) read() ([]ledger.Transaction, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []ledger.Transaction{}, nil
		}
		r.logger.Error("Failed to read ledger file", "path", r.path, "error", err)
		return nil, fmt.Errorf("failed to read ledger file %s: %w", r.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []ledger.Transaction{}, nil
	}

	var doc ledgerDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		r.logger.Error("Ledger file is not valid JSON", "path", r.path, "error", err)
		return nil, ledger.ErrCorruptLedger{Source: r.path, Err: err}
	}

	txs := make([]ledger.Transaction, 0, len(doc.Transactions))
	for _, rec := range doc.Transactions {
		tx, err := rec.toTransaction()
		if err != nil {
			r.logger.Error("Ledger file holds an invalid transaction", "path", r.path, "transaction_id", rec.ID, "error", err)
			return nil, ledger.ErrCorruptLedger{Source: r.path, Err: err}
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func (r *LedgerRepository) write(txs []ledger.Transaction) error {
	doc := ledgerDocument{Transactions: make([]transactionRecord, 0, len(txs))}
	for _, tx := range txs {
		doc.Transactions = append(doc.Transactions, toRecord(tx))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	return persistence.WriteFileAtomic(r.path, data, 0o644)
}
