// Package mongo provides the MongoDB implementation of the ledger store.
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/purse-ledger/internal/domain/ledger"
)

const (
	// TransactionsCollectionName is the name of the ledger collection in MongoDB
	TransactionsCollectionName = "transactions"
)

// transactionDocument is the stored form of a transaction. Amounts are Decimal128
// so sums computed by the database stay exact.
type transactionDocument struct {
	ID          string               `bson:"_id"`
	Amount      primitive.Decimal128 `bson:"amount"`
	Description string               `bson:"description"`
	Date        time.Time            `bson:"date"`
	Category    string               `bson:"category,omitempty"`
	IsSavings   bool                 `bson:"is_savings"`
	InsertedAt  time.Time            `bson:"inserted_at"`
}

func toDocument(tx ledger.Transaction, insertedAt time.Time) (transactionDocument, error) {
	amount, err := primitive.ParseDecimal128(tx.Amount.String())
	if err != nil {
		return transactionDocument{}, fmt.Errorf("amount %s does not fit Decimal128: %w", tx.Amount, err)
	}
	return transactionDocument{
		ID:          tx.ID,
		Amount:      amount,
		Description: tx.Description,
		Date:        tx.Date,
		Category:    tx.Category,
		IsSavings:   tx.IsSavings,
		InsertedAt:  insertedAt,
	}, nil
}

func (d transactionDocument) toTransaction() (ledger.Transaction, error) {
	amount, err := decimal.NewFromString(d.Amount.String())
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("transaction %s has invalid amount %s: %w", d.ID, d.Amount, err)
	}
	return ledger.Transaction{
		ID:          d.ID,
		Amount:      amount,
		Description: d.Description,
		Date:        d.Date.UTC(),
		Category:    d.Category,
		IsSavings:   d.IsSavings,
	}, nil
}

// LedgerRepository implements the ledger.Repository interface for MongoDB
type LedgerRepository struct {
	db     *mongo.Database
	logger *slog.Logger
	now    func() time.Time
}

// NewLedgerRepository creates a new MongoDB ledger repository
func NewLedgerRepository(logger *slog.Logger, db *mongo.Database) *LedgerRepository {
	return &LedgerRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (r *LedgerRepository) collection() *mongo.Collection {
	return r.db.Collection(TransactionsCollectionName)
}

// EnsureIndexes creates the index that backs insertion-order listing
func (r *LedgerRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "inserted_at", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("inserted_order"),
	})
	if err != nil {
		r.logger.Error("Failed to create ledger indexes", "error", err)
		return fmt.Errorf("failed to create ledger indexes: %w", err)
	}
	return nil
}

// Append stores a new transaction
func (r *LedgerRepository) Append(ctx context.Context, newTx ledger.NewTransaction) (ledger.Transaction, error) {
	now := r.now()
	tx := newTx.Build(now)

	doc, err := toDocument(tx, now.UTC())
	if err != nil {
		return ledger.Transaction{}, err
	}

	if _, err := r.collection().InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to append transaction",
			"transaction_id", tx.ID,
			"error", err)
		return ledger.Transaction{}, fmt.Errorf("failed to append transaction: %w", err)
	}

	return tx, nil
}

// List returns every transaction in insertion order. Ids are UUIDv7, so they break
// ties between transactions inserted within the same millisecond.
func (r *LedgerRepository) List(ctx context.Context) ([]ledger.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "inserted_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection().Find(ctx, bson.D{}, opts)
	if err != nil {
		r.logger.Error("Failed to list transactions", "error", err)
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []transactionDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode transactions", "error", err)
		return nil, ledger.ErrCorruptLedger{Source: "mongo:" + TransactionsCollectionName, Err: err}
	}

	txs := make([]ledger.Transaction, 0, len(docs))
	for _, doc := range docs {
		tx, err := doc.toTransaction()
		if err != nil {
			r.logger.Error("Stored transaction is invalid", "transaction_id", doc.ID, "error", err)
			return nil, ledger.ErrCorruptLedger{Source: "mongo:" + TransactionsCollectionName, Err: err}
		}
		txs = append(txs, tx)
	}

	return txs, nil
}

// Delete removes a transaction by id
func (r *LedgerRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Failed to delete transaction",
			"transaction_id", id,
			"error", err)
		return false, fmt.Errorf("failed to delete transaction: %w", err)
	}

	return result.DeletedCount > 0, nil
}

// Update sets only the fields present in update
func (r *LedgerRepository) Update(ctx context.Context, id string, update ledger.Update) (bool, error) {
	set := bson.D{}
	if update.Amount != nil {
		amount, err := primitive.ParseDecimal128(update.Amount.String())
		if err != nil {
			return false, fmt.Errorf("amount %s does not fit Decimal128: %w", update.Amount, err)
		}
		set = append(set, bson.E{Key: "amount", Value: amount})
	}
	if update.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *update.Description})
	}
	if update.Date != nil {
		set = append(set, bson.E{Key: "date", Value: update.Date.UTC()})
	}
	if update.Category != nil {
		set = append(set, bson.E{Key: "category", Value: *update.Category})
	}
	if update.IsSavings != nil {
		set = append(set, bson.E{Key: "is_savings", Value: *update.IsSavings})
	}

	filter := bson.M{"_id": id}
	if len(set) == 0 {
		count, err := r.collection().CountDocuments(ctx, filter)
		if err != nil {
			r.logger.Error("Failed to look up transaction", "transaction_id", id, "error", err)
			return false, fmt.Errorf("failed to look up transaction: %w", err)
		}
		return count > 0, nil
	}

	result, err := r.collection().UpdateOne(ctx, filter, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		r.logger.Error("Failed to update transaction",
			"transaction_id", id,
			"error", err)
		return false, fmt.Errorf("failed to update transaction: %w", err)
	}

	return result.MatchedCount > 0, nil
}

// Clear removes every transaction
func (r *LedgerRepository) Clear(ctx context.Context) error {
	result, err := r.collection().DeleteMany(ctx, bson.D{})
	if err != nil {
		r.logger.Error("Failed to clear transactions", "error", err)
		return fmt.Errorf("failed to clear transactions: %w", err)
	}
	r.logger.Info("Cleared ledger", "deleted", result.DeletedCount)
	return nil
}
