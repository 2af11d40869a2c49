package ledger

import (
	"context"
)

// Repository is the Ledger Store: an insertion-ordered collection of transactions keyed by id.
// Not-found on Delete and Update is reported through the boolean, not as an error;
// errors are reserved for storage failures.
type Repository interface {
	Append(ctx context.Context, tx NewTransaction) (Transaction, error)
	List(ctx context.Context) ([]Transaction, error)
	Delete(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, id string, update Update) (bool, error)
	Clear(ctx context.Context) error
}

// Resetter is implemented by stores that can replace the whole ledger with a single
// transaction atomically. Callers fall back to Clear followed by Append otherwise.
type Resetter interface {
	Reset(ctx context.Context, tx NewTransaction) (Transaction, error)
}

// ErrCorruptLedger indicates persisted ledger data exists but cannot be decoded
type ErrCorruptLedger struct {
	Source string
	Err    error
}

func (e ErrCorruptLedger) Error() string {
	return "corrupt ledger data in " + e.Source + ": " + e.Err.Error()
}

// Unwrap exposes the underlying decode error
func (e ErrCorruptLedger) Unwrap() error {
	return e.Err
}

// Is matches any ErrCorruptLedger when the target has no Source,
// otherwise only one for the same Source.
func (e ErrCorruptLedger) Is(target error) bool {
	t, ok := target.(ErrCorruptLedger)
	if !ok {
		return false
	}
	if t.Source == "" {
		return true
	}
	return e.Source == t.Source
}
