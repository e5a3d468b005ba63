package transaction

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single ledger entry. The sign of Amount encodes the kind:
// positive amounts are income, negative amounts are expenses.
type Transaction struct {
	ID       int64
	UserID   string
	Title    string
	Amount   decimal.Decimal
	Category string
	CreateAt time.Time // DATE precision, assigned by the store on insert
}

// Summary aggregates a user's ledger. All fields are zero when the user has
// no transactions.
type Summary struct {
	Balance  decimal.Decimal
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// ErrNotFound reports a delete that matched no row.
var ErrNotFound = errors.New("transaction not found")

// ValidationError reports caller input that fails a precondition. Handlers
// surface it as a 400 with the message verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func newValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
