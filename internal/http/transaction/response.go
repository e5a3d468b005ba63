package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yuchenwang/wallet-api/internal/transaction"
)

// amount serializes a decimal as a plain JSON number with two fractional
// digits, matching the DECIMAL(10,2) column regardless of the scale the
// value was created with.
type amount struct {
	decimal.Decimal
}

func (a amount) MarshalJSON() ([]byte, error) {
	return []byte(a.StringFixed(2)), nil
}

type transactionResponse struct {
	ID       int64  `json:"id"`
	UserID   string `json:"user_id"`
	Title    string `json:"title"`
	Amount   amount `json:"amount"`
	Category string `json:"category"`
	CreateAt string `json:"create_at"`
}

type summaryResponse struct {
	Balance  amount `json:"balance"`
	Income   amount `json:"income"`
	Expenses amount `json:"expenses"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:       tx.ID,
		UserID:   tx.UserID,
		Title:    tx.Title,
		Amount:   amount{tx.Amount},
		Category: tx.Category,
		CreateAt: tx.CreateAt.Format(time.DateOnly),
	}
}

// toResponseList always returns a non-nil slice so an empty result encodes
// as [] rather than null.
func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

func toSummaryResponse(sum transaction.Summary) summaryResponse {
	return summaryResponse{
		Balance:  amount{sum.Balance},
		Income:   amount{sum.Income},
		Expenses: amount{sum.Expenses},
	}
}
