package transaction

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	Summarize(ctx context.Context, userID string) (Summary, error)
	ListTransactions(ctx context.Context, userID string) ([]*Transaction, error)
	CreateTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID   string
	Title    string
	Amount   *decimal.Decimal // nil means absent; zero is a valid amount
	Category string
}

// Summarize reports balance, income and expenses for a user. An unknown or
// empty user id yields a zero-valued summary, not an error.
func (s *Service) Summarize(ctx context.Context, userID string) (Summary, error) {
	return s.repo.Summarize(ctx, userID)
}

// List returns the user's transactions, most recent first.
func (s *Service) List(ctx context.Context, userID string) ([]*Transaction, error) {
	if userID == "" {
		return nil, newValidationError("missing user id")
	}

	return s.repo.ListTransactions(ctx, userID)
}

// Create inserts one transaction and returns it with the generated id and
// create date filled in.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if params.UserID == "" || params.Title == "" || params.Category == "" || params.Amount == nil {
		return nil, newValidationError("missing required fields")
	}

	tx := &Transaction{
		UserID:   params.UserID,
		Title:    params.Title,
		Amount:   *params.Amount,
		Category: params.Category,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// DeleteByID removes one transaction. Returns ErrNotFound when no row with
// that id exists.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	return s.repo.DeleteTransaction(ctx, id)
}

// ParseID coerces a path value into a transaction id. The two failure modes
// stay distinct so callers can report them separately.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, newValidationError("missing or non-numeric id")
	}

	if id <= 0 {
		return 0, newValidationError("id must be positive")
	}

	return id, nil
}
