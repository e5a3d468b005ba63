package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yuchenwang/wallet-api/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransactionColumns = `id, user_id, title, amount, category, create_at`

func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	if err := s.Scan(&tx.ID, &tx.UserID, &tx.Title, &tx.Amount, &tx.Category, &tx.CreateAt); err != nil {
		return nil, err
	}

	return &tx, nil
}

// Summarize computes balance, income and expenses in a single statement. The
// COALESCE keeps every aggregate at 0 when the user has no rows.
func (s *Store) Summarize(ctx context.Context, userID string) (transaction.Summary, error) {
	query := `
		SELECT
			COALESCE(SUM(amount), 0) AS balance,
			COALESCE(SUM(amount) FILTER (WHERE amount > 0), 0) AS income,
			COALESCE(SUM(amount) FILTER (WHERE amount < 0), 0) AS expenses
		FROM transactions
		WHERE user_id = $1
	`

	var sum transaction.Summary
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&sum.Balance, &sum.Income, &sum.Expenses); err != nil {
		return transaction.Summary{}, fmt.Errorf("summarizing transactions: %w", err)
	}

	return sum, nil
}

func (s *Store) ListTransactions(ctx context.Context, userID string) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY create_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, title, amount, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, create_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.UserID,
		tx.Title,
		tx.Amount,
		tx.Category,
	).Scan(&tx.ID, &tx.CreateAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

// DeleteTransaction removes one row by primary key. A miss is reported from
// the affected-row count, not from the driver erroring.
func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if affected == 0 {
		return transaction.ErrNotFound
	}

	return nil
}
