package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/benx421/simplebank/internal/db"
	"github.com/benx421/simplebank/internal/models"
	"github.com/google/uuid"
)

// TransactionRepository defines the interface for ledger access
type TransactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error
	ListByCardNumber(ctx context.Context, cardNumber string, limit int) ([]models.Transaction, error)
}

type transactionRepository struct {
	q db.Querier
}

// NewTransactionRepository creates a new TransactionRepository on the pool or a transaction
func NewTransactionRepository(q db.Querier) TransactionRepository {
	return &transactionRepository{q: q}
}

// Create appends a ledger entry, assigning ID and CreatedAt when unset
func (r *transactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO card_transactions (id, card_number, counterparty, type, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		txn.ID,
		txn.CardNumber,
		txn.Counterparty,
		txn.Type,
		txn.Amount,
		txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// ListByCardNumber returns the most recent ledger entries for a card, newest first
func (r *transactionRepository) ListByCardNumber(ctx context.Context, cardNumber string, limit int) ([]models.Transaction, error) {
	query := `
		SELECT id, card_number, counterparty, type, amount, created_at
		FROM card_transactions
		WHERE card_number = $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`

	rows, err := r.q.QueryContext(ctx, query, cardNumber, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer func() {
		_ = rows.Close() //nolint:errcheck // close error is not critical in defer
	}()

	var txns []models.Transaction
	for rows.Next() {
		var txn models.Transaction
		if err := rows.Scan(
			&txn.ID,
			&txn.CardNumber,
			&txn.Counterparty,
			&txn.Type,
			&txn.Amount,
			&txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txns, nil
}
