// Package repository provides data access layer implementations for the card store.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/benx421/simplebank/internal/db"
	"github.com/benx421/simplebank/internal/models"
	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

// AccountRepository defines the interface for card row access
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	RecordSequence(ctx context.Context, sequenceID int64) error
	FindBalance(ctx context.Context, cardNumber, pin string) (int64, error)
	MaxSequenceID(ctx context.Context) (int64, bool, error)
	Exists(ctx context.Context, cardNumber string) (bool, error)
	Delete(ctx context.Context, cardNumber, pin string) (int64, error)
	AddIncome(ctx context.Context, cardNumber, pin string, amount int64) (bool, error)
	AdjustBalance(ctx context.Context, cardNumber string, delta int64) error
	LockForUpdate(ctx context.Context, cardNumbers ...string) (int, error)
}

// accountRepository implements AccountRepository
type accountRepository struct {
	q db.Querier
}

// NewAccountRepository creates a new AccountRepository on the pool or a transaction
func NewAccountRepository(q db.Querier) AccountRepository {
	return &accountRepository{q: q}
}

// Create inserts a new card row
func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO card (sequence_id, number, pin, balance)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.q.ExecContext(ctx, query,
		account.SequenceID,
		account.CardNumber,
		account.PIN,
		account.Balance,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return fmt.Errorf("card %s: %w", account.CardNumber, models.ErrDuplicateAccount)
		}
		return fmt.Errorf("failed to insert card: %w", err)
	}

	return nil
}

// RecordSequence raises the persisted sequence high-water mark so an id is
// never handed out twice, even after its card is deleted.
func (r *accountRepository) RecordSequence(ctx context.Context, sequenceID int64) error {
	query := `
		INSERT INTO card_sequence (id, last_value)
		VALUES (TRUE, $1)
		ON CONFLICT (id) DO UPDATE
		SET last_value = GREATEST(card_sequence.last_value, EXCLUDED.last_value)
	`

	if _, err := r.q.ExecContext(ctx, query, sequenceID); err != nil {
		return fmt.Errorf("failed to record sequence: %w", err)
	}

	return nil
}

// FindBalance returns the balance of the card matching both number and PIN
func (r *accountRepository) FindBalance(ctx context.Context, cardNumber, pin string) (int64, error) {
	query := `SELECT balance FROM card WHERE number = $1 AND pin = $2`

	var balance int64
	err := r.q.QueryRowContext(ctx, query, cardNumber, pin).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, models.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to find balance: %w", err)
	}

	return balance, nil
}

// MaxSequenceID returns the highest sequence id ever issued, taking deleted
// cards into account. The boolean is false when none has been issued.
func (r *accountRepository) MaxSequenceID(ctx context.Context) (int64, bool, error) {
	query := `
		SELECT GREATEST(
			(SELECT MAX(sequence_id) FROM card),
			(SELECT last_value FROM card_sequence WHERE id)
		)
	`

	var maxID sql.NullInt64
	if err := r.q.QueryRowContext(ctx, query).Scan(&maxID); err != nil {
		return 0, false, fmt.Errorf("failed to read max sequence id: %w", err)
	}

	return maxID.Int64, maxID.Valid, nil
}

// Exists reports whether a card with the given number exists, ignoring PIN
func (r *accountRepository) Exists(ctx context.Context, cardNumber string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM card WHERE number = $1)`, cardNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check card existence: %w", err)
	}

	return exists, nil
}

// Delete removes the card matching number and PIN and returns the number of rows removed
func (r *accountRepository) Delete(ctx context.Context, cardNumber, pin string) (int64, error) {
	result, err := r.q.ExecContext(ctx, `DELETE FROM card WHERE number = $1 AND pin = $2`, cardNumber, pin)
	if err != nil {
		return 0, fmt.Errorf("failed to delete card: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

// AddIncome adds amount to the card matching number and PIN. It reports
// whether a row was updated.
func (r *accountRepository) AddIncome(ctx context.Context, cardNumber, pin string, amount int64) (bool, error) {
	query := `
		UPDATE card
		SET balance = balance + $3
		WHERE number = $1 AND pin = $2
	`

	result, err := r.q.ExecContext(ctx, query, cardNumber, pin, amount)
	if err != nil {
		return false, fmt.Errorf("failed to add income: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// AdjustBalance atomically adds delta to the balance of the given card
func (r *accountRepository) AdjustBalance(ctx context.Context, cardNumber string, delta int64) error {
	query := `
		UPDATE card
		SET balance = balance + $2
		WHERE number = $1
	`

	result, err := r.q.ExecContext(ctx, query, cardNumber, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust card balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("card %s: %w", cardNumber, models.ErrNotFound)
	}

	return nil
}

// LockForUpdate takes row locks on the given cards in card-number order and
// returns how many rows were locked. Only meaningful inside a transaction.
func (r *accountRepository) LockForUpdate(ctx context.Context, cardNumbers ...string) (int, error) {
	query := `
		SELECT number
		FROM card
		WHERE number = ANY($1)
		ORDER BY number
		FOR UPDATE
	`

	rows, err := r.q.QueryContext(ctx, query, pq.Array(cardNumbers))
	if err != nil {
		return 0, fmt.Errorf("failed to lock cards: %w", err)
	}
	defer func() {
		_ = rows.Close() //nolint:errcheck // close error is not critical in defer
	}()

	locked := 0
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return 0, fmt.Errorf("failed to scan locked card: %w", err)
		}
		locked++
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to iterate locked cards: %w", err)
	}

	return locked, nil
}
