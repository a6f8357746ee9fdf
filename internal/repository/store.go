package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/benx421/simplebank/internal/db"
	"github.com/benx421/simplebank/internal/models"
)

// Store is the persistence contract the banking service depends on.
type Store interface {
	Insert(ctx context.Context, account *models.Account) error
	LookupBalance(ctx context.Context, cardNumber, pin string) (int64, error)
	MaxSequenceID(ctx context.Context) (int64, bool, error)
	Exists(ctx context.Context, cardNumber string) (bool, error)
	DeleteAccount(ctx context.Context, cardNumber, pin string) error
	Deposit(ctx context.Context, cardNumber, pin string, amount int64) error
	Transfer(ctx context.Context, sourceCard, destCard string, amount int64) error
	History(ctx context.Context, cardNumber string, limit int) ([]models.Transaction, error)
}

var _ Store = (*AccountStore)(nil)

// AccountStore persists cards and applies balance changes. Every mutating
// method runs in its own transaction and is committed before it returns.
// It enforces no business rules.
type AccountStore struct {
	db     *db.DB
	logger *slog.Logger
}

// NewAccountStore creates a new AccountStore
func NewAccountStore(database *db.DB, logger *slog.Logger) *AccountStore {
	return &AccountStore{
		db:     database,
		logger: logger,
	}
}

// Initialize ensures the schema exists. Safe to call on every start.
func (s *AccountStore) Initialize(_ context.Context) error {
	return s.db.Migrate()
}

// Insert appends a new card. A sequence id or card number collision is
// reported as models.ErrDuplicateAccount.
func (s *AccountStore) Insert(ctx context.Context, account *models.Account) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		accounts := NewAccountRepository(tx)
		if err := accounts.Create(ctx, account); err != nil {
			return err
		}
		return accounts.RecordSequence(ctx, account.SequenceID)
	})
}

// LookupBalance returns models.ErrNotFound when no card matches both fields.
func (s *AccountStore) LookupBalance(ctx context.Context, cardNumber, pin string) (int64, error) {
	return NewAccountRepository(s.db).FindBalance(ctx, cardNumber, pin)
}

// MaxSequenceID returns false when no card has ever been issued.
func (s *AccountStore) MaxSequenceID(ctx context.Context) (int64, bool, error) {
	return NewAccountRepository(s.db).MaxSequenceID(ctx)
}

// Exists checks for a card by number only.
func (s *AccountStore) Exists(ctx context.Context, cardNumber string) (bool, error) {
	return NewAccountRepository(s.db).Exists(ctx, cardNumber)
}

// DeleteAccount removes the matching card. Deleting a card that is already
// gone is not an error.
func (s *AccountStore) DeleteAccount(ctx context.Context, cardNumber, pin string) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		deleted, err := NewAccountRepository(tx).Delete(ctx, cardNumber, pin)
		if err != nil {
			return err
		}
		if deleted == 0 {
			s.logger.Debug("delete matched no card", "card_number", cardNumber)
		}
		return nil
	})
}

// Deposit adds amount to the matching card and records it in the ledger.
// It does nothing when no card matches.
func (s *AccountStore) Deposit(ctx context.Context, cardNumber, pin string, amount int64) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		updated, err := NewAccountRepository(tx).AddIncome(ctx, cardNumber, pin, amount)
		if err != nil {
			return err
		}
		if !updated {
			s.logger.Debug("deposit matched no card", "card_number", cardNumber)
			return nil
		}

		return NewTransactionRepository(tx).Create(ctx, &models.Transaction{
			CardNumber: cardNumber,
			Type:       models.TransactionTypeDeposit,
			Amount:     amount,
		})
	})
}

// Transfer moves amount from sourceCard to destCard as one unit. Both rows are
// locked first; if either is missing nothing is applied and
// models.ErrNotFound is returned. Funds are not checked here.
func (s *AccountStore) Transfer(ctx context.Context, sourceCard, destCard string, amount int64) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		accounts := NewAccountRepository(tx)
		ledger := NewTransactionRepository(tx)

		locked, err := accounts.LockForUpdate(ctx, sourceCard, destCard)
		if err != nil {
			return err
		}
		if locked != 2 {
			return fmt.Errorf("transfer %s -> %s: %w", sourceCard, destCard, models.ErrNotFound)
		}

		if err := accounts.AdjustBalance(ctx, sourceCard, -amount); err != nil {
			return err
		}
		if err := accounts.AdjustBalance(ctx, destCard, amount); err != nil {
			return err
		}

		if err := ledger.Create(ctx, &models.Transaction{
			CardNumber:   sourceCard,
			Counterparty: &destCard,
			Type:         models.TransactionTypeTransferOut,
			Amount:       amount,
		}); err != nil {
			return err
		}

		return ledger.Create(ctx, &models.Transaction{
			CardNumber:   destCard,
			Counterparty: &sourceCard,
			Type:         models.TransactionTypeTransferIn,
			Amount:       amount,
		})
	})
}

// History returns up to limit ledger entries for a card, newest first.
func (s *AccountStore) History(ctx context.Context, cardNumber string, limit int) ([]models.Transaction, error) {
	return NewTransactionRepository(s.db).ListByCardNumber(ctx, cardNumber, limit)
}
