// Package service implements card issuing and the banking rules applied on
// top of the account store.
package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/benx421/simplebank/internal/config"
	"github.com/benx421/simplebank/internal/models"
	"github.com/benx421/simplebank/internal/repository"
)

const (
	// maxSequenceID is the largest id that fits the 9 account digits.
	maxSequenceID = 999_999_999

	// HistoryLimit caps the number of ledger entries returned to a session.
	HistoryLimit = 20
)

// BankingService issues cards and applies deposit, transfer and close rules
type BankingService struct {
	store          repository.Store
	logger         *slog.Logger
	generatePIN    func() (string, error)
	issuerID       string
	nextSequenceID int64
}

// NewBankingService creates a BankingService whose sequence counter continues
// after the highest id the store has ever issued.
func NewBankingService(
	ctx context.Context,
	store repository.Store,
	issuerID string,
	logger *slog.Logger,
) (*BankingService, error) {
	if len(issuerID) != config.IssuerIDLength || !isDigits(issuerID) {
		return nil, fmt.Errorf("invalid issuer id %q: must be %d digits", issuerID, config.IssuerIDLength)
	}

	maxID, ok, err := store.MaxSequenceID(ctx)
	if err != nil {
		return nil, internalError("failed to load account sequence", err)
	}

	var next int64
	if ok {
		next = maxID + 1
	}

	logger.Debug("banking service ready", "issuer_id", issuerID, "next_sequence_id", next)

	return &BankingService{
		store:          store,
		logger:         logger,
		generatePIN:    randomPIN,
		issuerID:       issuerID,
		nextSequenceID: next,
	}, nil
}

// CreateAccount issues a new card with a random PIN and a zero balance. The
// sequence counter only advances once the card is stored.
func (s *BankingService) CreateAccount(ctx context.Context) (*models.Account, error) {
	if s.nextSequenceID > maxSequenceID {
		return nil, internalError("card number space exhausted", nil)
	}

	unchecked := fmt.Sprintf("%s%09d", s.issuerID, s.nextSequenceID)

	pin, err := s.generatePIN()
	if err != nil {
		return nil, internalError("failed to generate PIN", err)
	}

	check, err := LuhnCheckDigit(unchecked, false)
	if err != nil {
		return nil, internalError("failed to compute check digit", err)
	}

	account := &models.Account{
		SequenceID: s.nextSequenceID,
		CardNumber: unchecked + check,
		PIN:        pin,
	}

	if err := s.store.Insert(ctx, account); err != nil {
		s.logger.Error("failed to store new card", "sequence_id", account.SequenceID, "error", err)
		return nil, internalError("failed to create account", err)
	}

	s.nextSequenceID++

	s.logger.Info("card issued", "card_number", account.CardNumber, "sequence_id", account.SequenceID)

	return account, nil
}

// LogIn authenticates a card/PIN pair. Failures never say which field was wrong.
func (s *BankingService) LogIn(ctx context.Context, cardNumber, pin string) (AccountSession, error) {
	if _, err := s.Balance(ctx, cardNumber, pin); err != nil {
		if IsAuthentication(err) {
			s.logger.Warn("login failed", "card_number", cardNumber)
		}
		return nil, err
	}

	s.logger.Info("login succeeded", "card_number", cardNumber)

	return &Session{
		service:    s,
		cardNumber: cardNumber,
		pin:        pin,
	}, nil
}

// Balance reads the current balance of a card/PIN pair from the store.
func (s *BankingService) Balance(ctx context.Context, cardNumber, pin string) (int64, error) {
	balance, err := s.store.LookupBalance(ctx, cardNumber, pin)
	if errors.Is(err, models.ErrNotFound) {
		return 0, authenticationFailed()
	}
	if err != nil {
		return 0, internalError("failed to read balance", err)
	}

	return balance, nil
}

// Deposit adds a positive amount to an existing card.
func (s *BankingService) Deposit(ctx context.Context, cardNumber, pin string, amount int64) error {
	if err := ValidateAmount(amount); err != nil {
		return &ServiceError{
			Code:    ErrCodeInvalidAmount,
			Message: err.Error(),
		}
	}

	if _, err := s.Balance(ctx, cardNumber, pin); err != nil {
		return err
	}

	if err := s.store.Deposit(ctx, cardNumber, pin, amount); err != nil {
		s.logger.Error("deposit failed", "card_number", cardNumber, "error", err)
		return internalError("failed to deposit", err)
	}

	s.logger.Info("income added", "card_number", cardNumber, "amount", amount)

	return nil
}

// CheckTransferDestination applies the destination rules in order: not the
// source card, a well-formed card number, then an existing card. The first
// two checks never touch the store.
func (s *BankingService) CheckTransferDestination(ctx context.Context, sourceCard, destCard string) error {
	if err := validateDestination(sourceCard, destCard); err != nil {
		return err
	}

	exists, err := s.store.Exists(ctx, destCard)
	if err != nil {
		return internalError("failed to look up destination", err)
	}
	if !exists {
		return destinationNotFound(nil)
	}

	return nil
}

// TransferFunds moves amount from the source card to destCard after checking
// the destination, the amount and the current source balance.
func (s *BankingService) TransferFunds(ctx context.Context, sourceCard, sourcePIN, destCard string, amount int64) error {
	if err := s.CheckTransferDestination(ctx, sourceCard, destCard); err != nil {
		return err
	}

	return s.transfer(ctx, sourceCard, sourcePIN, destCard, amount)
}

// transferToCheckedDestination is TransferFunds for a destination that
// already passed CheckTransferDestination. Only the checks that need no store
// lookup are repeated; a destination deleted in between is caught by
// Store.Transfer.
func (s *BankingService) transferToCheckedDestination(ctx context.Context, sourceCard, sourcePIN, destCard string, amount int64) error {
	if err := validateDestination(sourceCard, destCard); err != nil {
		return err
	}

	return s.transfer(ctx, sourceCard, sourcePIN, destCard, amount)
}

func (s *BankingService) transfer(ctx context.Context, sourceCard, sourcePIN, destCard string, amount int64) error {
	if err := ValidateAmount(amount); err != nil {
		return &ServiceError{
			Code:    ErrCodeInvalidAmount,
			Message: err.Error(),
		}
	}

	balance, err := s.Balance(ctx, sourceCard, sourcePIN)
	if err != nil {
		return err
	}
	if balance < amount {
		return &ServiceError{
			Code:    ErrCodeInsufficientFunds,
			Message: "insufficient funds",
		}
	}

	if err := s.store.Transfer(ctx, sourceCard, destCard, amount); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return destinationNotFound(err)
		}
		s.logger.Error("transfer failed",
			"source_card", sourceCard,
			"dest_card", destCard,
			"error", err,
		)
		return internalError("failed to transfer", err)
	}

	s.logger.Info("transfer completed",
		"source_card", sourceCard,
		"dest_card", destCard,
		"amount", amount,
	)

	return nil
}

func validateDestination(sourceCard, destCard string) error {
	if destCard == sourceCard {
		return &ServiceError{
			Code:    ErrCodeSameAccount,
			Message: "cannot transfer to the same account",
		}
	}

	if err := ValidateCardNumber(destCard); err != nil {
		return &ServiceError{
			Code:    ErrCodeInvalidCard,
			Message: "malformed destination card number",
			Err:     err,
		}
	}

	return nil
}

func destinationNotFound(err error) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeAccountNotFound,
		Message: "destination card does not exist",
		Err:     err,
	}
}

// CloseAccount deletes the card. A card that is already gone is not an error.
func (s *BankingService) CloseAccount(ctx context.Context, cardNumber, pin string) error {
	if err := s.store.DeleteAccount(ctx, cardNumber, pin); err != nil {
		s.logger.Error("failed to close account", "card_number", cardNumber, "error", err)
		return internalError("failed to close account", err)
	}

	s.logger.Info("account closed", "card_number", cardNumber)

	return nil
}

// History returns the most recent ledger entries of an authenticated card.
func (s *BankingService) History(ctx context.Context, cardNumber, pin string) ([]models.Transaction, error) {
	if _, err := s.Balance(ctx, cardNumber, pin); err != nil {
		return nil, err
	}

	txns, err := s.store.History(ctx, cardNumber, HistoryLimit)
	if err != nil {
		return nil, internalError("failed to load history", err)
	}

	return txns, nil
}

func randomPIN() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
