package service

import (
	"context"

	"github.com/benx421/simplebank/internal/models"
)

// Session is an authenticated card. It caches nothing but the card/PIN pair.
type Session struct {
	service    *BankingService
	cardNumber string
	pin        string
}

func (s *Session) CardNumber() string {
	return s.cardNumber
}

func (s *Session) Balance(ctx context.Context) (int64, error) {
	return s.service.Balance(ctx, s.cardNumber, s.pin)
}

func (s *Session) Deposit(ctx context.Context, amount int64) error {
	return s.service.Deposit(ctx, s.cardNumber, s.pin, amount)
}

func (s *Session) CheckDestination(ctx context.Context, destCard string) error {
	return s.service.CheckTransferDestination(ctx, s.cardNumber, destCard)
}

// Transfer expects destCard to have passed CheckDestination and does not look
// it up again.
func (s *Session) Transfer(ctx context.Context, destCard string, amount int64) error {
	return s.service.transferToCheckedDestination(ctx, s.cardNumber, s.pin, destCard, amount)
}

// Close deletes the card. Callers end the session whatever the result.
func (s *Session) Close(ctx context.Context) error {
	return s.service.CloseAccount(ctx, s.cardNumber, s.pin)
}

func (s *Session) History(ctx context.Context) ([]models.Transaction, error) {
	return s.service.History(ctx, s.cardNumber, s.pin)
}
