package service

import (
	"context"

	"github.com/benx421/simplebank/internal/models"
)

// Banker handles account creation and login
type Banker interface {
	CreateAccount(ctx context.Context) (*models.Account, error)
	LogIn(ctx context.Context, cardNumber, pin string) (AccountSession, error)
}

// AccountSession is the authenticated view of one card. Implementations hold
// only the card/PIN identity; balances are read fresh on every call.
type AccountSession interface {
	CardNumber() string
	Balance(ctx context.Context) (int64, error)
	Deposit(ctx context.Context, amount int64) error
	CheckDestination(ctx context.Context, destCard string) error
	Transfer(ctx context.Context, destCard string, amount int64) error
	Close(ctx context.Context) error
	History(ctx context.Context) ([]models.Transaction, error)
}

// Ensure concrete types implement interfaces
var (
	_ Banker         = (*BankingService)(nil)
	_ AccountSession = (*Session)(nil)
)
