package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/benx421/simplebank/internal/models"
	"github.com/benx421/simplebank/internal/service"
)

// Outcome tells the session loop what to do after a menu step.
type Outcome int

const (
	Continue Outcome = iota
	LoggedOut
	ExitRequested
	InvalidInput
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case LoggedOut:
		return "logged_out"
	case ExitRequested:
		return "exit_requested"
	case InvalidInput:
		return "invalid_input"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Session menu selections
const (
	MenuExit     = 0
	MenuBalance  = 1
	MenuDeposit  = 2
	MenuTransfer = 3
	MenuClose    = 4
	MenuLogOut   = 5
	MenuHistory  = 6
)

func (c *CLI) runSession(ctx context.Context, session service.AccountSession) (Outcome, error) {
	for {
		if err := ctx.Err(); err != nil {
			return ExitRequested, err
		}

		c.println("")
		c.println("1. Balance")
		c.println("2. Add income")
		c.println("3. Do transfer")
		c.println("4. Close account")
		c.println("5. Log out")
		c.println("6. Transaction history")
		c.println("0. Exit")

		outcome := InvalidInput
		choice, err := c.readInt()
		switch {
		case err == nil:
			outcome, err = c.Step(ctx, session, choice)
			if err != nil {
				return ExitRequested, err
			}
		case !isParseError(err):
			return ExitRequested, err
		}

		switch outcome {
		case Continue:
		case InvalidInput:
			c.println("Invalid Input")
		default:
			c.logger.Debug("session ended", "card_number", session.CardNumber(), "outcome", outcome.String())
			return outcome, nil
		}
	}
}

// Step performs one session menu selection. The returned error is only set
// when further input could not be read.
func (c *CLI) Step(ctx context.Context, session service.AccountSession, choice int64) (Outcome, error) {
	switch choice {
	case MenuBalance:
		return c.balance(ctx, session), nil
	case MenuDeposit:
		return c.deposit(ctx, session)
	case MenuTransfer:
		return c.transfer(ctx, session)
	case MenuClose:
		return c.closeAccount(ctx, session), nil
	case MenuLogOut:
		c.println("You have successfully logged out!")
		return LoggedOut, nil
	case MenuHistory:
		return c.history(ctx, session), nil
	case MenuExit:
		return ExitRequested, nil
	default:
		return InvalidInput, nil
	}
}

func (c *CLI) balance(ctx context.Context, session service.AccountSession) Outcome {
	balance, err := session.Balance(ctx)
	if err != nil {
		return c.sessionError(err)
	}

	c.println(fmt.Sprintf("Balance: %d", balance))
	return Continue
}

func (c *CLI) deposit(ctx context.Context, session service.AccountSession) (Outcome, error) {
	c.println("How much would you like to deposit?")
	amount, err := c.readInt()
	if err != nil {
		if !isParseError(err) {
			return ExitRequested, err
		}
		c.println(messageFor(service.ErrCodeInvalidAmount))
		return Continue, nil
	}

	if err := session.Deposit(ctx, amount); err != nil {
		return c.sessionError(err), nil
	}

	c.println(fmt.Sprintf("%d has been deposited", amount))
	return Continue, nil
}

// transfer checks the destination before asking for the amount.
func (c *CLI) transfer(ctx context.Context, session service.AccountSession) (Outcome, error) {
	c.println("Transfer")
	c.println("Input the destination account:")
	dest, err := c.readLine()
	if err != nil {
		return ExitRequested, err
	}

	if err := session.CheckDestination(ctx, dest); err != nil {
		return c.sessionError(err), nil
	}

	c.println("Input the transfer amount:")
	amount, err := c.readInt()
	if err != nil {
		if !isParseError(err) {
			return ExitRequested, err
		}
		c.println(messageFor(service.ErrCodeInvalidAmount))
		return Continue, nil
	}

	if err := session.Transfer(ctx, dest, amount); err != nil {
		return c.sessionError(err), nil
	}

	c.println("Success!")
	return Continue, nil
}

// closeAccount ends the session whether or not the delete succeeded.
func (c *CLI) closeAccount(ctx context.Context, session service.AccountSession) Outcome {
	if err := session.Close(ctx); err != nil {
		c.reportError(err)
		return LoggedOut
	}

	c.println("The account has been closed!")
	return LoggedOut
}

func (c *CLI) history(ctx context.Context, session service.AccountSession) Outcome {
	entries, err := session.History(ctx)
	if err != nil {
		return c.sessionError(err)
	}

	if len(entries) == 0 {
		c.println("No transactions yet.")
		return Continue
	}

	for i := range entries {
		c.println(formatEntry(&entries[i]))
	}
	return Continue
}

// sessionError reports err and ends the session if the card no longer
// authenticates.
func (c *CLI) sessionError(err error) Outcome {
	c.reportError(err)
	if service.IsAuthentication(err) {
		return LoggedOut
	}
	return Continue
}

func formatEntry(txn *models.Transaction) string {
	amount := txn.Amount
	if txn.Type == models.TransactionTypeTransferOut {
		amount = -amount
	}

	line := fmt.Sprintf("%s  %-12s %+d", txn.CreatedAt.Local().Format(time.DateTime), txn.Type, amount)
	if txn.Counterparty != nil {
		line += "  " + *txn.Counterparty
	}
	return line
}
