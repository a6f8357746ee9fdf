// Package cli implements the interactive text menu on top of the banking service.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/benx421/simplebank/internal/service"
)

// CLI reads menu selections from in and writes prompts and results to out.
type CLI struct {
	banker  service.Banker
	scanner *bufio.Scanner
	out     io.Writer
	logger  *slog.Logger
}

// New creates a CLI with injected service dependencies.
func New(banker service.Banker, in io.Reader, out io.Writer, logger *slog.Logger) *CLI {
	return &CLI{
		banker:  banker,
		scanner: bufio.NewScanner(in),
		out:     out,
		logger:  logger,
	}
}

// Run serves the top level menu until the user exits or input ends. Only
// failures to read input are returned.
func (c *CLI) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.println("")
		c.println("1. Create an account")
		c.println("2. Log into account")
		c.println("0. Exit")

		choice, err := c.readInt()
		if errors.Is(err, io.EOF) {
			c.println("Bye!")
			return nil
		}
		if err != nil && !isParseError(err) {
			return err
		}
		if err != nil {
			c.println("Input Error")
			continue
		}

		switch choice {
		case 1:
			c.createAccount(ctx)
		case 2:
			outcome, err := c.logIn(ctx)
			if errors.Is(err, io.EOF) {
				c.println("Bye!")
				return nil
			}
			if err != nil {
				return err
			}
			if outcome == ExitRequested {
				c.println("Bye!")
				return nil
			}
		case 0:
			c.println("Bye!")
			return nil
		default:
			c.println("Input Error")
		}
	}
}

func (c *CLI) createAccount(ctx context.Context) {
	account, err := c.banker.CreateAccount(ctx)
	if err != nil {
		c.reportError(err)
		return
	}

	c.println("Your card has been created")
	c.println("Your card number:")
	c.println(account.CardNumber)
	c.println("Your card PIN:")
	c.println(account.PIN)
}

func (c *CLI) logIn(ctx context.Context) (Outcome, error) {
	c.println("Enter your card number:")
	cardNumber, err := c.readLine()
	if err != nil {
		return ExitRequested, err
	}

	c.println("Enter your PIN:")
	pin, err := c.readLine()
	if err != nil {
		return ExitRequested, err
	}

	session, err := c.banker.LogIn(ctx, cardNumber, pin)
	if err != nil {
		c.reportError(err)
		return LoggedOut, nil
	}

	c.println("You have successfully logged in!")

	return c.runSession(ctx, session)
}

func (c *CLI) readLine() (string, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.scanner.Text()), nil
}

func (c *CLI) readInt() (int64, error) {
	line, err := c.readLine()
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(line, 10, 64)
}

func isParseError(err error) bool {
	var numErr *strconv.NumError
	return errors.As(err, &numErr)
}

func (c *CLI) println(s string) {
	fmt.Fprintln(c.out, s)
}
