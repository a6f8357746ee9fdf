package cli

import (
	"github.com/benx421/simplebank/internal/service"
)

func messageFor(code string) string {
	switch code {
	case service.ErrCodeAuthenticationFailed:
		return "Wrong card number or PIN!"
	case service.ErrCodeSameAccount:
		return "You can't transfer money to the same account!"
	case service.ErrCodeInvalidCard:
		return "Probably you made a mistake in the card number. Please try again!"
	case service.ErrCodeAccountNotFound:
		return "Such a card does not exist."
	case service.ErrCodeInsufficientFunds:
		return "Not enough money!"
	case service.ErrCodeInvalidAmount:
		return "The amount must be a positive whole number."
	default:
		return "Something went wrong. Please try again later."
	}
}

// reportError prints the user facing message for err. Errors that are not
// business rule violations are also logged.
func (c *CLI) reportError(err error) {
	code := service.Code(err)
	if !service.IsValidation(err) && !service.IsAuthentication(err) {
		c.logger.Error("operation failed", "code", code, "error", err)
	}
	c.println(messageFor(code))
}
