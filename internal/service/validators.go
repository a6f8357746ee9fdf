package service

import (
	"fmt"
	"strconv"
)

// CardNumberLength is the length of an issued card number including the check digit.
const CardNumberLength = 16

// LuhnCheckDigit computes the Luhn check digit for number. When
// includesCheckDigit is true the last digit of number is ignored, so the
// result can be compared against it.
//
// Digits are indexed left to right from zero and even positions are doubled,
// which matches the standard algorithm for numbers whose checked length is odd.
func LuhnCheckDigit(number string, includesCheckDigit bool) (string, error) {
	if includesCheckDigit {
		if number == "" {
			return "", fmt.Errorf("invalid number: empty")
		}
		number = number[:len(number)-1]
	}
	if number == "" {
		return "", fmt.Errorf("invalid number: empty")
	}

	sum := 0
	for i := 0; i < len(number); i++ {
		c := number[i]
		if c < '0' || c > '9' {
			return "", fmt.Errorf("invalid number: must contain only digits")
		}

		digit := int(c - '0')
		if i%2 == 0 {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
	}

	return strconv.Itoa((10 - sum%10) % 10), nil
}

// ValidateCardNumber checks length, digits and the Luhn check digit.
func ValidateCardNumber(cardNumber string) error {
	if len(cardNumber) != CardNumberLength {
		return fmt.Errorf("invalid card number length: must be %d digits", CardNumberLength)
	}

	check, err := LuhnCheckDigit(cardNumber, true)
	if err != nil {
		return fmt.Errorf("invalid card number: %w", err)
	}

	if cardNumber[CardNumberLength-1:] != check {
		return fmt.Errorf("invalid card number: failed Luhn check")
	}

	return nil
}

// ValidateAmount checks if amount is valid (positive)
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("invalid amount: must be greater than 0")
	}

	return nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
