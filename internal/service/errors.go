package service

import (
	"errors"
	"fmt"
)

// ServiceError represents a business logic error with a code
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeSameAccount          = "same_account"
	ErrCodeInvalidCard          = "invalid_card"
	ErrCodeAccountNotFound      = "account_not_found"
	ErrCodeInvalidAmount        = "invalid_amount"
	ErrCodeInsufficientFunds    = "insufficient_funds"
	ErrCodeInternalError        = "internal_error"
)

var validationCodes = map[string]bool{
	ErrCodeSameAccount:       true,
	ErrCodeInvalidCard:       true,
	ErrCodeAccountNotFound:   true,
	ErrCodeInvalidAmount:     true,
	ErrCodeInsufficientFunds: true,
}

// Code extracts the ServiceError code from err, or "" if err is not one.
func Code(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	return ""
}

// IsValidation reports whether err is a recoverable business rule violation.
func IsValidation(err error) bool {
	return validationCodes[Code(err)]
}

// IsAuthentication reports whether err is a failed card/PIN match.
func IsAuthentication(err error) bool {
	return Code(err) == ErrCodeAuthenticationFailed
}

func authenticationFailed() *ServiceError {
	return &ServiceError{
		Code:    ErrCodeAuthenticationFailed,
		Message: "wrong card number or PIN",
	}
}

func internalError(message string, err error) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeInternalError,
		Message: message,
		Err:     err,
	}
}
