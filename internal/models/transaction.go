package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType represents the type of ledger entry
type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "DEPOSIT"
	TransactionTypeTransferOut TransactionType = "TRANSFER_OUT"
	TransactionTypeTransferIn  TransactionType = "TRANSFER_IN"
)

// Transaction is a ledger entry recording a balance change on one card.
// Counterparty is set for transfers only.
type Transaction struct {
	CreatedAt    time.Time       `db:"created_at"`
	Counterparty *string         `db:"counterparty"`
	CardNumber   string          `db:"card_number"`
	Type         TransactionType `db:"type"`
	Amount       int64           `db:"amount"`
	ID           uuid.UUID       `db:"id"`
}
