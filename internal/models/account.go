package models

// Account is a single issued card and its balance.
type Account struct {
	CardNumber string `db:"number"`
	PIN        string `db:"pin"`
	SequenceID int64  `db:"sequence_id"`
	Balance    int64  `db:"balance"`
}
