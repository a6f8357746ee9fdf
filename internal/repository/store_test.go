//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/benx421/simplebank/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	cardA = "4000000000000002"
	cardB = "4000000000000010"
	cardC = "4000000000000028"
)

func TestAccountStore_Initialize_Idempotent(t *testing.T) {
	store, _ := setupTestStore(t)

	require.NoError(t, store.Initialize(context.Background()))
	require.NoError(t, store.Initialize(context.Background()))
}

func TestAccountStore_Insert(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	seedAccount(t, store, 0, cardA, "1234", 0)

	tests := []struct {
		account *models.Account
		name    string
	}{
		{
			name:    "duplicate sequence id",
			account: &models.Account{SequenceID: 0, CardNumber: cardB, PIN: "0000"},
		},
		{
			name:    "duplicate card number",
			account: &models.Account{SequenceID: 7, CardNumber: cardA, PIN: "0000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Insert(ctx, tt.account)
			assert.ErrorIs(t, err, models.ErrDuplicateAccount)
		})
	}
}

func TestAccountStore_LookupBalance(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	seedAccount(t, store, 0, cardA, "1234", 0)
	seedAccount(t, store, 1, cardB, "0007", 500)

	tests := []struct {
		wantErr     error
		name        string
		cardNumber  string
		pin         string
		wantBalance int64
	}{
		{
			name:        "zero balance is not not-found",
			cardNumber:  cardA,
			pin:         "1234",
			wantBalance: 0,
		},
		{
			name:        "leading zero pin",
			cardNumber:  cardB,
			pin:         "0007",
			wantBalance: 500,
		},
		{
			name:       "wrong pin",
			cardNumber: cardA,
			pin:        "4321",
			wantErr:    models.ErrNotFound,
		},
		{
			name:       "unknown card",
			cardNumber: cardC,
			pin:        "1234",
			wantErr:    models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance, err := store.LookupBalance(ctx, tt.cardNumber, tt.pin)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBalance, balance)
		})
	}
}

func TestAccountStore_MaxSequenceID(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	_, ok, err := store.MaxSequenceID(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "empty store has no max")

	seedAccount(t, store, 0, cardA, "1111", 0)
	seedAccount(t, store, 2, cardC, "3333", 0)

	maxID, ok, err := store.MaxSequenceID(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(2), maxID)

	require.NoError(t, store.DeleteAccount(ctx, cardC, "3333"))

	maxID, ok, err = store.MaxSequenceID(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(2), maxID, "deleted card's id stays consumed")
}

func TestAccountStore_DeleteAccount(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	seedAccount(t, store, 0, cardA, "1234", 100)

	require.NoError(t, store.DeleteAccount(ctx, cardA, "9999"), "wrong pin deletes nothing")
	_, err := store.LookupBalance(ctx, cardA, "1234")
	require.NoError(t, err)

	require.NoError(t, store.DeleteAccount(ctx, cardA, "1234"))
	_, err = store.LookupBalance(ctx, cardA, "1234")
	assert.ErrorIs(t, err, models.ErrNotFound)

	exists, err := store.Exists(ctx, cardA)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, store.DeleteAccount(ctx, cardA, "1234"), "second delete is a no-op")
}

func TestAccountStore_Deposit(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	seedAccount(t, store, 0, cardA, "1234", 0)

	require.NoError(t, store.Deposit(ctx, cardA, "1234", 250))
	require.NoError(t, store.Deposit(ctx, cardA, "1234", 50))

	balance, err := store.LookupBalance(ctx, cardA, "1234")
	require.NoError(t, err)
	assert.Equal(t, int64(300), balance)

	history, err := store.History(ctx, cardA, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, txn := range history {
		assert.Equal(t, models.TransactionTypeDeposit, txn.Type)
		assert.Nil(t, txn.Counterparty)
	}

	t.Run("no matching card is a no-op", func(t *testing.T) {
		require.NoError(t, store.Deposit(ctx, cardA, "0000", 999))

		balance, err := store.LookupBalance(ctx, cardA, "1234")
		require.NoError(t, err)
		assert.Equal(t, int64(300), balance)

		history, err := store.History(ctx, cardA, 10)
		require.NoError(t, err)
		assert.Len(t, history, 2, "no ledger entry for an unmatched deposit")
	})
}

func TestAccountStore_Transfer(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	seedAccount(t, store, 0, cardA, "1111", 1000)
	seedAccount(t, store, 1, cardB, "2222", 50)

	require.NoError(t, store.Transfer(ctx, cardA, cardB, 400))

	balanceA, err := store.LookupBalance(ctx, cardA, "1111")
	require.NoError(t, err)
	balanceB, err := store.LookupBalance(ctx, cardB, "2222")
	require.NoError(t, err)

	assert.Equal(t, int64(600), balanceA)
	assert.Equal(t, int64(450), balanceB)
	assert.Equal(t, int64(1050), balanceA+balanceB, "total is conserved")

	out, err := store.History(ctx, cardA, 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, models.TransactionTypeTransferOut, out[0].Type)
	require.NotNil(t, out[0].Counterparty)
	assert.Equal(t, cardB, *out[0].Counterparty)

	in, err := store.History(ctx, cardB, 10)
	require.NoError(t, err)
	require.Len(t, in, 1)
	assert.Equal(t, models.TransactionTypeTransferIn, in[0].Type)
	assert.Equal(t, int64(400), in[0].Amount)
}

func TestAccountStore_Transfer_MissingDestinationAppliesNothing(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	seedAccount(t, store, 0, cardA, "1111", 1000)

	err := store.Transfer(ctx, cardA, cardC, 100)
	assert.ErrorIs(t, err, models.ErrNotFound)

	balance, err := store.LookupBalance(ctx, cardA, "1111")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance, "source must not be debited")

	history, err := store.History(ctx, cardA, 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestAccountStore_Transfer_DoesNotCheckFunds(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	seedAccount(t, store, 0, cardA, "1111", 10)
	seedAccount(t, store, 1, cardB, "2222", 0)

	require.NoError(t, store.Transfer(ctx, cardA, cardB, 25))

	balance, err := store.LookupBalance(ctx, cardA, "1111")
	require.NoError(t, err)
	assert.Equal(t, int64(-15), balance)
}

func TestAccountStore_Transfer_Concurrent(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	seedAccount(t, store, 0, cardA, "1111", 1000)
	seedAccount(t, store, 1, cardB, "2222", 1000)

	const numGoroutines = 10

	errCh := make(chan error, numGoroutines*2)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			errCh <- store.Transfer(ctx, cardA, cardB, 10)
		}()
		go func() {
			errCh <- store.Transfer(ctx, cardB, cardA, 5)
		}()
	}

	for i := 0; i < numGoroutines*2; i++ {
		assert.NoError(t, <-errCh, "concurrent transfer failed")
	}

	balanceA, err := store.LookupBalance(ctx, cardA, "1111")
	require.NoError(t, err)
	balanceB, err := store.LookupBalance(ctx, cardB, "2222")
	require.NoError(t, err)

	assert.Equal(t, int64(1000-100+50), balanceA, "lost update detected")
	assert.Equal(t, int64(2000), balanceA+balanceB)
}

func TestAccountStore_History_Limit(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	seedAccount(t, store, 0, cardA, "1111", 0)
	for i := int64(1); i <= 5; i++ {
		require.NoError(t, store.Deposit(ctx, cardA, "1111", i))
	}

	history, err := store.History(ctx, cardA, 3)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}
