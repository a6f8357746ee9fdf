//go:build integration

package repository

import (
	"context"
	"database/sql"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/benx421/simplebank/internal/db"
	"github.com/benx421/simplebank/internal/models"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testDSN string

// TestMain starts one disposable PostgreSQL container for the package; each
// test resets the tables it touches.
func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("simplebank"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start postgres container: %v", err)
	}

	testDSN, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("failed to get connection string: %v", err)
	}

	code := m.Run()

	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate postgres container: %v", err)
	}

	os.Exit(code)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestStore(t *testing.T) (*AccountStore, *db.DB) {
	t.Helper()

	sqlDB, err := sql.Open("postgres", testDSN)
	require.NoError(t, err, "failed to open test database")

	database := db.Wrap(sqlDB, testLogger())
	t.Cleanup(func() {
		_ = database.Close()
	})

	store := NewAccountStore(database, testLogger())
	require.NoError(t, store.Initialize(context.Background()), "failed to migrate test database")

	truncateTables(t, database)

	return store, database
}

func truncateTables(t *testing.T, database *db.DB) {
	t.Helper()

	_, err := database.ExecContext(context.Background(), `TRUNCATE TABLE card, card_transactions, card_sequence`)
	require.NoError(t, err, "failed to truncate tables")
}

func seedAccount(t *testing.T, store *AccountStore, seq int64, cardNumber, pin string, balance int64) {
	t.Helper()

	err := store.Insert(context.Background(), &models.Account{
		SequenceID: seq,
		CardNumber: cardNumber,
		PIN:        pin,
		Balance:    balance,
	})
	require.NoError(t, err, "failed to seed account %s", cardNumber)
}
