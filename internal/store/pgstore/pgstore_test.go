package pgstore

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/MarkoPoloResearchLab/ink/pkg/economy"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const envTestDatabaseURL = "INK_TEST_DATABASE_URL"

func newTestStore(test *testing.T) *Store {
	test.Helper()
	databaseURL := os.Getenv(envTestDatabaseURL)
	if databaseURL == "" {
		test.Skipf("%s not set", envTestDatabaseURL)
	}
	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		test.Fatalf("pool: %v", err)
	}
	test.Cleanup(pool.Close)
	store := New(pool)
	if err := store.EnsureSchema(context.Background()); err != nil {
		test.Fatalf("schema: %v", err)
	}
	return store
}

func newTestUser(test *testing.T) economy.UserID {
	test.Helper()
	userID, err := economy.NewUserID("pg-" + uuid.NewString())
	if err != nil {
		test.Fatalf("user id: %v", err)
	}
	return userID
}

func TestStoreAgainstPostgres(test *testing.T) {
	store := newTestStore(test)
	engine, err := economy.NewEngine(store, func() time.Time { return time.Now().UTC() })
	if err != nil {
		test.Fatalf("engine init failed: %v", err)
	}
	userID := newTestUser(test)
	ctx := context.Background()

	charge, err := engine.Deduct(ctx, userID, economy.Charge{Amount: 30, Type: economy.TransactionGeneration})
	if err != nil {
		test.Fatalf("deduct: %v", err)
	}
	if charge.Balance != 470 {
		test.Fatalf("expected 470 after charge, got %d", charge.Balance)
	}
	if _, err := engine.Refund(ctx, userID, charge.Transaction.ID, nil); err != nil {
		test.Fatalf("refund: %v", err)
	}
	if _, err := engine.Refund(ctx, userID, charge.Transaction.ID, nil); !errors.Is(err, economy.ErrAlreadyRefunded) {
		test.Fatalf("expected ErrAlreadyRefunded, got %v", err)
	}

	state, err := store.LoadState(ctx, userID, 10)
	if err != nil {
		test.Fatalf("load: %v", err)
	}
	if state.Balance != 500 || len(state.History) != 3 {
		test.Fatalf("unexpected state: balance %d history %d", state.Balance, len(state.History))
	}
	stale := state.Clone()
	stale.Version = state.Version + 1
	if err := store.SwapState(ctx, stale, state.Version-1, nil); !errors.Is(err, economy.ErrConcurrentModification) {
		test.Fatalf("expected ErrConcurrentModification, got %v", err)
	}
	if _, err := store.FindTransaction(ctx, userID, "missing"); !errors.Is(err, economy.ErrUnknownTransaction) {
		test.Fatalf("expected ErrUnknownTransaction, got %v", err)
	}
}
