package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MarkoPoloResearchLab/ink/pkg/economy"
)

var testNow = time.Date(2026, time.May, 4, 12, 0, 0, 0, time.UTC)

func mustEngine(test *testing.T, store *Store) *economy.Engine {
	test.Helper()
	engine, err := economy.NewEngine(store, func() time.Time { return testNow })
	if err != nil {
		test.Fatalf("engine init failed: %v", err)
	}
	return engine
}

func mustUserID(test *testing.T, raw string) economy.UserID {
	test.Helper()
	userID, err := economy.NewUserID(raw)
	if err != nil {
		test.Fatalf("user id: %v", err)
	}
	return userID
}

func TestStoreRoundTripsStateThroughEngine(test *testing.T) {
	test.Parallel()
	store := New()
	engine := mustEngine(test, store)
	userID := mustUserID(test, "mem-user")

	if _, err := engine.Deduct(context.Background(), userID, economy.Charge{Amount: 40, Type: economy.TransactionGeneration}); err != nil {
		test.Fatalf("deduct: %v", err)
	}
	state, err := store.LoadState(context.Background(), userID, 10)
	if err != nil {
		test.Fatalf("load: %v", err)
	}
	if state.Balance != 460 || state.Version != 2 || len(state.History) != 2 {
		test.Fatalf("unexpected state: balance %d version %d history %d", state.Balance, state.Version, len(state.History))
	}
	if got := store.Users(); len(got) != 1 || got[0] != "mem-user" {
		test.Fatalf("unexpected users: %v", got)
	}
}

func TestStoreSwapStateRejectsStaleVersion(test *testing.T) {
	test.Parallel()
	store := New()
	engine := mustEngine(test, store)
	userID := mustUserID(test, "stale-user")
	state, err := engine.Hydrate(context.Background(), userID)
	if err != nil {
		test.Fatalf("hydrate: %v", err)
	}
	next := state.Clone()
	next.Version = state.Version + 1
	if err := store.SwapState(context.Background(), next, state.Version, nil); err != nil {
		test.Fatalf("first swap: %v", err)
	}
	if err := store.SwapState(context.Background(), next, state.Version, nil); !errors.Is(err, economy.ErrConcurrentModification) {
		test.Fatalf("expected ErrConcurrentModification, got %v", err)
	}
	var operationError economy.OperationError
	if err := store.SwapState(context.Background(), next, state.Version, nil); !errors.As(err, &operationError) || operationError.Code() != errorCodeCAS {
		test.Fatalf("expected a store.state.cas error, got %v", err)
	}
}

func TestStoreCorruptSnapshotIsReset(test *testing.T) {
	test.Parallel()
	store := New()
	userID := mustUserID(test, "corrupt")
	store.PutRawSnapshot(userID, []byte(`{"balance":`), 4)
	if _, err := store.LoadState(context.Background(), userID, 10); !errors.Is(err, economy.ErrCorruptState) {
		test.Fatalf("expected ErrCorruptState, got %v", err)
	}
	engine := mustEngine(test, store)

	state, err := engine.Hydrate(context.Background(), userID)
	if err != nil {
		test.Fatalf("hydrate: %v", err)
	}
	if state.Balance != 500 || state.Version != 5 {
		test.Fatalf("expected signup default at version 5, got balance %d version %d", state.Balance, state.Version)
	}
}

func TestStoreRejectsDuplicateTransactionIDs(test *testing.T) {
	test.Parallel()
	store := New()
	engine, err := economy.NewEngine(store, func() time.Time { return testNow }, economy.WithIDGenerator(func() string { return "same-id" }))
	if err != nil {
		test.Fatalf("engine init failed: %v", err)
	}
	userID := mustUserID(test, "dupe")
	if _, err := engine.Hydrate(context.Background(), userID); err != nil {
		test.Fatalf("hydrate: %v", err)
	}
	_, err = engine.Credit(context.Background(), userID, economy.Charge{Amount: 1, Type: economy.TransactionPurchase})
	if !errors.Is(err, economy.ErrDuplicateTransactionID) {
		test.Fatalf("expected ErrDuplicateTransactionID, got %v", err)
	}
}

func TestStoreListsTransactionsNewestFirst(test *testing.T) {
	test.Parallel()
	store := New()
	userID := mustUserID(test, "lister")
	moments := []time.Time{testNow, testNow.Add(time.Minute), testNow.Add(2 * time.Minute)}
	var index int
	engine, err := economy.NewEngine(store, func() time.Time { return moments[min(index, len(moments)-1)] })
	if err != nil {
		test.Fatalf("engine init failed: %v", err)
	}
	for index = 0; index < len(moments); index++ {
		if _, err := engine.Credit(context.Background(), userID, economy.Charge{Amount: economy.Ink(index + 1), Type: economy.TransactionPurchase}); err != nil {
			test.Fatalf("credit %d: %v", index, err)
		}
	}
	newest, err := store.ListTransactions(context.Background(), userID, 0, 1)
	if err != nil {
		test.Fatalf("list: %v", err)
	}
	if len(newest) != 1 || newest[0].Amount != 3 || newest[0].Sequence != 4 {
		test.Fatalf("expected the newest credit at sequence 4, got %+v", newest)
	}
	listed, err := store.ListTransactions(context.Background(), userID, newest[0].Sequence, 10)
	if err != nil {
		test.Fatalf("list: %v", err)
	}
	if len(listed) != 3 || listed[0].Amount != 2 || listed[1].Amount != 1 || listed[2].Type != economy.TransactionSubscriptionGrant {
		test.Fatalf("unexpected listing: %+v", listed)
	}
}

func TestStoreSerializesConcurrentDeductions(test *testing.T) {
	test.Parallel()
	store := New()
	engine, err := economy.NewEngine(store, func() time.Time { return testNow }, economy.WithMaxAttempts(100))
	if err != nil {
		test.Fatalf("engine init failed: %v", err)
	}
	userID := mustUserID(test, "racer")
	if _, err := engine.Hydrate(context.Background(), userID); err != nil {
		test.Fatalf("hydrate: %v", err)
	}

	const workers = 60
	var waitGroup sync.WaitGroup
	var mutex sync.Mutex
	var succeeded, rejected int
	for worker := 0; worker < workers; worker++ {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			_, err := engine.Deduct(context.Background(), userID, economy.Charge{Amount: 10, Type: economy.TransactionGeneration})
			mutex.Lock()
			defer mutex.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, economy.ErrInsufficientBalance):
				rejected++
			default:
				test.Errorf("unexpected error: %v", err)
			}
		}()
	}
	waitGroup.Wait()
	if succeeded != 50 || rejected != 10 {
		test.Fatalf("expected 50 successes and 10 rejections, got %d/%d", succeeded, rejected)
	}
	state, err := engine.State(context.Background(), userID)
	if err != nil {
		test.Fatalf("state: %v", err)
	}
	if state.Balance != 0 {
		test.Fatalf("expected balance 0, got %d", state.Balance)
	}
}
