package economy

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

var testNow = time.Date(2026, time.March, 10, 15, 4, 5, 0, time.UTC)

type stubStore struct {
	mutex        sync.Mutex
	states       map[UserID]LedgerState
	corrupt      map[UserID]bool
	transactions []Transaction
	conflicts    int
	swapCalls    int
	loadErr      error
}

func newStubStore() *stubStore {
	return &stubStore{
		states:  map[UserID]LedgerState{},
		corrupt: map[UserID]bool{},
	}
}

func (store *stubStore) LoadState(_ context.Context, userID UserID, historyLimit int) (LedgerState, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	if store.loadErr != nil {
		return LedgerState{}, store.loadErr
	}
	if store.corrupt[userID] {
		return LedgerState{}, fmt.Errorf("%w: stub", ErrCorruptState)
	}
	state, ok := store.states[userID]
	if !ok {
		return LedgerState{}, ErrStateNotFound
	}
	loaded := state.Clone()
	loaded.History = nil
	for _, transaction := range store.transactions {
		if transaction.UserID == userID.String() {
			loaded.History = append(loaded.History, transaction)
		}
	}
	if historyLimit > 0 && len(loaded.History) > historyLimit {
		loaded.History = loaded.History[len(loaded.History)-historyLimit:]
	}
	return loaded, nil
}

func (store *stubStore) CreateState(_ context.Context, state LedgerState, transactions []Transaction) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	if _, ok := store.states[state.UserID]; ok {
		return ErrStateExists
	}
	store.states[state.UserID] = state.Clone()
	store.transactions = append(store.transactions, transactions...)
	return nil
}

func (store *stubStore) SwapState(_ context.Context, state LedgerState, expectedVersion int64, transactions []Transaction) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.swapCalls++
	if store.conflicts > 0 {
		store.conflicts--
		return WrapError("store", "state", "cas", ErrConcurrentModification)
	}
	current, ok := store.states[state.UserID]
	if !ok {
		return ErrStateNotFound
	}
	if current.Version != expectedVersion {
		return ErrConcurrentModification
	}
	store.states[state.UserID] = state.Clone()
	store.transactions = append(store.transactions, transactions...)
	return nil
}

func (store *stubStore) ReplaceState(_ context.Context, state LedgerState, transactions []Transaction) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	if current, ok := store.states[state.UserID]; ok && current.Version >= state.Version {
		state.Version = current.Version + 1
	}
	delete(store.corrupt, state.UserID)
	store.states[state.UserID] = state.Clone()
	store.transactions = append(store.transactions, transactions...)
	return nil
}

func (store *stubStore) FindTransaction(_ context.Context, userID UserID, transactionID string) (Transaction, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	for _, transaction := range store.transactions {
		if transaction.UserID == userID.String() && transaction.ID == transactionID {
			return transaction, nil
		}
	}
	return Transaction{}, ErrUnknownTransaction
}

func (store *stubStore) FindRefund(_ context.Context, userID UserID, transactionID string) (Transaction, bool, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	for _, transaction := range store.transactions {
		if transaction.UserID == userID.String() && transaction.RefundOf == transactionID {
			return transaction, true, nil
		}
	}
	return Transaction{}, false, nil
}

func (store *stubStore) ListTransactions(_ context.Context, userID UserID, beforeSequence int64, limit int) ([]Transaction, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	var listed []Transaction
	for index := len(store.transactions) - 1; index >= 0 && len(listed) < limit; index-- {
		transaction := store.transactions[index]
		transaction.Sequence = int64(index + 1)
		if transaction.UserID != userID.String() {
			continue
		}
		if beforeSequence != 0 && transaction.Sequence >= beforeSequence {
			continue
		}
		listed = append(listed, transaction)
	}
	return listed, nil
}

func (store *stubStore) seed(state LedgerState) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	if state.Version == 0 {
		state.Version = 1
	}
	store.states[state.UserID] = state.Clone()
}

func (store *stubStore) mustState(test *testing.T, userID UserID) LedgerState {
	test.Helper()
	store.mutex.Lock()
	defer store.mutex.Unlock()
	state, ok := store.states[userID]
	if !ok {
		test.Fatalf("no stored state for %s", userID)
	}
	return state.Clone()
}

func (store *stubStore) transactionsOfType(transactionType TransactionType) []Transaction {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	var matched []Transaction
	for _, transaction := range store.transactions {
		if transaction.Type == transactionType {
			matched = append(matched, transaction)
		}
	}
	return matched
}

type recorderLogger struct {
	mutex   sync.Mutex
	entries []OperationLog
}

func (logger *recorderLogger) LogOperation(_ context.Context, entry OperationLog) {
	logger.mutex.Lock()
	defer logger.mutex.Unlock()
	logger.entries = append(logger.entries, entry)
}

func (logger *recorderLogger) last(test *testing.T) OperationLog {
	test.Helper()
	logger.mutex.Lock()
	defer logger.mutex.Unlock()
	if len(logger.entries) == 0 {
		test.Fatalf("expected a log entry")
	}
	return logger.entries[len(logger.entries)-1]
}

func sequentialIDs() func() string {
	var counter atomic.Int64
	return func() string {
		return fmt.Sprintf("tx-%d", counter.Add(1))
	}
}

func fixedClock(moment time.Time) func() time.Time {
	return func() time.Time { return moment }
}

func mustNewEngine(test *testing.T, store Store, options ...EngineOption) *Engine {
	test.Helper()
	options = append([]EngineOption{WithIDGenerator(sequentialIDs())}, options...)
	engine, err := NewEngine(store, fixedClock(testNow), options...)
	if err != nil {
		test.Fatalf("engine init failed: %v", err)
	}
	return engine
}

func mustUserID(test *testing.T, raw string) UserID {
	test.Helper()
	userID, err := NewUserID(raw)
	if err != nil {
		test.Fatalf("user id: %v", err)
	}
	return userID
}

// newState is a stored account that already logged in today.
func newState(userID UserID, tier Tier, balance Ink) LedgerState {
	today := CivilDay(testNow)
	return LedgerState{
		UserID:        userID,
		Balance:       balance,
		Tier:          tier,
		UsageDay:      today,
		UsageToday:    map[ActionID]int{},
		UsageCycle:    map[ActionID]int{},
		StreakDays:    1,
		LastLoginDate: today,
		RenewalDate:   today.AddDate(0, 0, 15),
		Version:       1,
	}
}

func day(offset int) time.Time {
	return CivilDay(testNow).AddDate(0, 0, offset).Add(9 * time.Hour)
}
