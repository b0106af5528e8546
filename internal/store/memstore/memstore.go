// Package memstore keeps economy state in process memory.
// Snapshots are stored encoded, so a process-local store exercises the same codec as the database stores.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/MarkoPoloResearchLab/ink/pkg/economy"
)

const (
	errorOperationStore = "store"
	errorSubjectState   = "state"
	errorSubjectEntry   = "transaction"
	errorCodeLoad       = "load"
	errorCodeCreate     = "create"
	errorCodeCAS        = "cas"
	errorCodeReplace    = "replace"
	errorCodeDuplicate  = "duplicate"
	errorCodeGet        = "get"
)

type record struct {
	snapshot []byte
	version  int64
}

// Store implements economy.Store in memory.
type Store struct {
	mutex          sync.Mutex
	states         map[string]record
	transactions   map[string][]economy.Transaction
	transactionIDs map[string]struct{}
	refunds        map[string]map[string]economy.Transaction
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		states:         map[string]record{},
		transactions:   map[string][]economy.Transaction{},
		transactionIDs: map[string]struct{}{},
		refunds:        map[string]map[string]economy.Transaction{},
	}
}

// LoadState decodes the stored snapshot; its version and history come from the store.
func (store *Store) LoadState(ctx context.Context, userID economy.UserID, historyLimit int) (economy.LedgerState, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	stored, ok := store.states[userID.String()]
	if !ok {
		return economy.LedgerState{}, wrapStoreError(errorSubjectState, errorCodeLoad, economy.ErrStateNotFound)
	}
	state, err := economy.DecodeSnapshot(stored.snapshot)
	if err != nil {
		return economy.LedgerState{}, wrapStoreError(errorSubjectState, errorCodeLoad, err)
	}
	if state.UserID != userID {
		return economy.LedgerState{}, wrapStoreError(errorSubjectState, errorCodeLoad, economy.ErrCorruptState)
	}
	state.Version = stored.version
	state.History = store.recent(userID.String(), historyLimit)
	return state, nil
}

func (store *Store) CreateState(ctx context.Context, state economy.LedgerState, transactions []economy.Transaction) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	if _, exists := store.states[state.UserID.String()]; exists {
		return wrapStoreError(errorSubjectState, errorCodeCreate, economy.ErrStateExists)
	}
	return store.write(state, state.Version, transactions, errorCodeCreate)
}

func (store *Store) SwapState(ctx context.Context, state economy.LedgerState, expectedVersion int64, transactions []economy.Transaction) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	stored, exists := store.states[state.UserID.String()]
	if !exists {
		return wrapStoreError(errorSubjectState, errorCodeCAS, economy.ErrStateNotFound)
	}
	if stored.version != expectedVersion {
		return wrapStoreError(errorSubjectState, errorCodeCAS, economy.ErrConcurrentModification)
	}
	return store.write(state, state.Version, transactions, errorCodeCAS)
}

// ReplaceState overwrites the stored snapshot even when it cannot be decoded.
func (store *Store) ReplaceState(ctx context.Context, state economy.LedgerState, transactions []economy.Transaction) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	version := state.Version
	if stored, exists := store.states[state.UserID.String()]; exists && stored.version >= version {
		version = stored.version + 1
	}
	return store.write(state, version, transactions, errorCodeReplace)
}

func (store *Store) FindTransaction(ctx context.Context, userID economy.UserID, transactionID string) (economy.Transaction, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	for _, transaction := range store.transactions[userID.String()] {
		if transaction.ID == transactionID {
			return cloneTransaction(transaction), nil
		}
	}
	return economy.Transaction{}, wrapStoreError(errorSubjectEntry, errorCodeGet, economy.ErrUnknownTransaction)
}

func (store *Store) FindRefund(ctx context.Context, userID economy.UserID, transactionID string) (economy.Transaction, bool, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	refund, found := store.refunds[userID.String()][transactionID]
	return cloneTransaction(refund), found, nil
}

func (store *Store) ListTransactions(ctx context.Context, userID economy.UserID, beforeSequence int64, limit int) ([]economy.Transaction, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	if limit <= 0 {
		return nil, nil
	}
	log := store.transactions[userID.String()]
	listed := make([]economy.Transaction, 0, limit)
	for index := len(log) - 1; index >= 0 && len(listed) < limit; index-- {
		transaction := log[index]
		if beforeSequence != 0 && transaction.Sequence >= beforeSequence {
			continue
		}
		listed = append(listed, cloneTransaction(transaction))
	}
	return listed, nil
}

// PutRawSnapshot stores bytes as a user's snapshot without validation.
func (store *Store) PutRawSnapshot(userID economy.UserID, raw []byte, version int64) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.states[userID.String()] = record{snapshot: append([]byte(nil), raw...), version: version}
}

// Users lists the users with stored state in name order.
func (store *Store) Users() []string {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	users := make([]string, 0, len(store.states))
	for user := range store.states {
		users = append(users, user)
	}
	sort.Strings(users)
	return users
}

func (store *Store) write(state economy.LedgerState, version int64, transactions []economy.Transaction, code string) error {
	seen := map[string]struct{}{}
	for _, transaction := range transactions {
		if _, duplicate := store.transactionIDs[transaction.ID]; duplicate {
			return wrapStoreError(errorSubjectEntry, errorCodeDuplicate, economy.ErrDuplicateTransactionID)
		}
		if _, duplicate := seen[transaction.ID]; duplicate {
			return wrapStoreError(errorSubjectEntry, errorCodeDuplicate, economy.ErrDuplicateTransactionID)
		}
		seen[transaction.ID] = struct{}{}
	}
	state.Version = version
	snapshot, err := economy.EncodeSnapshot(state)
	if err != nil {
		return wrapStoreError(errorSubjectState, code, err)
	}
	userKey := state.UserID.String()
	store.states[userKey] = record{snapshot: snapshot, version: version}
	for _, transaction := range transactions {
		stored := cloneTransaction(transaction)
		stored.Sequence = int64(len(store.transactions[userKey]) + 1)
		store.transactionIDs[stored.ID] = struct{}{}
		store.transactions[userKey] = append(store.transactions[userKey], stored)
		if stored.RefundOf != "" {
			if store.refunds[userKey] == nil {
				store.refunds[userKey] = map[string]economy.Transaction{}
			}
			store.refunds[userKey][stored.RefundOf] = stored
		}
	}
	return nil
}

func (store *Store) recent(userKey string, limit int) []economy.Transaction {
	log := store.transactions[userKey]
	start := 0
	if limit > 0 && len(log) > limit {
		start = len(log) - limit
	}
	history := make([]economy.Transaction, 0, len(log)-start)
	for _, transaction := range log[start:] {
		history = append(history, cloneTransaction(transaction))
	}
	return history
}

func cloneTransaction(transaction economy.Transaction) economy.Transaction {
	transaction.Metadata = transaction.Metadata.Clone()
	return transaction
}

func wrapStoreError(subject string, code string, err error) error {
	return economy.WrapError(errorOperationStore, subject, code, err)
}
