package economy

import "context"

// Store is the persistence contract used by Engine.
// Implementations must make SwapState atomic: the state is written and the transactions are
// appended only when the stored version still equals expectedVersion.
type Store interface {
	// LoadState returns the state with its most recent historyLimit transactions in chronological order.
	// Missing state yields ErrStateNotFound; an unreadable snapshot yields ErrCorruptState.
	LoadState(ctx context.Context, userID UserID, historyLimit int) (LedgerState, error)
	// CreateState inserts a new state; ErrStateExists when one is already stored.
	CreateState(ctx context.Context, state LedgerState, transactions []Transaction) error
	// SwapState replaces the state if the stored version equals expectedVersion; ErrConcurrentModification otherwise.
	SwapState(ctx context.Context, state LedgerState, expectedVersion int64, transactions []Transaction) error
	// ReplaceState overwrites whatever is stored, including unreadable snapshots, and bumps the version.
	ReplaceState(ctx context.Context, state LedgerState, transactions []Transaction) error
	// FindTransaction returns one transaction of the user; ErrUnknownTransaction when absent.
	FindTransaction(ctx context.Context, userID UserID, transactionID string) (Transaction, error)
	// FindRefund returns the refund issued for a transaction, if any.
	FindRefund(ctx context.Context, userID UserID, transactionID string) (Transaction, bool, error)
	// ListTransactions lists transactions with a sequence below beforeSequence, newest first.
	// Zero starts from the newest transaction.
	ListTransactions(ctx context.Context, userID UserID, beforeSequence int64, limit int) ([]Transaction, error)
}
