package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MarkoPoloResearchLab/ink/pkg/economy"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	constraintUniqueRefund = "uniq_transactions_refund_of"
	pgUniqueViolationCode  = "23505"
	sequenceStride         = 1000
	errorOperationStore    = "store"
	errorSubjectSchema     = "schema"
	errorSubjectState      = "state"
	errorSubjectEntry      = "transaction"
	errorCodeBegin         = "begin"
	errorCodeCAS           = "cas"
	errorCodeCommit        = "commit"
	errorCodeCreate        = "create"
	errorCodeDuplicate     = "duplicate"
	errorCodeEncode        = "encode"
	errorCodeGet           = "get"
	errorCodeInsert        = "insert"
	errorCodeInvalid       = "invalid"
	errorCodeList          = "list"
	errorCodeLoad          = "load"
	errorCodeMigrate       = "migrate"
	errorCodeReplace       = "replace"

	// Schema matches the tables gormstore migrates, so either store can serve the same database.
	Schema = `
		create table if not exists ledger_states (
			user_id text primary key,
			balance bigint not null,
			tier text not null,
			version bigint not null,
			snapshot jsonb not null,
			created_at timestamptz not null default now(),
			updated_at timestamptz not null default now()
		);
		create table if not exists ledger_transactions (
			transaction_id text primary key,
			user_id text not null,
			sequence bigint not null,
			type text not null,
			amount bigint not null,
			balance_after bigint not null,
			refund_of text,
			metadata jsonb not null default '{}'::jsonb,
			created_at timestamptz not null
		);
		create index if not exists idx_transactions_user_sequence on ledger_transactions(user_id, sequence);
		create index if not exists idx_ledger_transactions_created_at on ledger_transactions(created_at);
		create unique index if not exists uniq_transactions_refund_of on ledger_transactions(refund_of);
	`

	sqlSelectState = `
		select version, snapshot::text from ledger_states where user_id = $1
	`

	sqlSelectVersionForUpdate = `
		select version from ledger_states where user_id = $1 for update
	`

	sqlInsertState = `
		insert into ledger_states(user_id, balance, tier, version, snapshot)
		values ($1, $2, $3, $4, $5::jsonb)
	`

	sqlSwapState = `
		update ledger_states
		set balance = $2, tier = $3, version = $4, snapshot = $5::jsonb, updated_at = now()
		where user_id = $1 and version = $6
	`

	sqlUpsertState = `
		insert into ledger_states(user_id, balance, tier, version, snapshot)
		values ($1, $2, $3, $4, $5::jsonb)
		on conflict (user_id) do update
		set balance = excluded.balance, tier = excluded.tier, version = excluded.version,
			snapshot = excluded.snapshot, updated_at = now()
	`

	sqlInsertTransaction = `
		insert into ledger_transactions(
			transaction_id, user_id, sequence, type, amount, balance_after, refund_of, metadata, created_at
		)
		values ($1, $2, $3, $4, $5, $6, nullif($7,''), coalesce(nullif($8,''),'{}')::jsonb, to_timestamp($9))
	`

	sqlTransactionColumns = `
		transaction_id, user_id, type, amount, balance_after, coalesce(refund_of,''),
		coalesce(metadata::text,'{}'), extract(epoch from created_at)::bigint, sequence
	`

	sqlRecentTransactions = `
		select ` + sqlTransactionColumns + `
		from ledger_transactions
		where user_id = $1
		order by sequence desc
		limit $2
	`

	sqlSelectTransaction = `
		select ` + sqlTransactionColumns + `
		from ledger_transactions
		where user_id = $1 and transaction_id = $2
	`

	sqlSelectRefund = `
		select ` + sqlTransactionColumns + `
		from ledger_transactions
		where user_id = $1 and refund_of = $2
		limit 1
	`

	sqlListTransactionsBefore = `
		select ` + sqlTransactionColumns + `
		from ledger_transactions
		where user_id = $1 and ($2::bigint = 0 or sequence < $2::bigint)
		order by sequence desc
		limit $3
	`

	unlimitedHistory = 1 << 31
)

// Store implements economy.Store using a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New returns a Store backed by a pgx pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the tables when they are missing.
func (store *Store) EnsureSchema(ctx context.Context) error {
	if _, err := store.pool.Exec(ctx, Schema); err != nil {
		return wrapStoreError(errorSubjectSchema, errorCodeMigrate, err)
	}
	return nil
}

func (store *Store) LoadState(ctx context.Context, userID economy.UserID, historyLimit int) (economy.LedgerState, error) {
	var (
		version  int64
		snapshot string
	)
	err := store.pool.QueryRow(ctx, sqlSelectState, userID.String()).Scan(&version, &snapshot)
	if errors.Is(err, pgx.ErrNoRows) {
		return economy.LedgerState{}, wrapStoreError(errorSubjectState, errorCodeLoad, economy.ErrStateNotFound)
	}
	if err != nil {
		return economy.LedgerState{}, wrapStoreError(errorSubjectState, errorCodeLoad, err)
	}
	state, err := economy.DecodeSnapshot([]byte(snapshot))
	if err != nil {
		return economy.LedgerState{}, wrapStoreError(errorSubjectState, errorCodeLoad, err)
	}
	if state.UserID != userID {
		return economy.LedgerState{}, wrapStoreError(errorSubjectState, errorCodeLoad, fmt.Errorf("%w: snapshot belongs to %s", economy.ErrCorruptState, state.UserID))
	}
	state.Version = version

	limit := historyLimit
	if limit <= 0 {
		limit = unlimitedHistory
	}
	recent, err := store.queryTransactions(ctx, sqlRecentTransactions, userID.String(), limit)
	if err != nil {
		return economy.LedgerState{}, err
	}
	state.History = make([]economy.Transaction, 0, len(recent))
	for index := len(recent) - 1; index >= 0; index-- {
		state.History = append(state.History, recent[index])
	}
	return state, nil
}

func (store *Store) CreateState(ctx context.Context, state economy.LedgerState, transactions []economy.Transaction) error {
	return store.withTx(ctx, func(tx pgx.Tx) error {
		snapshot, err := encodeState(state, state.Version)
		if err != nil {
			return wrapStoreError(errorSubjectState, errorCodeEncode, err)
		}
		_, err = tx.Exec(ctx, sqlInsertState, state.UserID.String(), state.Balance.Int64(), state.Tier.String(), state.Version, snapshot)
		if isUniqueViolation(err) {
			return wrapStoreError(errorSubjectState, errorCodeCreate, economy.ErrStateExists)
		}
		if err != nil {
			return wrapStoreError(errorSubjectState, errorCodeCreate, err)
		}
		return insertTransactions(ctx, tx, state.Version, transactions)
	})
}

func (store *Store) SwapState(ctx context.Context, state economy.LedgerState, expectedVersion int64, transactions []economy.Transaction) error {
	return store.withTx(ctx, func(tx pgx.Tx) error {
		snapshot, err := encodeState(state, state.Version)
		if err != nil {
			return wrapStoreError(errorSubjectState, errorCodeEncode, err)
		}
		tag, err := tx.Exec(ctx, sqlSwapState, state.UserID.String(), state.Balance.Int64(), state.Tier.String(), state.Version, snapshot, expectedVersion)
		if err != nil {
			return wrapStoreError(errorSubjectState, errorCodeCAS, err)
		}
		if tag.RowsAffected() == 0 {
			return wrapStoreError(errorSubjectState, errorCodeCAS, economy.ErrConcurrentModification)
		}
		return insertTransactions(ctx, tx, state.Version, transactions)
	})
}

func (store *Store) ReplaceState(ctx context.Context, state economy.LedgerState, transactions []economy.Transaction) error {
	return store.withTx(ctx, func(tx pgx.Tx) error {
		version := state.Version
		var existing int64
		err := tx.QueryRow(ctx, sqlSelectVersionForUpdate, state.UserID.String()).Scan(&existing)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
		case err != nil:
			return wrapStoreError(errorSubjectState, errorCodeReplace, err)
		case existing >= version:
			version = existing + 1
		}
		snapshot, err := encodeState(state, version)
		if err != nil {
			return wrapStoreError(errorSubjectState, errorCodeEncode, err)
		}
		if _, err := tx.Exec(ctx, sqlUpsertState, state.UserID.String(), state.Balance.Int64(), state.Tier.String(), version, snapshot); err != nil {
			return wrapStoreError(errorSubjectState, errorCodeReplace, err)
		}
		return insertTransactions(ctx, tx, version, transactions)
	})
}

func (store *Store) FindTransaction(ctx context.Context, userID economy.UserID, transactionID string) (economy.Transaction, error) {
	transaction, err := scanTransaction(store.pool.QueryRow(ctx, sqlSelectTransaction, userID.String(), transactionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return economy.Transaction{}, wrapStoreError(errorSubjectEntry, errorCodeGet, economy.ErrUnknownTransaction)
	}
	if err != nil {
		return economy.Transaction{}, wrapStoreError(errorSubjectEntry, errorCodeGet, err)
	}
	return transaction, nil
}

func (store *Store) FindRefund(ctx context.Context, userID economy.UserID, transactionID string) (economy.Transaction, bool, error) {
	transaction, err := scanTransaction(store.pool.QueryRow(ctx, sqlSelectRefund, userID.String(), transactionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return economy.Transaction{}, false, nil
	}
	if err != nil {
		return economy.Transaction{}, false, wrapStoreError(errorSubjectEntry, errorCodeGet, err)
	}
	return transaction, true, nil
}

func (store *Store) ListTransactions(ctx context.Context, userID economy.UserID, beforeSequence int64, limit int) ([]economy.Transaction, error) {
	return store.queryTransactions(ctx, sqlListTransactionsBefore, userID.String(), beforeSequence, limit)
}

func (store *Store) queryTransactions(ctx context.Context, query string, arguments ...any) ([]economy.Transaction, error) {
	rows, err := store.pool.Query(ctx, query, arguments...)
	if err != nil {
		return nil, wrapStoreError(errorSubjectEntry, errorCodeList, err)
	}
	defer rows.Close()

	var transactions []economy.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, wrapStoreError(errorSubjectEntry, errorCodeInvalid, err)
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError(errorSubjectEntry, errorCodeList, err)
	}
	return transactions, nil
}

func (store *Store) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := store.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return wrapStoreError(errorSubjectState, errorCodeBegin, err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapStoreError(errorSubjectState, errorCodeCommit, err)
	}
	return nil
}

func insertTransactions(ctx context.Context, tx pgx.Tx, version int64, transactions []economy.Transaction) error {
	for index, transaction := range transactions {
		metadata, err := json.Marshal(transaction.Metadata.Clone())
		if err != nil {
			return wrapStoreError(errorSubjectEntry, errorCodeEncode, err)
		}
		_, err = tx.Exec(ctx, sqlInsertTransaction,
			transaction.ID,
			transaction.UserID,
			version*sequenceStride+int64(index),
			transaction.Type.String(),
			transaction.Amount.Int64(),
			transaction.BalanceAfter.Int64(),
			transaction.RefundOf,
			string(metadata),
			transaction.CreatedAt.Unix(),
		)
		if err == nil {
			continue
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			if pgErr.ConstraintName == constraintUniqueRefund {
				return wrapStoreError(errorSubjectEntry, errorCodeDuplicate, economy.ErrAlreadyRefunded)
			}
			return wrapStoreError(errorSubjectEntry, errorCodeDuplicate, economy.ErrDuplicateTransactionID)
		}
		return wrapStoreError(errorSubjectEntry, errorCodeInsert, err)
	}
	return nil
}

func encodeState(state economy.LedgerState, version int64) (string, error) {
	state.Version = version
	state.History = nil
	snapshot, err := economy.EncodeSnapshot(state)
	if err != nil {
		return "", err
	}
	return string(snapshot), nil
}

func scanTransaction(row pgx.Row) (economy.Transaction, error) {
	var (
		transactionID  string
		userID         string
		typeValue      string
		amount         int64
		balanceAfter   int64
		refundOf       string
		metadataText   string
		createdUnixUTC int64
		sequence       int64
	)
	if err := row.Scan(&transactionID, &userID, &typeValue, &amount, &balanceAfter, &refundOf, &metadataText, &createdUnixUTC, &sequence); err != nil {
		return economy.Transaction{}, err
	}
	transactionType, err := economy.ParseTransactionType(typeValue)
	if err != nil {
		return economy.Transaction{}, err
	}
	metadata := economy.Metadata{}
	if err := json.Unmarshal([]byte(metadataText), &metadata); err != nil {
		return economy.Transaction{}, err
	}
	return economy.Transaction{
		ID:           transactionID,
		UserID:       userID,
		Type:         transactionType,
		Amount:       economy.Ink(amount),
		BalanceAfter: economy.Ink(balanceAfter),
		RefundOf:     refundOf,
		CreatedAt:    time.Unix(createdUnixUTC, 0).UTC(),
		Metadata:     metadata,
		Sequence:     sequence,
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode
}

func wrapStoreError(subject string, code string, err error) error {
	return economy.WrapError(errorOperationStore, subject, code, err)
}
