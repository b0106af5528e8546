package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MarkoPoloResearchLab/ink/pkg/economy"
	gosqlite "github.com/glebarez/go-sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	indexUniqueRefund     = "uniq_transactions_refund_of"
	columnRefundOf        = "refund_of"
	defaultMetadataJSON   = "{}"
	pgUniqueViolationCode = "23505"
	sqliteConstraintCode  = 19
	sequenceStride        = 1000
	errorOperationStore   = "store"
	errorSubjectState     = "state"
	errorSubjectEntry     = "transaction"
	errorCodeCAS          = "cas"
	errorCodeCreate       = "create"
	errorCodeDuplicate    = "duplicate"
	errorCodeEncode       = "encode"
	errorCodeGet          = "get"
	errorCodeInsert       = "insert"
	errorCodeInvalid      = "invalid"
	errorCodeList         = "list"
	errorCodeLoad         = "load"
	errorCodeReplace      = "replace"
)

// Store implements economy.Store using GORM.
type Store struct {
	db *gorm.DB
}

// New returns a Store backed by gorm.DB.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the tables the store needs.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&LedgerStateRecord{}, &TransactionRecord{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (store *Store) LoadState(ctx context.Context, userID economy.UserID, historyLimit int) (economy.LedgerState, error) {
	var record LedgerStateRecord
	err := store.db.WithContext(ctx).Where("user_id = ?", userID.String()).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return economy.LedgerState{}, wrapStoreError(errorSubjectState, errorCodeLoad, economy.ErrStateNotFound)
	}
	if err != nil {
		return economy.LedgerState{}, wrapStoreError(errorSubjectState, errorCodeLoad, err)
	}
	state, err := economy.DecodeSnapshot(record.Snapshot)
	if err != nil {
		return economy.LedgerState{}, wrapStoreError(errorSubjectState, errorCodeLoad, err)
	}
	if state.UserID != userID {
		return economy.LedgerState{}, wrapStoreError(errorSubjectState, errorCodeLoad, fmt.Errorf("%w: snapshot belongs to %s", economy.ErrCorruptState, state.UserID))
	}
	state.Version = record.Version

	query := store.db.WithContext(ctx).Where("user_id = ?", userID.String()).Order("sequence DESC")
	if historyLimit > 0 {
		query = query.Limit(historyLimit)
	}
	var rows []TransactionRecord
	if err := query.Find(&rows).Error; err != nil {
		return economy.LedgerState{}, wrapStoreError(errorSubjectEntry, errorCodeList, err)
	}
	state.History = make([]economy.Transaction, 0, len(rows))
	for index := len(rows) - 1; index >= 0; index-- {
		transaction, err := mapTransaction(rows[index])
		if err != nil {
			return economy.LedgerState{}, wrapStoreError(errorSubjectEntry, errorCodeInvalid, err)
		}
		state.History = append(state.History, transaction)
	}
	return state, nil
}

func (store *Store) CreateState(ctx context.Context, state economy.LedgerState, transactions []economy.Transaction) error {
	return store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := newStateRecord(state, state.Version)
		if err != nil {
			return wrapStoreError(errorSubjectState, errorCodeEncode, err)
		}
		if err := tx.Create(&record).Error; err != nil {
			if isUniqueViolation(err) {
				return wrapStoreError(errorSubjectState, errorCodeCreate, economy.ErrStateExists)
			}
			return wrapStoreError(errorSubjectState, errorCodeCreate, err)
		}
		return insertTransactions(tx, state.Version, transactions)
	})
}

func (store *Store) SwapState(ctx context.Context, state economy.LedgerState, expectedVersion int64, transactions []economy.Transaction) error {
	return store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := newStateRecord(state, state.Version)
		if err != nil {
			return wrapStoreError(errorSubjectState, errorCodeEncode, err)
		}
		result := tx.Model(&LedgerStateRecord{}).
			Where("user_id = ? AND version = ?", record.UserID, expectedVersion).
			Updates(map[string]interface{}{
				"balance":    record.Balance,
				"tier":       record.Tier,
				"version":    record.Version,
				"snapshot":   record.Snapshot,
				"updated_at": record.UpdatedAt,
			})
		if result.Error != nil {
			return wrapStoreError(errorSubjectState, errorCodeCAS, result.Error)
		}
		if result.RowsAffected == 0 {
			return wrapStoreError(errorSubjectState, errorCodeCAS, economy.ErrConcurrentModification)
		}
		return insertTransactions(tx, state.Version, transactions)
	})
}

// ReplaceState overwrites the row without decoding it and moves the version past the stored one.
func (store *Store) ReplaceState(ctx context.Context, state economy.LedgerState, transactions []economy.Transaction) error {
	return store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing LedgerStateRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("user_id", "version").
			Where("user_id = ?", state.UserID.String()).
			Take(&existing).Error
		version := state.Version
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
		case err != nil:
			return wrapStoreError(errorSubjectState, errorCodeReplace, err)
		case existing.Version >= version:
			version = existing.Version + 1
		}
		record, err := newStateRecord(state, version)
		if err != nil {
			return wrapStoreError(errorSubjectState, errorCodeEncode, err)
		}
		if err := tx.Save(&record).Error; err != nil {
			return wrapStoreError(errorSubjectState, errorCodeReplace, err)
		}
		return insertTransactions(tx, version, transactions)
	})
}

func (store *Store) FindTransaction(ctx context.Context, userID economy.UserID, transactionID string) (economy.Transaction, error) {
	var row TransactionRecord
	err := store.db.WithContext(ctx).
		Where("user_id = ? AND transaction_id = ?", userID.String(), transactionID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return economy.Transaction{}, wrapStoreError(errorSubjectEntry, errorCodeGet, economy.ErrUnknownTransaction)
	}
	if err != nil {
		return economy.Transaction{}, wrapStoreError(errorSubjectEntry, errorCodeGet, err)
	}
	transaction, err := mapTransaction(row)
	if err != nil {
		return economy.Transaction{}, wrapStoreError(errorSubjectEntry, errorCodeInvalid, err)
	}
	return transaction, nil
}

func (store *Store) FindRefund(ctx context.Context, userID economy.UserID, transactionID string) (economy.Transaction, bool, error) {
	var rows []TransactionRecord
	err := store.db.WithContext(ctx).
		Where("user_id = ? AND refund_of = ?", userID.String(), transactionID).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return economy.Transaction{}, false, wrapStoreError(errorSubjectEntry, errorCodeGet, err)
	}
	if len(rows) == 0 {
		return economy.Transaction{}, false, nil
	}
	transaction, err := mapTransaction(rows[0])
	if err != nil {
		return economy.Transaction{}, false, wrapStoreError(errorSubjectEntry, errorCodeInvalid, err)
	}
	return transaction, true, nil
}

func (store *Store) ListTransactions(ctx context.Context, userID economy.UserID, beforeSequence int64, limit int) ([]economy.Transaction, error) {
	query := store.db.WithContext(ctx).Where("user_id = ?", userID.String())
	if beforeSequence != 0 {
		query = query.Where("sequence < ?", beforeSequence)
	}

	var rows []TransactionRecord
	err := query.
		Order("sequence DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, wrapStoreError(errorSubjectEntry, errorCodeList, err)
	}

	transactions := make([]economy.Transaction, 0, len(rows))
	for _, row := range rows {
		transaction, err := mapTransaction(row)
		if err != nil {
			return nil, wrapStoreError(errorSubjectEntry, errorCodeInvalid, err)
		}
		transactions = append(transactions, transaction)
	}
	return transactions, nil
}

func insertTransactions(tx *gorm.DB, version int64, transactions []economy.Transaction) error {
	for index, transaction := range transactions {
		row, err := newTransactionRecord(transaction, version*sequenceStride+int64(index))
		if err != nil {
			return wrapStoreError(errorSubjectEntry, errorCodeEncode, err)
		}
		err = tx.Create(&row).Error
		switch {
		case err == nil:
		case isRefundConflict(err):
			return wrapStoreError(errorSubjectEntry, errorCodeDuplicate, economy.ErrAlreadyRefunded)
		case isUniqueViolation(err):
			return wrapStoreError(errorSubjectEntry, errorCodeDuplicate, economy.ErrDuplicateTransactionID)
		default:
			return wrapStoreError(errorSubjectEntry, errorCodeInsert, err)
		}
	}
	return nil
}

func newStateRecord(state economy.LedgerState, version int64) (LedgerStateRecord, error) {
	state.Version = version
	state.History = nil
	snapshot, err := economy.EncodeSnapshot(state)
	if err != nil {
		return LedgerStateRecord{}, err
	}
	now := time.Now().UTC()
	return LedgerStateRecord{
		UserID:    state.UserID.String(),
		Balance:   state.Balance.Int64(),
		Tier:      state.Tier.String(),
		Version:   version,
		Snapshot:  datatypes.JSON(snapshot),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func newTransactionRecord(transaction economy.Transaction, sequence int64) (TransactionRecord, error) {
	metadata, err := json.Marshal(transaction.Metadata.Clone())
	if err != nil {
		return TransactionRecord{}, err
	}
	var refundOf *string
	if transaction.RefundOf != "" {
		value := transaction.RefundOf
		refundOf = &value
	}
	return TransactionRecord{
		TransactionID: transaction.ID,
		UserID:        transaction.UserID,
		Sequence:      sequence,
		Type:          transaction.Type.String(),
		Amount:        transaction.Amount.Int64(),
		BalanceAfter:  transaction.BalanceAfter.Int64(),
		RefundOf:      refundOf,
		Metadata:      datatypesJSON(metadata),
		CreatedAt:     transaction.CreatedAt.UTC(),
	}, nil
}

func mapTransaction(row TransactionRecord) (economy.Transaction, error) {
	transactionType, err := economy.ParseTransactionType(row.Type)
	if err != nil {
		return economy.Transaction{}, err
	}
	metadata := economy.Metadata{}
	if len(row.Metadata) > 0 {
		if err := json.Unmarshal(row.Metadata, &metadata); err != nil {
			return economy.Transaction{}, err
		}
	}
	transaction := economy.Transaction{
		ID:           row.TransactionID,
		UserID:       row.UserID,
		Type:         transactionType,
		Amount:       economy.Ink(row.Amount),
		BalanceAfter: economy.Ink(row.BalanceAfter),
		CreatedAt:    row.CreatedAt.UTC(),
		Metadata:     metadata,
		Sequence:     row.Sequence,
	}
	if row.RefundOf != nil {
		transaction.RefundOf = *row.RefundOf
	}
	return transaction, nil
}

func wrapStoreError(subject string, code string, err error) error {
	return economy.WrapError(errorOperationStore, subject, code, err)
}

func datatypesJSON(raw []byte) datatypes.JSON {
	if len(raw) == 0 || string(raw) == "null" {
		return datatypes.JSON([]byte(defaultMetadataJSON))
	}
	return datatypes.JSON(raw)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolationCode
	}
	var sqliteErr *gosqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xFF == sqliteConstraintCode
	}
	return false
}

func isRefundConflict(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolationCode && pgErr.ConstraintName == indexUniqueRefund
	}
	var sqliteErr *gosqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xFF == sqliteConstraintCode && strings.Contains(sqliteErr.Error(), columnRefundOf)
	}
	return false
}
