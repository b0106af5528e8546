package gormstore

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LedgerStateRecord mirrors the ledger_states table.
// Balance, tier and version are copied out of the snapshot so they stay queryable when the snapshot is not.
type LedgerStateRecord struct {
	UserID    string         `gorm:"primaryKey"`
	Balance   int64          `gorm:"not null"`
	Tier      string         `gorm:"not null"`
	Version   int64          `gorm:"not null"`
	Snapshot  datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
}

func (LedgerStateRecord) TableName() string { return "ledger_states" }

// TransactionRecord mirrors the ledger_transactions table.
type TransactionRecord struct {
	TransactionID string         `gorm:"primaryKey"`
	UserID        string         `gorm:"not null;index:idx_transactions_user_sequence,priority:1"`
	Sequence      int64          `gorm:"not null;index:idx_transactions_user_sequence,priority:2"`
	Type          string         `gorm:"not null"`
	Amount        int64          `gorm:"not null"`
	BalanceAfter  int64          `gorm:"not null"`
	RefundOf      *string        `gorm:"index:uniq_transactions_refund_of,unique"`
	Metadata      datatypes.JSON `gorm:"not null"`
	CreatedAt     time.Time      `gorm:"not null;index"`
}

func (TransactionRecord) TableName() string { return "ledger_transactions" }

func (record *TransactionRecord) BeforeCreate(tx *gorm.DB) error {
	if record.TransactionID == "" {
		record.TransactionID = uuid.NewString()
	}
	return nil
}
