package economy

import (
	"encoding/json"
	"fmt"
	"time"
)

const snapshotDateLayout = "2006-01-02"

// Snapshot is the persisted form of a LedgerState.
type Snapshot struct {
	UserID        string                `json:"userId"`
	Balance       int64                 `json:"balance"`
	Tier          string                `json:"tier"`
	PendingTier   string                `json:"pendingTier,omitempty"`
	StreakDays    int                   `json:"streakDays"`
	LastLoginDate string                `json:"lastLoginDate,omitempty"`
	RenewalDate   string                `json:"renewalDate"`
	UsageDay      string                `json:"usageDay,omitempty"`
	UsageToday    map[string]int        `json:"usageToday,omitempty"`
	UsageCycle    map[string]int        `json:"usageCycle,omitempty"`
	StreakBonuses []SnapshotStreakBonus `json:"streakBonuses,omitempty"`
	Version       int64                 `json:"version"`
	History       []SnapshotTransaction `json:"history"`
}

// SnapshotStreakBonus is the persisted form of a StreakBonus.
type SnapshotStreakBonus struct {
	Day    string `json:"day"`
	Amount int64  `json:"amount"`
}

// SnapshotTransaction is the persisted form of a Transaction.
type SnapshotTransaction struct {
	ID           string            `json:"id"`
	Type         string            `json:"type"`
	Amount       int64             `json:"amount"`
	BalanceAfter int64             `json:"balanceAfter"`
	RefundOf     string            `json:"refundOf,omitempty"`
	Timestamp    int64             `json:"timestamp"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// NewSnapshot converts a state into its persisted form.
func NewSnapshot(state LedgerState) Snapshot {
	snapshot := Snapshot{
		UserID:        state.UserID.String(),
		Balance:       state.Balance.Int64(),
		Tier:          state.Tier.String(),
		PendingTier:   state.PendingTier.String(),
		StreakDays:    state.StreakDays,
		LastLoginDate: formatDay(state.LastLoginDate),
		RenewalDate:   formatDay(state.RenewalDate),
		UsageDay:      formatDay(state.UsageDay),
		UsageToday:    usageToWire(state.UsageToday),
		UsageCycle:    usageToWire(state.UsageCycle),
		Version:       state.Version,
		History:       make([]SnapshotTransaction, 0, len(state.History)),
	}
	for _, bonus := range state.StreakBonuses {
		snapshot.StreakBonuses = append(snapshot.StreakBonuses, SnapshotStreakBonus{Day: formatDay(bonus.Day), Amount: bonus.Amount.Int64()})
	}
	for _, transaction := range state.History {
		snapshot.History = append(snapshot.History, NewSnapshotTransaction(transaction))
	}
	return snapshot
}

// NewSnapshotTransaction converts a transaction into its persisted form.
func NewSnapshotTransaction(transaction Transaction) SnapshotTransaction {
	return SnapshotTransaction{
		ID:           transaction.ID,
		Type:         transaction.Type.String(),
		Amount:       transaction.Amount.Int64(),
		BalanceAfter: transaction.BalanceAfter.Int64(),
		RefundOf:     transaction.RefundOf,
		Timestamp:    transaction.CreatedAt.UTC().Unix(),
		Metadata:     transaction.Metadata.Clone(),
	}
}

// State validates the snapshot and converts it back into a LedgerState.
func (snapshot Snapshot) State() (LedgerState, error) {
	userID, err := NewUserID(snapshot.UserID)
	if err != nil {
		return LedgerState{}, corrupt("user id", err)
	}
	if snapshot.Balance < 0 {
		return LedgerState{}, corrupt("balance", fmt.Errorf("negative balance %d", snapshot.Balance))
	}
	tier, err := ParseTier(snapshot.Tier)
	if err != nil {
		return LedgerState{}, corrupt("tier", err)
	}
	var pendingTier Tier
	if snapshot.PendingTier != "" {
		if pendingTier, err = ParseTier(snapshot.PendingTier); err != nil {
			return LedgerState{}, corrupt("pending tier", err)
		}
	}
	if snapshot.StreakDays < 0 {
		return LedgerState{}, corrupt("streak days", fmt.Errorf("negative streak %d", snapshot.StreakDays))
	}
	lastLoginDate, err := parseDay(snapshot.LastLoginDate)
	if err != nil {
		return LedgerState{}, corrupt("last login date", err)
	}
	renewalDate, err := parseDay(snapshot.RenewalDate)
	if err != nil || renewalDate.IsZero() {
		return LedgerState{}, corrupt("renewal date", fmt.Errorf("invalid renewal date %q", snapshot.RenewalDate))
	}
	usageDay, err := parseDay(snapshot.UsageDay)
	if err != nil {
		return LedgerState{}, corrupt("usage day", err)
	}
	state := LedgerState{
		UserID:        userID,
		Balance:       Ink(snapshot.Balance),
		Tier:          tier,
		PendingTier:   pendingTier,
		UsageDay:      usageDay,
		UsageToday:    usageFromWire(snapshot.UsageToday),
		UsageCycle:    usageFromWire(snapshot.UsageCycle),
		StreakDays:    snapshot.StreakDays,
		LastLoginDate: lastLoginDate,
		RenewalDate:   renewalDate,
		Version:       snapshot.Version,
		History:       make([]Transaction, 0, len(snapshot.History)),
	}
	for _, bonus := range snapshot.StreakBonuses {
		day, err := parseDay(bonus.Day)
		if err != nil || day.IsZero() || bonus.Amount < 0 {
			return LedgerState{}, corrupt("streak bonus", fmt.Errorf("invalid bonus %+v", bonus))
		}
		state.StreakBonuses = append(state.StreakBonuses, StreakBonus{Day: day, Amount: Ink(bonus.Amount)})
	}
	for _, wire := range snapshot.History {
		transaction, err := wire.Transaction(userID)
		if err != nil {
			return LedgerState{}, corrupt("history", err)
		}
		state.History = append(state.History, transaction)
	}
	return state, nil
}

// Transaction converts the persisted form back into a Transaction.
func (wire SnapshotTransaction) Transaction(userID UserID) (Transaction, error) {
	transactionType, err := ParseTransactionType(wire.Type)
	if err != nil {
		return Transaction{}, err
	}
	if wire.ID == "" {
		return Transaction{}, fmt.Errorf("%w: empty transaction id", ErrUnknownTransaction)
	}
	return Transaction{
		ID:           wire.ID,
		UserID:       userID.String(),
		Type:         transactionType,
		Amount:       Ink(wire.Amount),
		BalanceAfter: Ink(wire.BalanceAfter),
		RefundOf:     wire.RefundOf,
		CreatedAt:    time.Unix(wire.Timestamp, 0).UTC(),
		Metadata:     Metadata(wire.Metadata).Clone(),
	}, nil
}

// EncodeSnapshot serializes a state to JSON.
func EncodeSnapshot(state LedgerState) ([]byte, error) {
	return json.Marshal(NewSnapshot(state))
}

// DecodeSnapshot parses a JSON snapshot. Any malformed input yields ErrCorruptState.
func DecodeSnapshot(raw []byte) (LedgerState, error) {
	var snapshot Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return LedgerState{}, corrupt("json", err)
	}
	return snapshot.State()
}

func corrupt(field string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrCorruptState, field, err)
}

func formatDay(day time.Time) string {
	if day.IsZero() {
		return ""
	}
	return CivilDay(day).Format(snapshotDateLayout)
}

func parseDay(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(snapshotDateLayout, raw, time.UTC)
}

func usageToWire(usage map[ActionID]int) map[string]int {
	if len(usage) == 0 {
		return nil
	}
	wire := make(map[string]int, len(usage))
	for action, count := range usage {
		wire[action.String()] = count
	}
	return wire
}

func usageFromWire(wire map[string]int) map[ActionID]int {
	usage := make(map[ActionID]int, len(wire))
	for action, count := range wire {
		if count > 0 {
			usage[ActionID(action)] = count
		}
	}
	return usage
}
