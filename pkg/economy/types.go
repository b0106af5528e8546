package economy

import (
	"fmt"
	"strings"
	"time"
)

// Ink is an integer amount of the platform currency.
type Ink int64

// Int64 returns the raw amount.
func (amount Ink) Int64() int64 {
	return int64(amount)
}

// NewInk validates a charge amount. Zero is allowed for free actions.
func NewInk(raw int64) (Ink, error) {
	if raw < 0 {
		return 0, fmt.Errorf("%w: must not be negative", ErrInvalidAmount)
	}
	return Ink(raw), nil
}

// UserID identifies an account owner.
type UserID struct {
	value string
}

// NewUserID validates and normalizes a user id.
func NewUserID(raw string) (UserID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return UserID{}, fmt.Errorf("%w: empty value", ErrInvalidUserID)
	}
	return UserID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id UserID) String() string {
	return id.value
}

// IsZero reports whether the identifier was never set.
func (id UserID) IsZero() bool {
	return id.value == ""
}

// Tier is a subscription level.
type Tier string

const (
	TierFree    Tier = "free"
	TierCreator Tier = "creator"
	TierStudio  Tier = "studio"
)

var tierRanks = map[Tier]int{
	TierFree:    0,
	TierCreator: 1,
	TierStudio:  2,
}

// ParseTier validates a tier name.
func ParseTier(raw string) (Tier, error) {
	tier := Tier(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := tierRanks[tier]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, raw)
	}
	return tier, nil
}

// String returns the tier name.
func (tier Tier) String() string {
	return string(tier)
}

// Valid reports whether the tier is one of the known tiers.
func (tier Tier) Valid() bool {
	_, ok := tierRanks[tier]
	return ok
}

// AtLeast reports whether tier is ordered at or above other (free < creator < studio).
func (tier Tier) AtLeast(other Tier) bool {
	return tierRanks[tier] >= tierRanks[other]
}

// Compare returns -1, 0 or 1 following the tier ordering.
func (tier Tier) Compare(other Tier) int {
	switch left, right := tierRanks[tier], tierRanks[other]; {
	case left < right:
		return -1
	case left > right:
		return 1
	default:
		return 0
	}
}

// Tiers lists the known tiers in ascending order.
func Tiers() []Tier {
	return []Tier{TierFree, TierCreator, TierStudio}
}

// QueuePriority orders generation jobs in the provider queue.
type QueuePriority string

const (
	QueueLaneStandard QueuePriority = "standard"
	QueueLanePriority QueuePriority = "priority"
	QueueLaneExpress  QueuePriority = "express"
)

// ModelID names a generation model.
type ModelID string

const (
	ModelFlash  ModelID = "flash"
	ModelMedium ModelID = "medium"
	ModelLarge  ModelID = "large"
	ModelTurbo  ModelID = "turbo"
)

// ParseModelID normalizes a model name. Unknown names are rejected by the policy lookup.
func ParseModelID(raw string) (ModelID, error) {
	model := ModelID(strings.ToLower(strings.TrimSpace(raw)))
	if model == "" {
		return "", fmt.Errorf("%w: empty value", ErrUnknownModel)
	}
	return model, nil
}

// String returns the model name.
func (model ModelID) String() string {
	return string(model)
}

// DetailLevel biases the auto model choice toward speed or quality.
type DetailLevel string

const (
	DetailStandard DetailLevel = "standard"
	DetailMore     DetailLevel = "more-detail"
	DetailMax      DetailLevel = "max-detail"
)

// ParseDetailLevel validates a detail level. Empty input means standard.
func ParseDetailLevel(raw string) (DetailLevel, error) {
	detail := DetailLevel(strings.ToLower(strings.TrimSpace(raw)))
	switch detail {
	case "":
		return DetailStandard, nil
	case DetailStandard, DetailMore, DetailMax:
		return detail, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDetailLevel, raw)
	}
}

// String returns the detail level name.
func (detail DetailLevel) String() string {
	return string(detail)
}

// ActionID names a non-generation paid action.
type ActionID string

const (
	ActionOptimize          ActionID = "optimize"
	ActionIdea              ActionID = "idea"
	ActionBrainstorm        ActionID = "brainstorm"
	ActionUpscale           ActionID = "upscale"
	ActionInpaint           ActionID = "inpaint"
	ActionOutpaint          ActionID = "outpaint"
	ActionBackgroundRemove  ActionID = "background-remove"
	ActionBackgroundReplace ActionID = "background-replace"
	ActionVariations        ActionID = "variations"
)

// ParseActionID normalizes an action name. Unknown names are rejected by the policy lookup.
func ParseActionID(raw string) (ActionID, error) {
	action := ActionID(strings.ToLower(strings.TrimSpace(raw)))
	if action == "" {
		return "", fmt.Errorf("%w: empty value", ErrUnknownAction)
	}
	return action, nil
}

// String returns the action name.
func (action ActionID) String() string {
	return string(action)
}

// ActionCategory groups actions by the UI surface that triggers them.
type ActionCategory string

const (
	CategoryAskTaTTTy ActionCategory = "ask-tattty"
	CategoryEdit      ActionCategory = "edit"
)

// AllowanceScope selects which usage counter a free allowance is measured against.
type AllowanceScope string

const (
	AllowancePerDay   AllowanceScope = "day"
	AllowancePerCycle AllowanceScope = "cycle"
)

// TransactionType enumerates ledger transaction kinds.
type TransactionType string

const (
	TransactionGeneration        TransactionType = "generation"
	TransactionAskTaTTTy         TransactionType = "ask-tattty"
	TransactionEdit              TransactionType = "edit"
	TransactionPurchase          TransactionType = "purchase"
	TransactionSubscriptionGrant TransactionType = "subscription-grant"
	TransactionRollover          TransactionType = "rollover"
	TransactionStreakBonus       TransactionType = "streak-bonus"
	TransactionRefund            TransactionType = "refund"
	TransactionTierChange        TransactionType = "tier-change"
	TransactionForfeit           TransactionType = "forfeit"
)

var transactionTypes = map[TransactionType]struct{}{
	TransactionGeneration:        {},
	TransactionAskTaTTTy:         {},
	TransactionEdit:              {},
	TransactionPurchase:          {},
	TransactionSubscriptionGrant: {},
	TransactionRollover:          {},
	TransactionStreakBonus:       {},
	TransactionRefund:            {},
	TransactionTierChange:        {},
	TransactionForfeit:           {},
}

// ParseTransactionType validates a transaction type.
func ParseTransactionType(raw string) (TransactionType, error) {
	transactionType := TransactionType(strings.TrimSpace(raw))
	if _, ok := transactionTypes[transactionType]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidTransactionType, raw)
	}
	return transactionType, nil
}

// String returns the transaction type name.
func (transactionType TransactionType) String() string {
	return string(transactionType)
}

// Refundable reports whether debits of this type pay for a generation or an action.
// Forfeits and bookkeeping debits are never refunded.
func (transactionType TransactionType) Refundable() bool {
	switch transactionType {
	case TransactionGeneration, TransactionAskTaTTTy, TransactionEdit:
		return true
	default:
		return false
	}
}

// Metadata carries caller-supplied context for a transaction.
type Metadata map[string]string

// Clone returns an independent copy.
func (metadata Metadata) Clone() Metadata {
	if metadata == nil {
		return Metadata{}
	}
	cloned := make(Metadata, len(metadata))
	for key, value := range metadata {
		cloned[key] = value
	}
	return cloned
}

// Transaction is a single immutable line in the ledger.
type Transaction struct {
	ID           string
	UserID       string
	Type         TransactionType
	Amount       Ink
	BalanceAfter Ink
	RefundOf     string
	CreatedAt    time.Time
	Metadata     Metadata
	// Sequence orders a user's transactions. Stores set it on read; it is zero on fresh receipts.
	Sequence int64
}

// IsDebit reports whether the transaction removed INK from the balance.
func (transaction Transaction) IsDebit() bool {
	return transaction.Amount < 0
}

// Charge describes a deduction or credit request.
type Charge struct {
	Amount   Ink
	Type     TransactionType
	Metadata Metadata
}

func (charge Charge) validate() error {
	if charge.Amount < 0 {
		return fmt.Errorf("%w: must not be negative", ErrInvalidAmount)
	}
	if _, ok := transactionTypes[charge.Type]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidTransactionType, charge.Type)
	}
	return nil
}

// Receipt reports the outcome of a successful mutation.
type Receipt struct {
	Transaction Transaction
	Balance     Ink
	State       LedgerState
}
