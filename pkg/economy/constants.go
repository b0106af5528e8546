package economy

const (
	operationDeduct          = "deduct"
	operationCredit          = "credit"
	operationRefund          = "refund"
	operationSpendGeneration = "spend_generation"
	operationSpendAction     = "spend_action"
	operationDailyTick       = "daily_tick"
	operationChangeTier      = "change_tier"
	operationHydrate         = "hydrate"
	operationResetState      = "reset_state"
	operationReleaseUsage    = "release_usage"

	defaultMaxAttempts = 3

	metadataKeyModel     = "model"
	metadataKeySelection = "selection"
	metadataKeyAction    = "action"
	metadataKeyFree      = "free"
	metadataKeyReason    = "reason"
	metadataKeyFromTier  = "from_tier"
	metadataKeyToTier    = "to_tier"
	metadataKeyEffective = "effective"
	metadataKeyStreak    = "streak_days"
	metadataKeyCarry     = "carry"

	metadataValueTrue = "true"

	reasonSignup          = "signup"
	reasonCorruptReset    = "corrupt_state_reset"
	reasonRenewal         = "renewal"
	reasonRolloverCap     = "rollover_cap"
	reasonUpgradeProrated = "upgrade_prorated"
	reasonDowngrade       = "downgrade_scheduled"
	reasonActionFailed    = "paid_action_failed"

	effectiveImmediately = "immediately"
	effectiveAtRenewal   = "renewal"
)

// MetadataKeyBracketed marks spends charged by the engine for a server-run paid action.
const MetadataKeyBracketed = "bracketed"

// Status values reported in OperationLog.
const (
	OperationStatusOK        = "ok"
	OperationStatusUnchanged = "unchanged"
	OperationStatusError     = "error"
)
