package economy

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// TickReport summarizes what a daily tick changed.
type TickReport struct {
	State        LedgerState
	Transactions []Transaction
	StreakBonus  Ink
	RolledOver   bool
	Forfeited    Ink
	Unchanged    bool
}

// ApplyDailyTick runs the login-day bookkeeping: usage reset, streak, streak bonus and renewal rollover.
// A second tick on the same calendar day changes nothing.
func (engine *Engine) ApplyDailyTick(ctx context.Context, userID UserID, now time.Time) (TickReport, error) {
	var report TickReport
	result, err := engine.mutate(ctx, userID, now, func(state *LedgerState) ([]Transaction, error) {
		report = TickReport{}
		changed := false
		if !sameDay(state.UsageDay, now) {
			state.rollUsageDay(now)
			changed = true
		}
		var transactions []Transaction
		if engine.advanceStreak(state, now) {
			changed = true
			if bonus := engine.streakBonus(state, now); bonus > 0 {
				state.StreakBonuses = append(state.StreakBonuses, StreakBonus{Day: CivilDay(now), Amount: bonus})
				transaction, err := engine.credit(state, TransactionStreakBonus, bonus, Metadata{metadataKeyStreak: strconv.Itoa(state.StreakDays)}, now)
				if err != nil {
					return nil, err
				}
				transactions = append(transactions, transaction)
				report.StreakBonus = bonus
			}
		}
		rollover, forfeited, err := engine.rollover(state, now)
		if err != nil {
			return nil, err
		}
		if len(rollover) > 0 {
			changed = true
			report.RolledOver = true
			report.Forfeited = forfeited
			transactions = append(transactions, rollover...)
		}
		if !changed {
			return nil, errStateUnchanged
		}
		return transactions, nil
	})
	report.State = result.state
	report.Transactions = result.transactions
	report.Unchanged = result.unchanged
	engine.logOperation(ctx, OperationLog{
		Operation: operationDailyTick,
		UserID:    userID,
		Type:      TransactionStreakBonus,
		Amount:    report.StreakBonus,
		Balance:   result.state.Balance,
		Attempts:  result.attempts,
		Status:    statusOf(result, err),
		Error:     err,
	})
	if err != nil {
		return TickReport{}, err
	}
	return report, nil
}

// advanceStreak updates the login streak and reports whether this is the first login of the day.
func (engine *Engine) advanceStreak(state *LedgerState, now time.Time) bool {
	today := CivilDay(now)
	if !state.LastLoginDate.IsZero() && !today.After(CivilDay(state.LastLoginDate)) {
		return false
	}
	if !state.LastLoginDate.IsZero() && DaysBetween(state.LastLoginDate, today) == 1 {
		state.StreakDays++
	} else {
		state.StreakDays = 1
	}
	state.LastLoginDate = today
	return true
}

// streakBonus prunes awards that left the rolling window and returns what may still be awarded today.
func (engine *Engine) streakBonus(state *LedgerState, now time.Time) Ink {
	today := CivilDay(now)
	kept := state.StreakBonuses[:0]
	var awarded Ink
	for _, bonus := range state.StreakBonuses {
		if DaysBetween(bonus.Day, today) < engine.policy.StreakWindowDays {
			kept = append(kept, bonus)
			awarded += bonus.Amount
		}
	}
	state.StreakBonuses = kept
	remaining := engine.policy.StreakBonusWindowCap - awarded
	if remaining <= 0 {
		return 0
	}
	return min(engine.policy.StreakBonusAmount, remaining)
}

// rollover closes every billing period that ended on or before now.
// Missed periods collapse into one rollover: the carry cap applies once and one grant is added.
func (engine *Engine) rollover(state *LedgerState, now time.Time) ([]Transaction, Ink, error) {
	today := CivilDay(now)
	if today.Before(state.RenewalDate) {
		return nil, 0, nil
	}
	carryCap, err := engine.policy.RolloverCap(state.Tier)
	if err != nil {
		return nil, 0, err
	}
	var transactions []Transaction
	carry := min(state.Balance, carryCap)
	forfeited := state.Balance - carry
	if forfeited > 0 {
		state.Balance = carry
		transactions = append(transactions, engine.newTransaction(state, TransactionForfeit, -forfeited, Metadata{
			metadataKeyReason: reasonRolloverCap,
			metadataKeyCarry:  strconv.FormatInt(carry.Int64(), 10),
		}, now))
	}
	fromTier := state.Tier
	if state.HasPendingDowngrade() {
		state.Tier = state.PendingTier
	}
	state.PendingTier = ""
	tierConfig, err := engine.policy.TierConfig(state.Tier)
	if err != nil {
		return nil, 0, err
	}
	grant, err := engine.credit(state, TransactionRollover, tierConfig.MonthlyInk, Metadata{
		metadataKeyReason:   reasonRenewal,
		metadataKeyCarry:    strconv.FormatInt(carry.Int64(), 10),
		metadataKeyFromTier: fromTier.String(),
		metadataKeyToTier:   state.Tier.String(),
	}, now)
	if err != nil {
		return nil, 0, err
	}
	transactions = append(transactions, grant)
	state.UsageCycle = map[ActionID]int{}
	for !state.RenewalDate.After(today) {
		state.RenewalDate = state.RenewalDate.AddDate(0, 0, engine.policy.BillingPeriodDays)
	}
	return transactions, forfeited, nil
}

// ChangeTier moves the account to another tier.
// Upgrades apply now with a pro-rated grant for the rest of the cycle; downgrades wait for the renewal date.
func (engine *Engine) ChangeTier(ctx context.Context, userID UserID, newTier Tier, now time.Time) (Receipt, error) {
	if !newTier.Valid() {
		err := fmt.Errorf("%w: %q", ErrUnknownTier, newTier)
		engine.logOperation(ctx, OperationLog{Operation: operationChangeTier, UserID: userID, Type: TransactionTierChange, Error: err})
		return Receipt{}, err
	}
	var granted Ink
	result, err := engine.mutate(ctx, userID, now, func(state *LedgerState) ([]Transaction, error) {
		granted = 0
		details := Metadata{metadataKeyFromTier: state.Tier.String(), metadataKeyToTier: newTier.String()}
		switch newTier.Compare(state.Tier) {
		case 0:
			if state.PendingTier == "" {
				return nil, errStateUnchanged
			}
			state.PendingTier = ""
			return nil, nil
		case 1:
			proratedGrant, err := engine.proratedUpgrade(state, newTier, now)
			if err != nil {
				return nil, err
			}
			granted = proratedGrant
			details[metadataKeyReason] = reasonUpgradeProrated
			details[metadataKeyEffective] = effectiveImmediately
			state.Tier = newTier
			state.PendingTier = ""
			transaction, err := engine.credit(state, TransactionTierChange, proratedGrant, details, now)
			if err != nil {
				return nil, err
			}
			return []Transaction{transaction}, nil
		default:
			if state.PendingTier == newTier {
				return nil, errStateUnchanged
			}
			details[metadataKeyReason] = reasonDowngrade
			details[metadataKeyEffective] = effectiveAtRenewal
			state.PendingTier = newTier
			return []Transaction{engine.newTransaction(state, TransactionTierChange, 0, details, now)}, nil
		}
	})
	return engine.finish(ctx, operationChangeTier, userID, TransactionTierChange, granted, result, err)
}

// proratedUpgrade is (newGrant - oldGrant) * remainingDays / periodDays, never negative.
func (engine *Engine) proratedUpgrade(state *LedgerState, newTier Tier, now time.Time) (Ink, error) {
	oldConfig, err := engine.policy.TierConfig(state.Tier)
	if err != nil {
		return 0, err
	}
	newConfig, err := engine.policy.TierConfig(newTier)
	if err != nil {
		return 0, err
	}
	period := engine.policy.BillingPeriodDays
	remainingDays := min(max(DaysBetween(now, state.RenewalDate), 0), period)
	difference := newConfig.MonthlyInk - oldConfig.MonthlyInk
	if difference <= 0 {
		return 0, nil
	}
	return difference * Ink(remainingDays) / Ink(period), nil
}
