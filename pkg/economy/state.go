package economy

import "time"

const hoursPerDay = 24

// StreakBonus records a bonus award inside the rolling bonus window.
type StreakBonus struct {
	Day    time.Time
	Amount Ink
}

// LedgerState is the mutable economy state of one account.
// Dates are UTC calendar days (midnight); a zero LastLoginDate means the account never logged in.
type LedgerState struct {
	UserID        UserID
	Balance       Ink
	Tier          Tier
	PendingTier   Tier
	UsageDay      time.Time
	UsageToday    map[ActionID]int
	UsageCycle    map[ActionID]int
	StreakDays    int
	LastLoginDate time.Time
	RenewalDate   time.Time
	StreakBonuses []StreakBonus
	Version       int64
	History       []Transaction
}

// Clone returns a deep copy so a mutation attempt never aliases the loaded state.
func (state LedgerState) Clone() LedgerState {
	cloned := state
	cloned.UsageToday = cloneUsage(state.UsageToday)
	cloned.UsageCycle = cloneUsage(state.UsageCycle)
	cloned.StreakBonuses = append([]StreakBonus(nil), state.StreakBonuses...)
	cloned.History = make([]Transaction, len(state.History))
	for index, transaction := range state.History {
		transaction.Metadata = transaction.Metadata.Clone()
		cloned.History[index] = transaction
	}
	return cloned
}

// Usage returns the usage counters that apply on the given day.
// Daily counters recorded for an earlier day read as zero.
func (state LedgerState) Usage(now time.Time) Usage {
	usage := Usage{
		Today: map[ActionID]int{},
		Cycle: cloneUsage(state.UsageCycle),
	}
	if sameDay(state.UsageDay, now) {
		usage.Today = cloneUsage(state.UsageToday)
	}
	return usage
}

// HasPendingDowngrade reports whether a lower tier takes effect at the next renewal.
func (state LedgerState) HasPendingDowngrade() bool {
	return state.PendingTier != "" && state.PendingTier != state.Tier
}

func (state *LedgerState) rollUsageDay(now time.Time) {
	today := CivilDay(now)
	if state.UsageDay.Equal(today) && state.UsageToday != nil {
		return
	}
	state.UsageDay = today
	state.UsageToday = map[ActionID]int{}
}

func (state *LedgerState) recordUsage(action ActionID, scope AllowanceScope, now time.Time) {
	state.rollUsageDay(now)
	state.UsageToday[action]++
	if scope == AllowancePerCycle {
		if state.UsageCycle == nil {
			state.UsageCycle = map[ActionID]int{}
		}
		state.UsageCycle[action]++
	}
}

func (state *LedgerState) appendHistory(transactions []Transaction, limit int) {
	state.History = append(state.History, transactions...)
	if limit > 0 && len(state.History) > limit {
		state.History = append([]Transaction(nil), state.History[len(state.History)-limit:]...)
	}
}

// CivilDay truncates a timestamp to its UTC calendar day.
func CivilDay(moment time.Time) time.Time {
	if moment.IsZero() {
		return time.Time{}
	}
	year, month, day := moment.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from start to end.
func DaysBetween(start time.Time, end time.Time) int {
	return int(CivilDay(end).Sub(CivilDay(start)).Hours() / hoursPerDay)
}

func sameDay(left time.Time, right time.Time) bool {
	if left.IsZero() || right.IsZero() {
		return false
	}
	return CivilDay(left).Equal(CivilDay(right))
}

func cloneUsage(usage map[ActionID]int) map[ActionID]int {
	cloned := make(map[ActionID]int, len(usage))
	for action, count := range usage {
		cloned[action] = count
	}
	return cloned
}
