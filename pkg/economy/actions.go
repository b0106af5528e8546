package economy

import "fmt"

// Usage holds the per-action counters an allowance is measured against.
type Usage struct {
	Today map[ActionID]int
	Cycle map[ActionID]int
}

// ActionCost is the price of one action invocation. Free actions have a zero amount.
type ActionCost struct {
	Amount Ink
	Free   bool
}

// ActionConfig returns the table row for an action.
func (policy Policy) ActionConfig(action ActionID) (ActionConfig, error) {
	actionConfig, ok := policy.Actions[action]
	if !ok {
		return ActionConfig{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return actionConfig, nil
}

// ActionCost prices an action for a tier given the usage so far. It never mutates usage.
func (policy Policy) ActionCost(action ActionID, tier Tier, usage Usage) (ActionCost, error) {
	actionConfig, err := policy.ActionConfig(action)
	if err != nil {
		return ActionCost{}, err
	}
	if !tier.Valid() {
		return ActionCost{}, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	if !tier.AtLeast(actionConfig.MinTier) {
		return ActionCost{}, fmt.Errorf("%w: action %s requires %s, session is %s", ErrTierNotEligible, action, actionConfig.MinTier, tier)
	}
	allowance := actionConfig.AllowanceByTier[tier]
	if allowance == unlimitedAllowance {
		return ActionCost{Free: true}, nil
	}
	used := usage.Today[action]
	if actionConfig.AllowanceScope == AllowancePerCycle {
		used = usage.Cycle[action]
	}
	if used < allowance {
		return ActionCost{Free: true}, nil
	}
	return ActionCost{Amount: actionConfig.CostByTier[tier]}, nil
}

// TransactionType maps an action category to the ledger transaction type.
func (category ActionCategory) TransactionType() TransactionType {
	if category == CategoryAskTaTTTy {
		return TransactionAskTaTTTy
	}
	return TransactionEdit
}
