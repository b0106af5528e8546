package economy

import (
	"fmt"
	"time"
)

// Upsell hints what the UI should offer when a quote is not affordable.
type Upsell string

const (
	UpsellNone    Upsell = "none"
	UpsellTopUp   Upsell = "top-up"
	UpsellUpgrade Upsell = "upgrade"
)

// Quote is the combined verdict for one generation or action.
type Quote struct {
	Model      ModelID
	Action     ActionID
	Cost       Ink
	Free       bool
	Affordable bool
	Shortfall  Ink
	Upsell     Upsell
}

// Gate answers affordability questions over one state snapshot. It never mutates.
type Gate struct {
	policy Policy
	state  LedgerState
	now    time.Time
}

// NewGate builds a gate over a state snapshot observed at now.
func NewGate(policy Policy, state LedgerState, now time.Time) Gate {
	return Gate{policy: policy, state: state, now: now}
}

// Gate builds a gate over a state using the engine policy and clock.
func (engine *Engine) Gate(state LedgerState) Gate {
	return NewGate(engine.policy, state, engine.clock())
}

// CanAfford reports whether the balance covers a non-negative cost.
func (gate Gate) CanAfford(cost Ink) bool {
	return cost >= 0 && gate.state.Balance >= cost
}

// PreviewGenerationCost prices a model for a tier, rejecting models above the tier.
func (gate Gate) PreviewGenerationCost(model ModelID, tier Tier) (Ink, error) {
	return gate.policy.EligibleGenerationCost(model, tier)
}

// PreviewActionCost prices an action for a tier and usage.
func (gate Gate) PreviewActionCost(action ActionID, tier Tier, usage Usage) (ActionCost, error) {
	return gate.policy.ActionCost(action, tier, usage)
}

// GenerationCost prices a model for the snapshot's tier.
func (gate Gate) GenerationCost(model ModelID) (Ink, error) {
	return gate.policy.EligibleGenerationCost(model, gate.state.Tier)
}

// AskTaTTTyActionCost prices an AI-assist action against the snapshot's usage.
func (gate Gate) AskTaTTTyActionCost(action ActionID) (ActionCost, error) {
	return gate.categoryCost(action, CategoryAskTaTTTy)
}

// EditActionCost prices a post-generation edit against the snapshot's usage.
func (gate Gate) EditActionCost(action ActionID) (ActionCost, error) {
	return gate.categoryCost(action, CategoryEdit)
}

func (gate Gate) categoryCost(action ActionID, category ActionCategory) (ActionCost, error) {
	actionConfig, err := gate.policy.ActionConfig(action)
	if err != nil {
		return ActionCost{}, err
	}
	if actionConfig.Category != category {
		return ActionCost{}, fmt.Errorf("%w: %s is %s, not %s", ErrActionCategoryMismatch, action, actionConfig.Category, category)
	}
	return gate.policy.ActionCost(action, gate.state.Tier, gate.state.Usage(gate.now))
}

// QuoteGeneration resolves the selection for the snapshot's tier and prices it.
func (gate Gate) QuoteGeneration(selection ModelSelection) (Quote, error) {
	model, err := selection.Resolve(gate.policy, gate.state.Tier)
	if err != nil {
		return Quote{}, err
	}
	cost, err := gate.GenerationCost(model)
	if err != nil {
		return Quote{}, err
	}
	return gate.verdict(Quote{Model: model, Cost: cost}), nil
}

// QuoteAction prices an action of any category for the snapshot.
func (gate Gate) QuoteAction(action ActionID) (Quote, error) {
	actionCost, err := gate.policy.ActionCost(action, gate.state.Tier, gate.state.Usage(gate.now))
	if err != nil {
		return Quote{}, err
	}
	return gate.verdict(Quote{Action: action, Cost: actionCost.Amount, Free: actionCost.Free}), nil
}

// verdict fills affordability. A shortfall larger than the next tier's monthly grant gap suggests a top-up;
// otherwise an account below the top tier is pointed at an upgrade.
func (gate Gate) verdict(quote Quote) Quote {
	quote.Affordable = gate.CanAfford(quote.Cost)
	quote.Upsell = UpsellNone
	if quote.Affordable {
		return quote
	}
	quote.Shortfall = quote.Cost - gate.state.Balance
	quote.Upsell = UpsellTopUp
	if next, ok := gate.nextTier(); ok {
		current, currentErr := gate.policy.TierConfig(gate.state.Tier)
		upgraded, upgradedErr := gate.policy.TierConfig(next)
		if currentErr == nil && upgradedErr == nil && upgraded.MonthlyInk-current.MonthlyInk >= quote.Shortfall {
			quote.Upsell = UpsellUpgrade
		}
	}
	return quote
}

func (gate Gate) nextTier() (Tier, bool) {
	tiers := Tiers()
	for index, tier := range tiers {
		if tier == gate.state.Tier && index+1 < len(tiers) {
			return tiers[index+1], true
		}
	}
	return "", false
}

// GuestGenerationCost previews a model's cost for an unauthenticated visitor. Guests cannot spend.
func GuestGenerationCost(policy Policy, model ModelID) (ModelConfig, error) {
	return policy.ModelConfig(model)
}
