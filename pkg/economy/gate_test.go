package economy

import (
	"errors"
	"testing"
)

func TestGateCanAfford(test *testing.T) {
	test.Parallel()
	gate := NewGate(DefaultPolicy(), newState(mustUserID(test, "gate"), TierFree, 10), testNow)
	testCases := []struct {
		cost Ink
		want bool
	}{
		{cost: 0, want: true},
		{cost: 10, want: true},
		{cost: 11, want: false},
		{cost: -1, want: false},
	}
	for _, testCase := range testCases {
		if got := gate.CanAfford(testCase.cost); got != testCase.want {
			test.Fatalf("CanAfford(%d) = %v, want %v", testCase.cost, got, testCase.want)
		}
	}
}

func TestGateRejectsModelAboveTierBeforeBalance(test *testing.T) {
	test.Parallel()
	policy := DefaultPolicy()
	if policy.IsModelAvailable(ModelTurbo, TierCreator) {
		test.Fatalf("turbo must not be available to creator")
	}
	gate := NewGate(policy, newState(mustUserID(test, "creator"), TierCreator, 1_000_000), testNow)
	if _, err := gate.PreviewGenerationCost(ModelTurbo, TierCreator); !errors.Is(err, ErrTierNotEligible) {
		test.Fatalf("expected ErrTierNotEligible, got %v", err)
	}
	if _, err := gate.QuoteGeneration(ExplicitModel(ModelTurbo)); !errors.Is(err, ErrTierNotEligible) {
		test.Fatalf("expected ErrTierNotEligible from quote, got %v", err)
	}
	cost, err := gate.GenerationCost(ModelLarge)
	if err != nil || cost != 40 {
		test.Fatalf("expected large to cost 40, got %d (%v)", cost, err)
	}
}

func TestGateQuoteSuggestsUpsell(test *testing.T) {
	test.Parallel()
	testCases := []struct {
		name          string
		tier          Tier
		balance       Ink
		selection     ModelSelection
		wantAfford    bool
		wantShortfall Ink
		wantUpsell    Upsell
	}{
		{name: "affordable", tier: TierFree, balance: 50, selection: AutoModel(DetailStandard), wantAfford: true, wantUpsell: UpsellNone},
		{name: "free tier short", tier: TierFree, balance: 4, selection: ExplicitModel(ModelFlash), wantShortfall: 6, wantUpsell: UpsellUpgrade},
		{name: "studio short", tier: TierStudio, balance: 10, selection: AutoModel(DetailMax), wantShortfall: 50, wantUpsell: UpsellTopUp},
	}
	for _, testCase := range testCases {
		testCase := testCase
		test.Run(testCase.name, func(test *testing.T) {
			test.Parallel()
			gate := NewGate(DefaultPolicy(), newState(mustUserID(test, "quote"), testCase.tier, testCase.balance), testNow)
			quote, err := gate.QuoteGeneration(testCase.selection)
			if err != nil {
				test.Fatalf("quote: %v", err)
			}
			if quote.Affordable != testCase.wantAfford || quote.Shortfall != testCase.wantShortfall || quote.Upsell != testCase.wantUpsell {
				test.Fatalf("unexpected quote: %+v", quote)
			}
		})
	}
}

func TestGateCategoryCosts(test *testing.T) {
	test.Parallel()
	state := newState(mustUserID(test, "categories"), TierCreator, 100)
	state.UsageToday[ActionBackgroundReplace] = 2
	gate := NewGate(DefaultPolicy(), state, testNow)

	askCost, err := gate.AskTaTTTyActionCost(ActionIdea)
	if err != nil || !askCost.Free {
		test.Fatalf("expected a free idea, got %+v (%v)", askCost, err)
	}
	editCost, err := gate.EditActionCost(ActionBackgroundReplace)
	if err != nil || editCost.Free || editCost.Amount != 6 {
		test.Fatalf("expected a 6 INK replace after the allowance, got %+v (%v)", editCost, err)
	}
	if _, err := gate.EditActionCost(ActionIdea); !errors.Is(err, ErrActionCategoryMismatch) {
		test.Fatalf("expected ErrActionCategoryMismatch, got %v", err)
	}
}

func TestGateIgnoresUsageFromEarlierDays(test *testing.T) {
	test.Parallel()
	state := newState(mustUserID(test, "yesterday"), TierFree, 100)
	state.UsageDay = CivilDay(day(-1))
	state.UsageToday[ActionOptimize] = 3
	gate := NewGate(DefaultPolicy(), state, testNow)

	quote, err := gate.QuoteAction(ActionOptimize)
	if err != nil {
		test.Fatalf("quote: %v", err)
	}
	if !quote.Free || quote.Cost != 0 {
		test.Fatalf("expected yesterday's usage to be ignored, got %+v", quote)
	}
}

func TestGuestGenerationCostPreviewsAnyModel(test *testing.T) {
	test.Parallel()
	modelConfig, err := GuestGenerationCost(DefaultPolicy(), ModelTurbo)
	if err != nil {
		test.Fatalf("guest preview: %v", err)
	}
	if modelConfig.BaseInkCost != 60 || modelConfig.MinTier != TierStudio {
		test.Fatalf("unexpected turbo row: %+v", modelConfig)
	}
	if _, err := GuestGenerationCost(DefaultPolicy(), "giga"); !errors.Is(err, ErrUnknownModel) {
		test.Fatalf("expected ErrUnknownModel, got %v", err)
	}
}
