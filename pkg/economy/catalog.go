package economy

import "fmt"

// TierConfig returns the catalog row for a tier.
func (policy Policy) TierConfig(tier Tier) (TierConfig, error) {
	tierConfig, ok := policy.Tiers[tier]
	if !ok {
		return TierConfig{}, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	return tierConfig, nil
}

// ModelConfig returns the cost table row for a model.
func (policy Policy) ModelConfig(model ModelID) (ModelConfig, error) {
	modelConfig, ok := policy.Models[model]
	if !ok {
		return ModelConfig{}, fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}
	return modelConfig, nil
}

// IsModelAvailable reports whether tier may generate with model.
func (policy Policy) IsModelAvailable(model ModelID, tier Tier) bool {
	modelConfig, ok := policy.Models[model]
	if !ok || !tier.Valid() {
		return false
	}
	return tier.AtLeast(modelConfig.MinTier)
}

// DefaultModelForTier resolves the auto selection for a tier and detail level.
func (policy Policy) DefaultModelForTier(tier Tier, detail DetailLevel) (ModelID, error) {
	byDetail, ok := policy.DefaultModels[tier]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	model, ok := byDetail[detail]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDetailLevel, detail)
	}
	return model, nil
}

// GenerationCost returns the base INK cost of a model without any tier check.
func (policy Policy) GenerationCost(model ModelID) (Ink, error) {
	modelConfig, err := policy.ModelConfig(model)
	if err != nil {
		return 0, err
	}
	return modelConfig.BaseInkCost, nil
}

// EligibleGenerationCost returns the cost of a model for a tier, rejecting models above the tier.
func (policy Policy) EligibleGenerationCost(model ModelID, tier Tier) (Ink, error) {
	modelConfig, err := policy.ModelConfig(model)
	if err != nil {
		return 0, err
	}
	if !tier.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	if !tier.AtLeast(modelConfig.MinTier) {
		return 0, fmt.Errorf("%w: model %s requires %s, session is %s", ErrTierNotEligible, model, modelConfig.MinTier, tier)
	}
	return modelConfig.BaseInkCost, nil
}

// RolloverCap is the most INK a tier may carry across a renewal boundary.
func (policy Policy) RolloverCap(tier Tier) (Ink, error) {
	tierConfig, err := policy.TierConfig(tier)
	if err != nil {
		return 0, err
	}
	return tierConfig.MonthlyInk * Ink(tierConfig.RolloverDays) / Ink(policy.RolloverBasisDays), nil
}
