package economy

import (
	"fmt"
	"sort"
)

const (
	defaultSignupGrant          Ink = 500
	defaultStreakBonusAmount    Ink = 5
	defaultStreakBonusWindowCap Ink = 25
	defaultStreakWindowDays         = 7
	defaultBillingPeriodDays        = 30
	defaultRolloverBasisDays        = 30
	defaultHistoryLimit             = 50
	unlimitedAllowance              = -1
)

// TierConfig is one row of the tier catalog.
type TierConfig struct {
	MonthlyInk       Ink           `yaml:"monthly_ink"`
	RolloverDays     int           `yaml:"rollover_days"`
	QueuePriority    QueuePriority `yaml:"queue_priority"`
	Models           []ModelID     `yaml:"models"`
	IncludedUpscales int           `yaml:"included_upscales"`
}

// LatencyRange is an estimated generation time window in seconds.
type LatencyRange struct {
	MinSeconds int `yaml:"min_seconds"`
	MaxSeconds int `yaml:"max_seconds"`
}

// ModelConfig is one row of the model cost table.
type ModelConfig struct {
	BaseInkCost   Ink          `yaml:"base_ink_cost"`
	EstimatedTime LatencyRange `yaml:"estimated_time"`
	MinTier       Tier         `yaml:"min_tier"`
}

// ActionConfig prices a non-generation action per tier.
// Allowances of -1 mean the action is always free for that tier.
type ActionConfig struct {
	Category        ActionCategory `yaml:"category"`
	CostByTier      map[Tier]Ink   `yaml:"cost_by_tier"`
	MinTier         Tier           `yaml:"min_tier"`
	AllowanceByTier map[Tier]int   `yaml:"allowance_by_tier"`
	AllowanceScope  AllowanceScope `yaml:"allowance_scope"`
}

// Policy bundles every numeric rule of the economy.
type Policy struct {
	Tiers                map[Tier]TierConfig              `yaml:"tiers"`
	Models               map[ModelID]ModelConfig          `yaml:"models"`
	Actions              map[ActionID]ActionConfig        `yaml:"actions"`
	DefaultModels        map[Tier]map[DetailLevel]ModelID `yaml:"default_models"`
	SignupTier           Tier                             `yaml:"signup_tier"`
	SignupGrant          Ink                              `yaml:"signup_grant"`
	StreakBonusAmount    Ink                              `yaml:"streak_bonus_amount"`
	StreakBonusWindowCap Ink                              `yaml:"streak_bonus_window_cap"`
	StreakWindowDays     int                              `yaml:"streak_window_days"`
	BillingPeriodDays    int                              `yaml:"billing_period_days"`
	RolloverBasisDays    int                              `yaml:"rollover_basis_days"`
	HistoryLimit         int                              `yaml:"history_limit"`
}

// DefaultPolicy returns the launch pricing table.
func DefaultPolicy() Policy {
	return Policy{
		Tiers: map[Tier]TierConfig{
			TierFree: {
				MonthlyInk:       100,
				RolloverDays:     30,
				QueuePriority:    QueueLaneStandard,
				Models:           []ModelID{ModelFlash},
				IncludedUpscales: 0,
			},
			TierCreator: {
				MonthlyInk:       1000,
				RolloverDays:     60,
				QueuePriority:    QueueLanePriority,
				Models:           []ModelID{ModelFlash, ModelMedium, ModelLarge},
				IncludedUpscales: 10,
			},
			TierStudio: {
				MonthlyInk:       3000,
				RolloverDays:     60,
				QueuePriority:    QueueLaneExpress,
				Models:           []ModelID{ModelFlash, ModelMedium, ModelLarge, ModelTurbo},
				IncludedUpscales: 50,
			},
		},
		Models: map[ModelID]ModelConfig{
			ModelFlash:  {BaseInkCost: 10, EstimatedTime: LatencyRange{MinSeconds: 5, MaxSeconds: 10}, MinTier: TierFree},
			ModelMedium: {BaseInkCost: 20, EstimatedTime: LatencyRange{MinSeconds: 10, MaxSeconds: 20}, MinTier: TierCreator},
			ModelLarge:  {BaseInkCost: 40, EstimatedTime: LatencyRange{MinSeconds: 20, MaxSeconds: 40}, MinTier: TierCreator},
			ModelTurbo:  {BaseInkCost: 60, EstimatedTime: LatencyRange{MinSeconds: 3, MaxSeconds: 8}, MinTier: TierStudio},
		},
		Actions: map[ActionID]ActionConfig{
			ActionOptimize:          flatAction(CategoryAskTaTTTy, 1, TierFree, AllowancePerDay, 3, 20, unlimitedAllowance),
			ActionIdea:              flatAction(CategoryAskTaTTTy, 2, TierFree, AllowancePerDay, 2, 10, unlimitedAllowance),
			ActionBrainstorm:        flatAction(CategoryAskTaTTTy, 3, TierCreator, AllowancePerDay, 0, 5, 20),
			ActionUpscale:           flatAction(CategoryEdit, 5, TierFree, AllowancePerCycle, 0, 10, 50),
			ActionInpaint:           flatAction(CategoryEdit, 8, TierCreator, AllowancePerDay, 0, 0, 5),
			ActionOutpaint:          flatAction(CategoryEdit, 8, TierCreator, AllowancePerDay, 0, 0, 5),
			ActionBackgroundRemove:  flatAction(CategoryEdit, 3, TierFree, AllowancePerDay, 1, 5, unlimitedAllowance),
			ActionBackgroundReplace: flatAction(CategoryEdit, 6, TierCreator, AllowancePerDay, 0, 2, 10),
			ActionVariations: {
				Category:        CategoryEdit,
				CostByTier:      map[Tier]Ink{TierFree: 15, TierCreator: 15, TierStudio: 12},
				MinTier:         TierCreator,
				AllowanceByTier: map[Tier]int{TierFree: 0, TierCreator: 0, TierStudio: 2},
				AllowanceScope:  AllowancePerDay,
			},
		},
		DefaultModels: map[Tier]map[DetailLevel]ModelID{
			TierFree:    {DetailStandard: ModelFlash, DetailMore: ModelFlash, DetailMax: ModelFlash},
			TierCreator: {DetailStandard: ModelFlash, DetailMore: ModelMedium, DetailMax: ModelLarge},
			TierStudio:  {DetailStandard: ModelMedium, DetailMore: ModelLarge, DetailMax: ModelTurbo},
		},
		SignupTier:           TierFree,
		SignupGrant:          defaultSignupGrant,
		StreakBonusAmount:    defaultStreakBonusAmount,
		StreakBonusWindowCap: defaultStreakBonusWindowCap,
		StreakWindowDays:     defaultStreakWindowDays,
		BillingPeriodDays:    defaultBillingPeriodDays,
		RolloverBasisDays:    defaultRolloverBasisDays,
		HistoryLimit:         defaultHistoryLimit,
	}
}

func flatAction(category ActionCategory, cost Ink, minTier Tier, scope AllowanceScope, freeAllowance int, creatorAllowance int, studioAllowance int) ActionConfig {
	return ActionConfig{
		Category:        category,
		CostByTier:      map[Tier]Ink{TierFree: cost, TierCreator: cost, TierStudio: cost},
		MinTier:         minTier,
		AllowanceByTier: map[Tier]int{TierFree: freeAllowance, TierCreator: creatorAllowance, TierStudio: studioAllowance},
		AllowanceScope:  scope,
	}
}

// Validate checks that the tables reference each other consistently.
func (policy Policy) Validate() error {
	for _, tier := range Tiers() {
		tierConfig, ok := policy.Tiers[tier]
		if !ok {
			return fmt.Errorf("%w: tier %s missing", ErrInvalidPolicy, tier)
		}
		if tierConfig.MonthlyInk < 0 || tierConfig.RolloverDays < 0 || tierConfig.IncludedUpscales < 0 {
			return fmt.Errorf("%w: tier %s has negative limits", ErrInvalidPolicy, tier)
		}
		for _, model := range tierConfig.Models {
			if !policy.IsModelAvailable(model, tier) {
				return fmt.Errorf("%w: tier %s lists unavailable model %s", ErrInvalidPolicy, tier, model)
			}
		}
		for _, detail := range []DetailLevel{DetailStandard, DetailMore, DetailMax} {
			model, ok := policy.DefaultModels[tier][detail]
			if !ok {
				return fmt.Errorf("%w: no default model for %s/%s", ErrInvalidPolicy, tier, detail)
			}
			if !policy.IsModelAvailable(model, tier) {
				return fmt.Errorf("%w: default model %s not available to %s", ErrInvalidPolicy, model, tier)
			}
		}
	}
	for model, modelConfig := range policy.Models {
		if !modelConfig.MinTier.Valid() {
			return fmt.Errorf("%w: model %s has unknown min tier %q", ErrInvalidPolicy, model, modelConfig.MinTier)
		}
		if modelConfig.BaseInkCost < 0 {
			return fmt.Errorf("%w: model %s has negative cost", ErrInvalidPolicy, model)
		}
	}
	for action, actionConfig := range policy.Actions {
		if actionConfig.Category != CategoryAskTaTTTy && actionConfig.Category != CategoryEdit {
			return fmt.Errorf("%w: action %s has unknown category %q", ErrInvalidPolicy, action, actionConfig.Category)
		}
		if actionConfig.AllowanceScope != AllowancePerDay && actionConfig.AllowanceScope != AllowancePerCycle {
			return fmt.Errorf("%w: action %s has unknown allowance scope %q", ErrInvalidPolicy, action, actionConfig.AllowanceScope)
		}
		if !actionConfig.MinTier.Valid() {
			return fmt.Errorf("%w: action %s has unknown min tier %q", ErrInvalidPolicy, action, actionConfig.MinTier)
		}
		for _, tier := range Tiers() {
			if cost, ok := actionConfig.CostByTier[tier]; !ok || cost < 0 {
				return fmt.Errorf("%w: action %s has no valid cost for %s", ErrInvalidPolicy, action, tier)
			}
		}
	}
	if !policy.SignupTier.Valid() {
		return fmt.Errorf("%w: unknown signup tier %q", ErrInvalidPolicy, policy.SignupTier)
	}
	if policy.SignupGrant < 0 || policy.StreakBonusAmount < 0 || policy.StreakBonusWindowCap < 0 {
		return fmt.Errorf("%w: grants must not be negative", ErrInvalidPolicy)
	}
	if policy.StreakWindowDays <= 0 || policy.BillingPeriodDays <= 0 || policy.RolloverBasisDays <= 0 {
		return fmt.Errorf("%w: day counts must be positive", ErrInvalidPolicy)
	}
	if policy.HistoryLimit < 0 {
		return fmt.Errorf("%w: history limit must not be negative", ErrInvalidPolicy)
	}
	return nil
}

// ModelIDs lists the configured models ordered by cost.
func (policy Policy) ModelIDs() []ModelID {
	models := make([]ModelID, 0, len(policy.Models))
	for model := range policy.Models {
		models = append(models, model)
	}
	sort.Slice(models, func(left, right int) bool {
		leftCost, rightCost := policy.Models[models[left]].BaseInkCost, policy.Models[models[right]].BaseInkCost
		if leftCost == rightCost {
			return models[left] < models[right]
		}
		return leftCost < rightCost
	})
	return models
}

// ActionIDs lists the configured actions in name order.
func (policy Policy) ActionIDs() []ActionID {
	actions := make([]ActionID, 0, len(policy.Actions))
	for action := range policy.Actions {
		actions = append(actions, action)
	}
	sort.Slice(actions, func(left, right int) bool { return actions[left] < actions[right] })
	return actions
}
