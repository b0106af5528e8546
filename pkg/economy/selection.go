package economy

import (
	"fmt"
	"strings"
)

const autoModelName = "auto"

// ModelSelection is either an explicit model or an auto choice biased by detail level.
type ModelSelection struct {
	model  ModelID
	detail DetailLevel
	auto   bool
}

// ExplicitModel selects a concrete model.
func ExplicitModel(model ModelID) ModelSelection {
	return ModelSelection{model: model}
}

// AutoModel defers the model choice to the tier's default table.
func AutoModel(detail DetailLevel) ModelSelection {
	if detail == "" {
		detail = DetailStandard
	}
	return ModelSelection{detail: detail, auto: true}
}

// ParseModelSelection reads the wire form: an empty or "auto" model means an auto selection.
func ParseModelSelection(rawModel string, rawDetail string) (ModelSelection, error) {
	trimmedModel := strings.ToLower(strings.TrimSpace(rawModel))
	if trimmedModel == "" || trimmedModel == autoModelName {
		detail, err := ParseDetailLevel(rawDetail)
		if err != nil {
			return ModelSelection{}, err
		}
		return AutoModel(detail), nil
	}
	model, err := ParseModelID(trimmedModel)
	if err != nil {
		return ModelSelection{}, err
	}
	return ExplicitModel(model), nil
}

// IsAuto reports whether the selection is resolved through the default table.
func (selection ModelSelection) IsAuto() bool {
	return selection.auto
}

// Detail returns the detail level of an auto selection.
func (selection ModelSelection) Detail() DetailLevel {
	return selection.detail
}

// String renders the selection for logs and metadata.
func (selection ModelSelection) String() string {
	if selection.auto {
		return fmt.Sprintf("%s(%s)", autoModelName, selection.detail)
	}
	return selection.model.String()
}

// Resolve turns the selection into a concrete model for a tier.
func (selection ModelSelection) Resolve(policy Policy, tier Tier) (ModelID, error) {
	if !selection.auto {
		if selection.model == "" {
			return "", fmt.Errorf("%w: empty selection", ErrUnknownModel)
		}
		return selection.model, nil
	}
	return policy.DefaultModelForTier(tier, selection.detail)
}
