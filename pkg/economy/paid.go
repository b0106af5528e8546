package economy

import (
	"context"
	"errors"
)

// SpendFunc charges for a paid action, typically Engine.SpendGeneration or Engine.SpendAction.
type SpendFunc func(ctx context.Context) (Receipt, error)

// PaidAction is the external work bought by a charge.
type PaidAction func(ctx context.Context, charge Receipt) error

// PaidResult reports the charge and, when the action failed, the compensating refund
// or the release of a free use.
type PaidResult struct {
	Charge   Receipt
	Refund   *Receipt
	Released *Receipt
}

// RunPaid charges, runs the action and refunds the charge if the action fails.
// A failed free action gets its allowance slot back instead.
// The compensation runs even when ctx was cancelled by the failing action.
func RunPaid(ctx context.Context, engine *Engine, userID UserID, spend SpendFunc, action PaidAction) (PaidResult, error) {
	charge, err := spend(ctx)
	if err != nil {
		return PaidResult{}, err
	}
	result := PaidResult{Charge: charge}
	actionErr := action(ctx, charge)
	if actionErr == nil {
		return result, nil
	}
	if charge.Transaction.ID == "" {
		return result, actionErr
	}
	if !charge.Transaction.IsDebit() {
		released, releaseErr := engine.releaseFreeUse(context.WithoutCancel(ctx), userID, charge.Transaction)
		if releaseErr != nil {
			return result, errors.Join(actionErr, releaseErr)
		}
		result.Released = &released
		return result, actionErr
	}
	refund, refundErr := engine.Refund(context.WithoutCancel(ctx), userID, charge.Transaction.ID, Metadata{metadataKeyReason: reasonActionFailed})
	if refundErr != nil {
		return result, errors.Join(actionErr, refundErr)
	}
	result.Refund = &refund
	return result, actionErr
}
