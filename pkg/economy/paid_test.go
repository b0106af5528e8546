package economy

import (
	"context"
	"errors"
	"testing"
)

func TestRunPaidRefundsWhenActionFails(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	userID := mustUserID(test, "paid-failure")
	store.seed(newState(userID, TierFree, 30))
	engine := mustNewEngine(test, store)
	providerErr := errors.New("provider unavailable")
	ctx, cancel := context.WithCancel(context.Background())

	result, err := RunPaid(ctx, engine, userID, func(ctx context.Context) (Receipt, error) {
		return engine.SpendGeneration(ctx, userID, AutoModel(DetailStandard), nil)
	}, func(ctx context.Context, charge Receipt) error {
		cancel()
		return providerErr
	})
	if !errors.Is(err, providerErr) {
		test.Fatalf("expected provider error, got %v", err)
	}
	if result.Refund == nil || result.Refund.Transaction.RefundOf != result.Charge.Transaction.ID {
		test.Fatalf("expected a refund of the charge, got %+v", result)
	}
	if result.Refund.Balance != 30 {
		test.Fatalf("expected balance restored to 30, got %d", result.Refund.Balance)
	}
}

func TestRunPaidKeepsChargeOnSuccess(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	userID := mustUserID(test, "paid-success")
	store.seed(newState(userID, TierFree, 30))
	engine := mustNewEngine(test, store)

	result, err := RunPaid(context.Background(), engine, userID, func(ctx context.Context) (Receipt, error) {
		return engine.SpendGeneration(ctx, userID, ExplicitModel(ModelFlash), nil)
	}, func(ctx context.Context, charge Receipt) error {
		return nil
	})
	if err != nil {
		test.Fatalf("run paid: %v", err)
	}
	if result.Refund != nil || result.Charge.Balance != 20 {
		test.Fatalf("expected the charge to stand, got %+v", result)
	}
}

func TestRunPaidReleasesFreeUseWhenActionFails(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	userID := mustUserID(test, "paid-free")
	store.seed(newState(userID, TierFree, 30))
	engine := mustNewEngine(test, store)
	failure := errors.New("assistant failed")

	for attempt := 1; attempt <= 5; attempt++ {
		result, err := RunPaid(context.Background(), engine, userID, func(ctx context.Context) (Receipt, error) {
			return engine.SpendAction(ctx, userID, ActionOptimize, nil)
		}, func(ctx context.Context, charge Receipt) error {
			return failure
		})
		if !errors.Is(err, failure) || result.Refund != nil {
			test.Fatalf("attempt %d: expected the failure without a refund, got %+v (%v)", attempt, result, err)
		}
		if result.Released == nil {
			test.Fatalf("attempt %d: expected the free use to be released", attempt)
		}
		if result.Charge.Transaction.Metadata[metadataKeyFree] != "true" {
			test.Fatalf("attempt %d: expected a free charge, got %+v", attempt, result.Charge.Transaction)
		}
	}
	state := store.mustState(test, userID)
	if used := state.UsageToday[ActionOptimize]; used != 0 {
		test.Fatalf("expected failed free uses to be released, got %d", used)
	}
	if state.Balance != 30 {
		test.Fatalf("expected balance 30, got %d", state.Balance)
	}
	quote, err := engine.Gate(state).QuoteAction(ActionOptimize)
	if err != nil {
		test.Fatalf("quote: %v", err)
	}
	if !quote.Free {
		test.Fatalf("expected optimize to stay free, got %+v", quote)
	}
	if len(store.transactionsOfType(TransactionRefund)) != 0 {
		test.Fatalf("expected no refund transaction")
	}
}

func TestRunPaidDoesNotRunActionWhenChargeFails(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	userID := mustUserID(test, "paid-broke")
	store.seed(newState(userID, TierFree, 3))
	engine := mustNewEngine(test, store)
	ran := false

	_, err := RunPaid(context.Background(), engine, userID, func(ctx context.Context) (Receipt, error) {
		return engine.SpendGeneration(ctx, userID, ExplicitModel(ModelFlash), nil)
	}, func(ctx context.Context, charge Receipt) error {
		ran = true
		return nil
	})
	if !errors.Is(err, ErrInsufficientBalance) || ran {
		test.Fatalf("expected ErrInsufficientBalance without running the action, got %v ran=%v", err, ran)
	}
}
