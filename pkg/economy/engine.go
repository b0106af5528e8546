package economy

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Engine contains the economy rules over a Store.
// Every mutation loads one version of the state, decides, and commits with compare-and-swap.
type Engine struct {
	store       Store
	clock       func() time.Time
	policy      Policy
	loggers     []OperationLogger
	maxAttempts int
	newID       func() string
}

// NewEngine wires an Engine. The default policy applies unless WithPolicy overrides it.
func NewEngine(store Store, clock func() time.Time, options ...EngineOption) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store dependency is nil", ErrInvalidServiceConfig)
	}
	if clock == nil {
		return nil, fmt.Errorf("%w: clock dependency is nil", ErrInvalidServiceConfig)
	}
	engine := &Engine{
		store:       store,
		clock:       clock,
		policy:      DefaultPolicy(),
		maxAttempts: defaultMaxAttempts,
		newID:       uuid.NewString,
	}
	for _, option := range options {
		if option != nil {
			option(engine)
		}
	}
	if engine.maxAttempts < 1 {
		return nil, fmt.Errorf("%w: max attempts must be positive", ErrInvalidServiceConfig)
	}
	if engine.newID == nil {
		return nil, fmt.Errorf("%w: id generator is nil", ErrInvalidServiceConfig)
	}
	if err := engine.policy.Validate(); err != nil {
		return nil, err
	}
	return engine, nil
}

// Policy returns the pricing policy the engine enforces.
func (engine *Engine) Policy() Policy {
	return engine.policy
}

// Now returns the engine clock reading.
func (engine *Engine) Now() time.Time {
	return engine.clock()
}

// Deduct removes INK from the balance, rejecting the whole charge when the balance cannot cover it.
func (engine *Engine) Deduct(ctx context.Context, userID UserID, charge Charge) (Receipt, error) {
	if err := charge.validate(); err != nil {
		engine.logOperation(ctx, OperationLog{Operation: operationDeduct, UserID: userID, Type: charge.Type, Amount: charge.Amount, Error: err})
		return Receipt{}, err
	}
	details := charge.Metadata.Clone()
	delete(details, MetadataKeyBracketed)
	now := engine.clock()
	result, err := engine.mutate(ctx, userID, now, func(state *LedgerState) ([]Transaction, error) {
		transaction, err := engine.debit(state, charge.Type, charge.Amount, details, now)
		if err != nil {
			return nil, err
		}
		return []Transaction{transaction}, nil
	})
	return engine.finish(ctx, operationDeduct, userID, charge.Type, charge.Amount, result, err)
}

// Credit adds INK to the balance unconditionally.
func (engine *Engine) Credit(ctx context.Context, userID UserID, charge Charge) (Receipt, error) {
	if err := charge.validate(); err != nil {
		engine.logOperation(ctx, OperationLog{Operation: operationCredit, UserID: userID, Type: charge.Type, Amount: charge.Amount, Error: err})
		return Receipt{}, err
	}
	now := engine.clock()
	result, err := engine.mutate(ctx, userID, now, func(state *LedgerState) ([]Transaction, error) {
		transaction, err := engine.credit(state, charge.Type, charge.Amount, charge.Metadata, now)
		if err != nil {
			return nil, err
		}
		return []Transaction{transaction}, nil
	})
	return engine.finish(ctx, operationCredit, userID, charge.Type, charge.Amount, result, err)
}

// Refund credits back exactly what a spend removed and releases the usage it counted.
// Only generation and action spends are refundable, and each of them once.
func (engine *Engine) Refund(ctx context.Context, userID UserID, originalTransactionID string, metadata Metadata) (Receipt, error) {
	return engine.refund(ctx, userID, originalTransactionID, metadata, true)
}

// RefundClientCharge refunds a spend the client deducted itself. Charges taken by SpendGeneration or
// SpendAction are refunded only by RunPaid when their paid action fails.
func (engine *Engine) RefundClientCharge(ctx context.Context, userID UserID, originalTransactionID string, metadata Metadata) (Receipt, error) {
	return engine.refund(ctx, userID, originalTransactionID, metadata, false)
}

func (engine *Engine) refund(ctx context.Context, userID UserID, originalTransactionID string, metadata Metadata, allowBracketed bool) (Receipt, error) {
	now := engine.clock()
	var refunded Ink
	result, err := engine.mutate(ctx, userID, now, func(state *LedgerState) ([]Transaction, error) {
		original, err := engine.store.FindTransaction(ctx, userID, originalTransactionID)
		if err != nil {
			return nil, err
		}
		if !original.IsDebit() || !original.Type.Refundable() {
			return nil, fmt.Errorf("%w: %s is a %s of %d", ErrNotRefundable, original.ID, original.Type, original.Amount)
		}
		if !allowBracketed && original.Metadata[MetadataKeyBracketed] == metadataValueTrue {
			return nil, fmt.Errorf("%w: %s is refunded only when its paid action fails", ErrNotRefundable, original.ID)
		}
		if _, found, err := engine.store.FindRefund(ctx, userID, original.ID); err != nil {
			return nil, err
		} else if found {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyRefunded, original.ID)
		}
		refunded = -original.Amount
		transaction, err := engine.credit(state, TransactionRefund, refunded, metadata, now)
		if err != nil {
			return nil, err
		}
		transaction.RefundOf = original.ID
		engine.releaseUsage(state, original)
		return []Transaction{transaction}, nil
	})
	return engine.finish(ctx, operationRefund, userID, TransactionRefund, refunded, result, err)
}

// releaseFreeUse returns the allowance slot a free action spend counted without moving any INK.
func (engine *Engine) releaseFreeUse(ctx context.Context, userID UserID, original Transaction) (Receipt, error) {
	now := engine.clock()
	result, err := engine.mutate(ctx, userID, now, func(state *LedgerState) ([]Transaction, error) {
		if !engine.releaseUsage(state, original) {
			return nil, errStateUnchanged
		}
		return nil, nil
	})
	return engine.finish(ctx, operationReleaseUsage, userID, original.Type, 0, result, err)
}

// releaseUsage undoes the usage count of an engine-charged action spend. Daily counts recorded for an
// earlier day are already gone and stay untouched.
func (engine *Engine) releaseUsage(state *LedgerState, original Transaction) bool {
	action := ActionID(original.Metadata[metadataKeyAction])
	if action == "" || original.Metadata[MetadataKeyBracketed] != metadataValueTrue {
		return false
	}
	released := false
	if sameDay(state.UsageDay, original.CreatedAt) && state.UsageToday[action] > 0 {
		state.UsageToday[action]--
		released = true
	}
	actionConfig, err := engine.policy.ActionConfig(action)
	if err == nil && actionConfig.AllowanceScope == AllowancePerCycle && state.UsageCycle[action] > 0 {
		state.UsageCycle[action]--
		released = true
	}
	return released
}

// SpendGeneration resolves the model for the account tier and deducts its cost.
// Models above the tier are rejected before the balance is considered.
func (engine *Engine) SpendGeneration(ctx context.Context, userID UserID, selection ModelSelection, metadata Metadata) (Receipt, error) {
	now := engine.clock()
	var cost Ink
	result, err := engine.mutate(ctx, userID, now, func(state *LedgerState) ([]Transaction, error) {
		model, err := selection.Resolve(engine.policy, state.Tier)
		if err != nil {
			return nil, err
		}
		cost, err = engine.policy.EligibleGenerationCost(model, state.Tier)
		if err != nil {
			return nil, err
		}
		details := metadata.Clone()
		details[metadataKeyModel] = model.String()
		details[metadataKeySelection] = selection.String()
		details[MetadataKeyBracketed] = metadataValueTrue
		transaction, err := engine.debit(state, TransactionGeneration, cost, details, now)
		if err != nil {
			return nil, err
		}
		return []Transaction{transaction}, nil
	})
	return engine.finish(ctx, operationSpendGeneration, userID, TransactionGeneration, cost, result, err)
}

// SpendAction prices an action against the stored usage, deducts the price and counts the use.
func (engine *Engine) SpendAction(ctx context.Context, userID UserID, action ActionID, metadata Metadata) (Receipt, error) {
	actionConfig, err := engine.policy.ActionConfig(action)
	if err != nil {
		engine.logOperation(ctx, OperationLog{Operation: operationSpendAction, UserID: userID, Error: err})
		return Receipt{}, err
	}
	transactionType := actionConfig.Category.TransactionType()
	now := engine.clock()
	var cost Ink
	result, err := engine.mutate(ctx, userID, now, func(state *LedgerState) ([]Transaction, error) {
		actionCost, err := engine.policy.ActionCost(action, state.Tier, state.Usage(now))
		if err != nil {
			return nil, err
		}
		cost = actionCost.Amount
		details := metadata.Clone()
		details[metadataKeyAction] = action.String()
		details[metadataKeyFree] = strconv.FormatBool(actionCost.Free)
		details[MetadataKeyBracketed] = metadataValueTrue
		transaction, err := engine.debit(state, transactionType, cost, details, now)
		if err != nil {
			return nil, err
		}
		state.recordUsage(action, actionConfig.AllowanceScope, now)
		return []Transaction{transaction}, nil
	})
	return engine.finish(ctx, operationSpendAction, userID, transactionType, cost, result, err)
}

// Hydrate returns the stored state, creating it with the sign-up grant when missing
// and resetting it to that default when the stored snapshot is unreadable.
func (engine *Engine) Hydrate(ctx context.Context, userID UserID) (LedgerState, error) {
	state, err := engine.loadOrCreate(ctx, userID, engine.clock())
	engine.logOperation(ctx, OperationLog{Operation: operationHydrate, UserID: userID, Balance: state.Balance, Attempts: 1, Error: err})
	return state, err
}

// State returns the stored state without creating it.
func (engine *Engine) State(ctx context.Context, userID UserID) (LedgerState, error) {
	return engine.store.LoadState(ctx, userID, engine.policy.HistoryLimit)
}

// ListTransactions returns one page of the user's transactions, newest first.
// Pass the Sequence of the last transaction of a page to read the next one; zero reads the first page.
func (engine *Engine) ListTransactions(ctx context.Context, userID UserID, beforeSequence int64, limit int) ([]Transaction, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: must be positive", ErrInvalidLimit)
	}
	if beforeSequence < 0 {
		return nil, fmt.Errorf("%w: cursor must not be negative", ErrInvalidLimit)
	}
	return engine.store.ListTransactions(ctx, userID, beforeSequence, limit)
}

type mutation func(state *LedgerState) ([]Transaction, error)

type mutationResult struct {
	state        LedgerState
	transactions []Transaction
	attempts     int
	unchanged    bool
}

// mutate runs apply against a fresh copy of the stored state and commits it with compare-and-swap,
// retrying from the load when another writer committed first.
func (engine *Engine) mutate(ctx context.Context, userID UserID, now time.Time, apply mutation) (mutationResult, error) {
	var lastErr error
	for attempt := 1; attempt <= engine.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return mutationResult{attempts: attempt}, err
		}
		current, err := engine.loadOrCreate(ctx, userID, now)
		if err != nil {
			return mutationResult{attempts: attempt}, err
		}
		next := current.Clone()
		transactions, err := apply(&next)
		if errors.Is(err, errStateUnchanged) {
			return mutationResult{state: current, attempts: attempt, unchanged: true}, nil
		}
		if err != nil {
			return mutationResult{state: current, attempts: attempt}, err
		}
		next.Version = current.Version + 1
		next.appendHistory(transactions, engine.policy.HistoryLimit)
		err = engine.store.SwapState(ctx, next, current.Version, transactions)
		if err == nil {
			return mutationResult{state: next, transactions: transactions, attempts: attempt}, nil
		}
		if !errors.Is(err, ErrConcurrentModification) {
			return mutationResult{state: current, attempts: attempt}, err
		}
		lastErr = err
	}
	return mutationResult{attempts: engine.maxAttempts}, fmt.Errorf("after %d attempts: %w", engine.maxAttempts, lastErr)
}

func (engine *Engine) loadOrCreate(ctx context.Context, userID UserID, now time.Time) (LedgerState, error) {
	if userID.IsZero() {
		return LedgerState{}, fmt.Errorf("%w: empty user id", ErrInvalidUserID)
	}
	state, err := engine.store.LoadState(ctx, userID, engine.policy.HistoryLimit)
	switch {
	case err == nil:
		return state, nil
	case errors.Is(err, ErrStateNotFound):
		initial, transactions := engine.initialState(userID, now, reasonSignup)
		createErr := engine.store.CreateState(ctx, initial, transactions)
		if createErr == nil {
			return initial, nil
		}
		if errors.Is(createErr, ErrStateExists) {
			return engine.store.LoadState(ctx, userID, engine.policy.HistoryLimit)
		}
		return LedgerState{}, createErr
	case errors.Is(err, ErrCorruptState):
		initial, transactions := engine.initialState(userID, now, reasonCorruptReset)
		resetErr := engine.store.ReplaceState(ctx, initial, transactions)
		engine.logOperation(ctx, OperationLog{
			Operation: operationResetState,
			UserID:    userID,
			Type:      TransactionSubscriptionGrant,
			Amount:    initial.Balance,
			Balance:   initial.Balance,
			Attempts:  1,
			Error:     errors.Join(err, resetErr),
		})
		if resetErr != nil {
			return LedgerState{}, resetErr
		}
		return engine.store.LoadState(ctx, userID, engine.policy.HistoryLimit)
	default:
		return LedgerState{}, err
	}
}

// initialState is the sign-up default: the signup tier with its grant and a full billing period ahead.
func (engine *Engine) initialState(userID UserID, now time.Time, reason string) (LedgerState, []Transaction) {
	today := CivilDay(now)
	state := LedgerState{
		UserID:      userID,
		Tier:        engine.policy.SignupTier,
		UsageDay:    today,
		UsageToday:  map[ActionID]int{},
		UsageCycle:  map[ActionID]int{},
		RenewalDate: today.AddDate(0, 0, engine.policy.BillingPeriodDays),
		Version:     1,
	}
	state.Balance = engine.policy.SignupGrant
	grant := engine.newTransaction(&state, TransactionSubscriptionGrant, engine.policy.SignupGrant, Metadata{metadataKeyReason: reason}, now)
	transactions := []Transaction{grant}
	state.appendHistory(transactions, engine.policy.HistoryLimit)
	return state, transactions
}

func (engine *Engine) debit(state *LedgerState, transactionType TransactionType, amount Ink, metadata Metadata, now time.Time) (Transaction, error) {
	if amount < 0 {
		return Transaction{}, fmt.Errorf("%w: must not be negative", ErrInvalidAmount)
	}
	if state.Balance < amount {
		return Transaction{}, &InsufficientBalanceError{Required: amount, Available: state.Balance}
	}
	state.Balance -= amount
	return engine.newTransaction(state, transactionType, -amount, metadata, now), nil
}

// credit rejects amounts that would overflow the balance.
func (engine *Engine) credit(state *LedgerState, transactionType TransactionType, amount Ink, metadata Metadata, now time.Time) (Transaction, error) {
	if amount < 0 {
		return Transaction{}, fmt.Errorf("%w: must not be negative", ErrInvalidAmount)
	}
	if amount > Ink(math.MaxInt64)-state.Balance {
		return Transaction{}, fmt.Errorf("%w: %d would overflow the balance of %d", ErrInvalidAmount, amount, state.Balance)
	}
	state.Balance += amount
	return engine.newTransaction(state, transactionType, amount, metadata, now), nil
}

func (engine *Engine) newTransaction(state *LedgerState, transactionType TransactionType, signedAmount Ink, metadata Metadata, now time.Time) Transaction {
	return Transaction{
		ID:           engine.newID(),
		UserID:       state.UserID.String(),
		Type:         transactionType,
		Amount:       signedAmount,
		BalanceAfter: state.Balance,
		CreatedAt:    now.UTC().Truncate(time.Second),
		Metadata:     metadata.Clone(),
	}
}

func (engine *Engine) finish(ctx context.Context, operation string, userID UserID, transactionType TransactionType, amount Ink, result mutationResult, err error) (Receipt, error) {
	receipt := Receipt{Balance: result.state.Balance, State: result.state}
	if len(result.transactions) > 0 {
		receipt.Transaction = result.transactions[len(result.transactions)-1]
	}
	engine.logOperation(ctx, OperationLog{
		Operation:     operation,
		UserID:        userID,
		Type:          transactionType,
		Amount:        amount,
		Balance:       receipt.Balance,
		TransactionID: receipt.Transaction.ID,
		Attempts:      result.attempts,
		Status:        statusOf(result, err),
		Error:         err,
	})
	if err != nil {
		return Receipt{}, err
	}
	return receipt, nil
}

func statusOf(result mutationResult, err error) string {
	switch {
	case err != nil:
		return OperationStatusError
	case result.unchanged:
		return OperationStatusUnchanged
	default:
		return OperationStatusOK
	}
}

func (engine *Engine) logOperation(ctx context.Context, entry OperationLog) {
	if entry.Status == "" {
		entry.Status = OperationStatusOK
		if entry.Error != nil {
			entry.Status = OperationStatusError
		}
	}
	for _, logger := range engine.loggers {
		logger.LogOperation(ctx, entry)
	}
}
