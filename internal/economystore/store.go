// Package economystore keeps the ledger view of every signed-in session.
package economystore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MarkoPoloResearchLab/ink/pkg/economy"
	"go.uber.org/zap"
)

// ErrNoSession is returned when a user has no active session.
var ErrNoSession = errors.New("no active session")

// DefaultIdleTimeout ends sessions that saw no request for this long.
const DefaultIdleTimeout = 12 * time.Hour

// Store maps signed-in users to their sessions. Sessions share one engine, so every mutation still goes
// through the persistent store's compare-and-swap.
type Store struct {
	engine      *economy.Engine
	logger      *zap.Logger
	idleTimeout time.Duration
	mutex       sync.RWMutex
	sessions    map[string]*Session
}

// Option configures a Store.
type Option func(*Store)

// WithIdleTimeout overrides DefaultIdleTimeout.
func WithIdleTimeout(timeout time.Duration) Option {
	return func(store *Store) {
		store.idleTimeout = timeout
	}
}

// New builds an empty session container.
func New(engine *economy.Engine, logger *zap.Logger, options ...Option) (*Store, error) {
	if engine == nil {
		return nil, fmt.Errorf("%w: engine is required", economy.ErrInvalidServiceConfig)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	store := &Store{
		engine:      engine,
		logger:      logger.Named("sessions"),
		idleTimeout: DefaultIdleTimeout,
		sessions:    make(map[string]*Session),
	}
	for _, option := range options {
		if option != nil {
			option(store)
		}
	}
	if store.idleTimeout <= 0 {
		return nil, fmt.Errorf("%w: idle timeout must be positive", economy.ErrInvalidServiceConfig)
	}
	return store, nil
}

// Engine returns the engine shared by every session.
func (store *Store) Engine() *economy.Engine {
	return store.engine
}

// SignIn hydrates the user's state, applies the daily tick and registers the session.
// Signing in again replaces the previous session view.
func (store *Store) SignIn(ctx context.Context, userID economy.UserID) (*Session, economy.TickReport, error) {
	if _, err := store.engine.Hydrate(ctx, userID); err != nil {
		return nil, economy.TickReport{}, err
	}
	report, err := store.engine.ApplyDailyTick(ctx, userID, store.engine.Now())
	if err != nil {
		return nil, economy.TickReport{}, err
	}
	now := store.engine.Now()
	session := &Session{
		engine:     store.engine,
		userID:     userID,
		state:      report.State,
		signedInAt: now,
		lastSeen:   now,
		tickDay:    economy.CivilDay(now),
	}
	store.mutex.Lock()
	store.pruneIdleLocked(now)
	store.sessions[userID.String()] = session
	store.mutex.Unlock()

	store.logger.Info("session started",
		zap.String("user_id", userID.String()),
		zap.Int64("balance", report.State.Balance.Int64()),
		zap.Int("streak_days", report.State.StreakDays),
		zap.Bool("rolled_over", report.RolledOver),
	)
	return session, report, nil
}

// Session returns the active session of a user. A session idle past the timeout is ended and reported
// as missing. The first request on a new calendar day runs the daily tick before the session is returned.
func (store *Store) Session(ctx context.Context, userID economy.UserID) (*Session, error) {
	now := store.engine.Now()
	store.mutex.Lock()
	session, ok := store.sessions[userID.String()]
	if ok && session.idleSince(now) >= store.idleTimeout {
		delete(store.sessions, userID.String())
		ok = false
		store.logger.Info("session expired", zap.String("user_id", userID.String()))
	}
	store.mutex.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSession, userID)
	}
	if err := session.touch(ctx, now); err != nil {
		return nil, err
	}
	return session, nil
}

func (store *Store) pruneIdleLocked(now time.Time) {
	for key, session := range store.sessions {
		if session.idleSince(now) >= store.idleTimeout {
			delete(store.sessions, key)
		}
	}
}

// SignOut discards the session view. The persisted state is untouched.
func (store *Store) SignOut(userID economy.UserID) bool {
	store.mutex.Lock()
	_, ok := store.sessions[userID.String()]
	delete(store.sessions, userID.String())
	store.mutex.Unlock()
	if ok {
		store.logger.Info("session ended", zap.String("user_id", userID.String()))
	}
	return ok
}

// Observe pushes a state committed outside a session, e.g. by a payment webhook, into the active view.
func (store *Store) Observe(state economy.LedgerState) {
	store.mutex.RLock()
	session, ok := store.sessions[state.UserID.String()]
	store.mutex.RUnlock()
	if ok {
		session.observe(state)
	}
}

// Len returns the number of active sessions.
func (store *Store) Len() int {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	return len(store.sessions)
}

// View is what UI consumers read from a session.
type View struct {
	UserID      string
	Balance     economy.Ink
	Tier        economy.Tier
	PendingTier economy.Tier
	UsageToday  map[economy.ActionID]int
	UsageCycle  map[economy.ActionID]int
	StreakDays  int
	RenewalDate time.Time
	History     []economy.Transaction
	Version     int64
}

// Session is one signed-in user's handle on the economy.
type Session struct {
	engine     *economy.Engine
	userID     economy.UserID
	mutex      sync.RWMutex
	state      economy.LedgerState
	signedInAt time.Time
	lastSeen   time.Time
	tickDay    time.Time
}

// UserID returns the session owner.
func (session *Session) UserID() economy.UserID {
	return session.userID
}

// SignedInAt returns when the session started.
func (session *Session) SignedInAt() time.Time {
	return session.signedInAt
}

// View returns the last committed state known to the session.
func (session *Session) View() View {
	state := session.snapshot()
	usage := state.Usage(session.engine.Now())
	return View{
		UserID:      state.UserID.String(),
		Balance:     state.Balance,
		Tier:        state.Tier,
		PendingTier: state.PendingTier,
		UsageToday:  usage.Today,
		UsageCycle:  usage.Cycle,
		StreakDays:  state.StreakDays,
		RenewalDate: state.RenewalDate,
		History:     state.History,
		Version:     state.Version,
	}
}

// Refresh reloads the view from the persistent store.
func (session *Session) Refresh(ctx context.Context) (View, error) {
	state, err := session.engine.State(ctx, session.userID)
	if err != nil {
		return View{}, err
	}
	session.observe(state)
	return session.View(), nil
}

// Gate returns an affordability gate over the session view.
func (session *Session) Gate() economy.Gate {
	return session.engine.Gate(session.snapshot())
}

// CanAfford reports whether the session balance covers cost.
func (session *Session) CanAfford(cost economy.Ink) bool {
	return session.Gate().CanAfford(cost)
}

// GenerationCost prices a model for the session tier.
func (session *Session) GenerationCost(model economy.ModelID) (economy.Ink, error) {
	return session.Gate().GenerationCost(model)
}

// AskTaTTTyActionCost prices an assistant action against today's usage.
func (session *Session) AskTaTTTyActionCost(action economy.ActionID) (economy.ActionCost, error) {
	return session.Gate().AskTaTTTyActionCost(action)
}

// EditActionCost prices an edit action against the session usage.
func (session *Session) EditActionCost(action economy.ActionID) (economy.ActionCost, error) {
	return session.Gate().EditActionCost(action)
}

// DeductInk commits a charge the client priced itself.
func (session *Session) DeductInk(ctx context.Context, charge economy.Charge) (economy.Receipt, error) {
	return session.apply(session.engine.Deduct(ctx, session.userID, charge))
}

// Refund returns a charge taken through DeductInk. Charges the server took for a paid action are
// compensated by RunGeneration and RunAction only.
func (session *Session) Refund(ctx context.Context, transactionID string, metadata economy.Metadata) (economy.Receipt, error) {
	return session.apply(session.engine.RefundClientCharge(ctx, session.userID, transactionID, metadata))
}

// SpendGeneration charges for a generation without running it.
func (session *Session) SpendGeneration(ctx context.Context, selection economy.ModelSelection, metadata economy.Metadata) (economy.Receipt, error) {
	return session.apply(session.engine.SpendGeneration(ctx, session.userID, selection, metadata))
}

// SpendAction charges for an action and counts the use without running it.
func (session *Session) SpendAction(ctx context.Context, action economy.ActionID, metadata economy.Metadata) (economy.Receipt, error) {
	return session.apply(session.engine.SpendAction(ctx, session.userID, action, metadata))
}

// RunGeneration charges for a generation, runs it and refunds the charge when it fails.
func (session *Session) RunGeneration(ctx context.Context, selection economy.ModelSelection, metadata economy.Metadata, action economy.PaidAction) (economy.PaidResult, error) {
	return session.runPaid(ctx, func(ctx context.Context) (economy.Receipt, error) {
		return session.engine.SpendGeneration(ctx, session.userID, selection, metadata)
	}, action)
}

// RunAction charges for a non-generation action, runs it and refunds the charge when it fails.
func (session *Session) RunAction(ctx context.Context, actionID economy.ActionID, metadata economy.Metadata, action economy.PaidAction) (economy.PaidResult, error) {
	return session.runPaid(ctx, func(ctx context.Context) (economy.Receipt, error) {
		return session.engine.SpendAction(ctx, session.userID, actionID, metadata)
	}, action)
}

func (session *Session) runPaid(ctx context.Context, spend economy.SpendFunc, action economy.PaidAction) (economy.PaidResult, error) {
	result, err := economy.RunPaid(ctx, session.engine, session.userID, spend, action)
	switch {
	case result.Refund != nil:
		session.observe(result.Refund.State)
	case result.Released != nil:
		session.observe(result.Released.State)
	case result.Charge.State.Version > 0:
		session.observe(result.Charge.State)
	}
	return result, err
}

func (session *Session) apply(receipt economy.Receipt, err error) (economy.Receipt, error) {
	if err != nil {
		return receipt, err
	}
	session.observe(receipt.State)
	return receipt, nil
}

// observe keeps the newest version; receipts from concurrent requests may arrive out of order.
func (session *Session) observe(state economy.LedgerState) {
	session.mutex.Lock()
	defer session.mutex.Unlock()
	if state.Version >= session.state.Version {
		session.state = state.Clone()
	}
}

func (session *Session) idleSince(now time.Time) time.Duration {
	session.mutex.RLock()
	defer session.mutex.RUnlock()
	return now.Sub(session.lastSeen)
}

// touch marks the session active and runs the daily tick once per calendar day.
func (session *Session) touch(ctx context.Context, now time.Time) error {
	today := economy.CivilDay(now)
	session.mutex.Lock()
	session.lastSeen = now
	due := today.After(session.tickDay)
	session.mutex.Unlock()
	if !due {
		return nil
	}
	report, err := session.engine.ApplyDailyTick(ctx, session.userID, now)
	if err != nil {
		return err
	}
	session.observe(report.State)
	session.mutex.Lock()
	if today.After(session.tickDay) {
		session.tickDay = today
	}
	session.mutex.Unlock()
	return nil
}

func (session *Session) snapshot() economy.LedgerState {
	session.mutex.RLock()
	defer session.mutex.RUnlock()
	return session.state.Clone()
}
