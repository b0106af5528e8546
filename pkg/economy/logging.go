package economy

import "context"

// EngineOption configures an Engine instance.
type EngineOption func(*Engine)

// OperationLogger records domain-level events emitted by Engine operations.
type OperationLogger interface {
	LogOperation(ctx context.Context, entry OperationLog)
}

// OperationLog describes a state-changing economy operation.
type OperationLog struct {
	Operation     string
	UserID        UserID
	Type          TransactionType
	Amount        Ink
	Balance       Ink
	TransactionID string
	Attempts      int
	Status        string
	Error         error
}

// WithOperationLogger wires a logger that receives callbacks for every operation.
// Multiple loggers may be registered; each receives every entry.
func WithOperationLogger(logger OperationLogger) EngineOption {
	return func(engine *Engine) {
		if logger != nil {
			engine.loggers = append(engine.loggers, logger)
		}
	}
}

// WithPolicy replaces the default pricing policy.
func WithPolicy(policy Policy) EngineOption {
	return func(engine *Engine) {
		engine.policy = policy
	}
}

// WithMaxAttempts bounds how many times a conflicting compare-and-swap is retried.
func WithMaxAttempts(attempts int) EngineOption {
	return func(engine *Engine) {
		engine.maxAttempts = attempts
	}
}

// WithIDGenerator replaces the transaction id source.
func WithIDGenerator(generate func() string) EngineOption {
	return func(engine *Engine) {
		engine.newID = generate
	}
}
