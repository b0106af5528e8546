// Package oplog writes economy operation records to a zap logger.
package oplog

import (
	"context"

	"github.com/MarkoPoloResearchLab/ink/pkg/economy"
	"go.uber.org/zap"
)

const logMessage = "economy operation"

// ZapLogger implements economy.OperationLogger.
type ZapLogger struct {
	logger *zap.Logger
}

// New wraps logger. A nil logger discards every entry.
func New(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapLogger{logger: logger.Named("economy")}
}

func (adapter *ZapLogger) LogOperation(_ context.Context, entry economy.OperationLog) {
	fields := []zap.Field{
		zap.String("operation", entry.Operation),
		zap.String("user_id", entry.UserID.String()),
		zap.String("status", entry.Status),
		zap.Int("attempts", entry.Attempts),
		zap.Int64("balance", entry.Balance.Int64()),
	}
	if entry.Type != "" {
		fields = append(fields, zap.String("type", entry.Type.String()))
	}
	if entry.Amount != 0 {
		fields = append(fields, zap.Int64("amount", entry.Amount.Int64()))
	}
	if entry.TransactionID != "" {
		fields = append(fields, zap.String("transaction_id", entry.TransactionID))
	}
	if shortfall, ok := economy.ShortfallOf(entry.Error); ok {
		fields = append(fields, zap.Int64("shortfall", shortfall.Int64()))
	}

	switch entry.Status {
	case economy.OperationStatusError:
		fields = append(fields, zap.Error(entry.Error))
		if economy.IsRejection(entry.Error) {
			adapter.logger.Info(logMessage, fields...)
			return
		}
		adapter.logger.Warn(logMessage, fields...)
	case economy.OperationStatusUnchanged:
		adapter.logger.Debug(logMessage, fields...)
	default:
		adapter.logger.Info(logMessage, fields...)
	}
}
