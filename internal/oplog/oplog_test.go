package oplog

import (
	"context"
	"errors"
	"testing"

	"github.com/MarkoPoloResearchLab/ink/pkg/economy"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerLevels(test *testing.T) {
	test.Parallel()
	userID, err := economy.NewUserID("log-user")
	if err != nil {
		test.Fatalf("user id: %v", err)
	}
	testCases := []struct {
		name          string
		entry         economy.OperationLog
		expectedLevel zapcore.Level
		expectedKey   string
	}{
		{
			name:          "success",
			entry:         economy.OperationLog{Operation: "deduct", UserID: userID, Type: economy.TransactionGeneration, Amount: 10, Balance: 490, TransactionID: "tx-1", Attempts: 1, Status: economy.OperationStatusOK},
			expectedLevel: zapcore.InfoLevel,
			expectedKey:   "transaction_id",
		},
		{
			name:          "rejection",
			entry:         economy.OperationLog{Operation: "deduct", UserID: userID, Amount: 30, Balance: 10, Attempts: 1, Status: economy.OperationStatusError, Error: &economy.InsufficientBalanceError{Required: 30, Available: 10}},
			expectedLevel: zapcore.InfoLevel,
			expectedKey:   "shortfall",
		},
		{
			name:          "fault",
			entry:         economy.OperationLog{Operation: "credit", UserID: userID, Attempts: 3, Status: economy.OperationStatusError, Error: errors.New("disk full")},
			expectedLevel: zapcore.WarnLevel,
			expectedKey:   "error",
		},
		{
			name:          "unchanged",
			entry:         economy.OperationLog{Operation: "daily_tick", UserID: userID, Attempts: 1, Status: economy.OperationStatusUnchanged},
			expectedLevel: zapcore.DebugLevel,
			expectedKey:   "status",
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		test.Run(testCase.name, func(test *testing.T) {
			test.Parallel()
			core, recorded := observer.New(zapcore.DebugLevel)
			adapter := New(zap.New(core))
			adapter.LogOperation(context.Background(), testCase.entry)
			entries := recorded.All()
			if len(entries) != 1 {
				test.Fatalf("expected one entry, got %d", len(entries))
			}
			if entries[0].Level != testCase.expectedLevel {
				test.Fatalf("expected level %s, got %s", testCase.expectedLevel, entries[0].Level)
			}
			if _, ok := entries[0].ContextMap()[testCase.expectedKey]; !ok {
				test.Fatalf("expected field %q in %v", testCase.expectedKey, entries[0].ContextMap())
			}
			if entries[0].LoggerName != "economy" {
				test.Fatalf("expected economy logger name, got %q", entries[0].LoggerName)
			}
		})
	}
}

func TestNewToleratesNilLogger(test *testing.T) {
	test.Parallel()
	New(nil).LogOperation(context.Background(), economy.OperationLog{Status: economy.OperationStatusOK})
}
