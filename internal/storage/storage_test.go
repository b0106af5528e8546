package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/MarkoPoloResearchLab/ink/pkg/economy"
)

func TestResolveDriver(test *testing.T) {
	test.Parallel()
	testCases := []struct {
		name           string
		dsn            string
		expectedDriver string
		expectedPath   string
	}{
		{name: "postgres", dsn: "postgres://ink@localhost/ink", expectedDriver: driverPostgres},
		{name: "postgresql", dsn: "postgresql://ink@localhost/ink", expectedDriver: driverPostgres},
		{name: "memory sqlite", dsn: ":memory:", expectedDriver: driverSQLite, expectedPath: ":memory:"},
		{name: "bare path", dsn: "ledger.db", expectedDriver: driverSQLite, expectedPath: "ledger.db"},
		{name: "empty", dsn: "", expectedDriver: driverSQLite, expectedPath: defaultSQLiteFile},
	}
	for _, testCase := range testCases {
		testCase := testCase
		test.Run(testCase.name, func(test *testing.T) {
			test.Parallel()
			driver, path, err := resolveDriver(testCase.dsn)
			if err != nil {
				test.Fatalf("resolve: %v", err)
			}
			if driver != testCase.expectedDriver || path != testCase.expectedPath {
				test.Fatalf("expected %s %q, got %s %q", testCase.expectedDriver, testCase.expectedPath, driver, path)
			}
		})
	}
}

func TestOpenSQLiteStore(test *testing.T) {
	test.Parallel()
	dsn := "sqlite://" + filepath.Join(test.TempDir(), "ink.db")
	store, cleanup, err := Open(context.Background(), Options{Backend: BackendGorm, DatabaseURL: dsn})
	if err != nil {
		test.Fatalf("open: %v", err)
	}
	defer func() { _ = cleanup() }()

	now := time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC)
	engine, err := economy.NewEngine(store, func() time.Time { return now })
	if err != nil {
		test.Fatalf("engine: %v", err)
	}
	userID, err := economy.NewUserID("sqlite-user")
	if err != nil {
		test.Fatalf("user id: %v", err)
	}
	receipt, err := engine.Deduct(context.Background(), userID, economy.Charge{Amount: 10, Type: economy.TransactionGeneration})
	if err != nil {
		test.Fatalf("deduct: %v", err)
	}
	if receipt.Balance != 490 {
		test.Fatalf("expected 490, got %d", receipt.Balance)
	}
}

func TestOpenRejectsUnknownBackend(test *testing.T) {
	test.Parallel()
	if _, _, err := Open(context.Background(), Options{Backend: "redis"}); err == nil {
		test.Fatalf("expected an error for an unknown backend")
	}
	if _, _, err := Open(context.Background(), Options{Backend: BackendPgx, DatabaseURL: "ink.db"}); err == nil {
		test.Fatalf("expected pgx to require a postgres url")
	}
}
