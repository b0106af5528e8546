package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesRotatedFile(test *testing.T) {
	test.Parallel()
	path := filepath.Join(test.TempDir(), "inkd.log")
	logger, err := New(Options{Level: "debug", File: path})
	if err != nil {
		test.Fatalf("new logger: %v", err)
	}
	logger.Debug("ledger hydrated")
	_ = logger.Sync()

	contents, err := os.ReadFile(path)
	if err != nil {
		test.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(contents), "ledger hydrated") {
		test.Fatalf("expected the entry in the file, got %q", contents)
	}
}

func TestNewRejectsUnknownLevel(test *testing.T) {
	test.Parallel()
	if _, err := New(Options{Level: "chatty"}); err == nil {
		test.Fatalf("expected an error for an unknown level")
	}
}

func TestNewDefaultsToInfo(test *testing.T) {
	test.Parallel()
	logger, err := New(Options{})
	if err != nil {
		test.Fatalf("new logger: %v", err)
	}
	if logger.Core().Enabled(-1) {
		test.Fatalf("expected debug to be disabled by default")
	}
}
